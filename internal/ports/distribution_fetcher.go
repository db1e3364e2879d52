package ports

import (
	"context"

	"github.com/aalvaropc/distmap/internal/domain"
)

// DistributionFetcher retrieves the distribution record of an organism from a remote catalogue.
type DistributionFetcher interface {
	Fetch(ctx context.Context, organismID string) (domain.Distribution, error)
}
