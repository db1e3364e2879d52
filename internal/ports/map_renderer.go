package ports

import "github.com/aalvaropc/distmap/internal/domain"

// MapRenderer paints resolved countries on a map template and persists the result.
type MapRenderer interface {
	Render(countries domain.CountrySet, color string, outPath string) (painted []string, err error)
}
