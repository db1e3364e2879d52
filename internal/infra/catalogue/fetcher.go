// Package catalogue talks to the Catalogue of Life webservice and turns its
// answer into a domain.Distribution.
package catalogue

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"

	"github.com/aalvaropc/distmap/internal/domain"
	"github.com/aalvaropc/distmap/internal/infra/httpclient"
	"github.com/aalvaropc/distmap/internal/ports"
)

type Fetcher struct {
	baseURL string
	exec    *httpclient.Executor
	logger  *slog.Logger
}

type Option func(*Fetcher)

func WithExecutor(exec *httpclient.Executor) Option {
	return func(f *Fetcher) { f.exec = exec }
}

func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) { f.logger = l }
}

func New(baseURL string, opts ...Option) *Fetcher {
	f := &Fetcher{
		baseURL: baseURL,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.exec == nil {
		f.exec = httpclient.NewExecutor()
	}
	return f
}

var _ ports.DistributionFetcher = (*Fetcher)(nil)

// Fetch issues a single GET for organismID. There is no retry.
func (f *Fetcher) Fetch(ctx context.Context, organismID string) (domain.Distribution, error) {
	params := url.Values{}
	params.Set("id", organismID)
	params.Set("format", "json")
	params.Set("response", "full")

	req, err := httpclient.BuildGet(ctx, f.baseURL, params)
	if err != nil {
		return domain.Distribution{}, &domain.OpError{
			Op:   "catalogue.fetch",
			Kind: domain.KindOf(err),
			Path: f.baseURL,
			Err:  err,
		}
	}

	f.logger.Debug("catalogue.request", "url", req.URL.String())

	resp, err := f.exec.Do(ctx, req)
	if err != nil {
		return domain.Distribution{}, &domain.OpError{
			Op:   "catalogue.fetch",
			Kind: domain.KindFetch,
			Path: req.URL.String(),
			Err:  fmt.Errorf("%s: %w", domain.ClassifyTransportError(err), err),
		}
	}

	f.logger.Debug("catalogue.response",
		"status", resp.Status,
		"bytes", len(resp.BodyBytes),
		"duration", resp.Duration,
	)

	if resp.Truncated {
		return domain.Distribution{}, &domain.OpError{
			Op:   "catalogue.fetch",
			Kind: domain.KindParse,
			Path: req.URL.String(),
			Err:  fmt.Errorf("response body exceeds %d bytes", len(resp.BodyBytes)),
		}
	}

	p, err := parseResponse(organismID, resp.BodyBytes)
	if err != nil {
		if resp.Status < 200 || resp.Status > 299 {
			return domain.Distribution{}, fmt.Errorf("unexpected status %d: %w", resp.Status, err)
		}
		return domain.Distribution{}, err
	}

	if p.resultCount > 1 {
		f.logger.Warn("there are more than one results, using the first one",
			"id", organismID,
			"results", p.resultCount,
		)
	}

	return p.dist, nil
}
