package httpclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/aalvaropc/distmap/internal/domain"
)

// BuildGet builds a GET request for baseURL with params merged into its query string.
// Params already present on baseURL are overwritten.
func BuildGet(ctx context.Context, baseURL string, params url.Values) (*http.Request, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  domain.ErrInvalidConfig,
		}
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Path: baseURL,
			Err:  err,
		}
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Path: baseURL,
			Err:  domain.ErrInvalidConfig,
		}
	}

	q := u.Query()
	for k, vs := range params {
		q.Del(k)
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Path: baseURL,
			Err:  err,
		}
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}
