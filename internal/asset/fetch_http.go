//go:build !js

package asset

import (
	"context"
	"fmt"
	"time"

	"github.com/imroc/req/v3"
)

// HTTPFetcher downloads remote assets.
type HTTPFetcher struct {
	client *req.Client
}

// NewHTTPFetcher creates a fetcher with the given per-request timeout.
// A non-positive timeout means none.
func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	c := req.C().SetUserAgent("quanta-asset-loader")
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return &HTTPFetcher{client: c}
}

func (h *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := h.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", url, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %q: status %d", url, resp.StatusCode)
	}
	b, err := resp.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", url, err)
	}
	return b, nil
}
