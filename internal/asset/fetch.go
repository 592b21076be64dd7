package asset

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"path"
	"strings"
)

// Fetcher retrieves the raw bytes behind an asset URL.
// Implementations must be safe for concurrent use.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f(ctx, url)
}

// DirFetcher serves relative and root-relative URLs from a file system.
type DirFetcher struct {
	FS fs.FS
}

func (d DirFetcher) Fetch(_ context.Context, u string) ([]byte, error) {
	name := path.Clean(strings.TrimPrefix(u, "/"))
	b, err := fs.ReadFile(d.FS, name)
	if err != nil {
		return nil, fmt.Errorf("read asset %q: %w", u, err)
	}
	return b, nil
}

// Router sends absolute http(s) URLs to Remote and everything else to Local.
type Router struct {
	Local  Fetcher
	Remote Fetcher
}

func (r Router) Fetch(ctx context.Context, u string) ([]byte, error) {
	if IsRemote(u) {
		if r.Remote == nil {
			return nil, fmt.Errorf("no remote fetcher for %q", u)
		}
		return r.Remote.Fetch(ctx, u)
	}
	if r.Local == nil {
		return nil, fmt.Errorf("no local fetcher for %q", u)
	}
	return r.Local.Fetch(ctx, u)
}

// IsRemote reports whether u is an absolute http or https URL.
func IsRemote(u string) bool {
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
