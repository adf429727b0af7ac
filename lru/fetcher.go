// Package lru provides a caching insight.Fetcher backed by a bounded
// least-recently-used cache.
package lru

import (
	"context"

	"github.com/fwojciec/insight"
	"github.com/hashicorp/golang-lru/v2"
)

// Ensure Fetcher implements insight.Fetcher at compile time.
var _ insight.Fetcher = (*Fetcher)(nil)

// Fetcher memoizes successful fetches of the wrapped fetcher, keyed by URL.
// Failed fetches are not cached, so a later call retries the request.
// The cache is safe for concurrent use and lives as long as the Fetcher.
type Fetcher struct {
	next  insight.Fetcher
	cache *lru.Cache[string, string]
}

// NewFetcher creates a Fetcher holding at most size pages.
// Returns EINVALID if size is not positive.
func NewFetcher(next insight.Fetcher, size int) (*Fetcher, error) {
	if size <= 0 {
		return nil, insight.Errorf(insight.EINVALID, "cache size must be positive, got %d", size)
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, insight.Errorf(insight.EINVALID, "create page cache: %v", err)
	}
	return &Fetcher{next: next, cache: cache}, nil
}

// Fetch returns the cached body for url, fetching it on a miss.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if html, ok := f.cache.Get(url); ok {
		return html, nil
	}
	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	f.cache.Add(url, html)
	return html, nil
}

// Len returns the number of cached pages.
func (f *Fetcher) Len() int {
	return f.cache.Len()
}

// Close purges the cache and closes the wrapped fetcher.
func (f *Fetcher) Close() error {
	f.cache.Purge()
	return f.next.Close()
}
