package network

import (
	"context"
	"fmt"
	"time"

	"github.com/Touseeqkh/wiki-network-dashboard/internal/wiki"
)

// Fetcher retrieves a page's outgoing links.
type Fetcher interface {
	Links(ctx context.Context, title string, limit int) ([]string, error)
}

// LinkCache stores fetched link sets between runs.
type LinkCache interface {
	Get(title string, maxAge time.Duration) ([]string, bool, error)
	Put(title string, links []string) error
}

// FetchOptions controls a fetch pass.
type FetchOptions struct {
	// MaxLinks caps the outgoing links kept per page; zero means no cap.
	MaxLinks int

	// CacheMaxAge expires cache entries older than this; zero disables
	// expiry.
	CacheMaxAge time.Duration

	// Refresh skips cache reads so every page is fetched again.
	Refresh bool
}

// FetchStats summarizes a fetch pass.
type FetchStats struct {
	Fetched int `json:"fetched"`
	Cached  int `json:"cached"`
	Missing int `json:"missing"`
}

// FetchOutgoing retrieves the outgoing link set for every name, one page
// at a time. Pages missing from Wikipedia contribute an empty set rather
// than an error; any other fetch failure aborts the pass. The cache may be
// nil, in which case every page is fetched.
func FetchOutgoing(ctx context.Context, fetcher Fetcher, cache LinkCache, names []string, opts FetchOptions) (Outgoing, *FetchStats, error) {
	outgoing := make(Outgoing, len(names))
	stats := &FetchStats{}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		if cache != nil && !opts.Refresh {
			links, ok, err := cache.Get(name, opts.CacheMaxAge)
			if err != nil {
				return nil, nil, fmt.Errorf("reading cache for %s: %w", name, err)
			}
			if ok {
				outgoing[name] = linkSet(capLinks(links, opts.MaxLinks))
				stats.Cached++
				continue
			}
		}

		links, err := fetcher.Links(ctx, name, opts.MaxLinks)
		if err != nil {
			if wiki.IsNotFound(err) {
				// A missing or ambiguous page contributes no links
				links = nil
				stats.Missing++
			} else {
				return nil, nil, fmt.Errorf("fetching links for %s: %w", name, err)
			}
		} else {
			stats.Fetched++
		}

		outgoing[name] = linkSet(links)
		if cache != nil {
			if err := cache.Put(name, links); err != nil {
				return nil, nil, fmt.Errorf("caching links for %s: %w", name, err)
			}
		}
	}

	return outgoing, stats, nil
}

// LoadCached assembles the outgoing map from the cache alone, without
// touching the network. Names with no usable cache entry contribute an
// empty set; the second return value counts those names.
func LoadCached(cache LinkCache, names []string, maxAge time.Duration) (Outgoing, int, error) {
	outgoing := make(Outgoing, len(names))
	uncached := 0

	for _, name := range names {
		links, ok, err := cache.Get(name, maxAge)
		if err != nil {
			return nil, 0, fmt.Errorf("reading cache for %s: %w", name, err)
		}
		if !ok {
			outgoing[name] = map[string]bool{}
			uncached++
			continue
		}
		outgoing[name] = linkSet(links)
	}

	return outgoing, uncached, nil
}

func linkSet(links []string) map[string]bool {
	set := make(map[string]bool, len(links))
	for _, l := range links {
		set[l] = true
	}
	return set
}

// capLinks truncates a cached link list to the current per-page cap.
func capLinks(links []string, max int) []string {
	if max > 0 && len(links) > max {
		return links[:max]
	}
	return links
}
