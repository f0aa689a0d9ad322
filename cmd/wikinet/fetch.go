package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Touseeqkh/wiki-network-dashboard/internal/network"
)

var (
	fetchRefresh  bool
	fetchMaxLinks int
)

func init() {
	fetchCmd.Flags().BoolVar(&fetchRefresh, "refresh", false, "Ignore cached links and fetch every page again")
	fetchCmd.Flags().IntVar(&fetchMaxLinks, "max-links", 0, "Cap outgoing links kept per page (default: config max_links, -1 for no cap)")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch outgoing Wikipedia links for every person",
	Long: `Fetch the outgoing Wikipedia links for every person in the table.

Pages are fetched one at a time through the rate-limited MediaWiki
client and stored in the workspace link cache. People whose pages are
missing from Wikipedia contribute an empty link set. Interrupting the
run keeps everything fetched so far; the next run resumes from the
cache.

Example:
  wikinet fetch
  wikinet fetch --refresh --max-links 500`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

// FetchResult is the response for the fetch command.
type FetchResult struct {
	People   int            `json:"people"`
	Fetched  int            `json:"fetched"`
	Cached   int            `json:"cached"`
	Missing  int            `json:"missing"`
	Links    map[string]int `json:"links"`
	Duration string         `json:"duration"`
}

func runFetch(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	table := mustLoadTable(root, cfg)

	cache := mustOpenCache(root)
	defer cache.Close()

	maxLinks := cfg.EffectiveMaxLinks()
	if cmd.Flags().Changed("max-links") {
		maxLinks = fetchMaxLinks
		if maxLinks < 0 {
			maxLinks = 0
		}
	}

	// Ctrl-C cancels the pass; the cache keeps everything fetched so far
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	client := newWikiClient(cfg)
	names := table.Names()

	if humanOutput {
		fmt.Printf("Fetching links for %d people from %s.wikipedia.org...\n", len(names), effectiveLanguage(cfg))
	}

	start := time.Now()
	outgoing, stats, err := network.FetchOutgoing(ctx, client, cache, names, network.FetchOptions{
		MaxLinks:    maxLinks,
		CacheMaxAge: cfg.EffectiveCacheTTL(),
		Refresh:     fetchRefresh,
	})
	if err != nil {
		if ctx.Err() != nil {
			exitWithError(ExitFetchError, "fetch interrupted; pages fetched so far are cached")
		}
		exitWithError(ExitFetchError, "%v", err)
	}
	elapsed := time.Since(start)

	links := make(map[string]int, len(outgoing))
	for name, set := range outgoing {
		links[name] = len(set)
	}

	result := FetchResult{
		People:   len(names),
		Fetched:  stats.Fetched,
		Cached:   stats.Cached,
		Missing:  stats.Missing,
		Links:    links,
		Duration: formatDuration(elapsed),
	}

	if humanOutput {
		fmt.Printf("Done in %s:\n", result.Duration)
		fmt.Printf("  Fetched: %d pages\n", stats.Fetched)
		fmt.Printf("  Cached:  %d pages\n", stats.Cached)
		fmt.Printf("  Missing: %d pages\n", stats.Missing)
	} else {
		outputJSON(result)
	}

	return nil
}
