// Package main provides the wikinet CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Touseeqkh/wiki-network-dashboard/internal/config"
	"github.com/Touseeqkh/wiki-network-dashboard/internal/network"
	"github.com/Touseeqkh/wiki-network-dashboard/internal/person"
	"github.com/Touseeqkh/wiki-network-dashboard/internal/storage"
	"github.com/Touseeqkh/wiki-network-dashboard/internal/wiki"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wikinet",
	Short: "Wikipedia person network CLI",
	Long: `wikinet maps the link network between the people of a fixed table.

Core features:
  - Load a people table from CSV (name, birthdate, gender, nationality, occupation)
  - Fetch each person's outgoing Wikipedia links into a local cache
  - Build the directed link graph restricted to table members
  - Degree and PageRank metrics, gender and occupation distributions
  - Interactive 3D dashboard, as a standalone HTML export or a local server

Data lives in a .wikinet/ workspace with a SQLite link cache.
All commands output JSON by default for AI agent integration.

Environment Variables:
  WIKINET_ROOT        Workspace root (skips the directory walk-up)
  WIKINET_LANGUAGE    Wikipedia language edition override
  WIKINET_USER_AGENT  Request User-Agent override
  WIKINET_API_URL     MediaWiki API endpoint override (for testing)`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env if present (for WIKINET_* overrides)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// getStartingDirectory returns the directory to start searching for a workspace.
// Checks WIKINET_ROOT, then the global config, then the current working directory.
func getStartingDirectory() (string, int) {
	if root := os.Getenv("WIKINET_ROOT"); root != "" {
		return config.ExpandPath(root), 0
	}
	if root := config.GetWorkspacePath(); root != "" {
		return root, 0
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}
	return cwd, 0
}

// mustFindWorkspace finds and validates the workspace, exits on error.
// Returns the workspace root path.
func mustFindWorkspace() string {
	start, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	root, err := config.FindWorkspace(start)
	if err != nil {
		// Show helpful message if no global config exists
		fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		os.Exit(ExitConfigError)
	}
	return root
}

// mustLoadConfig loads workspace configuration, exits on error.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustLoadTable loads the people table from the configured CSV, exits on error.
func mustLoadTable(root string, cfg *config.Config) *person.Table {
	table, err := person.LoadCSV(cfg.DataFilePath(root))
	if err != nil {
		exitWithError(ExitDataError, "loading people table: %v", err)
	}
	return table
}

// mustOpenCache opens the SQLite link cache, exits on error.
// The caller is responsible for calling Close() on the returned cache.
func mustOpenCache(root string) *storage.Cache {
	cache, err := storage.OpenCache(config.CacheDBPath(root))
	if err != nil {
		exitWithError(ExitError, "opening link cache: %v", err)
	}
	return cache
}

// mustBuildNetwork assembles the network from cached links only, exits on
// error. The second return value counts people without cached links.
func mustBuildNetwork(root string, cfg *config.Config, table *person.Table) (*network.Result, int) {
	cache := mustOpenCache(root)
	defer cache.Close()

	outgoing, uncached, err := network.LoadCached(cache, table.Names(), cfg.EffectiveCacheTTL())
	if err != nil {
		exitWithError(ExitError, "reading link cache: %v", err)
	}
	return network.Build(table, outgoing), uncached
}

// warnUncached points at wikinet fetch when cached links are missing.
func warnUncached(uncached int) {
	if humanOutput && uncached > 0 {
		fmt.Fprintf(os.Stderr, "note: %d people have no cached links; run 'wikinet fetch'\n", uncached)
	}
}

// effectiveLanguage resolves the Wikipedia language edition: environment,
// then workspace config, then global config, then the default.
func effectiveLanguage(cfg *config.Config) string {
	if lang := os.Getenv("WIKINET_LANGUAGE"); lang != "" {
		return lang
	}
	if cfg.Language != "" {
		return cfg.Language
	}
	if lang := config.GetLanguage(); lang != "" {
		return lang
	}
	return config.DefaultLanguage
}

// effectiveUserAgent resolves the request User-Agent the same way.
func effectiveUserAgent(cfg *config.Config) string {
	if ua := os.Getenv("WIKINET_USER_AGENT"); ua != "" {
		return ua
	}
	if cfg.UserAgent != "" {
		return cfg.UserAgent
	}
	if ua := config.GetUserAgent(); ua != "" {
		return ua
	}
	return wiki.DefaultUserAgent
}

// newWikiClient builds the MediaWiki client from resolved settings.
// WIKINET_API_URL replaces the endpoint entirely, so the language option
// is skipped when it is set.
func newWikiClient(cfg *config.Config) *wiki.Client {
	opts := []wiki.ClientOption{
		wiki.WithUserAgent(effectiveUserAgent(cfg)),
	}
	if os.Getenv("WIKINET_API_URL") == "" {
		opts = append(opts, wiki.WithLanguage(effectiveLanguage(cfg)))
	}
	return wiki.NewClient(opts...)
}
