package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Touseeqkh/wiki-network-dashboard/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set workspace configuration values",
	Long: `Get or set workspace configuration values.

Usage:
  wikinet config                       # Show all config
  wikinet config language              # Get specific value
  wikinet config language es           # Set value
  wikinet config max-links 500         # Cap links kept per page
  wikinet config cache-ttl-days -1     # Cache entries never expire

Keys:
  data-path       Path to the people CSV (relative paths resolve against the workspace root)
  language        Wikipedia language edition (default en)
  user-agent      User-Agent for MediaWiki requests
  max-links       Links kept per page (0 = default 1000, -1 = no cap)
  cache-ttl-days  Link cache lifetime in days (0 = default 7, -1 = never expires)`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)

	// No args: show all config
	if len(args) == 0 {
		if humanOutput {
			fmt.Printf("data-path:      %s\n", cfg.DataPath)
			fmt.Printf("language:       %s\n", cfg.Language)
			fmt.Printf("user-agent:     %s\n", cfg.UserAgent)
			fmt.Printf("max-links:      %d\n", cfg.MaxLinks)
			fmt.Printf("cache-ttl-days: %d\n", cfg.CacheTTLDays)
		} else {
			outputJSON(ConfigResponse{
				DataPath:     cfg.DataPath,
				Language:     cfg.Language,
				UserAgent:    cfg.UserAgent,
				MaxLinks:     cfg.MaxLinks,
				CacheTTLDays: cfg.CacheTTLDays,
			})
		}
		return nil
	}

	key := args[0]
	normalizedKey := normalizeKey(key)

	// One arg: get specific value
	if len(args) == 1 {
		switch normalizedKey {
		case "data-path":
			outputConfigValue("data_path", cfg.DataPath)
		case "language":
			outputConfigValue("language", cfg.Language)
		case "user-agent":
			outputConfigValue("user_agent", cfg.UserAgent)
		case "max-links":
			outputConfigValue("max_links", strconv.Itoa(cfg.MaxLinks))
		case "cache-ttl-days":
			outputConfigValue("cache_ttl_days", strconv.Itoa(cfg.CacheTTLDays))
		default:
			exitWithError(ExitError, "unknown configuration key: %s", key)
		}
		return nil
	}

	// Two args: set value
	value := args[1]

	switch normalizedKey {
	case "data-path":
		if err := config.ValidateDataPath(root, value); err != nil {
			exitWithError(ExitDataError, "%v", err)
		}
		cfg.DataPath = value

	case "language":
		if err := config.ValidateLanguage(value); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		cfg.Language = value

	case "user-agent":
		cfg.UserAgent = value

	case "max-links":
		n, err := parseConfigInt(key, value)
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		cfg.MaxLinks = n

	case "cache-ttl-days":
		n, err := parseConfigInt(key, value)
		if err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
		cfg.CacheTTLDays = n

	default:
		exitWithError(ExitError, "unknown configuration key: %s", key)
	}

	// Save config
	if err := cfg.Save(root); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	// Output success
	if humanOutput {
		fmt.Printf("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{
			Status: "updated",
			Key:    normalizedKey,
			Value:  value,
		})
	}

	return nil
}

// outputConfigValue prints one config value in the active output mode.
func outputConfigValue(jsonKey, value string) {
	if humanOutput {
		fmt.Println(value)
	} else {
		outputJSON(map[string]string{jsonKey: value})
	}
}

// parseConfigInt parses an integer config value; -1 is the smallest
// meaningful setting for both max-links and cache-ttl-days.
func parseConfigInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	if n < -1 {
		return 0, fmt.Errorf("%s must be -1 or greater, got %d", key, n)
	}
	return n, nil
}

// normalizeKey folds key case and maps underscores to dashes so
// max_links and max-links name the same key.
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
