package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Touseeqkh/wiki-network-dashboard/internal/config"
	"github.com/Touseeqkh/wiki-network-dashboard/internal/person"
)

var initDataPath string
var initLanguage string

// InitResult is the response for the init command.
type InitResult struct {
	Root     string `json:"root"`
	DataPath string `json:"data_path"`
	Language string `json:"language"`
	People   int    `json:"people"`
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&initDataPath, "data", "d", "", "Path to the people CSV file (required)")
	initCmd.Flags().StringVarP(&initLanguage, "language", "l", "", "Wikipedia language edition (default: en)")
	initCmd.MarkFlagRequired("data")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a workspace in the current directory",
	Long: `Initialize a wikinet workspace in the current directory.

Creates .wikinet/ with a workspace config and the link cache directory.
The data file must be a CSV with a name column; birthdate, gender,
nationality and occupation columns are picked up when present.

Example:
  wikinet init --data people.csv --language en`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	root := initTargetDirectory()

	// Refuse to clobber an existing workspace
	if config.IsWorkspace(root) {
		exitWithError(ExitConfigError, "workspace already exists at %s", config.WorkspacePath(root))
	}

	if initLanguage != "" {
		if err := config.ValidateLanguage(initLanguage); err != nil {
			exitWithError(ExitConfigError, "%v", err)
		}
	}

	if err := config.ValidateDataPath(root, initDataPath); err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	cfg := &config.Config{
		DataPath: initDataPath,
		Language: initLanguage,
	}

	// Parse the table up front so a malformed CSV fails before any
	// workspace state is written
	table, err := person.LoadCSV(cfg.DataFilePath(root))
	if err != nil {
		exitWithError(ExitDataError, "loading people table: %v", err)
	}

	if err := os.MkdirAll(config.CachePath(root), 0755); err != nil {
		exitWithError(ExitError, "creating workspace: %v", err)
	}

	if err := cfg.Save(root); err != nil {
		exitWithError(ExitConfigError, "writing config: %v", err)
	}

	result := InitResult{
		Root:     root,
		DataPath: initDataPath,
		Language: cfg.EffectiveLanguage(),
		People:   table.Len(),
	}

	if humanOutput {
		fmt.Printf("Initialized workspace at %s\n", config.WorkspacePath(root))
		fmt.Printf("  Data:     %s (%d people)\n", result.DataPath, result.People)
		fmt.Printf("  Language: %s\n", result.Language)
	} else {
		outputJSON(result)
	}

	return nil
}

// initTargetDirectory returns the directory to initialize. WIKINET_ROOT
// wins so scripts can target a directory explicitly; otherwise the
// current working directory.
func initTargetDirectory() string {
	if root := os.Getenv("WIKINET_ROOT"); root != "" {
		return config.ExpandPath(root)
	}

	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}
	return cwd
}
