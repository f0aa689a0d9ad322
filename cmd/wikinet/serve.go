package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Touseeqkh/wiki-network-dashboard/internal/dashboard"
)

var (
	serveAddr  string
	serveTitle string
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default :8741)")
	serveCmd.Flags().StringVar(&serveTitle, "title", "", "Page title")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the 3D network dashboard over HTTP",
	Long: `Serve the interactive 3D network dashboard over HTTP.

The table and the cached link network are loaded once at startup;
requests only filter and render them. Besides the page at /, the server
exposes the network as JSON:

  GET /api/network?person=X&gender=Y&search=Z
  GET /api/people
  GET /api/stats
  GET /api/health

Stops cleanly on SIGINT or SIGTERM.

Example:
  wikinet serve --addr :8741`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	table := mustLoadTable(root, cfg)

	result, uncached := mustBuildNetwork(root, cfg, table)
	if uncached > 0 {
		fmt.Fprintf(os.Stderr, "note: %d people have no cached links; run 'wikinet fetch'\n", uncached)
	}

	serverConfig := dashboard.DefaultConfig()
	if serveAddr != "" {
		serverConfig.ListenAddr = serveAddr
	}
	if serveTitle != "" {
		serverConfig.Title = serveTitle
	}

	server, err := dashboard.NewServer(serverConfig, table, result)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
	case <-sigChan:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Stop(shutdownCtx); err != nil {
			exitWithError(ExitError, "shutting down: %v", err)
		}
	}

	return nil
}
