package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Touseeqkh/wiki-network-dashboard/internal/layout"
	"github.com/Touseeqkh/wiki-network-dashboard/internal/network"
	"github.com/Touseeqkh/wiki-network-dashboard/internal/viz"
)

var (
	vizOutput  string
	vizPerson  string
	vizGenders []string
	vizSearch  string
	vizTitle   string
)

func init() {
	vizCmd.Flags().StringVarP(&vizOutput, "output", "o", "", "Output file path (default: stdout)")
	vizCmd.Flags().StringVar(&vizPerson, "person", "", "Preselect one person and their neighbors")
	vizCmd.Flags().StringSliceVar(&vizGenders, "gender", nil, "Preselect gender filters (can be repeated)")
	vizCmd.Flags().StringVar(&vizSearch, "search", "", "Preselect a name search")
	vizCmd.Flags().StringVar(&vizTitle, "title", "", "Page title")
	rootCmd.AddCommand(vizCmd)
}

var vizCmd = &cobra.Command{
	Use:   "viz",
	Short: "Generate the 3D network dashboard as standalone HTML",
	Long: `Generate the interactive 3D network dashboard as a single HTML file.

The page embeds the full network with precomputed positions and filters
entirely in the browser: a person selector, gender checkboxes, and a
name search restrict the visible nodes without recomputing metrics.
Node size tracks PageRank. Plotly is loaded from its CDN.

Filter flags preselect the page's controls; the full network is always
embedded so the controls stay usable. An unknown person or gender simply
yields an empty view, the same as picking it in the page.

Examples:
  # Generate HTML to stdout
  wikinet viz > network.html

  # Generate to file
  wikinet viz --output network.html

  # Open focused on one person with a gender preselected
  wikinet viz --person "Marie Curie" --gender Female --output network.html`,
	Args: cobra.NoArgs,
	RunE: runViz,
}

func runViz(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	table := mustLoadTable(root, cfg)

	result, uncached := mustBuildNetwork(root, cfg, table)
	warnUncached(uncached)

	// Lay out the full graph so positions stay stable while filtering
	view := result.Select(network.Selection{})
	positions := layout.Spring3D(view.Graph, layout.DefaultSeed)
	graph := viz.BuildGraphData(view, positions)

	opts := viz.DefaultOptions()
	if vizTitle != "" {
		opts.Title = vizTitle
	}
	opts.Person = vizPerson
	opts.Genders = vizGenders
	opts.Search = vizSearch

	html, err := viz.GenerateHTML(graph, opts)
	if err != nil {
		return fmt.Errorf("generating HTML: %w", err)
	}

	if vizOutput == "" {
		fmt.Print(html)
	} else {
		if err := os.WriteFile(vizOutput, []byte(html), 0644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		if !humanOutput {
			fmt.Printf("{\"output\":\"%s\"}\n", vizOutput)
		} else {
			fmt.Printf("Dashboard written to %s\n", vizOutput)
		}
	}

	return nil
}
