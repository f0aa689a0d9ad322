package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Touseeqkh/wiki-network-dashboard/internal/person"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Table and network summary statistics",
	Long: `Summarize the people table and the cached link network.

Reports the number of people and edges plus the gender and occupation
distributions, most common value first. People with a missing value are
counted under "Unknown".

Example:
  wikinet stats --human`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

// StatsResult is the response for the stats command.
type StatsResult struct {
	People      int                 `json:"people"`
	Edges       int                 `json:"edges"`
	Genders     []person.CountEntry `json:"genders"`
	Occupations []person.CountEntry `json:"occupations"`
}

func runStats(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	table := mustLoadTable(root, cfg)

	result, uncached := mustBuildNetwork(root, cfg, table)
	warnUncached(uncached)

	out := StatsResult{
		People:      table.Len(),
		Edges:       result.Graph.EdgeCount(),
		Genders:     person.CountByGender(result.People),
		Occupations: person.CountByOccupation(result.People),
	}

	if humanOutput {
		fmt.Printf("People: %d\n", out.People)
		fmt.Printf("Edges:  %d\n", out.Edges)

		fmt.Println("\nGender:")
		for _, e := range out.Genders {
			fmt.Printf("  %-20s %d\n", e.Value, e.Count)
		}

		fmt.Println("\nOccupation:")
		for _, e := range out.Occupations {
			fmt.Printf("  %-20s %d\n", e.Value, e.Count)
		}
	} else {
		outputJSON(out)
	}

	return nil
}
