package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Touseeqkh/wiki-network-dashboard/internal/network"
)

var (
	metricsSort string
	metricsTop  int
)

func init() {
	metricsCmd.Flags().StringVar(&metricsSort, "sort", "pagerank", "Sort order: pagerank, in, out, or name")
	metricsCmd.Flags().IntVar(&metricsTop, "top", 0, "Show only the top N rows (0 for all)")
	rootCmd.AddCommand(metricsCmd)
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Node metrics for every person in the network",
	Long: `Compute node metrics over the cached link network.

For every person: in-degree (links received from other table members),
out-degree (links sent to other table members), and PageRank over the
full graph. The network is assembled from the link cache, so run
'wikinet fetch' first.

Example:
  wikinet metrics
  wikinet metrics --sort in --top 10 --human`,
	Args: cobra.NoArgs,
	RunE: runMetrics,
}

// MetricsRow is one person's network metrics. Missing gender or
// occupation values are reported as "Unknown".
type MetricsRow struct {
	Name       string  `json:"name"`
	Gender     string  `json:"gender"`
	Occupation string  `json:"occupation"`
	InDegree   int     `json:"in_degree"`
	OutDegree  int     `json:"out_degree"`
	PageRank   float64 `json:"pagerank"`
}

// MetricsResult is the response for the metrics command.
type MetricsResult struct {
	Nodes int          `json:"nodes"`
	Edges int          `json:"edges"`
	Rows  []MetricsRow `json:"rows"`
}

func runMetrics(cmd *cobra.Command, args []string) error {
	root := mustFindWorkspace()
	cfg := mustLoadConfig(root)
	table := mustLoadTable(root, cfg)

	result, uncached := mustBuildNetwork(root, cfg, table)
	warnUncached(uncached)

	rows := metricsRows(result)
	if err := sortMetricsRows(rows, metricsSort); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if metricsTop > 0 && len(rows) > metricsTop {
		rows = rows[:metricsTop]
	}

	out := MetricsResult{
		Nodes: result.Graph.NodeCount(),
		Edges: result.Graph.EdgeCount(),
		Rows:  rows,
	}

	if humanOutput {
		printMetricsTable(out)
	} else {
		outputJSON(out)
	}

	return nil
}

func metricsRows(result *network.Result) []MetricsRow {
	rows := make([]MetricsRow, 0, len(result.People))
	for _, p := range result.People {
		rows = append(rows, MetricsRow{
			Name:       p.Name,
			Gender:     orUnknown(p.Gender),
			Occupation: orUnknown(p.Occupation),
			InDegree:   p.InDegree,
			OutDegree:  p.OutDegree,
			PageRank:   result.PageRank[p.Name],
		})
	}
	return rows
}

// sortMetricsRows orders rows by the requested key. The score sorts are
// descending with name as the tiebreak; "name" is plain alphabetical.
func sortMetricsRows(rows []MetricsRow, key string) error {
	var less func(a, b MetricsRow) bool
	switch key {
	case "pagerank":
		less = func(a, b MetricsRow) bool {
			if a.PageRank != b.PageRank {
				return a.PageRank > b.PageRank
			}
			return a.Name < b.Name
		}
	case "in":
		less = func(a, b MetricsRow) bool {
			if a.InDegree != b.InDegree {
				return a.InDegree > b.InDegree
			}
			return a.Name < b.Name
		}
	case "out":
		less = func(a, b MetricsRow) bool {
			if a.OutDegree != b.OutDegree {
				return a.OutDegree > b.OutDegree
			}
			return a.Name < b.Name
		}
	case "name":
		less = func(a, b MetricsRow) bool { return a.Name < b.Name }
	default:
		return fmt.Errorf("unknown sort key %q: must be pagerank, in, out, or name", key)
	}

	sort.Slice(rows, func(i, j int) bool { return less(rows[i], rows[j]) })
	return nil
}

func printMetricsTable(out MetricsResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tGENDER\tOCCUPATION\tIN\tOUT\tPAGERANK")
	fmt.Fprintln(w, "----\t------\t----------\t--\t---\t--------")
	for _, r := range out.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.5f\n",
			r.Name, r.Gender, r.Occupation, r.InDegree, r.OutDegree, r.PageRank)
	}
	w.Flush()

	fmt.Printf("\nGraph has %d nodes and %d edges.\n", out.Nodes, out.Edges)
}

// orUnknown substitutes the placeholder the dashboard uses for missing
// attribute values.
func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
