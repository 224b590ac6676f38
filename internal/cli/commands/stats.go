package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/nonibytes/searchhook/internal/cliopt"
	"github.com/nonibytes/searchhook/internal/cliutil"
	"github.com/nonibytes/searchhook/searchhook"
)

func RunStats(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet("stats")
	var q queryFlags
	var field string
	q.bind(fs)
	fs.StringVar(&field, "field", "", "numeric column to aggregate")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	filters, err := q.parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if field == "" {
		fmt.Fprintln(os.Stderr, "missing --field")
		return 2
	}

	return withStore(g, func(ctx context.Context, st *searchhook.Store) error {
		stats, err := st.Stats(ctx, q.table, filters, field)
		if err != nil {
			return err
		}

		if cliutil.ParseOutputFormat(g.Format) == cliutil.FormatJSON {
			output := map[string]any{
				"field": stats.Field,
				"count": stats.Count,
			}
			if stats.Min != nil {
				output["min"] = *stats.Min
			}
			if stats.Max != nil {
				output["max"] = *stats.Max
			}
			if stats.Avg != nil {
				output["avg"] = *stats.Avg
			}
			cliutil.PrintJSON(os.Stdout, output)
			return nil
		}

		fmt.Printf("Statistics for %s.%s:\n", q.table, stats.Field)
		fmt.Printf("  Count: %d\n", stats.Count)
		if stats.Min != nil {
			fmt.Printf("  Min: %.2f\n", *stats.Min)
		}
		if stats.Max != nil {
			fmt.Printf("  Max: %.2f\n", *stats.Max)
		}
		if stats.Avg != nil {
			fmt.Printf("  Avg: %.2f\n", *stats.Avg)
		}
		return nil
	})
}
