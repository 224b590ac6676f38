package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nonibytes/searchhook/internal/cliopt"
	"github.com/nonibytes/searchhook/internal/cliutil"
	"github.com/nonibytes/searchhook/searchhook"
)

// RunExplain prints the SQL a search would run, without running it
func RunExplain(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet("explain")
	var q queryFlags
	var limit, offset int
	var columns []string
	q.bind(fs)
	fs.IntVar(&limit, "limit", searchhook.DefaultLimit, "limit")
	fs.IntVar(&offset, "offset", 0, "rows to skip")
	fs.StringSliceVar(&columns, "columns", nil, "columns to return: c1,c2")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	filters, err := q.parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return withStore(g, func(_ context.Context, st *searchhook.Store) error {
		opts := searchhook.SearchOptions{Limit: limit, Offset: offset, Columns: columns}
		stmt, args, report, err := st.Explain(q.table, filters, opts)
		if err != nil {
			return err
		}

		view := viewReport(report)
		if cliutil.ParseOutputFormat(g.Format) == cliutil.FormatJSON {
			cliutil.PrintJSON(os.Stdout, map[string]any{
				"sql":     stmt,
				"args":    args,
				"applied": view.Applied,
				"dropped": view.Dropped,
			})
			return nil
		}

		fmt.Fprintln(os.Stdout, "Filters:")
		for _, d := range view.Applied {
			target := d.Field
			if len(d.RelationPath) > 0 {
				target = strings.Join(d.RelationPath, ".") + "." + d.Field
			}
			fmt.Fprintf(os.Stdout, "  %-4s %s %s  (%s)\n", d.Combinator, target, d.Operator, d.Key)
		}
		for _, d := range view.Dropped {
			fmt.Fprintf(os.Stdout, "  drop %s  (%s)\n", d.Segment, d.Key)
		}
		fmt.Fprintf(os.Stdout, "\nQuery:\n%s\nArgs: %v\n", stmt, args)
		return nil
	})
}
