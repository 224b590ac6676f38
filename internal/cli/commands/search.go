package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nonibytes/searchhook/internal/cliopt"
	"github.com/nonibytes/searchhook/internal/cliutil"
	"github.com/nonibytes/searchhook/searchhook"
)

func RunSearch(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet("search")
	var q queryFlags
	var limit, offset int
	var columns []string
	var explain bool
	q.bind(fs)
	fs.IntVar(&limit, "limit", searchhook.DefaultLimit, "limit")
	fs.IntVar(&offset, "offset", 0, "rows to skip")
	fs.StringSliceVar(&columns, "columns", nil, "columns to return: c1,c2")
	fs.BoolVar(&explain, "explain", false, "explain")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	filters, err := q.parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return withStore(g, func(ctx context.Context, st *searchhook.Store) error {
		opts := searchhook.SearchOptions{Limit: limit, Offset: offset, Columns: columns, Explain: explain}

		start := time.Now()
		res, err := st.Search(ctx, q.table, filters, opts)
		if err != nil {
			return err
		}
		printSearch(cliutil.ParseOutputFormat(g.Format), res, time.Since(start))
		return nil
	})
}

func printSearch(fmtOut cliutil.OutputFormat, res *searchhook.SearchResult, dur time.Duration) {
	switch fmtOut {
	case cliutil.FormatJSON:
		out := map[string]any{
			"rows":     res.Rows,
			"has_more": res.HasMore,
			"report":   viewReport(res.Report),
		}
		if res.ExplainSQL != "" {
			out["sql"] = res.ExplainSQL
			out["args"] = res.ExplainArgs
		}
		cliutil.PrintJSON(os.Stdout, out)
	default:
		printDropped(res.Report)
		fmt.Fprintf(os.Stdout, "Found %d rows in %dms\n", len(res.Rows), dur.Milliseconds())
		for _, row := range res.Rows {
			b, err := json.Marshal(row)
			if err != nil {
				fmt.Fprintf(os.Stdout, "- %v\n", row)
				continue
			}
			fmt.Fprintf(os.Stdout, "- %s\n", b)
		}
		if res.HasMore {
			fmt.Fprintln(os.Stdout, "\nmore rows available (raise --limit or use --offset)")
		}
		if res.ExplainSQL != "" {
			fmt.Fprintf(os.Stdout, "\nQuery:\n%s\nArgs: %v\n", res.ExplainSQL, res.ExplainArgs)
		}
	}
}
