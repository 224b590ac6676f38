package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/nonibytes/searchhook/internal/cliopt"
	"github.com/nonibytes/searchhook/internal/cliutil"
	"github.com/nonibytes/searchhook/searchhook"
)

func RunCount(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet("count")
	var q queryFlags
	q.bind(fs)
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	filters, err := q.parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return withStore(g, func(ctx context.Context, st *searchhook.Store) error {
		n, err := st.Count(ctx, q.table, filters)
		if err != nil {
			return err
		}
		if cliutil.ParseOutputFormat(g.Format) == cliutil.FormatJSON {
			cliutil.PrintJSON(os.Stdout, map[string]any{"table": q.table, "count": n})
			return nil
		}
		fmt.Fprintln(os.Stdout, n)
		return nil
	})
}
