package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/nonibytes/searchhook/internal/cliopt"
	"github.com/nonibytes/searchhook/internal/cliutil"
	"github.com/nonibytes/searchhook/searchhook"
)

// queryFlags are shared by every verb that compiles filters
type queryFlags struct {
	table   string
	filters []string
}

func (q *queryFlags) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&q.table, "table", "t", "", "table to query")
	fs.StringArrayVarP(&q.filters, "filter", "f", nil, "filter key=value (repeatable)")
}

func (q *queryFlags) parse() (searchhook.Filters, error) {
	if q.table == "" {
		return nil, fmt.Errorf("missing --table")
	}
	return ParseFilters(q.filters)
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

// withStore opens the configured store, runs fn and maps its error to an
// exit code
func withStore(g cliopt.GlobalOptions, fn func(ctx context.Context, st *searchhook.Store) error) int {
	log, err := cliutil.NewLogger(g.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	ctx := context.Background()
	st, err := cliutil.OpenStore(ctx, g, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if searchhook.IsKind(err, searchhook.ErrConfig) {
			return 2
		}
		return 1
	}
	defer st.Close()

	if err := fn(ctx, st); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// descriptorView is the printable form of an applied filter
type descriptorView struct {
	Key          string   `json:"key"`
	RelationPath []string `json:"relation_path,omitempty"`
	Field        string   `json:"field"`
	Operator     string   `json:"operator"`
	Combinator   string   `json:"combinator"`
}

type reportView struct {
	Applied []descriptorView     `json:"applied"`
	Dropped []searchhook.Dropped `json:"dropped,omitempty"`
}

func viewReport(r *searchhook.Report) reportView {
	out := reportView{Applied: make([]descriptorView, 0)}
	if r == nil {
		return out
	}
	for _, d := range r.Applied {
		out.Applied = append(out.Applied, descriptorView{
			Key:          d.Key,
			RelationPath: d.RelationPath,
			Field:        d.Field,
			Operator:     d.Operator.String(),
			Combinator:   d.Combinator.String(),
		})
	}
	out.Dropped = r.Dropped
	return out
}

func printDropped(r *searchhook.Report) {
	if r == nil {
		return
	}
	for _, d := range r.Dropped {
		fmt.Fprintf(os.Stderr, "warning: %s: segment %q matches no field or relation\n", d.Key, d.Segment)
	}
}
