package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nonibytes/searchhook/internal/cliopt"
	"github.com/nonibytes/searchhook/internal/cliutil"
	"github.com/nonibytes/searchhook/searchhook"
	"github.com/nonibytes/searchhook/searchhook/query"
)

type relationView struct {
	Name   string `json:"name"`
	Target string `json:"target"`
	On     string `json:"on"`
	Many   bool   `json:"many"`
}

type entityView struct {
	Table      string         `json:"table"`
	PrimaryKey string         `json:"primary_key,omitempty"`
	Fields     []string       `json:"fields"`
	Relations  []relationView `json:"relations"`
}

func viewEntity(e *query.Entity) entityView {
	v := entityView{Table: e.Name, PrimaryKey: e.PrimaryKey, Fields: e.Fields(), Relations: make([]relationView, 0)}
	for _, name := range e.Relations() {
		r, _ := e.Relation(name)
		v.Relations = append(v.Relations, relationView{
			Name:   r.Name,
			Target: r.Target.Name,
			On:     fmt.Sprintf("%s.%s = %s.%s", r.Target.Name, r.TargetColumn, e.Name, r.SourceColumn),
			Many:   r.Many,
		})
	}
	return v
}

// RunSchema lists the tables filters can address, with their fields and relations
func RunSchema(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet("schema")
	var table string
	fs.StringVarP(&table, "table", "t", "", "only this table")
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	return withStore(g, func(_ context.Context, st *searchhook.Store) error {
		names := st.Catalog().Names()
		if table != "" {
			names = []string{table}
		}

		views := make([]entityView, 0, len(names))
		for _, name := range names {
			e, err := st.Entity(name)
			if err != nil {
				return err
			}
			views = append(views, viewEntity(e))
		}

		if cliutil.ParseOutputFormat(g.Format) == cliutil.FormatJSON {
			cliutil.PrintJSON(os.Stdout, views)
			return nil
		}
		for _, v := range views {
			fmt.Fprintf(os.Stdout, "%s\n", v.Table)
			fmt.Fprintf(os.Stdout, "  fields: %s\n", strings.Join(v.Fields, ", "))
			for _, r := range v.Relations {
				kind := "belongs to"
				if r.Many {
					kind = "has many"
				}
				fmt.Fprintf(os.Stdout, "  %s %s (%s) on %s\n", kind, r.Name, r.Target, r.On)
			}
		}
		return nil
	})
}
