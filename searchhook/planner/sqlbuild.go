package planner

import (
	"fmt"
	"strings"

	"github.com/nonibytes/searchhook/searchhook/query"
	"github.com/nonibytes/searchhook/searchhook/storage"
	"github.com/nonibytes/searchhook/searchhook/storage/sqlbuilder"
)

var quote = sqlbuilder.QuoteIdent

// BuildSelectSQL renders sel as a SELECT statement for backend.
// Placeholders are allocated from builder in statement order.
func BuildSelectSQL(sel *query.Select, backend storage.Backend, builder storage.Builder) (string, error) {
	if err := sel.Err(); err != nil {
		return "", err
	}
	root := sel.Root()
	rootAlias := quote(root.Name)

	var cols []string
	ordered := root.PrimaryKey != ""
	if list := sel.ColumnList(); len(list) > 0 {
		ordered = false
		for _, c := range list {
			if !root.HasField(c) {
				return "", fmt.Errorf("entity %s has no column %q", root.Name, c)
			}
			cols = append(cols, rootAlias+"."+quote(c))
			if c == root.PrimaryKey {
				ordered = true
			}
		}
	} else {
		cols = []string{rootAlias + ".*"}
	}

	distinct := ""
	if sel.HasManyJoin() {
		distinct = "DISTINCT "
	}

	from, err := buildFrom(sel, backend, builder)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s%s\n%s", distinct, strings.Join(cols, ", "), from)
	if ordered {
		fmt.Fprintf(&sb, "\nORDER BY %s.%s", rootAlias, quote(root.PrimaryKey))
	}
	sb.WriteString(limitClause(backend, sel.LimitValue(), sel.OffsetValue()))
	return sb.String(), nil
}

// BuildCountSQL renders a statement returning the number of root rows sel matches
func BuildCountSQL(sel *query.Select, backend storage.Backend, builder storage.Builder) (string, error) {
	if err := sel.Err(); err != nil {
		return "", err
	}
	root := sel.Root()

	count := "COUNT(*)"
	if sel.HasManyJoin() && root.PrimaryKey != "" {
		count = fmt.Sprintf("COUNT(DISTINCT %s.%s)", quote(root.Name), quote(root.PrimaryKey))
	}

	from, err := buildFrom(sel, backend, builder)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("SELECT %s\n%s", count, from), nil
}

// buildFrom renders FROM, the joins and the WHERE clause
func buildFrom(sel *query.Select, backend storage.Backend, builder storage.Builder) (string, error) {
	root := sel.Root()
	parts := []string{"FROM " + quote(root.Name)}

	for _, j := range sel.Joins() {
		source := quote(root.Name)
		if len(j.Path) > 1 {
			source = quote(query.Alias(j.Path[:len(j.Path)-1]))
		}
		alias := quote(j.Alias())
		parts = append(parts, fmt.Sprintf("LEFT JOIN %s AS %s ON %s.%s = %s.%s",
			quote(j.Relation.Target.Name), alias,
			alias, quote(j.Relation.TargetColumn),
			source, quote(j.Relation.SourceColumn),
		))
	}

	if w := sel.WhereExpr(); w != nil {
		r := renderer{root: root.Name, backend: backend, builder: builder}
		cond, err := r.expr(w)
		if err != nil {
			return "", err
		}
		parts = append(parts, "WHERE "+cond)
	}
	return strings.Join(parts, "\n"), nil
}

func limitClause(backend storage.Backend, limit, offset int) string {
	switch {
	case limit > 0 && offset > 0:
		return fmt.Sprintf("\nLIMIT %d OFFSET %d", limit, offset)
	case limit > 0:
		return fmt.Sprintf("\nLIMIT %d", limit)
	case offset > 0 && backend == storage.BackendSQLite:
		// SQLite only accepts OFFSET after a LIMIT
		return fmt.Sprintf("\nLIMIT -1 OFFSET %d", offset)
	case offset > 0:
		return fmt.Sprintf("\nOFFSET %d", offset)
	default:
		return ""
	}
}
