package ops

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/nonibytes/searchhook/searchhook/planner"
	"github.com/nonibytes/searchhook/searchhook/query"
	"github.com/nonibytes/searchhook/searchhook/storage"
	"github.com/nonibytes/searchhook/searchhook/storage/sqlbuilder"
)

// StatsResult contains aggregates of one root column over the matched rows
type StatsResult struct {
	Field string
	Count uint64
	Min   *float64
	Max   *float64
	Avg   *float64
}

// Stats computes count, min, max and average of a numeric root column over
// the rows sel matches
func Stats(ctx context.Context, db *sql.DB, adapter storage.Adapter, sel *query.Select, field string) (*StatsResult, error) {
	root := sel.Root()
	if !root.HasField(field) {
		return nil, fmt.Errorf("unknown field: %s", field)
	}
	// without a primary key DISTINCT would merge equal values of different rows
	if sel.HasManyJoin() && root.PrimaryKey == "" {
		return nil, fmt.Errorf("stats across a has-many relation need a primary key on %s", root.Name)
	}

	// aggregate over distinct root rows so has-many joins do not inflate counts
	inner := sel.Columns(uniqueColumns(root.PrimaryKey, field)...)
	builder := sqlbuilder.New(adapter.PlaceholderStyle())
	innerSQL, err := planner.BuildSelectSQL(inner, adapter.Backend(), builder)
	if err != nil {
		return nil, fmt.Errorf("build stats SQL: %w", err)
	}

	col := sqlbuilder.QuoteIdent(field)
	querySQL := fmt.Sprintf(`SELECT COUNT(f.%s), MIN(f.%s), MAX(f.%s), AVG(f.%s)
FROM (%s) f`, col, col, col, col, innerSQL)

	result := &StatsResult{Field: field}
	var minVal, maxVal, avgVal sql.NullFloat64
	if err := db.QueryRowContext(ctx, querySQL, builder.Args()...).Scan(&result.Count, &minVal, &maxVal, &avgVal); err != nil {
		return nil, fmt.Errorf("execute stats: %w", err)
	}
	if minVal.Valid {
		result.Min = &minVal.Float64
	}
	if maxVal.Valid {
		result.Max = &maxVal.Float64
	}
	if avgVal.Valid {
		result.Avg = &avgVal.Float64
	}
	return result, nil
}

func uniqueColumns(cols ...string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, c := range cols {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
