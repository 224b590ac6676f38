package ops

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nonibytes/searchhook/searchhook/planner"
	"github.com/nonibytes/searchhook/searchhook/query"
	"github.com/nonibytes/searchhook/searchhook/storage"
	"github.com/nonibytes/searchhook/searchhook/storage/sqlbuilder"
)

// DefaultLimit applies when SearchOptions.Limit is not positive
const DefaultLimit = 20

// SearchOptions configures a search operation
type SearchOptions struct {
	Limit   int
	Offset  int
	Columns []string
	Explain bool
}

// Row is one result row keyed by column name
type Row map[string]any

// SearchResult is the result of a search operation
type SearchResult struct {
	Rows        []Row
	HasMore     bool
	ExplainSQL  string
	ExplainArgs []any
}

// Search runs sel against db and returns at most opts.Limit rows
func Search(ctx context.Context, db *sql.DB, adapter storage.Adapter, sel *query.Select, opts SearchOptions) (*SearchResult, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	// fetch one extra row to learn whether another page exists
	sel = sel.Columns(opts.Columns...).Limit(limit + 1).Offset(opts.Offset)

	builder := sqlbuilder.New(adapter.PlaceholderStyle())
	searchSQL, err := planner.BuildSelectSQL(sel, adapter.Backend(), builder)
	if err != nil {
		return nil, fmt.Errorf("build search SQL: %w", err)
	}

	rows, err := db.QueryContext(ctx, searchSQL, builder.Args()...)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}
	defer rows.Close()

	out, err := scanRows(rows)
	if err != nil {
		return nil, err
	}

	result := &SearchResult{HasMore: len(out) > limit}
	if result.HasMore {
		out = out[:limit]
	}
	result.Rows = out

	if opts.Explain {
		result.ExplainSQL = searchSQL
		result.ExplainArgs = builder.Args()
	}
	return result, nil
}

// Count returns the number of root rows sel matches
func Count(ctx context.Context, db *sql.DB, adapter storage.Adapter, sel *query.Select) (int64, error) {
	builder := sqlbuilder.New(adapter.PlaceholderStyle())
	countSQL, err := planner.BuildCountSQL(sel, adapter.Backend(), builder)
	if err != nil {
		return 0, fmt.Errorf("build count SQL: %w", err)
	}
	var n int64
	if err := db.QueryRowContext(ctx, countSQL, builder.Args()...).Scan(&n); err != nil {
		return 0, fmt.Errorf("execute count: %w", err)
	}
	return n, nil
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	var out []Row
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		row := make(Row, len(cols))
		for i, c := range cols {
			// drivers hand TEXT back as []byte in some configurations
			if b, ok := vals[i].([]byte); ok {
				row[c] = string(b)
				continue
			}
			row[c] = vals[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}
