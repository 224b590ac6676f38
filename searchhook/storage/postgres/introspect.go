package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nonibytes/searchhook/searchhook/storage"
)

const (
	columnsSQL = `SELECT table_name, column_name
FROM information_schema.columns
WHERE table_schema = $1
ORDER BY table_name, ordinal_position`

	primaryKeysSQL = `SELECT tc.table_name, kcu.column_name
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
  ON kcu.constraint_name = tc.constraint_name AND kcu.table_schema = tc.table_schema
WHERE tc.constraint_type = 'PRIMARY KEY' AND tc.table_schema = $1
ORDER BY tc.table_name, kcu.ordinal_position`

	foreignKeysSQL = `SELECT tc.constraint_name, tc.table_name, kcu.column_name, ccu.table_name, ccu.column_name
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
  ON kcu.constraint_name = tc.constraint_name AND kcu.table_schema = tc.table_schema
JOIN information_schema.constraint_column_usage ccu
  ON ccu.constraint_name = tc.constraint_name AND ccu.table_schema = tc.table_schema
WHERE tc.constraint_type = 'FOREIGN KEY' AND tc.table_schema = $1
ORDER BY tc.table_name, tc.constraint_name, kcu.ordinal_position`
)

func (a *Adapter) Introspect(ctx context.Context, db *sql.DB) ([]storage.Table, error) {
	byName := make(map[string]*storage.Table)
	var order []string
	table := func(name string) *storage.Table {
		t, ok := byName[name]
		if !ok {
			t = &storage.Table{Name: name}
			byName[name] = t
			order = append(order, name)
		}
		return t
	}

	if err := eachRow(ctx, db, columnsSQL, a.Schema, func(rows *sql.Rows) error {
		var tbl, col string
		if err := rows.Scan(&tbl, &col); err != nil {
			return err
		}
		t := table(tbl)
		t.Columns = append(t.Columns, col)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}

	if err := eachRow(ctx, db, primaryKeysSQL, a.Schema, func(rows *sql.Rows) error {
		var tbl, col string
		if err := rows.Scan(&tbl, &col); err != nil {
			return err
		}
		if t := table(tbl); t.PrimaryKey == "" {
			t.PrimaryKey = col
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("list primary keys: %w", err)
	}

	type fkRow struct {
		table string
		fk    storage.ForeignKey
	}
	counts := make(map[string]int)
	first := make(map[string]fkRow)
	var fkOrder []string
	if err := eachRow(ctx, db, foreignKeysSQL, a.Schema, func(rows *sql.Rows) error {
		var name, tbl, col, refTbl, refCol string
		if err := rows.Scan(&name, &tbl, &col, &refTbl, &refCol); err != nil {
			return err
		}
		id := tbl + "." + name
		if counts[id] == 0 {
			fkOrder = append(fkOrder, id)
			first[id] = fkRow{table: tbl, fk: storage.ForeignKey{Column: col, RefTable: refTbl, RefColumn: refCol}}
		}
		counts[id]++
		return nil
	}); err != nil {
		return nil, fmt.Errorf("list foreign keys: %w", err)
	}
	// composite keys show up as several rows per constraint; keep single-column ones
	for _, id := range fkOrder {
		if counts[id] != 1 {
			continue
		}
		r := first[id]
		t := table(r.table)
		t.ForeignKeys = append(t.ForeignKeys, r.fk)
	}

	out := make([]storage.Table, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out, nil
}

func eachRow(ctx context.Context, db *sql.DB, query string, schema string, fn func(*sql.Rows) error) error {
	rows, err := db.QueryContext(ctx, query, schema)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
