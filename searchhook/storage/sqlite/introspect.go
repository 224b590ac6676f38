package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/nonibytes/searchhook/searchhook/storage"
)

const (
	listTablesSQL = `SELECT name FROM sqlite_master
WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
ORDER BY name`

	tableInfoSQL = `SELECT name, pk FROM pragma_table_info(?) ORDER BY cid`

	foreignKeysSQL = `SELECT id, "table", "from", "to" FROM pragma_foreign_key_list(?) ORDER BY id, seq`
)

func (a *Adapter) Introspect(ctx context.Context, db *sql.DB) ([]storage.Table, error) {
	names, err := listTables(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	tables := make([]storage.Table, 0, len(names))
	for _, name := range names {
		t := storage.Table{Name: name}
		if err := loadColumns(ctx, db, &t); err != nil {
			return nil, fmt.Errorf("table %s columns: %w", name, err)
		}
		if err := loadForeignKeys(ctx, db, &t); err != nil {
			return nil, fmt.Errorf("table %s foreign keys: %w", name, err)
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func listTables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, listTablesSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func loadColumns(ctx context.Context, db *sql.DB, t *storage.Table) error {
	rows, err := db.QueryContext(ctx, tableInfoSQL, t.Name)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		var pk int
		if err := rows.Scan(&name, &pk); err != nil {
			return err
		}
		t.Columns = append(t.Columns, name)
		// pk is the 1-based position inside the primary key
		if pk == 1 {
			t.PrimaryKey = name
		}
	}
	return rows.Err()
}

// loadForeignKeys keeps single-column references only. A missing "to"
// column means the referenced table's primary key.
func loadForeignKeys(ctx context.Context, db *sql.DB, t *storage.Table) error {
	rows, err := db.QueryContext(ctx, foreignKeysSQL, t.Name)
	if err != nil {
		return err
	}
	defer rows.Close()

	counts := make(map[int]int)
	byID := make(map[int]storage.ForeignKey)
	var order []int
	for rows.Next() {
		var id int
		var refTable, from string
		var to sql.NullString
		if err := rows.Scan(&id, &refTable, &from, &to); err != nil {
			return err
		}
		if counts[id] == 0 {
			order = append(order, id)
			byID[id] = storage.ForeignKey{Column: from, RefTable: refTable, RefColumn: to.String}
		}
		counts[id]++
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, id := range order {
		if counts[id] == 1 {
			t.ForeignKeys = append(t.ForeignKeys, byID[id])
		}
	}
	return nil
}
