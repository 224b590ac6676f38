package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/nonibytes/searchhook/searchhook/storage"
)

func TestIntrospect(t *testing.T) {
	ctx := context.Background()
	a := New(filepath.Join(t.TempDir(), "shop.db"))
	db, err := a.Connect(ctx)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ExecContext(ctx, `
CREATE TABLE customers (id INTEGER PRIMARY KEY, email TEXT);
CREATE TABLE regions (code TEXT, country TEXT, PRIMARY KEY (code, country));
CREATE TABLE orders (
	id          INTEGER PRIMARY KEY,
	customer_id INTEGER REFERENCES customers(id),
	region_code TEXT,
	region_country TEXT,
	FOREIGN KEY (region_code, region_country) REFERENCES regions(code, country)
);`)
	require.NoError(t, err)

	tables, err := a.Introspect(ctx, db)
	require.NoError(t, err)
	require.Len(t, tables, 3)

	assert.Equal(t, "customers", tables[0].Name)
	assert.Equal(t, "orders", tables[1].Name)
	assert.Equal(t, "regions", tables[2].Name)

	orders := tables[1]
	assert.Equal(t, "id", orders.PrimaryKey)
	assert.Equal(t, []string{"id", "customer_id", "region_code", "region_country"}, orders.Columns)
	// the composite key into regions is not addressable by a single column
	assert.Equal(t, []storage.ForeignKey{{Column: "customer_id", RefTable: "customers", RefColumn: "id"}}, orders.ForeignKeys)

	assert.Equal(t, "code", tables[2].PrimaryKey)
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "a.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", New("a.db").dsn())
	assert.Equal(t, "a.db?mode=ro&_busy_timeout=5000&_foreign_keys=on", NewWithDriver("a.db?mode=ro", DriverMattn).dsn())
}
