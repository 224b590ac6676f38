package storage

import (
	"context"
	"database/sql"

	"github.com/nonibytes/searchhook/searchhook/storage/sqlbuilder"
)

type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// Adapter abstracts database-specific operations
type Adapter interface {
	Backend() Backend
	PlaceholderStyle() sqlbuilder.PlaceholderStyle

	Connect(ctx context.Context) (*sql.DB, error)
	Close() error

	// Introspect lists the user tables visible on db with their columns and
	// foreign keys
	Introspect(ctx context.Context, db *sql.DB) ([]Table, error)
}

// Table is the catalog entry of one database table
type Table struct {
	Name        string
	PrimaryKey  string
	Columns     []string
	ForeignKeys []ForeignKey
}

// ForeignKey is a single-column reference from Table.Column to RefTable.RefColumn
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

// Builder interface for placeholder management
type Builder interface {
	Arg(v any) string
	Args() []any
	Len() int
}
