package searchhook

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	sherrors "github.com/nonibytes/searchhook/searchhook/errors"
	"github.com/nonibytes/searchhook/searchhook/ops"
	"github.com/nonibytes/searchhook/searchhook/planner"
	"github.com/nonibytes/searchhook/searchhook/query"
	"github.com/nonibytes/searchhook/searchhook/storage"
	"github.com/nonibytes/searchhook/searchhook/storage/sqlbuilder"
)

// Store compiles filters against a database catalog and runs the result.
// The catalog is read once at Open; a Store is safe for concurrent use.
type Store struct {
	adapter  storage.Adapter
	db       *sql.DB
	catalog  *query.Catalog
	compiler *Compiler
	log      *logrus.Entry
}

// Open connects through adapter and loads the table catalog
func Open(ctx context.Context, adapter storage.Adapter, opts StoreOptions) (*Store, error) {
	log := opts.Logger
	if log == nil {
		log = discardLogger()
	}
	log = log.WithField("backend", adapter.Backend())

	db, err := adapter.Connect(ctx)
	if err != nil {
		return nil, Wrap(ErrIO, "connect to database", err)
	}

	tables, err := adapter.Introspect(ctx, db)
	if err != nil {
		db.Close()
		return nil, Wrap(ErrSQL, "introspect catalog", err)
	}
	catalog := BuildCatalog(tables)
	log.WithField("tables", len(tables)).Debug("catalog loaded")

	return &Store{
		adapter:  adapter,
		db:       db,
		catalog:  catalog,
		compiler: NewCompiler(log),
		log:      log,
	}, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return Wrap(ErrIO, "close database", err)
		}
	}
	return s.adapter.Close()
}

// Catalog returns the entity metadata loaded at Open
func (s *Store) Catalog() *query.Catalog {
	return s.catalog
}

// Entity returns the metadata of table
func (s *Store) Entity(table string) (*query.Entity, error) {
	e, ok := s.catalog.Get(table)
	if !ok {
		return nil, sherrors.SchemaError(fmt.Sprintf("unknown table: %s", table))
	}
	return e, nil
}

// Select compiles filters into a select over table
func (s *Store) Select(table string, filters Filters) (*query.Select, *Report, error) {
	e, err := s.Entity(table)
	if err != nil {
		return nil, nil, err
	}
	q, report, err := s.compiler.Compile(query.From(e), filters, e)
	if err != nil {
		return nil, nil, err
	}
	sel, ok := q.(*query.Select)
	if !ok {
		return nil, nil, sherrors.SchemaError(fmt.Sprintf("unexpected queryable %T", q))
	}
	return sel, report, nil
}

// SearchResult is one page of rows plus the compilation report
type SearchResult struct {
	Rows        []ops.Row
	HasMore     bool
	Report      *Report
	ExplainSQL  string
	ExplainArgs []any
}

// Search returns the rows of table matching filters
func (s *Store) Search(ctx context.Context, table string, filters Filters, opts SearchOptions) (*SearchResult, error) {
	sel, report, err := s.Select(table, filters)
	if err != nil {
		return nil, err
	}
	res, err := ops.Search(ctx, s.db, s.adapter, sel, ops.SearchOptions{
		Limit:   opts.Limit,
		Offset:  opts.Offset,
		Columns: opts.Columns,
		Explain: opts.Explain,
	})
	if err != nil {
		return nil, Wrap(ErrSQL, "search", err)
	}
	s.log.WithFields(logrus.Fields{
		"table":   table,
		"filters": len(filters),
		"rows":    len(res.Rows),
	}).Debug("search")

	return &SearchResult{
		Rows:        res.Rows,
		HasMore:     res.HasMore,
		Report:      report,
		ExplainSQL:  res.ExplainSQL,
		ExplainArgs: res.ExplainArgs,
	}, nil
}

// Count returns the number of rows of table matching filters
func (s *Store) Count(ctx context.Context, table string, filters Filters) (int64, error) {
	sel, _, err := s.Select(table, filters)
	if err != nil {
		return 0, err
	}
	n, err := ops.Count(ctx, s.db, s.adapter, sel)
	if err != nil {
		return 0, Wrap(ErrSQL, "count", err)
	}
	return n, nil
}

// Stats aggregates a numeric column over the rows of table matching filters
func (s *Store) Stats(ctx context.Context, table string, filters Filters, field string) (*ops.StatsResult, error) {
	sel, _, err := s.Select(table, filters)
	if err != nil {
		return nil, err
	}
	res, err := ops.Stats(ctx, s.db, s.adapter, sel, field)
	if err != nil {
		return nil, Wrap(ErrSQL, "stats", err)
	}
	return res, nil
}

// Explain renders the SQL a search would run without executing it
func (s *Store) Explain(table string, filters Filters, opts SearchOptions) (string, []any, *Report, error) {
	sel, report, err := s.Select(table, filters)
	if err != nil {
		return "", nil, nil, err
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	sel = sel.Columns(opts.Columns...).Offset(opts.Offset)

	builder := sqlbuilder.New(s.adapter.PlaceholderStyle())
	stmt, err := planner.BuildSelectSQL(sel, s.adapter.Backend(), builder)
	if err != nil {
		return "", nil, nil, &Error{Kind: ErrSchema, Message: "build SQL", Cause: err}
	}
	return stmt, builder.Args(), report, nil
}
