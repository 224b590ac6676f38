package searchhook

import "github.com/sirupsen/logrus"

// StoreOptions configures a Store
type StoreOptions struct {
	Logger *logrus.Entry // nil discards log output
}

// DefaultStoreOptions returns sensible defaults
func DefaultStoreOptions() StoreOptions {
	return StoreOptions{}
}

// SearchOptions configures a search
type SearchOptions struct {
	Limit   int      // default DefaultLimit
	Offset  int      // rows to skip
	Columns []string // root columns to return; empty returns all
	Explain bool     // include the SQL in the result
}

// DefaultSearchOptions returns sensible defaults
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{Limit: DefaultLimit}
}
