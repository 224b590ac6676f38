package cliutil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nonibytes/searchhook/internal/cliopt"
	"github.com/nonibytes/searchhook/searchhook"
	"github.com/nonibytes/searchhook/searchhook/storage"
	"github.com/nonibytes/searchhook/searchhook/storage/postgres"
	"github.com/nonibytes/searchhook/searchhook/storage/sqlite"
)

type OutputFormat string

const (
	FormatPretty OutputFormat = "pretty"
	FormatJSON   OutputFormat = "json"
)

func ParseOutputFormat(s string) OutputFormat {
	switch OutputFormat(s) {
	case FormatPretty, FormatJSON:
		return OutputFormat(s)
	default:
		return FormatPretty
	}
}

func PrintJSON(w io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

// NewLogger returns a stderr logger at the named level
func NewLogger(level string) (*logrus.Entry, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(lvl)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return logrus.NewEntry(l), nil
}

// NewAdapter picks the storage adapter named by g.Backend
func NewAdapter(g cliopt.GlobalOptions) storage.Adapter {
	switch strings.ToLower(g.Backend) {
	case "postgres", "pg":
		return postgres.New(g.PostgresDSN, g.PostgresSchema)
	default:
		return sqlite.NewWithDriver(g.SQLitePath, g.SQLiteDriver)
	}
}

// OpenStore connects to the configured database
func OpenStore(ctx context.Context, g cliopt.GlobalOptions, log *logrus.Entry) (*searchhook.Store, error) {
	if err := g.Validate(); err != nil {
		return nil, searchhook.Wrap(searchhook.ErrConfig, "invalid options", err)
	}
	opts := searchhook.DefaultStoreOptions()
	opts.Logger = log
	return searchhook.Open(ctx, NewAdapter(g), opts)
}
