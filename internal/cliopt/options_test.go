package cliopt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) GlobalOptions {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	g := DefaultGlobalOptions()
	BindGlobalFlags(fs, &g)
	require.NoError(t, fs.Parse(args))
	require.NoError(t, Load(fs, &g))
	return g
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "conf.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("backend: postgres\npg_dsn: postgres://file\nformat: json\n"), 0o644))

	t.Setenv("SEARCHHOOK_PG_DSN", "postgres://env")

	g := parse(t, "--config", cfg)
	assert.Equal(t, "postgres", g.Backend)
	assert.Equal(t, "postgres://env", g.PostgresDSN)
	assert.Equal(t, "json", g.Format)
	assert.Equal(t, "public", g.PostgresSchema)

	g = parse(t, "--config", cfg, "--pg-dsn", "postgres://flag")
	assert.Equal(t, "postgres://flag", g.PostgresDSN)
	require.NoError(t, g.Validate())
}

func TestValidate(t *testing.T) {
	g := DefaultGlobalOptions()
	require.NoError(t, g.Validate())

	g.Backend = "redis"
	assert.Error(t, g.Validate())

	g = DefaultGlobalOptions()
	g.Backend = "postgres"
	assert.Error(t, g.Validate())

	g = DefaultGlobalOptions()
	g.Format = "xml"
	assert.Error(t, g.Validate())
}
