package cliopt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. SEARCHHOOK_PG_DSN
const EnvPrefix = "SEARCHHOOK"

// GlobalOptions are parsed once at the CLI root and passed to subcommands.
//
// NOTE: This is a separate package to avoid import cycles between the root
// command router and per-command code.
type GlobalOptions struct {
	Backend        string `mapstructure:"backend"`
	SQLitePath     string `mapstructure:"sqlite_path"`
	SQLiteDriver   string `mapstructure:"sqlite_driver"`
	PostgresDSN    string `mapstructure:"pg_dsn"`
	PostgresSchema string `mapstructure:"pg_schema"`

	Format   string `mapstructure:"format"`
	LogLevel string `mapstructure:"log_level"`
	Config   string `mapstructure:"config"`
}

func DefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		Backend:        "sqlite",
		SQLitePath:     "searchhook.db",
		SQLiteDriver:   "sqlite",
		PostgresSchema: "public",
		Format:         "pretty",
		LogLevel:       "warn",
	}
}

func BindGlobalFlags(fs *pflag.FlagSet, g *GlobalOptions) {
	fs.StringVar(&g.Backend, "backend", g.Backend, "backend: sqlite|postgres")

	fs.StringVar(&g.SQLitePath, "sqlite-path", g.SQLitePath, "sqlite database file")
	fs.StringVar(&g.SQLiteDriver, "sqlite-driver", g.SQLiteDriver, "sqlite driver: sqlite (pure Go) or sqlite3 (cgo)")

	fs.StringVar(&g.PostgresDSN, "pg-dsn", g.PostgresDSN, "postgres DSN")
	fs.StringVar(&g.PostgresSchema, "pg-schema", g.PostgresSchema, "postgres schema holding the tables")

	fs.StringVar(&g.Format, "format", g.Format, "output format: pretty|json")
	fs.StringVar(&g.LogLevel, "log-level", g.LogLevel, "log level: debug|info|warn|error")
	fs.StringVar(&g.Config, "config", g.Config, "config file (yaml, toml or json)")
}

// Load layers flags over environment over an optional config file onto g.
// Flags set explicitly on the command line always win.
func Load(fs *pflag.FlagSet, g *GlobalOptions) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	if bindErr != nil {
		return bindErr
	}

	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", file, err)
		}
	} else {
		v.SetConfigName("searchhook")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return fmt.Errorf("read config: %w", err)
			}
		}
	}

	if err := v.Unmarshal(g); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// Validate checks option combinations that flags alone cannot express
func (g GlobalOptions) Validate() error {
	switch strings.ToLower(g.Backend) {
	case "sqlite":
		if g.SQLitePath == "" {
			return errors.New("--sqlite-path is required for the sqlite backend")
		}
	case "postgres", "pg":
		if g.PostgresDSN == "" {
			return errors.New("--pg-dsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown backend %q (want sqlite or postgres)", g.Backend)
	}
	switch g.Format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unknown format %q (want pretty or json)", g.Format)
	}
	return nil
}
