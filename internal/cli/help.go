package cli

import (
	"fmt"
	"io"
)

func PrintRootHelp(w io.Writer) {
	fmt.Fprintln(w, `searchhook - query SQL tables with flat filter keys

USAGE
  searchhook [global flags] <command> [args]

GLOBAL FLAGS
  --backend sqlite|postgres
  --sqlite-path <file.db>
  --sqlite-driver sqlite|sqlite3
  --pg-dsn <dsn>
  --pg-schema <name>
  --format pretty|json
  --log-level debug|info|warn|error
  --config <file>

  Every flag can also be set as SEARCHHOOK_<FLAG> (e.g. SEARCHHOOK_PG_DSN)
  or in ./searchhook.yaml.

COMMANDS
  search    -t <table> [-f key=value]... [--limit N] [--offset N] [--columns c1,c2] [--explain]
  count     -t <table> [-f key=value]...
  stats     -t <table> --field <column> [-f key=value]...
  explain   -t <table> [-f key=value]... [--limit N] [--offset N] [--columns c1,c2]
  schema    [-t <table>]
  operators

FILTERS
  A key is a field path plus an operator suffix. Paths may cross relations
  and be joined with _and_ / _or_:

    -f price_gt=100
    -f category_name_eq=Go
    -f title_or_body_ilike=postgres
    -f id_in=1,2,3
    -f views_between=[10,50]

  Values are decoded as JSON when possible, otherwise taken as strings.`)
}
