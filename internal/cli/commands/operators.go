package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/nonibytes/searchhook/internal/cliopt"
	"github.com/nonibytes/searchhook/internal/cliutil"
	"github.com/nonibytes/searchhook/searchhook"
)

// RunOperators prints the operator suffixes and combinator keywords a filter
// key may use. It needs no database.
func RunOperators(g cliopt.GlobalOptions, argv []string) int {
	fs := newFlagSet("operators")
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	ops := searchhook.Operators()
	combs := searchhook.CombinatorKeywords()
	if cliutil.ParseOutputFormat(g.Format) == cliutil.FormatJSON {
		cliutil.PrintJSON(os.Stdout, map[string]any{"operators": ops, "combinators": combs})
		return 0
	}
	fmt.Fprintf(os.Stdout, "operators:   %s\n", strings.Join(ops, ", "))
	fmt.Fprintf(os.Stdout, "combinators: %s\n", strings.Join(combs, ", "))
	fmt.Fprintln(os.Stdout, "\nkey form: <path>[_<combinator>_<path>...]_<operator>, e.g. category_name_or_title_like")
	return 0
}
