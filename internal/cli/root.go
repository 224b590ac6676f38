package cli

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/nonibytes/searchhook/internal/cli/commands"
	"github.com/nonibytes/searchhook/internal/cliopt"
)

// Execute runs the CLI and returns an exit code.
func Execute(argv []string) int {
	globalFS := pflag.NewFlagSet("searchhook", pflag.ContinueOnError)
	globalFS.SetOutput(os.Stderr)
	// everything after the verb belongs to the subcommand
	globalFS.SetInterspersed(false)
	g := cliopt.DefaultGlobalOptions()
	cliopt.BindGlobalFlags(globalFS, &g)

	if err := globalFS.Parse(argv); err != nil {
		if err == pflag.ErrHelp {
			PrintRootHelp(os.Stdout)
			return 0
		}
		// pflag already printed the error
		return 2
	}
	if err := cliopt.Load(globalFS, &g); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	args := globalFS.Args()
	if len(args) == 0 {
		PrintRootHelp(os.Stdout)
		return 0
	}

	verb := args[0]
	rest := args[1:]

	switch verb {
	case "--help", "-h", "help":
		PrintRootHelp(os.Stdout)
		return 0
	case "search":
		return commands.RunSearch(g, rest)
	case "count":
		return commands.RunCount(g, rest)
	case "stats":
		return commands.RunStats(g, rest)
	case "explain":
		return commands.RunExplain(g, rest)
	case "schema":
		return commands.RunSchema(g, rest)
	case "operators":
		return commands.RunOperators(g, rest)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", verb)
		PrintRootHelp(os.Stderr)
		return 2
	}
}
