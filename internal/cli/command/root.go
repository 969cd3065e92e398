package command

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	cliconfig "github.com/transgate/transgate-go/internal/cli/config"
	"github.com/transgate/transgate-go/internal/cli/connection"
	"github.com/transgate/transgate-go/internal/infra/buildinfo"
)

// App creates the CLI application.
func App() *cli.App {
	defaults, err := cliconfig.Load("")
	if err != nil {
		defaults = cliconfig.Default()
	}

	app := &cli.App{
		Name:    "transgate-cli",
		Usage:   "TransGate command-line management tool",
		Version: buildinfo.String(),
		Flags:   globalFlags(defaults),
		Commands: []*cli.Command{
			ActivateCommand(),
			TranslateCommand(),
			SessionCommand(),
			TokenCommand(),
			SystemCommand(),
		},
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags(defaults *cliconfig.CLIConfig) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "TransGate server address (e.g., localhost:6080)",
			EnvVars: []string{"TRANSGATE_SERVER"},
			Value:   defaults.DefaultServer,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   defaults.DefaultOutput,
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
	}
}

// GlobalFlags defines flags available to all commands.
type GlobalFlags struct {
	Server string
	Output string // table, json, yaml
	Wide   bool
}

// ParseGlobalFlags extracts global flags from context.
func ParseGlobalFlags(c *cli.Context) *GlobalFlags {
	return &GlobalFlags{
		Server: c.String("server"),
		Output: c.String("output"),
		Wide:   c.Bool("wide"),
	}
}

// Client builds the HTTP client from the global flags.
func Client(c *cli.Context) *connection.HTTPClient {
	return connection.NewHTTPClient(ParseGlobalFlags(c).Server)
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
