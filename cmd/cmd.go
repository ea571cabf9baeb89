// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/ftsep/internal/formatter"
	"github.com/urfave/cli/v3"
)

// setupCommand creates the config file and library database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create the config file and initialize the library database",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "rollback",
				Usage: "Roll back the most recent database migration instead",
			},
		},
		Action: r.Setup,
	}
}

// configCommand prints the effective configuration.
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "config",
		Usage:  "Print the effective configuration as TOML",
		Action: r.Config,
	}
}

// importCommand adds audio files to the library.
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "import",
		Aliases:   []string{"imp", "im"},
		Usage:     "Import MP3 files into the library",
		ArgsUsage: "<path...>",
		Action:    r.Import,
	}
}

// listCommand queries the library.
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Aliases:   []string{"list"},
		Usage:     "List items matching a query",
		ArgsUsage: "[query...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: plain, table or csv",
				Value:   string(formatter.FormatTable),
			},
		},
		Action: r.List,
	}
}
