package ftseparator

import (
	"context"

	"github.com/desertthunder/ftsep/internal/library"
	"github.com/desertthunder/ftsep/internal/plugins"
	"github.com/urfave/cli/v3"
)

// Result summarizes a command run.
type Result struct {
	Items   int
	Changed int
	Written int
}

// Commands returns the ftseparator subcommand.
func (p *Plugin) Commands(host plugins.Host) []*cli.Command {
	return []*cli.Command{
		{
			Name:      Name,
			Usage:     "turn multi-artist fields into separated lists",
			ArgsUsage: "[query...]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "separator",
					Aliases: []string{"s"},
					Usage:   "separator to be inserted between each artist",
				},
				&cli.BoolFlag{
					Name:    "albumartist",
					Aliases: []string{"a"},
					Usage:   "apply conversion to album artist field",
				},
				&cli.BoolFlag{
					Name:    "sortartist",
					Aliases: []string{"r"},
					Usage:   "apply conversion to sort artist field",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				p.logger.SetLevel(host.Logger().GetLevel())

				lib, err := host.Library(ctx)
				if err != nil {
					return err
				}

				_, err = p.Run(ctx, lib, cmd.Args().Slice(), p.commandOptions(cmd), host.ShouldWrite())
				return err
			},
		},
	}
}

// commandOptions layers flags given on the command line over the configured options.
func (p *Plugin) commandOptions(cmd *cli.Command) Options {
	opts := p.opts
	if cmd.IsSet("separator") {
		opts.Separator = cmd.String("separator")
	}
	if cmd.Bool("albumartist") {
		opts.ConvertAlbumArtist = true
	}
	if cmd.Bool("sortartist") {
		opts.ConvertSortArtist = true
	}
	return opts
}

// Run converts every item matching query, storing each one before moving on.
//
// When write is set each item is also written to its file; write failures are
// logged and skipped. A store failure stops the run and is returned, leaving
// the items already stored in place.
func (p *Plugin) Run(ctx context.Context, lib *library.Library, query []string, opts Options, write bool) (*Result, error) {
	items, err := lib.Items(ctx, query)
	if err != nil {
		return nil, err
	}

	result := &Result{Items: len(items)}
	for _, item := range items {
		if changes := p.Separate(item.Item, opts.Separator, opts.ConvertAlbumArtist, opts.ConvertSortArtist); len(changes) > 0 {
			result.Changed++
		}

		if err := item.Store(); err != nil {
			return result, err
		}

		if write && item.TryWrite() {
			result.Written++
		}
	}

	p.logger.Debug("done", "items", result.Items, "changed", result.Changed, "written", result.Written)
	return result, nil
}
