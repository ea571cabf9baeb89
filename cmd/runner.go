package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ftsep/internal/library"
	"github.com/desertthunder/ftsep/internal/plugins"
	"github.com/desertthunder/ftsep/internal/shared"
	"github.com/urfave/cli/v3"
)

var _ plugins.Host = (*Runner)(nil)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// It is also the [plugins.Host] handed to plugin commands.
type Runner struct {
	config     *shared.Config
	configPath string
	registry   *plugins.Registry
	logger     *log.Logger
	output     io.Writer
	nowrite    bool
	lib        *library.Library
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config   *shared.Config
	Registry *plugins.Registry
	Logger   *log.Logger
	Output   io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Registry == nil {
		opts.Registry = plugins.NewRegistry()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:   opts.Config,
		registry: opts.Registry,
		logger:   opts.Logger,
		output:   opts.Output,
	}
}

// Library opens the library on first use and returns the same one afterwards.
func (r *Runner) Library(ctx context.Context) (*library.Library, error) {
	if r.lib != nil {
		return r.lib, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lib, err := library.Open(r.config.Library.Path, library.NewTagger(), r.logger)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("opened library", "path", r.config.Library.Path)
	r.lib = lib
	return lib, nil
}

// ShouldWrite reports whether tags are written: [import] write unless --nowrite was given.
func (r *Runner) ShouldWrite() bool {
	return r.config.Import.Write && !r.nowrite
}

func (r *Runner) Logger() *log.Logger {
	return r.logger
}

// Close closes the library if it was opened.
func (r *Runner) Close() error {
	if r.lib == nil {
		return nil
	}
	err := r.lib.Close()
	r.lib = nil
	return err
}

// app builds the root command.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:    "ftsep",
		Usage:   "Keep a music library's artist credits as separated lists",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   shared.ConfigPath("config.toml"),
			},
			&cli.BoolFlag{
				Name:    "nowrite",
				Aliases: []string{"W"},
				Usage:   "Don't write tags to files",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Log debug messages",
			},
		},
		Before:   r.before,
		After:    r.after,
		Commands: r.register(),
	}
}

// before loads the configuration and configures every plugin.
//
// A missing config file means defaults; setup creates it.
func (r *Runner) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}
	r.nowrite = cmd.Bool("nowrite")
	r.configPath = cmd.String("config")

	config, err := r.loadConfig(r.configPath, cmd.IsSet("config"))
	if err != nil {
		return ctx, err
	}
	r.config = config

	if err := r.registry.Configure(config); err != nil {
		return ctx, err
	}
	return ctx, nil
}

func (r *Runner) after(ctx context.Context, cmd *cli.Command) error {
	return r.Close()
}

func (r *Runner) loadConfig(path string, explicit bool) (*shared.Config, error) {
	config := shared.DefaultConfig()

	switch _, err := os.Stat(path); {
	case err == nil:
		if config, err = shared.LoadConfig(path); err != nil {
			return nil, err
		}
		r.logger.Debug("loaded config", "path", path)
	case errors.Is(err, fs.ErrNotExist) && explicit:
		r.logger.Warn("config file not found, using defaults", "path", path)
	case errors.Is(err, fs.ErrNotExist):
		r.logger.Debug("config file not found, using defaults", "path", path)
	default:
		return nil, fmt.Errorf("%w: %v", shared.ErrMissingConfig, err)
	}

	config.ApplyEnv()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, configCommand, importCommand, listCommand,
	} {
		commands = append(commands, fn(r))
	}

	return append(commands, r.registry.Commands(r)...)
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeBytes(data []byte) error {
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
