// Package plugins is the extension API of the ftsep host.
//
// A [Plugin] contributes subcommands and import stages. Plugins are added to a
// [Registry] at startup, configured once the configuration file has been read,
// and then asked for their commands and stages. The host also owns the
// "featuring" conjunction vocabulary ([FeatTokens]) that plugins split on.
package plugins

import (
	"context"
	"fmt"
	"regexp"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ftsep/internal/importer"
	"github.com/desertthunder/ftsep/internal/library"
	"github.com/desertthunder/ftsep/internal/shared"
	"github.com/urfave/cli/v3"
)

// Host is the part of the application plugin commands call back into.
type Host interface {
	// Library opens the library, or returns the one already open.
	Library(ctx context.Context) (*library.Library, error)
	// ShouldWrite reports whether changed items should also be written to their files.
	ShouldWrite() bool
	// Logger returns the application logger.
	Logger() *log.Logger
}

// Plugin extends the host with commands and import stages.
type Plugin interface {
	Name() string
	// Configure receives the loaded configuration and the host's featuring pattern.
	Configure(cfg *shared.Config, feat *regexp.Regexp) error
	Commands(host Host) []*cli.Command
	ImportStages() []importer.Stage
}

// Registry holds plugins in registration order.
type Registry struct {
	plugins []Plugin
	names   map[string]bool
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[string]bool)}
}

// Register adds p. Names must be unique.
func (r *Registry) Register(p Plugin) error {
	if r.names[p.Name()] {
		return fmt.Errorf("%w: %s", shared.ErrDuplicatePlugin, p.Name())
	}
	r.names[p.Name()] = true
	r.plugins = append(r.plugins, p)
	return nil
}

// Plugins returns the registered plugins.
func (r *Registry) Plugins() []Plugin {
	return r.plugins
}

// Configure compiles the featuring pattern from cfg and hands both to every plugin.
func (r *Registry) Configure(cfg *shared.Config) error {
	feat, err := CompileFeatTokens(cfg.Library.FeatWords)
	if err != nil {
		return err
	}

	for _, p := range r.plugins {
		if err := p.Configure(cfg, feat); err != nil {
			return fmt.Errorf("failed to configure plugin %s: %w", p.Name(), err)
		}
	}
	return nil
}

// Commands collects the subcommands of all plugins.
func (r *Registry) Commands(host Host) []*cli.Command {
	var commands []*cli.Command
	for _, p := range r.plugins {
		commands = append(commands, p.Commands(host)...)
	}
	return commands
}

// ImportStages collects the import stages of all plugins in registration order.
func (r *Registry) ImportStages() []importer.Stage {
	var stages []importer.Stage
	for _, p := range r.plugins {
		stages = append(stages, p.ImportStages()...)
	}
	return stages
}
