// Package ftseparator rewrites "featuring" artist credits into separated lists.
//
// An artist such as "Artist A feat. Artist B" becomes "Artist A; Artist B". The
// conjunctions are recognized with a pattern owned by the host ([plugins.FeatTokens]),
// and the separator comes from configuration or the command line.
//
// The plugin works in two places:
//   - the ftseparator command converts library items selected by a query,
//     stores them and, when the host writes tags, writes them to their files;
//   - the import stage converts freshly imported items and stores them, leaving
//     tag writing to the importer.
package ftseparator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ftsep/internal/importer"
	"github.com/desertthunder/ftsep/internal/models"
	"github.com/desertthunder/ftsep/internal/plugins"
	"github.com/desertthunder/ftsep/internal/shared"
)

// Name is the plugin and command name.
const Name = "ftseparator"

var _ plugins.Plugin = (*Plugin)(nil)

// Change records one rewritten field.
type Change struct {
	Field string
	Old   string
	New   string
}

// Plugin converts artist fields of library items.
type Plugin struct {
	opts   Options
	feat   *regexp.Regexp
	logger *log.Logger
}

// New creates the plugin. feat is the host's featuring pattern.
func New(opts Options, feat *regexp.Regexp, logger *log.Logger) *Plugin {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Plugin{opts: opts, feat: feat, logger: logger.WithPrefix(Name)}
}

func (p *Plugin) Name() string { return Name }

// Options returns the configured options.
func (p *Plugin) Options() Options { return p.opts }

// Configure reads the [ftseparator] section and takes the host's featuring pattern.
func (p *Plugin) Configure(cfg *shared.Config, feat *regexp.Regexp) error {
	if feat == nil {
		return fmt.Errorf("%w: no featuring pattern", shared.ErrInvalidConfig)
	}
	p.opts = OptionsFromConfig(cfg.FtSeparator)
	p.feat = feat
	return nil
}

// ImportStages returns the import stage when auto is enabled.
func (p *Plugin) ImportStages() []importer.Stage {
	if !p.opts.Auto {
		return nil
	}
	return []importer.Stage{p}
}

// Imported converts every item the task imported and stores it.
//
// Tags are not written here; the importer does that after all stages.
func (p *Plugin) Imported(session *importer.Session, task *importer.Task) error {
	for _, item := range task.ImportedItems() {
		p.Separate(item.Item, p.opts.Separator, p.opts.ConvertAlbumArtist, p.opts.ConvertSortArtist)
		if err := item.Store(); err != nil {
			return err
		}
	}
	return nil
}

// Separate rewrites the artist field of item, and optionally albumartist and
// artist_sort, joining featured artists with separator.
//
// A field changes only when the joined form differs from its trimmed value.
// Empty album and sort artists are left alone. Nothing is persisted.
func (p *Plugin) Separate(item *models.Item, separator string, albumArtist, sortArtist bool) []Change {
	var changes []Change

	for _, field := range convertedFields(albumArtist, sortArtist) {
		value, _ := item.Field(field)
		if field != models.FieldArtist && value == "" {
			continue
		}

		trimmed := strings.TrimSpace(value)
		joined := rejoin(p.feat, trimmed, separator)
		if joined == trimmed {
			continue
		}

		if err := item.SetField(field, joined); err != nil {
			p.logger.Warn("skipping field", "field", field, "error", err)
			continue
		}
		p.logger.Infof("%s: %s -> %s", field, value, joined)
		changes = append(changes, Change{Field: field, Old: value, New: joined})
	}

	return changes
}

// convertedFields lists the fields Separate rewrites, artist first.
func convertedFields(albumArtist, sortArtist bool) []string {
	fields := []string{models.FieldArtist}
	if albumArtist {
		fields = append(fields, models.FieldAlbumArtist)
	}
	if sortArtist {
		fields = append(fields, models.FieldArtistSort)
	}
	return fields
}
