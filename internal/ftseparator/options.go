package ftseparator

import "github.com/desertthunder/ftsep/internal/shared"

// DefaultSeparator is placed between artists when nothing else is configured.
const DefaultSeparator = "; "

// Options are the plugin settings, resolved once from configuration.
type Options struct {
	// Auto registers the import stage.
	Auto bool
	// Separator is inserted verbatim between artists.
	Separator string
	// ConvertAlbumArtist includes the albumartist field.
	ConvertAlbumArtist bool
	// ConvertSortArtist includes the artist_sort field.
	ConvertSortArtist bool
}

// DefaultOptions returns auto on, "; " as separator and only the artist field converted.
func DefaultOptions() Options {
	return Options{Auto: true, Separator: DefaultSeparator}
}

// OptionsFromConfig converts the [ftseparator] config section.
func OptionsFromConfig(cfg shared.FtSeparatorConfig) Options {
	return Options{
		Auto:               cfg.Auto,
		Separator:          cfg.Separator,
		ConvertAlbumArtist: cfg.ConvertAlbumArtist,
		ConvertSortArtist:  cfg.ConvertSortArtist,
	}
}
