package models

import (
	"fmt"
	"slices"
	"strconv"
	"time"
)

// Item field names, as used in queries, logs and [Item.Field].
const (
	FieldPath        = "path"
	FieldTitle       = "title"
	FieldArtist      = "artist"
	FieldAlbumArtist = "albumartist"
	FieldArtistSort  = "artist_sort"
	FieldAlbum       = "album"
	FieldTrack       = "track"
)

// ItemFields lists every addressable item field.
var ItemFields = []string{FieldPath, FieldTitle, FieldArtist, FieldAlbumArtist, FieldArtistSort, FieldAlbum, FieldTrack}

// Item is a single track in the library.
//
// Metadata fields are exported and mutated in memory; persistence goes through a [Repository].
type Item struct {
	id        string
	sequence  int
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time

	Path        string
	Title       string
	Artist      string
	AlbumArtist string
	ArtistSort  string
	Album       string
	Track       int
}

// NewItem creates an unsaved item for the file at path.
func NewItem(path string) *Item {
	now := time.Now()
	return &Item{Path: path, createdAt: now, updatedAt: now}
}

func (i *Item) ID() string { return i.id }
func (i *Item) Sequence() int { return i.sequence }
func (i *Item) CreatedAt() time.Time { return i.createdAt }
func (i *Item) UpdatedAt() time.Time { return i.updatedAt }
func (i *Item) DeletedAt() *time.Time { return i.deletedAt }

func (i *Item) SetID(id string) { i.id = id }
func (i *Item) SetSequence(seq int) { i.sequence = seq }
func (i *Item) SetCreatedAt(t time.Time) { i.createdAt = t }
func (i *Item) SetUpdatedAt(t time.Time) { i.updatedAt = t }
func (i *Item) SetDeletedAt(t *time.Time) { i.deletedAt = t }

// Validate checks that the item can be stored.
func (i *Item) Validate() error {
	if i.id == "" {
		return fmt.Errorf("item ID is required")
	}
	if i.Path == "" {
		return fmt.Errorf("item path is required")
	}
	if i.Track < 0 {
		return fmt.Errorf("track number must not be negative: %d", i.Track)
	}
	return nil
}

// Field returns the value of the named field rendered as a string.
func (i *Item) Field(name string) (string, bool) {
	switch name {
	case FieldPath:
		return i.Path, true
	case FieldTitle:
		return i.Title, true
	case FieldArtist:
		return i.Artist, true
	case FieldAlbumArtist:
		return i.AlbumArtist, true
	case FieldArtistSort:
		return i.ArtistSort, true
	case FieldAlbum:
		return i.Album, true
	case FieldTrack:
		return strconv.Itoa(i.Track), true
	default:
		return "", false
	}
}

// SetField assigns value to the named field.
func (i *Item) SetField(name, value string) error {
	switch name {
	case FieldPath:
		i.Path = value
	case FieldTitle:
		i.Title = value
	case FieldArtist:
		i.Artist = value
	case FieldAlbumArtist:
		i.AlbumArtist = value
	case FieldArtistSort:
		i.ArtistSort = value
	case FieldAlbum:
		i.Album = value
	case FieldTrack:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("track must be a number: %w", err)
		}
		i.Track = n
	default:
		return fmt.Errorf("unknown field %q", name)
	}
	return nil
}

// IsField reports whether name is an addressable item field.
func IsField(name string) bool {
	return slices.Contains(ItemFields, name)
}
