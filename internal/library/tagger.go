package library

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bogem/id3v2"
	"github.com/desertthunder/ftsep/internal/models"
)

// ID3 frames for the artist fields.
const (
	frameArtist      = "TPE1"
	frameAlbumArtist = "TPE2"
	frameArtistSort  = "TSOP"
	frameTrack       = "TRCK"
)

// Tagger reads and writes ID3v2 tags on MP3 files.
//
// Only the fields the library tracks are touched; every other frame is kept as found.
//
// Example:
//
//	tagger := NewTagger()
//	item, err := tagger.ReadTags("/music/Artist/Album/01 Song.mp3")
//	item.Artist = "Artist A; Artist B"
//	err = tagger.WriteTags(item)
type Tagger struct{}

// NewTagger creates a new Tagger.
func NewTagger() *Tagger {
	return &Tagger{}
}

// ReadTags builds an unsaved item from the tags of the file at path.
//
// Files without a tag yield an item whose title is the file name.
func (t *Tagger) ReadTags(path string) (*models.Item, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read tags: %w", err)
	}
	defer tag.Close()

	item := models.NewItem(path)
	item.Title = strings.TrimSpace(tag.Title())
	item.Artist = strings.TrimSpace(tag.Artist())
	item.Album = strings.TrimSpace(tag.Album())
	item.AlbumArtist = textFrame(tag, frameAlbumArtist)
	item.ArtistSort = textFrame(tag, frameArtistSort)
	item.Track = parseTrack(textFrame(tag, frameTrack))

	if item.Title == "" {
		item.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return item, nil
}

// WriteTags saves the item's title, album and artist fields into its file.
//
// Empty album artist and sort artist values remove their frames.
func (t *Tagger) WriteTags(item *models.Item) error {
	tag, err := id3v2.Open(item.Path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(item.Title)
	tag.SetAlbum(item.Album)
	setTextFrame(tag, frameArtist, item.Artist)
	setTextFrame(tag, frameAlbumArtist, item.AlbumArtist)
	setTextFrame(tag, frameArtistSort, item.ArtistSort)

	if item.Track > 0 {
		setTextFrame(tag, frameTrack, strconv.Itoa(item.Track))
	}

	return tag.Save()
}

func textFrame(tag *id3v2.Tag, id string) string {
	return strings.TrimSpace(tag.GetTextFrame(id).Text)
}

func setTextFrame(tag *id3v2.Tag, id, value string) {
	if value == "" {
		tag.DeleteFrames(id)
		return
	}
	tag.AddTextFrame(id, tag.DefaultEncoding(), value)
}

// parseTrack reads "3" or "3/12" as 3.
func parseTrack(s string) int {
	num, _, _ := strings.Cut(s, "/")
	n, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
