// package testing contains shared testing utilities
package testing

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/ftsep/internal/models"
	"github.com/desertthunder/ftsep/internal/shared"
)

// MemoryStore is an in-memory test double for [library.ItemStore].
//
// It records the path of every Update call in order.
type MemoryStore struct {
	items     []*models.Item
	Updated   []string
	UpdateErr map[string]error
}

// NewMemoryStore creates a MemoryStore holding items, assigning IDs where missing.
func NewMemoryStore(items ...*models.Item) *MemoryStore {
	s := &MemoryStore{UpdateErr: make(map[string]error)}
	for _, item := range items {
		_ = s.Create(item)
	}
	return s
}

func (s *MemoryStore) Create(item *models.Item) error {
	for _, existing := range s.items {
		if existing.Path == item.Path {
			return fmt.Errorf("UNIQUE constraint failed: items.path")
		}
	}
	if item.ID() == "" {
		item.SetID(shared.GenerateID())
	}
	item.SetSequence(len(s.items) + 1)
	s.items = append(s.items, item)
	return nil
}

func (s *MemoryStore) Update(item *models.Item) error {
	if err := s.UpdateErr[item.Path]; err != nil {
		return err
	}
	s.Updated = append(s.Updated, item.Path)
	return nil
}

func (s *MemoryStore) GetByPath(path string) (*models.Item, error) {
	for _, item := range s.items {
		if item.Path == path {
			return item, nil
		}
	}
	return nil, shared.ErrItemNotFound
}

func (s *MemoryStore) List(criteria map[string]any) ([]*models.Item, error) {
	return append([]*models.Item(nil), s.items...), nil
}

// RecordingTagger is a test double for [library.TagWriter] and the importer's tag reader.
type RecordingTagger struct {
	Written  []string
	WriteErr error
	// Tags maps a path to the item ReadTags returns for it.
	Tags map[string]models.Item
}

func (r *RecordingTagger) WriteTags(item *models.Item) error {
	if r.WriteErr != nil {
		return r.WriteErr
	}
	r.Written = append(r.Written, item.Path)
	return nil
}

func (r *RecordingTagger) ReadTags(path string) (*models.Item, error) {
	tags, ok := r.Tags[path]
	if !ok {
		return nil, errors.New("no tags")
	}
	item := models.NewItem(path)
	item.Title = tags.Title
	item.Artist = tags.Artist
	item.AlbumArtist = tags.AlbumArtist
	item.ArtistSort = tags.ArtistSort
	item.Album = tags.Album
	item.Track = tags.Track
	return item, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MustWriteFile creates path (and its parents) with content.
func MustWriteFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
