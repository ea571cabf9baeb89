// Package library is the host-side view of the music library.
//
// A [Library] wraps an [ItemStore] (the SQLite repository in production) and a
// [TagWriter] (the ID3 tagger). It hands out [Item] values that carry their own
// persistence methods, so plugins can mutate metadata in memory and then call
// [Item.Store] and [Item.TryWrite] without knowing where either goes.
package library

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ftsep/internal/models"
	"github.com/desertthunder/ftsep/internal/repositories"
	"github.com/desertthunder/ftsep/internal/shared"
	"github.com/gofrs/flock"
)

// ItemStore persists items. [repositories.ItemRepository] implements it.
type ItemStore interface {
	Create(item *models.Item) error
	Update(item *models.Item) error
	GetByPath(path string) (*models.Item, error)
	List(criteria map[string]any) ([]*models.Item, error)
}

// TagWriter writes an item's metadata to its audio file.
type TagWriter interface {
	WriteTags(item *models.Item) error
}

// Library is a collection of items backed by an [ItemStore].
type Library struct {
	store  ItemStore
	tags   TagWriter
	logger *log.Logger

	db   *sql.DB
	lock *flock.Flock
}

// New creates a Library over store and tags.
func New(store ItemStore, tags TagWriter, logger *log.Logger) *Library {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Library{store: store, tags: tags, logger: logger}
}

// Open opens the SQLite library at path, migrating it if needed.
//
// File-backed libraries are locked for the lifetime of the Library; another
// process opening the same path gets [shared.ErrLibraryLocked].
func Open(path string, tags TagWriter, logger *log.Logger) (*Library, error) {
	var lock *flock.Flock
	if path != shared.MemoryDatabase {
		lock = flock.New(path + ".lock")
		ok, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire library lock: %w", err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s", shared.ErrLibraryLocked, path)
		}
	}

	db, err := shared.OpenLibraryDatabase(path)
	if err != nil {
		if lock != nil {
			_ = lock.Unlock()
		}
		return nil, err
	}

	lib := New(repositories.NewItemRepository(db), tags, logger)
	lib.db = db
	lib.lock = lock
	return lib, nil
}

// Close releases the database and the library lock.
func (l *Library) Close() error {
	var errs []error
	if l.db != nil {
		errs = append(errs, l.db.Close())
		l.db = nil
	}
	if l.lock != nil {
		errs = append(errs, l.lock.Unlock())
		l.lock = nil
	}
	return errors.Join(errs...)
}

// Items returns every item matching query, in library order.
//
// The result is fully materialized before it is returned.
func (l *Library) Items(ctx context.Context, query []string) ([]*Item, error) {
	q, err := ParseQuery(query)
	if err != nil {
		return nil, err
	}

	stored, err := l.store.List(map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	var items []*Item
	for _, m := range stored {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if q.Match(m) {
			items = append(items, l.wrap(m))
		}
	}

	l.logger.Debug("queried library", "query", query, "matches", len(items))
	return items, nil
}

// Add inserts a new item into the library.
func (l *Library) Add(item *models.Item) (*Item, error) {
	if err := l.store.Create(item); err != nil {
		return nil, fmt.Errorf("failed to add %s: %w", item.Path, err)
	}
	return l.wrap(item), nil
}

// Contains reports whether an item for path is already in the library.
func (l *Library) Contains(path string) (bool, error) {
	_, err := l.store.GetByPath(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, shared.ErrItemNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("failed to look up %s: %w", path, err)
	}
}

func (l *Library) wrap(m *models.Item) *Item {
	return &Item{Item: m, lib: l}
}
