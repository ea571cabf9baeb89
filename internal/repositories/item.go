package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/ftsep/internal/models"
	"github.com/desertthunder/ftsep/internal/shared"
)

const itemColumns = `id, sequence, path, title, artist, albumartist, artist_sort, album, track, created_at, updated_at, deleted_at`

var _ models.Repository[*models.Item] = (*ItemRepository)(nil)

// ItemRepository implements models.Repository[*models.Item] for the library.
type ItemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a new ItemRepository with the given database connection
func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create inserts a new [models.Item] into the database with generated ID and sequence
func (r *ItemRepository) Create(item *models.Item) error {
	sequence, err := NextSequence(r.db, "items")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	item.SetID(shared.GenerateID())
	item.SetSequence(sequence)

	if err := item.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO items (id, sequence, path, title, artist, albumartist, artist_sort, album, track, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		item.ID(),
		item.Sequence(),
		item.Path,
		item.Title,
		item.Artist,
		item.AlbumArtist,
		item.ArtistSort,
		item.Album,
		item.Track,
		item.CreatedAt(),
		item.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	return nil
}

// Get retrieves an item by ID, excluding soft-deleted items
func (r *ItemRepository) Get(id string) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = ? AND deleted_at IS NULL`
	return r.scan(r.db.QueryRow(query, id))
}

// GetByPath retrieves an item by its file path
func (r *ItemRepository) GetByPath(path string) (*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE path = ? AND deleted_at IS NULL`
	return r.scan(r.db.QueryRow(query, path))
}

// Update writes the item's metadata fields back to its row
func (r *ItemRepository) Update(item *models.Item) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()

	query := `
		UPDATE items
		SET path = ?, title = ?, artist = ?, albumartist = ?, artist_sort = ?, album = ?, track = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		item.Path,
		item.Title,
		item.Artist,
		item.AlbumArtist,
		item.ArtistSort,
		item.Album,
		item.Track,
		now,
		item.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrItemNotFound, item.ID())
	}

	item.SetUpdatedAt(now)
	return nil
}

// Delete soft-deletes an item by ID
func (r *ItemRepository) Delete(id string) error {
	query := `UPDATE items SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrItemNotFound, id)
	}

	return nil
}

// List retrieves items in library order, excluding soft-deleted items.
//
// criteria is accepted for [models.Repository] and ignored; item selection is
// done by the library query over the full list.
func (r *ItemRepository) List(criteria map[string]any) ([]*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE deleted_at IS NULL`
	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		item, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

// scanner is satisfied by both [sql.Row] and [sql.Rows].
type scanner interface {
	Scan(dest ...any) error
}

// scan reads one row into a [models.Item]
func (r *ItemRepository) scan(row scanner) (*models.Item, error) {
	var (
		id        string
		sequence  int
		item      models.Item
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&id, &sequence, &item.Path, &item.Title, &item.Artist, &item.AlbumArtist, &item.ArtistSort,
		&item.Album, &item.Track, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan item: %w", err)
	}

	item.SetID(id)
	item.SetSequence(sequence)
	item.SetCreatedAt(createdAt)
	item.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		item.SetDeletedAt(&deletedAt.Time)
	}

	return &item, nil
}
