package library

import (
	"fmt"

	"github.com/desertthunder/ftsep/internal/models"
)

// Item is a library item bound to the library it came from.
type Item struct {
	*models.Item
	lib *Library
}

// Store commits the item's fields to the library database.
func (i *Item) Store() error {
	if err := i.lib.store.Update(i.Item); err != nil {
		return fmt.Errorf("failed to store %s: %w", i.Path, err)
	}
	return nil
}

// Write writes the item's metadata to its file.
func (i *Item) Write() error {
	if i.lib.tags == nil {
		return fmt.Errorf("no tag writer configured for %s", i.Path)
	}
	if err := i.lib.tags.WriteTags(i.Item); err != nil {
		return fmt.Errorf("failed to write tags to %s: %w", i.Path, err)
	}
	return nil
}

// TryWrite calls [Item.Write] and logs a failure instead of returning it.
func (i *Item) TryWrite() bool {
	if err := i.Write(); err != nil {
		i.lib.logger.Warn("could not write tags", "path", i.Path, "error", err)
		return false
	}
	return true
}
