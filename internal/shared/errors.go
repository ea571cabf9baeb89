package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Library errors
	ErrItemNotFound  = fmt.Errorf("item not found")
	ErrLibraryLocked = fmt.Errorf("library is locked by another process")
	ErrInvalidQuery  = fmt.Errorf("invalid query")

	// Import errors
	ErrNothingToImport = fmt.Errorf("nothing to import")

	// Plugin errors
	ErrDuplicatePlugin = fmt.Errorf("plugin already registered")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
