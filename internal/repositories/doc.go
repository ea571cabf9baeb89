// Package repositories implements SQLite persistence for library items.
//
// [ItemRepository] handles CRUD operations with soft deletes via deleted_at
// timestamps; deleted rows are excluded from queries by default.
//
// Sequence numbers provide stable library ordering independent of UUIDs and
// creation timestamps. The [NextSequence] function atomically increments the
// per-table counter kept in a dedicated sequence table.
package repositories
