// Package models defines the library entities and persistence interfaces for ftsep.
//
// [Item] is the only persistent entity: one audio file with the metadata fields
// the library tracks. Fields can be read and written by name through
// [Item.Field] and [Item.SetField], which is how queries and plugins address them.
//
// All persistent entities implement the [Model] interface providing ID, timestamps and validation.
// The [Repository] interface defines standard CRUD operations for database access.
package models
