// Package importer adds audio files to the library in batches.
//
// # Pipeline
//
// [Importer.Run] walks the given paths and groups MP3 files by directory. Each
// directory becomes a [Task]:
//
//  1. Tags are read and each file not already in the library is added.
//  2. Every registered [Stage] is called with the [Session] and the task.
//     Stages see the items through [Task.ImportedItems] and persist their own
//     changes with Store.
//  3. If writing is enabled, tags are written to the files.
//
// Stages never write tags themselves; step 3 does that once for the whole task.
//
// # Ignoring files
//
// [Options.Ignore] holds doublestar patterns such as ".*" or "**/Scans/**",
// matched against paths relative to each import root. Ignored directories are
// not descended into.
package importer
