package importer

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/ftsep/internal/library"
	"github.com/desertthunder/ftsep/internal/models"
	"github.com/desertthunder/ftsep/internal/shared"
)

// TagReader builds an unsaved item from an audio file. [library.Tagger] implements it.
type TagReader interface {
	ReadTags(path string) (*models.Item, error)
}

// Options controls an import run.
type Options struct {
	// Write makes the importer write tags after all stages have run.
	Write bool
	// Ignore holds doublestar patterns matched against paths relative to each import root.
	Ignore []string
}

// Summary reports what an import run did.
type Summary struct {
	Tasks   int
	Items   int
	Skipped int
	Written int
}

// Importer adds audio files to a library and runs import stages over them.
type Importer struct {
	lib    *library.Library
	reader TagReader
	opts   Options
	stages []Stage
	logger *log.Logger
}

// New creates an Importer adding to lib with tags from reader.
func New(lib *library.Library, reader TagReader, opts Options, logger *log.Logger) *Importer {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Importer{lib: lib, reader: reader, opts: opts, logger: logger}
}

// AddStage appends stages; they run in the order added.
func (im *Importer) AddStage(stages ...Stage) {
	im.stages = append(im.stages, stages...)
}

// Run imports every MP3 file found under paths.
//
// Files are grouped into one [Task] per directory, directories in lexical order.
// For each task the new items are added to the library, then every stage runs,
// then tags are written when [Options.Write] is set. A stage error stops the run;
// earlier tasks stay imported.
func (im *Importer) Run(ctx context.Context, paths []string) (*Summary, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no import paths", shared.ErrMissingArgument)
	}

	byDir := make(map[string][]string)
	for _, root := range paths {
		if err := im.collect(ctx, root, byDir); err != nil {
			return nil, err
		}
	}
	if len(byDir) == 0 {
		return nil, fmt.Errorf("%w: no audio files under %s", shared.ErrNothingToImport, strings.Join(paths, ", "))
	}

	dirs := make([]string, 0, len(byDir))
	for dir := range byDir {
		dirs = append(dirs, dir)
	}
	slices.Sort(dirs)

	session := &Session{Library: im.lib, Paths: paths, Logger: im.logger}
	summary := &Summary{}

	for _, dir := range dirs {
		logger := shared.WithLogger(im.logger, "dir", dir)
		task, skipped, err := im.buildTask(ctx, dir, byDir[dir], logger)
		if err != nil {
			return summary, err
		}
		summary.Skipped += skipped
		if len(task.items) == 0 {
			continue
		}

		summary.Tasks++
		summary.Items += len(task.items)
		logger.Info("importing", "items", len(task.items))

		for _, stage := range im.stages {
			if err := stage.Imported(session, task); err != nil {
				return summary, fmt.Errorf("import stage failed for %s: %w", dir, err)
			}
		}

		if im.opts.Write {
			for _, item := range task.ImportedItems() {
				if item.TryWrite() {
					summary.Written++
				}
			}
		}
	}

	return summary, nil
}

// collect walks root and records MP3 files not matched by an ignore pattern.
func (im *Importer) collect(ctx context.Context, root string, byDir map[string][]string) error {
	root = filepath.Clean(root)

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if path != root && im.ignored(root, path) {
			im.logger.Debug("ignoring", "path", path)
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".mp3") {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		dir := filepath.Dir(abs)
		byDir[dir] = append(byDir[dir], abs)
		return nil
	})
}

// ignored reports whether path, relative to root, matches any ignore pattern.
func (im *Importer) ignored(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)

	for _, pattern := range im.opts.Ignore {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// buildTask reads tags for files and adds the ones not yet in the library.
func (im *Importer) buildTask(ctx context.Context, dir string, files []string, logger *log.Logger) (*Task, int, error) {
	slices.Sort(files)
	files = slices.Compact(files)

	task := &Task{Dir: dir}
	skipped := 0

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, skipped, err
		}

		exists, err := im.lib.Contains(path)
		if err != nil {
			return nil, skipped, err
		}
		if exists {
			logger.Info("skipping already imported file", "path", path)
			skipped++
			continue
		}

		item, err := im.reader.ReadTags(path)
		if err != nil {
			logger.Warn("skipping unreadable file", "path", path, "error", err)
			skipped++
			continue
		}

		added, err := im.lib.Add(item)
		if err != nil {
			return nil, skipped, err
		}
		task.items = append(task.items, added)
	}

	return task, skipped, nil
}
