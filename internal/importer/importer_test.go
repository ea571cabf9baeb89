package importer

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ftsep/internal/library"
	"github.com/desertthunder/ftsep/internal/models"
	"github.com/desertthunder/ftsep/internal/shared"
	tu "github.com/desertthunder/ftsep/internal/testing"
)

type fixture struct {
	root   string
	store  *tu.MemoryStore
	tagger *tu.RecordingTagger
	lib    *library.Library
}

// newFixture lays out two album directories, a hidden directory and a non-audio file.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	root := t.TempDir()
	tagger := &tu.RecordingTagger{Tags: map[string]models.Item{}}

	files := map[string]string{
		"b-album/01.mp3":       "B feat. C",
		"b-album/02.MP3":       "B",
		"a-album/01.mp3":       "A ft. D",
		".hidden/01.mp3":       "Hidden",
		"a-album/.partial.mp3": "Partial",
	}
	for rel, artist := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		tu.MustWriteFile(t, path, []byte("audio"))
		tagger.Tags[path] = models.Item{Title: rel, Artist: artist}
	}
	tu.MustWriteFile(t, filepath.Join(root, "a-album", "cover.jpg"), []byte("jpeg"))

	store := tu.NewMemoryStore()
	return &fixture{
		root:   root,
		store:  store,
		tagger: tagger,
		lib:    library.New(store, tagger, nil),
	}
}

func TestImporter(t *testing.T) {
	ignore := shared.DefaultConfig().Import.Ignore

	t.Run("groups files into tasks and runs stages in order", func(t *testing.T) {
		f := newFixture(t)
		im := New(f.lib, f.tagger, Options{Write: true, Ignore: ignore}, nil)

		var calls []string
		var dirs []string
		im.AddStage(
			StageFunc(func(s *Session, task *Task) error {
				if len(f.tagger.Written) != 0 {
					t.Error("tags were written before stages ran")
				}
				dirs = append(dirs, filepath.Base(task.Dir))
				for _, item := range task.ImportedItems() {
					if item.ID() == "" {
						t.Errorf("item %s not stored before stage", item.Path)
					}
					calls = append(calls, "first:"+filepath.Base(item.Path))
				}
				return nil
			}),
			StageFunc(func(s *Session, task *Task) error {
				calls = append(calls, "second:"+filepath.Base(task.Dir))
				return nil
			}),
		)

		summary, err := im.Run(context.Background(), []string{f.root})
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		if summary.Tasks != 2 || summary.Items != 3 || summary.Written != 3 {
			t.Errorf("unexpected summary: %+v", summary)
		}

		wantDirs := []string{"a-album", "b-album"}
		if len(dirs) != 2 || dirs[0] != wantDirs[0] || dirs[1] != wantDirs[1] {
			t.Errorf("expected tasks %v, got %v", wantDirs, dirs)
		}

		wantCalls := []string{"first:01.mp3", "second:a-album", "first:01.mp3", "first:02.MP3", "second:b-album"}
		if len(calls) != len(wantCalls) {
			t.Fatalf("expected calls %v, got %v", wantCalls, calls)
		}
		for i := range wantCalls {
			if calls[i] != wantCalls[i] {
				t.Errorf("call %d: expected %s, got %s", i, wantCalls[i], calls[i])
			}
		}
	})

	t.Run("no write", func(t *testing.T) {
		f := newFixture(t)
		im := New(f.lib, f.tagger, Options{Write: false, Ignore: ignore}, nil)

		summary, err := im.Run(context.Background(), []string{f.root})
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if summary.Written != 0 || len(f.tagger.Written) != 0 {
			t.Errorf("expected no tag writes, got %d", len(f.tagger.Written))
		}
	})

	t.Run("skips files already in the library", func(t *testing.T) {
		f := newFixture(t)
		im := New(f.lib, f.tagger, Options{Ignore: ignore}, nil)

		if _, err := im.Run(context.Background(), []string{f.root}); err != nil {
			t.Fatalf("first Run failed: %v", err)
		}

		summary, err := im.Run(context.Background(), []string{f.root})
		if err != nil {
			t.Fatalf("second Run failed: %v", err)
		}
		if summary.Items != 0 || summary.Skipped != 3 || summary.Tasks != 0 {
			t.Errorf("unexpected summary: %+v", summary)
		}
	})

	t.Run("task log lines carry the directory", func(t *testing.T) {
		f := newFixture(t)
		var buf bytes.Buffer
		im := New(f.lib, f.tagger, Options{Ignore: ignore}, log.New(&buf))
		bad := filepath.Join(f.root, "b-album", "02.MP3")
		delete(f.tagger.Tags, bad)

		summary, err := im.Run(context.Background(), []string{f.root})
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if summary.Skipped != 1 {
			t.Errorf("expected one skipped file, got %+v", summary)
		}

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		var importing, skipped int
		for _, line := range lines {
			switch {
			case strings.Contains(line, "importing"):
				importing++
				if !strings.Contains(line, "dir=") {
					t.Errorf("expected dir on %q", line)
				}
			case strings.Contains(line, "skipping unreadable file"):
				skipped++
				if !strings.Contains(line, "dir=") || !strings.Contains(line, "b-album") {
					t.Errorf("expected b-album dir on %q", line)
				}
			}
		}
		if importing != 2 || skipped != 1 {
			t.Errorf("expected two importing lines and one skip, got %q", buf.String())
		}
	})

	t.Run("stage error stops the run", func(t *testing.T) {
		f := newFixture(t)
		im := New(f.lib, f.tagger, Options{Write: true, Ignore: ignore}, nil)
		boom := errors.New("boom")
		im.AddStage(StageFunc(func(*Session, *Task) error { return boom }))

		summary, err := im.Run(context.Background(), []string{f.root})
		if !errors.Is(err, boom) {
			t.Fatalf("expected stage error, got %v", err)
		}
		if summary.Tasks != 1 || len(f.tagger.Written) != 0 {
			t.Errorf("expected to stop after first task without writes, got %+v", summary)
		}
	})

	t.Run("single file path", func(t *testing.T) {
		f := newFixture(t)
		im := New(f.lib, f.tagger, Options{Ignore: ignore}, nil)

		summary, err := im.Run(context.Background(), []string{filepath.Join(f.root, "b-album", "01.mp3")})
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		if summary.Items != 1 {
			t.Errorf("expected 1 item, got %d", summary.Items)
		}
	})

	t.Run("errors", func(t *testing.T) {
		f := newFixture(t)
		im := New(f.lib, f.tagger, Options{Ignore: ignore}, nil)

		if _, err := im.Run(context.Background(), nil); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}

		empty := t.TempDir()
		if _, err := im.Run(context.Background(), []string{empty}); !errors.Is(err, shared.ErrNothingToImport) {
			t.Errorf("expected ErrNothingToImport, got %v", err)
		}

		if _, err := im.Run(context.Background(), []string{filepath.Join(empty, "missing")}); err == nil {
			t.Error("expected error for missing path")
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := im.Run(ctx, []string{f.root}); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}
