package ftseparator

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ftsep/internal/library"
	"github.com/desertthunder/ftsep/internal/models"
	tu "github.com/desertthunder/ftsep/internal/testing"
)

type fakeHost struct {
	lib    *library.Library
	write  bool
	err    error
	logger *log.Logger
}

func (h *fakeHost) Library(ctx context.Context) (*library.Library, error) {
	if h.err != nil {
		return nil, h.err
	}
	return h.lib, nil
}

func (h *fakeHost) ShouldWrite() bool { return h.write }

func (h *fakeHost) Logger() *log.Logger {
	if h.logger == nil {
		h.logger = log.New(&bytes.Buffer{})
	}
	return h.logger
}

func newLibrary(items ...*models.Item) (*library.Library, *tu.MemoryStore, *tu.RecordingTagger) {
	store := tu.NewMemoryStore(items...)
	tagger := &tu.RecordingTagger{}
	return library.New(store, tagger, log.New(&bytes.Buffer{})), store, tagger
}

func TestCommand(t *testing.T) {
	t.Run("flags override configured separator and fields", func(t *testing.T) {
		p, _ := newPlugin(t, DefaultOptions())
		item := newItem("/music/x.mp3", "X ft. Y", "X ft. Y", "Y ft. X")
		lib, store, tagger := newLibrary(item)
		host := &fakeHost{lib: lib}

		commands := p.Commands(host)
		if len(commands) != 1 || commands[0].Name != Name {
			t.Fatalf("expected the %s command, got %v", Name, commands)
		}

		err := commands[0].Run(context.Background(), []string{Name, "--separator", " / ", "--albumartist"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if item.Artist != "X / Y" {
			t.Errorf("expected artist 'X / Y', got %q", item.Artist)
		}
		if item.AlbumArtist != "X / Y" {
			t.Errorf("expected albumartist 'X / Y', got %q", item.AlbumArtist)
		}
		if item.ArtistSort != "Y ft. X" {
			t.Errorf("expected artist_sort untouched, got %q", item.ArtistSort)
		}
		if len(store.Updated) != 1 {
			t.Errorf("expected one store, got %v", store.Updated)
		}
		if len(tagger.Written) != 0 {
			t.Errorf("expected no writes, got %v", tagger.Written)
		}
	})

	t.Run("short flags and query", func(t *testing.T) {
		p, _ := newPlugin(t, DefaultOptions())
		first := newItem("/music/a.mp3", "A feat. B", "", "B feat. A")
		second := newItem("/music/c.mp3", "C feat. D", "", "")
		lib, store, _ := newLibrary(first, second)

		err := p.Commands(&fakeHost{lib: lib})[0].Run(context.Background(), []string{Name, "-r", "artist:a feat"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if first.Artist != "A; B" || first.ArtistSort != "B; A" {
			t.Errorf("unexpected fields %q, %q", first.Artist, first.ArtistSort)
		}
		if second.Artist != "C feat. D" {
			t.Errorf("expected unmatched item untouched, got %q", second.Artist)
		}
		if len(store.Updated) != 1 || store.Updated[0] != "/music/a.mp3" {
			t.Errorf("expected only the matched item stored, got %v", store.Updated)
		}
	})

	t.Run("writes when the host writes", func(t *testing.T) {
		p, _ := newPlugin(t, DefaultOptions())
		lib, _, tagger := newLibrary(newItem("/music/a.mp3", "A feat. B", "", ""))

		if err := p.Commands(&fakeHost{lib: lib, write: true})[0].Run(context.Background(), []string{Name}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(tagger.Written) != 1 {
			t.Errorf("expected one write, got %v", tagger.Written)
		}
	})

	t.Run("library errors are returned", func(t *testing.T) {
		p, _ := newPlugin(t, DefaultOptions())
		want := errors.New("locked")

		err := p.Commands(&fakeHost{err: want})[0].Run(context.Background(), []string{Name})
		if !errors.Is(err, want) {
			t.Errorf("expected %v, got %v", want, err)
		}
	})
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("stores every matched item", func(t *testing.T) {
		p, _ := newPlugin(t, DefaultOptions())
		lib, store, tagger := newLibrary(
			newItem("/music/1.mp3", "A feat. B", "", ""),
			newItem("/music/2.mp3", "Solo", "", ""),
		)

		result, err := p.Run(ctx, lib, nil, p.Options(), false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Items != 2 || result.Changed != 1 || result.Written != 0 {
			t.Errorf("unexpected result %+v", result)
		}
		if len(store.Updated) != 2 {
			t.Errorf("expected both items stored, got %v", store.Updated)
		}
		if len(tagger.Written) != 0 {
			t.Errorf("expected no writes, got %v", tagger.Written)
		}
	})

	t.Run("store failure aborts", func(t *testing.T) {
		p, _ := newPlugin(t, DefaultOptions())
		lib, store, tagger := newLibrary(
			newItem("/music/1.mp3", "A feat. B", "", ""),
			newItem("/music/2.mp3", "C feat. D", "", ""),
			newItem("/music/3.mp3", "E feat. F", "", ""),
		)
		store.UpdateErr["/music/2.mp3"] = errors.New("disk full")

		result, err := p.Run(ctx, lib, nil, p.Options(), true)
		if err == nil {
			t.Fatal("expected an error")
		}
		if result.Written != 1 || len(tagger.Written) != 1 || tagger.Written[0] != "/music/1.mp3" {
			t.Errorf("expected only the first item written, got %+v and %v", result, tagger.Written)
		}
	})

	t.Run("write failures are skipped", func(t *testing.T) {
		p, _ := newPlugin(t, DefaultOptions())
		lib, store, tagger := newLibrary(
			newItem("/music/1.mp3", "A feat. B", "", ""),
			newItem("/music/2.mp3", "C feat. D", "", ""),
		)
		tagger.WriteErr = errors.New("read-only file")

		result, err := p.Run(ctx, lib, nil, p.Options(), true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Written != 0 || len(store.Updated) != 2 {
			t.Errorf("expected both stored and none written, got %+v and %v", result, store.Updated)
		}
	})

	t.Run("invalid query", func(t *testing.T) {
		p, _ := newPlugin(t, DefaultOptions())
		lib, _, _ := newLibrary()

		if _, err := p.Run(ctx, lib, []string{"artist:"}, p.Options(), false); err == nil {
			t.Error("expected an error for an empty term")
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		p, _ := newPlugin(t, DefaultOptions())
		lib, store, _ := newLibrary(newItem("/music/1.mp3", "A feat. B", "", ""))
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		if _, err := p.Run(canceled, lib, nil, p.Options(), false); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if len(store.Updated) != 0 {
			t.Errorf("expected nothing stored, got %v", store.Updated)
		}
	})
}
