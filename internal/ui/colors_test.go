package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestPalette(t *testing.T) {
	p := NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

	t.Run("renders keep the text", func(t *testing.T) {
		for name, render := range map[string]func(string) string{
			"title": p.Title,
			"ok":    p.OK,
			"error": p.Error,
			"warn":  p.Warn,
			"help":  p.Help,
		} {
			if got := render("hello"); !strings.Contains(got, "hello") {
				t.Errorf("%s: expected text to be kept, got %q", name, got)
			}
		}
	})

	t.Run("painter", func(t *testing.T) {
		if got := p.As("fg", lipgloss.Color("#FFFFFF")); !strings.Contains(got, "fg") {
			t.Errorf("expected text to be kept, got %q", got)
		}
		if got := p.On("bg", lipgloss.Color("#000000")); !strings.Contains(got, "bg") {
			t.Errorf("expected text to be kept, got %q", got)
		}
	})

	t.Run("count", func(t *testing.T) {
		if got := p.Count(3, "items"); !strings.Contains(got, "3 items") {
			t.Errorf("expected '3 items', got %q", got)
		}
		if got := p.Count(0, "written"); !strings.Contains(got, "0 written") {
			t.Errorf("expected '0 written', got %q", got)
		}
	})
}
