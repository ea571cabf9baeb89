// package formatter renders library items for the terminal (plain lines, tables) and as CSV
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/ftsep/internal/models"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Format names an output format of [Render].
type Format string

const (
	FormatPlain Format = "plain"
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
)

// Formats lists the accepted formats.
var Formats = []Format{FormatPlain, FormatTable, FormatCSV}

// ParseFormat validates a format name, ignoring case.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q", name)
}

// Render formats items as f.
func Render(f Format, items []*models.Item) ([]byte, error) {
	switch f {
	case FormatPlain:
		return ExportToText(items), nil
	case FormatTable:
		return []byte(ItemsTable(items) + "\n"), nil
	case FormatCSV:
		return ExportToCSV(items)
	default:
		return nil, fmt.Errorf("unknown format %q", f)
	}
}

// ExportToText writes one "artist - album - title" line per item.
func ExportToText(items []*models.Item) []byte {
	var buf bytes.Buffer
	for _, item := range items {
		buf.WriteString(fmt.Sprintf("%s - %s - %s\n", item.Artist, item.Album, item.Title))
	}
	return buf.Bytes()
}

// ExportToCSV converts items to CSV with columns: Path, Title, Artist, Album Artist, Sort Artist, Album, Track
func ExportToCSV(items []*models.Item) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Path", "Title", "Artist", "Album Artist", "Sort Artist", "Album", "Track"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, item := range items {
		record := []string{
			item.Path,
			item.Title,
			item.Artist,
			item.AlbumArtist,
			item.ArtistSort,
			item.Album,
			strconv.Itoa(item.Track),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ItemsTable renders items as a rounded table with the track number right aligned.
func ItemsTable(items []*models.Item) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Artist", "Album Artist", "Album", "Title"})

	for _, item := range items {
		track := ""
		if item.Track > 0 {
			track = strconv.Itoa(item.Track)
		}
		tw.AppendRow(table.Row{track, item.Artist, item.AlbumArtist, item.Album, item.Title})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	tw.AppendFooter(table.Row{"", fmt.Sprintf("%d items", len(items))})

	return tw.Render()
}
