package library

import (
	"fmt"
	"strings"

	"github.com/desertthunder/ftsep/internal/models"
	"github.com/desertthunder/ftsep/internal/shared"
	"golang.org/x/text/cases"
)

// defaultQueryFields are searched by terms without a field prefix.
var defaultQueryFields = []string{models.FieldTitle, models.FieldArtist, models.FieldAlbumArtist, models.FieldAlbum}

// term is one substring condition, already case folded.
type term struct {
	fields []string
	value  string
}

// Query selects items whose fields contain every term, ignoring case.
//
// A term of the form "field:value" only looks at that field; any other term is
// searched in title, artist, albumartist and album. A prefix that is not an
// item field is treated as part of the value.
type Query struct {
	terms []term
	fold  cases.Caser
}

// ParseQuery builds a Query from command-line terms. No terms match everything.
func ParseQuery(args []string) (*Query, error) {
	q := &Query{fold: cases.Fold()}

	for _, arg := range args {
		fields := defaultQueryFields
		value := arg

		if name, rest, ok := strings.Cut(arg, ":"); ok && models.IsField(strings.ToLower(name)) {
			fields = []string{strings.ToLower(name)}
			value = rest
		}

		if strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("%w: empty term %q", shared.ErrInvalidQuery, arg)
		}

		q.terms = append(q.terms, term{fields: fields, value: q.fold.String(value)})
	}

	return q, nil
}

// Match reports whether item satisfies every term.
func (q *Query) Match(item *models.Item) bool {
	for _, t := range q.terms {
		if !q.matchTerm(item, t) {
			return false
		}
	}
	return true
}

func (q *Query) matchTerm(item *models.Item, t term) bool {
	for _, field := range t.fields {
		value, ok := item.Field(field)
		if ok && strings.Contains(q.fold.String(value), t.value) {
			return true
		}
	}
	return false
}
