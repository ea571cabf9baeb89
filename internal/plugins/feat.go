package plugins

import (
	"fmt"
	"regexp"
	"strings"
)

// featWords are conjunctions that mark a featured artist in any credit.
var featWords = []string{"ft", "featuring", "feat", "feat.", "ft."}

// artistFeatWords are additional conjunctions accepted inside artist fields.
var artistFeatWords = []string{"with", "vs", "and", "con", "&"}

// FeatWords returns the default "featuring" vocabulary.
//
// With forArtist the list also includes the looser conjunctions only
// meaningful in artist fields, such as "with" and "&".
func FeatWords(forArtist bool) []string {
	words := append([]string(nil), featWords...)
	if forArtist {
		words = append(words, artistFeatWords...)
	}
	return words
}

// FeatTokens returns the case-insensitive pattern matching any default "featuring" conjunction.
//
// A token must be preceded by whitespace or an opening bracket and followed by
// whitespace, so words merely containing a token ("Weather Report") never match.
// Unicode spaces such as U+00A0 count as whitespace. The boundary characters are
// part of the match; the token itself is the first submatch.
func FeatTokens(forArtist bool) string {
	return FeatPattern(FeatWords(forArtist))
}

// FeatPattern builds a [FeatTokens]-shaped pattern from a custom word list.
func FeatPattern(words []string) string {
	quoted := make([]string, len(words))
	for i, word := range words {
		quoted[i] = regexp.QuoteMeta(strings.TrimSpace(word))
	}
	return `(?i)[\s\p{Z}(\[](` + strings.Join(quoted, "|") + `)[\s\p{Z}]`
}

// CompileFeatTokens compiles the artist pattern from words, or the defaults when words is empty.
func CompileFeatTokens(words []string) (*regexp.Regexp, error) {
	pattern := FeatTokens(true)
	if len(words) > 0 {
		pattern = FeatPattern(words)
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile featuring pattern: %w", err)
	}
	return re, nil
}
