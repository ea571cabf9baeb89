package ftseparator

import (
	"regexp"
	"strings"
)

// SplitOnFeat splits artist around every conjunction matched by feat and trims each part.
//
// Only the conjunction (the first submatch of feat) is removed, so an opening
// bracket before it stays with the left part. The space after one conjunction
// may start the next, which makes "A feat. with B" yield an empty middle part.
// The result always has at least one element; an artist without a featuring
// conjunction yields just the trimmed input.
func SplitOnFeat(feat *regexp.Regexp, artist string) []string {
	var parts []string
	start, pos := 0, 0
	for pos < len(artist) {
		loc := feat.FindStringSubmatchIndex(artist[pos:])
		if len(loc) < 4 || loc[2] < 0 {
			break
		}

		parts = append(parts, strings.TrimSpace(artist[start:pos+loc[2]]))
		start, pos = pos+loc[3], pos+loc[3]
	}
	return append(parts, strings.TrimSpace(artist[start:]))
}

// rejoin splits value and joins the parts with separator.
// A single part comes back unchanged.
func rejoin(feat *regexp.Regexp, value, separator string) string {
	return strings.Join(SplitOnFeat(feat, value), separator)
}
