// Package ui holds the terminal styles used by ftsep's command output.
//
// A [Palette] is a small stylesheet of [lipgloss] styles. Commands render
// headings, import summaries and warnings through the package-level [Styles]
// so output stays consistent; on a non-terminal writer lipgloss drops the
// colors and the text is printed as is.
package ui
