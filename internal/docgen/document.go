// Package docgen renders README and INSTALL documents from project metadata.
package docgen

import (
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

// wrapColumn is the fixed column width paragraphs are wrapped to.
const wrapColumn = 80

// Document is an ordered sequence of lines for a not-yet-written text file.
// It is built by appending title, section, and paragraph groups.
type Document struct {
	lines []string
}

// Title appends a reStructuredText title: the word over- and underlined
// with '='.
func (d *Document) Title(word string) {
	bar := strings.Repeat("=", len(word))
	d.lines = append(d.lines, bar, word, bar)
}

// Section appends a section heading: the word underlined with '-'.
func (d *Document) Section(word string) {
	d.lines = append(d.lines, word, strings.Repeat("-", len(word)))
}

// Append adds raw lines.
func (d *Document) Append(lines ...string) {
	d.lines = append(d.lines, lines...)
}

// Blank adds an empty line.
func (d *Document) Blank() {
	d.lines = append(d.lines, "")
}

// Wrap appends text word-wrapped to the fixed column width.
func (d *Document) Wrap(text string) {
	if text == "" {
		return
	}
	wrapped := wordwrap.WrapString(text, wrapColumn)
	d.lines = append(d.lines, strings.Split(wrapped, "\n")...)
}

// Lines returns the accumulated lines.
func (d *Document) Lines() []string {
	return d.lines
}

// String joins the lines with newlines.
func (d *Document) String() string {
	return strings.Join(d.lines, "\n")
}

// capitalize upper-cases the first letter only, matching how project names
// appear in document titles.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
