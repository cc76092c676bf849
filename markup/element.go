// Package markup turns lightweight markup text into an ordered sequence of
// typed block elements, one element per source line.
package markup

import "fmt"

// EmphasisKind is the kind of inline emphasis recorded for a paragraph.
type EmphasisKind int

const (
	EmphasisBold EmphasisKind = iota
	EmphasisItalic
)

func (k EmphasisKind) String() string {
	switch k {
	case EmphasisBold:
		return "bold"
	case EmphasisItalic:
		return "italic"
	default:
		return fmt.Sprintf("EmphasisKind(%d)", int(k))
	}
}

// Element is a single classified line. The set of implementations is closed:
// Heading, ListItem, Paragraph and BlankParagraph.
type Element interface {
	element()
	// Content returns text of the element with markup markers removed.
	Content() string
}

// Heading is a level 1 to 3 heading.
type Heading struct {
	Level int
	Text  string
}

// ListItem is a bulleted list item, always at top nesting level.
type ListItem struct {
	Text string
}

// Inline describes the single emphasized span of a paragraph. MarkedText is
// the literal captured text, it is later located in the paragraph by
// substring search so the first occurrence wins.
type Inline struct {
	Kind       EmphasisKind
	MarkedText string
}

// Paragraph is a plain text line, optionally with one emphasized span.
type Paragraph struct {
	Text   string
	Inline *Inline
}

// BlankParagraph stands for an empty source line.
type BlankParagraph struct{}

func (Heading) element()        {}
func (ListItem) element()       {}
func (Paragraph) element()      {}
func (BlankParagraph) element() {}

func (h Heading) Content() string      { return h.Text }
func (l ListItem) Content() string     { return l.Text }
func (p Paragraph) Content() string    { return p.Text }
func (BlankParagraph) Content() string { return "" }
