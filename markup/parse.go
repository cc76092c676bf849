package markup

import (
	"strings"

	"mdconv/utils/debug"
)

var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// SplitLines breaks source into lines. "\r\n", "\n" and lone "\r" all end
// a line.
func SplitLines(source string) []string {
	return strings.Split(lineBreaks.Replace(source), "\n")
}

// CountLines returns number of lines Parse sees in source. Empty source is a
// single empty line.
func CountLines(source string) int {
	return len(SplitLines(source))
}

// Parse classifies every line of source in order. Blank lines are kept as
// BlankParagraph so vertical spacing survives, nothing is merged or skipped.
func Parse(source string) []Element {
	lines := SplitLines(source)
	elements := make([]Element, 0, len(lines))
	for _, line := range lines {
		elements = append(elements, Classify(strings.TrimSpace(line)))
	}
	return elements
}

// Dump returns readable tree of parsed elements, used for debug reports.
func Dump(elements []Element) string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "Elements: %d", len(elements))
	for i, e := range elements {
		switch e := e.(type) {
		case Heading:
			tw.Line(1, "[%d] heading level=%d", i, e.Level)
			tw.TextBlock(2, "text", e.Text)
		case ListItem:
			tw.Line(1, "[%d] list item", i)
			tw.TextBlock(2, "text", e.Text)
		case Paragraph:
			tw.Line(1, "[%d] paragraph", i)
			tw.TextBlock(2, "text", e.Text)
			if e.Inline != nil {
				tw.TextBlock(2, e.Inline.Kind.String(), e.Inline.MarkedText)
			}
		case BlankParagraph:
			tw.Line(1, "[%d] blank", i)
		default:
			tw.Line(1, "[%d] unknown %T", i, e)
		}
	}
	return tw.String()
}
