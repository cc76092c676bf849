package markup

import (
	"regexp"
	"strings"
)

var (
	boldSpan   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicSpan = regexp.MustCompile(`\*(.*?)\*`)
)

// headingPrefixes are checked longest first.
var headingPrefixes = []struct {
	prefix string
	level  int
}{
	{"### ", 3},
	{"## ", 2},
	{"# ", 1},
}

// Classify turns a single trimmed line into exactly one element. It never
// fails, every string maps to some element.
//
// Rules are checked in order and the first match wins: blank line, headings
// (longest prefix first), list items, bold span, italic span, plain paragraph.
//
// NOTE: only the first emphasized span of a line is recorded. All span
// markers of the winning kind are stripped from the text, but MarkedText keeps
// the first capture only and is later matched as a literal substring, so if
// the same text occurs earlier in the line the wrong occurrence gets
// emphasized. Bold is checked before italic, a line with both keeps italic
// markers as literal asterisks.
func Classify(line string) Element {
	if line == "" {
		return BlankParagraph{}
	}
	for _, h := range headingPrefixes {
		if rest, ok := strings.CutPrefix(line, h.prefix); ok {
			return Heading{Level: h.level, Text: rest}
		}
	}
	if rest, ok := strings.CutPrefix(line, "- "); ok {
		return ListItem{Text: rest}
	}
	if rest, ok := strings.CutPrefix(line, "* "); ok {
		return ListItem{Text: rest}
	}
	if p, ok := emphasized(line, boldSpan, EmphasisBold); ok {
		return p
	}
	if p, ok := emphasized(line, italicSpan, EmphasisItalic); ok {
		return p
	}
	return Paragraph{Text: line}
}

func emphasized(line string, re *regexp.Regexp, kind EmphasisKind) (Paragraph, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return Paragraph{}, false
	}
	return Paragraph{
		Text:   re.ReplaceAllString(line, "$1"),
		Inline: &Inline{Kind: kind, MarkedText: m[1]},
	}, true
}
