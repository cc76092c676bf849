package markup

import (
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Element
	}{
		{"empty", "", BlankParagraph{}},
		{"heading 1", "# Title", Heading{Level: 1, Text: "Title"}},
		{"heading 2", "## Sub", Heading{Level: 2, Text: "Sub"}},
		{"heading 3", "### Title", Heading{Level: 3, Text: "Title"}},
		{"heading needs space", "#Title", Paragraph{Text: "#Title"}},
		{"four hashes are not a heading", "#### Deep", Paragraph{Text: "#### Deep"}},
		{"heading keeps inline markers", "# **Bold** title", Heading{Level: 1, Text: "**Bold** title"}},
		{"dash list item", "- item one", ListItem{Text: "item one"}},
		{"star list item", "* item two", ListItem{Text: "item two"}},
		{"list item keeps inline markers", "- **x**", ListItem{Text: "**x**"}},
		{"dash without space", "-item", Paragraph{Text: "-item"}},
		{
			"bold",
			"**bold line**",
			Paragraph{Text: "bold line", Inline: &Inline{Kind: EmphasisBold, MarkedText: "bold line"}},
		},
		{
			"bold in the middle",
			"a **b** c",
			Paragraph{Text: "a b c", Inline: &Inline{Kind: EmphasisBold, MarkedText: "b"}},
		},
		{
			"only first bold recorded, all stripped",
			"**one** and **two**",
			Paragraph{Text: "one and two", Inline: &Inline{Kind: EmphasisBold, MarkedText: "one"}},
		},
		{
			"italic",
			"some *soft* words",
			Paragraph{Text: "some soft words", Inline: &Inline{Kind: EmphasisItalic, MarkedText: "soft"}},
		},
		{
			"bold wins over italic",
			"**a** and *b*",
			Paragraph{Text: "a and *b*", Inline: &Inline{Kind: EmphasisBold, MarkedText: "a"}},
		},
		{
			"empty bold capture",
			"x **** y",
			Paragraph{Text: "x  y", Inline: &Inline{Kind: EmphasisBold, MarkedText: ""}},
		},
		{"single star", "*", Paragraph{Text: "*"}},
		{"unbalanced", "2 * 3", Paragraph{Text: "2 * 3"}},
		{"plain", "plain text", Paragraph{Text: "plain text"}},
		{
			"unicode",
			"привет **мир**",
			Paragraph{Text: "привет мир", Inline: &Inline{Kind: EmphasisBold, MarkedText: "мир"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.line)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Classify(%q) = %#v, want %#v", tt.line, got, tt.want)
			}
		})
	}
}

func TestClassify_HeadingPrecedence(t *testing.T) {
	for line, level := range map[string]int{"### T": 3, "## T": 2, "# T": 1} {
		h, ok := Classify(line).(Heading)
		if !ok {
			t.Fatalf("Classify(%q) is not a heading", line)
		}
		if h.Level != level || h.Text != "T" {
			t.Errorf("Classify(%q) = %+v, want level %d", line, h, level)
		}
	}
}

func TestClassify_Idempotent(t *testing.T) {
	lines := []string{
		"**bold line**",
		"a **b** c",
		"**one** and **two**",
		"some *soft* words",
		"**a** and *b*",
		"*x* and *y*",
	}
	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			p, ok := Classify(line).(Paragraph)
			if !ok || p.Inline == nil {
				t.Fatalf("Classify(%q) = %#v, want emphasized paragraph", line, p)
			}
			again, ok := Classify(p.Text).(Paragraph)
			if !ok {
				t.Fatalf("reclassified %q is not a paragraph", p.Text)
			}
			if again.Inline != nil && *again.Inline == *p.Inline {
				t.Errorf("span %+v re-triggered on cleaned text %q", *p.Inline, p.Text)
			}
		})
	}
}

func TestEmphasisKind_String(t *testing.T) {
	if EmphasisBold.String() != "bold" || EmphasisItalic.String() != "italic" {
		t.Errorf("unexpected names: %s, %s", EmphasisBold, EmphasisItalic)
	}
	if got := EmphasisKind(7).String(); got != "EmphasisKind(7)" {
		t.Errorf("String() = %q", got)
	}
}
