package markup

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse_BlankLines(t *testing.T) {
	got := Parse("A\n\nB")
	want := []Element{Paragraph{Text: "A"}, BlankParagraph{}, Paragraph{Text: "B"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse() = %#v, want %#v", got, want)
	}
}

func TestParse_LineCount(t *testing.T) {
	sources := []string{
		"",
		"one",
		"one\n",
		"\n\n\n",
		"a\r\nb\r\nc",
		"a\rb",
		"# Title\n- item one\n**bold line**\nplain text",
		"   \n\t\n",
	}
	for _, src := range sources {
		got := Parse(src)
		if len(got) != CountLines(src) {
			t.Errorf("Parse(%q) returned %d elements, CountLines = %d", src, len(got), CountLines(src))
		}
	}
	if CountLines("a\r\nb") != 2 {
		t.Errorf("CRLF must count as a single break")
	}
}

func TestParse_Order(t *testing.T) {
	src := "# Title\n- item one\n**bold line**\nplain text"
	want := []Element{
		Heading{Level: 1, Text: "Title"},
		ListItem{Text: "item one"},
		Paragraph{Text: "bold line", Inline: &Inline{Kind: EmphasisBold, MarkedText: "bold line"}},
		Paragraph{Text: "plain text"},
	}
	if got := Parse(src); !reflect.DeepEqual(got, want) {
		t.Errorf("Parse() = %#v, want %#v", got, want)
	}
}

func TestParse_TrimsLines(t *testing.T) {
	got := Parse("   ## Indented  \n\t- tabbed\r")
	want := []Element{Heading{Level: 2, Text: "Indented"}, ListItem{Text: "tabbed"}, BlankParagraph{}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse() = %#v, want %#v", got, want)
	}
}

func TestDump(t *testing.T) {
	out := Dump(Parse("# T\n- i\n*e* x\n\nplain"))
	for _, s := range []string{"Elements: 5", "heading level=1", "list item", "italic: \"e\"", "blank", "text: \"plain\""} {
		if !strings.Contains(out, s) {
			t.Errorf("Dump() missing %q in\n%s", s, out)
		}
	}
}
