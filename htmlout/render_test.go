package htmlout

import (
	"strings"
	"testing"

	"mdconv/document"
	"mdconv/markup"
)

func render(t *testing.T, d *document.Document, title string) string {
	t.Helper()
	var sb strings.Builder
	if err := Render(&sb, d, title); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return sb.String()
}

func TestRender(t *testing.T) {
	d := document.New()
	d.Append(document.Block{Text: "Intro", Style: "Heading 1"})
	d.Append(document.Block{Text: "one", List: &document.ListInfo{}})
	d.Append(document.Block{Text: "deep", List: &document.ListInfo{Level: 1}})
	d.Append(document.Block{Text: "two", List: &document.ListInfo{}})
	d.Append(document.Block{})
	d.Append(document.Block{Text: "a <b> & c", Spans: []document.Span{
		{Start: 0, End: 1, Kind: markup.EmphasisBold},
		{Start: 0, End: 1, Kind: markup.EmphasisItalic},
	}})
	d.Append(document.Block{Text: "q", Style: "Block Quote"})

	out := render(t, d, "")
	want := `<!DOCTYPE html><html><head><meta charset="utf-8"/><title>Intro</title></head><body>` +
		`<h1>Intro</h1>` +
		`<ul><li>one<ul><li>deep</li></ul></li><li>two</li></ul>` +
		`<p></p>` +
		`<p><strong><em>a</em></strong> &lt;b&gt; &amp; c</p>` +
		`<p class="block-quote">q</p>` +
		`</body></html>`
	if out != want {
		t.Errorf("Render() =\n%s\nwant\n%s", out, want)
	}
}

func TestRender_DeepListWithoutParent(t *testing.T) {
	d := document.New()
	d.Append(document.Block{Text: "x", List: &document.ListInfo{Level: 2}})
	d.Append(document.Block{Text: "after"})
	d.Append(document.Block{Text: "y", List: &document.ListInfo{}})

	out := render(t, d, "Given")
	if !strings.Contains(out, "<title>Given</title>") {
		t.Errorf("explicit title ignored: %s", out)
	}
	if !strings.Contains(out, `<ul><li><ul><li><ul><li>x</li></ul></li></ul></li></ul><p>after</p><ul><li>y</li></ul>`) {
		t.Errorf("unexpected list structure: %s", out)
	}
}

func TestHeadingLevel(t *testing.T) {
	tests := []struct {
		style string
		want  int
	}{
		{"Heading 1", 1},
		{"Heading 3", 3},
		{"Heading 9", 6},
		{"Heading", 0},
		{"Normal", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := headingLevel(tt.style); got != tt.want {
			t.Errorf("headingLevel(%q) = %d, want %d", tt.style, got, tt.want)
		}
	}
}
