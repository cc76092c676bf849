// Package htmlout renders committed document blocks as standalone HTML page.
package htmlout

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"mdconv/document"
)

// Render writes HTML5 page for the document. Heading styles become h1..h6,
// consecutive list items are grouped into nested ul elements and everything
// else is rendered as paragraphs.
func Render(w io.Writer, doc *document.Document, title string) error {
	if title == "" {
		title = doc.Title()
	}

	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	page := element(atom.Html)
	root.AppendChild(page)

	head := element(atom.Head)
	page.AppendChild(head)
	meta := element(atom.Meta)
	meta.Attr = []html.Attribute{{Key: "charset", Val: "utf-8"}}
	head.AppendChild(meta)
	if title != "" {
		t := element(atom.Title)
		t.AppendChild(text(title))
		head.AppendChild(t)
	}

	body := element(atom.Body)
	page.AppendChild(body)
	renderBlocks(body, doc.Blocks())

	if err := html.Render(w, root); err != nil {
		return fmt.Errorf("unable to render html: %w", err)
	}
	return nil
}

var headings = []atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

func headingLevel(style string) int {
	var n int
	if _, err := fmt.Sscanf(style, "Heading %d", &n); err != nil || n < 1 {
		return 0
	}
	return min(n, len(headings))
}

// renderBlocks appends block elements to parent. Lists are kept as a stack of
// open ul elements, one per nesting level.
func renderBlocks(parent *html.Node, blocks []document.Block) {
	var lists []*html.Node
	for _, b := range blocks {
		if b.List == nil {
			lists = lists[:0]
			parent.AppendChild(renderBlock(b))
			continue
		}

		level := b.List.Level
		if len(lists) == 0 {
			ul := element(atom.Ul)
			parent.AppendChild(ul)
			lists = append(lists, ul)
		}
		for len(lists) <= level {
			// nested list belongs to the last item of outer one
			outer := lists[len(lists)-1]
			host := outer.LastChild
			if host == nil {
				host = element(atom.Li)
				outer.AppendChild(host)
			}
			ul := element(atom.Ul)
			host.AppendChild(ul)
			lists = append(lists, ul)
		}
		lists = lists[:level+1]

		li := element(atom.Li)
		appendRuns(li, b)
		lists[level].AppendChild(li)
	}
}

func renderBlock(b document.Block) *html.Node {
	var n *html.Node
	switch level := headingLevel(b.Style); {
	case level > 0:
		n = element(headings[level-1])
	case b.Style == "Title":
		n = element(atom.H1)
		n.Attr = []html.Attribute{{Key: "class", Val: "title"}}
	default:
		n = element(atom.P)
		if b.Style != "" && b.Style != "Normal" {
			n.Attr = []html.Attribute{{Key: "class", Val: className(b.Style)}}
		}
	}
	appendRuns(n, b)
	return n
}

func appendRuns(parent *html.Node, b document.Block) {
	for _, r := range b.Runs() {
		if r.Text == "" {
			continue
		}
		n := text(r.Text)
		if r.Italic {
			em := element(atom.Em)
			em.AppendChild(n)
			n = em
		}
		if r.Bold {
			strong := element(atom.Strong)
			strong.AppendChild(n)
			n = strong
		}
		parent.AppendChild(n)
	}
}

func className(style string) string {
	return strings.ToLower(strings.Join(strings.Fields(style), "-"))
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
