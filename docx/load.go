package docx

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"mdconv/archive"
	"mdconv/document"
	"mdconv/markup"
)

// Load reads body paragraphs of docx package into new document. Nothing is
// selected in the result.
func Load(path string, log *zap.Logger, options ...document.Option) (*document.Document, error) {
	if log == nil {
		log = zap.NewNop()
	}

	parts, err := archive.ReadParts(path, []string{documentPart}, stylesPart)
	if err != nil {
		return nil, fmt.Errorf("unable to read docx package: %w", err)
	}

	names := make(map[string]string)
	if data, ok := parts[stylesPart]; ok {
		if names, err = readStyleNames(data); err != nil {
			return nil, fmt.Errorf("unable to parse %s: %w", stylesPart, err)
		}
	}

	xdoc, err := parseXML(parts[documentPart])
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", documentPart, err)
	}
	root := xdoc.SelectElement("document")
	if root == nil {
		return nil, fmt.Errorf("%s has no document element", documentPart)
	}
	body := root.SelectElement("body")
	if body == nil {
		return nil, fmt.Errorf("%s has no body", documentPart)
	}

	doc := document.New(append([]document.Option{document.WithLogger(log)}, options...)...)
	for _, name := range names {
		doc.AddStyles(name)
	}

	skipped := 0
	for _, el := range body.ChildElements() {
		switch el.Tag {
		case "p":
			doc.Append(readParagraph(el, names))
		case "sectPr", "bookmarkStart", "bookmarkEnd":
		default:
			skipped++
			log.Debug("Skipping unsupported body element", zap.String("element", el.FullTag()))
		}
	}
	log.Debug("Document loaded", zap.String("file", path), zap.Int("paragraphs", doc.Len()), zap.Int("skipped", skipped))
	return doc, nil
}

// parseXML reads package part, parts are allowed to declare legacy encodings.
func parseXML(data []byte) (*etree.Document, error) {
	xdoc := etree.NewDocument()
	xdoc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := xdoc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	return xdoc, nil
}

// readStyleNames maps paragraph style ids to their display names.
func readStyleNames(data []byte) (map[string]string, error) {
	xdoc, err := parseXML(data)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string)
	root := xdoc.SelectElement("styles")
	if root == nil {
		return names, nil
	}
	for _, st := range root.SelectElements("style") {
		if st.SelectAttrValue("type", "paragraph") != "paragraph" {
			continue
		}
		id := st.SelectAttrValue("styleId", "")
		if id == "" {
			continue
		}
		name := id
		if n := st.SelectElement("name"); n != nil {
			name = n.SelectAttrValue("val", id)
		}
		names[id] = displayName(name)
	}
	return names, nil
}

func readParagraph(p *etree.Element, names map[string]string) document.Block {
	var b document.Block
	if ppr := p.SelectElement("pPr"); ppr != nil {
		if ps := ppr.SelectElement("pStyle"); ps != nil {
			id := ps.SelectAttrValue("val", "")
			if name, ok := names[id]; ok {
				b.Style = name
			} else {
				b.Style = id
			}
		}
		b.List = readNumbering(ppr)
	}
	if b.Style == "Normal" {
		b.Style = ""
	}

	var text strings.Builder
	for _, r := range collectRuns(p, nil) {
		start := text.Len()
		readRunText(r, &text)
		end := text.Len()
		if end == start {
			continue
		}
		if rpr := r.SelectElement("rPr"); rpr != nil {
			if isOn(rpr.SelectElement("b")) {
				b.Spans = appendSpan(b.Spans, start, end, markup.EmphasisBold)
			}
			if isOn(rpr.SelectElement("i")) {
				b.Spans = appendSpan(b.Spans, start, end, markup.EmphasisItalic)
			}
		}
	}
	b.Text = text.String()
	return b
}

func readNumbering(ppr *etree.Element) *document.ListInfo {
	num := ppr.SelectElement("numPr")
	if num == nil {
		return nil
	}
	// numId 0 removes numbering inherited from style
	if id := num.SelectElement("numId"); id != nil && id.SelectAttrValue("val", "") == "0" {
		return nil
	}
	level := 0
	if lvl := num.SelectElement("ilvl"); lvl != nil {
		if n, err := strconv.Atoi(lvl.SelectAttrValue("val", "0")); err == nil {
			level = min(max(n, 0), document.MaxListLevel)
		}
	}
	return &document.ListInfo{Level: level}
}

// collectRuns returns text runs of paragraph in document order, including
// runs wrapped into hyperlinks and tracked insertions. Deleted text is
// ignored.
func collectRuns(el *etree.Element, out []*etree.Element) []*etree.Element {
	for _, ch := range el.ChildElements() {
		switch ch.Tag {
		case "r":
			out = append(out, ch)
		case "hyperlink", "ins", "smartTag", "fldSimple", "sdt", "sdtContent":
			out = collectRuns(ch, out)
		}
	}
	return out
}

func readRunText(r *etree.Element, text *strings.Builder) {
	for _, ch := range r.ChildElements() {
		switch ch.Tag {
		case "t":
			text.WriteString(ch.Text())
		case "tab":
			text.WriteByte('\t')
		case "br", "cr":
			// block text is always single line
			text.WriteByte(' ')
		case "noBreakHyphen":
			text.WriteByte('-')
		}
	}
}

// isOn interprets OOXML toggle property, present element without value
// means on.
func isOn(el *etree.Element) bool {
	if el == nil {
		return false
	}
	switch el.SelectAttrValue("val", "true") {
	case "0", "false", "off":
		return false
	}
	return true
}

func appendSpan(spans []document.Span, start, end int, kind markup.EmphasisKind) []document.Span {
	for i := len(spans) - 1; i >= 0; i-- {
		if spans[i].Kind != kind {
			continue
		}
		if spans[i].End == start {
			spans[i].End = end
			return spans
		}
		break
	}
	return append(spans, document.Span{Start: start, End: end, Kind: kind})
}
