package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	fixzip "github.com/hidez8891/zip"
	"go.uber.org/zap"

	"mdconv/document"
	"mdconv/misc"
)

// Options controls docx generation.
type Options struct {
	// Title of core properties, first heading of the document when empty.
	Title string
	// FixZip repacks result without data descriptors.
	FixZip bool
}

// Save writes committed blocks of the document as docx package to
// outputPath.
func Save(ctx context.Context, doc *document.Document, outputPath string, opts Options, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if log == nil {
		log = zap.NewNop()
	}

	title := opts.Title
	if title == "" {
		title = doc.Title()
	}
	log.Info("Generating DOCX", zap.String("output", outputPath), zap.Int("paragraphs", doc.Len()))

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(outputPath), "."+misc.GetAppName()+"-*.docx")
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	tmpName := f.Name()
	// clean temporary file
	defer os.Remove(tmpName)
	defer f.Close()

	zw := zip.NewWriter(f)
	defer zw.Close()

	ids := assignStyleIDs(doc.Styles())
	parts := []struct {
		name  string
		build func() *etree.Document
	}{
		{contentTypesPart, buildContentTypes},
		{packageRelsPart, buildPackageRels},
		{documentPart, func() *etree.Document { return buildDocument(doc.Blocks(), ids) }},
		{documentRelsPart, buildDocumentRels},
		{stylesPart, func() *etree.Document { return buildStyles(doc.Styles(), ids) }},
		{numberingPart, buildNumbering},
		{corePart, func() *etree.Document { return buildCore(title, time.Now()) }},
	}
	for _, p := range parts {
		if err := writeXMLToZip(zw, p.name, p.build()); err != nil {
			return fmt.Errorf("unable to write %s: %w", p.name, err)
		}
	}

	// make sure buffers are flushed before continuing
	if err := zw.Close(); err != nil {
		return fmt.Errorf("unable to close output archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to finalize output file: %w", err)
	}

	if opts.FixZip {
		return copyZipWithoutDataDescriptors(tmpName, outputPath)
	}
	return os.Rename(tmpName, outputPath)
}

func newXML() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	return doc
}

func writeXMLToZip(zw *zip.Writer, name string, doc *etree.Document) error {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return err
	}
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}

func buildContentTypes() *etree.Document {
	doc := newXML()
	types := doc.CreateElement("Types")
	types.CreateAttr("xmlns", nsTypes)

	def := func(ext, ct string) {
		d := types.CreateElement("Default")
		d.CreateAttr("Extension", ext)
		d.CreateAttr("ContentType", ct)
	}
	def("rels", ctRels)
	def("xml", "application/xml")

	for _, o := range [][2]string{
		{documentPart, ctDocument},
		{stylesPart, ctStyles},
		{numberingPart, ctNumbering},
		{corePart, ctCore},
	} {
		e := types.CreateElement("Override")
		e.CreateAttr("PartName", "/"+o[0])
		e.CreateAttr("ContentType", o[1])
	}
	return doc
}

func buildRelationships(rels ...[2]string) *etree.Document {
	doc := newXML()
	root := doc.CreateElement("Relationships")
	root.CreateAttr("xmlns", nsPkgRels)
	for i, r := range rels {
		e := root.CreateElement("Relationship")
		e.CreateAttr("Id", "rId"+strconv.Itoa(i+1))
		e.CreateAttr("Type", r[0])
		e.CreateAttr("Target", r[1])
	}
	return doc
}

func buildPackageRels() *etree.Document {
	return buildRelationships(
		[2]string{relDocument, documentPart},
		[2]string{relCore, corePart},
	)
}

// targets are relative to word/
func buildDocumentRels() *etree.Document {
	return buildRelationships(
		[2]string{relStyles, strings.TrimPrefix(stylesPart, "word/")},
		[2]string{relNumbering, strings.TrimPrefix(numberingPart, "word/")},
	)
}

// assignStyleIDs gives every style name unique identifier.
func assignStyleIDs(names []string) map[string]string {
	ids := make(map[string]string, len(names))
	used := make(map[string]struct{}, len(names))
	for _, n := range names {
		id := styleID(n)
		for i := 2; ; i++ {
			if _, taken := used[id]; !taken {
				break
			}
			id = styleID(n) + strconv.Itoa(i)
		}
		used[id] = struct{}{}
		ids[n] = id
	}
	return ids
}

func buildDocument(blocks []document.Block, ids map[string]string) *etree.Document {
	doc := newXML()
	root := doc.CreateElement("w:document")
	root.CreateAttr("xmlns:w", nsW)
	root.CreateAttr("xmlns:r", nsR)
	body := root.CreateElement("w:body")

	for _, b := range blocks {
		p := body.CreateElement("w:p")
		style := b.Style
		if style == "" && b.List != nil {
			style = "List Paragraph"
		}
		if style != "" || b.List != nil {
			ppr := p.CreateElement("w:pPr")
			if id, ok := ids[style]; ok {
				ppr.CreateElement("w:pStyle").CreateAttr("w:val", id)
			}
			if b.List != nil {
				num := ppr.CreateElement("w:numPr")
				num.CreateElement("w:ilvl").CreateAttr("w:val", strconv.Itoa(b.List.Level))
				num.CreateElement("w:numId").CreateAttr("w:val", bulletNumID)
			}
		}
		for _, r := range b.Runs() {
			if r.Text == "" {
				continue
			}
			wr := p.CreateElement("w:r")
			if r.Bold || r.Italic {
				rpr := wr.CreateElement("w:rPr")
				if r.Bold {
					rpr.CreateElement("w:b")
				}
				if r.Italic {
					rpr.CreateElement("w:i")
				}
			}
			writeRunText(wr, r.Text)
		}
	}

	sect := body.CreateElement("w:sectPr")
	sz := sect.CreateElement("w:pgSz")
	sz.CreateAttr("w:w", "11906")
	sz.CreateAttr("w:h", "16838")
	mar := sect.CreateElement("w:pgMar")
	for _, side := range []string{"top", "right", "bottom", "left"} {
		mar.CreateAttr("w:"+side, "1440")
	}
	return doc
}

func writeRunText(r *etree.Element, text string) {
	for i, piece := range strings.Split(text, "\t") {
		if i > 0 {
			r.CreateElement("w:tab")
		}
		if piece == "" {
			continue
		}
		t := r.CreateElement("w:t")
		t.CreateAttr("xml:space", "preserve")
		t.SetText(piece)
	}
}

type styleLook struct {
	outline      int // -1 when style is not a heading
	size         int // half-points, 0 keeps default
	bold, italic bool
}

func lookOf(name string) styleLook {
	switch l := strings.ToLower(name); {
	case l == "title":
		return styleLook{outline: -1, size: 56}
	case l == "subtitle":
		return styleLook{outline: -1, size: 30, italic: true}
	case strings.HasPrefix(l, "heading ") && isBuiltin(l):
		n, _ := strconv.Atoi(strings.TrimPrefix(l, "heading "))
		return styleLook{outline: n - 1, size: max(22, 34-4*n), bold: true}
	}
	return styleLook{outline: -1}
}

func buildStyles(names []string, ids map[string]string) *etree.Document {
	doc := newXML()
	root := doc.CreateElement("w:styles")
	root.CreateAttr("xmlns:w", nsW)

	rpr := root.CreateElement("w:docDefaults").CreateElement("w:rPrDefault").CreateElement("w:rPr")
	rpr.CreateElement("w:sz").CreateAttr("w:val", "22")

	for _, name := range names {
		st := root.CreateElement("w:style")
		st.CreateAttr("w:type", "paragraph")
		if name == "Normal" {
			st.CreateAttr("w:default", "1")
		}
		st.CreateAttr("w:styleId", ids[name])
		st.CreateElement("w:name").CreateAttr("w:val", storedName(name))
		if name != "Normal" {
			if id, ok := ids["Normal"]; ok {
				st.CreateElement("w:basedOn").CreateAttr("w:val", id)
				st.CreateElement("w:next").CreateAttr("w:val", id)
			}
		}
		st.CreateElement("w:qFormat")

		look := lookOf(name)
		if look.outline >= 0 || name == "List Paragraph" {
			ppr := st.CreateElement("w:pPr")
			if look.outline >= 0 {
				ppr.CreateElement("w:keepNext")
				ppr.CreateElement("w:outlineLvl").CreateAttr("w:val", strconv.Itoa(look.outline))
			} else {
				ppr.CreateElement("w:ind").CreateAttr("w:left", "720")
				ppr.CreateElement("w:contextualSpacing")
			}
		}
		if look.size > 0 || look.bold || look.italic {
			rpr := st.CreateElement("w:rPr")
			if look.bold {
				rpr.CreateElement("w:b")
			}
			if look.italic {
				rpr.CreateElement("w:i")
			}
			if look.size > 0 {
				rpr.CreateElement("w:sz").CreateAttr("w:val", strconv.Itoa(look.size))
			}
		}
	}
	return doc
}

func buildNumbering() *etree.Document {
	doc := newXML()
	root := doc.CreateElement("w:numbering")
	root.CreateAttr("xmlns:w", nsW)

	abs := root.CreateElement("w:abstractNum")
	abs.CreateAttr("w:abstractNumId", "0")
	abs.CreateElement("w:multiLevelType").CreateAttr("w:val", "hybridMultilevel")
	bullets := []string{"•", "o", "▪"}
	for lvl := 0; lvl <= document.MaxListLevel; lvl++ {
		l := abs.CreateElement("w:lvl")
		l.CreateAttr("w:ilvl", strconv.Itoa(lvl))
		l.CreateElement("w:start").CreateAttr("w:val", "1")
		l.CreateElement("w:numFmt").CreateAttr("w:val", "bullet")
		l.CreateElement("w:lvlText").CreateAttr("w:val", bullets[lvl%len(bullets)])
		l.CreateElement("w:lvlJc").CreateAttr("w:val", "left")
		ind := l.CreateElement("w:pPr").CreateElement("w:ind")
		ind.CreateAttr("w:left", strconv.Itoa(720*(lvl+1)))
		ind.CreateAttr("w:hanging", "360")
	}

	num := root.CreateElement("w:num")
	num.CreateAttr("w:numId", bulletNumID)
	num.CreateElement("w:abstractNumId").CreateAttr("w:val", "0")
	return doc
}

func buildCore(title string, now time.Time) *etree.Document {
	doc := newXML()
	root := doc.CreateElement("cp:coreProperties")
	root.CreateAttr("xmlns:cp", nsCP)
	root.CreateAttr("xmlns:dc", nsDC)
	root.CreateAttr("xmlns:dcterms", nsDCTerms)
	root.CreateAttr("xmlns:xsi", nsXSI)

	if title != "" {
		root.CreateElement("dc:title").SetText(title)
	}
	root.CreateElement("dc:creator").SetText(misc.GetAppName())
	root.CreateElement("dc:identifier").SetText("urn:uuid:" + uuid.NewString())

	stamp := now.UTC().Format("2006-01-02T15:04:05Z")
	for _, tag := range []string{"dcterms:created", "dcterms:modified"} {
		e := root.CreateElement(tag)
		e.CreateAttr("xsi:type", "dcterms:W3CDTF")
		e.SetText(stamp)
	}
	return doc
}

func copyZipWithoutDataDescriptors(from, to string) error {
	out, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("unable to create target file (%s): %w", to, err)
	}
	defer out.Close()

	r, err := fixzip.OpenReader(from)
	if err != nil {
		return fmt.Errorf("unable to read archive file (%s): %w", from, err)
	}
	defer r.Close()

	w := fixzip.NewWriter(out)
	defer w.Close()

	for _, file := range r.File {
		// unset data descriptor flag.
		file.Flags &= ^fixzip.FlagDataDescriptor

		// copy zip entry
		if err := w.CopyFile(file); err != nil {
			return fmt.Errorf("unable to write target file (%s): %w", to, err)
		}
	}
	return nil
}
