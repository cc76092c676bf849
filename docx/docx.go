// Package docx loads and saves WordprocessingML packages to and from
// document.Document. Only paragraph text, paragraph styles, bullet lists and
// bold/italic runs are carried, everything else is dropped on load.
package docx

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	nsW       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPkgRels = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsTypes   = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsCP      = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDC      = "http://purl.org/dc/elements/1.1/"
	nsDCTerms = "http://purl.org/dc/terms/"
	nsXSI     = "http://www.w3.org/2001/XMLSchema-instance"

	relStyles    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relNumbering = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
	relDocument  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relCore      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"

	ctRels      = "application/vnd.openxmlformats-package.relationships+xml"
	ctDocument  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ctStyles    = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	ctNumbering = "application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"
	ctCore      = "application/vnd.openxmlformats-package.core-properties+xml"

	contentTypesPart = "[Content_Types].xml"
	packageRelsPart  = "_rels/.rels"
	documentPart     = "word/document.xml"
	documentRelsPart = "word/_rels/document.xml.rels"
	stylesPart       = "word/styles.xml"
	numberingPart    = "word/numbering.xml"
	corePart         = "docProps/core.xml"

	// the only numbering instance we write, bullets on every level
	bulletNumID = "1"
)

// Word keeps names of built-in styles in lower case ("heading 1") and shows
// them capitalized.
var builtinStyles = func() map[string]struct{} {
	m := map[string]struct{}{"normal": {}, "title": {}, "subtitle": {}, "list paragraph": {}}
	for i := 1; i <= 9; i++ {
		m[fmt.Sprintf("heading %d", i)] = struct{}{}
	}
	return m
}()

func isBuiltin(name string) bool {
	_, ok := builtinStyles[name]
	return ok
}

// displayName returns style name as user sees it.
func displayName(name string) string {
	if isBuiltin(name) {
		return cases.Title(language.Und).String(name)
	}
	return name
}

// storedName returns style name as it should be written to styles part.
func storedName(name string) string {
	if l := strings.ToLower(name); isBuiltin(l) {
		return l
	}
	return name
}

// styleID derives style identifier from the name the way Word does:
// "Heading 1" becomes "Heading1".
func styleID(name string) string {
	id := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, name)
	if id == "" {
		return "Style"
	}
	return id
}
