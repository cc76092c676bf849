package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"mdconv/common"
	"mdconv/config"
	"mdconv/document"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	Title      string
	SourceFile string
	Format     string
	Paragraphs int
}

func newValues(doc *document.Document, src string, format common.OutputFmt) Values {
	return Values{
		Title:      doc.Title(),
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		Format:     format.String(),
		Paragraphs: doc.Len(),
	}
}

func expandTemplate(name config.TemplateFieldName, field string, values Values) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values.Context = string(name)

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
