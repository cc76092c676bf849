// Package debug has helpers producing human readable dumps for debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

// TreeWriter accumulates indented lines, depth is a number of indentation
// steps.
type TreeWriter struct {
	b      strings.Builder
	indent string
	lines  int
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{indent: "  "}
}

// NewTreeWriterIndent uses custom indentation step, empty one produces flat
// output.
func NewTreeWriterIndent(indent string) *TreeWriter {
	return &TreeWriter{indent: indent}
}

func (tw *TreeWriter) String() string {
	return tw.b.String()
}

// Lines returns number of lines written so far.
func (tw *TreeWriter) Lines() int {
	return tw.lines
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(&tw.b, format, args...)
	tw.end()
}

// TextBlock writes quoted value under label. Empty value is written as is so
// it stands out.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.pad(depth)
	tw.b.WriteString(label)
	tw.b.WriteString(": ")
	tw.b.WriteString(encodeText(value))
	tw.end()
}

func (tw *TreeWriter) pad(depth int) {
	for range depth {
		tw.b.WriteString(tw.indent)
	}
}

func (tw *TreeWriter) end() {
	tw.b.WriteByte('\n')
	tw.lines++
}

// Flag is a named boolean attribute of a dumped item.
type Flag struct {
	Name string
	On   bool
}

// Label appends names of set flags to base, separated by spaces.
func Label(base string, flags ...Flag) string {
	var sb strings.Builder
	sb.WriteString(base)
	for _, f := range flags {
		if f.On {
			sb.WriteByte(' ')
			sb.WriteString(f.Name)
		}
	}
	return sb.String()
}

func encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	return strconv.Quote(raw)
}
