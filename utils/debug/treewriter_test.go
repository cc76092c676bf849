package debug

import (
	"testing"
)

func TestTreeWriter_Indent(t *testing.T) {
	tests := []struct {
		name string
		tw   *TreeWriter
		want string
	}{
		{"default", NewTreeWriter(), "Elements: 1\n  [0] heading level=2\n    text: \"Intro\"\n"},
		{"tab", NewTreeWriterIndent("\t"), "Elements: 1\n\t[0] heading level=2\n\t\ttext: \"Intro\"\n"},
		{"flat", NewTreeWriterIndent(""), "Elements: 1\n[0] heading level=2\ntext: \"Intro\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.tw.Line(0, "Elements: %d", 1)
			tt.tw.Line(1, "[%d] heading level=%d", 0, 2)
			tt.tw.TextBlock(2, "text", "Intro")
			if got := tt.tw.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if tt.tw.Lines() != 3 {
				t.Errorf("Lines() = %d, want 3", tt.tw.Lines())
			}
		})
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tests := []struct {
		name  string
		label string
		value string
		want  string
	}{
		{"blank block", "run", "", "run: \n"},
		{"plain run", "run", "some ", "run: \"some \"\n"},
		{"tab kept visible", "run", "a\tb", "run: \"a\\tb\"\n"},
		{"markers kept", "text", "**bold**", "text: \"**bold**\"\n"},
		{"non ascii", "text", "Заголовок", "text: \"Заголовок\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.TextBlock(0, tt.label, tt.value)
			if got := tw.String(); got != tt.want {
				t.Errorf("TextBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_RunLabels(t *testing.T) {
	runs := []struct {
		text         string
		bold, italic bool
	}{
		{"some ", false, false},
		{"bold", true, false},
		{"both", true, true},
		{"soft", false, true},
	}

	tw := NewTreeWriter()
	tw.Line(0, "[%d] id=%d style=%q", 0, 3, "")
	for _, r := range runs {
		tw.TextBlock(1, Label("run", Flag{"bold", r.bold}, Flag{"italic", r.italic}), r.text)
	}

	want := "[0] id=3 style=\"\"\n" +
		"  run: \"some \"\n" +
		"  run bold: \"bold\"\n" +
		"  run bold italic: \"both\"\n" +
		"  run italic: \"soft\"\n"
	if got := tw.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
	if tw.Lines() != len(runs)+1 {
		t.Errorf("Lines() = %d, want %d", tw.Lines(), len(runs)+1)
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		name  string
		flags []Flag
		want  string
	}{
		{"no flags", nil, "run"},
		{"none set", []Flag{{"bold", false}, {"italic", false}}, "run"},
		{"order kept", []Flag{{"italic", true}, {"bold", true}}, "run italic bold"},
		{"empty name", []Flag{{"", true}}, "run "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Label("run", tt.flags...); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Empty(t *testing.T) {
	tw := NewTreeWriter()
	if tw.String() != "" || tw.Lines() != 0 {
		t.Errorf("new writer is not empty: %q, %d lines", tw.String(), tw.Lines())
	}
}
