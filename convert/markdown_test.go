package convert

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"

	"mdconv/document"
	"mdconv/format"
	"mdconv/host"
	"mdconv/markup"
)

type statusRecorder struct {
	messages []string
}

func (s *statusRecorder) report(msg string) {
	s.messages = append(s.messages, msg)
}

func newConverter(t *testing.T, rec *statusRecorder) *Converter {
	return &Converter{
		Styles: format.DefaultStyles(),
		Status: rec.report,
		Log:    zaptest.NewLogger(t),
	}
}

func docWithLines(lines ...string) *document.Document {
	d := document.New()
	for _, l := range lines {
		d.Append(document.Block{Text: l})
	}
	return d
}

func TestConvert_EndToEnd(t *testing.T) {
	rec := &statusRecorder{}
	d := document.New()
	d.Append(document.Block{Text: "# Title"})
	d.Append(document.Block{Text: "- item one"})
	d.Append(document.Block{Text: "**bold line**"})
	d.Append(document.Block{Text: "plain text"})
	d.SelectAll()

	var parsed []markup.Element
	c := newConverter(t, rec)
	c.Parsed = func(e []markup.Element) { parsed = e }

	if err := c.Convert(context.Background(), d); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if len(parsed) != 4 {
		t.Errorf("parsed %d elements, want 4", len(parsed))
	}

	blocks := d.Blocks()
	if len(blocks) != 4 {
		t.Fatalf("got %d blocks: %s", len(blocks), d.Dump())
	}
	if blocks[0].Text != "Title" || blocks[0].Style != "Heading 1" {
		t.Errorf("block[0] = %+v", blocks[0])
	}
	if blocks[1].Text != "item one" || blocks[1].List == nil || blocks[1].List.Level != 0 {
		t.Errorf("block[1] = %+v", blocks[1])
	}
	wantRuns := []document.Run{{Text: "bold line", Bold: true}}
	if blocks[2].Text != "bold line" || !reflect.DeepEqual(blocks[2].Runs(), wantRuns) {
		t.Errorf("block[2] = %+v", blocks[2])
	}
	if blocks[3].Text != "plain text" || blocks[3].Style != "" || len(blocks[3].Spans) != 0 {
		t.Errorf("block[3] = %+v", blocks[3])
	}
	if d.Syncs() != 3 {
		t.Errorf("Syncs() = %d, want 3", d.Syncs())
	}
	if d.Pending() != 0 {
		t.Errorf("Pending() = %d", d.Pending())
	}
	if !reflect.DeepEqual(rec.messages, []string{StatusCompleted}) {
		t.Errorf("status = %q", rec.messages)
	}
}

func TestConvert_KeepsSurroundingContent(t *testing.T) {
	d := docWithLines("keep before", "## Sub", "", "*soft* line", "keep after")
	if err := d.Select(2, 4); err != nil {
		t.Fatal(err)
	}
	if err := newConverter(t, &statusRecorder{}).Convert(context.Background(), d); err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	var got []string
	for _, b := range d.Blocks() {
		got = append(got, b.Text)
	}
	want := []string{"keep before", "Sub", "", "soft line", "keep after"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("blocks = %q, want %q", got, want)
	}
	if s := d.Blocks()[1].Style; s != "Heading 2" {
		t.Errorf("heading style = %q", s)
	}
}

func TestConvert_EmptySelection(t *testing.T) {
	for _, text := range []string{"", "   ", "\t"} {
		rec := &statusRecorder{}
		d := docWithLines("keep", text, "keep")
		if err := d.Select(2, 2); err != nil {
			t.Fatal(err)
		}
		err := newConverter(t, rec).Convert(context.Background(), d)
		if !errors.Is(err, ErrEmptySelection) {
			t.Errorf("Convert(%q) error = %v", text, err)
		}
		if d.Revision() != 0 || d.Pending() != 0 || d.Len() != 3 {
			t.Errorf("document mutated: revision %d pending %d len %d", d.Revision(), d.Pending(), d.Len())
		}
		if !reflect.DeepEqual(rec.messages, []string{StatusEmptySelection}) {
			t.Errorf("status = %q", rec.messages)
		}
	}
}

// failingDoc rejects n-th InsertBlock call right away.
type failingDoc struct {
	*document.Document
	failAt, inserts int
}

func (f *failingDoc) InsertBlock(anchor host.BlockHandle, text string, loc host.InsertLocation) (host.BlockHandle, error) {
	f.inserts++
	if f.inserts == f.failAt {
		return 0, errors.New("insert rejected")
	}
	return f.Document.InsertBlock(anchor, text, loc)
}

func TestConvert_FailureMidway(t *testing.T) {
	rec := &statusRecorder{}
	d := &failingDoc{Document: docWithLines("one", "two", "three", "four", "five"), failAt: 3}
	d.SelectAll()

	err := newConverter(t, rec).Convert(context.Background(), d)
	if !errors.Is(err, host.ErrHostOperation) {
		t.Fatalf("Convert() error = %v", err)
	}
	var got []string
	for _, b := range d.Blocks() {
		got = append(got, b.Text)
	}
	if !reflect.DeepEqual(got, []string{"one", "two"}) {
		t.Errorf("blocks = %q, want first two insertions", got)
	}
	if len(rec.messages) != 1 || !strings.HasPrefix(rec.messages[0], StatusFailedPrefix) || !strings.Contains(rec.messages[0], "insert rejected") {
		t.Errorf("status = %q", rec.messages)
	}
}

func TestConvert_FailureOnCommit(t *testing.T) {
	rec := &statusRecorder{}
	d := docWithLines("one", "two", "# three", "four", "five")
	d.SelectAll()

	c := newConverter(t, rec)
	c.Styles.Headings[0] = "Missing Style"
	err := c.Convert(context.Background(), d)
	if !errors.Is(err, host.ErrHostOperation) {
		t.Fatalf("Convert() error = %v", err)
	}
	var got []string
	for _, b := range d.Blocks() {
		got = append(got, b.Text)
	}
	// heading block itself is inserted, its styling fails and the rest is dropped
	if !reflect.DeepEqual(got, []string{"one", "two", "three"}) {
		t.Errorf("blocks = %q", got)
	}
	if len(rec.messages) != 1 || !strings.Contains(rec.messages[0], "Missing Style") {
		t.Errorf("status = %q", rec.messages)
	}
}

func TestConvert_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := &statusRecorder{}
	d := docWithLines("# x")
	d.SelectAll()
	if err := newConverter(t, rec).Convert(ctx, d); !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v", err)
	}
	if d.Len() != 1 || d.Revision() != 0 {
		t.Errorf("document mutated")
	}
	if len(rec.messages) != 1 {
		t.Errorf("status = %q", rec.messages)
	}
}
