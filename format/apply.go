package format

import (
	"fmt"

	"go.uber.org/zap"

	"mdconv/host"
	"mdconv/markup"
)

// Styles maps element kinds to host paragraph styles.
type Styles struct {
	Headings  [3]string // style names for heading levels 1 to 3
	ListLevel int
}

// DefaultStyles returns built-in heading style names of a word processor.
func DefaultStyles() Styles {
	return Styles{Headings: [3]string{"Heading 1", "Heading 2", "Heading 3"}}
}

// HeadingStyle returns style name for heading level.
func (s Styles) HeadingStyle(level int) (string, error) {
	if level < 1 || level > len(s.Headings) {
		return "", fmt.Errorf("unsupported heading level %d", level)
	}
	return s.Headings[level-1], nil
}

// Applier walks parsed elements and issues block and emphasis operations
// against the target, appending at the cursor.
type Applier struct {
	Styles Styles
	Log    *zap.Logger
}

func NewApplier(styles Styles, log *zap.Logger) *Applier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Applier{Styles: styles, Log: log}
}

// Apply materializes elements in order. It stops on the first host failure,
// operations issued before it are left in place.
func (a *Applier) Apply(elements []markup.Element, cur *Cursor, doc Target) error {
	for i, e := range elements {
		if err := a.applyOne(i, e, cur, doc); err != nil {
			a.Log.Debug("Element application failed", zap.Int("element", i), zap.Error(err))
			return err
		}
	}
	a.Log.Debug("Elements applied", zap.Int("count", len(elements)), zap.Int("inserted", cur.Moves()))
	return nil
}

func (a *Applier) applyOne(i int, e markup.Element, cur *Cursor, doc Target) error {
	fail := func(op string, err error) error {
		return &host.OpError{Op: op, Index: i, Err: err}
	}

	var text string
	switch e := e.(type) {
	case markup.Heading:
		text = e.Text
	case markup.ListItem:
		text = e.Text
	case markup.Paragraph:
		text = e.Text
	}

	h, err := doc.InsertBlock(cur.Position(), text, host.InsertAfter)
	if err != nil {
		return fail("insert block", err)
	}

	switch e := e.(type) {
	case markup.Heading:
		style, err := a.Styles.HeadingStyle(e.Level)
		if err != nil {
			return fail("set block style", err)
		}
		if err := doc.SetBlockStyle(h, style); err != nil {
			return fail("set block style", err)
		}
	case markup.ListItem:
		if err := doc.MarkAsListItem(h, a.Styles.ListLevel); err != nil {
			return fail("mark list item", err)
		}
	case markup.Paragraph:
		if e.Inline != nil && e.Inline.MarkedText != "" {
			r, err := doc.FindTextRange(h, e.Inline.MarkedText)
			if err != nil {
				return fail("find text range", err)
			}
			if err := doc.SetEmphasis(r, e.Inline.Kind, true); err != nil {
				return fail("set emphasis", err)
			}
		}
	case markup.BlankParagraph:
	default:
		a.Log.Warn("Unexpected element kind, inserted empty block", zap.String("kind", fmt.Sprintf("%T", e)))
	}

	cur.Advance(h)
	return nil
}
