package document

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"mdconv/host"
	"mdconv/markup"
)

var errNotFound = errors.New("text not found")

// DeleteSelection queues removal of selected blocks. After commit selection
// collapses to the place removed blocks occupied.
func (d *Document) DeleteSelection(mode host.DeleteMode) error {
	if mode != host.SelectDeletedRange {
		return fmt.Errorf("unsupported delete mode %s", mode)
	}
	d.enqueue("delete selection", func() error {
		first, last, ok := d.selectionIndexes()
		if !ok {
			// already collapsed, nothing to remove
			return nil
		}
		anchor := host.Start
		if first > 0 {
			anchor = d.blocks[first-1].ID
		}
		d.blocks = slices.Delete(d.blocks, first, last+1)
		d.sel = selection{anchor: anchor, collapsed: true}
		return nil
	})
	return nil
}

// InsertBlock queues new block after anchor and returns its handle right away.
func (d *Document) InsertBlock(anchor host.BlockHandle, text string, loc host.InsertLocation) (host.BlockHandle, error) {
	if loc != host.InsertAfter {
		return 0, fmt.Errorf("unsupported insert location %s", loc)
	}
	if strings.ContainsAny(text, "\r\n") {
		return 0, fmt.Errorf("block text may not contain line breaks")
	}
	id := host.BlockHandle(d.newID())
	d.enqueue("insert block", func() error {
		pos := 0
		if anchor != host.Start {
			i := d.indexOf(anchor)
			if i < 0 {
				return fmt.Errorf("anchor block %d does not exist", anchor)
			}
			pos = i + 1
		}
		d.blocks = slices.Insert(d.blocks, pos, &Block{ID: id, Text: text})
		return nil
	})
	return id, nil
}

// SetBlockStyle queues paragraph style change. Style must be known to the
// document at commit time.
func (d *Document) SetBlockStyle(h host.BlockHandle, style string) error {
	d.enqueue("set block style", func() error {
		b, err := d.block(h)
		if err != nil {
			return err
		}
		if !d.HasStyle(style) {
			return fmt.Errorf("style %q is not defined", style)
		}
		b.Style = style
		return nil
	})
	return nil
}

// MarkAsListItem queues turning block into bulleted list item.
func (d *Document) MarkAsListItem(h host.BlockHandle, level int) error {
	if level < 0 || level > MaxListLevel {
		return fmt.Errorf("list level %d out of range 0..%d", level, MaxListLevel)
	}
	d.enqueue("mark list item", func() error {
		b, err := d.block(h)
		if err != nil {
			return err
		}
		b.List = &ListInfo{Level: level}
		return nil
	})
	return nil
}

// FindTextRange queues search for the first occurrence of literal in block.
// The returned range is resolved when the queue is committed.
func (d *Document) FindTextRange(h host.BlockHandle, literal string) (host.RangeHandle, error) {
	if literal == "" {
		return 0, errors.New("empty search text")
	}
	r := host.RangeHandle(d.newID())
	d.enqueue("find text range", func() error {
		b, err := d.block(h)
		if err != nil {
			return err
		}
		i := strings.Index(b.Text, literal)
		if i < 0 {
			return fmt.Errorf("%w: %q in block %d", errNotFound, literal, h)
		}
		d.ranges[r] = textRange{block: h, start: i, end: i + len(literal)}
		return nil
	})
	return r, nil
}

// SetEmphasis queues emphasis change over previously found range.
func (d *Document) SetEmphasis(r host.RangeHandle, kind markup.EmphasisKind, on bool) error {
	if kind != markup.EmphasisBold && kind != markup.EmphasisItalic {
		return fmt.Errorf("unsupported emphasis %s", kind)
	}
	d.enqueue("set emphasis", func() error {
		rng, ok := d.ranges[r]
		if !ok {
			return fmt.Errorf("range %d is not resolved", r)
		}
		b, err := d.block(rng.block)
		if err != nil {
			return err
		}
		b.Spans = paint(b.Spans, rng.start, rng.end, kind, on)
		return nil
	})
	return nil
}
