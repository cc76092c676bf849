package format

import (
	"errors"
	"fmt"
	"strings"

	"mdconv/host"
	"mdconv/markup"
)

type fakeBlock struct {
	id       host.BlockHandle
	text     string
	style    string
	list     int // -1 when not a list item
	emphasis string
}

type fakeRange struct {
	block      host.BlockHandle
	start, end int
}

// fakeTarget records operations and keeps blocks in document order.
type fakeTarget struct {
	blocks []*fakeBlock
	ranges map[host.RangeHandle]fakeRange
	nextID int64
	ops    []string

	failInsertAt int // 1-based insert call to fail, 0 - never
	inserts      int
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{ranges: make(map[host.RangeHandle]fakeRange)}
}

func (f *fakeTarget) index(h host.BlockHandle) int {
	for i, b := range f.blocks {
		if b.id == h {
			return i
		}
	}
	return -1
}

func (f *fakeTarget) block(h host.BlockHandle) (*fakeBlock, error) {
	if i := f.index(h); i >= 0 {
		return f.blocks[i], nil
	}
	return nil, fmt.Errorf("no block %d", h)
}

func (f *fakeTarget) InsertBlock(anchor host.BlockHandle, text string, loc host.InsertLocation) (host.BlockHandle, error) {
	f.inserts++
	if f.inserts == f.failInsertAt {
		return 0, errors.New("insert rejected")
	}
	pos := 0
	if anchor != 0 {
		i := f.index(anchor)
		if i < 0 {
			return 0, fmt.Errorf("no anchor %d", anchor)
		}
		pos = i + 1
	}
	f.nextID++
	b := &fakeBlock{id: host.BlockHandle(f.nextID), text: text, list: -1}
	f.blocks = append(f.blocks, nil)
	copy(f.blocks[pos+1:], f.blocks[pos:])
	f.blocks[pos] = b
	f.ops = append(f.ops, fmt.Sprintf("insert %q %s %d", text, loc, anchor))
	return b.id, nil
}

func (f *fakeTarget) SetBlockStyle(h host.BlockHandle, style string) error {
	b, err := f.block(h)
	if err != nil {
		return err
	}
	b.style = style
	f.ops = append(f.ops, "style "+style)
	return nil
}

func (f *fakeTarget) MarkAsListItem(h host.BlockHandle, level int) error {
	b, err := f.block(h)
	if err != nil {
		return err
	}
	b.list = level
	f.ops = append(f.ops, fmt.Sprintf("list %d", level))
	return nil
}

func (f *fakeTarget) FindTextRange(h host.BlockHandle, literal string) (host.RangeHandle, error) {
	b, err := f.block(h)
	if err != nil {
		return 0, err
	}
	i := strings.Index(b.text, literal)
	if i < 0 {
		return 0, fmt.Errorf("%q not found", literal)
	}
	f.nextID++
	r := host.RangeHandle(f.nextID)
	f.ranges[r] = fakeRange{block: h, start: i, end: i + len(literal)}
	f.ops = append(f.ops, "find "+literal)
	return r, nil
}

func (f *fakeTarget) SetEmphasis(r host.RangeHandle, kind markup.EmphasisKind, on bool) error {
	rng, ok := f.ranges[r]
	if !ok {
		return fmt.Errorf("no range %d", r)
	}
	b, err := f.block(rng.block)
	if err != nil {
		return err
	}
	b.emphasis = fmt.Sprintf("%s[%d:%d]=%t", kind, rng.start, rng.end, on)
	f.ops = append(f.ops, "emphasis "+kind.String())
	return nil
}
