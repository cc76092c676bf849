// Package document is an in-memory rich-text document implementing
// host.Document. Mutations are queued and committed on Sync, the same way
// office automation APIs batch their requests.
package document

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"mdconv/host"
	"mdconv/markup"
)

// DefaultStyles are paragraph styles every new document knows about.
var DefaultStyles = []string{"Normal", "Title", "Subtitle", "Heading 1", "Heading 2", "Heading 3", "List Paragraph"}

// MaxListLevel is the deepest list nesting level supported.
const MaxListLevel = 8

// ListInfo marks block as bulleted list item.
type ListInfo struct {
	Level int
}

// Block is a single paragraph of the document.
type Block struct {
	ID    host.BlockHandle
	Text  string
	Style string // empty means default paragraph style
	List  *ListInfo
	Spans []Span
}

func (b *Block) clone() Block {
	c := *b
	if b.List != nil {
		l := *b.List
		c.List = &l
	}
	c.Spans = slices.Clone(b.Spans)
	return c
}

// selection is either contiguous range of blocks or collapsed point placed
// after block anchor (host.Start for beginning of the document).
type selection struct {
	first, last host.BlockHandle
	anchor      host.BlockHandle
	collapsed   bool
}

type textRange struct {
	block      host.BlockHandle
	start, end int
}

type op struct {
	name string
	run  func() error
}

// Document keeps committed blocks and queue of pending operations. It is not
// safe for concurrent use.
type Document struct {
	log *zap.Logger

	blocks []*Block
	styles map[string]struct{}
	sel    selection

	pending []op
	ranges  map[host.RangeHandle]textRange
	nextID  int64

	revision int // number of committed mutations
	syncs    int
}

// Option configures new document.
type Option func(*Document)

// WithLogger sets logger for document operations.
func WithLogger(log *zap.Logger) Option {
	return func(d *Document) {
		d.log = log
	}
}

// WithStyles adds paragraph styles to the document catalog.
func WithStyles(names ...string) Option {
	return func(d *Document) {
		d.AddStyles(names...)
	}
}

// New creates empty document with collapsed selection at the start.
func New(options ...Option) *Document {
	d := &Document{
		log:    zap.NewNop(),
		styles: make(map[string]struct{}),
		ranges: make(map[host.RangeHandle]textRange),
		sel:    selection{anchor: host.Start, collapsed: true},
	}
	d.AddStyles(DefaultStyles...)
	for _, o := range options {
		o(d)
	}
	return d
}

// AddStyles registers paragraph style names. It is not a queued operation.
func (d *Document) AddStyles(names ...string) {
	for _, n := range names {
		if n != "" {
			d.styles[n] = struct{}{}
		}
	}
}

// HasStyle reports whether style is known to the document.
func (d *Document) HasStyle(name string) bool {
	_, ok := d.styles[name]
	return ok
}

// Styles returns sorted names of known styles.
func (d *Document) Styles() []string {
	names := make([]string, 0, len(d.styles))
	for n := range d.styles {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func (d *Document) newID() int64 {
	d.nextID++
	return d.nextID
}

// Append adds already committed block at the end of the document, used when
// loading existing content. Block ID is assigned by the document.
func (d *Document) Append(b Block) host.BlockHandle {
	nb := b.clone()
	nb.ID = host.BlockHandle(d.newID())
	if nb.Style != "" {
		d.AddStyles(nb.Style)
	}
	d.blocks = append(d.blocks, &nb)
	return nb.ID
}

// AppendLines appends committed unstyled block for every line of text. Single
// trailing line break does not produce an empty block. Returns number of
// blocks added.
func (d *Document) AppendLines(text string) int {
	lines := markup.SplitLines(text)
	if n := len(lines); n > 1 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for _, l := range lines {
		d.Append(Block{Text: l})
	}
	return len(lines)
}

// Select selects blocks from first to last, both 1-based and inclusive.
func (d *Document) Select(first, last int) error {
	if first < 1 || last < first || last > len(d.blocks) {
		return fmt.Errorf("invalid selection %d:%d, document has %d paragraphs", first, last, len(d.blocks))
	}
	d.sel = selection{first: d.blocks[first-1].ID, last: d.blocks[last-1].ID}
	return nil
}

// SelectAll selects every block, empty document gets collapsed selection.
func (d *Document) SelectAll() {
	if len(d.blocks) == 0 {
		d.sel = selection{anchor: host.Start, collapsed: true}
		return
	}
	d.sel = selection{first: d.blocks[0].ID, last: d.blocks[len(d.blocks)-1].ID}
}

// Blocks returns copy of committed blocks.
func (d *Document) Blocks() []Block {
	out := make([]Block, 0, len(d.blocks))
	for _, b := range d.blocks {
		out = append(out, b.clone())
	}
	return out
}

// Len returns number of committed blocks.
func (d *Document) Len() int {
	return len(d.blocks)
}

// Revision returns number of mutations committed since document creation.
func (d *Document) Revision() int {
	return d.revision
}

// Syncs returns number of synchronization points passed.
func (d *Document) Syncs() int {
	return d.syncs
}

// Pending returns number of queued operations.
func (d *Document) Pending() int {
	return len(d.pending)
}

// Title returns text of the first heading styled block or empty string.
func (d *Document) Title() string {
	for _, b := range d.blocks {
		if strings.HasPrefix(b.Style, "Heading") || b.Style == "Title" {
			return b.Text
		}
	}
	return ""
}

func (d *Document) indexOf(h host.BlockHandle) int {
	return slices.IndexFunc(d.blocks, func(b *Block) bool { return b.ID == h })
}

func (d *Document) block(h host.BlockHandle) (*Block, error) {
	if i := d.indexOf(h); i >= 0 {
		return d.blocks[i], nil
	}
	return nil, fmt.Errorf("block %d does not exist", h)
}

func (d *Document) selectionIndexes() (int, int, bool) {
	if d.sel.collapsed {
		return 0, 0, false
	}
	first, last := d.indexOf(d.sel.first), d.indexOf(d.sel.last)
	if first < 0 || last < first {
		return 0, 0, false
	}
	return first, last, true
}

// SelectionText synchronizes and returns text of the selection.
func (d *Document) SelectionText(ctx context.Context) (string, error) {
	if err := d.Sync(ctx); err != nil {
		return "", err
	}
	first, last, ok := d.selectionIndexes()
	if !ok {
		return "", nil
	}
	lines := make([]string, 0, last-first+1)
	for _, b := range d.blocks[first : last+1] {
		lines = append(lines, b.Text)
	}
	return strings.Join(lines, "\n"), nil
}

// Selection returns anchor of the committed selection: the block after which
// new content lands. For non collapsed selection this is its last block.
func (d *Document) Selection() host.BlockHandle {
	if d.sel.collapsed {
		return d.sel.anchor
	}
	return d.sel.last
}

// Sync commits queued operations in order. When one fails the rest of the
// queue is discarded, earlier operations stay committed.
func (d *Document) Sync(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.syncs++

	queue := d.pending
	d.pending = nil
	for i, o := range queue {
		if err := o.run(); err != nil {
			d.log.Debug("Synchronization stopped", zap.String("op", o.name), zap.Int("committed", i), zap.Int("discarded", len(queue)-i))
			return &host.OpError{Op: o.name, Index: -1, Err: err}
		}
		d.revision++
	}
	if len(queue) > 0 {
		d.log.Debug("Synchronized", zap.Int("operations", len(queue)), zap.Int("blocks", len(d.blocks)))
	}
	return nil
}

func (d *Document) enqueue(name string, run func() error) {
	d.pending = append(d.pending, op{name: name, run: run})
}
