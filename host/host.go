// Package host describes the rich-text document the conversion runs against:
// handles, insertion and deletion modes and the capability set the pipeline
// calls through.
package host

import (
	"context"
	"errors"
	"fmt"

	"mdconv/markup"
)

// BlockHandle addresses a block of the document. Handles are proxies, they
// may refer to blocks which exist only in the pending queue. Zero value is
// the position before the first block.
type BlockHandle int64

// Start is the anchor placed before the first block of the document.
const Start BlockHandle = 0

// RangeHandle addresses a sub-range of text inside a block.
type RangeHandle int64

// InsertLocation tells where a new block goes relative to its anchor.
type InsertLocation int

const (
	InsertAfter InsertLocation = iota
)

func (l InsertLocation) String() string {
	if l == InsertAfter {
		return "after"
	}
	return fmt.Sprintf("InsertLocation(%d)", int(l))
}

// DeleteMode tells what becomes of the selection after its content is deleted.
type DeleteMode int

const (
	// SelectDeletedRange collapses selection to the place deleted content
	// occupied.
	SelectDeletedRange DeleteMode = iota
)

func (m DeleteMode) String() string {
	if m == SelectDeletedRange {
		return "select-deleted-range"
	}
	return fmt.Sprintf("DeleteMode(%d)", int(m))
}

// Document is the capability set of a host document. Mutating calls are
// queued locally and take effect on Sync, which also refreshes what
// SelectionText and Selection report.
type Document interface {
	// SelectionText synchronizes and returns text of the current selection,
	// blocks are separated by line feeds.
	SelectionText(ctx context.Context) (string, error)
	DeleteSelection(mode DeleteMode) error
	// Selection returns anchor of the current selection as of the last Sync.
	Selection() BlockHandle

	InsertBlock(anchor BlockHandle, text string, loc InsertLocation) (BlockHandle, error)
	SetBlockStyle(h BlockHandle, style string) error
	MarkAsListItem(h BlockHandle, level int) error
	FindTextRange(h BlockHandle, literal string) (RangeHandle, error)
	SetEmphasis(r RangeHandle, kind markup.EmphasisKind, on bool) error

	// Sync commits queued operations in order. It stops on the first failing
	// one, operations committed before it stay.
	Sync(ctx context.Context) error
}

// ErrHostOperation marks failures reported by the host document.
var ErrHostOperation = errors.New("host operation failed")

// OpError describes failed host call.
type OpError struct {
	Op    string
	Index int // position of markup element being applied, -1 if not applicable
	Err   error
}

func (e *OpError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s (element %d): %v", e.Op, e.Index+1, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *OpError) Unwrap() []error {
	return []error{ErrHostOperation, e.Err}
}
