package format

import "mdconv/host"

// Cursor is the moving insertion point: the block after which the next block
// is appended. It only moves forward, to the block most recently inserted.
type Cursor struct {
	pos   host.BlockHandle
	moves int
}

// NewCursor starts at anchor, normally what is left of the deleted selection.
func NewCursor(anchor host.BlockHandle) *Cursor {
	return &Cursor{pos: anchor}
}

func (c *Cursor) Position() host.BlockHandle {
	return c.pos
}

// Advance moves cursor to newly created block.
func (c *Cursor) Advance(h host.BlockHandle) {
	c.pos = h
	c.moves++
}

// Moves returns number of blocks inserted through this cursor.
func (c *Cursor) Moves() int {
	return c.moves
}
