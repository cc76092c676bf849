// Package format materializes parsed markup elements as styled blocks of a
// host document.
package format

import (
	"mdconv/host"
	"mdconv/markup"
)

// Target is the part of the host document the applier needs.
type Target interface {
	InsertBlock(anchor host.BlockHandle, text string, loc host.InsertLocation) (host.BlockHandle, error)
	SetBlockStyle(h host.BlockHandle, style string) error
	MarkAsListItem(h host.BlockHandle, level int) error
	FindTextRange(h host.BlockHandle, literal string) (host.RangeHandle, error)
	SetEmphasis(r host.RangeHandle, kind markup.EmphasisKind, on bool) error
}
