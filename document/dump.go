package document

import (
	"mdconv/utils/debug"
)

// Dump returns readable tree of committed blocks for debugging.
func (d *Document) Dump() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "Document: %d blocks, revision %d, syncs %d, pending %d", len(d.blocks), d.revision, d.syncs, len(d.pending))
	for i, b := range d.blocks {
		switch {
		case b.List != nil:
			tw.Line(1, "[%d] id=%d list level=%d style=%q", i, b.ID, b.List.Level, b.Style)
		default:
			tw.Line(1, "[%d] id=%d style=%q", i, b.ID, b.Style)
		}
		for _, r := range b.Runs() {
			tw.TextBlock(2, debug.Label("run", debug.Flag{Name: "bold", On: r.Bold}, debug.Flag{Name: "italic", On: r.Italic}), r.Text)
		}
	}
	if d.sel.collapsed {
		tw.Line(0, "Selection: after %d", d.sel.anchor)
	} else {
		tw.Line(0, "Selection: %d..%d", d.sel.first, d.sel.last)
	}
	return tw.String()
}
