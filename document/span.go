package document

import (
	"slices"

	"mdconv/markup"
)

// Span is emphasized byte range [Start, End) of block text.
type Span struct {
	Start, End int
	Kind       markup.EmphasisKind
}

// Run is a piece of block text with uniform formatting.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
}

// paint switches emphasis of kind on or off over [start, end). Spans of the
// same kind never overlap and are kept ordered.
func paint(spans []Span, start, end int, kind markup.EmphasisKind, on bool) []Span {
	if start >= end {
		return spans
	}
	out := make([]Span, 0, len(spans)+2)
	for _, s := range spans {
		if s.Kind != kind || s.End <= start || s.Start >= end {
			out = append(out, s)
			continue
		}
		// overlapping span of the same kind is cut, on=true merges below
		if s.Start < start {
			out = append(out, Span{Start: s.Start, End: start, Kind: kind})
		}
		if s.End > end {
			out = append(out, Span{Start: end, End: s.End, Kind: kind})
		}
	}
	if on {
		out = append(out, Span{Start: start, End: end, Kind: kind})
	}
	slices.SortFunc(out, func(a, b Span) int {
		if a.Kind != b.Kind {
			return int(a.Kind) - int(b.Kind)
		}
		return a.Start - b.Start
	})
	return merge(out)
}

// merge joins adjacent spans of the same kind.
func merge(spans []Span) []Span {
	out := spans[:0]
	for _, s := range spans {
		if n := len(out); n > 0 && out[n-1].Kind == s.Kind && out[n-1].End >= s.Start {
			out[n-1].End = max(out[n-1].End, s.End)
			continue
		}
		out = append(out, s)
	}
	return out
}

// Runs splits block text into uniformly formatted pieces.
func (b *Block) Runs() []Run {
	if len(b.Spans) == 0 {
		return []Run{{Text: b.Text}}
	}
	cuts := []int{0, len(b.Text)}
	for _, s := range b.Spans {
		cuts = append(cuts, min(s.Start, len(b.Text)), min(s.End, len(b.Text)))
	}
	slices.Sort(cuts)
	cuts = slices.Compact(cuts)

	var runs []Run
	for i := 0; i+1 < len(cuts); i++ {
		from, to := cuts[i], cuts[i+1]
		r := Run{Text: b.Text[from:to]}
		for _, s := range b.Spans {
			if s.Start <= from && to <= s.End {
				switch s.Kind {
				case markup.EmphasisBold:
					r.Bold = true
				case markup.EmphasisItalic:
					r.Italic = true
				}
			}
		}
		if n := len(runs); n > 0 && runs[n-1].Bold == r.Bold && runs[n-1].Italic == r.Italic {
			runs[n-1].Text += r.Text
			continue
		}
		runs = append(runs, r)
	}
	if len(runs) == 0 {
		return []Run{{Text: b.Text}}
	}
	return runs
}
