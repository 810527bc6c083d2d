// Package span implements the source-location value type shared by every
// token, AST node, and diagnostic produced by the engine.
package span

import "fmt"

// Span locates a lexeme or a composite construct in the original source
// text. It is a value type: copy it freely, never back-reference the
// source from it.
type Span struct {
	Line   int `json:"line"`   // 1-based
	Column int `json:"column"` // 1-based
	Offset int `json:"offset"` // 0-based byte index
	Length int `json:"length"` // byte count
}

// End returns the exclusive byte offset one past the span.
func (s Span) End() int {
	return s.Offset + s.Length
}

// Text slices the original source by the span's byte range. Callers must
// pass the same source the span was produced from.
func (s Span) Text(src string) string {
	if s.Offset < 0 || s.End() > len(src) || s.Length < 0 {
		return ""
	}
	return src[s.Offset:s.End()]
}

// Merge composes two spans into one covering both, anchored at a's start.
// Per the engine's span algebra: merge(a, b) = (a.Line, a.Column, a.Offset,
// (b.Offset+b.Length) - a.Offset).
func Merge(a, b Span) Span {
	return Span{
		Line:   a.Line,
		Column: a.Column,
		Offset: a.Offset,
		Length: (b.Offset + b.Length) - a.Offset,
	}
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}
