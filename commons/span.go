package commons

// Span is a range of runes in the document text.
type Span struct {
	// Start represents the offset of the first rune.
	Start int `json:"start"`

	// End represents the offset after the last rune. It equals Start for a
	// cursor.
	End int `json:"end"`
}

// Collapsed reports whether the span is a bare cursor.
func (s Span) Collapsed() bool {
	return s.Start == s.End
}

// Normalize returns the span with Start <= End, clamped at zero.
func (s Span) Normalize() Span {
	if s.End < s.Start {
		s.Start, s.End = s.End, s.Start
	}
	if s.Start < 0 {
		s.Start = 0
	}
	if s.End < 0 {
		s.End = 0
	}
	return s
}
