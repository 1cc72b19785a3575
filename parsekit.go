package parsekit

import "fmt"

// --- Parser kinds ----------------------------------------------------------

// Kind denotes the parsing strategy which produced a parse result.
type Kind int

// Parsing strategies supported by this module.
const (
	LL1   Kind = iota + 1 // top-down predictive
	SLR1                  // simple LR, lookahead from FOLLOW sets
	LR1                   // canonical LR(1)
	LALR1                 // LR(1) with merged cores
)

func (k Kind) String() string {
	switch k {
	case LL1:
		return "LL(1)"
	case SLR1:
		return "SLR(1)"
	case LR1:
		return "LR(1)"
	case LALR1:
		return "LALR(1)"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsBottomUp is true for the shift-reduce strategies.
func (k Kind) IsBottomUp() bool {
	return k == SLR1 || k == LR1 || k == LALR1
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. For every
// terminal and non-terminal, a parse tree will track which input positions
// this symbol covers. A span denotes a start position and the position just
// behind the end. Epsilon-derivations cover an empty span (x…x).
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

// IsEmpty is true for spans covering no input token.
func (s Span) IsEmpty() bool {
	return s[0] == s[1]
}

// Extend returns a span covering both s and other.
func (s Span) Extend(other Span) Span {
	if other[0] < s[0] {
		s[0] = other[0]
	}
	if other[1] > s[1] {
		s[1] = other[1]
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
