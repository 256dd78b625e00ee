package lexkit

import "fmt"

// --- Token categories ------------------------------------------------------

// TokType is a category type for a Token. We do not define any constants here
// apart from EOF, as it is up to applications to define them.
type TokType int

// EOF is the token type a scanner returns after the end of input is reached.
// It has the same value as text/scanner.EOF.
const EOF TokType = -1

// TokTypeStringer is a type to be provided by a lexer to be able
// to print out token categories.
type TokTypeStringer func(TokType) string

// --- Tokens ----------------------------------------------------------------

// Token represents an input token. Tokens are produced by a lexer and
// reflect terminals of a language.
//
// An example would be a token for an identifier:
//
//    Kind   = ID        // identifier for this kind of tokens (application specific)
//    Lexeme = "count"   // lexeme as it appeared in the input
//    Line   = 12        // line the lexeme started on
//    Span   = 67…72     // occured from byte position 67 in the input
//
// Tokens are values and are never mutated after a lexer has produced them.
type Token struct {
	Kind   TokType
	Lexeme string
	Line   int
	Span   Span
}

// MakeToken creates a token.
func MakeToken(kind TokType, lexeme string, line int, span Span) Token {
	return Token{
		Kind:   kind,
		Lexeme: lexeme,
		Line:   line,
		Span:   span,
	}
}

// IsEOF is a predicate: is this the end-of-input token?
func (t Token) IsEOF() bool {
	return t.Kind == EOF
}

func (t Token) String() string {
	return fmt.Sprintf("<%d %q @%d>", t.Kind, t.Lexeme, t.Line)
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run. A span
// denotes a start position and the position just behind the end.
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

func (s Span) IsNull() bool {
	return s == Span{}
}

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
