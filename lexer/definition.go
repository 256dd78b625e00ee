package lexer

import (
	"fmt"

	"github.com/npillmayer/lexkit"
	"github.com/npillmayer/lexkit/automata"
	"github.com/npillmayer/lexkit/regex"
)

// TokenDefinition binds a token kind to a compiled pattern. Only the DFA of
// the pattern is retained; the NFA is discarded after conversion.
type TokenDefinition struct {
	kind    lexkit.TokType
	name    string
	pattern string
	discard bool
	dfa     *automata.DFA
}

// Option configures a token definition.
type Option func(*TokenDefinition)

// Discard marks a definition whose matches are consumed without emitting a
// token, e.g. whitespace or comments.
func Discard() Option {
	return func(def *TokenDefinition) {
		def.discard = true
	}
}

// Name sets a display name for the token kind of a definition.
func Name(name string) Option {
	return func(def *TokenDefinition) {
		def.name = name
	}
}

// NewTokenDefinition compiles a pattern for token kind `kind`. If the pattern
// is malformed, a *regex.SyntaxError is returned.
func NewTokenDefinition(kind lexkit.TokType, pattern string, opts ...Option) (*TokenDefinition, error) {
	dfa, err := regex.Compile(pattern)
	if err != nil {
		return nil, err
	}
	def := &TokenDefinition{
		kind:    kind,
		pattern: pattern,
		dfa:     dfa,
	}
	for _, opt := range opts {
		opt(def)
	}
	if def.name == "" {
		def.name = fmt.Sprintf("%d", kind)
	}
	return def, nil
}

// Kind returns the token kind produced by this definition.
func (def *TokenDefinition) Kind() lexkit.TokType {
	return def.kind
}

// Name returns the display name of the definition.
func (def *TokenDefinition) Name() string {
	return def.name
}

// Pattern returns the source pattern of the definition.
func (def *TokenDefinition) Pattern() string {
	return def.pattern
}

// IsDiscard is true for definitions which do not emit tokens.
func (def *TokenDefinition) IsDiscard() bool {
	return def.discard
}

// DFA returns the compiled automaton. Clients must not modify it.
func (def *TokenDefinition) DFA() *automata.DFA {
	return def.dfa
}

// Match walks the DFA over input, beginning at byte offset start, and returns
// the length of the longest prefix accepted. A zero-length match (0, true) is
// distinct from no match at all (0, false).
func (def *TokenDefinition) Match(input string, start int) (int, bool) {
	return def.dfa.LongestPrefix(input, start)
}

func (def *TokenDefinition) String() string {
	d := ""
	if def.discard {
		d = "~"
	}
	return fmt.Sprintf("%s%s = %s", d, def.name, def.pattern)
}
