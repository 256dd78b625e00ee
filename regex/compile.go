package regex

import (
	"strings"

	"github.com/npillmayer/lexkit/automata"
)

// CompileNFA parses a pattern into an NFA, using a fresh arena. The end state
// of the returned fragment is marked final.
func CompileNFA(pattern string) (*automata.Arena, automata.Fragment, error) {
	a := automata.NewArena()
	f, err := Parse(pattern, a)
	if err != nil {
		return nil, automata.Fragment{}, err
	}
	f.End.Final = true
	return a, f, nil
}

// Compile parses a pattern and converts the resulting NFA into a DFA.
// The NFA is discarded. Errors are of type *SyntaxError.
func Compile(pattern string) (*automata.DFA, error) {
	a, f, err := CompileNFA(pattern)
	if err != nil {
		return nil, err
	}
	dfa := automata.ToDFA(a, f)
	tracer().Debugf("compiled %q: %d NFA states, %d DFA states", pattern, a.Size(), dfa.Size())
	return dfa, nil
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
// It simplifies safe initialization of global variables holding compiled DFAs.
func MustCompile(pattern string) *automata.DFA {
	dfa, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return dfa
}

const metachars = `|*+?()[].\`

// Quote returns a pattern matching the literal text s, escaping all
// metacharacters.
func Quote(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		sb.WriteString(quoteByte(s[i], metachars))
	}
	return sb.String()
}

func quoteByte(b byte, special string) string {
	switch b {
	case '\n':
		return `\n`
	case '\t':
		return `\t`
	case '\r':
		return `\r`
	case '\f':
		return `\f`
	case '\v':
		return `\v`
	case 0:
		return `\0`
	}
	if strings.IndexByte(special, b) >= 0 {
		return `\` + string(rune(b))
	}
	return string([]byte{b})
}
