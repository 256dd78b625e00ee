package automata

import (
	"fmt"

	"github.com/npillmayer/lexkit/automata/sparse"
)

// DState is a state of a DFA. It corresponds to a set of NFA states.
type DState struct {
	ID    int  // serial ID of this state, 0 is the start state
	Final bool // is this an accepting state?
	nfa   StateSet
	next  map[byte]*DState
}

// Next returns the successor state for input byte b, or nil.
func (d *DState) Next(b byte) *DState {
	return d.next[b]
}

// NFAStates returns the identities of the NFA states d stands for.
func (d *DState) NFAStates() []int {
	return d.nfa.IDs()
}

// TransitionCount returns the number of outgoing transitions of d.
func (d *DState) TransitionCount() int {
	return len(d.next)
}

func (d *DState) String() string {
	if d.Final {
		return fmt.Sprintf("(d%d final | %d)", d.ID, d.nfa.Len())
	}
	return fmt.Sprintf("(d%d | %d)", d.ID, d.nfa.Len())
}

// DFA is a deterministic finite automaton over bytes, as created by ToDFA.
// A DFA is immutable.
type DFA struct {
	start    *DState
	states   []*DState // ordered by ID
	alphabet []byte
	index    map[string]*DState // NFA state set key → DFA state
	nfaSize  int                // number of states of the source NFA
}

// Start returns the initial state.
func (dfa *DFA) Start() *DState {
	return dfa.start
}

// Size returns the number of states.
func (dfa *DFA) Size() int {
	return len(dfa.states)
}

// NFASize returns the number of states of the NFA the DFA has been built from.
func (dfa *DFA) NFASize() int {
	return dfa.nfaSize
}

// States returns all states, ordered by ID. Clients must not modify the slice.
func (dfa *DFA) States() []*DState {
	return dfa.states
}

// Alphabet returns the input bytes the DFA has transitions for, in ascending
// order. Clients must not modify the slice.
func (dfa *DFA) Alphabet() []byte {
	return dfa.alphabet
}

// LongestPrefix walks the DFA over input, beginning at offset start, and
// returns the length of the longest prefix accepted. Zero-length matches are
// reported as (0, true), no match at all as (0, false).
func (dfa *DFA) LongestPrefix(input string, start int) (int, bool) {
	if start < 0 || start > len(input) {
		return 0, false
	}
	last := -1
	s := dfa.start
	if s.Final {
		last = start
	}
	for i := start; i < len(input); i++ {
		if s = s.next[input[i]]; s == nil {
			break
		}
		if s.Final {
			last = i + 1
		}
	}
	if last < 0 {
		return 0, false
	}
	return last - start, true
}

// Accepts is a predicate: is the whole string s in the language of the DFA?
func (dfa *DFA) Accepts(s string) bool {
	n, ok := dfa.LongestPrefix(s, 0)
	return ok && n == len(s)
}

// TransitionTable exports the transitions as a sparse matrix of size
// |states| × 256, with targets' IDs as values.
func (dfa *DFA) TransitionTable() *sparse.IntMatrix {
	M := sparse.NewIntMatrix(len(dfa.states), 256, sparse.DefaultNullValue)
	for _, d := range dfa.states {
		for _, b := range dfa.alphabet {
			if t := d.next[b]; t != nil {
				M.Set(d.ID, int(b), int32(t.ID))
			}
		}
	}
	return M
}
