package automata

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/emirpasic/gods/utils"
)

// === Closure and Move Operations ===========================================

// Refer to "Compilers: Principles, Techniques, and Tools" by Aho, Lam, Sethi
// & Ullman, Section 3.7.1 Conversion of an NFA to a DFA

// EpsilonClosure computes the set of states reachable from S via zero or more
// epsilon transitions. S is not modified.
func EpsilonClosure(S StateSet) StateSet {
	C := S.Copy()
	stack := arraystack.New()
	S.Each(func(s *State) {
		stack.Push(s)
	})
	for !stack.Empty() {
		x, _ := stack.Pop()
		for _, target := range x.(*State).Targets(Epsilon()) {
			if !C.Contains(target) {
				C.Add(target)
				stack.Push(target)
			}
		}
	}
	return C
}

// Move computes the set of states reachable from any state in S via a single
// transition consuming b. The result is not epsilon-closed.
func Move(S StateSet, b byte) StateSet {
	M := S.arena.NewStateSet()
	S.Each(func(s *State) {
		for _, t := range s.transitions {
			if t.label.Matches(b) {
				for _, target := range t.targets {
					M.Add(target)
				}
			}
		}
	})
	return M
}

// Alphabet returns all input bytes for which some state reachable from
// nfa.Start has a transition, in ascending order. For class transitions,
// every byte satisfying the class predicate is part of the alphabet.
func Alphabet(a *Arena, nfa Fragment) []byte {
	a.checkFragment("alphabet", nfa)
	syms := treeset.NewWith(utils.IntComparator)
	for _, s := range a.Reachable(nfa.Start) {
		for _, t := range s.transitions {
			switch t.label.Kind {
			case SymbolLabel:
				syms.Add(int(t.label.Sym))
			case ClassLabel:
				for b := 0; b < 256; b++ {
					if t.label.Class.Contains(byte(b)) {
						syms.Add(b)
					}
				}
			}
		}
	}
	alphabet := make([]byte, 0, syms.Size())
	for _, x := range syms.Values() {
		alphabet = append(alphabet, byte(x.(int)))
	}
	return alphabet
}

// === Subset Construction ===================================================

// ToDFA converts an NFA fragment into an equivalent DFA by subset construction.
// A DFA state is final iff its set of NFA states contains nfa.End.
//
// The arena and its states are not modified and may be discarded afterwards.
func ToDFA(a *Arena, nfa Fragment) *DFA {
	tracer().Debugf("=== subset construction for %s ===============================", nfa)
	alphabet := Alphabet(a, nfa)
	dfa := &DFA{
		alphabet: alphabet,
		index:    make(map[string]*DState),
		nfaSize:  a.Size(),
	}
	start, _ := dfa.addState(EpsilonClosure(a.NewStateSet(nfa.Start)), nfa.End)
	dfa.start = start
	worklist := arraylist.New() // unmarked DFA states
	worklist.Add(start)
	for !worklist.Empty() {
		x, _ := worklist.Get(0)
		worklist.Remove(0)
		D := x.(*DState)
		for _, b := range alphabet {
			U := EpsilonClosure(Move(D.nfa, b))
			if U.IsEmpty() {
				continue
			}
			T, isNew := dfa.addState(U, nfa.End)
			if isNew {
				worklist.Add(T)
			}
			D.next[b] = T
			tracer().Debugf("d%d --%s--> d%d", D.ID, byteString(b), T.ID)
		}
	}
	tracer().Infof("DFA with %d states from NFA with %d states, alphabet of size %d",
		len(dfa.states), a.Size(), len(alphabet))
	return dfa
}

// addState looks up the DFA state for NFA state set U, creating it if it does
// not exist yet. Returns the state and a flag signalling a newly created state.
func (dfa *DFA) addState(U StateSet, end *State) (*DState, bool) {
	key := U.Key()
	if d, ok := dfa.index[key]; ok {
		return d, false
	}
	d := &DState{
		ID:    len(dfa.states),
		Final: U.Contains(end),
		nfa:   U,
		next:  make(map[byte]*DState),
	}
	dfa.index[key] = d
	dfa.states = append(dfa.states, d)
	tracer().Debugf("new DFA state d%d = %v", d.ID, U)
	return d, true
}
