package automata

import (
	"math/bits"
	"strings"
)

// StateSet is a set of NFA states of one arena, represented as a bitset over
// the states' identities. The zero value is not usable; create sets with
// Arena.NewStateSet.
//
// A set sized for an arena covers all states allocated up to the point of its
// creation. Compilation of a pattern is complete before subset construction
// starts, therefore sets created during conversion cover all states.
type StateSet struct {
	arena *Arena
	words []uint64
}

// NewStateSet creates a set containing states.
func (a *Arena) NewStateSet(states ...*State) StateSet {
	S := StateSet{
		arena: a,
		words: make([]uint64, (a.Size()+63)/64),
	}
	for _, s := range states {
		S.Add(s)
	}
	return S
}

// Add adds state s to the set.
func (S StateSet) Add(s *State) {
	if !S.arena.Owns(s) {
		panic("automata: state set cannot hold states of foreign arenas")
	}
	S.words[s.ID/64] |= 1 << uint(s.ID%64)
}

// Contains is the membership predicate.
func (S StateSet) Contains(s *State) bool {
	if s == nil || s.arena != S.arena || s.ID/64 >= len(S.words) {
		return false
	}
	return S.words[s.ID/64]&(1<<uint(s.ID%64)) != 0
}

// IsEmpty is true for the empty set.
func (S StateSet) IsEmpty() bool {
	for _, w := range S.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Len returns the number of states in the set.
func (S StateSet) Len() int {
	n := 0
	for _, w := range S.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Copy returns an independent copy of S.
func (S StateSet) Copy() StateSet {
	C := StateSet{arena: S.arena, words: make([]uint64, len(S.words))}
	copy(C.words, S.words)
	return C
}

// Equals compares two sets by their members.
func (S StateSet) Equals(other StateSet) bool {
	return S.arena == other.arena && S.Key() == other.Key()
}

// Each calls f for every member in ascending order of identity.
func (S StateSet) Each(f func(*State)) {
	for i, w := range S.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			f(S.arena.states[i*64+b])
			w &= w - 1
		}
	}
}

// States returns the members in ascending order of identity.
func (S StateSet) States() []*State {
	states := make([]*State, 0, S.Len())
	S.Each(func(s *State) {
		states = append(states, s)
	})
	return states
}

// IDs returns the identities of the members in ascending order.
func (S StateSet) IDs() []int {
	ids := make([]int, 0, S.Len())
	S.Each(func(s *State) {
		ids = append(ids, s.ID)
	})
	return ids
}

// Key returns a string usable as a map key. Two sets of the same arena have
// equal keys iff they have equal members.
func (S StateSet) Key() string {
	n := len(S.words)
	for n > 0 && S.words[n-1] == 0 { // ignore trailing empty words
		n--
	}
	buf := make([]byte, 8*n)
	for i, w := range S.words[:n] {
		for j := 0; j < 8; j++ {
			buf[8*i+j] = byte(w >> uint(8*j))
		}
	}
	return string(buf)
}

func (S StateSet) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	first := true
	S.Each(func(s *State) {
		if first {
			sb.WriteString(" ")
			first = false
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(s.String())
	})
	sb.WriteString(" }")
	return sb.String()
}
