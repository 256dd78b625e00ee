package automata

import (
	"fmt"
	"strconv"
	"strings"
)

// --- Labels ----------------------------------------------------------------

// LabelKind distinguishes the variants of transition labels.
type LabelKind uint8

// Transition labels are either epsilon, a single input byte, or a character class.
const (
	EpsilonLabel LabelKind = iota
	SymbolLabel
	ClassLabel
)

// Label is a tagged variant for transition labels. Labels are comparable
// and may be used as map keys; class labels compare by class identity.
type Label struct {
	Kind  LabelKind
	Sym   byte       // for SymbolLabel
	Class *CharClass // for ClassLabel
}

// Epsilon returns the label for transitions not consuming input.
func Epsilon() Label {
	return Label{Kind: EpsilonLabel}
}

// Symbol returns a label matching exactly one input byte.
func Symbol(b byte) Label {
	return Label{Kind: SymbolLabel, Sym: b}
}

// Class returns a label matching every byte contained in c.
func Class(c *CharClass) Label {
	if c == nil {
		panic("automata: class label without character class")
	}
	return Label{Kind: ClassLabel, Class: c}
}

// IsEpsilon is a predicate: is this an epsilon label?
func (l Label) IsEpsilon() bool {
	return l.Kind == EpsilonLabel
}

// Matches is true if a transition with label l may consume input byte b.
// Epsilon labels never consume input.
func (l Label) Matches(b byte) bool {
	switch l.Kind {
	case SymbolLabel:
		return l.Sym == b
	case ClassLabel:
		return l.Class.Contains(b)
	case EpsilonLabel:
		return false
	}
	panic(fmt.Sprintf("automata: unknown label kind %d", l.Kind))
}

func (l Label) String() string {
	switch l.Kind {
	case EpsilonLabel:
		return "ε"
	case SymbolLabel:
		return byteString(l.Sym)
	case ClassLabel:
		return l.Class.String()
	}
	return "?"
}

// --- Character classes -----------------------------------------------------

type byteRange struct {
	lo, hi byte
}

// CharClass is a predicate over input bytes, made from ranges of bytes.
// A negated class contains every byte not covered by one of its ranges.
type CharClass struct {
	ranges  []byteRange
	negated bool
}

// NewCharClass creates an empty character class. If negated is true, the class
// will contain all bytes except the ones added to it.
func NewCharClass(negated bool) *CharClass {
	return &CharClass{negated: negated}
}

// AnyButNewline is the class used for the '.' wildcard.
func AnyButNewline() *CharClass {
	return NewCharClass(true).Add('\n')
}

// Add adds a single byte. Returns the class (for chaining).
func (c *CharClass) Add(b byte) *CharClass {
	return c.AddRange(b, b)
}

// AddRange adds all bytes from lo to hi, inclusive. Returns the class (for
// chaining). Reversed ranges are a programming error.
func (c *CharClass) AddRange(lo, hi byte) *CharClass {
	if lo > hi {
		panic(fmt.Sprintf("automata: reversed character range %s-%s", byteString(lo), byteString(hi)))
	}
	c.ranges = append(c.ranges, byteRange{lo, hi})
	return c
}

// Negated is true for classes of the form [^…].
func (c *CharClass) Negated() bool {
	return c.negated
}

// Contains is the membership predicate of the class.
func (c *CharClass) Contains(b byte) bool {
	in := false
	for _, r := range c.ranges {
		if b >= r.lo && b <= r.hi {
			in = true
			break
		}
	}
	return in != c.negated
}

func (c *CharClass) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	if c.negated {
		sb.WriteByte('^')
	}
	for _, r := range c.ranges {
		sb.WriteString(byteString(r.lo))
		if r.hi != r.lo {
			sb.WriteByte('-')
			sb.WriteString(byteString(r.hi))
		}
	}
	sb.WriteByte(']')
	return sb.String()
}

func byteString(b byte) string {
	if b > ' ' && b < 0x7f {
		return string(rune(b))
	}
	s := strconv.QuoteRune(rune(b))
	return s[1 : len(s)-1]
}

// --- States ----------------------------------------------------------------

// transition groups all targets of a state for one label.
type transition struct {
	label   Label
	targets []*State
}

// State is a state of an NFA. States are allocated by an arena and carry an
// identity unique within this arena.
type State struct {
	ID          int  // serial ID of this state, unique within its arena
	Final       bool // is this an accepting state?
	transitions []transition
	arena       *Arena
}

// AddTransition adds a transition to target `to`, labeled l. Adding an
// existing transition is a no-op.
func (s *State) AddTransition(l Label, to *State) {
	if to.arena != s.arena {
		panic("automata: transition between states of different arenas")
	}
	for i := range s.transitions {
		if s.transitions[i].label == l {
			for _, t := range s.transitions[i].targets {
				if t == to {
					return
				}
			}
			s.transitions[i].targets = append(s.transitions[i].targets, to)
			return
		}
	}
	s.transitions = append(s.transitions, transition{label: l, targets: []*State{to}})
}

// Targets returns the target states for label l.
func (s *State) Targets(l Label) []*State {
	for _, t := range s.transitions {
		if t.label == l {
			return t.targets
		}
	}
	return nil
}

// EachTransition calls f for every label of s together with its targets,
// in the order the labels have been added.
func (s *State) EachTransition(f func(Label, []*State)) {
	for _, t := range s.transitions {
		f(t.label, t.targets)
	}
}

// TransitionCount returns the number of (label, target) pairs of s.
func (s *State) TransitionCount() int {
	n := 0
	for _, t := range s.transitions {
		n += len(t.targets)
	}
	return n
}

func (s *State) String() string {
	if s.Final {
		return fmt.Sprintf("(n%d final)", s.ID)
	}
	return fmt.Sprintf("(n%d)", s.ID)
}

// --- Arenas ----------------------------------------------------------------

// Arena owns the states of one compilation unit and allocates their
// identities. Identities are small integers 0…n-1, which enables bitset
// representations of state sets.
type Arena struct {
	states []*State
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{states: make([]*State, 0, 32)}
}

// NewState allocates a fresh state.
func (a *Arena) NewState() *State {
	s := &State{ID: len(a.states), arena: a}
	a.states = append(a.states, s)
	return s
}

// Size returns the number of states allocated so far.
func (a *Arena) Size() int {
	return len(a.states)
}

// State returns the state with identity id, or nil.
func (a *Arena) State(id int) *State {
	if id < 0 || id >= len(a.states) {
		return nil
	}
	return a.states[id]
}

// Owns is a predicate: has s been allocated by this arena?
func (a *Arena) Owns(s *State) bool {
	return s != nil && s.arena == a
}
