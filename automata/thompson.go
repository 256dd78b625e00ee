package automata

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"
)

// Fragment is a partial NFA with a single entry and a single exit state.
// Fragments do not own states; their states belong to an arena. All
// operations below re-use the states of their argument fragments, which
// therefore must not be used as standalone fragments afterwards.
//
// Fragments built by the operations of this file never have transitions
// leaving their End state.
type Fragment struct {
	Start *State
	End   *State
}

// IsNull is a predicate: is f an uninitialized fragment?
func (f Fragment) IsNull() bool {
	return f.Start == nil || f.End == nil
}

func (f Fragment) String() string {
	if f.IsNull() {
		return "<frag nil>"
	}
	return fmt.Sprintf("<frag n%d…n%d>", f.Start.ID, f.End.ID)
}

func (a *Arena) checkFragment(op string, f Fragment) {
	if f.IsNull() {
		panic(fmt.Sprintf("automata: %s on null fragment", op))
	}
	if !a.Owns(f.Start) || !a.Owns(f.End) {
		panic(fmt.Sprintf("automata: %s on fragment of foreign arena", op))
	}
}

// Literal creates a 2-state fragment with a single transition labeled c.
func (a *Arena) Literal(c byte) Fragment {
	return a.labeled(Symbol(c))
}

// Class creates a 2-state fragment with a single transition guarded by
// character class c.
func (a *Arena) Class(c *CharClass) Fragment {
	return a.labeled(Class(c))
}

// Empty creates a fragment accepting the empty string only.
func (a *Arena) Empty() Fragment {
	return a.labeled(Epsilon())
}

func (a *Arena) labeled(l Label) Fragment {
	start, end := a.NewState(), a.NewState()
	start.AddTransition(l, end)
	tracer().Debugf("%s --%s--> %s", start, l, end)
	return Fragment{Start: start, End: end}
}

// Concatenate links x.End to y.Start with an epsilon transition. The result
// is {x.Start, y.End}.
func (a *Arena) Concatenate(x, y Fragment) Fragment {
	a.checkFragment("concatenate", x)
	a.checkFragment("concatenate", y)
	x.End.AddTransition(Epsilon(), y.Start)
	return Fragment{Start: x.Start, End: y.End}
}

// Union creates a new start state with epsilon transitions to the start states
// of x and y, and a new end state reached by epsilon transitions from the
// end states of x and y.
func (a *Arena) Union(x, y Fragment) Fragment {
	a.checkFragment("union", x)
	a.checkFragment("union", y)
	start, end := a.NewState(), a.NewState()
	start.AddTransition(Epsilon(), x.Start)
	start.AddTransition(Epsilon(), y.Start)
	x.End.AddTransition(Epsilon(), end)
	y.End.AddTransition(Epsilon(), end)
	return Fragment{Start: start, End: end}
}

// Kleene creates the closure x*.
func (a *Arena) Kleene(x Fragment) Fragment {
	a.checkFragment("kleene closure", x)
	start, end := a.NewState(), a.NewState()
	start.AddTransition(Epsilon(), x.Start)
	x.End.AddTransition(Epsilon(), x.Start) // repeat
	start.AddTransition(Epsilon(), end)     // skip
	x.End.AddTransition(Epsilon(), end)
	return Fragment{Start: start, End: end}
}

// Plus creates x+ as x x*. The starred part operates on a clone of x, as the
// original and the repetition must not share states.
func (a *Arena) Plus(x Fragment) Fragment {
	a.checkFragment("plus", x)
	rep := a.Kleene(a.Clone(x))
	return a.Concatenate(x, rep)
}

// Optional creates x? as the union of x and the empty string.
func (a *Arena) Optional(x Fragment) Fragment {
	a.checkFragment("optional", x)
	return a.Union(x, a.Empty())
}

// Clone creates a deep copy of all states reachable from x.Start, allocating
// fresh identities. The copy has the same topology as the original.
func (a *Arena) Clone(x Fragment) Fragment {
	a.checkFragment("clone", x)
	m := a.CloneGraph(x.Start)
	end, ok := m[x.End]
	if !ok {
		panic("automata: end state of fragment not reachable from its start")
	}
	return Fragment{Start: m[x.Start], End: end}
}

// CloneGraph copies the directed graph reachable from root, remapping every
// state to a newly allocated one. It returns the mapping old → new.
//
// Cloning is done in two passes: first allocate a state for every reachable
// state, then rebuild every transition using the new identities.
func (a *Arena) CloneGraph(root *State) map[*State]*State {
	if !a.Owns(root) {
		panic("automata: cannot clone states of a foreign arena")
	}
	m := make(map[*State]*State)
	order := make([]*State, 0, 8)
	stack := arraystack.New()
	stack.Push(root)
	m[root] = nil
	for !stack.Empty() {
		x, _ := stack.Pop()
		s := x.(*State)
		order = append(order, s)
		for _, t := range s.transitions {
			for _, target := range t.targets {
				if _, seen := m[target]; !seen {
					m[target] = nil
					stack.Push(target)
				}
			}
		}
	}
	for _, s := range order {
		c := a.NewState()
		c.Final = s.Final
		m[s] = c
	}
	for _, s := range order {
		c := m[s]
		for _, t := range s.transitions {
			for _, target := range t.targets {
				c.AddTransition(t.label, m[target])
			}
		}
	}
	tracer().Debugf("cloned %d states from %s", len(order), root)
	return m
}

// Reachable returns all states reachable from root, including root, in
// ascending order of identity.
func (a *Arena) Reachable(root *State) []*State {
	S := a.NewStateSet(root)
	stack := arraystack.New()
	stack.Push(root)
	for !stack.Empty() {
		x, _ := stack.Pop()
		for _, t := range x.(*State).transitions {
			for _, target := range t.targets {
				if !S.Contains(target) {
					S.Add(target)
					stack.Push(target)
				}
			}
		}
	}
	return S.States()
}
