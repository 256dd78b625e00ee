/*
Package automata implements finite automata for lexical scanning.

NFAs are built with Thompson's construction. Every compilation unit (usually
one token pattern) owns an Arena, which allocates states and their identities.
Operations on fragments mutate the fragments' states in place and return a
new fragment covering the composition:

    a := automata.NewArena()
    f := a.Concatenate(a.Literal('a'), a.Kleene(a.Literal('b')))  // ab*

NFAs are converted into DFAs by subset construction. Sets of NFA states are
represented by bitsets over the arena-local state identities, which makes
comparing and hashing them cheap.

    dfa := automata.ToDFA(a, f)
    n, ok := dfa.LongestPrefix("abbbc", 0)  // n = 4, ok = true

A DFA is immutable after construction and may be shared between goroutines.
Arenas and their NFA states are not safe for concurrent use.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package automata

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lexkit.automata'.
func tracer() tracing.Trace {
	return tracing.Select("lexkit.automata")
}
