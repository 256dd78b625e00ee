/*
Package regex implements a parser for token patterns.

Patterns are parsed by recursive descent, one function per non-terminal of
the grammar given in Grammar. For every construct recognized, the parser
invokes the corresponding Thompson operation of package automata; no
intermediate syntax tree is built.

    dfa, err := regex.Compile(`[a-z]([a-z]|[0-9]|_)*`)
    if err != nil {
        var serr *regex.SyntaxError
        if errors.As(err, &serr) {
            // serr.Pos is the offending byte position
        }
    }

Supported syntax: literals, concatenation, alternation '|', repetition with
'*', '+' and '?', grouping with parentheses, character classes [a-z0-9_] and
negated classes [^"\n], the wildcard '.' (any byte but newline), and escapes.
A backslash followed by a character denotes that character literally; \n, \t,
\r, \f, \v and \0 denote the respective control characters. Patterns operate
on bytes; characters outside of ASCII are matched byte by byte.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package regex

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lexkit.regex'.
func tracer() tracing.Trace {
	return tracing.Select("lexkit.regex")
}
