/*
Package lexer implements DFA-driven lexical scanners.

A Lexer holds an ordered list of token definitions. Each definition binds a
token kind to a pattern, which is compiled once into a DFA (see package
regex). Scanning follows the maximal-munch discipline: at every position all
definitions are tried, the longest match wins, and on ties the definition
registered first wins. Definitions marked as discard (whitespace, comments)
consume input without producing tokens.

    lx, err := lexer.Compile([]lexer.Spec{
        {Kind: KW, Name: "KW", Pattern: "int|return"},
        {Kind: ID, Name: "ID", Pattern: "[a-z]+"},
        {Name: "WS", Pattern: "[ \t\n]+", Discard: true},
    })
    tokens := lx.Scan("int x", errlog.New())

A Lexer is immutable after construction and may be shared by goroutines
scanning independent inputs. Per-input state lives in a Scanner.

Unrecognized input is reported to an ErrorHandler together with the current
line number; the scanner then skips a single character and continues.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexer

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'lexkit.lexer'.
func tracer() tracing.Trace {
	return tracing.Select("lexkit.lexer")
}
