/*
Package lexmach provides an alternative scanner backend, built on the
lexmachine scanner generator.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

The adapter is initialized with the same token specs as lexer.Compile. Specs
are added to lexmachine in order, so ties between matches of equal length are
resolved in favour of the earlier spec, as with the DFA backend. Discard specs
are added with the Skip action.

	LM, err := lexmach.NewLMAdapter(specs)
	if err != nil {
		// do error handling
	}

A scanner is instantiated for each concrete input sequence.
The scanner implements the lexer.Tokenizer interface.

	scan, err := LM.Scanner("input string to tokenize", errlog.New())
	if err != nil {
		// do error handling
	}
	for tok := scan.NextToken(); !tok.IsEOF(); tok = scan.NextToken() {
		…
	}

Pattern syntax of lexmachine is close to, but not identical with, package
regex. Patterns using only literals, escapes, groups, alternation, repetition
and character classes are understood by both.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
