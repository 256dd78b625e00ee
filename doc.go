/*
Package lexkit is a toolbox for building lexical scanners from regular
expressions.

Token patterns are compiled into deterministic finite automata and a
maximal-munch scanner drives these automata over an input buffer. Package
structure is as follows:

■ automata: Package automata implements NFA fragments, Thompson's construction
and the subset construction to convert NFAs into DFAs.

■ regex: Package regex implements a recursive-descent parser for token
patterns, assembling NFA fragments on the fly.

■ lexer: Package lexer binds token kinds to compiled patterns and implements
the scanning loop.

■ lexer/lexmach: Package lexmach adapts lexmachine as an alternative scanner
backend for the same token definitions.

■ errlog: Package errlog collects lexical errors reported by scanners.

■ runtime: Package runtime provides some unsophisticated supporting data types
for clients consuming tokens, i.e. symbol tables and scopes.

Command lexrepl is an interactive sandbox for token definitions.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexkit
