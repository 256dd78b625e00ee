package lexer

import (
	"fmt"
	"strings"

	"github.com/npillmayer/lexkit"
	"github.com/npillmayer/lexkit/regex"
	"golang.org/x/exp/ebnf"
)

// EBNFSpecs creates token specs from the lexical productions of an EBNF
// grammar. Every name selects a production; a name prefixed with '~' marks a
// discard spec. Kinds are numbered from 1 in order of names.
//
// Productions must not be recursive, as they are converted to patterns
// (see regex.FromEBNF).
func EBNFSpecs(src string, names ...string) ([]Spec, error) {
	g, err := ebnf.Parse("definitions", strings.NewReader(src))
	if err != nil {
		return nil, err
	}
	specs := make([]Spec, 0, len(names))
	for i, name := range names {
		spec := Spec{Kind: lexkit.TokType(i + 1)}
		if strings.HasPrefix(name, "~") {
			spec.Discard = true
			name = name[1:]
		}
		spec.Name = name
		if spec.Pattern, err = regex.FromEBNF(g, name); err != nil {
			return nil, fmt.Errorf("token definition %s: %w", name, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
