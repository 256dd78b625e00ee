package lexer

import (
	"fmt"
	"strconv"

	"github.com/npillmayer/lexkit"
)

// ErrorHandler receives lexical errors found during scanning. The lexer only
// ever reports errors; it never reads or clears the handler's state.
type ErrorHandler interface {
	ReportError(msg string, line int)
}

// Tokenizer is a scanner interface. Implementations return a token of kind
// lexkit.EOF once the input is exhausted.
type Tokenizer interface {
	NextToken() lexkit.Token
	SetErrorHandler(ErrorHandler)
}

// Spec is the source form of a token definition. The position of a Spec
// within a list determines its priority.
type Spec struct {
	Kind    lexkit.TokType
	Name    string
	Pattern string
	Discard bool
}

// DefinitionError is returned by Compile for a spec with a malformed pattern.
// Err will be a *regex.SyntaxError.
type DefinitionError struct {
	Name string
	Err  error
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("token definition %s: %v", e.Name, e.Err)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// Lexer holds an ordered list of token definitions. Earlier definitions take
// precedence over later ones for matches of equal length.
type Lexer struct {
	defs  []*TokenDefinition
	names map[lexkit.TokType]string
}

// Compile creates a Lexer from a list of specs. If any pattern fails to
// compile, a *DefinitionError is returned and no Lexer is created.
func Compile(specs []Spec) (*Lexer, error) {
	defs := make([]*TokenDefinition, 0, len(specs))
	for _, spec := range specs {
		name := spec.Name
		if name == "" {
			name = strconv.Itoa(int(spec.Kind))
		}
		opts := []Option{Name(name)}
		if spec.Discard {
			opts = append(opts, Discard())
		}
		def, err := NewTokenDefinition(spec.Kind, spec.Pattern, opts...)
		if err != nil {
			tracer().Errorf("cannot compile token definition %s: %v", name, err)
			return nil, &DefinitionError{Name: name, Err: err}
		}
		defs = append(defs, def)
	}
	lx := New(defs...)
	tracer().Infof("compiled lexer with %d token definitions", len(defs))
	return lx, nil
}

// New creates a Lexer from already compiled token definitions.
func New(defs ...*TokenDefinition) *Lexer {
	lx := &Lexer{
		defs:  make([]*TokenDefinition, len(defs)),
		names: make(map[lexkit.TokType]string, len(defs)),
	}
	copy(lx.defs, defs)
	for _, def := range defs {
		if _, ok := lx.names[def.kind]; !ok {
			lx.names[def.kind] = def.name
		}
	}
	return lx
}

// Definitions returns the token definitions in order of priority.
func (lx *Lexer) Definitions() []*TokenDefinition {
	defs := make([]*TokenDefinition, len(lx.defs))
	copy(defs, lx.defs)
	return defs
}

// Definition returns the first definition with a given name, or nil.
func (lx *Lexer) Definition(name string) *TokenDefinition {
	for _, def := range lx.defs {
		if def.name == name {
			return def
		}
	}
	return nil
}

// Stringer returns a function to print token kinds by the names given in the
// definitions.
func (lx *Lexer) Stringer() lexkit.TokTypeStringer {
	return func(t lexkit.TokType) string {
		if t == lexkit.EOF {
			return "EOF"
		}
		if name, ok := lx.names[t]; ok {
			return name
		}
		return strconv.Itoa(int(t))
	}
}

// Scanner creates a scanner for an input string. If eh is nil, errors will be
// traced only.
func (lx *Lexer) Scanner(input string, eh ErrorHandler) *Scanner {
	s := &Scanner{
		lexer: lx,
		input: input,
		line:  1,
	}
	s.SetErrorHandler(eh)
	return s
}

// Scan tokenizes an input string and returns all tokens found, excluding the
// final EOF token. Lexical errors are reported to eh and do not stop the scan.
func (lx *Lexer) Scan(input string, eh ErrorHandler) []lexkit.Token {
	s := lx.Scanner(input, eh)
	var tokens []lexkit.Token
	for {
		tok := s.NextToken()
		if tok.IsEOF() {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
