package lexmach

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/lexkit"
	"github.com/npillmayer/lexkit/lexer"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'lexkit.lexer'.
func tracer() tracing.Trace {
	return tracing.Select("lexkit.lexer")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer *lexmachine.Lexer
	names map[lexkit.TokType]string
}

// NewLMAdapter creates a new lexmachine adapter for a list of token specs.
// Patterns are checked with package regex first; a malformed pattern results
// in a *lexer.DefinitionError, as with lexer.Compile.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(specs []lexer.Spec) (*LMAdapter, error) {
	if _, err := lexer.Compile(specs); err != nil {
		return nil, err
	}
	adapter := &LMAdapter{
		Lexer: lexmachine.NewLexer(),
		names: make(map[lexkit.TokType]string),
	}
	for _, spec := range specs {
		if spec.Discard {
			adapter.Lexer.Add([]byte(spec.Pattern), Skip)
			continue
		}
		if _, ok := adapter.names[spec.Kind]; !ok {
			adapter.names[spec.Kind] = spec.Name
		}
		adapter.Lexer.Add([]byte(spec.Pattern), MakeToken(spec.Name, int(spec.Kind)))
	}
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Stringer returns a function to print token kinds by the names of the specs.
func (lm *LMAdapter) Stringer() lexkit.TokTypeStringer {
	return func(t lexkit.TokType) string {
		if t == lexkit.EOF {
			return "EOF"
		}
		if name, ok := lm.names[t]; ok {
			return name
		}
		return strconv.Itoa(int(t))
	}
}

// Scanner creates a scanner for a given input. The scanner will implement the
// lexer.Tokenizer interface. If eh is nil, errors will be traced only.
func (lm *LMAdapter) Scanner(input string, eh lexer.ErrorHandler) (*LMScanner, error) {
	s, err := lm.Lexer.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	lms := &LMScanner{scanner: s, input: input, line: 1}
	lms.SetErrorHandler(eh)
	return lms, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// lexer.Tokenizer interface.
type LMScanner struct {
	scanner *lexmachine.Scanner
	input   string
	pos     int // input position up to which lines have been counted
	line    int // line number at pos
	eh      lexer.ErrorHandler
}

var _ lexer.Tokenizer = (*LMScanner)(nil)

type traceErrors struct{}

// Default error reporting for lexmachine-based scanners
func (traceErrors) ReportError(msg string, line int) {
	tracer().Errorf("scanner error at line %d: %s", line, msg)
}

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(eh lexer.ErrorHandler) {
	if eh == nil {
		lms.eh = traceErrors{}
		return
	}
	lms.eh = eh
}

// lineAt returns the line number of input position tc. Positions must be
// requested in ascending order.
func (lms *LMScanner) lineAt(tc int) int {
	if tc > lms.pos {
		lms.line += strings.Count(lms.input[lms.pos:tc], "\n")
		lms.pos = tc
	}
	return lms.line
}

// NextToken is part of the Tokenizer interface.
//
// Unconsumed input is reported to the error handler, and scanning resumes
// one character after the start of the unconsumed input.
func (lms *LMScanner) NextToken() lexkit.Token {
	tok, err, eos := lms.scanner.Next()
	for err != nil {
		ui, is := err.(*machines.UnconsumedInput)
		if !is {
			lms.eh.ReportError(err.Error(), lms.line)
			eos = true
			break
		}
		_, size := utf8.DecodeRuneInString(lms.input[ui.StartTC:])
		lms.eh.ReportError(fmt.Sprintf("unexpected character %q at offset %d",
			lms.input[ui.StartTC:ui.StartTC+size], ui.StartTC), lms.lineAt(ui.StartTC))
		lms.scanner.TC = ui.StartTC + size
		tok, err, eos = lms.scanner.Next()
	}
	if eos {
		end := len(lms.input)
		return lexkit.MakeToken(lexkit.EOF, "", lms.lineAt(end), lexkit.Span{uint64(end), uint64(end)})
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	token := tok.(*lexmachine.Token)
	from := token.TC
	to := from + len(token.Lexeme)
	return lexkit.MakeToken(
		lexkit.TokType(token.Type),
		string(token.Lexeme),
		lms.lineAt(from),
		lexkit.Span{uint64(from), uint64(to)},
	)
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}
