package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/lexkit"
)

// Scanner holds the state of scanning one input with a Lexer. Create one with
// Lexer.Scanner. A Scanner must not be used by more than one goroutine.
type Scanner struct {
	lexer *Lexer
	input string
	pos   int // byte offset of next unread input
	line  int // line number of next unread input, starting at 1
	eh    ErrorHandler
}

var _ Tokenizer = (*Scanner)(nil)

// traceErrors is the default error handler for scanners.
type traceErrors struct{}

func (traceErrors) ReportError(msg string, line int) {
	tracer().Errorf("scanner error at line %d: %s", line, msg)
}

// SetErrorHandler sets an error handler for the scanner. A nil handler
// selects tracing of errors.
func (s *Scanner) SetErrorHandler(eh ErrorHandler) {
	if eh == nil {
		s.eh = traceErrors{}
		return
	}
	s.eh = eh
}

// Line returns the line number of the next unread input.
func (s *Scanner) Line() int {
	return s.line
}

// Offset returns the byte offset of the next unread input.
func (s *Scanner) Offset() int {
	return s.pos
}

// NextToken is part of the Tokenizer interface.
//
// At the current position every definition is matched and the longest match
// is selected, preferring earlier definitions on ties. A zero-length match
// does not consume input and is treated as no match. If no definition
// matches, an error is reported and the offending character is skipped.
func (s *Scanner) NextToken() lexkit.Token {
	for s.pos < len(s.input) {
		var best *TokenDefinition
		length := 0
		for _, def := range s.lexer.defs {
			if n, ok := def.Match(s.input, s.pos); ok && n > length {
				best, length = def, n
			}
		}
		if best == nil {
			_, size := utf8.DecodeRuneInString(s.input[s.pos:])
			s.eh.ReportError(fmt.Sprintf("unexpected character %q at offset %d",
				s.input[s.pos:s.pos+size], s.pos), s.line)
			s.advance(size)
			continue
		}
		start, line := s.pos, s.line
		lexeme := s.advance(length)
		if best.discard {
			tracer().Debugf("discard %s %q", best.name, lexeme)
			continue
		}
		tok := lexkit.MakeToken(best.kind, lexeme, line, lexkit.Span{uint64(start), uint64(s.pos)})
		tracer().Debugf("token %s %q at line %d", best.name, lexeme, line)
		return tok
	}
	tracer().Debugf("scanner reached end of input")
	end := uint64(len(s.input))
	return lexkit.MakeToken(lexkit.EOF, "", s.line, lexkit.Span{end, end})
}

// advance consumes n bytes of input and returns them, counting newlines.
func (s *Scanner) advance(n int) string {
	text := s.input[s.pos : s.pos+n]
	s.pos += n
	s.line += strings.Count(text, "\n")
	return text
}
