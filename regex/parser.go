package regex

import (
	"fmt"

	"github.com/npillmayer/lexkit/automata"
)

// SyntaxError is returned for malformed patterns. Pos is the byte offset within
// the pattern where the problem has been detected.
type SyntaxError struct {
	Pattern string
	Pos     int
	Msg     string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("regex syntax error at position %d of %q: %s", e.Pos, e.Pattern, e.Msg)
}

// parser holds the state of parsing one pattern. The arena is the identity
// allocator for all NFA states created for the pattern.
type parser struct {
	pattern string
	pos     int
	opens   []int // positions of currently open '('
	arena   *automata.Arena
}

// Parse parses a pattern and returns an NFA fragment recognizing it. All
// states of the fragment are allocated from arena a. The fragment's end state
// is not marked final, to allow for further composition.
func Parse(pattern string, a *automata.Arena) (automata.Fragment, error) {
	if a == nil {
		a = automata.NewArena()
	}
	p := &parser{pattern: pattern, arena: a}
	if len(pattern) == 0 {
		return automata.Fragment{}, p.errorf(0, "empty pattern")
	}
	f, err := p.expression()
	if err != nil {
		tracer().Debugf("%v", err)
		return automata.Fragment{}, err
	}
	if !p.atEnd() { // only a surplus ')' stops an expression before the end
		return automata.Fragment{}, p.errorf(p.pos, "unbalanced parenthesis: unexpected ')'")
	}
	tracer().Debugf("parsed %q into %s", pattern, f)
	return f, nil
}

func (p *parser) errorf(pos int, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{
		Pattern: p.pattern,
		Pos:     pos,
		Msg:     fmt.Sprintf(format, args...),
	}
}

func (p *parser) atEnd() bool {
	return p.pos >= len(p.pattern)
}

func (p *parser) peek() byte {
	return p.pattern[p.pos]
}

// expression : term ('|' term)*
func (p *parser) expression() (automata.Fragment, error) {
	f, err := p.term()
	if err != nil {
		return f, err
	}
	for !p.atEnd() && p.peek() == '|' {
		p.pos++
		g, err := p.term()
		if err != nil {
			return g, err
		}
		f = p.arena.Union(f, g)
	}
	return f, nil
}

// term : factor+
func (p *parser) term() (automata.Fragment, error) {
	var f automata.Fragment
	for !p.atEnd() && p.peek() != '|' && p.peek() != ')' {
		g, err := p.factor()
		if err != nil {
			return g, err
		}
		if f.IsNull() {
			f = g
		} else {
			f = p.arena.Concatenate(f, g)
		}
	}
	if f.IsNull() {
		switch {
		case p.atEnd() && len(p.opens) > 0:
			return f, p.errorf(p.opens[len(p.opens)-1], "unbalanced parenthesis: missing ')'")
		case !p.atEnd() && p.peek() == ')' && len(p.opens) == 0:
			return f, p.errorf(p.pos, "unbalanced parenthesis: unexpected ')'")
		case !p.atEnd() && p.peek() == ')':
			return f, p.errorf(p.pos, "empty group or alternative")
		}
		return f, p.errorf(p.pos, "empty alternative")
	}
	return f, nil
}

// factor : base ('*' | '+' | '?')*
func (p *parser) factor() (automata.Fragment, error) {
	f, err := p.base()
	if err != nil {
		return f, err
	}
	for !p.atEnd() {
		switch p.peek() {
		case '*':
			f = p.arena.Kleene(f)
		case '+':
			f = p.arena.Plus(f)
		case '?':
			f = p.arena.Optional(f)
		default:
			return f, nil
		}
		p.pos++
	}
	return f, nil
}

// base : literal | '.' | '(' expression ')' | char-class | escape
func (p *parser) base() (automata.Fragment, error) {
	start := p.pos
	c := p.peek()
	switch c {
	case '(':
		p.pos++
		p.opens = append(p.opens, start)
		f, err := p.expression()
		if err != nil {
			return f, err
		}
		if p.atEnd() {
			return f, p.errorf(start, "unbalanced parenthesis: missing ')'")
		}
		p.pos++ // ')'
		p.opens = p.opens[:len(p.opens)-1]
		return f, nil
	case '*', '+', '?':
		return automata.Fragment{}, p.errorf(start, "dangling operator %q", c)
	case '[':
		return p.charClass()
	case '.':
		p.pos++
		return p.arena.Class(automata.AnyButNewline()), nil
	case '\\':
		b, err := p.escape()
		if err != nil {
			return automata.Fragment{}, err
		}
		return p.arena.Literal(b), nil
	}
	p.pos++
	return p.arena.Literal(c), nil
}

// escape reads a backslash and the escaped character.
func (p *parser) escape() (byte, error) {
	start := p.pos
	p.pos++ // '\'
	if p.atEnd() {
		return 0, p.errorf(start, "unterminated escape sequence")
	}
	c := p.peek()
	p.pos++
	return unescape(c), nil
}

func unescape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case 'f':
		return '\f'
	case 'v':
		return '\v'
	case '0':
		return 0
	}
	return c
}

// char-class : '[' '^'? class-item+ ']'
// class-item : class-char ('-' class-char)?
func (p *parser) charClass() (automata.Fragment, error) {
	start := p.pos
	p.pos++ // '['
	negated := false
	if !p.atEnd() && p.peek() == '^' {
		negated = true
		p.pos++
	}
	class := automata.NewCharClass(negated)
	items := 0
	for {
		if p.atEnd() {
			return automata.Fragment{}, p.errorf(start, "unterminated character class")
		}
		if p.peek() == ']' {
			p.pos++
			break
		}
		at := p.pos
		lo, err := p.classChar()
		if err != nil {
			return automata.Fragment{}, err
		}
		hi := lo
		if p.pos+1 < len(p.pattern) && p.peek() == '-' && p.pattern[p.pos+1] != ']' {
			p.pos++ // '-'
			if hi, err = p.classChar(); err != nil {
				return automata.Fragment{}, err
			}
			if hi < lo {
				return automata.Fragment{}, p.errorf(at, "reversed range in character class")
			}
		}
		class.AddRange(lo, hi)
		items++
	}
	if items == 0 {
		return automata.Fragment{}, p.errorf(start, "empty character class")
	}
	tracer().Debugf("character class %s", class)
	return p.arena.Class(class), nil
}

func (p *parser) classChar() (byte, error) {
	if p.peek() == '\\' {
		return p.escape()
	}
	c := p.peek()
	p.pos++
	return c, nil
}
