package regex

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/exp/ebnf"
)

// Grammar is the syntax of patterns in EBNF, as understood by package
// golang.org/x/exp/ebnf. Start symbol is "Expression".
const Grammar = `
Expression = Term { "|" Term } .
Term       = Factor { Factor } .
Factor     = Base { "*" | "+" | "?" } .
Base       = literal | "." | "(" Expression ")" | Class | escape .
Class      = "[" [ "^" ] ClassItem { ClassItem } "]" .
ClassItem  = classchar [ "-" classchar ] .
classchar  = char | escape .
escape     = "\\" char .
literal    = char .
char       = "\x00" … "\x7f" .
`

// LoadGrammar parses and verifies Grammar.
func LoadGrammar() (ebnf.Grammar, error) {
	g, err := ebnf.Parse("regex", strings.NewReader(Grammar))
	if err != nil {
		return nil, err
	}
	if err = ebnf.Verify(g, "Expression"); err != nil {
		return nil, err
	}
	return g, nil
}

// FromEBNF converts production `name` of an EBNF grammar into a pattern.
// Tokens are matched literally, ranges become character classes, and
// groups, options and repetitions become (…), (…)? and (…)*. References to
// other productions are expanded in place; recursive productions cannot be
// expressed as patterns and result in an error.
func FromEBNF(g ebnf.Grammar, name string) (string, error) {
	conv := ebnfConverter{
		g:      g,
		done:   make(map[string]string),
		active: make(map[string]bool),
	}
	return conv.production(name)
}

type ebnfConverter struct {
	g      ebnf.Grammar
	done   map[string]string // memoized patterns of productions
	active map[string]bool   // productions currently being expanded
}

func (conv *ebnfConverter) production(name string) (string, error) {
	if re, ok := conv.done[name]; ok {
		return re, nil
	}
	p, ok := conv.g[name]
	if !ok {
		return "", fmt.Errorf("ebnf: missing production %s", name)
	}
	if conv.active[name] {
		return "", fmt.Errorf("ebnf: production %s is recursive", name)
	}
	if p.Expr == nil {
		return "", fmt.Errorf("ebnf: production %s is empty", name)
	}
	conv.active[name] = true
	defer delete(conv.active, name)
	var buf bytes.Buffer
	if err := conv.expr(&buf, p.Expr); err != nil {
		return "", err
	}
	re := buf.String()
	tracer().Debugf("ebnf %s = %s", name, re)
	conv.done[name] = re
	return re, nil
}

func (conv *ebnfConverter) expr(buf *bytes.Buffer, x ebnf.Expression) error {
	switch x := x.(type) {
	case ebnf.Alternative:
		buf.WriteByte('(')
		for i, item := range x {
			if i > 0 {
				buf.WriteByte('|')
			}
			if err := conv.expr(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(')')
	case ebnf.Sequence:
		for _, item := range x {
			if err := conv.expr(buf, item); err != nil {
				return err
			}
		}
	case *ebnf.Group:
		return conv.wrap(buf, x.Body, "")
	case *ebnf.Option:
		return conv.wrap(buf, x.Body, "?")
	case *ebnf.Repetition:
		return conv.wrap(buf, x.Body, "*")
	case *ebnf.Name:
		re, err := conv.production(x.String)
		if err != nil {
			return err
		}
		buf.WriteString("(" + re + ")")
	case *ebnf.Token:
		if x.String == "" {
			return fmt.Errorf("ebnf: empty token at %v", x.Pos())
		}
		buf.WriteString(Quote(x.String))
	case *ebnf.Range:
		if len(x.Begin.String) != 1 || len(x.End.String) != 1 {
			return fmt.Errorf("ebnf: range %q … %q is not a byte range", x.Begin.String, x.End.String)
		}
		buf.WriteString("[" + quoteByte(x.Begin.String[0], classMetachars) + "-" +
			quoteByte(x.End.String[0], classMetachars) + "]")
	case nil:
		return fmt.Errorf("ebnf: empty expression")
	default:
		return fmt.Errorf("ebnf: unexpected expression type %T", x)
	}
	return nil
}

const classMetachars = `]\^-`

func (conv *ebnfConverter) wrap(buf *bytes.Buffer, body ebnf.Expression, op string) error {
	buf.WriteByte('(')
	if err := conv.expr(buf, body); err != nil {
		return err
	}
	buf.WriteByte(')')
	buf.WriteString(op)
	return nil
}
