package lexer

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/lexkit"
	"github.com/npillmayer/lexkit/regex"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// collector is an ErrorHandler for tests.
type collector struct {
	mu    sync.Mutex
	lines []int
	msgs  []string
}

func (c *collector) ReportError(msg string, line int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, line)
	c.msgs = append(c.msgs, msg)
}

const (
	KW lexkit.TokType = iota + 1
	ID
	NUM
	OP
	WS
	COMMENT
)

func cLike(t *testing.T) *Lexer {
	lx, err := Compile([]Spec{
		{Kind: KW, Name: "KW", Pattern: "int|return"},
		{Kind: ID, Name: "ID", Pattern: "[a-z_][a-z0-9_]*"},
		{Kind: NUM, Name: "NUM", Pattern: "[0-9]+"},
		{Kind: OP, Name: "OP", Pattern: `[=;+\-]|==`},
		{Kind: WS, Name: "WS", Pattern: "[ \t\n]+", Discard: true},
		{Kind: COMMENT, Name: "COMMENT", Pattern: `/\*([^*]|\*+[^*/])*\*+/`, Discard: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	return lx
}

func kinds(tokens []lexkit.Token) []lexkit.TokType {
	k := make([]lexkit.TokType, len(tokens))
	for i, tok := range tokens {
		k[i] = tok.Kind
	}
	return k
}

func TestMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexkit.lexer")
	defer teardown()
	//
	def, err := NewTokenDefinition(ID, "[a-z]+")
	if err != nil {
		t.Fatal(err)
	}
	if n, ok := def.Match("a1", 0); !ok || n != 1 {
		t.Errorf("expected match of length 1, have %d/%v", n, ok)
	}
	if _, ok := def.Match("1a", 0); ok {
		t.Error("expected no match")
	}
	if n, ok := def.Match("12abc", 2); !ok || n != 3 {
		t.Errorf("expected match of length 3 at offset 2, have %d/%v", n, ok)
	}
	star, _ := NewTokenDefinition(ID, "a*")
	if n, ok := star.Match("b", 0); !ok || n != 0 {
		t.Errorf("expected zero-length match, have %d/%v", n, ok)
	}
}

func TestPriorityTieBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexkit.lexer")
	defer teardown()
	//
	lx, err := Compile([]Spec{
		{Kind: KW, Name: "KW", Pattern: "int"},
		{Kind: ID, Name: "ID", Pattern: "[a-z]+"},
	})
	if err != nil {
		t.Fatal(err)
	}
	tokens := lx.Scan("int", nil)
	if len(tokens) != 1 || tokens[0].Kind != KW {
		t.Errorf("expected single KW token, have %v", tokens)
	}
	tokens = lx.Scan("integer", nil)
	if len(tokens) != 1 || tokens[0].Kind != ID {
		t.Errorf("expected longest match to win over priority, have %v", tokens)
	}
	reversed, _ := Compile([]Spec{
		{Kind: ID, Name: "ID", Pattern: "[a-z]+"},
		{Kind: KW, Name: "KW", Pattern: "int"},
	})
	if tokens = reversed.Scan("int", nil); tokens[0].Kind != ID {
		t.Errorf("expected first registered definition to win, have %v", tokens)
	}
}

func TestScanTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexkit.lexer")
	defer teardown()
	//
	lx := cLike(t)
	eh := &collector{}
	tokens := lx.Scan("int x = 42;\nreturn x+1;", eh)
	expected := []lexkit.TokType{KW, ID, OP, NUM, OP, KW, ID, OP, NUM, OP}
	if fmt.Sprint(kinds(tokens)) != fmt.Sprint(expected) {
		t.Errorf("expected kinds %v, have %v", expected, kinds(tokens))
	}
	if len(eh.lines) != 0 {
		t.Errorf("expected no errors, have %v", eh.msgs)
	}
	if tokens[3].Lexeme != "42" || tokens[3].Span != (lexkit.Span{8, 10}) {
		t.Errorf("unexpected token %v %v", tokens[3], tokens[3].Span)
	}
	if tokens[4].Line != 1 || tokens[5].Line != 2 {
		t.Errorf("expected line change after newline, have %d/%d", tokens[4].Line, tokens[5].Line)
	}
	if tokens := lx.Scan("a==b", eh); len(tokens) != 3 || tokens[1].Lexeme != "==" {
		t.Errorf("expected maximal munch for ==, have %v", tokens)
	}
}

func TestErrorRecovery(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexkit.lexer")
	defer teardown()
	//
	lx := cLike(t)
	eh := &collector{}
	tokens := lx.Scan("x @ y", eh)
	if len(tokens) != 2 || tokens[0].Lexeme != "x" || tokens[1].Lexeme != "y" {
		t.Errorf("expected tokens x and y, have %v", tokens)
	}
	if len(eh.lines) != 1 || eh.lines[0] != 1 {
		t.Errorf("expected one error at line 1, have %v", eh.lines)
	}
	eh = &collector{}
	tokens = lx.Scan("a\n\n€b", eh) // '€' is 3 bytes in UTF-8
	if len(eh.lines) != 1 || eh.lines[0] != 3 {
		t.Errorf("expected one error at line 3, have %v", eh.lines)
	}
	if len(tokens) != 2 || tokens[1].Lexeme != "b" || tokens[1].Line != 3 {
		t.Errorf("expected b after skipped rune, have %v", tokens)
	}
	if !strings.Contains(eh.msgs[0], "€") {
		t.Errorf("expected error message to quote the character, have %q", eh.msgs[0])
	}
}

func TestZeroLengthMatchIsNoProgress(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexkit.lexer")
	defer teardown()
	//
	lx, err := Compile([]Spec{
		{Kind: ID, Name: "A", Pattern: "a*"},
		{Kind: WS, Name: "WS", Pattern: " *", Discard: true},
	})
	if err != nil {
		t.Fatal(err)
	}
	eh := &collector{}
	tokens := lx.Scan("aa b a", eh)
	if len(tokens) != 2 || tokens[0].Lexeme != "aa" || tokens[1].Lexeme != "a" {
		t.Errorf("expected tokens aa and a, have %v", tokens)
	}
	if len(eh.lines) != 1 {
		t.Errorf("expected one error for b, have %v", eh.msgs)
	}
}

func TestLineTrackingInDiscardedComment(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexkit.lexer")
	defer teardown()
	//
	lx := cLike(t)
	tokens := lx.Scan("x /* one\ntwo\nthree */ y z", nil)
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, have %v", tokens)
	}
	if tokens[0].Line != 1 || tokens[1].Line != 3 || tokens[2].Line != 3 {
		t.Errorf("expected lines 1, 3, 3; have %d, %d, %d", tokens[0].Line, tokens[1].Line, tokens[2].Line)
	}
}

func TestScannerEOF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexkit.lexer")
	defer teardown()
	//
	var tz Tokenizer = cLike(t).Scanner("x \n", nil)
	if tok := tz.NextToken(); tok.Lexeme != "x" {
		t.Errorf("expected x, have %v", tok)
	}
	for i := 0; i < 2; i++ {
		tok := tz.NextToken()
		if !tok.IsEOF() || tok.Line != 2 || tok.Span != (lexkit.Span{3, 3}) {
			t.Errorf("expected EOF at line 2, have %v %v", tok, tok.Span)
		}
	}
	if toks := cLike(t).Scan("", nil); len(toks) != 0 {
		t.Errorf("expected no tokens for empty input, have %v", toks)
	}
}

func TestDefinitionError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexkit.lexer")
	defer teardown()
	//
	lx, err := Compile([]Spec{
		{Kind: ID, Name: "ID", Pattern: "[a-z]+"},
		{Kind: NUM, Name: "NUM", Pattern: "[0-9+"},
	})
	if err == nil || lx != nil {
		t.Fatal("expected compile to fail without a lexer")
	}
	var derr *DefinitionError
	if !errors.As(err, &derr) || derr.Name != "NUM" {
		t.Fatalf("expected definition error for NUM, have %v", err)
	}
	var serr *regex.SyntaxError
	if !errors.As(err, &serr) || serr.Pos != 0 {
		t.Errorf("expected wrapped syntax error at position 0, have %v", err)
	}
}

func TestStringer(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexkit.lexer")
	defer teardown()
	//
	lx := cLike(t)
	str := lx.Stringer()
	if str(KW) != "KW" || str(lexkit.EOF) != "EOF" || str(99) != "99" {
		t.Errorf("unexpected names %s %s %s", str(KW), str(lexkit.EOF), str(99))
	}
	if def := lx.Definition("COMMENT"); def == nil || !def.IsDiscard() {
		t.Error("expected COMMENT to be a discard definition")
	}
	if len(lx.Definitions()) != 6 {
		t.Errorf("expected 6 definitions, have %d", len(lx.Definitions()))
	}
}

func TestConcurrentScanning(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexkit.lexer")
	defer teardown()
	//
	lx := cLike(t)
	inputs := []string{"int a = 1;", "return b + 22;", "x @ y", "/* c\n */ z"}
	expected := make([][]lexkit.Token, len(inputs))
	for i, input := range inputs {
		expected[i] = lx.Scan(input, nil)
	}
	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			i := g % len(inputs)
			tokens := lx.Scan(inputs[i], &collector{})
			if fmt.Sprint(tokens) != fmt.Sprint(expected[i]) {
				errs <- fmt.Sprintf("goroutine %d: have %v", g, tokens)
			}
		}(g)
	}
	wg.Wait()
	close(errs)
	for e := range errs {
		t.Error(e)
	}
}

const defsFile = `
# a small language
KW      int|return
ID      [a-z]+
NUM     [0-9]+
NUM     0x[0-9a-f]+
~WS     [ \t\n]+
`

func TestReadSpecs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexkit.lexer")
	defer teardown()
	//
	specs, err := ReadSpecs(strings.NewReader(defsFile))
	if err != nil {
		t.Fatal(err)
	}
	if len(specs) != 5 {
		t.Fatalf("expected 5 specs, have %d", len(specs))
	}
	if specs[2].Kind != specs[3].Kind || specs[1].Kind != 2 || specs[4].Kind != 4 {
		t.Errorf("unexpected kinds %v", specs)
	}
	if !specs[4].Discard || specs[4].Pattern != `[ \t\n]+` {
		t.Errorf("unexpected WS spec %v", specs[4])
	}
	var buf bytes.Buffer
	if err = WriteSpecs(&buf, specs); err != nil {
		t.Fatal(err)
	}
	again, err := ReadSpecs(&buf)
	if err != nil {
		t.Fatal(err)
	}
	f1, _ := Fingerprint(specs)
	f2, _ := Fingerprint(again)
	if f1 != f2 {
		t.Errorf("expected written specs to read back identically")
	}
	if _, err = ReadSpecs(strings.NewReader("KW int\nBROKEN\n")); err == nil ||
		!strings.Contains(err.Error(), "line 2") {
		t.Errorf("expected error at line 2, have %v", err)
	}
}

func TestFingerprint(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexkit.lexer")
	defer teardown()
	//
	specs := []Spec{{Kind: ID, Name: "ID", Pattern: "[a-z]+"}}
	f1, err := Fingerprint(specs)
	if err != nil {
		t.Fatal(err)
	}
	f2, _ := Fingerprint([]Spec{{Kind: ID, Name: "ID", Pattern: "[a-z]+"}})
	f3, _ := Fingerprint([]Spec{{Kind: ID, Name: "ID", Pattern: "[a-z]*"}})
	if f1 != f2 {
		t.Error("expected equal specs to have equal fingerprints")
	}
	if f1 == f3 {
		t.Error("expected different specs to have different fingerprints")
	}
}

const ebnfDefs = `
ident  = letter { letter | digit } .
number = digit { digit } .
space  = ( " " | "\t" ) { " " | "\t" } .
letter = "a" … "z" .
digit  = "0" … "9" .
`

func TestEBNFSpecs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexkit.lexer")
	defer teardown()
	//
	specs, err := EBNFSpecs(ebnfDefs, "ident", "number", "~space")
	if err != nil {
		t.Fatal(err)
	}
	lx, err := Compile(specs)
	if err != nil {
		t.Fatal(err)
	}
	tokens := lx.Scan("abc 12\tx9", nil)
	if len(tokens) != 3 || tokens[0].Kind != 1 || tokens[1].Kind != 2 || tokens[2].Lexeme != "x9" {
		t.Errorf("unexpected tokens %v", tokens)
	}
	if _, err = EBNFSpecs(ebnfDefs, "nothing"); err == nil {
		t.Error("expected error for missing production")
	}
}
