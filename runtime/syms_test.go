package runtime

import (
	"strings"
	"testing"

	"github.com/npillmayer/lexkit"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

const ID lexkit.TokType = 1

func ident(name string, line int) lexkit.Token {
	return lexkit.MakeToken(ID, name, line, lexkit.Span{})
}

func TestNewSymTab(t *testing.T) {
	symtab := NewSymbolTable()
	if symtab == nil || symtab.Size() != 0 {
		t.Error("no empty symbol table created")
	}
}

func TestNewSymbol(t *testing.T) {
	symtab := NewSymbolTable()
	sym, _ := symtab.Define(ident("new-sym", 1))
	if sym == nil {
		t.Fatal("no symbol created for table")
	}
	sym.UData = 5
	if sym.UData != 5 || sym.Kind != ID {
		t.Errorf("UData does not work")
	}
}

func TestTwoSymbolsDistinct(t *testing.T) {
	symtab := NewSymbolTable()
	sym1, _ := symtab.Define(ident("new-sym1", 1))
	sym2, _ := symtab.Define(ident("new-sym2", 1))
	if sym1 == sym2 {
		t.Error("2 symbols with equal name")
	}
}

func TestResolve(t *testing.T) {
	symtab := NewSymbolTable()
	sym, _ := symtab.Define(ident("new-sym", 1))
	if s := symtab.Resolve(sym.Name); s == nil {
		t.Error("cannot find stored symbol in table")
	}
	if _, found := symtab.ResolveOrDefine(ident("new-sym", 2)); !found {
		t.Error("cannot find stored symbol in table")
	}
	if sym, _ := symtab.ResolveOrDefine(lexkit.Token{}); sym != nil {
		t.Error("expected empty lexeme to be refused")
	}
}

func TestDefineReplaces(t *testing.T) {
	symtab := NewSymbolTable()
	sym, _ := symtab.Define(ident("new-sym", 1))
	if _, old := symtab.Define(ident("new-sym", 2)); old != sym {
		t.Error("symbol should have been replaced")
	}
}

func TestSymbolOrder(t *testing.T) {
	symtab := NewSymbolTable()
	for i, name := range []string{"z", "a", "m", "a", "b"} {
		symtab.Define(ident(name, i+1))
	}
	if names := strings.Join(symtab.Names(), ","); names != "z,a,m,b" {
		t.Errorf("expected order of first definition, have %s", names)
	}
	var lines []int
	symtab.Each(func(name string, sym *Symbol) {
		lines = append(lines, sym.Token.Line)
	})
	if len(lines) != 4 || lines[1] != 4 {
		t.Errorf("expected redefinition to update symbol in place, have lines %v", lines)
	}
}

func TestScopeUpsearch(t *testing.T) {
	scopep := NewScope("parent", nil)
	scope := NewScope("current", scopep)
	scopep.Define(ident("new-sym", 1))
	if sym, sc := scope.Resolve("new-sym"); sym == nil || sc != scopep {
		t.Fail()
	}
	if sym, sc := scope.Resolve("other"); sym != nil || sc != nil {
		t.Error("expected unknown symbol to be unresolved")
	}
}

func TestScopeStackDeclare(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lexkit.runtime")
	defer teardown()
	//
	scst := NewScopeStack()
	tokens := []lexkit.Token{
		ident("x", 1),
		lexkit.MakeToken(2, "=", 1, lexkit.Span{}),
		ident("y", 1),
		ident("x", 2),
	}
	dups := scst.Declare(tokens, ID)
	if len(dups) != 1 || dups[0].Line != 2 {
		t.Errorf("expected redeclaration of x at line 2, have %v", dups)
	}
	if scst.Globals().Symbols().Size() != 2 {
		t.Errorf("expected 2 global symbols, have %d", scst.Globals().Symbols().Size())
	}
	local := scst.PushNewScope("local")
	if dups = scst.Declare(tokens[3:], ID); len(dups) != 0 {
		t.Error("expected x to be new in local scope")
	}
	if sym, sc := local.Resolve("y"); sym == nil || sc != scst.Globals() {
		t.Error("expected y to resolve in global scope")
	}
	if scst.PopScope() != local || scst.Current() != scst.Globals() {
		t.Error("expected globals after pop")
	}
	scst.PopScope()
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on pop from empty stack")
		}
	}()
	scst.PopScope()
}
