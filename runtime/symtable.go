package runtime

import (
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/lexkit"
)

// Symbol table for names declared in a program. Symbol tables are attached to
// scopes. Scopes are organized in a tree.
//

// --- Symbols ---------------------------------------------------------------

// Symbol is the type to be stored into symbol tables. A symbol remembers the
// token it has been declared with.
type Symbol struct {
	Name  string
	Kind  lexkit.TokType
	Token lexkit.Token
	UData interface{} // user data
}

// NewSymbol creates a new symbol for a token. The name of the symbol is the
// token's lexeme.
func NewSymbol(tok lexkit.Token) *Symbol {
	return &Symbol{
		Name:  tok.Lexeme,
		Kind:  tok.Kind,
		Token: tok,
	}
}

// String is a debug Stringer for symbols.
func (s *Symbol) String() string {
	return fmt.Sprintf("<sym '%s':%d @%d>", s.Name, s.Kind, s.Token.Line)
}

// === Symbol Tables =========================================================

// SymbolTable is a symbol table to store symbols (map-like semantics).
// Iteration follows the order of first definition.
type SymbolTable struct {
	table *linkedhashmap.Map
}

// NewSymbolTable creates an empty symbol table.
//
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		table: linkedhashmap.New(),
	}
}

// Resolve checks for a symbol in the symbol table.
// Returns a symbol or nil.
//
func (t *SymbolTable) Resolve(name string) *Symbol {
	if sym, ok := t.table.Get(name); ok {
		return sym.(*Symbol)
	}
	return nil
}

// ResolveOrDefine finds a symbol for a token's lexeme in the table, inserts a
// new one if not found. Returns the symbol and a flag, signalling wether the
// symbol has already been present.
//
func (t *SymbolTable) ResolveOrDefine(tok lexkit.Token) (*Symbol, bool) {
	if len(tok.Lexeme) == 0 {
		return nil, false
	}
	if sym := t.Resolve(tok.Lexeme); sym != nil {
		return sym, true
	}
	sym, _ := t.Define(tok)
	return sym, false
}

// Define creates a new symbol for a token to store into the symbol table.
// The token's lexeme may not be empty. Overwrites an existing symbol with
// this name, if any, without changing its position in the table.
// Returns the new symbol and the previously stored symbol (or nil).
//
func (t *SymbolTable) Define(tok lexkit.Token) (*Symbol, *Symbol) {
	if len(tok.Lexeme) == 0 {
		return nil, nil
	}
	sym := NewSymbol(tok)
	old := t.Insert(sym)
	return sym, old
}

// Insert inserts a pre-created symbol.
func (t *SymbolTable) Insert(sym *Symbol) *Symbol {
	old := t.Resolve(sym.Name)
	t.table.Put(sym.Name, sym)
	return old
}

// Size counts the symbols in a symbol table.
func (t *SymbolTable) Size() int {
	return t.table.Size()
}

// Names returns the names of all symbols in order of first definition.
func (t *SymbolTable) Names() []string {
	keys := t.table.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.(string)
	}
	return names
}

// Each iterates over each symbol in the table in order of first definition,
// executing a mapper function.
func (t *SymbolTable) Each(mapper func(string, *Symbol)) {
	t.table.Each(func(k, v interface{}) {
		mapper(k.(string), v.(*Symbol))
	})
}

// === Scopes ================================================================

// Scope is a named scope, which may contain symbol definitions. Scopes link back to a
// parent scope, forming a tree.
type Scope struct {
	Name   string
	Parent *Scope
	symtab *SymbolTable
}

// NewScope creates a new scope.
func NewScope(nm string, parent *Scope) *Scope {
	sc := &Scope{
		Name:   nm,
		Parent: parent,
		symtab: NewSymbolTable(),
	}
	return sc
}

// Prettyfied Stringer.
func (s *Scope) String() string {
	return fmt.Sprintf("<scope %s>", s.Name)
}

// Symbols returns the symbol table of a scope.
func (s *Scope) Symbols() *SymbolTable {
	return s.symtab
}

// Define defines a symbol in the scope. Returns the new symbol and the previously
// stored symbol under this name, if any.
//
func (s *Scope) Define(tok lexkit.Token) (*Symbol, *Symbol) {
	return s.symtab.Define(tok)
}

// Resolve finds a symbol. Returns the symbol (or nil) and a scope. The scope is
// the scope (of a scope-tree-path) the symbol was found in.
//
func (s *Scope) Resolve(name string) (*Symbol, *Scope) {
	for ; s != nil; s = s.Parent {
		if sym := s.symtab.Resolve(name); sym != nil {
			return sym, s
		}
	}
	return nil, nil
}

// ---------------------------------------------------------------------------

// ScopeStack can be treated as a stack during static analysis, thus
// building a tree from scopes which are pushed an popped to/from the stack.
//
type ScopeStack struct {
	ScopeBase *Scope
	ScopeTOS  *Scope
}

// NewScopeStack creates a scope stack with a global scope pushed.
func NewScopeStack() *ScopeStack {
	scst := &ScopeStack{}
	scst.PushNewScope("globals")
	return scst
}

// Current gets the current scope of a stack (TOS).
func (scst *ScopeStack) Current() *Scope {
	if scst.ScopeTOS == nil {
		panic("attempt to access scope from empty stack")
	}
	return scst.ScopeTOS
}

// Globals gets the outermost scope, containing global symbols.
func (scst *ScopeStack) Globals() *Scope {
	if scst.ScopeBase == nil {
		panic("attempt to access global scope from empty stack")
	}
	return scst.ScopeBase
}

// PushNewScope pushes a scope onto the stack of scopes. A scope is constructed, including a symbol table
// for declarations.
func (scst *ScopeStack) PushNewScope(nm string) *Scope {
	scp := scst.ScopeTOS
	newsc := NewScope(nm, scp)
	if scp == nil { // the new scope is the global scope
		scst.ScopeBase = newsc // make new scope anchor
	}
	scst.ScopeTOS = newsc // new scope now TOS
	tracer().P("scope", newsc.Name).Debugf("pushing new scope")
	return newsc
}

// PopScope pops the top-most (recent) scope.
func (scst *ScopeStack) PopScope() *Scope {
	if scst.ScopeTOS == nil {
		panic("attempt to pop scope from empty stack")
	}
	sc := scst.ScopeTOS
	tracer().Debugf("popping scope [%s]", sc.Name)
	scst.ScopeTOS = scst.ScopeTOS.Parent
	if scst.ScopeTOS == nil {
		scst.ScopeBase = nil
	}
	return sc
}

// Declare enters every token of a given kind into the current scope, in order
// of the token sequence. The first declaration of a name wins; tokens which
// redeclare a name already present in the current scope are returned.
func (scst *ScopeStack) Declare(tokens []lexkit.Token, kind lexkit.TokType) []lexkit.Token {
	scope := scst.Current()
	var dups []lexkit.Token
	for _, tok := range tokens {
		if tok.Kind != kind {
			continue
		}
		if _, found := scope.symtab.ResolveOrDefine(tok); found {
			dups = append(dups, tok)
		}
	}
	tracer().Debugf("scope %s holds %d symbols", scope.Name, scope.symtab.Size())
	return dups
}
