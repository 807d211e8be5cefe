package semantic

import "github.com/cognisivelabs/go-axiom/internal/types"

// Symbol represents a typed binding during analysis.
type Symbol struct {
	Name string
	Type types.Type
}

// SymbolTable manages bindings and lexical scopes during analysis. Each
// block pushes an enclosed table; name resolution walks outward.
type SymbolTable struct {
	symbols map[string]*Symbol
	outer   *SymbolTable
}

// NewSymbolTable creates a new global symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Symbol)}
}

// NewEnclosedSymbolTable creates a symbol table enclosed by an outer scope.
func NewEnclosedSymbolTable(outer *SymbolTable) *SymbolTable {
	st := NewSymbolTable()
	st.outer = outer
	return st
}

// Define binds a name in the current scope.
func (st *SymbolTable) Define(name string, typ types.Type) {
	st.symbols[name] = &Symbol{Name: name, Type: typ}
}

// Resolve looks a name up through the scope chain.
func (st *SymbolTable) Resolve(name string) (*Symbol, bool) {
	if sym, ok := st.symbols[name]; ok {
		return sym, true
	}
	if st.outer != nil {
		return st.outer.Resolve(name)
	}
	return nil, false
}

// Outer returns the enclosing scope, nil at global scope.
func (st *SymbolTable) Outer() *SymbolTable {
	return st.outer
}
