package compiler

import "fmt"

// ---------------------------------------------------------------------------
// Symbol table: reserved words plus a stack of scopes
// ---------------------------------------------------------------------------

// SymbolKind is what a name denotes within one scope.
type SymbolKind int

const (
	SymbolNone SymbolKind = iota
	SymbolVariable
	SymbolMethod
	SymbolParameter
	SymbolReserved
)

var symbolKindNames = map[SymbolKind]string{
	SymbolNone:      "none",
	SymbolVariable:  "variable",
	SymbolMethod:    "method",
	SymbolParameter: "parameter",
	SymbolReserved:  "reserved word",
}

func (k SymbolKind) String() string {
	if name, ok := symbolKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SymbolKind(%d)", int(k))
}

// SymbolTable holds a global layer and a stack of scopes. Lookup consults
// the global layer and then only the innermost scope; enclosing scopes are
// never searched.
type SymbolTable struct {
	globals map[string]SymbolKind
	scopes  []map[string]SymbolKind
}

// NewSymbolTable creates a table with the reserved words in its global
// layer and one base scope.
func NewSymbolTable() *SymbolTable {
	st := &SymbolTable{
		globals: make(map[string]SymbolKind, len(ReservedWords)),
		scopes:  []map[string]SymbolKind{{}},
	}
	for _, w := range ReservedWords {
		st.globals[w] = SymbolReserved
	}
	return st
}

// PushScope enters a new innermost scope.
func (st *SymbolTable) PushScope() {
	st.scopes = append(st.scopes, make(map[string]SymbolKind))
}

// PopScope leaves the innermost scope. The base scope is never popped.
func (st *SymbolTable) PopScope() {
	if len(st.scopes) == 1 {
		panic("symtab: pop of base scope")
	}
	st.scopes = st.scopes[:len(st.scopes)-1]
}

// Depth returns the number of scopes pushed above the base scope.
func (st *SymbolTable) Depth() int {
	return len(st.scopes) - 1
}

// Define binds name in the innermost scope, replacing any previous binding
// there.
func (st *SymbolTable) Define(name string, kind SymbolKind) {
	st.scopes[len(st.scopes)-1][name] = kind
}

// Lookup returns the kind of name in the global layer or the innermost
// scope, or SymbolNone.
func (st *SymbolTable) Lookup(name string) SymbolKind {
	if kind, ok := st.globals[name]; ok {
		return kind
	}
	if kind, ok := st.scopes[len(st.scopes)-1][name]; ok {
		return kind
	}
	return SymbolNone
}
