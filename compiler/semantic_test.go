package compiler

import (
	"errors"
	"strings"
	"testing"
)

// check parses, registers and analyzes source, returning the first failure.
func check(t *testing.T, source string) error {
	t.Helper()
	prog := mustParse(t, source)
	reg, err := BuildRegistry(prog)
	if err != nil {
		return err
	}
	return Analyze(prog, reg)
}

func expectKind(t *testing.T, source string, want ErrorKind) *Error {
	t.Helper()
	err := check(t, source)
	if err == nil {
		t.Fatalf("expected %v for %q, got success", want, source)
	}
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if cerr.Kind != want {
		t.Errorf("Kind = %v, want %v (%v)", cerr.Kind, want, err)
	}
	return cerr
}

func expectOK(t *testing.T, source string) {
	t.Helper()
	if err := check(t, source); err != nil {
		t.Errorf("unexpected error for %q: %v", source, err)
	}
}

func TestSemanticAnalyzer_UndefinedVariable(t *testing.T) {
	cerr := expectKind(t, inRun("x := undefinedVar."), ErrUndefined)
	if !strings.Contains(cerr.Msg, "undefinedVar") {
		t.Errorf("message = %q, want the name", cerr.Msg)
	}
	if cerr.Pos.Column != 36 {
		t.Errorf("column = %d, want 36", cerr.Pos.Column)
	}
}

func TestSemanticAnalyzer_DefinedVariable(t *testing.T) {
	expectOK(t, inRun("x := 1. y := x. z := y plus: x."))
}

func TestSemanticAnalyzer_Parameters(t *testing.T) {
	expectOK(t, `class Main : Object { run [ | ] add:to: [ :a :b | c := a plus: b. ] }`)
	expectKind(t, `class Main : Object { run [ | ] add: [ :a | a := 1. ] }`, ErrParameterCollision)
	expectKind(t, `class Main : Object { run [ | ] add:to: [ :a :a | ] }`, ErrDuplicate)
}

func TestSemanticAnalyzer_ParentMustExist(t *testing.T) {
	cerr := expectKind(t, `class Main : Missing { }`, ErrUndefined)
	if cerr.Pos.Column != 14 {
		t.Errorf("column = %d, want 14", cerr.Pos.Column)
	}
	expectOK(t, `class A : B { } class B : Object { }`)
}

func TestSemanticAnalyzer_Arity(t *testing.T) {
	tests := []struct {
		src  string
		want ErrorKind
	}{
		{`class Main : Object { run [ :x | ] }`, ErrArity},
		{`class Main : Object { a:b: [ :x | ] }`, ErrArity},
		{`class Main : Object { a: [ | ] }`, ErrArity},
		{`class Main : Object { a: [ :x | b := [ | ]. c := [ :p :q | ]. ] }`, 0},
		{`class Main : Object { run [ | b := [ :p | ]. ] }`, 0},
	}
	for _, tc := range tests {
		if tc.want == 0 {
			expectOK(t, tc.src)
		} else {
			expectKind(t, tc.src, tc.want)
		}
	}
}

func TestSemanticAnalyzer_ReservedWords(t *testing.T) {
	for _, w := range ReservedWords {
		expectKind(t, `class Main : Object { `+w+` [ | ] }`, ErrReservedWord)
		expectKind(t, `class Main : Object { at:`+w+`: [ :a :b | ] }`, ErrReservedWord)
		expectKind(t, `class Main : Object { at: [ :`+w+` | ] }`, ErrReservedWord)
		expectKind(t, inRun(w+" := 1."), ErrReservedWord)
		expectKind(t, inRun("x := 1 "+w+"."), ErrReservedWord)
		expectKind(t, inRun("y := 1. x := y plus: 2 "+w+": 3."), ErrReservedWord)
		expectOK(t, inRun("x := "+w+"."))
	}
}

func TestSemanticAnalyzer_KeywordPartsInSourceOrder(t *testing.T) {
	// the full selector is checked against Integer at the first part
	expectKind(t, inRun("x := 1 foo: 2 self: 3."), ErrUndefined)
	// a reserved first part wins over the unknown selector
	expectKind(t, inRun("x := 1 self: 2 foo: 3."), ErrReservedWord)
	// the first argument is analyzed before the second part
	expectKind(t, inRun("y := 1. x := y plus: undefinedVar self: 2."), ErrUndefined)
	expectKind(t, inRun("y := 1. x := y plus: Undefined self: 2."), ErrUndefined)
	// a reserved later part wins over an undefined later argument
	expectKind(t, inRun("y := 1. x := y plus: 2 self: undefinedVar."), ErrReservedWord)
}

func TestSemanticAnalyzer_StaticSendBeforeArguments(t *testing.T) {
	// the unknown selector is reported before the undefined argument
	cerr := expectKind(t, inRun("x := 1 frob: undefinedArg."), ErrUndefined)
	if !strings.Contains(cerr.Msg, "frob:") {
		t.Errorf("message = %q, want the selector", cerr.Msg)
	}
}

func TestSemanticAnalyzer_StaticReceivers(t *testing.T) {
	tests := []struct {
		stmt string
		ok   bool
	}{
		{"x := 1 plus: 2.", true},
		{"x := 1 asString.", true},
		{"x := 1 identicalTo: 2.", true},
		{"x := 1 concatenateWith: 2.", false},
		{"x := 'a' print.", true},
		{"x := 'a' timesRepeat: 3.", false},
		{"x := True new.", true},
		{"x := Block whileTrue.", true},
		{"x := Block numberOfArguments.", false},
		{"x := Block frob.", false},
		{"x := Nil asString.", true},
		{"x := Main run.", true},
		{"x := Main walk.", false},
		{"x := [ | ] value.", true},
		{"x := nil whatever.", true},
		{"x := super whatever.", true},
	}
	for _, tc := range tests {
		if tc.ok {
			expectOK(t, inRun(tc.stmt))
		} else {
			expectKind(t, inRun(tc.stmt), ErrUndefined)
		}
	}
}

func TestSemanticAnalyzer_TwoTierLookup(t *testing.T) {
	// variables of an enclosing block are not visible
	expectKind(t, inRun("a := 1. b := [ | c := a. ]."), ErrUndefined)
	// parameters of an enclosing block are not visible either
	expectKind(t, `class Main : Object { run [ | ] at: [ :i | b := [ | c := i. ]. ] }`, ErrUndefined)
	// methods of the class are visible in every block
	expectOK(t, inRun("b := [ | c := run. d := [ | e := asString. ]. ]."))
	// a nested block may reuse an enclosing parameter name
	expectOK(t, `class Main : Object { run [ | ] at: [ :i | b := [ :i | ]. ] }`)
}

func TestSemanticAnalyzer_ScopesPopped(t *testing.T) {
	prog := mustParse(t, `class Main : Object { run [ | a := [ | b := 1. ]. ] } class Other : Object { x [ | ] }`)
	reg, err := BuildRegistry(prog)
	if err != nil {
		t.Fatal(err)
	}
	s := NewSemanticAnalyzer(reg)
	if err := s.Analyze(prog); err != nil {
		t.Fatalf("Analyze error: %v", err)
	}
	if d := s.symbols.Depth(); d != 0 {
		t.Errorf("scope depth after analysis = %d, want 0", d)
	}
	if len(s.receivers) != 0 {
		t.Errorf("receiver stack = %d entries, want 0", len(s.receivers))
	}

	// failure inside a nested block still leaves balanced scopes
	prog = mustParse(t, inRun("a := [ | b := missing. ]."))
	reg, _ = BuildRegistry(prog)
	s = NewSemanticAnalyzer(reg)
	if err := s.Analyze(prog); err == nil {
		t.Fatal("expected error")
	}
	if d := s.symbols.Depth(); d != 0 {
		t.Errorf("scope depth after failure = %d, want 0", d)
	}
}

func TestSemanticAnalyzer_FirstFailureWins(t *testing.T) {
	// arity (second method) is reached before the undefined name (third)
	src := `class Main : Object { run [ | ] a: [ | ] b [ | x := y. ] }`
	expectKind(t, src, ErrArity)
}

// ---------------------------------------------------------------------------
// Registry
// ---------------------------------------------------------------------------

func TestRegistryBuiltins(t *testing.T) {
	reg := NewRegistry()
	want := []string{"Object", "Nil", "Integer", "String", "Block", "True", "False"}
	names := reg.Names()
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], n)
		}
		desc, ok := reg.Lookup(n)
		if !ok || !desc.Builtin {
			t.Errorf("%s: not a built-in", n)
		}
	}

	obj, _ := reg.Lookup("Object")
	if obj.Parent != "" {
		t.Errorf("Object parent = %q, want empty", obj.Parent)
	}

	tests := []struct {
		class, selector string
		want            bool
	}{
		{"Integer", "plus:", true},
		{"Integer", "new", true},
		{"Integer", "concatenateWith:", false},
		{"String", "startsWith:endsBefore:", true},
		{"String", "startsWith:", true},
		{"String", "endsBefore:", true},
		{"String", "startWith:endsBefore:", true},
		{"String", "startWith:", true},
		{"String", "endsWith:", false},
		{"Block", "value:value:value:", true},
		{"Block", "whileTrue:", true},
		{"Block", "whileTrue", true},
		{"Block", "numberOfArguments", false},
		{"True", "ifTrue:ifFalse:", true},
		{"False", "not", true},
		{"Nil", "isNil", true},
		{"Object", "plus:", false},
		{"Missing", "new", false},
	}
	for _, tc := range tests {
		if got := reg.Understands(tc.class, tc.selector); got != tc.want {
			t.Errorf("Understands(%s, %s) = %v, want %v", tc.class, tc.selector, got, tc.want)
		}
	}
}

func TestRegistryUserClasses(t *testing.T) {
	prog := mustParse(t, `class A : Object { foo [ | ] bar: [ :x | ] } class B : A { baz [ | ] foo [ | ] }`)
	reg, err := BuildRegistry(prog)
	if err != nil {
		t.Fatal(err)
	}

	b, ok := reg.Lookup("B")
	if !ok {
		t.Fatal("B not registered")
	}
	if b.Parent != "A" || b.Builtin {
		t.Errorf("B = %+v", b)
	}
	if !b.Declares("baz") || b.Declares("bar:") {
		t.Errorf("B declares %v", b.Methods)
	}
	if !reg.Understands("B", "bar:") {
		t.Error("B should inherit bar: from A")
	}

	chain := reg.Ancestry("B")
	var names []string
	for _, d := range chain {
		names = append(names, d.Name)
	}
	if strings.Join(names, ",") != "B,A,Object" {
		t.Errorf("Ancestry(B) = %v, want [B A Object]", names)
	}

	methods := reg.MethodsOf("B")
	if methods[0] != "baz" || methods[1] != "foo" {
		t.Errorf("MethodsOf(B) starts with %v, want own selectors first", methods[:2])
	}
}

func TestRegistryDuplicates(t *testing.T) {
	for _, src := range []string{
		`class A : Object { } class A : Object { }`,
		`class Integer : Object { }`,
		`class True : Object { }`,
	} {
		_, err := BuildRegistry(mustParse(t, src))
		var cerr *Error
		if !errors.As(err, &cerr) || cerr.Kind != ErrDuplicate {
			t.Errorf("BuildRegistry(%q) = %v, want duplicate error", src, err)
		}
	}
}

func TestRegistryDuplicateSelectors(t *testing.T) {
	reg, err := BuildRegistry(mustParse(t, `class A : Object { foo [ | ] foo [ | ] }`))
	if err != nil {
		t.Fatal(err)
	}
	a, _ := reg.Lookup("A")
	if len(a.Methods) != 1 {
		t.Errorf("Methods = %v, want one entry", a.Methods)
	}
}

func TestRegistryCycles(t *testing.T) {
	reg, err := BuildRegistry(mustParse(t, `class A : B { } class B : A { }`))
	if err != nil {
		t.Fatal(err)
	}
	if n := len(reg.Ancestry("A")); n != 2 {
		t.Errorf("len(Ancestry(A)) = %d, want 2", n)
	}
	if reg.Understands("A", "new") {
		t.Error("a cyclic hierarchy never reaches Object")
	}
}

// ---------------------------------------------------------------------------
// Symbol table
// ---------------------------------------------------------------------------

func TestSymbolTable(t *testing.T) {
	st := NewSymbolTable()
	for _, w := range ReservedWords {
		if st.Lookup(w) != SymbolReserved {
			t.Errorf("Lookup(%q) = %v, want reserved", w, st.Lookup(w))
		}
	}

	st.PushScope()
	st.Define("x", SymbolVariable)
	if st.Lookup("x") != SymbolVariable {
		t.Errorf("Lookup(x) = %v, want variable", st.Lookup("x"))
	}

	st.PushScope()
	if st.Lookup("x") != SymbolNone {
		t.Error("outer scope should not be visible")
	}
	st.Define("x", SymbolParameter)
	if st.Lookup("x") != SymbolParameter {
		t.Errorf("Lookup(x) = %v, want parameter", st.Lookup("x"))
	}
	if st.Depth() != 2 {
		t.Errorf("Depth() = %d, want 2", st.Depth())
	}

	st.PopScope()
	if st.Lookup("x") != SymbolVariable {
		t.Errorf("after pop Lookup(x) = %v, want variable", st.Lookup("x"))
	}
	st.PopScope()
	if st.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", st.Depth())
	}
}

func TestSymbolTablePopBaseScopePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("PopScope on the base scope should panic")
		}
	}()
	NewSymbolTable().PopScope()
}

func TestSymbolKindString(t *testing.T) {
	if SymbolParameter.String() != "parameter" {
		t.Errorf("String() = %q, want parameter", SymbolParameter.String())
	}
	if SymbolKind(42).String() != "SymbolKind(42)" {
		t.Errorf("String() = %q", SymbolKind(42).String())
	}
}

// ---------------------------------------------------------------------------
// Entry point and errors
// ---------------------------------------------------------------------------

func TestCheckEntryPoint(t *testing.T) {
	tests := []struct {
		src   string
		entry EntryPoint
		ok    bool
	}{
		{`class Main : Object { run [ | ] }`, DefaultEntryPoint(), true},
		{``, DefaultEntryPoint(), false},
		{`class Main : Object { }`, DefaultEntryPoint(), false},
		{`class Main : Object { run: [ :a | ] }`, DefaultEntryPoint(), false},
		{`class P : Object { run [ | ] } class Main : P { }`, DefaultEntryPoint(), false},
		{`class App : Object { go [ | ] }`, EntryPoint{Class: "App", Method: "go"}, true},
	}
	for _, tc := range tests {
		reg, err := BuildRegistry(mustParse(t, tc.src))
		if err != nil {
			t.Fatal(err)
		}
		err = CheckEntryPoint(reg, tc.entry)
		if tc.ok && err != nil {
			t.Errorf("CheckEntryPoint(%q) = %v, want nil", tc.src, err)
		}
		if !tc.ok {
			var cerr *Error
			if !errors.As(err, &cerr) || cerr.ExitCode() != ExitMissingEntry {
				t.Errorf("CheckEntryPoint(%q) = %v, want missing entry", tc.src, err)
			}
		}
	}
}

func TestErrorKindExitCodes(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		code int
	}{
		{ErrLexical, 21},
		{ErrSyntax, 22},
		{ErrReservedWord, 22},
		{ErrMissingEntry, 31},
		{ErrUndefined, 32},
		{ErrArity, 33},
		{ErrParameterCollision, 34},
		{ErrDuplicate, 35},
		{ErrRender, 99},
	}
	for _, tc := range tests {
		if got := tc.kind.ExitCode(); got != tc.code {
			t.Errorf("%v.ExitCode() = %d, want %d", tc.kind, got, tc.code)
		}
	}
}

func TestErrorString(t *testing.T) {
	withPos := errorAt(ErrArity, Position{Line: 3, Column: 7}, "bad %s", "block")
	if got, want := withPos.Error(), "arity mismatch: line 3, column 7: bad block"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	noPos := NewError(ErrMissingEntry, "no Main")
	if got, want := noPos.Error(), "missing entry point: no Main"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestFirstComment(t *testing.T) {
	tests := []struct {
		src  string
		want string
		ok   bool
	}{
		{`class Main : Object { }`, "", false},
		{`"hello" class`, "hello", true},
		{`"" "second"`, "", true},
		{"x \"multi\nline\" y", "multi\nline", true},
		{`"unterminated`, "", false},
	}
	for _, tc := range tests {
		got, ok := FirstComment(tc.src)
		if got != tc.want || ok != tc.ok {
			t.Errorf("FirstComment(%q) = %q, %v; want %q, %v", tc.src, got, ok, tc.want, tc.ok)
		}
	}
}
