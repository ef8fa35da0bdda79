package compiler

import (
	"strings"

	"github.com/tliron/commonlog"
)

// ---------------------------------------------------------------------------
// Semantic Analyzer: scoping, hierarchy and selector legality
// ---------------------------------------------------------------------------

// receiverKind is the static shape of a message receiver.
type receiverKind int

const (
	receiverDynamic receiverKind = iota
	receiverInteger
	receiverString
	receiverClass
)

// receiverShape decides whether a send can be checked statically. Only
// literals and explicit class references have a known class.
type receiverShape struct {
	kind  receiverKind
	class string // for receiverClass
}

// staticClass returns the class whose method set a send must be checked
// against, or false for a dynamic receiver.
func (r receiverShape) staticClass() (string, bool) {
	switch r.kind {
	case receiverInteger:
		return "Integer", true
	case receiverString:
		return "String", true
	case receiverClass:
		return r.class, true
	default:
		return "", false
	}
}

func shapeOf(p Primary) receiverShape {
	switch n := p.(type) {
	case *IntegerLiteral:
		return receiverShape{kind: receiverInteger}
	case *StringLiteral:
		return receiverShape{kind: receiverString}
	case *ClassRef:
		return receiverShape{kind: receiverClass, class: n.Name}
	default:
		return receiverShape{kind: receiverDynamic}
	}
}

// SemanticAnalyzer walks a parsed program with a completed registry and
// reports the first rule violation.
type SemanticAnalyzer struct {
	registry     *Registry
	symbols      *SymbolTable
	currentClass string
	receivers    []receiverShape
	log          commonlog.Logger
}

// NewSemanticAnalyzer creates an analyzer reading the given registry.
func NewSemanticAnalyzer(registry *Registry) *SemanticAnalyzer {
	return &SemanticAnalyzer{
		registry: registry,
		symbols:  NewSymbolTable(),
		log:      commonlog.GetLogger("sol25.compiler"),
	}
}

// Analyze runs semantic analysis over the program.
func Analyze(prog *Program, registry *Registry) error {
	return NewSemanticAnalyzer(registry).Analyze(prog)
}

// Analyze checks every class in declaration order.
func (s *SemanticAnalyzer) Analyze(prog *Program) error {
	for _, cls := range prog.Classes {
		if err := s.analyzeClass(cls); err != nil {
			return err
		}
	}
	return nil
}

func (s *SemanticAnalyzer) analyzeClass(cls *ClassDef) error {
	s.log.Debugf("analyzing class %s : %s", cls.Name, cls.Parent)

	if !s.registry.Has(cls.Parent) {
		return errorAt(ErrUndefined, cls.ParentPos, "class '%s' is not defined", cls.Parent)
	}

	s.symbols.PushScope()
	s.currentClass = cls.Name

	var err error
	for _, m := range cls.Methods {
		if err = s.analyzeMethod(m); err != nil {
			break
		}
	}

	s.currentClass = ""
	s.symbols.PopScope()
	return err
}

func (s *SemanticAnalyzer) analyzeMethod(m *MethodDef) error {
	sel := m.Selector
	if sel.IsKeyword() {
		for _, part := range sel.Parts {
			if err := checkSelectorPart(part, sel.SpanVal.Start); err != nil {
				return err
			}
		}
	} else if IsReserved(sel.Unary) {
		return errorAt(ErrReservedWord, sel.SpanVal.Start, "reserved word '%s' used as selector", sel.Unary)
	}

	// Only a method's own block is held to the selector's arity.
	return s.analyzeBlock(m.Body, sel.Arity(), true)
}

// checkSelectorPart rejects keyword parts whose name is a reserved word.
func checkSelectorPart(part string, pos Position) error {
	name := strings.TrimSuffix(part, ":")
	if IsReserved(name) {
		return errorAt(ErrReservedWord, pos, "reserved word '%s' used as selector", name)
	}
	return nil
}

// analyzeBlock checks a block in a fresh scope. When checkArity is set the
// block must declare exactly arity parameters.
func (s *SemanticAnalyzer) analyzeBlock(b *Block, arity int, checkArity bool) error {
	s.symbols.PushScope()
	err := s.analyzeBlockBody(b, arity, checkArity)
	s.symbols.PopScope()
	return err
}

func (s *SemanticAnalyzer) analyzeBlockBody(b *Block, arity int, checkArity bool) error {
	// Every selector reachable from the current class is a known name.
	for _, sel := range s.registry.MethodsOf(s.currentClass) {
		s.symbols.Define(sel, SymbolMethod)
	}

	for _, param := range b.Parameters {
		if IsReserved(param.Name) {
			return errorAt(ErrReservedWord, param.SpanVal.Start, "reserved word '%s' used as parameter", param.Name)
		}
		if s.symbols.Lookup(param.Name) != SymbolNone {
			return errorAt(ErrDuplicate, param.SpanVal.Start, "symbol '%s' already exists", param.Name)
		}
		s.symbols.Define(param.Name, SymbolParameter)
	}

	if checkArity && len(b.Parameters) != arity {
		return errorAt(ErrArity, b.SpanVal.Start, "block has %d parameters but selector takes %d", len(b.Parameters), arity)
	}

	for _, stmt := range b.Statements {
		if err := s.analyzeAssignment(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SemanticAnalyzer) analyzeAssignment(a *Assignment) error {
	if IsReserved(a.Target) {
		return errorAt(ErrReservedWord, a.SpanVal.Start, "reserved word '%s' used as identifier", a.Target)
	}

	switch s.symbols.Lookup(a.Target) {
	case SymbolNone:
		s.symbols.Define(a.Target, SymbolVariable)
	case SymbolParameter:
		return errorAt(ErrParameterCollision, a.SpanVal.Start, "identifier '%s' is a parameter of the block", a.Target)
	}

	return s.analyzeExpr(a.Value)
}

// analyzeExpr checks the receiver, then the message sent to it while the
// receiver's shape is on top of the receiver stack.
func (s *SemanticAnalyzer) analyzeExpr(e *Expr) error {
	if err := s.analyzePrimary(e.Receiver); err != nil {
		return err
	}

	s.receivers = append(s.receivers, shapeOf(e.Receiver))
	err := s.analyzeMessage(e)
	s.receivers = s.receivers[:len(s.receivers)-1]
	return err
}

func (s *SemanticAnalyzer) analyzeMessage(e *Expr) error {
	if !e.HasMessage() {
		return nil
	}

	if e.Unary != "" {
		if IsReserved(e.Unary) {
			return errorAt(ErrReservedWord, e.UnaryPos, "reserved word '%s' used as selector", e.Unary)
		}
		return s.checkStaticSend(e.Unary, e.UnaryPos)
	}

	// Parts and arguments are visited in source order. The full selector
	// is checked against the receiver at the first part.
	for i, kw := range e.Keywords {
		if err := checkSelectorPart(kw.Keyword, kw.SpanVal.Start); err != nil {
			return err
		}
		if i == 0 {
			if err := s.checkStaticSend(e.Selector(), kw.SpanVal.Start); err != nil {
				return err
			}
		}
		if err := s.analyzePrimary(kw.Arg); err != nil {
			return err
		}
	}
	return nil
}

// checkStaticSend verifies selector against the innermost receiver when its
// class is statically known.
func (s *SemanticAnalyzer) checkStaticSend(selector string, pos Position) error {
	recv := s.receivers[len(s.receivers)-1]
	class, ok := recv.staticClass()
	if !ok {
		return nil
	}
	if !s.registry.Understands(class, selector) {
		return errorAt(ErrUndefined, pos, "class '%s' does not understand '%s'", class, selector)
	}
	return nil
}

func (s *SemanticAnalyzer) analyzePrimary(p Primary) error {
	switch n := p.(type) {
	case *IntegerLiteral, *StringLiteral:
		return nil

	case *Identifier:
		if s.symbols.Lookup(n.Name) == SymbolNone {
			return errorAt(ErrUndefined, n.SpanVal.Start, "identifier '%s' is not defined", n.Name)
		}
		return nil

	case *ClassRef:
		if !s.registry.Has(n.Name) {
			return errorAt(ErrUndefined, n.SpanVal.Start, "class '%s' is not defined", n.Name)
		}
		return nil

	case *Block:
		return s.analyzeBlock(n, 0, false)

	case *ParenExpr:
		return s.analyzeExpr(n.Inner)

	default:
		return NewError(ErrSyntax, "unexpected expression %T", p)
	}
}
