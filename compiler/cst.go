package compiler

import "strings"

// ---------------------------------------------------------------------------
// CST: concrete syntax tree for SOL25
//
// One node type per grammar production. Children are kept in source order
// and nodes are never mutated after the parser returns them.
// ---------------------------------------------------------------------------

// Position represents a source location.
type Position struct {
	Offset int // byte offset
	Line   int // 1-based line number
	Column int // 1-based column number
}

// Span represents a range in source code.
type Span struct {
	Start Position
	End   Position
}

// Node is the interface implemented by all CST nodes.
type Node interface {
	Span() Span
	node() // marker method
}

// Primary is a receiver or argument of a message send.
type Primary interface {
	Node
	primary() // marker method
}

// ---------------------------------------------------------------------------
// Top-level structure
// ---------------------------------------------------------------------------

// Program is the root production: class_def* EOF.
type Program struct {
	SpanVal Span
	Classes []*ClassDef
}

func (n *Program) Span() Span { return n.SpanVal }
func (n *Program) node()      {}

// ClassDef represents "class" Name ":" Parent "{" method* "}".
type ClassDef struct {
	SpanVal   Span
	Name      string
	Parent    string
	ParentPos Position
	Methods   []*MethodDef
}

func (n *ClassDef) Span() Span { return n.SpanVal }
func (n *ClassDef) node()      {}

// MethodDef represents selector block.
type MethodDef struct {
	SpanVal  Span
	Selector *Selector
	Body     *Block
}

func (n *MethodDef) Span() Span { return n.SpanVal }
func (n *MethodDef) node()      {}

// Selector is either one bare name or one or more keyword parts.
type Selector struct {
	SpanVal Span
	Unary   string   // bare name, empty for keyword selectors
	Parts   []string // keyword parts including their colon: ["plus:", "with:"]
}

func (n *Selector) Span() Span { return n.SpanVal }
func (n *Selector) node()      {}

// IsKeyword reports whether the selector is made of keyword parts.
func (n *Selector) IsKeyword() bool { return len(n.Parts) > 0 }

// Arity returns the number of parameters the selector takes.
func (n *Selector) Arity() int { return len(n.Parts) }

// Name returns the full selector: the bare name or the concatenated parts.
func (n *Selector) Name() string {
	if n.IsKeyword() {
		return strings.Join(n.Parts, "")
	}
	return n.Unary
}

// ---------------------------------------------------------------------------
// Blocks and statements
// ---------------------------------------------------------------------------

// Block represents "[" (":" param)* "|" (assign ".")* "]". A block is also a
// primary expression.
type Block struct {
	SpanVal    Span
	Parameters []*BlockParam
	Statements []*Assignment
}

func (n *Block) Span() Span { return n.SpanVal }
func (n *Block) node()      {}
func (n *Block) primary()   {}

// ParamNames returns the parameter names without their leading colon.
func (n *Block) ParamNames() []string {
	names := make([]string, len(n.Parameters))
	for i, p := range n.Parameters {
		names[i] = p.Name
	}
	return names
}

// BlockParam is one ":name" entry of a block's parameter list.
type BlockParam struct {
	SpanVal Span
	Name    string // without the leading colon
}

func (n *BlockParam) Span() Span { return n.SpanVal }
func (n *BlockParam) node()      {}

// Assignment represents target ":=" expr ".".
type Assignment struct {
	SpanVal Span
	Target  string
	Value   *Expr
}

func (n *Assignment) Span() Span { return n.SpanVal }
func (n *Assignment) node()      {}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// Expr is a primary optionally followed by exactly one message: a unary
// selector or one or more keyword parts each with a primary argument.
type Expr struct {
	SpanVal  Span
	Receiver Primary
	Unary    string        // unary selector, empty if none
	UnaryPos Position      // position of the unary selector
	Keywords []*KeywordArg // keyword parts with arguments
}

func (n *Expr) Span() Span { return n.SpanVal }
func (n *Expr) node()      {}

// HasMessage reports whether a message is sent to the receiver.
func (n *Expr) HasMessage() bool {
	return n.Unary != "" || len(n.Keywords) > 0
}

// Selector returns the full selector of the message, or "" if none.
func (n *Expr) Selector() string {
	if n.Unary != "" {
		return n.Unary
	}
	var sb strings.Builder
	for _, kw := range n.Keywords {
		sb.WriteString(kw.Keyword)
	}
	return sb.String()
}

// KeywordArg is one "part:" primary pair of a keyword message.
type KeywordArg struct {
	SpanVal Span
	Keyword string // including the colon
	Arg     Primary
}

func (n *KeywordArg) Span() Span { return n.SpanVal }
func (n *KeywordArg) node()      {}

// IntegerLiteral keeps the literal text as written, sign included.
type IntegerLiteral struct {
	SpanVal Span
	Text    string
}

func (n *IntegerLiteral) Span() Span { return n.SpanVal }
func (n *IntegerLiteral) node()      {}
func (n *IntegerLiteral) primary()   {}

// StringLiteral keeps the text between the quotes with escapes untouched.
type StringLiteral struct {
	SpanVal Span
	Text    string
}

func (n *StringLiteral) Span() Span { return n.SpanVal }
func (n *StringLiteral) node()      {}
func (n *StringLiteral) primary()   {}

// Identifier is a lowercase name: a variable, parameter, method name or a
// reserved word such as self or nil.
type Identifier struct {
	SpanVal Span
	Name    string
}

func (n *Identifier) Span() Span { return n.SpanVal }
func (n *Identifier) node()      {}
func (n *Identifier) primary()   {}

// ClassRef is a class name used as an expression.
type ClassRef struct {
	SpanVal Span
	Name    string
}

func (n *ClassRef) Span() Span { return n.SpanVal }
func (n *ClassRef) node()      {}
func (n *ClassRef) primary()   {}

// ParenExpr is "(" expr ")".
type ParenExpr struct {
	SpanVal Span
	Inner   *Expr
}

func (n *ParenExpr) Span() Span { return n.SpanVal }
func (n *ParenExpr) node()      {}
func (n *ParenExpr) primary()   {}

// ---------------------------------------------------------------------------
// Helper functions
// ---------------------------------------------------------------------------

// MakeSpan creates a span from start and end positions.
func MakeSpan(start, end Position) Span {
	return Span{Start: start, End: end}
}
