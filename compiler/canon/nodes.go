package canon

// ---------------------------------------------------------------------------
// Canonical tree types.
//
// These mirror the concrete syntax tree with everything the output does not
// need stripped away: no positions, no parentheses, selectors reassembled,
// reserved literals resolved to their classes and assignments numbered.
// ---------------------------------------------------------------------------

// Literal classes used in the canonical tree.
const (
	ClassInteger = "Integer"
	ClassString  = "String"
	ClassNil     = "Nil"
	ClassTrue    = "True"
	ClassFalse   = "False"
	ClassRef     = "class" // a class name used as a value
)

// DefaultLanguage is the language attribute of the program node.
const DefaultLanguage = "SOL25"

// Node is the interface implemented by all canonical tree nodes.
type Node interface {
	cnode() // marker method
}

// Expr is a node that can stand as an expression.
type Expr interface {
	Node
	cexpr() // marker method
}

// ---------------------------------------------------------------------------
// Structure nodes
// ---------------------------------------------------------------------------

// Program is the root. Description is nil when the source has no comment.
type Program struct {
	Language    string
	Description *string
	Classes     []*Class
}

type Class struct {
	Name    string
	Parent  string
	Methods []*Method
}

type Method struct {
	Selector string
	Body     *Block
}

// Block holds parameter names and numbered assignments. It is also an
// expression.
type Block struct {
	Params  []string
	Assigns []*Assign
}

// Arity returns the number of block parameters.
func (b *Block) Arity() int { return len(b.Params) }

// Assign is one statement of a block; Order counts from 1.
type Assign struct {
	Order int
	Var   string
	Value Expr
}

func (*Program) cnode() {}
func (*Class) cnode()   {}
func (*Method) cnode()  {}
func (*Block) cnode()   {}
func (*Assign) cnode()  {}

func (*Block) cexpr() {}

// ---------------------------------------------------------------------------
// Expression nodes
// ---------------------------------------------------------------------------

// Literal is a constant tagged with its class.
type Literal struct {
	Class string
	Value string
}

// Var references a variable, parameter or pseudo-variable by name.
type Var struct {
	Name string
}

// Send is a message send. Args is empty for unary sends and holds one
// argument per keyword part otherwise.
type Send struct {
	Selector string
	Receiver Expr
	Args     []Expr
}

func (*Literal) cnode() {}
func (*Var) cnode()     {}
func (*Send) cnode()    {}

func (*Literal) cexpr() {}
func (*Var) cexpr()     {}
func (*Send) cexpr()    {}
