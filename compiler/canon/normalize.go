package canon

import (
	"github.com/chazu/sol25/compiler"
)

// ---------------------------------------------------------------------------
// Normalization: concrete syntax tree → canonical tree
//
// Walks an analyzer-accepted program and produces the canonical tree. No
// validation happens here; the walk is total over every well-formed CST.
// ---------------------------------------------------------------------------

// pseudoLiterals maps reserved names that denote constants to their class.
// self, super and class stay variable references.
var pseudoLiterals = map[string]string{
	"nil":   ClassNil,
	"true":  ClassTrue,
	"false": ClassFalse,
}

// Options carries the program-level attributes.
type Options struct {
	Language    string  // empty means DefaultLanguage
	Description *string // nil omits the description
}

// Build transforms a parsed program into its canonical tree.
func Build(prog *compiler.Program, opts Options) *Program {
	lang := opts.Language
	if lang == "" {
		lang = DefaultLanguage
	}

	out := &Program{
		Language:    lang,
		Description: opts.Description,
		Classes:     make([]*Class, 0, len(prog.Classes)),
	}
	for _, cls := range prog.Classes {
		out.Classes = append(out.Classes, normalizeClass(cls))
	}
	return out
}

func normalizeClass(cls *compiler.ClassDef) *Class {
	out := &Class{
		Name:    cls.Name,
		Parent:  cls.Parent,
		Methods: make([]*Method, 0, len(cls.Methods)),
	}
	for _, m := range cls.Methods {
		out.Methods = append(out.Methods, &Method{
			Selector: m.Selector.Name(),
			Body:     normalizeBlock(m.Body),
		})
	}
	return out
}

func normalizeBlock(b *compiler.Block) *Block {
	out := &Block{
		Params:  b.ParamNames(),
		Assigns: make([]*Assign, 0, len(b.Statements)),
	}
	for i, stmt := range b.Statements {
		out.Assigns = append(out.Assigns, &Assign{
			Order: i + 1,
			Var:   stmt.Target,
			Value: normalizeExpr(stmt.Value),
		})
	}
	return out
}

// ---------------------------------------------------------------------------
// Expression normalization
// ---------------------------------------------------------------------------

func normalizeExpr(e *compiler.Expr) Expr {
	recv := normalizePrimary(e.Receiver)

	switch {
	case e.Unary != "":
		return &Send{Selector: e.Unary, Receiver: recv}

	case len(e.Keywords) > 0:
		args := make([]Expr, len(e.Keywords))
		for i, kw := range e.Keywords {
			args[i] = normalizePrimary(kw.Arg)
		}
		return &Send{Selector: e.Selector(), Receiver: recv, Args: args}

	default:
		return recv
	}
}

func normalizePrimary(p compiler.Primary) Expr {
	switch n := p.(type) {
	case *compiler.IntegerLiteral:
		return &Literal{Class: ClassInteger, Value: n.Text}
	case *compiler.StringLiteral:
		return &Literal{Class: ClassString, Value: n.Text}
	case *compiler.ClassRef:
		return &Literal{Class: ClassRef, Value: n.Name}
	case *compiler.Identifier:
		if class, ok := pseudoLiterals[n.Name]; ok {
			return &Literal{Class: class, Value: n.Name}
		}
		return &Var{Name: n.Name}
	case *compiler.Block:
		return normalizeBlock(n)
	case *compiler.ParenExpr:
		return normalizeExpr(n.Inner)
	default:
		// unreachable for parser output
		return &Literal{Class: ClassNil, Value: "nil"}
	}
}
