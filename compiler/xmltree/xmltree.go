// Package xmltree renders a canonical SOL25 tree as an XML document.
package xmltree

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"

	"github.com/beevik/etree"

	"github.com/chazu/sol25/compiler"
	"github.com/chazu/sol25/compiler/canon"
)

// DefaultIndent is the number of spaces per nesting level.
const DefaultIndent = 2

// Options control the textual layout of the document.
type Options struct {
	Indent int // spaces per level; 0 writes the document on one line
}

// DefaultOptions returns the standard layout.
func DefaultOptions() Options {
	return Options{Indent: DefaultIndent}
}

// Document builds the XML document for a canonical program.
func Document(p *canon.Program, opts Options) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.WriteSettings.CanonicalAttrVal = true

	r := &renderer{}
	root := doc.CreateElement("program")
	r.attr(root, "language", p.Language)
	if p.Description != nil {
		r.attr(root, "description", *p.Description)
	}
	for _, cls := range p.Classes {
		r.class(root, cls)
	}
	if r.err != nil {
		return nil, r.err
	}

	if opts.Indent > 0 {
		doc.Indent(opts.Indent)
	}
	return doc, nil
}

// Render returns the serialized document, always ending in a newline.
func Render(p *canon.Program, opts Options) ([]byte, error) {
	doc, err := Document(p, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, compiler.NewError(compiler.ErrRender, "serialize document: %v", err)
	}
	if !bytes.HasSuffix(buf.Bytes(), []byte("\n")) {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// Write renders p to w.
func Write(w io.Writer, p *canon.Program, opts Options) error {
	data, err := Render(p, opts)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Element construction
// ---------------------------------------------------------------------------

// renderer records the first value that cannot be represented in XML 1.0.
type renderer struct {
	err error
}

func (r *renderer) attr(el *etree.Element, key, value string) {
	if r.err == nil {
		if err := checkChars(value); err != nil {
			r.err = compiler.NewError(compiler.ErrRender, "<%s %s>: %v", el.Tag, key, err)
		}
	}
	el.CreateAttr(key, value)
}

func (r *renderer) class(parent *etree.Element, cls *canon.Class) {
	el := parent.CreateElement("class")
	r.attr(el, "name", cls.Name)
	r.attr(el, "parent", cls.Parent)
	for _, m := range cls.Methods {
		mel := el.CreateElement("method")
		r.attr(mel, "selector", m.Selector)
		r.block(mel, m.Body)
	}
}

func (r *renderer) block(parent *etree.Element, b *canon.Block) {
	el := parent.CreateElement("block")
	r.attr(el, "arity", strconv.Itoa(b.Arity()))
	for i, name := range b.Params {
		pel := el.CreateElement("parameter")
		r.attr(pel, "name", name)
		r.attr(pel, "order", strconv.Itoa(i+1))
	}
	for _, a := range b.Assigns {
		ael := el.CreateElement("assign")
		r.attr(ael, "order", strconv.Itoa(a.Order))
		vel := ael.CreateElement("var")
		r.attr(vel, "name", a.Var)
		r.expr(ael, a.Value)
	}
}

// expr wraps e in an <expr> element under parent.
func (r *renderer) expr(parent *etree.Element, e canon.Expr) {
	el := parent.CreateElement("expr")
	switch n := e.(type) {
	case *canon.Literal:
		lel := el.CreateElement("literal")
		r.attr(lel, "class", n.Class)
		r.attr(lel, "value", n.Value)
	case *canon.Var:
		vel := el.CreateElement("var")
		r.attr(vel, "name", n.Name)
	case *canon.Block:
		r.block(el, n)
	case *canon.Send:
		sel := el.CreateElement("send")
		r.attr(sel, "selector", n.Selector)
		r.expr(sel, n.Receiver)
		for i, arg := range n.Args {
			argEl := sel.CreateElement("arg")
			r.attr(argEl, "order", strconv.Itoa(i+1))
			r.expr(argEl, arg)
		}
	default:
		if r.err == nil {
			r.err = compiler.NewError(compiler.ErrRender, "unknown expression %T", e)
		}
	}
}

// checkChars rejects text that XML 1.0 cannot carry, even as a character
// reference.
func checkChars(s string) error {
	for i, c := range s {
		if c == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return fmt.Errorf("invalid UTF-8 at byte %d", i)
			}
		}
		if !isXMLChar(c) {
			return fmt.Errorf("character %U at byte %d is not allowed in XML", c, i)
		}
	}
	return nil
}

func isXMLChar(c rune) bool {
	return c == 0x09 || c == 0x0A || c == 0x0D ||
		(c >= 0x20 && c <= 0xD7FF) ||
		(c >= 0xE000 && c <= 0xFFFD) ||
		(c >= 0x10000 && c <= 0x10FFFF)
}
