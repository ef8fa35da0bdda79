package canon

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// ---------------------------------------------------------------------------
// Deterministic encoding of the canonical tree.
//
// Encoding conventions:
//   - First byte: EncodingVersion
//   - Then one canonical CBOR item for the root
//   - Every node is an array: [tag, fields..., children...]
//   - Child lists are nested arrays in source order
// ---------------------------------------------------------------------------

var encMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("canon: failed to create CBOR enc mode: %v", err))
	}
	encMode = em
}

// Serialize produces a deterministic byte encoding of a canonical node.
func Serialize(node Node) ([]byte, error) {
	data, err := encMode.Marshal(encodeNode(node))
	if err != nil {
		return nil, fmt.Errorf("canon: encode: %w", err)
	}
	return append([]byte{EncodingVersion}, data...), nil
}

func encodeNode(node Node) []interface{} {
	switch n := node.(type) {
	case *Program:
		var desc interface{}
		if n.Description != nil {
			desc = *n.Description
		}
		classes := make([]interface{}, len(n.Classes))
		for i, c := range n.Classes {
			classes[i] = encodeNode(c)
		}
		return []interface{}{TagProgram, n.Language, desc, classes}

	case *Class:
		methods := make([]interface{}, len(n.Methods))
		for i, m := range n.Methods {
			methods[i] = encodeNode(m)
		}
		return []interface{}{TagClass, n.Name, n.Parent, methods}

	case *Method:
		return []interface{}{TagMethod, n.Selector, encodeNode(n.Body)}

	case *Block:
		params := make([]interface{}, len(n.Params))
		for i, p := range n.Params {
			params[i] = p
		}
		assigns := make([]interface{}, len(n.Assigns))
		for i, a := range n.Assigns {
			assigns[i] = encodeNode(a)
		}
		return []interface{}{TagBlock, params, assigns}

	case *Assign:
		return []interface{}{TagAssign, n.Order, n.Var, encodeNode(n.Value)}

	case *Literal:
		return []interface{}{TagLiteral, n.Class, n.Value}

	case *Var:
		return []interface{}{TagVar, n.Name}

	case *Send:
		args := make([]interface{}, len(n.Args))
		for i, a := range n.Args {
			args[i] = encodeNode(a)
		}
		return []interface{}{TagSend, n.Selector, encodeNode(n.Receiver), args}

	default:
		return []interface{}{TagReservedZero}
	}
}
