package canon

import "testing"

func TestTagUniqueness(t *testing.T) {
	seen := make(map[byte]bool, len(allTags))
	for _, tag := range allTags {
		if seen[tag] {
			t.Errorf("duplicate tag: 0x%02X", tag)
		}
		seen[tag] = true
	}
}

func TestTagGroups(t *testing.T) {
	for _, tag := range []byte{TagProgram, TagClass, TagMethod, TagBlock, TagAssign} {
		if tag == TagReservedZero || tag >= 0x10 {
			t.Errorf("structure tag 0x%02X outside 0x01-0x0F", tag)
		}
	}
	for _, tag := range []byte{TagLiteral, TagVar, TagSend} {
		if tag < 0x10 || tag >= 0x20 {
			t.Errorf("expression tag 0x%02X outside 0x10-0x1F", tag)
		}
	}
}

func TestEncodedNodeTags(t *testing.T) {
	block := &Block{}
	tests := []struct {
		node Node
		want byte
	}{
		{&Program{}, TagProgram},
		{&Class{}, TagClass},
		{&Method{Body: block}, TagMethod},
		{block, TagBlock},
		{&Assign{Value: &Var{Name: "x"}}, TagAssign},
		{&Literal{Class: ClassInteger, Value: "1"}, TagLiteral},
		{&Var{Name: "x"}, TagVar},
		{&Send{Selector: "asString", Receiver: &Var{Name: "x"}}, TagSend},
	}
	for _, tc := range tests {
		got := encodeNode(tc.node)[0]
		if got != tc.want {
			t.Errorf("encodeNode(%T) tag = %v, want 0x%02X", tc.node, got, tc.want)
		}
	}
}

func TestEncodingVersionNonZero(t *testing.T) {
	if EncodingVersion == 0 {
		t.Error("EncodingVersion must be non-zero")
	}
}
