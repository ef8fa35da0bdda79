package canon

// ---------------------------------------------------------------------------
// Frozen tag bytes for the canonical tree encoding.
//
// IMPORTANT: These tags are FROZEN. Once assigned, a tag byte must never
// change meaning. Adding new tags is fine; changing existing ones changes
// every previously computed fingerprint.
// ---------------------------------------------------------------------------

// EncodingVersion is the version prefix of the encoding.
// Bumping this invalidates all existing fingerprints.
const EncodingVersion byte = 1

// Node type tags. Each encoded node is a CBOR array whose first element is
// its tag.
const (
	TagReservedZero byte = 0x00 // version prefix / reserved

	// Structure
	TagProgram byte = 0x01
	TagClass   byte = 0x02
	TagMethod  byte = 0x03
	TagBlock   byte = 0x04
	TagAssign  byte = 0x05

	// Expressions
	TagLiteral byte = 0x10
	TagVar     byte = 0x11
	TagSend    byte = 0x12

	// Reserved 0xFE-0xFF
)

// allTags lists every defined tag for uniqueness verification in tests.
var allTags = []byte{
	TagReservedZero,
	TagProgram, TagClass, TagMethod, TagBlock, TagAssign,
	TagLiteral, TagVar, TagSend,
}
