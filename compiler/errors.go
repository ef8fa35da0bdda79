package compiler

import "fmt"

// ---------------------------------------------------------------------------
// Typed front-end failures
// ---------------------------------------------------------------------------

// ErrorKind classifies a failure. Every kind maps to exactly one exit code;
// several kinds may share a code.
type ErrorKind int

const (
	ErrLexical ErrorKind = iota + 1
	ErrSyntax
	ErrReservedWord
	ErrMissingEntry
	ErrUndefined
	ErrArity
	ErrParameterCollision
	ErrDuplicate
	ErrRender
)

// Process exit codes of the front end.
const (
	ExitOK                 = 0
	ExitUsage              = 10
	ExitInput              = 11
	ExitOutput             = 12
	ExitLexical            = 21
	ExitSyntax             = 22
	ExitMissingEntry       = 31
	ExitUndefined          = 32
	ExitArity              = 33
	ExitParameterCollision = 34
	ExitDuplicate          = 35
	ExitInternal           = 99
)

var errorKindNames = map[ErrorKind]string{
	ErrLexical:            "lexical error",
	ErrSyntax:             "syntax error",
	ErrReservedWord:       "reserved word",
	ErrMissingEntry:       "missing entry point",
	ErrUndefined:          "undefined",
	ErrArity:              "arity mismatch",
	ErrParameterCollision: "parameter collision",
	ErrDuplicate:          "duplicate",
	ErrRender:             "render error",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// ExitCode returns the process exit code for the kind.
func (k ErrorKind) ExitCode() int {
	switch k {
	case ErrLexical:
		return ExitLexical
	case ErrSyntax, ErrReservedWord:
		return ExitSyntax
	case ErrMissingEntry:
		return ExitMissingEntry
	case ErrUndefined:
		return ExitUndefined
	case ErrArity:
		return ExitArity
	case ErrParameterCollision:
		return ExitParameterCollision
	case ErrDuplicate:
		return ExitDuplicate
	default:
		return ExitInternal
	}
}

// Error is a fatal front-end failure. Pos is the zero Position when the
// failure has no single source location.
type Error struct {
	Kind ErrorKind
	Pos  Position
	Msg  string
}

func (e *Error) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("%s: line %d, column %d: %s", e.Kind, e.Pos.Line, e.Pos.Column, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// ExitCode returns the process exit code for the failure.
func (e *Error) ExitCode() int {
	return e.Kind.ExitCode()
}

// errorAt builds an Error with position information.
func errorAt(kind ErrorKind, pos Position, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// NewError builds an Error without position information.
func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
