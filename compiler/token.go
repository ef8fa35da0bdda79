package compiler

import "fmt"

// ---------------------------------------------------------------------------
// Token types for the SOL25 lexer
// ---------------------------------------------------------------------------

// TokenType represents the type of a token.
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenError

	// Literals
	TokenInteger // 42, -7, +3
	TokenString  // 'hello\n'

	// Names
	TokenIdentifier // foo, _tmp, class, self
	TokenClassName  // Main, Object
	TokenKeyword    // plus:, ifTrue:
	TokenBlockParam // :x

	// Delimiters
	TokenLParen   // (
	TokenRParen   // )
	TokenLBracket // [
	TokenRBracket // ]
	TokenLBrace   // {
	TokenRBrace   // }
	TokenPeriod   // .
	TokenAssign   // :=
	TokenColon    // :
	TokenBar      // |
)

var tokenNames = map[TokenType]string{
	TokenEOF:        "EOF",
	TokenError:      "ERROR",
	TokenInteger:    "INTEGER",
	TokenString:     "STRING",
	TokenIdentifier: "IDENTIFIER",
	TokenClassName:  "CLASSNAME",
	TokenKeyword:    "KEYWORD",
	TokenBlockParam: "BLOCKPARAM",
	TokenLParen:     "(",
	TokenRParen:     ")",
	TokenLBracket:   "[",
	TokenRBracket:   "]",
	TokenLBrace:     "{",
	TokenRBrace:     "}",
	TokenPeriod:     ".",
	TokenAssign:     ":=",
	TokenColon:      ":",
	TokenBar:        "|",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Token(%d)", t)
}

// Token represents a lexical token.
type Token struct {
	Type    TokenType
	Literal string   // the raw text
	Pos     Position // start position
}

func (t Token) String() string {
	if t.Type == TokenEOF {
		return "EOF"
	}
	if t.Type == TokenError {
		return fmt.Sprintf("ERROR(%s)", t.Literal)
	}
	if len(t.Literal) > 20 {
		return fmt.Sprintf("%s(%q...)", t.Type, t.Literal[:20])
	}
	return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
}

// KeywordClass introduces a class definition. It is lexed as an ordinary
// identifier and only recognized by the parser at the start of a definition.
const KeywordClass = "class"

// ReservedWords are the names that may never be declared as selectors,
// block parameters or assignment targets.
var ReservedWords = []string{"class", "self", "super", "nil", "true", "false"}

var reservedSet = func() map[string]bool {
	m := make(map[string]bool, len(ReservedWords))
	for _, w := range ReservedWords {
		m[w] = true
	}
	return m
}()

// IsReserved reports whether name is a reserved word.
func IsReserved(name string) bool {
	return reservedSet[name]
}
