package compiler

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// ---------------------------------------------------------------------------
// Lexer: Tokenizer for SOL25 source
// ---------------------------------------------------------------------------

// Lexer tokenizes SOL25 source code.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      rune // current character
	line    int  // current line (1-based)
	col     int  // current column (1-based)
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// readChar reads the next character.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
		l.pos = l.readPos
		l.col++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += size
	l.col++
}

// peekChar returns the next character without consuming it.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

// atEOF reports whether the whole input has been consumed. A NUL byte inside
// the input is not EOF.
func (l *Lexer) atEOF() bool {
	return l.ch == 0 && l.pos >= len(l.input)
}

// position returns the current position.
func (l *Lexer) position() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.col,
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() Token {
	if tok, ok := l.skipWhitespaceAndComments(); !ok {
		return tok
	}

	pos := l.position()

	switch {
	case l.atEOF():
		return Token{Type: TokenEOF, Literal: "", Pos: pos}

	case l.ch == '(':
		l.readChar()
		return Token{Type: TokenLParen, Literal: "(", Pos: pos}

	case l.ch == ')':
		l.readChar()
		return Token{Type: TokenRParen, Literal: ")", Pos: pos}

	case l.ch == '[':
		l.readChar()
		return Token{Type: TokenLBracket, Literal: "[", Pos: pos}

	case l.ch == ']':
		l.readChar()
		return Token{Type: TokenRBracket, Literal: "]", Pos: pos}

	case l.ch == '{':
		l.readChar()
		return Token{Type: TokenLBrace, Literal: "{", Pos: pos}

	case l.ch == '}':
		l.readChar()
		return Token{Type: TokenRBrace, Literal: "}", Pos: pos}

	case l.ch == '.':
		l.readChar()
		return Token{Type: TokenPeriod, Literal: ".", Pos: pos}

	case l.ch == '|':
		l.readChar()
		return Token{Type: TokenBar, Literal: "|", Pos: pos}

	case l.ch == ':':
		return l.readColon(pos)

	case l.ch == '\'':
		return l.readString(pos)

	case isDigit(l.ch):
		return l.readInteger(pos)

	case (l.ch == '-' || l.ch == '+') && isDigit(l.peekChar()):
		return l.readInteger(pos)

	case isLower(l.ch) || l.ch == '_':
		return l.readIdentifierOrKeyword(pos)

	case isUpper(l.ch):
		return l.readClassName(pos)

	default:
		ch := l.ch
		l.readChar()
		return Token{Type: TokenError, Literal: fmt.Sprintf("unexpected character %q", ch), Pos: pos}
	}
}

// skipWhitespaceAndComments skips Unicode whitespace and "double-quoted" comments.
// It returns ok=false with an error token for an unterminated comment.
func (l *Lexer) skipWhitespaceAndComments() (Token, bool) {
	for {
		for unicode.IsSpace(l.ch) {
			l.readChar()
		}

		if l.ch != '"' {
			return Token{}, true
		}

		pos := l.position()
		l.readChar()
		for l.ch != '"' && !l.atEOF() {
			l.readChar()
		}
		if l.atEOF() {
			return Token{Type: TokenError, Literal: "unterminated comment", Pos: pos}, false
		}
		l.readChar() // consume closing "
	}
}

// readColon reads ":=", a block parameter ":name", or a bare ":".
func (l *Lexer) readColon(pos Position) Token {
	l.readChar() // consume :

	switch {
	case l.ch == '=':
		l.readChar()
		return Token{Type: TokenAssign, Literal: ":=", Pos: pos}

	case isLower(l.ch) || l.ch == '_':
		start := l.pos
		for isIdentChar(l.ch) {
			l.readChar()
		}
		return Token{Type: TokenBlockParam, Literal: ":" + l.input[start:l.pos], Pos: pos}

	default:
		return Token{Type: TokenColon, Literal: ":", Pos: pos}
	}
}

// readString reads a single-quoted string literal. The literal keeps its
// escape sequences verbatim; only \n, \' and \\ are accepted.
func (l *Lexer) readString(pos Position) Token {
	l.readChar() // consume opening '

	start := l.pos
	for !l.atEOF() && l.ch != '\'' {
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n', '\'', '\\':
			default:
				if l.atEOF() {
					return Token{Type: TokenError, Literal: "unterminated string", Pos: pos}
				}
				return Token{Type: TokenError, Literal: fmt.Sprintf("invalid escape sequence \\%c in string", l.ch), Pos: pos}
			}
		}
		l.readChar()
	}

	if l.atEOF() {
		return Token{Type: TokenError, Literal: "unterminated string", Pos: pos}
	}

	literal := l.input[start:l.pos]
	l.readChar() // consume closing '
	return Token{Type: TokenString, Literal: literal, Pos: pos}
}

// readInteger reads an optionally signed decimal integer.
func (l *Lexer) readInteger(pos Position) Token {
	start := l.pos

	if l.ch == '-' || l.ch == '+' {
		l.readChar()
	}
	for isDigit(l.ch) {
		l.readChar()
	}

	return Token{Type: TokenInteger, Literal: l.input[start:l.pos], Pos: pos}
}

// readIdentifierOrKeyword reads an identifier or a keyword part. A trailing
// colon makes a keyword part unless it starts an assignment (x:=).
func (l *Lexer) readIdentifierOrKeyword(pos Position) Token {
	start := l.pos

	for isIdentChar(l.ch) {
		l.readChar()
	}

	literal := l.input[start:l.pos]

	if l.ch == ':' && l.peekChar() != '=' {
		l.readChar() // consume :
		return Token{Type: TokenKeyword, Literal: literal + ":", Pos: pos}
	}

	return Token{Type: TokenIdentifier, Literal: literal, Pos: pos}
}

// readClassName reads a class identifier. Class names never contain
// underscores.
func (l *Lexer) readClassName(pos Position) Token {
	start := l.pos

	for isUpper(l.ch) || isLower(l.ch) || isDigit(l.ch) {
		l.readChar()
	}

	return Token{Type: TokenClassName, Literal: l.input[start:l.pos], Pos: pos}
}

// Helper functions

func isLower(r rune) bool {
	return r >= 'a' && r <= 'z'
}

func isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentChar(r rune) bool {
	return isLower(r) || isUpper(r) || isDigit(r) || r == '_'
}

// Tokenize returns all tokens from the input, stopping after EOF or the
// first error token.
func Tokenize(input string) []Token {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF || tok.Type == TokenError {
			break
		}
	}
	return tokens
}
