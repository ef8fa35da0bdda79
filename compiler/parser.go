package compiler

import (
	"fmt"
	"strings"
)

// ---------------------------------------------------------------------------
// Parser: Recursive descent parser for SOL25
// ---------------------------------------------------------------------------

// Parser parses SOL25 source code into a CST. It stops at the first
// lexical or syntactic failure.
type Parser struct {
	lexer     *Lexer
	curToken  Token
	peekToken Token
	err       *Error
}

// NewParser creates a new parser for the given input.
func NewParser(input string) *Parser {
	p := &Parser{
		lexer: NewLexer(input),
	}
	// Read two tokens to fill curToken and peekToken
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses a complete program.
func Parse(source string) (*Program, error) {
	p := NewParser(source)
	prog := p.ParseProgram()
	if err := p.Err(); err != nil {
		return nil, err
	}
	return prog, nil
}

// nextToken advances to the next token. The lexer is not consulted past an
// error token.
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.curToken.Type == TokenError {
		return
	}
	p.peekToken = p.lexer.NextToken()
}

// curTokenIs checks if the current token is of the given type.
func (p *Parser) curTokenIs(t TokenType) bool {
	return p.curToken.Type == t
}

// expect advances if the current token matches, otherwise records an error.
func (p *Parser) expect(t TokenType) bool {
	if p.curTokenIs(t) {
		p.nextToken()
		return true
	}
	p.unexpected(t.String())
	return false
}

// unexpected records a failure at the current token. An error token is a
// lexical failure; anything else is a syntax failure.
func (p *Parser) unexpected(want string) {
	if p.curTokenIs(TokenError) {
		p.fail(errorAt(ErrLexical, p.curToken.Pos, "%s", p.curToken.Literal))
		return
	}
	p.fail(errorAt(ErrSyntax, p.curToken.Pos, "unexpected %s, expected %s", p.curToken, want))
}

// fail records the first failure; later ones are dropped.
func (p *Parser) fail(err *Error) {
	if p.err == nil {
		p.err = err
	}
}

// Err returns the failure that stopped parsing, or nil.
func (p *Parser) Err() error {
	if p.err == nil {
		return nil
	}
	return p.err
}

// ---------------------------------------------------------------------------
// Top-level parsing
// ---------------------------------------------------------------------------

// ParseProgram parses class_def* EOF.
func (p *Parser) ParseProgram() *Program {
	startPos := p.curToken.Pos
	prog := &Program{}

	for p.isClassStart() {
		cls := p.parseClassDef()
		if cls == nil {
			return nil
		}
		prog.Classes = append(prog.Classes, cls)
	}

	if !p.curTokenIs(TokenEOF) {
		p.unexpected(fmt.Sprintf("%q or EOF", KeywordClass))
		return nil
	}

	prog.SpanVal = MakeSpan(startPos, p.curToken.Pos)
	return prog
}

func (p *Parser) isClassStart() bool {
	return p.curTokenIs(TokenIdentifier) && p.curToken.Literal == KeywordClass
}

// parseClassDef parses "class" Name ":" Parent "{" method* "}".
func (p *Parser) parseClassDef() *ClassDef {
	startPos := p.curToken.Pos
	p.nextToken() // consume class

	if !p.curTokenIs(TokenClassName) {
		p.unexpected("class name")
		return nil
	}
	name := p.curToken.Literal
	p.nextToken()

	if !p.expect(TokenColon) {
		return nil
	}

	if !p.curTokenIs(TokenClassName) {
		p.unexpected("parent class name")
		return nil
	}
	parent := p.curToken.Literal
	parentPos := p.curToken.Pos
	p.nextToken()

	if !p.expect(TokenLBrace) {
		return nil
	}

	var methods []*MethodDef
	for p.curTokenIs(TokenIdentifier) || p.curTokenIs(TokenKeyword) {
		m := p.parseMethod()
		if m == nil {
			return nil
		}
		methods = append(methods, m)
	}

	endPos := p.curToken.Pos
	if !p.expect(TokenRBrace) {
		return nil
	}

	return &ClassDef{
		SpanVal:   MakeSpan(startPos, endPos),
		Name:      name,
		Parent:    parent,
		ParentPos: parentPos,
		Methods:   methods,
	}
}

// parseMethod parses selector block.
func (p *Parser) parseMethod() *MethodDef {
	startPos := p.curToken.Pos

	sel := p.parseSelector()
	if sel == nil {
		return nil
	}

	if !p.curTokenIs(TokenLBracket) {
		p.unexpected("[")
		return nil
	}
	body := p.parseBlock()
	if body == nil {
		return nil
	}

	return &MethodDef{
		SpanVal:  MakeSpan(startPos, body.SpanVal.End),
		Selector: sel,
		Body:     body,
	}
}

// parseSelector parses a method selector: one name or keyword parts.
func (p *Parser) parseSelector() *Selector {
	startPos := p.curToken.Pos

	switch {
	case p.curTokenIs(TokenIdentifier):
		name := p.curToken.Literal
		p.nextToken()
		return &Selector{SpanVal: MakeSpan(startPos, p.curToken.Pos), Unary: name}

	case p.curTokenIs(TokenKeyword):
		var parts []string
		for p.curTokenIs(TokenKeyword) {
			parts = append(parts, p.curToken.Literal)
			p.nextToken()
		}
		return &Selector{SpanVal: MakeSpan(startPos, p.curToken.Pos), Parts: parts}

	default:
		p.unexpected("method selector")
		return nil
	}
}

// ---------------------------------------------------------------------------
// Blocks
// ---------------------------------------------------------------------------

// parseBlock parses "[" (":" param)* "|" (target ":=" expr ".")* "]".
func (p *Parser) parseBlock() *Block {
	startPos := p.curToken.Pos
	p.nextToken() // consume [

	var params []*BlockParam
	for p.curTokenIs(TokenBlockParam) {
		params = append(params, &BlockParam{
			SpanVal: MakeSpan(p.curToken.Pos, p.curToken.Pos),
			Name:    strings.TrimPrefix(p.curToken.Literal, ":"),
		})
		p.nextToken()
	}

	if !p.expect(TokenBar) {
		return nil
	}

	var stmts []*Assignment
	for p.curTokenIs(TokenIdentifier) {
		stmt := p.parseAssignment()
		if stmt == nil {
			return nil
		}
		stmts = append(stmts, stmt)
	}

	endPos := p.curToken.Pos
	if !p.expect(TokenRBracket) {
		return nil
	}

	return &Block{
		SpanVal:    MakeSpan(startPos, endPos),
		Parameters: params,
		Statements: stmts,
	}
}

// parseAssignment parses target ":=" expr ".".
func (p *Parser) parseAssignment() *Assignment {
	startPos := p.curToken.Pos
	target := p.curToken.Literal
	p.nextToken()

	if !p.expect(TokenAssign) {
		return nil
	}

	value := p.parseExpr()
	if value == nil {
		return nil
	}

	endPos := p.curToken.Pos
	if !p.expect(TokenPeriod) {
		return nil
	}

	return &Assignment{
		SpanVal: MakeSpan(startPos, endPos),
		Target:  target,
		Value:   value,
	}
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// parseExpr parses a primary followed by at most one message.
func (p *Parser) parseExpr() *Expr {
	startPos := p.curToken.Pos

	receiver := p.parsePrimary()
	if receiver == nil {
		return nil
	}

	expr := &Expr{Receiver: receiver}

	switch {
	case p.curTokenIs(TokenIdentifier):
		expr.Unary = p.curToken.Literal
		expr.UnaryPos = p.curToken.Pos
		p.nextToken()

	case p.curTokenIs(TokenKeyword):
		for p.curTokenIs(TokenKeyword) {
			kwPos := p.curToken.Pos
			keyword := p.curToken.Literal
			p.nextToken()

			arg := p.parsePrimary()
			if arg == nil {
				return nil
			}
			expr.Keywords = append(expr.Keywords, &KeywordArg{
				SpanVal: MakeSpan(kwPos, arg.Span().End),
				Keyword: keyword,
				Arg:     arg,
			})
		}
	}

	expr.SpanVal = MakeSpan(startPos, p.curToken.Pos)
	return expr
}

// parsePrimary parses a primary expression.
func (p *Parser) parsePrimary() Primary {
	pos := p.curToken.Pos
	lit := p.curToken.Literal

	switch p.curToken.Type {
	case TokenInteger:
		p.nextToken()
		return &IntegerLiteral{SpanVal: MakeSpan(pos, p.curToken.Pos), Text: lit}

	case TokenString:
		p.nextToken()
		return &StringLiteral{SpanVal: MakeSpan(pos, p.curToken.Pos), Text: lit}

	case TokenIdentifier:
		p.nextToken()
		return &Identifier{SpanVal: MakeSpan(pos, p.curToken.Pos), Name: lit}

	case TokenClassName:
		p.nextToken()
		return &ClassRef{SpanVal: MakeSpan(pos, p.curToken.Pos), Name: lit}

	case TokenLBracket:
		block := p.parseBlock()
		if block == nil {
			return nil
		}
		return block

	case TokenLParen:
		return p.parseParenExpr()

	default:
		p.unexpected("expression")
		return nil
	}
}

// parseParenExpr parses "(" expr ")".
func (p *Parser) parseParenExpr() Primary {
	pos := p.curToken.Pos
	p.nextToken() // consume (

	inner := p.parseExpr()
	if inner == nil {
		return nil
	}

	endPos := p.curToken.Pos
	if !p.expect(TokenRParen) {
		return nil
	}

	return &ParenExpr{SpanVal: MakeSpan(pos, endPos), Inner: inner}
}
