// Package parser implements the Axiom parser using Pratt parsing.
//
// Key patterns:
//   - Single-token lookahead via curToken/peekToken, which also covers the
//     two-token peek the assignment rule needs at statement start
//   - Structured errors accumulated in a list; parsing continues where a
//     sensible recovery point exists
//   - Macro syntax xs.exists(n, body) is recognized at the postfix dot, so
//     lambdas are only ever built in macro-argument position
package parser

import (
	"github.com/cognisivelabs/go-axiom/internal/ast"
	axerrors "github.com/cognisivelabs/go-axiom/internal/errors"
	"github.com/cognisivelabs/go-axiom/internal/lexer"
	"github.com/cognisivelabs/go-axiom/internal/types"
)

// Precedence levels for operators (lowest to highest).
const (
	_ int = iota
	LOWEST
	OR          // ||
	AND         // &&
	EQUALS      // == !=
	LESSGREATER // < > <= >= in
	SUM         // + -
	PRODUCT     // * /
	PREFIX      // -x, !x
	CALL        // callee(args), obj.prop
)

// precedences maps token types to their precedence levels.
var precedences = map[lexer.TokenType]int{
	lexer.OR:         OR,
	lexer.AND:        AND,
	lexer.EQ_EQ:      EQUALS,
	lexer.BANG_EQ:    EQUALS,
	lexer.GREATER:    LESSGREATER,
	lexer.GREATER_EQ: LESSGREATER,
	lexer.LESS:       LESSGREATER,
	lexer.LESS_EQ:    LESSGREATER,
	lexer.IN:         LESSGREATER,
	lexer.PLUS:       SUM,
	lexer.MINUS:      SUM,
	lexer.MULT:       PRODUCT,
	lexer.DIV:        PRODUCT,
	lexer.LPAREN:     CALL,
	lexer.DOT:        CALL,
}

// prefixParseFn parses prefix expressions (literals, unary ops, grouping).
type prefixParseFn func() ast.Expression

// infixParseFn parses infix expressions (binary ops, calls, member access).
type infixParseFn func(ast.Expression) ast.Expression

// Parser parses a token stream into an Axiom AST.
type Parser struct {
	l              *lexer.Lexer
	prefixParseFns map[lexer.TokenType]prefixParseFn
	infixParseFns  map[lexer.TokenType]infixParseFn
	errors         []*axerrors.Error
	curToken       lexer.Token
	peekToken      lexer.Token
}

// New creates a new Parser reading from the given lexer.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixParseFns = map[lexer.TokenType]prefixParseFn{
		lexer.IDENT:    p.parseIdentifier,
		lexer.NUMBER:   p.parseIntegerLiteral,
		lexer.STRING:   p.parseStringLiteral,
		lexer.TRUE:     p.parseBooleanLiteral,
		lexer.FALSE:    p.parseBooleanLiteral,
		lexer.BANG:     p.parseUnaryExpression,
		lexer.MINUS:    p.parseUnaryExpression,
		lexer.LPAREN:   p.parseGroupedExpression,
		lexer.LBRACKET: p.parseListLiteral,
		lexer.LBRACE:   p.parseObjectLiteral,
	}

	p.infixParseFns = map[lexer.TokenType]infixParseFn{
		lexer.PLUS:       p.parseBinaryExpression,
		lexer.MINUS:      p.parseBinaryExpression,
		lexer.MULT:       p.parseBinaryExpression,
		lexer.DIV:        p.parseBinaryExpression,
		lexer.EQ_EQ:      p.parseBinaryExpression,
		lexer.BANG_EQ:    p.parseBinaryExpression,
		lexer.GREATER:    p.parseBinaryExpression,
		lexer.GREATER_EQ: p.parseBinaryExpression,
		lexer.LESS:       p.parseBinaryExpression,
		lexer.LESS_EQ:    p.parseBinaryExpression,
		lexer.AND:        p.parseBinaryExpression,
		lexer.OR:         p.parseBinaryExpression,
		lexer.IN:         p.parseBinaryExpression,
		lexer.LPAREN:     p.parseCallExpression,
		lexer.DOT:        p.parseMemberOrMacro,
	}

	// Prime curToken and peekToken
	p.nextToken()
	p.nextToken()

	return p
}

// Errors returns all accumulated parse errors, including errors the lexer
// reported while tokenizing.
func (p *Parser) Errors() []*axerrors.Error {
	errs := make([]*axerrors.Error, 0, len(p.errors)+len(p.l.Errors()))
	for _, le := range p.l.Errors() {
		errs = append(errs, axerrors.NewSyntax(le.Pos.Line, "%s", le.Message))
	}
	errs = append(errs, p.errors...)
	return errs
}

// nextToken advances both token cursors.
func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t lexer.TokenType) bool {
	return p.peekToken.Type == t
}

// expectPeek advances when the next token matches; otherwise it records an
// error and returns false.
func (p *Parser) expectPeek(t lexer.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.addErrorAt(p.peekToken, "expected %s, got %s", t, describeToken(p.peekToken))
	return false
}

// addErrorAt records a syntax error anchored to the given token.
func (p *Parser) addErrorAt(tok lexer.Token, format string, args ...any) {
	err := axerrors.NewSyntax(tok.Pos.Line, format, args...)
	p.errors = append(p.errors, err)
}

// describeToken renders a token for error messages.
func describeToken(tok lexer.Token) string {
	switch tok.Type {
	case lexer.EOF:
		return "end of input"
	case lexer.STRING:
		return "\"" + tok.Literal + "\""
	default:
		return "'" + tok.Literal + "'"
	}
}

// peekPrecedence returns the precedence of the next token.
func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// curPrecedence returns the precedence of the current token.
func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// ParseProgram parses the whole token stream into a Program. Check
// Errors() afterwards; the returned AST is only meaningful when the error
// list is empty.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{Statements: []ast.Statement{}}

	for !p.curTokenIs(lexer.EOF) {
		// Illegal tokens already produced a lexer error; skip them so one
		// bad character does not cascade.
		if p.curTokenIs(lexer.ILLEGAL) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	return program
}

// parseStatement dispatches on the current token. The assignment rule
// needs the two-token peek: IDENT followed by '='.
func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case lexer.LET:
		return p.parseVarDeclStatement()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.LBRACE:
		return p.parseBlockStatement()
	case lexer.IDENT:
		if p.peekTokenIs(lexer.EQUALS) {
			return p.parseAssignStatement()
		}
		return p.parseExpressionStatement()
	default:
		return p.parseExpressionStatement()
	}
}

// parseVarDeclStatement parses: 'let' IDENT ':' typeAnno '=' expression ';'
func (p *Parser) parseVarDeclStatement() ast.Statement {
	stmt := &ast.VarDeclStatement{Token: p.curToken}

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}

	if !p.expectPeek(lexer.COLON) {
		return nil
	}

	annotation := p.parseTypeAnnotation()
	if annotation == nil {
		return nil
	}
	stmt.Annotation = annotation

	if !p.expectPeek(lexer.EQUALS) {
		return nil
	}

	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}

	if !p.expectPeek(lexer.SEMICOLON) {
		return nil
	}

	return stmt
}

// parseTypeAnnotation parses: ('int'|'string'|'bool'|'date') ('[' ']')?
// On entry the current token is the colon; on exit it is the last token of
// the annotation.
func (p *Parser) parseTypeAnnotation() types.Type {
	p.nextToken()

	if !p.curToken.IsTypeKeyword() {
		p.addErrorAt(p.curToken, "expected type name, got %s", describeToken(p.curToken))
		return nil
	}

	var base types.Type
	switch p.curToken.Type {
	case lexer.TYPE_INT:
		base = types.Int
	case lexer.TYPE_STRING:
		base = types.String
	case lexer.TYPE_BOOL:
		base = types.Bool
	case lexer.TYPE_DATE:
		base = types.Date
	}

	if p.peekTokenIs(lexer.LBRACKET) {
		p.nextToken()
		if !p.expectPeek(lexer.RBRACKET) {
			return nil
		}
		return types.NewList(base)
	}

	return base
}

// parseAssignStatement parses: IDENT '=' expression ';'
func (p *Parser) parseAssignStatement() ast.Statement {
	stmt := &ast.AssignStatement{
		Token: p.curToken,
		Name:  &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal},
	}

	p.nextToken() // '='
	p.nextToken() // first token of the value

	stmt.Value = p.parseExpression(LOWEST)
	if stmt.Value == nil {
		return nil
	}

	if !p.expectPeek(lexer.SEMICOLON) {
		return nil
	}

	return stmt
}

// parseIfStatement parses: 'if' '(' expression ')' statement ('else' statement)?
func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}

	if !p.expectPeek(lexer.LPAREN) {
		return nil
	}

	p.nextToken()
	stmt.Condition = p.parseExpression(LOWEST)
	if stmt.Condition == nil {
		return nil
	}

	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}

	p.nextToken()
	stmt.Consequence = p.parseStatement()
	if stmt.Consequence == nil {
		return nil
	}

	if p.peekTokenIs(lexer.ELSE) {
		p.nextToken()
		p.nextToken()
		stmt.Alternative = p.parseStatement()
		if stmt.Alternative == nil {
			return nil
		}
	}

	return stmt
}

// parseBlockStatement parses: '{' statement* '}'
func (p *Parser) parseBlockStatement() ast.Statement {
	block := &ast.BlockStatement{Token: p.curToken}

	p.nextToken()
	for !p.curTokenIs(lexer.RBRACE) {
		if p.curTokenIs(lexer.EOF) {
			p.addErrorAt(p.curToken, "unterminated block, expected '}'")
			return nil
		}
		if p.curTokenIs(lexer.ILLEGAL) {
			p.nextToken()
			continue
		}
		stmt := p.parseStatement()
		if stmt == nil {
			return nil
		}
		block.Statements = append(block.Statements, stmt)
		p.nextToken()
	}

	return block
}

// parseExpressionStatement parses an expression in statement position.
// The trailing semicolon is optional only when the statement is last in
// its enclosing block or program, i.e. the next token is '}' or EOF.
func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}

	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil {
		return nil
	}

	if p.peekTokenIs(lexer.SEMICOLON) {
		p.nextToken()
		return stmt
	}
	if p.peekTokenIs(lexer.RBRACE) || p.peekTokenIs(lexer.EOF) {
		return stmt
	}

	p.addErrorAt(p.peekToken, "expected ';' after expression, got %s", describeToken(p.peekToken))
	return nil
}
