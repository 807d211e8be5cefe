package parser

import (
	"strconv"

	"github.com/cognisivelabs/go-axiom/internal/ast"
	"github.com/cognisivelabs/go-axiom/internal/lexer"
)

// parseExpression is the Pratt core: parse a prefix expression, then fold
// infix operators while the next token binds tighter than precedence.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.addErrorAt(p.curToken, "unexpected token %s", describeToken(p.curToken))
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}

	for !p.peekTokenIs(lexer.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}

	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addErrorAt(p.curToken, "could not parse %q as integer", p.curToken.Literal)
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Literal}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(lexer.TRUE)}
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	expr := &ast.UnaryExpression{
		Token:    p.curToken,
		Operator: p.curToken.Literal,
	}

	p.nextToken()
	expr.Operand = p.parseExpression(PREFIX)
	if expr.Operand == nil {
		return nil
	}

	return expr
}

// parseBinaryExpression handles all left-associative binary operators,
// including 'in'.
func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	expr := &ast.BinaryExpression{
		Token:    p.curToken,
		Left:     left,
		Operator: p.curToken.Literal,
	}

	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	if expr.Right == nil {
		return nil
	}

	return expr
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()

	expr := p.parseExpression(LOWEST)
	if expr == nil {
		return nil
	}

	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}

	return expr
}

// parseListLiteral parses: '[' (expression (',' expression)*)? ']'
func (p *Parser) parseListLiteral() ast.Expression {
	list := &ast.ListLiteral{Token: p.curToken}

	if p.peekTokenIs(lexer.RBRACKET) {
		p.nextToken()
		return list
	}

	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}
	list.Elements = append(list.Elements, first)

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		elem := p.parseExpression(LOWEST)
		if elem == nil {
			return nil
		}
		list.Elements = append(list.Elements, elem)
	}

	if !p.expectPeek(lexer.RBRACKET) {
		return nil
	}

	return list
}

// parseObjectLiteral parses: '{' (IDENT ':' expression (',' ...)*)? '}'
// Object literals only occur in expression position; a '{' in statement
// position is a block.
func (p *Parser) parseObjectLiteral() ast.Expression {
	obj := &ast.ObjectLiteral{Token: p.curToken}

	if p.peekTokenIs(lexer.RBRACE) {
		p.nextToken()
		return obj
	}

	for {
		if !p.expectPeek(lexer.IDENT) {
			return nil
		}
		key := p.curToken.Literal

		if !p.expectPeek(lexer.COLON) {
			return nil
		}

		p.nextToken()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		obj.Fields = append(obj.Fields, ast.ObjectField{Key: key, Value: value})

		if !p.peekTokenIs(lexer.COMMA) {
			break
		}
		p.nextToken()
	}

	if !p.expectPeek(lexer.RBRACE) {
		return nil
	}

	return obj
}

// parseCallExpression parses: callee '(' args? ')'. Macro calls never
// arrive here; the dot handler consumes their argument list itself.
func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	call := &ast.CallExpression{Token: p.curToken, Callee: callee}

	if p.peekTokenIs(lexer.RPAREN) {
		p.nextToken()
		return call
	}

	p.nextToken()
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}
	call.Arguments = append(call.Arguments, first)

	for p.peekTokenIs(lexer.COMMA) {
		p.nextToken()
		p.nextToken()
		arg := p.parseExpression(LOWEST)
		if arg == nil {
			return nil
		}
		call.Arguments = append(call.Arguments, arg)
	}

	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}

	return call
}

// parseMemberOrMacro parses the postfix dot: a plain member access, or the
// macro form expr.name(param, body) whose argument becomes a lambda.
func (p *Parser) parseMemberOrMacro(left ast.Expression) ast.Expression {
	dotToken := p.curToken

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}

	member := &ast.MemberExpression{
		Token:    dotToken,
		Object:   left,
		Property: p.curToken.Literal,
	}

	if !p.peekTokenIs(lexer.LPAREN) {
		return member
	}

	// Macro form: '(' IDENT ',' expression ')'
	p.nextToken() // '('
	callToken := p.curToken

	if !p.expectPeek(lexer.IDENT) {
		return nil
	}
	lambda := &ast.LambdaExpression{Token: p.curToken, Param: p.curToken.Literal}

	if !p.expectPeek(lexer.COMMA) {
		return nil
	}

	p.nextToken()
	lambda.Body = p.parseExpression(LOWEST)
	if lambda.Body == nil {
		return nil
	}

	if !p.expectPeek(lexer.RPAREN) {
		return nil
	}

	return &ast.CallExpression{
		Token:     callToken,
		Callee:    member,
		Arguments: []ast.Expression{lambda},
	}
}
