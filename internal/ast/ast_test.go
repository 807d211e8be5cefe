package ast

import (
	"testing"

	"github.com/cognisivelabs/go-axiom/internal/lexer"
	"github.com/cognisivelabs/go-axiom/internal/types"
)

func ident(name string) *Identifier {
	return &Identifier{
		Token: lexer.NewToken(lexer.IDENT, name, lexer.Position{Line: 1, Column: 1}),
		Value: name,
	}
}

func TestVarDeclString(t *testing.T) {
	stmt := &VarDeclStatement{
		Token:      lexer.NewToken(lexer.LET, "let", lexer.Position{Line: 1, Column: 1}),
		Name:       ident("d"),
		Annotation: types.Int,
		Value: &IntegerLiteral{
			Token: lexer.NewToken(lexer.NUMBER, "0", lexer.Position{Line: 1, Column: 14}),
			Value: 0,
		},
	}

	if got := stmt.String(); got != "let d: int = 0;" {
		t.Errorf("String() = %q", got)
	}
}

func TestIfStatementString(t *testing.T) {
	stmt := &IfStatement{
		Token:     lexer.NewToken(lexer.IF, "if", lexer.Position{Line: 1, Column: 1}),
		Condition: ident("is_vip"),
		Consequence: &AssignStatement{
			Token: lexer.NewToken(lexer.IDENT, "d", lexer.Position{Line: 1, Column: 10}),
			Name:  ident("d"),
			Value: &IntegerLiteral{Token: lexer.NewToken(lexer.NUMBER, "50", lexer.Position{}), Value: 50},
		},
	}

	if got := stmt.String(); got != "if (is_vip) d = 50;" {
		t.Errorf("String() = %q", got)
	}
}

func TestProgramString(t *testing.T) {
	program := &Program{
		Statements: []Statement{
			&ExpressionStatement{
				Token:      lexer.NewToken(lexer.NUMBER, "1", lexer.Position{Line: 1, Column: 1}),
				Expression: &IntegerLiteral{Token: lexer.NewToken(lexer.NUMBER, "1", lexer.Position{}), Value: 1},
			},
		},
	}

	if got := program.String(); got != "1" {
		t.Errorf("String() = %q", got)
	}
	if program.Pos().Line != 1 {
		t.Errorf("Pos().Line = %d", program.Pos().Line)
	}
}

func TestEmptyProgramPos(t *testing.T) {
	program := &Program{}
	if program.Pos().Line != 1 {
		t.Errorf("empty program should report line 1, got %d", program.Pos().Line)
	}
	if program.TokenLiteral() != "" {
		t.Errorf("empty program token literal should be empty")
	}
}

func TestObjectLiteralString(t *testing.T) {
	obj := &ObjectLiteral{
		Token: lexer.NewToken(lexer.LBRACE, "{", lexer.Position{}),
		Fields: []ObjectField{
			{Key: "city", Value: &StringLiteral{Token: lexer.NewToken(lexer.STRING, "X", lexer.Position{}), Value: "X"}},
			{Key: "n", Value: &IntegerLiteral{Token: lexer.NewToken(lexer.NUMBER, "1", lexer.Position{}), Value: 1}},
		},
	}

	if got := obj.String(); got != `{city: "X", n: 1}` {
		t.Errorf("String() = %q", got)
	}
}
