// Package ast defines the Abstract Syntax Tree node types for Axiom rules.
package ast

import (
	"bytes"
	"strings"

	"github.com/cognisivelabs/go-axiom/internal/lexer"
)

// Node is the base interface for all AST nodes.
// Every node must provide its token literal, a string representation for
// debugging, and position information for error reporting.
type Node interface {
	// TokenLiteral returns the literal value of the token this node is
	// associated with.
	TokenLiteral() string

	// String returns a string representation of the node for debugging
	// and testing.
	String() string

	// Pos returns the position of the node in the source code.
	Pos() lexer.Position
}

// Expression represents any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement represents a node that performs an action.
type Statement interface {
	Node
	statementNode()
}

// Program is the root node of the AST. It contains the top-level
// statements of a rule in source order. A Program is immutable after
// parsing and may be shared across concurrent executions.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, stmt := range p.Statements {
		out.WriteString(stmt.String())
	}
	return out.String()
}

func (p *Program) Pos() lexer.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1, Offset: 0}
}

// Identifier represents a variable reference.
type Identifier struct {
	Token lexer.Token // The IDENT token
	Value string      // The identifier name
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }
func (i *Identifier) Pos() lexer.Position  { return i.Token.Pos }

// IntegerLiteral represents an integer literal value.
type IntegerLiteral struct {
	Token lexer.Token // The NUMBER token
	Value int64
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) String() string       { return il.Token.Literal }
func (il *IntegerLiteral) Pos() lexer.Position  { return il.Token.Pos }

// StringLiteral represents a string literal value.
type StringLiteral struct {
	Token lexer.Token // The STRING token
	Value string      // The contents without quotes
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) String() string       { return "\"" + sl.Value + "\"" }
func (sl *StringLiteral) Pos() lexer.Position  { return sl.Token.Pos }

// BooleanLiteral represents true or false.
type BooleanLiteral struct {
	Token lexer.Token // The TRUE or FALSE token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) String() string       { return bl.Token.Literal }
func (bl *BooleanLiteral) Pos() lexer.Position  { return bl.Token.Pos }

// UnaryExpression represents a prefix operation: !x or -x.
type UnaryExpression struct {
	Token    lexer.Token // The operator token
	Operator string
	Operand  Expression
}

func (ue *UnaryExpression) expressionNode()      {}
func (ue *UnaryExpression) TokenLiteral() string { return ue.Token.Literal }
func (ue *UnaryExpression) Pos() lexer.Position  { return ue.Token.Pos }
func (ue *UnaryExpression) String() string {
	return "(" + ue.Operator + ue.Operand.String() + ")"
}

// BinaryExpression represents a binary operation: a + b, x < y, s in xs.
type BinaryExpression struct {
	Token    lexer.Token // The operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) TokenLiteral() string { return be.Token.Literal }
func (be *BinaryExpression) Pos() lexer.Position  { return be.Token.Pos }
func (be *BinaryExpression) String() string {
	return "(" + be.Left.String() + " " + be.Operator + " " + be.Right.String() + ")"
}

// MemberExpression represents property access: object.property.
type MemberExpression struct {
	Token    lexer.Token // The DOT token
	Object   Expression
	Property string
}

func (me *MemberExpression) expressionNode()      {}
func (me *MemberExpression) TokenLiteral() string { return me.Token.Literal }
func (me *MemberExpression) Pos() lexer.Position  { return me.Token.Pos }
func (me *MemberExpression) String() string {
	return "(" + me.Object.String() + "." + me.Property + ")"
}

// ListLiteral represents a list literal: [1, 2, 3].
type ListLiteral struct {
	Token    lexer.Token // The LBRACKET token
	Elements []Expression
}

func (ll *ListLiteral) expressionNode()      {}
func (ll *ListLiteral) TokenLiteral() string { return ll.Token.Literal }
func (ll *ListLiteral) Pos() lexer.Position  { return ll.Token.Pos }
func (ll *ListLiteral) String() string {
	elems := make([]string, len(ll.Elements))
	for i, e := range ll.Elements {
		elems[i] = e.String()
	}
	return "[" + strings.Join(elems, ", ") + "]"
}

// ObjectField is a single key/value pair of an object literal.
// Field order follows source order.
type ObjectField struct {
	Key   string
	Value Expression
}

// ObjectLiteral represents an object literal: {city: "X", zip: "Y"}.
type ObjectLiteral struct {
	Token  lexer.Token // The LBRACE token
	Fields []ObjectField
}

func (ol *ObjectLiteral) expressionNode()      {}
func (ol *ObjectLiteral) TokenLiteral() string { return ol.Token.Literal }
func (ol *ObjectLiteral) Pos() lexer.Position  { return ol.Token.Pos }
func (ol *ObjectLiteral) String() string {
	fields := make([]string, len(ol.Fields))
	for i, f := range ol.Fields {
		fields[i] = f.Key + ": " + f.Value.String()
	}
	return "{" + strings.Join(fields, ", ") + "}"
}

// CallExpression represents a function or macro call. Built-in calls have
// an *Identifier callee (has, startsWith, ...); macro calls have a
// *MemberExpression callee whose single argument is a *LambdaExpression.
type CallExpression struct {
	Token     lexer.Token // The LPAREN token
	Callee    Expression
	Arguments []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) Pos() lexer.Position  { return ce.Token.Pos }
func (ce *CallExpression) String() string {
	args := make([]string, len(ce.Arguments))
	for i, a := range ce.Arguments {
		args[i] = a.String()
	}
	return ce.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// LambdaExpression represents the parameter/body pair of a macro argument:
// xs.exists(n, n > 0). Lambdas are not first-class values; they only ever
// appear as the argument of a macro call.
type LambdaExpression struct {
	Token lexer.Token // The parameter's IDENT token
	Param string
	Body  Expression
}

func (le *LambdaExpression) expressionNode()      {}
func (le *LambdaExpression) TokenLiteral() string { return le.Token.Literal }
func (le *LambdaExpression) Pos() lexer.Position  { return le.Token.Pos }
func (le *LambdaExpression) String() string {
	return le.Param + ", " + le.Body.String()
}
