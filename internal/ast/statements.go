package ast

import (
	"bytes"

	"github.com/cognisivelabs/go-axiom/internal/lexer"
	"github.com/cognisivelabs/go-axiom/internal/types"
)

// VarDeclStatement represents a variable declaration:
//
//	let discount: int = 0;
//
// The annotation is mandatory and restricted to primitive types and lists
// of primitives by the grammar.
type VarDeclStatement struct {
	Token      lexer.Token // The LET token
	Name       *Identifier
	Annotation types.Type
	Value      Expression
}

func (vd *VarDeclStatement) statementNode()       {}
func (vd *VarDeclStatement) TokenLiteral() string { return vd.Token.Literal }
func (vd *VarDeclStatement) Pos() lexer.Position  { return vd.Token.Pos }
func (vd *VarDeclStatement) String() string {
	var out bytes.Buffer
	out.WriteString("let ")
	out.WriteString(vd.Name.String())
	out.WriteString(": ")
	out.WriteString(vd.Annotation.String())
	out.WriteString(" = ")
	out.WriteString(vd.Value.String())
	out.WriteString(";")
	return out.String()
}

// AssignStatement represents assignment to an existing binding:
//
//	discount = 50;
type AssignStatement struct {
	Token lexer.Token // The IDENT token of the target
	Name  *Identifier
	Value Expression
}

func (as *AssignStatement) statementNode()       {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignStatement) Pos() lexer.Position  { return as.Token.Pos }
func (as *AssignStatement) String() string {
	return as.Name.String() + " = " + as.Value.String() + ";"
}

// IfStatement represents a conditional with an optional else branch.
type IfStatement struct {
	Token       lexer.Token // The IF token
	Condition   Expression
	Consequence Statement
	Alternative Statement // nil when no else branch
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) Pos() lexer.Position  { return is.Token.Pos }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(is.Condition.String())
	out.WriteString(") ")
	out.WriteString(is.Consequence.String())
	if is.Alternative != nil {
		out.WriteString(" else ")
		out.WriteString(is.Alternative.String())
	}
	return out.String()
}

// BlockStatement represents a braced statement sequence. Blocks introduce
// a new lexical scope.
type BlockStatement struct {
	Token      lexer.Token // The LBRACE token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()       {}
func (bs *BlockStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BlockStatement) Pos() lexer.Position  { return bs.Token.Pos }
func (bs *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{ ")
	for _, stmt := range bs.Statements {
		out.WriteString(stmt.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

// ExpressionStatement wraps an expression in statement position. The value
// of the last expression statement of a program is the rule's result.
type ExpressionStatement struct {
	Token      lexer.Token // The first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) Pos() lexer.Position  { return es.Token.Pos }
func (es *ExpressionStatement) String() string {
	if es.Expression != nil {
		return es.Expression.String()
	}
	return ""
}
