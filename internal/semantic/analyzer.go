// Package semantic implements the Axiom type checker. The Analyzer walks
// the AST once, left to right, inferring expression types bottom-up and
// validating statements against a contract-seeded environment.
package semantic

import (
	"github.com/cognisivelabs/go-axiom/internal/ast"
	"github.com/cognisivelabs/go-axiom/internal/contract"
	axerrors "github.com/cognisivelabs/go-axiom/internal/errors"
	"github.com/cognisivelabs/go-axiom/internal/types"
)

// Analyzer performs semantic analysis on an Axiom program. It validates
// types, rejects undefined and duplicate variables, and checks the rule's
// result type against the contract's declared output.
type Analyzer struct {
	symbols  *SymbolTable
	contract *contract.Contract
}

// NewAnalyzer creates an analyzer for the given contract. The contract's
// inputs seed the global scope.
func NewAnalyzer(c *contract.Contract) *Analyzer {
	if c == nil {
		c = contract.Empty
	}
	a := &Analyzer{symbols: NewSymbolTable(), contract: c}
	for _, in := range c.Inputs {
		a.symbols.Define(in.Name, in.Type)
	}
	return a
}

// Analyze checks the program and returns the inferred result type: the
// type of the final expression statement, or nil when the program does not
// end in one. The first violation aborts the pass.
func (a *Analyzer) Analyze(program *ast.Program) (types.Type, error) {
	var resultType types.Type

	for i, stmt := range program.Statements {
		t, err := a.checkStatement(stmt)
		if err != nil {
			return nil, err
		}
		if i == len(program.Statements)-1 {
			if _, ok := stmt.(*ast.ExpressionStatement); ok {
				resultType = t
			}
		}
	}

	if a.contract.Outputs != nil {
		if resultType == nil {
			return nil, axerrors.NewType("script does not end with an expression, cannot validate return type %s", a.contract.Outputs)
		}
		if err := validateOutput(resultType, a.contract.Outputs); err != nil {
			return nil, err
		}
	}

	return resultType, nil
}

// checkStatement validates a statement and returns the type of its
// expression when it has one.
func (a *Analyzer) checkStatement(stmt ast.Statement) (types.Type, error) {
	switch s := stmt.(type) {
	case *ast.VarDeclStatement:
		return nil, a.checkVarDecl(s)
	case *ast.AssignStatement:
		return nil, a.checkAssign(s)
	case *ast.IfStatement:
		return nil, a.checkIf(s)
	case *ast.BlockStatement:
		return nil, a.checkBlock(s)
	case *ast.ExpressionStatement:
		return a.checkExpression(s.Expression)
	default:
		return nil, axerrors.NewType("unsupported statement %T", stmt)
	}
}

func (a *Analyzer) checkVarDecl(s *ast.VarDeclStatement) error {
	initType, err := a.checkExpression(s.Value)
	if err != nil {
		return err
	}
	if !types.Equal(initType, s.Annotation) {
		return axerrors.NewType("type mismatch in declaration of '%s': annotated %s, got %s",
			s.Name.Value, s.Annotation, initType)
	}
	if _, exists := a.symbols.Resolve(s.Name.Value); exists {
		return axerrors.NewType("variable '%s' is already declared", s.Name.Value)
	}
	a.symbols.Define(s.Name.Value, s.Annotation)
	return nil
}

func (a *Analyzer) checkAssign(s *ast.AssignStatement) error {
	sym, ok := a.symbols.Resolve(s.Name.Value)
	if !ok {
		return axerrors.NewType("Undefined variable '%s'", s.Name.Value)
	}
	valueType, err := a.checkExpression(s.Value)
	if err != nil {
		return err
	}
	if !types.Equal(valueType, sym.Type) {
		return axerrors.NewType("type mismatch in assignment to '%s': expected %s, got %s",
			s.Name.Value, sym.Type, valueType)
	}
	return nil
}

func (a *Analyzer) checkIf(s *ast.IfStatement) error {
	condType, err := a.checkExpression(s.Condition)
	if err != nil {
		return err
	}
	if !types.Equal(condType, types.Bool) {
		return axerrors.NewType("if condition must be bool, got %s", condType)
	}
	if _, err := a.checkStatement(s.Consequence); err != nil {
		return err
	}
	if s.Alternative != nil {
		if _, err := a.checkStatement(s.Alternative); err != nil {
			return err
		}
	}
	return nil
}

// checkBlock checks a block in a fresh enclosed scope. Declarations inside
// the block do not survive it.
func (a *Analyzer) checkBlock(s *ast.BlockStatement) error {
	a.symbols = NewEnclosedSymbolTable(a.symbols)
	defer func() { a.symbols = a.symbols.Outer() }()

	for _, stmt := range s.Statements {
		if _, err := a.checkStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// validateOutput checks the inferred result type against the contract's
// declared output. Object targets are validated property-by-property so
// the error names the first offending key; an object target with zero
// declared properties accepts any object.
func validateOutput(actual, expected types.Type) error {
	expObj, expIsObj := types.IsObject(expected)
	if !expIsObj {
		if !types.Equal(actual, expected) {
			return axerrors.NewType("Return type mismatch: expected %s, got %s", expected, actual)
		}
		return nil
	}

	actObj, actIsObj := types.IsObject(actual)
	if !actIsObj {
		return axerrors.NewType("Return type mismatch: expected %s, got %s", expected, actual)
	}
	if len(expObj.Properties) == 0 {
		return nil // permissive "any object" target
	}

	for _, p := range expObj.Properties {
		actualProp, found := actObj.Lookup(p.Name)
		if !found {
			return axerrors.NewType("Return type mismatch: missing property '%s' of type %s", p.Name, p.Type)
		}
		if _, ok := types.IsObject(p.Type); ok {
			if err := validateOutput(actualProp, p.Type); err != nil {
				return err
			}
			continue
		}
		if !types.Equal(actualProp, p.Type) {
			return axerrors.NewType("Return type mismatch for property '%s': expected %s, got %s",
				p.Name, p.Type, actualProp)
		}
	}
	return nil
}
