package semantic

import (
	"github.com/cognisivelabs/go-axiom/internal/ast"
	axerrors "github.com/cognisivelabs/go-axiom/internal/errors"
	"github.com/cognisivelabs/go-axiom/internal/types"
)

// builtinSignature describes a fixed-arity built-in function.
type builtinSignature struct {
	params []types.Type
	result types.Type
}

// builtins maps built-in function names to their signatures. timestamp is
// the only built-in that produces a date value; parse failures surface at
// runtime, not here.
var builtins = map[string]builtinSignature{
	"startsWith": {params: []types.Type{types.String, types.String}, result: types.Bool},
	"endsWith":   {params: []types.Type{types.String, types.String}, result: types.Bool},
	"contains":   {params: []types.Type{types.String, types.String}, result: types.Bool},
	"length":     {params: []types.Type{types.String}, result: types.Int},
	"timestamp":  {params: []types.Type{types.String}, result: types.Date},
}

// checkCall dispatches call expressions: has(...), the list macros, and
// the built-in function table.
func (a *Analyzer) checkCall(e *ast.CallExpression) (types.Type, error) {
	switch callee := e.Callee.(type) {
	case *ast.Identifier:
		if callee.Value == "has" {
			return a.checkHas(e)
		}
		return a.checkBuiltin(callee.Value, e)
	case *ast.MemberExpression:
		return a.checkMacro(callee, e)
	default:
		return nil, axerrors.NewType("expression is not callable")
	}
}

// checkHas validates has(e): the argument must be a property access whose
// root is a bound variable. Intermediate property existence is a dynamic
// question, so it is not checked here.
func (a *Analyzer) checkHas(e *ast.CallExpression) (types.Type, error) {
	if len(e.Arguments) != 1 {
		return nil, axerrors.NewType("has() expects exactly one argument, got %d", len(e.Arguments))
	}

	member, ok := e.Arguments[0].(*ast.MemberExpression)
	if !ok {
		return nil, axerrors.NewType("has() requires a property access argument, e.g. has(user.name)")
	}

	root := chainRoot(member)
	if root == nil {
		return nil, axerrors.NewType("has() requires a property access rooted at a variable")
	}
	if _, bound := a.symbols.Resolve(root.Value); !bound {
		return nil, axerrors.NewType("Undefined variable '%s'", root.Value)
	}

	return types.Bool, nil
}

// chainRoot walks a member chain to its root identifier, nil when the
// chain is rooted in something else.
func chainRoot(member *ast.MemberExpression) *ast.Identifier {
	obj := member.Object
	for {
		switch node := obj.(type) {
		case *ast.Identifier:
			return node
		case *ast.MemberExpression:
			obj = node.Object
		default:
			return nil
		}
	}
}

// checkMacro validates xs.exists(p, body) and xs.all(p, body).
func (a *Analyzer) checkMacro(callee *ast.MemberExpression, e *ast.CallExpression) (types.Type, error) {
	if callee.Property != "exists" && callee.Property != "all" {
		return nil, axerrors.NewType("unknown macro '%s' (supported: exists, all)", callee.Property)
	}

	targetType, err := a.checkExpression(callee.Object)
	if err != nil {
		return nil, err
	}
	list, ok := types.IsList(targetType)
	if !ok {
		return nil, axerrors.NewType("%s() requires a list, got %s", callee.Property, targetType)
	}

	if len(e.Arguments) != 1 {
		return nil, axerrors.NewType("%s() expects one lambda argument", callee.Property)
	}
	lambda, ok := e.Arguments[0].(*ast.LambdaExpression)
	if !ok {
		return nil, axerrors.NewType("%s() expects a lambda argument", callee.Property)
	}

	if _, exists := a.symbols.Resolve(lambda.Param); exists {
		return nil, axerrors.NewType("macro parameter '%s' shadows an existing variable", lambda.Param)
	}

	// Bind the parameter in a scope that lives only for the body.
	a.symbols = NewEnclosedSymbolTable(a.symbols)
	a.symbols.Define(lambda.Param, list.Element)
	bodyType, err := a.checkExpression(lambda.Body)
	a.symbols = a.symbols.Outer()
	if err != nil {
		return nil, err
	}

	if !types.Equal(bodyType, types.Bool) {
		return nil, axerrors.NewType("%s() body must be bool, got %s", callee.Property, bodyType)
	}
	return types.Bool, nil
}

// checkBuiltin validates a call against the built-in signature table.
func (a *Analyzer) checkBuiltin(name string, e *ast.CallExpression) (types.Type, error) {
	sig, ok := builtins[name]
	if !ok {
		return nil, axerrors.NewType("unknown function '%s'", name)
	}

	if len(e.Arguments) != len(sig.params) {
		return nil, axerrors.NewType("%s() expects %d argument(s), got %d",
			name, len(sig.params), len(e.Arguments))
	}

	for i, arg := range e.Arguments {
		argType, err := a.checkExpression(arg)
		if err != nil {
			return nil, err
		}
		if !types.Equal(argType, sig.params[i]) {
			return nil, axerrors.NewType("%s() argument %d must be %s, got %s",
				name, i+1, sig.params[i], argType)
		}
	}

	return sig.result, nil
}
