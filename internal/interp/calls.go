package interp

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cognisivelabs/go-axiom/internal/ast"
	axerrors "github.com/cognisivelabs/go-axiom/internal/errors"
	"github.com/cognisivelabs/go-axiom/internal/runtime"
)

// evalCall dispatches call expressions: has(...), the list macros, and
// the built-in functions.
func (i *Interpreter) evalCall(e *ast.CallExpression, env *Environment) (runtime.Value, error) {
	switch callee := e.Callee.(type) {
	case *ast.Identifier:
		if callee.Value == "has" {
			return i.evalHas(e, env)
		}
		return i.evalBuiltin(callee.Value, e, env)
	case *ast.MemberExpression:
		return i.evalMacro(callee, e, env)
	default:
		return nil, axerrors.NewRuntime(axerrors.CodeNone, "expression is not callable")
	}
}

// evalHas evaluates has(e): a dynamic presence test. Only the two
// "absence" conditions convert to false; any other runtime error
// propagates unchanged.
func (i *Interpreter) evalHas(e *ast.CallExpression, env *Environment) (runtime.Value, error) {
	if len(e.Arguments) != 1 {
		return nil, axerrors.NewRuntime(axerrors.CodeNone,
			"has() expects exactly one argument, got %d", len(e.Arguments))
	}

	_, err := i.evalExpression(e.Arguments[0], env)
	if err != nil {
		if axerrors.IsCode(err, axerrors.CodeUndefinedVariable) ||
			axerrors.IsCode(err, axerrors.CodeMissingProperty) {
			return runtime.False, nil
		}
		return nil, err
	}
	return runtime.True, nil
}

// evalMacro iterates a list for xs.exists(p, body) / xs.all(p, body),
// stopping at the earliest short-circuit point. The lambda parameter is
// bound in an enclosed environment per element, so any outer binding of
// the same name is untouched whether the body succeeds or fails.
func (i *Interpreter) evalMacro(callee *ast.MemberExpression, e *ast.CallExpression, env *Environment) (runtime.Value, error) {
	if callee.Property != "exists" && callee.Property != "all" {
		return nil, axerrors.NewRuntime(axerrors.CodeNone,
			"unknown macro '%s' (supported: exists, all)", callee.Property)
	}

	target, err := i.evalExpression(callee.Object, env)
	if err != nil {
		return nil, err
	}
	list, ok := target.(*runtime.ListValue)
	if !ok {
		return nil, axerrors.NewRuntime(axerrors.CodeNotAList,
			"%s() requires a list, got %s", callee.Property, target.Type())
	}

	if len(e.Arguments) != 1 {
		return nil, axerrors.NewRuntime(axerrors.CodeNone,
			"%s() expects one lambda argument", callee.Property)
	}
	lambda, ok := e.Arguments[0].(*ast.LambdaExpression)
	if !ok {
		return nil, axerrors.NewRuntime(axerrors.CodeNone,
			"%s() expects a lambda argument", callee.Property)
	}

	exists := callee.Property == "exists"
	for _, elem := range list.Elements {
		bodyEnv := NewEnclosedEnvironment(env)
		bodyEnv.Define(lambda.Param, elem)

		result, err := i.evalExpression(lambda.Body, bodyEnv)
		if err != nil {
			return nil, err
		}

		if exists && isTruthy(result) {
			return runtime.True, nil
		}
		if !exists && !isTruthy(result) {
			return runtime.False, nil
		}
	}

	return runtime.BoolOf(!exists), nil
}

// evalBuiltin evaluates the built-in function calls. Arity and argument
// types were verified by the checker; the checks here guard direct
// interpreter use.
func (i *Interpreter) evalBuiltin(name string, e *ast.CallExpression, env *Environment) (runtime.Value, error) {
	args := make([]runtime.Value, len(e.Arguments))
	for idx, arg := range e.Arguments {
		value, err := i.evalExpression(arg, env)
		if err != nil {
			return nil, err
		}
		args[idx] = value
	}

	switch name {
	case "startsWith":
		s, t, err := stringArgs(name, args)
		if err != nil {
			return nil, err
		}
		return runtime.BoolOf(strings.HasPrefix(s, t)), nil
	case "endsWith":
		s, t, err := stringArgs(name, args)
		if err != nil {
			return nil, err
		}
		return runtime.BoolOf(strings.HasSuffix(s, t)), nil
	case "contains":
		s, t, err := stringArgs(name, args)
		if err != nil {
			return nil, err
		}
		return runtime.BoolOf(strings.Contains(s, t)), nil
	case "length":
		s, err := stringArg(name, args)
		if err != nil {
			return nil, err
		}
		// Length counts Unicode code points, not bytes.
		return &runtime.IntValue{Value: int64(utf8.RuneCountInString(s))}, nil
	case "timestamp":
		s, err := stringArg(name, args)
		if err != nil {
			return nil, err
		}
		instant, perr := time.Parse(time.RFC3339, s)
		if perr != nil {
			return nil, axerrors.NewRuntime(axerrors.CodeBadTimestamp,
				"invalid ISO-8601 instant %q", s)
		}
		return &runtime.DateValue{Value: instant}, nil
	default:
		return nil, axerrors.NewRuntime(axerrors.CodeNone, "unknown function '%s'", name)
	}
}

func stringArg(name string, args []runtime.Value) (string, error) {
	if len(args) != 1 {
		return "", axerrors.NewRuntime(axerrors.CodeNone,
			"%s() expects 1 argument, got %d", name, len(args))
	}
	s, ok := args[0].(*runtime.StringValue)
	if !ok {
		return "", axerrors.NewRuntime(axerrors.CodeNone,
			"%s() requires a string argument, got %s", name, args[0].Type())
	}
	return s.Value, nil
}

func stringArgs(name string, args []runtime.Value) (string, string, error) {
	if len(args) != 2 {
		return "", "", axerrors.NewRuntime(axerrors.CodeNone,
			"%s() expects 2 arguments, got %d", name, len(args))
	}
	s, sok := args[0].(*runtime.StringValue)
	t, tok := args[1].(*runtime.StringValue)
	if !sok || !tok {
		return "", "", axerrors.NewRuntime(axerrors.CodeNone,
			"%s() requires string arguments, got %s and %s", name, args[0].Type(), args[1].Type())
	}
	return s.Value, t.Value, nil
}
