// Package interp implements the tree-walking interpreter for verified
// Axiom programs. Evaluation is strict, left to right, and deterministic:
// no clock, randomness, or external state is consulted.
package interp

import (
	"github.com/cognisivelabs/go-axiom/internal/ast"
	axerrors "github.com/cognisivelabs/go-axiom/internal/errors"
	"github.com/cognisivelabs/go-axiom/internal/runtime"
)

// Interpreter executes Axiom programs. It is stateless; a fresh
// environment is built per Run call, so one Interpreter and one AST may be
// shared across concurrent executions.
type Interpreter struct{}

// New creates an Interpreter.
func New() *Interpreter {
	return &Interpreter{}
}

// Run executes the program against the given context bindings and returns
// the value of the last expression statement executed, or Null when the
// program produced no expression value.
func (i *Interpreter) Run(program *ast.Program, seed map[string]runtime.Value) (runtime.Value, error) {
	env := NewEnvironment(seed)

	var last runtime.Value = runtime.Null
	for _, stmt := range program.Statements {
		value, err := i.execStatement(stmt, env)
		if err != nil {
			return nil, err
		}
		if value != nil {
			last = value
		}
	}
	return last, nil
}

// execStatement executes one statement. The returned value is non-nil
// only when the statement (or a statement nested in it) was an expression
// statement; it feeds the running implicit-return value.
func (i *Interpreter) execStatement(stmt ast.Statement, env *Environment) (runtime.Value, error) {
	switch s := stmt.(type) {
	case *ast.VarDeclStatement:
		value, err := i.evalExpression(s.Value, env)
		if err != nil {
			return nil, err
		}
		env.Define(s.Name.Value, value)
		return nil, nil

	case *ast.AssignStatement:
		value, err := i.evalExpression(s.Value, env)
		if err != nil {
			return nil, err
		}
		if !env.Assign(s.Name.Value, value) {
			return nil, axerrors.NewRuntime(axerrors.CodeUndefinedVariable,
				"Undefined variable '%s'", s.Name.Value)
		}
		return nil, nil

	case *ast.IfStatement:
		cond, err := i.evalExpression(s.Condition, env)
		if err != nil {
			return nil, err
		}
		if isTruthy(cond) {
			return i.execStatement(s.Consequence, env)
		}
		if s.Alternative != nil {
			return i.execStatement(s.Alternative, env)
		}
		return nil, nil

	case *ast.BlockStatement:
		blockEnv := NewEnclosedEnvironment(env)
		var last runtime.Value
		for _, inner := range s.Statements {
			value, err := i.execStatement(inner, blockEnv)
			if err != nil {
				return nil, err
			}
			if value != nil {
				last = value
			}
		}
		return last, nil

	case *ast.ExpressionStatement:
		return i.evalExpression(s.Expression, env)

	default:
		return nil, axerrors.NewRuntime(axerrors.CodeNone, "unsupported statement %T", stmt)
	}
}

// isTruthy reports whether a condition holds: only Bool(true) is truthy.
func isTruthy(v runtime.Value) bool {
	b, ok := v.(*runtime.BoolValue)
	return ok && b.Value
}

// evalExpression evaluates an expression in the given environment.
func (i *Interpreter) evalExpression(expr ast.Expression, env *Environment) (runtime.Value, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return &runtime.IntValue{Value: e.Value}, nil

	case *ast.StringLiteral:
		return &runtime.StringValue{Value: e.Value}, nil

	case *ast.BooleanLiteral:
		return runtime.BoolOf(e.Value), nil

	case *ast.Identifier:
		value, ok := env.Get(e.Value)
		if !ok {
			return nil, axerrors.NewRuntime(axerrors.CodeUndefinedVariable,
				"Undefined variable '%s'", e.Value)
		}
		return value, nil

	case *ast.UnaryExpression:
		return i.evalUnary(e, env)

	case *ast.BinaryExpression:
		return i.evalBinary(e, env)

	case *ast.MemberExpression:
		return i.evalMember(e, env)

	case *ast.ListLiteral:
		list := &runtime.ListValue{Elements: make([]runtime.Value, 0, len(e.Elements))}
		for _, elem := range e.Elements {
			value, err := i.evalExpression(elem, env)
			if err != nil {
				return nil, err
			}
			list.Elements = append(list.Elements, value)
		}
		return list, nil

	case *ast.ObjectLiteral:
		obj := runtime.NewObjectValue()
		for _, f := range e.Fields {
			value, err := i.evalExpression(f.Value, env)
			if err != nil {
				return nil, err
			}
			obj.Set(f.Key, value)
		}
		return obj, nil

	case *ast.CallExpression:
		return i.evalCall(e, env)

	case *ast.LambdaExpression:
		return nil, axerrors.NewRuntime(axerrors.CodeNone,
			"lambda expressions are only valid as macro arguments")

	default:
		return nil, axerrors.NewRuntime(axerrors.CodeNone, "unsupported expression %T", expr)
	}
}

func (i *Interpreter) evalUnary(e *ast.UnaryExpression, env *Environment) (runtime.Value, error) {
	operand, err := i.evalExpression(e.Operand, env)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case "!":
		b, ok := operand.(*runtime.BoolValue)
		if !ok {
			return nil, axerrors.NewRuntime(axerrors.CodeNone, "operator '!' requires bool, got %s", operand.Type())
		}
		return runtime.BoolOf(!b.Value), nil
	case "-":
		n, ok := operand.(*runtime.IntValue)
		if !ok {
			return nil, axerrors.NewRuntime(axerrors.CodeNone, "operator '-' requires int, got %s", operand.Type())
		}
		return &runtime.IntValue{Value: -n.Value}, nil
	default:
		return nil, axerrors.NewRuntime(axerrors.CodeNone, "unknown unary operator '%s'", e.Operator)
	}
}

func (i *Interpreter) evalBinary(e *ast.BinaryExpression, env *Environment) (runtime.Value, error) {
	// && and || short-circuit: the right operand is not evaluated when the
	// left fixes the result.
	if e.Operator == "&&" || e.Operator == "||" {
		return i.evalLogical(e, env)
	}

	left, err := i.evalExpression(e.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpression(e.Right, env)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case "==":
		return runtime.BoolOf(runtime.Equals(left, right)), nil
	case "!=":
		return runtime.BoolOf(!runtime.Equals(left, right)), nil
	case "in":
		list, ok := right.(*runtime.ListValue)
		if !ok {
			return nil, axerrors.NewRuntime(axerrors.CodeNotAList,
				"operator 'in' requires a list, got %s", right.Type())
		}
		for _, elem := range list.Elements {
			if runtime.Equals(left, elem) {
				return runtime.True, nil
			}
		}
		return runtime.False, nil
	case "+":
		if ls, ok := left.(*runtime.StringValue); ok {
			rs, ok := right.(*runtime.StringValue)
			if !ok {
				return nil, axerrors.NewRuntime(axerrors.CodeNone,
					"operator '+' requires matching operand types, got %s and %s", left.Type(), right.Type())
			}
			return &runtime.StringValue{Value: ls.Value + rs.Value}, nil
		}
		return i.evalArithmetic(e.Operator, left, right)
	case "-", "*", "/":
		return i.evalArithmetic(e.Operator, left, right)
	case ">", ">=", "<", "<=":
		return i.evalComparison(e.Operator, left, right)
	default:
		return nil, axerrors.NewRuntime(axerrors.CodeNone, "unknown operator '%s'", e.Operator)
	}
}

func (i *Interpreter) evalLogical(e *ast.BinaryExpression, env *Environment) (runtime.Value, error) {
	left, err := i.evalExpression(e.Left, env)
	if err != nil {
		return nil, err
	}
	lb, ok := left.(*runtime.BoolValue)
	if !ok {
		return nil, axerrors.NewRuntime(axerrors.CodeNone,
			"operator '%s' requires bool, got %s", e.Operator, left.Type())
	}

	if e.Operator == "&&" && !lb.Value {
		return runtime.False, nil
	}
	if e.Operator == "||" && lb.Value {
		return runtime.True, nil
	}

	right, err := i.evalExpression(e.Right, env)
	if err != nil {
		return nil, err
	}
	rb, ok := right.(*runtime.BoolValue)
	if !ok {
		return nil, axerrors.NewRuntime(axerrors.CodeNone,
			"operator '%s' requires bool, got %s", e.Operator, right.Type())
	}
	return runtime.BoolOf(rb.Value), nil
}

// evalArithmetic performs int arithmetic. Operations wrap on overflow;
// division by zero is a runtime error.
func (i *Interpreter) evalArithmetic(op string, left, right runtime.Value) (runtime.Value, error) {
	ln, lok := left.(*runtime.IntValue)
	rn, rok := right.(*runtime.IntValue)
	if !lok || !rok {
		return nil, axerrors.NewRuntime(axerrors.CodeNone,
			"operator '%s' requires ints, got %s and %s", op, left.Type(), right.Type())
	}

	switch op {
	case "+":
		return &runtime.IntValue{Value: ln.Value + rn.Value}, nil
	case "-":
		return &runtime.IntValue{Value: ln.Value - rn.Value}, nil
	case "*":
		return &runtime.IntValue{Value: ln.Value * rn.Value}, nil
	case "/":
		if rn.Value == 0 {
			return nil, axerrors.NewRuntime(axerrors.CodeDivisionByZero, "division by zero")
		}
		return &runtime.IntValue{Value: ln.Value / rn.Value}, nil
	default:
		return nil, axerrors.NewRuntime(axerrors.CodeNone, "unknown arithmetic operator '%s'", op)
	}
}

// evalComparison orders ints numerically and dates by instant.
func (i *Interpreter) evalComparison(op string, left, right runtime.Value) (runtime.Value, error) {
	if ln, ok := left.(*runtime.IntValue); ok {
		rn, ok := right.(*runtime.IntValue)
		if !ok {
			return nil, axerrors.NewRuntime(axerrors.CodeNone,
				"operator '%s' requires matching operand types, got %s and %s", op, left.Type(), right.Type())
		}
		return compareOrdered(op, ln.Value, rn.Value)
	}

	ld, lok := left.(*runtime.DateValue)
	rd, rok := right.(*runtime.DateValue)
	if !lok || !rok {
		return nil, axerrors.NewRuntime(axerrors.CodeNone,
			"operator '%s' requires two ints or two dates, got %s and %s", op, left.Type(), right.Type())
	}
	return compareOrdered(op, ld.Value.UnixNano(), rd.Value.UnixNano())
}

func compareOrdered(op string, a, b int64) (runtime.Value, error) {
	switch op {
	case ">":
		return runtime.BoolOf(a > b), nil
	case ">=":
		return runtime.BoolOf(a >= b), nil
	case "<":
		return runtime.BoolOf(a < b), nil
	case "<=":
		return runtime.BoolOf(a <= b), nil
	default:
		return nil, axerrors.NewRuntime(axerrors.CodeNone, "unknown comparison operator '%s'", op)
	}
}

func (i *Interpreter) evalMember(e *ast.MemberExpression, env *Environment) (runtime.Value, error) {
	objValue, err := i.evalExpression(e.Object, env)
	if err != nil {
		return nil, err
	}

	obj, ok := objValue.(*runtime.ObjectValue)
	if !ok {
		return nil, axerrors.NewRuntime(axerrors.CodeNotAnObject,
			"cannot access property '%s' on %s", e.Property, objValue.Type())
	}

	value, found := obj.Get(e.Property)
	if !found {
		return nil, axerrors.NewRuntime(axerrors.CodeMissingProperty,
			"missing property '%s'", e.Property)
	}
	return value, nil
}
