package semantic

import (
	"github.com/cognisivelabs/go-axiom/internal/ast"
	axerrors "github.com/cognisivelabs/go-axiom/internal/errors"
	"github.com/cognisivelabs/go-axiom/internal/types"
)

// checkExpression infers the type of an expression bottom-up.
func (a *Analyzer) checkExpression(expr ast.Expression) (types.Type, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return types.Int, nil
	case *ast.StringLiteral:
		return types.String, nil
	case *ast.BooleanLiteral:
		return types.Bool, nil
	case *ast.Identifier:
		sym, ok := a.symbols.Resolve(e.Value)
		if !ok {
			return nil, axerrors.NewType("Undefined variable '%s'", e.Value)
		}
		return sym.Type, nil
	case *ast.UnaryExpression:
		return a.checkUnary(e)
	case *ast.BinaryExpression:
		return a.checkBinary(e)
	case *ast.MemberExpression:
		return a.checkMember(e)
	case *ast.ListLiteral:
		return a.checkList(e)
	case *ast.ObjectLiteral:
		return a.checkObject(e)
	case *ast.CallExpression:
		return a.checkCall(e)
	case *ast.LambdaExpression:
		return nil, axerrors.NewType("lambda expressions are only valid as macro arguments")
	default:
		return nil, axerrors.NewType("unsupported expression %T", expr)
	}
}

func (a *Analyzer) checkUnary(e *ast.UnaryExpression) (types.Type, error) {
	operandType, err := a.checkExpression(e.Operand)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case "!":
		if !types.Equal(operandType, types.Bool) {
			return nil, axerrors.NewType("operator '!' requires bool, got %s", operandType)
		}
		return types.Bool, nil
	case "-":
		if !types.Equal(operandType, types.Int) {
			return nil, axerrors.NewType("operator '-' requires int, got %s", operandType)
		}
		return types.Int, nil
	default:
		return nil, axerrors.NewType("unknown unary operator '%s'", e.Operator)
	}
}

func (a *Analyzer) checkBinary(e *ast.BinaryExpression) (types.Type, error) {
	leftType, err := a.checkExpression(e.Left)
	if err != nil {
		return nil, err
	}
	rightType, err := a.checkExpression(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator {
	case "+":
		if types.Equal(leftType, types.Int) && types.Equal(rightType, types.Int) {
			return types.Int, nil
		}
		if types.Equal(leftType, types.String) && types.Equal(rightType, types.String) {
			return types.String, nil
		}
		return nil, axerrors.NewType("operator '+' requires two ints or two strings, got %s and %s",
			leftType, rightType)
	case "-", "*", "/":
		if types.Equal(leftType, types.Int) && types.Equal(rightType, types.Int) {
			return types.Int, nil
		}
		return nil, axerrors.NewType("operator '%s' requires ints, got %s and %s",
			e.Operator, leftType, rightType)
	case "==", "!=":
		if !types.Equal(leftType, rightType) {
			return nil, axerrors.NewType("operator '%s' requires operands of the same type, got %s and %s",
				e.Operator, leftType, rightType)
		}
		return types.Bool, nil
	case ">", ">=", "<", "<=":
		if types.Equal(leftType, types.Int) && types.Equal(rightType, types.Int) {
			return types.Bool, nil
		}
		if types.Equal(leftType, types.Date) && types.Equal(rightType, types.Date) {
			return types.Bool, nil
		}
		return nil, axerrors.NewType("operator '%s' requires two ints or two dates, got %s and %s",
			e.Operator, leftType, rightType)
	case "&&", "||":
		if types.Equal(leftType, types.Bool) && types.Equal(rightType, types.Bool) {
			return types.Bool, nil
		}
		return nil, axerrors.NewType("operator '%s' requires bools, got %s and %s",
			e.Operator, leftType, rightType)
	case "in":
		list, ok := types.IsList(rightType)
		if !ok {
			return nil, axerrors.NewType("operator 'in' requires a list on the right, got %s", rightType)
		}
		if !types.Equal(leftType, list.Element) {
			return nil, axerrors.NewType("operator 'in' requires matching element type: %s not in %s",
				leftType, rightType)
		}
		return types.Bool, nil
	default:
		return nil, axerrors.NewType("unknown operator '%s'", e.Operator)
	}
}

func (a *Analyzer) checkMember(e *ast.MemberExpression) (types.Type, error) {
	objType, err := a.checkExpression(e.Object)
	if err != nil {
		return nil, err
	}

	obj, ok := types.IsObject(objType)
	if !ok {
		return nil, axerrors.NewType("cannot access property '%s' on non-object type %s",
			e.Property, objType)
	}

	propType, found := obj.Lookup(e.Property)
	if !found {
		return nil, axerrors.NewType("Property '%s' does not exist on type %s", e.Property, objType)
	}
	return propType, nil
}

func (a *Analyzer) checkList(e *ast.ListLiteral) (types.Type, error) {
	if len(e.Elements) == 0 {
		return types.NewList(types.Unknown), nil
	}

	first, err := a.checkExpression(e.Elements[0])
	if err != nil {
		return nil, err
	}
	for _, elem := range e.Elements[1:] {
		t, err := a.checkExpression(elem)
		if err != nil {
			return nil, err
		}
		if !types.Equal(t, first) {
			return nil, axerrors.NewType("List elements must be homogeneous: found %s and %s", first, t)
		}
	}
	return types.NewList(first), nil
}

func (a *Analyzer) checkObject(e *ast.ObjectLiteral) (types.Type, error) {
	props := make([]types.Property, 0, len(e.Fields))
	for _, f := range e.Fields {
		t, err := a.checkExpression(f.Value)
		if err != nil {
			return nil, err
		}
		props = append(props, types.Property{Name: f.Key, Type: t})
	}
	return types.NewObject(props...), nil
}
