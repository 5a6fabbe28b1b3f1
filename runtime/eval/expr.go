package eval

import (
	"fmt"

	"github.com/JangRuBin2/rulang/compiler/parser"
	"github.com/JangRuBin2/rulang/compiler/rerrors"
	"github.com/JangRuBin2/rulang/runtime/value"
)

func (e *Evaluator) evalExpr(expr parser.ExprNode, scope *value.Scope) (value.Value, error) {
	switch ex := expr.(type) {
	case *parser.NumberLiteral:
		return value.Number{Val: ex.Value}, nil

	case *parser.StringLiteral:
		return value.String{Val: ex.Value}, nil

	case *parser.BoolLiteral:
		return value.Boolean{Val: ex.Value}, nil

	case *parser.NullLiteral:
		return value.Null{}, nil

	case *parser.Identifier:
		v, ok := scope.Get(ex.Name)
		if !ok {
			return nil, &rerrors.NameError{Name: ex.Name}
		}
		return v, nil

	case *parser.AssignExpr:
		v, err := e.evalExpr(ex.Value, scope)
		if err != nil {
			return nil, err
		}
		if !scope.Assign(ex.Name, v) {
			return nil, &rerrors.NameError{Name: ex.Name}
		}
		return v, nil

	case *parser.BinaryExpr:
		return e.evalBinary(ex, scope)

	case *parser.UnaryExpr:
		operand, err := e.evalExpr(ex.Operand, scope)
		if err != nil {
			return nil, err
		}
		n, ok := operand.(value.Number)
		if !ok {
			return nil, &rerrors.TypeError{Message: "unary '-' requires a number"}
		}
		return value.Number{Val: -n.Val}, nil

	case *parser.CallExpr:
		return e.evalCall(ex, scope)

	case *parser.MemberExpr:
		obj, err := e.evalExpr(ex.Object, scope)
		if err != nil {
			return nil, err
		}
		return memberAccess(obj, ex.Property)

	case *parser.ArrayLiteral:
		elements := make([]value.Value, len(ex.Elements))
		for i, el := range ex.Elements {
			v, err := e.evalExpr(el, scope)
			if err != nil {
				return nil, err
			}
			elements[i] = v
		}
		return value.NewArray(elements), nil

	case *parser.ObjectLiteral:
		obj := value.NewObject()
		for _, pair := range ex.Pairs {
			v, err := e.evalExpr(pair.Value, scope)
			if err != nil {
				return nil, err
			}
			obj.Set(pair.Key, v)
		}
		return obj, nil

	case *parser.FunctionExpr:
		return &value.Function{Params: ex.Params, Body: ex.Body, Closure: scope}, nil

	default:
		return nil, &rerrors.TypeError{Message: fmt.Sprintf("unsupported expression %T", expr)}
	}
}

func (e *Evaluator) evalBinary(ex *parser.BinaryExpr, scope *value.Scope) (value.Value, error) {
	if ex.Operator == "and" || ex.Operator == "or" {
		left, err := e.evalExpr(ex.Left, scope)
		if err != nil {
			return nil, err
		}
		leftTruthy := value.Truthy(left)
		if ex.Operator == "or" && leftTruthy {
			return value.Boolean{Val: true}, nil
		}
		if ex.Operator == "and" && !leftTruthy {
			return value.Boolean{Val: false}, nil
		}
		right, err := e.evalExpr(ex.Right, scope)
		if err != nil {
			return nil, err
		}
		return value.Boolean{Val: value.Truthy(right)}, nil
	}

	left, err := e.evalExpr(ex.Left, scope)
	if err != nil {
		return nil, err
	}
	right, err := e.evalExpr(ex.Right, scope)
	if err != nil {
		return nil, err
	}

	switch ex.Operator {
	case "==":
		return value.Boolean{Val: value.Equals(left, right)}, nil
	case "!=":
		return value.Boolean{Val: !value.Equals(left, right)}, nil
	case "+":
		if _, ok := left.(value.String); ok {
			return value.String{Val: value.Stringify(left) + value.Stringify(right)}, nil
		}
		if _, ok := right.(value.String); ok {
			return value.String{Val: value.Stringify(left) + value.Stringify(right)}, nil
		}
		ln, lok := left.(value.Number)
		rn, rok := right.(value.Number)
		if !lok || !rok {
			return nil, &rerrors.TypeError{Message: "'+' requires two numbers or a string operand"}
		}
		return value.Number{Val: ln.Val + rn.Val}, nil
	case "-", "*", "/", "%", "<", ">", "<=", ">=":
		ln, lok := left.(value.Number)
		rn, rok := right.(value.Number)
		if !lok || !rok {
			return nil, &rerrors.TypeError{Message: fmt.Sprintf("'%s' requires two numbers", ex.Operator)}
		}
		switch ex.Operator {
		case "-":
			return value.Number{Val: ln.Val - rn.Val}, nil
		case "*":
			return value.Number{Val: ln.Val * rn.Val}, nil
		case "/":
			return value.Number{Val: ln.Val / rn.Val}, nil
		case "%":
			return value.Number{Val: float64(int64(ln.Val) % int64(rn.Val))}, nil
		case "<":
			return value.Boolean{Val: ln.Val < rn.Val}, nil
		case ">":
			return value.Boolean{Val: ln.Val > rn.Val}, nil
		case "<=":
			return value.Boolean{Val: ln.Val <= rn.Val}, nil
		case ">=":
			return value.Boolean{Val: ln.Val >= rn.Val}, nil
		}
	}

	return nil, &rerrors.TypeError{Message: fmt.Sprintf("unsupported operator %q", ex.Operator)}
}

func (e *Evaluator) evalCall(ex *parser.CallExpr, scope *value.Scope) (value.Value, error) {
	callee, err := e.evalExpr(ex.Callee, scope)
	if err != nil {
		return nil, err
	}

	args := make([]value.Value, len(ex.Args))
	for i, a := range ex.Args {
		v, err := e.evalExpr(a, scope)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	switch fn := callee.(type) {
	case *value.Function:
		return e.callFunction(fn, args)
	case *value.Native:
		return fn.Fn(args)
	default:
		return nil, &rerrors.TypeError{Message: "not callable"}
	}
}

func (e *Evaluator) callFunction(fn *value.Function, args []value.Value) (value.Value, error) {
	callScope := value.NewScope(fn.Closure)
	for i, param := range fn.Params {
		if i < len(args) {
			callScope.Define(param, args[i])
		} else {
			callScope.Define(param, value.Null{})
		}
	}

	outcome, err := e.ExecBlock(fn.Body, callScope)
	if err != nil {
		return nil, err
	}
	if outcome.Kind == OutcomeReturn {
		return outcome.Value, nil
	}
	return value.Null{}, nil
}
