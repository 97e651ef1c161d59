// Package eval reduces an expression tree to a single value.
package eval

import (
	"github.com/golang/glog"
	"github.com/takoeight0821/lox/internal/ast"
	"github.com/takoeight0821/lox/internal/token"
	"github.com/takoeight0821/lox/internal/utils"
)

// Evaluator walks an expression tree. It keeps no state between calls.
type Evaluator struct {
	// OnVisit, if set, is called for every node right before it is evaluated.
	OnVisit func(ast.Expr)
}

// NewEvaluator creates a new Evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Eval evaluates expr. Binary operands are evaluated left first, then right; the
// first error aborts the walk.
func (ev *Evaluator) Eval(expr ast.Expr) (Value, error) {
	if ev.OnVisit != nil {
		ev.OnVisit(expr)
	}
	glog.V(3).Infof("eval: %v", expr)

	switch n := expr.(type) {
	case *ast.True:
		return Bool(true), nil
	case *ast.False:
		return Bool(false), nil
	case *ast.Nil:
		return Nil{}, nil
	case *ast.Literal:
		return evalLiteral(n.Token)
	case *ast.Grouping:
		return ev.Eval(n.Expr)
	case *ast.Identifier:
		return nil, utils.ErrorAt(n.Name, "Identifier not implemented")
	case *ast.Unary:
		return ev.evalUnary(n)
	case *ast.Binary:
		return ev.evalBinary(n)
	default:
		return nil, utils.Errorf("unexpected node: %v", expr)
	}
}

func evalLiteral(t token.Token) (Value, error) {
	switch t.Kind {
	case token.NUMBER:
		if f, ok := t.Literal.(float64); ok {
			return Number(f), nil
		}
	case token.STRING:
		if s, ok := t.Literal.(string); ok {
			return String(s), nil
		}
	}
	return nil, utils.ErrorAt(t, "unrecognized literal: %v", t.Kind)
}

func (ev *Evaluator) evalUnary(n *ast.Unary) (Value, error) {
	operand, err := ev.Eval(n.Operand)
	if err != nil {
		return nil, err
	}

	switch n.Op.Kind {
	case token.MINUS:
		num, ok := operand.(Number)
		if !ok {
			return nil, utils.ErrorAt(n.Op, "unsupported target of unary minus: %s", n.Operand)
		}
		return -num, nil
	case token.BANG:
		return Bool(!Truthy(operand)), nil
	default:
		return nil, utils.ErrorAt(n.Op, "invalid unary operator")
	}
}

func (ev *Evaluator) evalBinary(n *ast.Binary) (Value, error) {
	left, err := ev.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := ev.Eval(n.Right)
	if err != nil {
		return nil, err
	}

	switch n.Op.Kind {
	case token.PLUS:
		if l, ok := left.(Number); ok {
			if r, ok := right.(Number); ok {
				return l + r, nil
			}
		}
		if l, ok := left.(String); ok {
			if r, ok := right.(String); ok {
				return l + r, nil
			}
		}
		return nil, utils.ErrorAt(n.Op, "Invalid arguments to '+'")
	case token.MINUS, token.STAR, token.SLASH:
		l, r, err := numbers(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return arithmetic(n.Op.Kind, l, r), nil
	case token.GREATER, token.GREATEREQUAL, token.LESS, token.LESSEQUAL, token.EQUALEQUAL, token.BANGEQUAL:
		l, r, err := numbers(n.Op, left, right)
		if err != nil {
			return nil, err
		}
		return compare(n.Op.Kind, l, r), nil
	default:
		return nil, utils.ErrorAt(n.Op, "Token not recognized")
	}
}

func numbers(op token.Token, left, right Value) (Number, Number, error) {
	l, lok := left.(Number)
	r, rok := right.(Number)
	if !lok || !rok {
		return 0, 0, utils.ErrorAt(op, "operands must be numbers, got %s and %s", typeName(left), typeName(right))
	}
	return l, r, nil
}

// arithmetic follows IEEE-754; division by zero yields an infinity or NaN.
func arithmetic(kind token.TokenKind, l, r Number) Number {
	switch kind {
	case token.MINUS:
		return l - r
	case token.STAR:
		return l * r
	default:
		return l / r
	}
}

func compare(kind token.TokenKind, l, r Number) Bool {
	switch kind {
	case token.GREATER:
		return l > r
	case token.GREATEREQUAL:
		return l >= r
	case token.LESS:
		return l < r
	case token.LESSEQUAL:
		return l <= r
	case token.EQUALEQUAL:
		return l == r
	default:
		return l != r
	}
}

func typeName(v Value) string {
	switch v.(type) {
	case Number:
		return "number"
	case String:
		return "string"
	case Bool:
		return "boolean"
	default:
		return "nil"
	}
}
