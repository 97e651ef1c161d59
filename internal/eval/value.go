package eval

import (
	"strconv"

	"github.com/takoeight0821/lox/internal/ast"
	"github.com/takoeight0821/lox/internal/token"
)

// Value is the result of evaluation: Number, String, Bool or Nil.
type Value interface {
	String() string
	// Expr rebuilds the literal expression that evaluates to this value.
	Expr() ast.Expr
}

type Number float64

func (n Number) String() string {
	return token.FormatNumber(float64(n))
}

func (n Number) Expr() ast.Expr {
	return &ast.Literal{Token: token.Token{Kind: token.NUMBER, Lexeme: n.String(), Literal: float64(n)}}
}

var _ Value = Number(0)

type String string

func (s String) String() string {
	return string(s)
}

func (s String) Expr() ast.Expr {
	return &ast.Literal{Token: token.Token{Kind: token.STRING, Lexeme: strconv.Quote(string(s)), Literal: string(s)}}
}

var _ Value = String("")

type Bool bool

func (b Bool) String() string {
	return strconv.FormatBool(bool(b))
}

func (b Bool) Expr() ast.Expr {
	if b {
		return &ast.True{}
	}
	return &ast.False{}
}

var _ Value = Bool(false)

type Nil struct{}

func (Nil) String() string {
	return "nil"
}

func (Nil) Expr() ast.Expr {
	return &ast.Nil{}
}

var _ Value = Nil{}

// Truthy reports whether v counts as true in a logical context. Only false and nil
// are falsy.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case Nil:
		return false
	case Bool:
		return bool(v)
	default:
		return true
	}
}
