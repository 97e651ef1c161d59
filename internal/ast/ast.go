// Package ast defines the expression tree produced by the parser.
package ast

import (
	"fmt"
	"strings"

	"github.com/takoeight0821/lox/internal/token"
)

// Expr is a node of the expression tree. Every node owns its children; the tree is
// never shared or cyclic.
type Expr interface {
	fmt.Stringer
	exprNode()
}

type Binary struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (b Binary) String() string {
	return parenthesize(b.Op.Lexeme, b.Left, b.Right).String()
}

func (*Binary) exprNode() {}

var _ Expr = &Binary{}

type Unary struct {
	Op      token.Token
	Operand Expr
}

func (u Unary) String() string {
	return parenthesize(u.Op.Lexeme, u.Operand).String()
}

func (*Unary) exprNode() {}

var _ Expr = &Unary{}

// Literal wraps a NUMBER or STRING token.
type Literal struct {
	token.Token
}

func (l Literal) String() string {
	return l.Token.Pretty()
}

func (*Literal) exprNode() {}

var _ Expr = &Literal{}

// Identifier is a bare name. It parses, but nothing can evaluate it.
type Identifier struct {
	Name token.Token
}

func (i Identifier) String() string {
	return i.Name.Lexeme
}

func (*Identifier) exprNode() {}

var _ Expr = &Identifier{}

type Grouping struct {
	Expr Expr
}

func (g Grouping) String() string {
	return parenthesize("group", g.Expr).String()
}

func (*Grouping) exprNode() {}

var _ Expr = &Grouping{}

type True struct{}

func (True) String() string { return "true" }

func (*True) exprNode() {}

type False struct{}

func (False) String() string { return "false" }

func (*False) exprNode() {}

type Nil struct{}

func (Nil) String() string { return "nil" }

func (*Nil) exprNode() {}

var (
	_ Expr = &True{}
	_ Expr = &False{}
	_ Expr = &Nil{}
)

func parenthesize(head string, elems ...fmt.Stringer) fmt.Stringer {
	var b strings.Builder
	b.WriteString("(")
	elemsStr := concat(elems).String()
	if head != "" {
		b.WriteString(head)
	}
	if elemsStr != "" {
		if head != "" {
			b.WriteString(" ")
		}
		b.WriteString(elemsStr)
	}
	b.WriteString(")")
	return &b
}

// concat joins the string forms of elems with single spaces, skipping empty ones.
func concat[T fmt.Stringer](elems []T) fmt.Stringer {
	var b strings.Builder
	for _, elem := range elems {
		str := elem.String()
		if str == "" {
			continue
		}
		if b.Len() != 0 {
			b.WriteString(" ")
		}
		b.WriteString(str)
	}
	return &b
}
