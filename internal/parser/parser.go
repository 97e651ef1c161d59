// Package parser builds an expression tree from a token stream by recursive descent.
package parser

import (
	"github.com/takoeight0821/lox/internal/ast"
	"github.com/takoeight0821/lox/internal/token"
	"github.com/takoeight0821/lox/internal/utils"
)

type Parser struct {
	tokens  []token.Token
	current int
}

// NewParser captures tokens. The slice is never modified; if it does not end with an
// EOF token the parser works on a copy that does.
func NewParser(tokens []token.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}
		tokens = append(tokens[:len(tokens):len(tokens)], token.Token{Kind: token.EOF, Line: line})
	}
	return &Parser{tokens, 0}
}

// ParseExpr parses one expression starting at the current position. It stops at the
// first error. Tokens after a complete expression are left unconsumed.
func (p *Parser) ParseExpr() (ast.Expr, error) {
	return p.expression()
}

// expression = equality ;
func (p *Parser) expression() (ast.Expr, error) {
	return p.equality()
}

// equality = comparison ( ( "!=" | "==" ) comparison )* ;
func (p *Parser) equality() (ast.Expr, error) {
	return p.binary(p.comparison, token.BANGEQUAL, token.EQUALEQUAL)
}

// comparison = term ( ( ">" | ">=" | "<" | "<=" ) term )* ;
func (p *Parser) comparison() (ast.Expr, error) {
	return p.binary(p.term, token.GREATER, token.GREATEREQUAL, token.LESS, token.LESSEQUAL)
}

// term = factor ( ( "-" | "+" ) factor )* ;
func (p *Parser) term() (ast.Expr, error) {
	return p.binary(p.factor, token.MINUS, token.PLUS)
}

// factor = unary ( ( "/" | "*" ) unary )* ;
func (p *Parser) factor() (ast.Expr, error) {
	return p.binary(p.unary, token.SLASH, token.STAR)
}

// binary parses one left-associative tier: operand ( op operand )*.
func (p *Parser) binary(operand func() (ast.Expr, error), ops ...token.TokenKind) (ast.Expr, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.advance()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = &ast.Binary{Left: expr, Op: op, Right: right}
	}
	return expr, nil
}

// unary = ( "!" | "-" ) unary | primary ;
func (p *Parser) unary() (ast.Expr, error) {
	if p.match(token.BANG, token.MINUS) {
		op := p.advance()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: op, Operand: operand}, nil
	}
	return p.primary()
}

// primary = NUMBER | STRING | IDENTIFIER | "true" | "false" | "nil" | "(" expression ")" ;
func (p *Parser) primary() (ast.Expr, error) {
	switch t := p.advance(); t.Kind {
	case token.NUMBER, token.STRING:
		return &ast.Literal{Token: t}, nil
	case token.IDENT:
		return &ast.Identifier{Name: t}, nil
	case token.TRUE:
		return &ast.True{}, nil
	case token.FALSE:
		return &ast.False{}, nil
	case token.NIL:
		return &ast.Nil{}, nil
	case token.LEFTPAREN:
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RIGHTPAREN, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return &ast.Grouping{Expr: expr}, nil
	default:
		return nil, utils.ErrorAt(t, "invalid token")
	}
}

func (p Parser) peek() token.Token {
	return p.tokens[p.current]
}

// advance consumes the current token. At EOF it stays put and returns the EOF token.
func (p *Parser) advance() token.Token {
	t := p.peek()
	if !p.IsAtEnd() {
		p.current++
	}
	return t
}

func (p Parser) IsAtEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p Parser) match(kinds ...token.TokenKind) bool {
	if p.IsAtEnd() {
		return false
	}
	for _, kind := range kinds {
		if p.peek().Kind == kind {
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind token.TokenKind, message string) (token.Token, error) {
	if p.match(kind) {
		return p.advance(), nil
	}
	return p.peek(), utils.ErrorAt(p.peek(), message)
}
