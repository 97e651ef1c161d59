package parser_test

import (
	"os"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kr/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takoeight0821/lox/internal/ast"
	"github.com/takoeight0821/lox/internal/lexer"
	"github.com/takoeight0821/lox/internal/parser"
	"github.com/takoeight0821/lox/internal/token"
	"github.com/takoeight0821/lox/internal/utils"
)

func parse(input string) (ast.Expr, error) {
	tokens, err := lexer.Lex(input)
	if err != nil {
		return nil, err
	}
	return parser.NewParser(tokens).ParseExpr()
}

func TestParseFromTestData(t *testing.T) {
	t.Parallel()
	s, err := os.ReadFile("../../testdata/testcase.yaml")
	if err != nil {
		panic(err)
	}
	testcases := utils.ReadTestData(s)
	for _, testcase := range testcases {
		expr, err := parse(testcase.Input)
		if expected, ok := testcase.Expected["parser"]; ok {
			if err != nil {
				t.Errorf("Parse %s returned error: %v", testcase.Label, err)
				continue
			}
			if diff := cmp.Diff(expected, expr.String()); diff != "" {
				t.Errorf("Parse %s mismatch (-want +got):\n%s", testcase.Label, diff)
			}
		} else if expected, ok := testcase.Expected["error"]; ok {
			if err == nil {
				t.Errorf("Parse %s: expected error containing %q, got %v", testcase.Label, expected, expr)
				continue
			}
			assert.Contains(t, err.Error(), expected, testcase.Label)
		}
	}
}

func BenchmarkFromTestData(b *testing.B) {
	s, err := os.ReadFile("../../testdata/testcase.yaml")
	if err != nil {
		panic(err)
	}
	testcases := utils.ReadTestData(s)

	for _, testcase := range testcases {
		if _, ok := testcase.Expected["parser"]; !ok {
			continue
		}
		b.Run(testcase.Label, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_, _ = parse(testcase.Input)
			}
		})
	}
}

func num(f float64, lexeme string) *ast.Literal {
	return &ast.Literal{Token: token.Token{Kind: token.NUMBER, Lexeme: lexeme, Line: 1, Literal: f}}
}

func TestParseTree(t *testing.T) {
	t.Parallel()

	expr, err := parse("1 + 2 == 3")
	require.NoError(t, err)

	expected := &ast.Binary{
		Left: &ast.Binary{
			Left:  num(1, "1"),
			Op:    token.Token{Kind: token.PLUS, Lexeme: "+", Line: 1},
			Right: num(2, "2"),
		},
		Op:    token.Token{Kind: token.EQUALEQUAL, Lexeme: "==", Line: 1},
		Right: num(3, "3"),
	}
	if diff := pretty.Diff(expected, expr); len(diff) != 0 {
		t.Errorf("parse tree mismatch:\n%s", pretty.Sprint(diff))
	}
}

func TestParseLiteralNodes(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		input    string
		expected ast.Expr
	}{
		{"true", &ast.True{}},
		{"false", &ast.False{}},
		{"nil", &ast.Nil{}},
		{"12", num(12, "12")},
		{`"hi"`, &ast.Literal{Token: token.Token{Kind: token.STRING, Lexeme: `"hi"`, Line: 1, Literal: "hi"}}},
		{"abc", &ast.Identifier{Name: token.Token{Kind: token.IDENT, Lexeme: "abc", Line: 1, Literal: "abc"}}},
		{"(nil)", &ast.Grouping{Expr: &ast.Nil{}}},
	}
	for _, tc := range testcases {
		expr, err := parse(tc.input)
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.expected, expr, tc.input)
	}
}

func TestParseDoesNotModifyTokens(t *testing.T) {
	t.Parallel()

	tokens, err := lexer.Lex("-(1 + 2) * !3")
	require.NoError(t, err)
	saved := slices.Clone(tokens)

	_, err = parser.NewParser(tokens).ParseExpr()
	require.NoError(t, err)
	assert.Equal(t, saved, tokens)
}

func TestParseWithoutEOF(t *testing.T) {
	t.Parallel()

	tokens := []token.Token{
		{Kind: token.NUMBER, Lexeme: "1", Line: 1, Literal: 1.0},
		{Kind: token.PLUS, Lexeme: "+", Line: 1},
		{Kind: token.NUMBER, Lexeme: "2", Line: 1, Literal: 2.0},
	}
	expr, err := parser.NewParser(tokens).ParseExpr()
	require.NoError(t, err)
	assert.Equal(t, "(+ 1 2)", expr.String())
	assert.Len(t, tokens, 3)

	_, err = parser.NewParser(nil).ParseExpr()
	assert.EqualError(t, err, "[line 1] at end: invalid token")
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		input    string
		expected string
	}{
		{"(1 + 2", "[line 1] at end: expected ')' after expression"},
		{"(1 + 2 3", "[line 1] at `3`: expected ')' after expression"},
		{"1 +\n\n*", "[line 3] at `*`: invalid token"},
		{"1 + )", "[line 1] at `)`: invalid token"},
		{"== 1", "[line 1] at `==`: invalid token"},
	}
	for _, tc := range testcases {
		_, err := parse(tc.input)
		require.Error(t, err, tc.input)
		assert.Equal(t, tc.expected, err.Error(), tc.input)
	}
}
