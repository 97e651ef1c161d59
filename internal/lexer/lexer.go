// Package lexer turns Lox source text into a token stream.
package lexer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/golang/glog"
	"github.com/hashicorp/go-multierror"
	"github.com/takoeight0821/lox/internal/token"
	"github.com/takoeight0821/lox/internal/utils"
)

// Lex scans the whole source. Scanning does not stop at the first bad input: every
// scan error is collected and returned together once the end is reached. The token
// slice always ends with exactly one EOF token, but it must not be used when the
// error is non-nil.
func Lex(source string) ([]token.Token, error) {
	l := lexer{
		source:  []rune(source),
		tokens:  []token.Token{},
		start:   0,
		current: 0,
		line:    1,
	}

	errs := &multierror.Error{ErrorFormat: joinErrors}

	for !l.isAtEnd() {
		if err := l.scanToken(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	l.tokens = append(l.tokens, token.Token{Kind: token.EOF, Lexeme: "", Line: l.line, Literal: nil})
	return l.tokens, errs.ErrorOrNil()
}

func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

type lexer struct {
	source []rune
	tokens []token.Token

	start     int // start of current lexeme
	startLine int // line of the start of current lexeme
	current   int // current position in source
	line      int // current line number
}

func (l lexer) isAtEnd() bool {
	return l.current >= len(l.source)
}

func (l lexer) peek() rune {
	if l.isAtEnd() {
		return '\x00'
	}
	return l.source[l.current]
}

func (l *lexer) advance() rune {
	l.current++
	return l.source[l.current-1]
}

// match consumes the next rune only if it is expected.
func (l *lexer) match(expected rune) bool {
	if l.isAtEnd() || l.source[l.current] != expected {
		return false
	}
	l.current++
	return true
}

func (l *lexer) addToken(kind token.TokenKind, literal any) {
	text := string(l.source[l.start:l.current])
	tok := token.Token{Kind: kind, Lexeme: text, Line: l.startLine, Literal: literal}
	glog.V(2).Infof("lex: %v", tok)
	l.tokens = append(l.tokens, tok)
}

func (l *lexer) errorf(format string, args ...any) error {
	return &utils.Error{Line: l.startLine, Message: fmt.Sprintf(format, args...)}
}

func (l *lexer) scanToken() error {
	l.start = l.current
	l.startLine = l.line
	c := l.advance()
	switch c {
	case '\n':
		l.line++
		return nil
	case '"':
		return l.string()
	case '!':
		l.addToken(l.either('=', token.BANGEQUAL, token.BANG), nil)
		return nil
	case '=':
		l.addToken(l.either('=', token.EQUALEQUAL, token.EQUAL), nil)
		return nil
	case '<':
		l.addToken(l.either('=', token.LESSEQUAL, token.LESS), nil)
		return nil
	case '>':
		l.addToken(l.either('=', token.GREATEREQUAL, token.GREATER), nil)
		return nil
	case '/':
		if l.match('/') {
			// A comment runs until the end of the line.
			for l.peek() != '\n' && !l.isAtEnd() {
				l.advance()
			}
			return nil
		}
		l.addToken(token.SLASH, nil)
		return nil
	default:
		if unicode.IsSpace(c) {
			return nil
		}
		if k, ok := singleChars[c]; ok {
			l.addToken(k, nil)
			return nil
		}
		if isDigit(c) {
			return l.number()
		}
		if isAlpha(c) {
			l.identifier()
			return nil
		}
	}
	return l.errorf("invalid character %q", c)
}

func (l *lexer) either(next rune, two, one token.TokenKind) token.TokenKind {
	if l.match(next) {
		return two
	}
	return one
}

var singleChars = map[rune]token.TokenKind{
	'(': token.LEFTPAREN,
	')': token.RIGHTPAREN,
	'{': token.LEFTBRACE,
	'}': token.RIGHTBRACE,
	',': token.COMMA,
	'.': token.DOT,
	'-': token.MINUS,
	'+': token.PLUS,
	';': token.SEMICOLON,
	'*': token.STAR,
}

// string scans a double-quoted literal. A backslash keeps the following rune inside
// the literal, so `\"` does not close it; the text is stored verbatim.
func (l *lexer) string() error {
	for l.peek() != '"' && !l.isAtEnd() {
		if l.peek() == '\\' {
			l.advance()
			if l.isAtEnd() {
				break
			}
		}
		if l.peek() == '\n' {
			l.line++
		}
		l.advance()
	}

	if l.isAtEnd() {
		return l.errorf("unterminated string: missing closing '\"'")
	}

	l.advance()

	value := string(l.source[l.start+1 : l.current-1])
	l.addToken(token.STRING, value)
	return nil
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// number consumes the longest run of digits and dots. More than one dot in the run
// makes the whole run invalid.
func (l *lexer) number() error {
	dots := 0
	for isDigit(l.peek()) || l.peek() == '.' {
		if l.advance() == '.' {
			dots++
		}
	}

	text := string(l.source[l.start:l.current])
	if dots > 1 {
		return l.errorf("invalid number %q: more than one decimal point", text)
	}
	// Out-of-range literals keep the +Inf or 0 that ParseFloat reports.
	value, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return l.errorf("invalid number %q", text)
	}
	l.addToken(token.NUMBER, value)
	return nil
}

func isAlpha(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}

func (l *lexer) identifier() {
	for isAlpha(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}

	value := string(l.source[l.start:l.current])

	if k, ok := token.Keywords[value]; ok {
		l.addToken(k, nil)
	} else {
		l.addToken(token.IDENT, value)
	}
}
