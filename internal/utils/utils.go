package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/takoeight0821/lox/internal/token"
	"gopkg.in/yaml.v3"
)

// Error is the only error kind produced by the lexer, parser and evaluator.
// Line is zero when the failure has no source position.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[line %d] %s", e.Line, e.Message)
	}
	return e.Message
}

func Errorf(format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

func ErrorAt(where token.Token, format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if where.Kind == token.EOF {
		msg = "at end: " + msg
	} else {
		msg = fmt.Sprintf("at `%s`: %s", where.Lexeme, msg)
	}
	return &Error{Line: where.Line, Message: msg}
}

// Sentence renders err as a user-facing line terminated by a period.
func Sentence(err error) string {
	msg := strings.TrimRight(err.Error(), " \n")
	if strings.HasSuffix(msg, ".") {
		return msg
	}
	return msg + "."
}

type TestData struct {
	Label    string
	Enable   bool
	Input    string
	Expected map[string]string
}

func ReadTestData(s []byte) []TestData {
	var data []TestData
	if err := yaml.Unmarshal(s, &data); err != nil {
		panic(err)
	}

	// Remove disabled test cases.
	i := 0
	for _, d := range data {
		if d.Enable {
			data[i] = d
			i++
		}
	}
	data = data[:i]

	return data
}

// FindSourceFiles returns the sorted paths of the .lox files directly under dir.
func FindSourceFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.lox"))
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no source files in %s: %w", dir, os.ErrNotExist)
	}
	sort.Strings(files)
	return files, nil
}
