package driver

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"github.com/kr/pretty"
	"github.com/takoeight0821/lox/internal/ast"
	"github.com/takoeight0821/lox/internal/config"
	"github.com/takoeight0821/lox/internal/eval"
	"github.com/takoeight0821/lox/internal/lexer"
	"github.com/takoeight0821/lox/internal/parser"
	"github.com/takoeight0821/lox/internal/token"
)

// Dump selects the intermediate results written before evaluation.
type Dump struct {
	Tokens bool
	AST    bool
	Pretty bool
}

// Runner feeds source text through lexer, parser and evaluator.
type Runner struct {
	maxSourceSize int64
	evaluator     *eval.Evaluator

	dump    Dump
	dumpOut io.Writer
}

func NewRunner(cfg config.Config) *Runner {
	return &Runner{
		maxSourceSize: cfg.MaxSourceSize,
		evaluator:     eval.NewEvaluator(),
		dumpOut:       io.Discard,
	}
}

// SetDump writes the selected intermediate results to out on every run.
func (r *Runner) SetDump(d Dump, out io.Writer) {
	r.dump = d
	r.dumpOut = out
}

// RunSource lexes, parses and evaluates source. The first failing stage stops the run.
func (r *Runner) RunSource(source string) (eval.Value, error) {
	tokens, err := lexer.Lex(source)
	if err != nil {
		return nil, fmt.Errorf("lex: %w", err)
	}
	glog.V(1).Infof("lexed %d tokens", len(tokens))
	r.dumpTokens(tokens)

	expr, err := parser.NewParser(tokens).ParseExpr()
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	glog.V(1).Infof("parsed %v", expr)
	r.dumpExpr(expr)

	value, err := r.evaluator.Eval(expr)
	if err != nil {
		return nil, fmt.Errorf("eval: %w", err)
	}
	glog.V(1).Infof("evaluated to %v", value)
	return value, nil
}

// RunFile runs the whole file at path as one source buffer.
func (r *Runner) RunFile(path string) (eval.Value, error) {
	source, err := r.ReadSource(path)
	if err != nil {
		return nil, err
	}
	return r.RunSource(source)
}

// ReadSource loads a script. Anything other than a regular file no larger than the
// configured limit is rejected.
func (r *Runner) ReadSource(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s: not a regular file", path)
	}
	if info.Size() > r.maxSourceSize {
		return "", r.tooLarge(path, info.Size())
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	// The file may have grown since Stat.
	limit := r.maxSourceSize
	if limit < math.MaxInt64 {
		limit++
	}
	data, err := io.ReadAll(io.LimitReader(f, limit))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > r.maxSourceSize {
		return "", r.tooLarge(path, int64(len(data)))
	}
	return string(data), nil
}

func (r *Runner) tooLarge(path string, size int64) error {
	return fmt.Errorf("%s: file too large (%s > %s)", path,
		humanize.IBytes(uint64(size)), humanize.IBytes(uint64(r.maxSourceSize)))
}

func (r *Runner) dumpTokens(tokens []token.Token) {
	if !r.dump.Tokens {
		return
	}
	for _, t := range tokens {
		fmt.Fprintln(r.dumpOut, t)
	}
}

func (r *Runner) dumpExpr(expr ast.Expr) {
	if r.dump.AST {
		fmt.Fprintln(r.dumpOut, expr)
	}
	if r.dump.Pretty {
		pretty.Fprintf(r.dumpOut, "%# v\n", expr)
	}
}
