package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/golang/glog"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"github.com/takoeight0821/lox/internal/config"
	"github.com/takoeight0821/lox/internal/driver"
	"github.com/takoeight0821/lox/internal/eval"
	"github.com/takoeight0821/lox/internal/utils"
)

func main() {
	defer glog.Flush()
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		glog.Flush()
		os.Exit(1)
	}
}

type options struct {
	configPath string
	maxSize    int64
	noColor    bool
	dump       driver.Dump
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "lox [script]",
		Short:         "Evaluate Lox expressions",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			// glog reads its flags from the standard flag set.
			return flag.CommandLine.Parse(nil)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if opts.noColor || !cfg.Color {
				color.NoColor = true
			}

			r := driver.NewRunner(cfg)
			r.SetDump(opts.dump, cmd.OutOrStdout())

			if len(args) == 0 {
				return RunPrompt(r, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
			}
			return RunFile(r, args[0], cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "config file (default: lox/config.yaml in the XDG config directories)")
	flags.Int64Var(&opts.maxSize, "max-size", 0, "maximum script size in bytes (overrides the config file)")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&opts.dump.Tokens, "tokens", false, "print the token stream before evaluating")
	flags.BoolVar(&opts.dump.AST, "ast", false, "print the syntax tree before evaluating")
	flags.BoolVar(&opts.dump.Pretty, "dump", false, "print the syntax tree structure before evaluating")
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	return cmd
}

func loadConfig(cmd *cobra.Command, opts options) (config.Config, error) {
	cfg := config.Default()
	path := opts.configPath
	if path == "" {
		path = config.Locate()
	}
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
		glog.V(1).Infof("loaded config from %s", path)
	}
	if cmd.Flags().Changed("max-size") {
		cfg.MaxSourceSize = opts.maxSize
	}
	return cfg, cfg.Validate()
}

func RunPrompt(r *driver.Runner, cfg config.Config, out, errOut io.Writer) error {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	defer func() {
		saveHistory(line, cfg.HistoryFile, errOut)
		line.Close()
	}()

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			defer f.Close()
			if _, err := line.ReadHistory(f); err != nil {
				fmt.Fprintln(errOut, err)
			}
		}
	}

	return repl(line, r, cfg.Prompt, out, errOut)
}

// prompter is the part of *liner.State the read loop needs.
type prompter interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// repl reads and runs lines until EOF or an abort. Errors are reported and the loop
// goes on with the next line.
func repl(p prompter, r *driver.Runner, prompt string, out, errOut io.Writer) error {
	for {
		input, err := p.Prompt(prompt)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		p.AppendHistory(input)

		value, err := r.RunSource(input)
		if err != nil {
			printError(errOut, err)
			continue
		}
		printValue(out, value)
	}
}

func saveHistory(line *liner.State, path string, errOut io.Writer) {
	if path == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		fmt.Fprintln(errOut, err)
		return
	}
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintln(errOut, err)
		return
	}
	defer f.Close()
	if _, err := line.WriteHistory(f); err != nil {
		fmt.Fprintln(errOut, err)
	}
}

func RunFile(r *driver.Runner, path string, out io.Writer) error {
	value, err := r.RunFile(path)
	if err != nil {
		return err
	}
	printValue(out, value)
	return nil
}

var (
	errorColor  = color.New(color.FgRed)
	resultColor = color.New(color.FgCyan)
)

func printValue(w io.Writer, v eval.Value) {
	resultColor.Fprintln(w, v)
}

func printError(w io.Writer, err error) {
	errorColor.Fprintf(w, "Error: %s\n", utils.Sentence(err))
}
