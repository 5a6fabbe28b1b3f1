// Package repl is Rulang's interactive read-eval-print loop: each line the
// user submits is lexed, parsed, compiled, and evaluated against one
// persistent root Scope, so `let` bindings and state instances survive
// across turns. Input capture uses survey.Input the way the teacher's
// internal/cli/commands prompts for project scaffolding answers; output
// styling uses fatih/color the way the teacher's run command colors its
// build summary.
package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"

	"github.com/JangRuBin2/rulang/compiler/lexer"
	"github.com/JangRuBin2/rulang/compiler/parser"
	"github.com/JangRuBin2/rulang/compiler/statecompiler"
	"github.com/JangRuBin2/rulang/runtime/eval"
	"github.com/JangRuBin2/rulang/runtime/value"
)

// REPL holds the persistent state across turns: one root Scope, the set of
// state machines compiled so far, and the evaluator that walks them.
type REPL struct {
	scope     *value.Scope
	evaluator *eval.Evaluator
	machines  map[string]*statecompiler.CompiledState
	out       io.Writer

	successColor *color.Color
	errorColor   *color.Color
	echoColor    *color.Color
}

// New returns a REPL with a fresh root scope (builtins already bound).
func New(out io.Writer) *REPL {
	r := &REPL{
		scope:        eval.NewRootScope(),
		machines:     make(map[string]*statecompiler.CompiledState),
		out:          out,
		successColor: color.New(color.FgGreen),
		errorColor:   color.New(color.FgRed, color.Bold),
		echoColor:    color.New(color.FgCyan),
	}
	r.evaluator = eval.New(eval.NopHooks{}, r.print)
	return r
}

func (r *REPL) print(s string) {
	r.successColor.Fprintln(r.out, s)
}

// Run prompts for input lines until the user submits an empty line (Ctrl+D
// or blank response) and evaluates each submitted snippet in turn.
func (r *REPL) Run() error {
	r.echoColor.Fprintln(r.out, "rulang — type a statement and press enter; blank line to exit")
	for {
		var line string
		prompt := &survey.Input{Message: ">"}
		if err := survey.AskOne(prompt, &line); err != nil {
			// Ctrl+C or EOF both surface here as an error from survey;
			// treat either as a request to exit cleanly.
			return nil
		}
		if strings.TrimSpace(line) == "" {
			return nil
		}
		if err := r.Eval(line); err != nil {
			r.errorColor.Fprintf(r.out, "error: %v\n", err)
		}
	}
}

// Eval lexes, parses, compiles, and evaluates one snippet against the
// REPL's persistent scope and state-machine registry.
func (r *REPL) Eval(source string) error {
	l := lexer.New(source)
	tokens, lexErrs := l.ScanTokens()
	if len(lexErrs) > 0 {
		return fmt.Errorf("%s", lexErrs[0].Error())
	}

	program, err := parser.New(tokens).Parse()
	if err != nil {
		return err
	}

	machines, err := statecompiler.Compile(program)
	if err != nil {
		return err
	}
	for name, compiled := range machines {
		r.machines[name] = compiled
		r.scope.Define(name, &value.StateType{Compiled: compiled})
	}

	_, err = r.evaluator.ExecBlock(program.Statements, r.scope)
	return err
}
