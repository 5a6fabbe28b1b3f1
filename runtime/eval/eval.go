// Package eval implements Rulang's tree-walking evaluator: it drives
// state-machine operations, executes endpoint/middleware bodies in
// caller-supplied scopes, and forwards HTTP-flavored declarations to a
// host-provided Hooks registry.
package eval

import (
	"errors"
	"fmt"

	"github.com/JangRuBin2/rulang/compiler/parser"
	"github.com/JangRuBin2/rulang/compiler/rerrors"
	"github.com/JangRuBin2/rulang/compiler/statecompiler"
	"github.com/JangRuBin2/rulang/runtime/value"
)

// Evaluator walks a Program's statements and the handler bodies the host
// dispatches into. It holds no mutable state of its own beyond its Hooks
// and print sink, so the host may run it re-entrantly only if it guards
// against concurrent calls.
type Evaluator struct {
	hooks Hooks
	print func(string)
}

// New creates an Evaluator. print receives the stringified argument of every
// `print` statement; hooks receives Endpoint/Middleware/Use/Server
// declarations as they're walked.
func New(hooks Hooks, print func(string)) *Evaluator {
	if hooks == nil {
		hooks = NopHooks{}
	}
	if print == nil {
		print = func(string) {}
	}
	return &Evaluator{hooks: hooks, print: print}
}

// NewRootScope returns a fresh scope with the builtin namespaces (String,
// Util) already bound. Run adds every compiled state machine's StateType on
// top of this before executing top-level statements.
func NewRootScope() *value.Scope {
	s := value.NewScope(nil)
	registerBuiltins(s)
	return s
}

// Run pre-registers every compiled state machine into rootScope as a
// StateType value, then executes program's top-level statements in order.
func (e *Evaluator) Run(program *parser.Program, machines map[string]*statecompiler.CompiledState, rootScope *value.Scope) error {
	for name, compiled := range machines {
		rootScope.Define(name, &value.StateType{Compiled: compiled})
	}

	outcome, err := e.ExecBlock(program.Statements, rootScope)
	if err != nil {
		return err
	}
	_ = outcome // a bare return/next at top level simply halts execution
	return nil
}

// ExecBlock is the evaluator's block-execution primitive: it runs stmts in
// order against scope, stopping early on a Return or Next outcome. The host
// calls this directly to run a middleware's or handler's body AST against a
// scope it constructed with req/res/next/db bindings.
func (e *Evaluator) ExecBlock(stmts []parser.StmtNode, scope *value.Scope) (Outcome, error) {
	for _, stmt := range stmts {
		outcome, err := e.execStmt(stmt, scope)
		if err != nil {
			return Outcome{}, err
		}
		if outcome.Kind != OutcomeNormal {
			return outcome, nil
		}
	}
	return normal, nil
}

// evalAsStmt evaluates an expression used directly by a statement (the
// value of a `let`, the argument of `print`/`return`, an expression
// statement, ...), intercepting ErrNext and converting it to OutcomeNext
// right at this statement boundary.
func (e *Evaluator) evalAsStmt(expr parser.ExprNode, scope *value.Scope) (value.Value, Outcome, error) {
	v, err := e.evalExpr(expr, scope)
	if err != nil {
		if errors.Is(err, ErrNext) {
			return nil, Outcome{Kind: OutcomeNext}, nil
		}
		return nil, Outcome{}, err
	}
	return v, normal, nil
}

func (e *Evaluator) execStmt(stmt parser.StmtNode, scope *value.Scope) (Outcome, error) {
	switch s := stmt.(type) {
	case *parser.StateStmt, *parser.TransitionStmt:
		return normal, nil

	case *parser.LetStmt:
		v, outcome, err := e.evalAsStmt(s.Value, scope)
		if err != nil || outcome.Kind != OutcomeNormal {
			return outcome, err
		}
		scope.Define(s.Name, v)
		return normal, nil

	case *parser.FnStmt:
		scope.Define(s.Name, &value.Function{Params: s.Params, Body: s.Body, Closure: scope})
		return normal, nil

	case *parser.ExpressionStmt:
		_, outcome, err := e.evalAsStmt(s.Expr, scope)
		if err != nil || outcome.Kind != OutcomeNormal {
			return outcome, err
		}
		return normal, nil

	case *parser.PrintStmt:
		v, outcome, err := e.evalAsStmt(s.Arg, scope)
		if err != nil || outcome.Kind != OutcomeNormal {
			return outcome, err
		}
		e.print(value.Stringify(v))
		return normal, nil

	case *parser.ReturnStmt:
		if s.Arg == nil {
			return Outcome{Kind: OutcomeReturn, Value: value.Null{}}, nil
		}
		v, outcome, err := e.evalAsStmt(s.Arg, scope)
		if err != nil || outcome.Kind != OutcomeNormal {
			return outcome, err
		}
		return Outcome{Kind: OutcomeReturn, Value: v}, nil

	case *parser.BlockStmt:
		child := value.NewScope(scope)
		return e.ExecBlock(s.Body, child)

	case *parser.IfStmt:
		return e.execIf(s, scope)

	case *parser.EndpointStmt:
		e.hooks.OnEndpoint(s.Method, s.Path, s.Middlewares, s.Body)
		return normal, nil

	case *parser.MiddlewareStmt:
		e.hooks.OnMiddleware(s.Name, s.Body)
		return normal, nil

	case *parser.UseStmt:
		e.hooks.OnUse(s.Middlewares)
		return normal, nil

	case *parser.ServerStmt:
		v, outcome, err := e.evalAsStmt(s.Port, scope)
		if err != nil || outcome.Kind != OutcomeNormal {
			return outcome, err
		}
		port, ok := v.(value.Number)
		if !ok {
			return Outcome{}, &rerrors.TypeError{Message: "server port must be a number"}
		}
		e.hooks.OnServer(port.Val)
		return normal, nil

	case *parser.ValidateStmt:
		return e.execValidate(s, scope)

	default:
		return Outcome{}, &rerrors.TypeError{Message: fmt.Sprintf("unsupported statement %T", stmt)}
	}
}

// execIf implements the asymmetric scoping rule: the `then` branch and a
// plain `else { ... }` each open a fresh child scope, but an `else if` chain
// head is executed directly in the current scope.
func (e *Evaluator) execIf(s *parser.IfStmt, scope *value.Scope) (Outcome, error) {
	cond, outcome, err := e.evalAsStmt(s.Cond, scope)
	if err != nil || outcome.Kind != OutcomeNormal {
		return outcome, err
	}

	if value.Truthy(cond) {
		child := value.NewScope(scope)
		return e.ExecBlock(s.Then.Body, child)
	}

	switch elseStmt := s.Else.(type) {
	case nil:
		return normal, nil
	case *parser.IfStmt:
		return e.execIf(elseStmt, scope)
	case *parser.BlockStmt:
		child := value.NewScope(scope)
		return e.ExecBlock(elseStmt.Body, child)
	default:
		return e.execStmt(elseStmt, scope)
	}
}
