package eval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JangRuBin2/rulang/compiler/lexer"
	"github.com/JangRuBin2/rulang/compiler/parser"
	"github.com/JangRuBin2/rulang/compiler/rerrors"
	"github.com/JangRuBin2/rulang/compiler/statecompiler"
	"github.com/JangRuBin2/rulang/runtime/value"
)

// runProgram lexes, parses, compiles, and evaluates source, capturing every
// `print` line in order.
func runProgram(t *testing.T, source string) ([]string, error) {
	t.Helper()

	l := lexer.New(source)
	tokens, errs := l.ScanTokens()
	require.Empty(t, errs)

	program, err := parser.New(tokens).Parse()
	require.NoError(t, err)

	machines, err := statecompiler.Compile(program)
	require.NoError(t, err)

	var lines []string
	ev := New(NopHooks{}, func(s string) { lines = append(lines, s) })
	root := NewRootScope()
	err = ev.Run(program, machines, root)
	return lines, err
}

func TestArithmeticPrecedenceEndToEnd(t *testing.T) {
	lines, err := runProgram(t, `let x = 2 + 3 * 4  print(x)`)
	require.NoError(t, err)
	assert.Equal(t, []string{"14"}, lines)
}

func TestRecursiveFunctionEndToEnd(t *testing.T) {
	lines, err := runProgram(t, `
		fn f(n) { if (n <= 1) { return 1 } return n * f(n - 1) }
		print(f(5))
	`)
	require.NoError(t, err)
	assert.Equal(t, []string{"120"}, lines)
}

func TestScopeShadowingAndOuterAssignment(t *testing.T) {
	lines, err := runProgram(t, `
		let x = 1
		{ let x = 2 print(x) }
		print(x)
	`)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "1"}, lines)

	lines, err = runProgram(t, `
		let x = 1
		{ x = 2 }
		print(x)
	`)
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, lines)
}

func TestStateMachineLifecycle(t *testing.T) {
	source := `
		state Order { CREATED PAID SHIPPED }
		transition Order {
			CREATED -> PAID when pay
			PAID -> SHIPPED when ship
		}
		let o = Order.new()
		print(o.state)
		o.apply("pay")
		print(o.state)
		print(o.history)
	`
	lines, err := runProgram(t, source)
	require.NoError(t, err)
	assert.Equal(t, []string{"CREATED", "PAID", "[CREATED, PAID]"}, lines)
}

func TestTransitionErrorOnUnregisteredEvent(t *testing.T) {
	source := `
		state Order { CREATED PAID SHIPPED }
		transition Order {
			CREATED -> PAID when payment.success
			PAID -> SHIPPED when delivery.pickup
		}
		let o = Order.new()
		o.apply("delivery.pickup")
	`
	_, err := runProgram(t, source)
	require.Error(t, err)
	var te *rerrors.TransitionError
	require.ErrorAs(t, err, &te)
	assert.Contains(t, te.Error(), "delivery.pickup")
	assert.Contains(t, te.Error(), "CREATED")
}

func TestRollbackReachesInitialThenFails(t *testing.T) {
	source := `
		state Order { CREATED PAID SHIPPED }
		transition Order {
			CREATED -> PAID when pay
			PAID -> SHIPPED when ship
		}
		let o = Order.new()
		o.apply("pay")
		o.apply("ship")
		print(o.rollback())
		print(o.state)
		o.rollback()
		o.rollback()
	`
	_, err := runProgram(t, source)
	require.Error(t, err)
	var te *rerrors.TransitionError
	require.ErrorAs(t, err, &te)
}

func TestStringificationRules(t *testing.T) {
	lines, err := runProgram(t, `
		print("x=" + 3)
		print([1, "a", true])
		print({a: 1, b: 2})
	`)
	require.NoError(t, err)
	assert.Equal(t, []string{"x=3", "[1, a, true]", "{a: 1, b: 2}"}, lines)
}

func TestValidatePassesWithOptionalFieldMissing(t *testing.T) {
	lines, err := runProgram(t, `
		let target = { name: "A" }
		validate target { name: string, age: optional number }
		print("ok")
	`)
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, lines)
}

func TestValidateFailsOnWrongType(t *testing.T) {
	_, err := runProgram(t, `
		let target = { name: 1 }
		validate target { name: string, age: optional number }
	`)
	require.Error(t, err)
	var ve *rerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Path)
	assert.Equal(t, "string", ve.Expected)
	assert.Equal(t, "number", ve.Actual)
}

func TestValidateFailsOnMissingRequiredField(t *testing.T) {
	_, err := runProgram(t, `
		let target = { age: 1 }
		validate target { name: string, age: optional number }
	`)
	require.Error(t, err)
	var ve *rerrors.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name", ve.Path)
	assert.True(t, ve.Missing)
}

func TestBuiltinStringNamespace(t *testing.T) {
	lines, err := runProgram(t, `
		print(String.upper("abc"))
		print(String.lower("ABC"))
		print(String.trim("  hi  "))
		print(String.contains("hello", "ell"))
	`)
	require.NoError(t, err)
	assert.Equal(t, []string{"ABC", "abc", "hi", "true"}, lines)
}

func TestUtilUUIDProducesDistinctWellFormedValues(t *testing.T) {
	lines, err := runProgram(t, `
		print(Util.uuid())
		print(Util.uuid())
	`)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.NotEqual(t, lines[0], lines[1])
	assert.Equal(t, 4, strings.Count(lines[0], "-"))
}

func TestEndpointAndServerForwardToHooks(t *testing.T) {
	l := lexer.New(`endpoint GET "/h" use [] { print("in handler") } server 3000`)
	tokens, errs := l.ScanTokens()
	require.Empty(t, errs)

	program, err := parser.New(tokens).Parse()
	require.NoError(t, err)

	machines, err := statecompiler.Compile(program)
	require.NoError(t, err)

	var endpoints []string
	var port float64
	hooks := &recordingHooks{
		onEndpoint: func(method, path string, mw []string) { endpoints = append(endpoints, method+" "+path) },
		onServer:   func(p float64) { port = p },
	}

	ev := New(hooks, func(string) {})
	err = ev.Run(program, machines, NewRootScope())
	require.NoError(t, err)

	assert.Equal(t, []string{"GET /h"}, endpoints)
	assert.Equal(t, 3000.0, port)
}

func TestMiddlewareNextAndReturnSignalsDoNotSurfaceAsErrors(t *testing.T) {
	l := lexer.New(`
		middleware auth {
			if (req.headers.authorization == null) {
				res.status(401)
				return
			}
			next()
		}
	`)
	tokens, errs := l.ScanTokens()
	require.Empty(t, errs)

	program, err := parser.New(tokens).Parse()
	require.NoError(t, err)

	var body *parser.BlockStmt
	hooks := &recordingHooks{
		onMiddleware: func(name string, b *parser.BlockStmt) { body = b },
	}
	ev := New(hooks, func(string) {})
	require.NoError(t, ev.Run(program, nil, NewRootScope()))
	require.NotNil(t, body)

	// No Authorization header: expect an OutcomeReturn, status set to 401.
	reqNoAuth := value.NewObject()
	headers := value.NewObject()
	headers.Set("authorization", value.Null{})
	reqNoAuth.Set("headers", headers)

	var status float64
	resObj := value.NewObject()
	resObj.Set("status", &value.Native{Fn: func(args []value.Value) (value.Value, error) {
		status = args[0].(value.Number).Val
		return resObj, nil
	}})

	scope := value.NewScope(NewRootScope())
	scope.Define("req", reqNoAuth)
	scope.Define("res", resObj)
	scope.Define("next", NewNextNative())

	outcome, err := ev.ExecBlock(body.Body, scope)
	require.NoError(t, err)
	assert.Equal(t, OutcomeReturn, outcome.Kind)
	assert.Equal(t, 401.0, status)

	// With an Authorization header: expect next() to produce OutcomeNext.
	reqWithAuth := value.NewObject()
	headersOK := value.NewObject()
	headersOK.Set("authorization", value.String{Val: "Bearer x"})
	reqWithAuth.Set("headers", headersOK)

	scope2 := value.NewScope(NewRootScope())
	scope2.Define("req", reqWithAuth)
	scope2.Define("res", resObj)
	scope2.Define("next", NewNextNative())

	outcome, err = ev.ExecBlock(body.Body, scope2)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNext, outcome.Kind)
}

// recordingHooks is a minimal Hooks implementation for tests that only care
// about a subset of declarations.
type recordingHooks struct {
	onEndpoint   func(method, path string, middlewares []string)
	onMiddleware func(name string, body *parser.BlockStmt)
	onUse        func(names []string)
	onServer     func(port float64)
}

func (h *recordingHooks) OnEndpoint(method, path string, middlewares []string, body *parser.BlockStmt) {
	if h.onEndpoint != nil {
		h.onEndpoint(method, path, middlewares)
	}
}
func (h *recordingHooks) OnMiddleware(name string, body *parser.BlockStmt) {
	if h.onMiddleware != nil {
		h.onMiddleware(name, body)
	}
}
func (h *recordingHooks) OnUse(names []string) {
	if h.onUse != nil {
		h.onUse(names)
	}
}
func (h *recordingHooks) OnServer(port float64) {
	if h.onServer != nil {
		h.onServer(port)
	}
}
