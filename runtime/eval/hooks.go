package eval

import "github.com/JangRuBin2/rulang/compiler/parser"

// Hooks is the host registry the evaluator forwards HTTP-flavored
// declarations to as it walks top-level statements. The host implements
// this to record endpoints/middlewares/global-use lists and to learn the
// declared listen port; the evaluator never dispatches requests itself.
type Hooks interface {
	OnEndpoint(method, path string, middlewares []string, body *parser.BlockStmt)
	OnMiddleware(name string, body *parser.BlockStmt)
	OnUse(names []string)
	OnServer(port float64)
}

// NopHooks implements Hooks by discarding every declaration. Useful for
// running programs (tests, the REPL) that only exercise the general-purpose
// expression/state-machine language and never declare endpoints.
type NopHooks struct{}

func (NopHooks) OnEndpoint(string, string, []string, *parser.BlockStmt) {}
func (NopHooks) OnMiddleware(string, *parser.BlockStmt)                 {}
func (NopHooks) OnUse([]string)                                        {}
func (NopHooks) OnServer(float64)                                       {}
