package eval

import (
	"errors"

	"github.com/JangRuBin2/rulang/runtime/value"
)

// OutcomeKind distinguishes ordinary fall-through completion from the two
// non-error control signals the language defines.
type OutcomeKind int

const (
	// OutcomeNormal means the statement (or block) ran to completion.
	OutcomeNormal OutcomeKind = iota
	// OutcomeReturn unwinds to the nearest enclosing function call,
	// carrying the returned Value.
	OutcomeReturn
	// OutcomeNext unwinds to the host's middleware driver, which continues
	// to the next middleware in the chain.
	OutcomeNext
)

// Outcome is the result of executing a statement or block: either normal
// completion, or one of the two control signals. It is never used to carry
// an error — errors are returned alongside it as Go's usual second value.
type Outcome struct {
	Kind  OutcomeKind
	Value value.Value // populated only for OutcomeReturn
}

var normal = Outcome{Kind: OutcomeNormal}

// ErrNext is the sentinel a `next` Native returns. It is intercepted at the
// nearest statement boundary and converted to an OutcomeNext; it must never
// reach the host as an error.
var ErrNext = errors.New("next() control signal")

// NewNextNative builds the `next` callable the host binds into a handler or
// middleware's scope before invoking its body.
func NewNextNative() *value.Native {
	return &value.Native{
		Name: "next",
		Fn: func(args []value.Value) (value.Value, error) {
			return value.Null{}, ErrNext
		},
	}
}
