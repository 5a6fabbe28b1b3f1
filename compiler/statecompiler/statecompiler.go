// Package statecompiler turns parsed State/Transition declarations into
// dense, index-based transition tables the evaluator can query in O(1)
// without re-walking the AST.
package statecompiler

import (
	"fmt"

	"github.com/JangRuBin2/rulang/compiler/parser"
	"github.com/JangRuBin2/rulang/compiler/rerrors"
)

// CompiledState is the dense transition table for one named state machine.
type CompiledState struct {
	Name        string
	StateNames  []string
	nameToIndex map[string]int
	Initial     int
	// Transitions[fromIndex][event] = toIndex
	Transitions map[int]map[string]int
}

// IndexOf returns the dense index of a state name, or false if unknown.
func (c *CompiledState) IndexOf(name string) (int, bool) {
	idx, ok := c.nameToIndex[name]
	return idx, ok
}

// NameOf returns the state name at the given dense index.
func (c *CompiledState) NameOf(index int) string {
	return c.StateNames[index]
}

// Lookup resolves (fromIndex, event) to a destination index.
func (c *CompiledState) Lookup(fromIndex int, event string) (int, bool) {
	byEvent, ok := c.Transitions[fromIndex]
	if !ok {
		return 0, false
	}
	to, ok := byEvent[event]
	return to, ok
}

// Compile performs the two-pass compilation described for the state
// compiler: first materialize every declared state machine with dense
// indices, then resolve every transition rule against those machines.
func Compile(program *parser.Program) (map[string]*CompiledState, error) {
	machines := make(map[string]*CompiledState)

	for _, stmt := range program.Statements {
		stateStmt, ok := stmt.(*parser.StateStmt)
		if !ok {
			continue
		}

		compiled := &CompiledState{
			Name:        stateStmt.Name,
			StateNames:  append([]string(nil), stateStmt.States...),
			nameToIndex: make(map[string]int, len(stateStmt.States)),
			Initial:     0,
			Transitions: make(map[int]map[string]int),
		}
		for i, name := range compiled.StateNames {
			compiled.nameToIndex[name] = i
		}
		machines[stateStmt.Name] = compiled
	}

	for _, stmt := range program.Statements {
		transitionStmt, ok := stmt.(*parser.TransitionStmt)
		if !ok {
			continue
		}

		compiled, ok := machines[transitionStmt.StateName]
		if !ok {
			return nil, &rerrors.CompileError{
				Line:    transitionStmt.Location.Line,
				Message: fmt.Sprintf("unknown state machine %q in transition declaration", transitionStmt.StateName),
			}
		}

		for _, rule := range transitionStmt.Rules {
			fromIdx, ok := compiled.nameToIndex[rule.From]
			if !ok {
				return nil, &rerrors.CompileError{
					Line:    transitionStmt.Location.Line,
					Message: fmt.Sprintf("unknown state %q in transition for %s", rule.From, compiled.Name),
				}
			}
			toIdx, ok := compiled.nameToIndex[rule.To]
			if !ok {
				return nil, &rerrors.CompileError{
					Line:    transitionStmt.Location.Line,
					Message: fmt.Sprintf("unknown state %q in transition for %s", rule.To, compiled.Name),
				}
			}

			if compiled.Transitions[fromIdx] == nil {
				compiled.Transitions[fromIdx] = make(map[string]int)
			}
			// Last writer wins on a duplicate (from, event) pair.
			compiled.Transitions[fromIdx][rule.Event] = toIdx
		}
	}

	return machines, nil
}
