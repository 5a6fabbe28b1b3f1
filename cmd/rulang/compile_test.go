package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileValidProgramReturnsProgramAndMachines(t *testing.T) {
	program, machines, err := compile(`
		state Order { CREATED PAID }
		transition Order { CREATED -> PAID when pay }
		let x = 1
	`)
	require.NoError(t, err)
	assert.Len(t, program.Statements, 3)
	assert.Contains(t, machines, "Order")
}

func TestCompileParseErrorSurfacesAsError(t *testing.T) {
	_, _, err := compile(`let 1 = 2`)
	assert.Error(t, err)
}

func TestCompileUnknownTransitionMachineSurfacesAsError(t *testing.T) {
	_, _, err := compile(`transition Ghost { A -> B when go }`)
	assert.Error(t, err)
}
