package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spatialreq/internal/spatialast"
)

func TestTreeToDFA_SingleFinally(t *testing.T) {
	root, err := spatialast.Parse("F(blue leftof red)")
	require.NoError(t, err)

	dfa, apToTree, traceAP, err := TreeToDFA(root)
	require.NoError(t, err)

	assert.Equal(t, 2, dfa.NumNodes)
	assert.Equal(t, []string{"ap0"}, traceAP)
	assert.Contains(t, apToTree, "ap0")
	assert.False(t, dfa.IsAccepting(0))
	assert.True(t, dfa.IsAccepting(1))

	driver := NewDriver(dfa, 0)
	assert.False(t, driver.CurrentlyAccepting())

	require.NoError(t, driver.DFAStep(g("1"), traceAP))
	assert.True(t, driver.CurrentlyAccepting())
}

func TestTreeToDFA_ConjunctionOfFinallyAndGlobally(t *testing.T) {
	root, err := spatialast.Parse("F(blue leftof red) & G(!(blue overlaps red))")
	require.NoError(t, err)

	dfa, _, traceAP, err := TreeToDFA(root)
	require.NoError(t, err)

	assert.Equal(t, 4, dfa.NumNodes)
	assert.Len(t, traceAP, 2)

	driver := NewDriver(dfa, 0)
	// ap0=F(leftof) becomes true, ap1=G(!overlaps)'s inner subtree
	// (!overlaps) holds (true): stays in the globally-holding branch.
	require.NoError(t, driver.DFAStep(g("11"), traceAP))
	assert.True(t, driver.CurrentlyAccepting())
}

func TestTreeToDFA_GloballyViolationTraps(t *testing.T) {
	root, err := spatialast.Parse("G(blue leftof red)")
	require.NoError(t, err)
	dfa, _, traceAP, err := TreeToDFA(root)
	require.NoError(t, err)

	driver := NewDriver(dfa, 0)
	assert.True(t, driver.CurrentlyAccepting())

	require.NoError(t, driver.DFAStep(g("0"), traceAP))
	assert.False(t, driver.CurrentlyAccepting())

	// the trap is absorbing: even a later true observation can't recover.
	require.NoError(t, driver.DFAStep(g("1"), traceAP))
	assert.False(t, driver.CurrentlyAccepting())
}

func TestTreeToDFA_RejectsUnsupportedTopLevel(t *testing.T) {
	root, err := spatialast.Parse("blue leftof red")
	require.NoError(t, err)
	_, _, _, err = TreeToDFA(root)
	assert.Error(t, err)
}
