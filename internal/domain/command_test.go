package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"spatialreq/internal/geometry"
)

func TestCommand_Constructors(t *testing.T) {
	none := NewNoneCommand()
	assert.Equal(t, CommandNone, none.Kind)
	assert.Equal(t, "none", none.Kind.String())
	assert.NotEqual(t, [16]byte{}, none.ID)

	edge := Edge{From: 0, To: 1}
	exec := NewExecuteCommand("red_block", geometry.Point{X: 1, Y: 2}, edge)
	assert.Equal(t, CommandExecute, exec.Kind)
	assert.Equal(t, "execute", exec.Kind.String())
	assert.Equal(t, "red_block", exec.ObjectName)
	assert.Equal(t, edge, exec.Edge)

	req := NewRequestCommand("please move the blue block", edge)
	assert.Equal(t, CommandRequest, req.Kind)
	assert.Equal(t, "request", req.Kind.String())
	assert.Equal(t, "please move the blue block", req.RequestText)
}
