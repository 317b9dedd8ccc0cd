package domain

import (
	"github.com/google/uuid"

	"spatialreq/internal/geometry"
)

// Edge is a plain reference to a DFA transition, identified by the integer
// ids of its source and destination automaton states. It lives here rather
// than in internal/automaton so that domain never imports automaton while
// automaton is free to import domain.
type Edge struct {
	From, To int
}

// CommandKind distinguishes the three outcomes of a planning step, per
// spec.md §4.6: nothing to do, move one object, or ask for help.
type CommandKind int

const (
	// CommandNone means no action: either the spec is currently satisfied,
	// or it is infeasible (no target edge and no request to fall back on).
	CommandNone CommandKind = iota
	// CommandExecute means moving ObjectName to NewPos would satisfy the
	// guard of the target edge chosen by the planning step.
	CommandExecute
	// CommandRequest means no single-object move suffices; RequestText
	// carries the synthesized natural-language ask.
	CommandRequest
)

func (k CommandKind) String() string {
	switch k {
	case CommandNone:
		return "none"
	case CommandExecute:
		return "execute"
	case CommandRequest:
		return "request"
	default:
		return "unknown"
	}
}

// Command is the Planner Core's per-tick output, per spec.md §4.6/§4.7.
type Command struct {
	ID          uuid.UUID
	Kind        CommandKind
	ObjectName  string
	NewPos      geometry.Point
	Edge        Edge
	RequestText string
}

// NewNoneCommand builds a CommandNone result.
func NewNoneCommand() Command {
	return Command{ID: uuid.New(), Kind: CommandNone}
}

// NewExecuteCommand builds a CommandExecute result for moving object to pos
// along the target edge.
func NewExecuteCommand(object string, pos geometry.Point, edge Edge) Command {
	return Command{
		ID:         uuid.New(),
		Kind:       CommandExecute,
		ObjectName: object,
		NewPos:     pos,
		Edge:       edge,
	}
}

// NewRequestCommand builds a CommandRequest result carrying the
// synthesized natural-language text.
func NewRequestCommand(text string, edge Edge) Command {
	return Command{
		ID:          uuid.New(),
		Kind:        CommandRequest,
		RequestText: text,
		Edge:        edge,
	}
}
