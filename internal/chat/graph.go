package chat

import (
	"context"
	"log"

	"github.com/jonathan/resume-coach/internal/types"
)

// maxTurnSteps bounds the internal handler chain of a single turn. A
// healthy turn takes a handful of steps; the cap only matters when a
// misbehaving oracle keeps requesting section re-entry.
const maxTurnSteps = 12

// node identifies a handler in the conversation graph.
type node int

const (
	nodeGeneral node = iota
	nodeSection
	nodeUpdater
	nodeApplier
)

// RunTurn drives one user turn to completion: it picks the entry
// handler from the current state, then follows each handler's
// Transition until one returns Stay or the step cap is reached. The
// returned error reports state corruption only; conversational faults
// are absorbed by the handlers.
func (e *Engine) RunTurn(ctx context.Context, state *types.ConversationState) error {
	current := nodeGeneral
	if state.CurrentSection != "" {
		current = nodeSection
	}

	for step := 0; step < maxTurnSteps; step++ {
		var t Transition
		switch current {
		case nodeGeneral:
			t = e.GeneralChat(ctx, state)
		case nodeSection:
			t = e.SectionChat(ctx, state)
		case nodeUpdater:
			t = e.SectionUpdater(ctx, state)
		case nodeApplier:
			t = e.SectionApplier(ctx, state)
		}

		switch t {
		case Stay:
			return state.CheckInvariants()
		case EnterSection:
			current = nodeSection
		case ExitToGeneral:
			current = nodeGeneral
		case RunUpdater:
			current = nodeUpdater
		case RunApplier:
			current = nodeApplier
		}
	}

	log.Printf("turn step cap (%d) reached, ending turn", maxTurnSteps)
	return state.CheckInvariants()
}
