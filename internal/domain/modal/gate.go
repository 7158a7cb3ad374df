// Package modal implements the global modal lock.
//
// While a blocking modal is shown the dashboard's window-opening affordances
// (cards) are disabled. The gate never touches the window registry.
package modal

import (
	"github.com/GriffinCanCode/Raksha/backend/internal/shared/types"
)

// Phase is the state of the gate
type Phase int

const (
	// PhaseIdle means no modal is active
	PhaseIdle Phase = iota
	// PhaseModalActive means a modal blocks background affordances
	PhaseModalActive
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseModalActive:
		return "modal_active"
	default:
		return "unknown"
	}
}

// Gate tracks the active modal and the card affordance flag.
// Invariant: an active modal implies cards are disabled.
type Gate struct {
	activeModalID *string
	cardsDisabled bool
}

// NewGate creates an idle gate
func NewGate() *Gate {
	return &Gate{}
}

// OpenGlobalModal activates modalID and disables cards.
// An already active modal is replaced.
func (g *Gate) OpenGlobalModal(modalID string) {
	id := modalID
	g.activeModalID = &id
	g.cardsDisabled = true
}

// CloseGlobalModal clears the active modal and re-enables cards
func (g *Gate) CloseGlobalModal() {
	g.activeModalID = nil
	g.cardsDisabled = false
}

// SetCardsDisabled toggles card affordances without a modal.
// Enabling cards while a modal is active has no effect.
func (g *Gate) SetCardsDisabled(disabled bool) {
	if !disabled && g.activeModalID != nil {
		return
	}
	g.cardsDisabled = disabled
}

// Phase returns the current phase
func (g *Gate) Phase() Phase {
	if g.activeModalID != nil {
		return PhaseModalActive
	}
	return PhaseIdle
}

// Active returns the active modal ID, if any
func (g *Gate) Active() (string, bool) {
	if g.activeModalID == nil {
		return "", false
	}
	return *g.activeModalID, true
}

// CardsDisabled reports whether background affordances are disabled
func (g *Gate) CardsDisabled() bool {
	return g.cardsDisabled
}

// State returns a copy of the gate state
func (g *Gate) State() types.ModalState {
	state := types.ModalState{CardsDisabled: g.cardsDisabled}
	if g.activeModalID != nil {
		id := *g.activeModalID
		state.ActiveModalID = &id
	}
	return state
}
