package combat

import (
	"context"

	"github.com/cory-johannsen/noahsark/internal/game/inventory"
)

// ActionType identifies what a player-controlled member does on their turn.
// The zero value (ActionUnknown) is intentionally invalid.
type ActionType int

const (
	ActionUnknown ActionType = iota // zero value; intentionally invalid
	ActionAttack
	ActionSkill
	ActionItem
)

// String returns the human-readable name of the ActionType.
// Postcondition: returns "attack", "skill", "item", or "unknown".
func (a ActionType) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionSkill:
		return "skill"
	case ActionItem:
		return "item"
	default:
		return "unknown"
	}
}

// Decider supplies every choice a player-controlled member makes.
//
// Indices returned are within the ranges implied by the Turn; ok == false
// cancels back to ChooseAction without consuming the turn. A non-nil error
// aborts the battle.
type Decider interface {
	ChooseAction(ctx context.Context, t Turn) (ActionType, error)
	// ChooseSkill returns an index into t.Actor.Skills.
	ChooseSkill(ctx context.Context, t Turn) (idx int, ok bool, err error)
	// ChooseItem returns a slot index into inv.
	ChooseItem(ctx context.Context, t Turn, inv *inventory.Inventory) (slot int, ok bool, err error)
	// ChooseTarget returns an index into t.Party.
	ChooseTarget(ctx context.Context, t Turn) (idx int, ok bool, err error)
}
