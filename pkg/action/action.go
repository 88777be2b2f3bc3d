// Package action enumerates and applies the legal moves of a turn: casting
// creatures from hand, declaring attackers and blockers, and passing
// through the auto-resolve phases. ApplyAction is the only place combat
// damage actually gets orchestrated across the first-strike and regular
// steps.
package action

import "github.com/mtgsim/combatcore/pkg/combat"

// Kind discriminates the closed sum of legal actions.
type Kind int

const (
	KindCast Kind = iota
	KindDeclareAttackers
	KindDeclareBlockers
	KindPass
)

// Action is a tagged union; only the field matching Kind is meaningful.
type Action struct {
	Kind Kind

	// KindCast: hand indices to put onto the battlefield, in ascending
	// order, applied in that order.
	CastIndices []int

	// KindDeclareAttackers: permanent ids to declare as attackers.
	AttackerIDs []int

	// KindDeclareBlockers: one legal block assignment.
	Assignment combat.Assignment
}
