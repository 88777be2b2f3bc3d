package action

import (
	"github.com/mtgsim/combatcore/pkg/combat"
	"github.com/mtgsim/combatcore/pkg/state"
)

// EnumerateLegalActions yields the complete set of successor choices at
// the current phase. Enumeration order is a deterministic function of the
// state, so repeated searches over the same state always explore actions
// in the same order.
func EnumerateLegalActions(s state.GameState) []Action {
	switch s.Phase {
	case state.MainPrecombat, state.MainPostcombat:
		return enumerateCasts(s)
	case state.DeclareAttackers:
		return enumerateDeclareAttackers(s)
	case state.DeclareBlockers:
		return enumerateDeclareBlockers(s)
	case state.FirstStrikeDamage, state.CombatDamage, state.Cleanup:
		return []Action{{Kind: KindPass}}
	default:
		return nil
	}
}

func enumerateCasts(s state.GameState) []Action {
	hand := s.Players[s.ActivePlayer].Hand
	subsets := subsetsOf(len(hand))
	actions := make([]Action, len(subsets))
	for i, subset := range subsets {
		actions[i] = Action{Kind: KindCast, CastIndices: subset}
	}
	return actions
}

func enumerateDeclareAttackers(s state.GameState) []Action {
	active := s.Players[s.ActivePlayer]
	var eligible []int
	for _, p := range active.Battlefield {
		if state.CanAttack(p) {
			eligible = append(eligible, p.ID)
		}
	}
	subsets := subsetsOf(len(eligible))
	actions := make([]Action, len(subsets))
	for i, subset := range subsets {
		ids := make([]int, len(subset))
		for j, idx := range subset {
			ids[j] = eligible[idx]
		}
		actions[i] = Action{Kind: KindDeclareAttackers, AttackerIDs: ids}
	}
	return actions
}

func enumerateDeclareBlockers(s state.GameState) []Action {
	active := s.Players[s.ActivePlayer]
	defender := state.Opponent(s.ActivePlayer)
	defenderState := s.Players[defender]

	attackers := make([]state.Permanent, 0, len(s.Combat.Attackers))
	for _, id := range s.Combat.Attackers {
		if p, ok := findPermanent(active.Battlefield, id); ok {
			attackers = append(attackers, p)
		}
	}

	var potentialBlockers []state.Permanent
	for _, p := range defenderState.Battlefield {
		if !p.Tapped && p.Source.IsCreature() {
			potentialBlockers = append(potentialBlockers, p)
		}
	}

	assignments := combat.EnumerateBlockAssignments(attackers, potentialBlockers)
	actions := make([]Action, len(assignments))
	for i, a := range assignments {
		actions[i] = Action{Kind: KindDeclareBlockers, Assignment: a}
	}
	return actions
}

// subsetsOf returns every subset of {0,...,n-1}, each as an ascending
// index slice, in ascending bitmask order (the empty subset first).
func subsetsOf(n int) [][]int {
	total := 1 << uint(n)
	subsets := make([][]int, 0, total)
	for mask := 0; mask < total; mask++ {
		subset := []int{}
		for i := 0; i < n; i++ {
			if mask&(1<<uint(i)) != 0 {
				subset = append(subset, i)
			}
		}
		subsets = append(subsets, subset)
	}
	return subsets
}

func findPermanent(battlefield []state.Permanent, id int) (state.Permanent, bool) {
	for _, p := range battlefield {
		if p.ID == id {
			return p, true
		}
	}
	return state.Permanent{}, false
}
