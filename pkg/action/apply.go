package action

import (
	"fmt"

	"github.com/mtgsim/combatcore/pkg/card"
	"github.com/mtgsim/combatcore/pkg/combat"
	"github.com/mtgsim/combatcore/pkg/state"
)

// ApplyAction returns the successor state reached by taking action in s.
// It never mutates s; every path clones first. Only keyword abilities
// drive gameplay here (canAttack/canBlock and combat resolution); the
// oracle parser's other ability Kinds (ETB/activated effects) are
// classified for preflight purposes, but this core doesn't resolve their
// triggers or costs.
func ApplyAction(s state.GameState, a Action) state.GameState {
	switch a.Kind {
	case KindCast:
		return applyCast(s, a)
	case KindDeclareAttackers:
		return applyDeclareAttackers(s, a)
	case KindDeclareBlockers:
		return applyDeclareBlockers(s, a)
	case KindPass:
		return applyPass(s)
	default:
		panic(fmt.Sprintf("action: unknown action kind %d", a.Kind))
	}
}

func applyCast(s state.GameState, a Action) state.GameState {
	cp := s.Clone()
	active := &cp.Players[cp.ActivePlayer]

	selected := make([]card.Card, len(a.CastIndices))
	for i, idx := range a.CastIndices {
		selected[i] = active.Hand[idx]
	}
	remove := make(map[int]bool, len(a.CastIndices))
	for _, idx := range a.CastIndices {
		remove[idx] = true
	}
	var newHand []card.Card
	for i, c := range active.Hand {
		if !remove[i] {
			newHand = append(newHand, c)
		}
	}
	active.Hand = newHand

	for _, c := range selected {
		active.Battlefield = append(active.Battlefield, state.Permanent{
			ID:            cp.NextPermanentID,
			Source:        c,
			SummoningSick: true,
		})
		cp.NextPermanentID++
	}

	cp.Phase = state.DeclareAttackers
	return cp
}

func applyDeclareAttackers(s state.GameState, a Action) state.GameState {
	cp := s.Clone()
	active := &cp.Players[cp.ActivePlayer]

	attacking := make(map[int]bool, len(a.AttackerIDs))
	for _, id := range a.AttackerIDs {
		attacking[id] = true
	}
	for i := range active.Battlefield {
		p := &active.Battlefield[i]
		if !attacking[p.ID] {
			continue
		}
		if !p.HasKeyword(card.Vigilance) {
			p.Tapped = true
		}
		p.SummoningSick = false
	}

	if len(a.AttackerIDs) == 0 {
		cp.Combat = nil
		return advanceTurn(cp)
	}

	cp.Combat = &state.CombatState{
		Attackers: append([]int(nil), a.AttackerIDs...),
		Blockers:  map[int][]int{},
	}
	cp.Phase = state.DeclareBlockers
	return cp
}

func applyDeclareBlockers(s state.GameState, a Action) state.GameState {
	cp := s.Clone()
	cp.Combat.Blockers = cloneBlockerMap(a.Assignment.Blockers)

	if combatHasFirstStriker(cp) {
		cp.Phase = state.FirstStrikeDamage
	} else {
		cp.Phase = state.CombatDamage
	}
	return cp
}

func applyPass(s state.GameState) state.GameState {
	switch s.Phase {
	case state.FirstStrikeDamage:
		cp := applyCombatStep(s, true)
		cp.Phase = state.CombatDamage
		return cp
	case state.CombatDamage:
		cp := applyCombatStep(s, false)
		cp.Combat = nil
		return advanceTurn(cp)
	case state.MainPostcombat, state.Cleanup:
		return advanceTurn(s.Clone())
	default:
		panic(fmt.Sprintf("action: Pass illegal in phase %s", s.Phase))
	}
}

// applyCombatStep resolves one damage step (first-strike or regular),
// applies destruction and life totals, and returns the resulting clone.
// It leaves Phase and Combat untouched; the caller (applyPass) advances
// those.
func applyCombatStep(s state.GameState, isFirstStrike bool) state.GameState {
	cp := s.Clone()
	activeIdx := cp.ActivePlayer
	defenderIdx := state.Opponent(activeIdx)

	attackers := permanentsByIDs(cp.Players[activeIdx].Battlefield, cp.Combat.Attackers)
	blockersByID := permanentMapByIDs(cp.Players[defenderIdx].Battlefield, allBlockerIDs(cp.Combat.Blockers))

	result := combat.ResolveCombatDamage(attackers, blockersByID, combat.Assignment{Blockers: cp.Combat.Blockers}, activeIdx, isFirstStrike)

	for p := 0; p < 2; p++ {
		ps := &cp.Players[p]
		kept := ps.Battlefield[:0:0]
		for _, perm := range ps.Battlefield {
			if dmg, ok := result.UpdatedDamage[perm.ID]; ok {
				perm.DamageMarked = dmg
			}
			if result.Destroyed[perm.ID] {
				if !perm.IsToken {
					ps.Graveyard = append(ps.Graveyard, perm.Source)
				}
				continue
			}
			kept = append(kept, perm)
		}
		ps.Battlefield = kept
		cp.Players[p].Life += result.LifeDelta[p]
	}

	return cp
}

// advanceTurn toggles the active player, untaps and clears summoning
// sickness for the new active player's permanents, clears marked damage
// on every permanent, and returns to main_precombat. stateHistory carries
// forward unchanged.
func advanceTurn(cp state.GameState) state.GameState {
	cp.ActivePlayer = state.Opponent(cp.ActivePlayer)
	if cp.ActivePlayer == 0 {
		cp.Turn++
	}

	newActive := &cp.Players[cp.ActivePlayer]
	for i := range newActive.Battlefield {
		newActive.Battlefield[i].Tapped = false
		newActive.Battlefield[i].SummoningSick = false
	}
	for p := 0; p < 2; p++ {
		for i := range cp.Players[p].Battlefield {
			cp.Players[p].Battlefield[i].DamageMarked = 0
		}
	}

	cp.Phase = state.MainPrecombat
	cp.Combat = nil
	return cp
}

func combatHasFirstStriker(cp state.GameState) bool {
	active := cp.Players[cp.ActivePlayer]
	defender := cp.Players[state.Opponent(cp.ActivePlayer)]

	for _, id := range cp.Combat.Attackers {
		if p, ok := findPermanent(active.Battlefield, id); ok {
			if p.HasKeyword(card.FirstStrike) || p.HasKeyword(card.DoubleStrike) {
				return true
			}
		}
	}
	for _, id := range allBlockerIDs(cp.Combat.Blockers) {
		if p, ok := findPermanent(defender.Battlefield, id); ok {
			if p.HasKeyword(card.FirstStrike) || p.HasKeyword(card.DoubleStrike) {
				return true
			}
		}
	}
	return false
}

func cloneBlockerMap(m map[int][]int) map[int][]int {
	cp := make(map[int][]int, len(m))
	for id, blockers := range m {
		cp[id] = append([]int(nil), blockers...)
	}
	return cp
}

func permanentsByIDs(battlefield []state.Permanent, ids []int) []state.Permanent {
	out := make([]state.Permanent, 0, len(ids))
	for _, id := range ids {
		if p, ok := findPermanent(battlefield, id); ok {
			out = append(out, p)
		}
	}
	return out
}

func permanentMapByIDs(battlefield []state.Permanent, ids []int) map[int]state.Permanent {
	out := make(map[int]state.Permanent, len(ids))
	for _, id := range ids {
		if p, ok := findPermanent(battlefield, id); ok {
			out[id] = p
		}
	}
	return out
}

func allBlockerIDs(blockers map[int][]int) []int {
	var ids []int
	for _, bs := range blockers {
		ids = append(ids, bs...)
	}
	return ids
}
