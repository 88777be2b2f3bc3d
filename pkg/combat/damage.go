package combat

import (
	"github.com/mtgsim/combatcore/pkg/card"
	"github.com/mtgsim/combatcore/pkg/state"
)

// DamageResult is the outcome of resolving one combat-damage step (either
// the first-strike step or the regular step). It never mutates its
// inputs: UpdatedDamage reports each touched permanent's new total marked
// damage (prior-this-turn plus this step), and Destroyed is the set of
// permanents that died as a result. The caller (pkg/action) is
// responsible for writing these back into the next GameState and routing
// destroyed permanents to their owners' graveyards.
type DamageResult struct {
	UpdatedDamage map[int]int
	Destroyed     map[int]bool
	LifeDelta     [2]int
}

type stepAccumulator struct {
	total      int
	deathtouch bool
}

// ResolveCombatDamage resolves a single damage step for the given
// attackers and block assignment. attackers and blockersByID must
// reflect each permanent's *current* DamageMarked
// (i.e. accumulated damage from an earlier first-strike step, if any),
// since lethal-damage assignment depends on remaining toughness, not raw
// printed toughness.
func ResolveCombatDamage(attackers []state.Permanent, blockersByID map[int]state.Permanent, assignment Assignment, activePlayer int, isFirstStrike bool) DamageResult {
	defender := state.Opponent(activePlayer)
	result := DamageResult{
		UpdatedDamage: map[int]int{},
		Destroyed:     map[int]bool{},
	}

	acc := map[int]*stepAccumulator{}
	getAcc := func(id int) *stepAccumulator {
		a, ok := acc[id]
		if !ok {
			a = &stepAccumulator{}
			acc[id] = a
		}
		return a
	}

	remainingToughness := func(p state.Permanent) int {
		r := p.RemainingToughness() - getAcc(p.ID).total
		if r < 0 {
			return 0
		}
		return r
	}

	strikesThisStep := func(p state.Permanent) bool {
		if isFirstStrike {
			return p.HasKeyword(card.FirstStrike) || p.HasKeyword(card.DoubleStrike)
		}
		return !p.HasKeyword(card.FirstStrike) || p.HasKeyword(card.DoubleStrike)
	}

	blockerAttackerOf := map[int]int{}
	for attackerID, blockerIDs := range assignment.Blockers {
		for _, bID := range blockerIDs {
			blockerAttackerOf[bID] = attackerID
		}
	}

	// Attackers deal damage to their blockers (or the defending player),
	// and lifelink is paid on the full amount dealt this step.
	for _, attacker := range attackers {
		if !strikesThisStep(attacker) {
			continue
		}
		power := attacker.Power()
		if power <= 0 {
			continue
		}
		deathtouch := attacker.HasKeyword(card.Deathtouch)
		lifelink := attacker.HasKeyword(card.Lifelink)
		blockerIDs := assignment.Blockers[attacker.ID]

		if len(blockerIDs) == 0 {
			result.LifeDelta[defender] -= power
		} else {
			remaining := power
			for _, bID := range blockerIDs {
				blocker, alive := blockersByID[bID]
				if !alive {
					// Destroyed in an earlier step this turn (e.g. by
					// first-strike damage); it absorbs nothing now.
					continue
				}
				lethal := remainingToughness(blocker)
				if deathtouch {
					lethal = 1
				}
				assign := remaining
				if lethal < assign {
					assign = lethal
				}
				if assign < 0 {
					assign = 0
				}
				a := getAcc(bID)
				a.total += assign
				if deathtouch && assign > 0 {
					a.deathtouch = true
				}
				remaining -= assign
			}
			if remaining > 0 {
				if attacker.HasKeyword(card.Trample) {
					result.LifeDelta[defender] -= remaining
				} else {
					lastID := blockerIDs[len(blockerIDs)-1]
					a := getAcc(lastID)
					a.total += remaining
					if deathtouch {
						a.deathtouch = true
					}
				}
			}
		}

		if lifelink {
			result.LifeDelta[activePlayer] += power
		}
	}

	// Assigned blockers deal damage back to the single attacker they
	// block.
	for bID, attackerID := range blockerAttackerOf {
		blocker, ok := blockersByID[bID]
		if !ok || !strikesThisStep(blocker) {
			continue
		}
		power := blocker.Power()
		if power <= 0 {
			continue
		}
		a := getAcc(attackerID)
		a.total += power
		if blocker.HasKeyword(card.Deathtouch) {
			a.deathtouch = true
		}
		if blocker.HasKeyword(card.Lifelink) {
			result.LifeDelta[defender] += power
		}
	}

	combatants := map[int]state.Permanent{}
	for _, a := range attackers {
		combatants[a.ID] = a
	}
	for id, b := range blockersByID {
		combatants[id] = b
	}

	for id, a := range acc {
		p, ok := combatants[id]
		if !ok {
			continue
		}
		updatedTotal := p.DamageMarked + a.total
		result.UpdatedDamage[id] = updatedTotal
		if p.HasKeyword(card.Indestructible) {
			continue
		}
		if updatedTotal >= p.Toughness() || a.deathtouch {
			result.Destroyed[id] = true
		}
	}

	return result
}
