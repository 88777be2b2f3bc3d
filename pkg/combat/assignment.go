// Package combat implements two pure operations: enumerating legal block
// assignments and resolving a single combat-damage step's keyword
// interactions.
package combat

import (
	"sort"

	"github.com/mtgsim/combatcore/pkg/card"
	"github.com/mtgsim/combatcore/pkg/state"
)

// Assignment maps an attacker permanent id to its ordered blocker id list.
// Only attackers that are actually blocked appear as keys; the order
// within each slice is the attacker's declared damage-assignment order.
type Assignment struct {
	Blockers map[int][]int
}

func cloneAssignment(a Assignment) Assignment {
	cp := Assignment{Blockers: make(map[int][]int, len(a.Blockers))}
	for id, blockers := range a.Blockers {
		cp.Blockers[id] = append([]int(nil), blockers...)
	}
	return cp
}

// EnumerateBlockAssignments generates every legal mapping of potential
// blockers onto attackers: each blocker either doesn't block, or blocks
// exactly one attacker it is legally able to block (state.CanBlock).
// Assignments that block a menace attacker with fewer than two creatures
// are filtered out afterward. Enumeration order is a deterministic
// function of the input slices (required for reproducible search, spec
// §4.6's Determinism property).
func EnumerateBlockAssignments(attackers, potentialBlockers []state.Permanent) []Assignment {
	legalAttackersFor := make([][]int, len(potentialBlockers))
	for i, blocker := range potentialBlockers {
		for _, attacker := range attackers {
			if state.CanBlock(blocker, attacker) {
				legalAttackersFor[i] = append(legalAttackersFor[i], attacker.ID)
			}
		}
	}

	var results []Assignment
	current := Assignment{Blockers: make(map[int][]int)}

	var recurse func(idx int)
	recurse = func(idx int) {
		if idx == len(potentialBlockers) {
			if respectsMenace(attackers, current) {
				results = append(results, cloneAssignment(current))
			}
			return
		}
		blockerID := potentialBlockers[idx].ID

		// Option 1: this blocker does not block.
		recurse(idx + 1)

		// Option 2: this blocker blocks one of its legal attackers, tried
		// in ascending attacker-id order for determinism.
		legal := append([]int(nil), legalAttackersFor[idx]...)
		sort.Ints(legal)
		for _, attackerID := range legal {
			current.Blockers[attackerID] = append(current.Blockers[attackerID], blockerID)
			recurse(idx + 1)
			blockers := current.Blockers[attackerID]
			current.Blockers[attackerID] = blockers[:len(blockers)-1]
			if len(current.Blockers[attackerID]) == 0 {
				delete(current.Blockers, attackerID)
			}
		}
	}
	recurse(0)
	return results
}

func respectsMenace(attackers []state.Permanent, a Assignment) bool {
	for _, attacker := range attackers {
		if !attacker.HasKeyword(card.Menace) {
			continue
		}
		blockers := a.Blockers[attacker.ID]
		if len(blockers) == 1 {
			return false
		}
	}
	return true
}
