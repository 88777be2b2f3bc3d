// Package search implements single-threaded alpha-beta minimax over the
// game tree: depth-limited, with a per-matchup transposition table keyed
// on the canonical state hash and stalemate-by-repetition detection at
// main-precombat checkpoints.
package search

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/mtgsim/combatcore/pkg/action"
	"github.com/mtgsim/combatcore/pkg/state"
)

// DefaultMaxDepth is the depth cap used when a caller doesn't override it.
const DefaultMaxDepth = 200

// transpositionTableSize bounds the per-matchup transposition table.
// Eviction only affects performance: a cache miss just re-derives the
// same value.
const transpositionTableSize = 1 << 16

// Stats accumulates search telemetry for one matchup.
type Stats struct {
	NodesExplored          int
	MaxDepthReached        int
	TerminatedByDepthLimit bool
}

// Searcher runs one matchup's search. It owns a transposition table that
// must not be reused across matchups: HashState keys a position by card
// names only, so a cached value is only valid for the decks it was
// computed with.
type Searcher struct {
	maxDepth int
	table    *lru.Cache[string, int]
	stats    Stats
}

// New builds a fresh Searcher for a single matchup.
func New(maxDepth int) *Searcher {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	table, err := lru.New[string, int](transpositionTableSize)
	if err != nil {
		// Only returns an error for a non-positive size, which never
		// happens with the constant above.
		panic(err)
	}
	return &Searcher{maxDepth: maxDepth, table: table}
}

// Run evaluates the game tree rooted at s and returns +1 (player 0 forced
// win), -1 (player 1 forced win), or 0 (draw/stalemate/depth cap),
// alongside the accumulated Stats.
func (sr *Searcher) Run(s state.GameState) (int, Stats) {
	value := sr.search(s, 0, -1, 1)
	return value, sr.stats
}

func (sr *Searcher) search(s state.GameState, depth, alpha, beta int) int {
	sr.stats.NodesExplored++
	if depth > sr.stats.MaxDepthReached {
		sr.stats.MaxDepthReached = depth
	}

	if value, ok := checkTerminal(s); ok {
		return value
	}
	if depth >= sr.maxDepth {
		sr.stats.TerminatedByDepthLimit = true
		return 0
	}

	var hash string
	if s.Phase == state.MainPrecombat {
		hash = state.HashState(s)
		if _, seen := s.StateHistory[hash]; seen {
			return 0
		}
		if cached, ok := sr.table.Get(hash); ok {
			return cached
		}
	}

	// Auto-resolve phases: a single Pass action, just recurse.
	switch s.Phase {
	case state.FirstStrikeDamage, state.CombatDamage, state.Cleanup:
		next := action.ApplyAction(s, action.Action{Kind: action.KindPass})
		return sr.search(next, depth+1, alpha, beta)
	}

	decisionMaker := decisionMakerFor(s)
	maximizer := decisionMaker == 0

	var nextHistory map[string]struct{}
	if s.Phase == state.MainPrecombat {
		nextHistory = make(map[string]struct{}, len(s.StateHistory)+1)
		for h := range s.StateHistory {
			nextHistory[h] = struct{}{}
		}
		nextHistory[hash] = struct{}{}
	}

	actions := action.EnumerateLegalActions(s)
	if len(actions) == 0 {
		return 0
	}

	best := 0
	if maximizer {
		best = -2
	} else {
		best = 2
	}

	for _, act := range actions {
		child := action.ApplyAction(s, act)
		if nextHistory != nil {
			child.StateHistory = nextHistory
		}
		value := sr.search(child, depth+1, alpha, beta)

		if maximizer {
			if value > best {
				best = value
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if value < best {
				best = value
			}
			if best < beta {
				beta = best
			}
		}
		if beta <= alpha {
			break
		}
	}

	if s.Phase == state.MainPrecombat {
		sr.table.Add(hash, best)
	}
	return best
}

// checkTerminal reports whether s is a terminal position and, if so, its
// value. Life totals are checked before the depth cap, so a position that
// is already decided never gets reported as a depth-limited draw.
func checkTerminal(s state.GameState) (int, bool) {
	p0Dead := s.Players[0].Life <= 0
	p1Dead := s.Players[1].Life <= 0
	switch {
	case p0Dead && p1Dead:
		return 0, true
	case p0Dead:
		return -1, true
	case p1Dead:
		return 1, true
	default:
		return 0, false
	}
}

// decisionMakerFor returns the branching player for s's current phase:
// the defender during declare_blockers, the active player otherwise.
func decisionMakerFor(s state.GameState) int {
	if s.Phase == state.DeclareBlockers {
		return state.Opponent(s.ActivePlayer)
	}
	return s.ActivePlayer
}
