// Package matchup is the engine's external entry point: it runs the
// unresolved-ability preflight check, drives one simulation to
// completion, and offers a round-robin convenience wrapper over a deck
// pool.
package matchup

import (
	"strings"

	"github.com/mtgsim/combatcore/internal/logger"
	"github.com/mtgsim/combatcore/pkg/card"
	"github.com/mtgsim/combatcore/pkg/search"
	"github.com/mtgsim/combatcore/pkg/state"
)

// Outcome is the closed sum of matchup results.
type Outcome struct {
	Tag    OutcomeTag
	Reason string // only set when Tag == Unresolved
}

// OutcomeTag discriminates Outcome.
type OutcomeTag int

const (
	Player0Wins OutcomeTag = iota
	Player1Wins
	Draw
	Unresolved
)

// Stats mirrors search.Stats at the matchup boundary.
type Stats struct {
	NodesExplored          int
	MaxDepthReached        int
	TerminatedByDepthLimit bool
}

// SimulateMatchup runs the preflight check and, if it passes, drives the
// search to completion. deck0 and deck1 must each be exactly three cards
// (the Three-Card Blind convention); this core does not enforce that
// itself, since deck legality is the caller's concern.
func SimulateMatchup(deck0, deck1 []card.Card, maxDepth int) (Outcome, Stats) {
	if names := unresolvedCardNames(deck0, deck1); len(names) > 0 {
		reason := "cards with unresolved abilities: " + strings.Join(names, ", ")
		return Outcome{Tag: Unresolved, Reason: reason}, Stats{}
	}

	initial := state.Initial(deck0, deck1)
	searcher := search.New(maxDepth)
	value, searchStats := searcher.Run(initial)

	return Outcome{Tag: outcomeTagFor(value)}, Stats{
		NodesExplored:          searchStats.NodesExplored,
		MaxDepthReached:        searchStats.MaxDepthReached,
		TerminatedByDepthLimit: searchStats.TerminatedByDepthLimit,
	}
}

func outcomeTagFor(value int) OutcomeTag {
	switch {
	case value > 0:
		return Player0Wins
	case value < 0:
		return Player1Wins
	default:
		return Draw
	}
}

// unresolvedCardNames returns, in deck0-then-deck1 / printed order, the
// name of every card carrying at least one Unresolved ability. Each one
// is also logged to the parsing-failure diary, so a judge reviewing logs
// later can see exactly which line failed to classify and why.
func unresolvedCardNames(deck0, deck1 []card.Card) []string {
	var names []string
	for _, deck := range [][]card.Card{deck0, deck1} {
		for _, c := range deck {
			unresolved := c.UnresolvedAbilities()
			if len(unresolved) == 0 {
				continue
			}
			names = append(names, c.Name)
			for _, a := range unresolved {
				logger.LogParsingFailure(c.Name, a.OriginalText, a.Reason)
			}
		}
	}
	return names
}

// Deck names a pool entry for RunRoundRobin.
type Deck struct {
	Name  string
	Cards []card.Card
}

// MatchResult records one ordered pairing's outcome.
type MatchResult struct {
	Deck0, Deck1 string
	Outcome      Outcome
}

// RunRoundRobin plays every unordered pair of decks twice, once with each
// deck as player 0, to offset first-player advantage. Win = 3 points,
// draw = 1, loss = 0; unresolved matchups contribute zero points to
// either side until externally adjudicated.
func RunRoundRobin(decks []Deck, maxDepth int) (map[string]int, []MatchResult) {
	scores := make(map[string]int, len(decks))
	for _, d := range decks {
		scores[d.Name] = 0
	}

	var results []MatchResult
	for i := 0; i < len(decks); i++ {
		for j := i + 1; j < len(decks); j++ {
			for _, swap := range []bool{false, true} {
				d0, d1 := decks[i], decks[j]
				if swap {
					d0, d1 = decks[j], decks[i]
				}
				outcome, _ := SimulateMatchup(d0.Cards, d1.Cards, maxDepth)
				results = append(results, MatchResult{Deck0: d0.Name, Deck1: d1.Name, Outcome: outcome})

				switch outcome.Tag {
				case Player0Wins:
					scores[d0.Name] += 3
				case Player1Wins:
					scores[d1.Name] += 3
				case Draw:
					scores[d0.Name]++
					scores[d1.Name]++
				case Unresolved:
					// No points awarded to either side.
				}
			}
		}
	}

	return scores, results
}
