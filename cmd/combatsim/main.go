// combatsim is a thin demo CLI over pkg/matchup: it builds a small set of
// built-in three-card decks, runs them through a round robin, and prints
// the standings. Feeding real decks in is the caller's job; this command
// exists to exercise the engine end to end, not to load cards from
// anywhere.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mtgsim/combatcore/internal/logger"
	"github.com/mtgsim/combatcore/pkg/card"
	"github.com/mtgsim/combatcore/pkg/matchup"
)

func main() {
	maxDepth := flag.Int("max-depth", 200, "search depth cap per matchup")
	logLevel := flag.String("log", "META", "log level (META, GAME, PLAYER, CARD)")
	flag.Parse()

	logger.SetLogLevel(logger.ParseLogLevel(*logLevel))
	defer logger.Sync()

	decks := builtinDecks()
	logger.LogMeta("Running round robin over %d decks...", len(decks))

	scores, results := matchup.RunRoundRobin(decks, *maxDepth)

	fmt.Println("=== Matchups ===")
	for _, r := range results {
		fmt.Printf("%s vs %s: %s\n", r.Deck0, r.Deck1, describe(r.Outcome))
	}

	fmt.Println("\n=== Standings ===")
	for _, d := range decks {
		fmt.Printf("%s: %d points\n", d.Name, scores[d.Name])
	}

	logger.LogMeta("Round robin complete.")
}

func describe(o matchup.Outcome) string {
	switch o.Tag {
	case matchup.Player0Wins:
		return "player 0 wins"
	case matchup.Player1Wins:
		return "player 1 wins"
	case matchup.Draw:
		return "draw"
	case matchup.Unresolved:
		return fmt.Sprintf("unresolved (%s)", o.Reason)
	default:
		fmt.Fprintf(os.Stderr, "combatsim: unknown outcome tag %v\n", o.Tag)
		return "unknown"
	}
}

func builtinDecks() []matchup.Deck {
	flyer := card.NewCreature("Gust Eagle", 3, 3, 3, card.Flying)
	bear := card.NewCreature("Grizzly Bear", 2, 2, 2)
	wall := card.NewCreature("Stone Wall", 2, 0, 7, card.Defender)

	return []matchup.Deck{
		{Name: "Flyers", Cards: []card.Card{flyer, flyer, flyer}},
		{Name: "Bears", Cards: []card.Card{bear, bear, bear}},
		{Name: "Walls", Cards: []card.Card{wall, wall, wall}},
	}
}
