// Package state defines the immutable per-turn game model: permanents,
// player state, phases, and the whole-game GameState, plus the pure
// helpers Initial, Opponent, CanAttack, CanBlock, and HashState. Every
// mutation documented here returns a new value; nothing in this package
// mutates a GameState in place, so a branch of a search tree can never
// observe a sibling branch's state.
package state

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mtgsim/combatcore/pkg/card"
)

// Phase is one of the turn structure's named steps.
type Phase string

const (
	MainPrecombat     Phase = "main_precombat"
	DeclareAttackers  Phase = "declare_attackers"
	DeclareBlockers   Phase = "declare_blockers"
	FirstStrikeDamage Phase = "first_strike_damage"
	CombatDamage      Phase = "combat_damage"
	MainPostcombat    Phase = "main_postcombat"
	Cleanup           Phase = "cleanup"
)

// Permanent is a battlefield instance wrapping a Card with identity.
type Permanent struct {
	ID            int
	Source        card.Card
	Tapped        bool
	SummoningSick bool
	DamageMarked  int
	IsToken       bool
}

// HasKeyword reports whether the permanent's underlying card carries the
// given keyword.
func (p Permanent) HasKeyword(k card.Keyword) bool {
	return p.Source.HasKeyword(k)
}

// Power is the permanent's current power (the printed value; this engine
// does not model continuous static-ability layers, spec Non-goals).
func (p Permanent) Power() int { return p.Source.PowerValue() }

// Toughness is the permanent's current toughness.
func (p Permanent) Toughness() int { return p.Source.ToughnessValue() }

// RemainingToughness is how much more damage this permanent can take
// before lethal damage, given what's already marked this turn.
func (p Permanent) RemainingToughness() int {
	r := p.Toughness() - p.DamageMarked
	if r < 0 {
		return 0
	}
	return r
}

// clone returns a copy of the permanent. The copy shares the Source
// card's slices (Abilities, Types, ...) with the original.
func (p Permanent) clone() Permanent { return p }

// PlayerState is one player's board, hand, and life total.
type PlayerState struct {
	Life        int
	Hand        []card.Card
	Battlefield []Permanent
	Graveyard   []card.Card
}

func (ps PlayerState) clone() PlayerState {
	cp := ps
	cp.Hand = append([]card.Card(nil), ps.Hand...)
	cp.Battlefield = append([]Permanent(nil), ps.Battlefield...)
	cp.Graveyard = append([]card.Card(nil), ps.Graveyard...)
	return cp
}

// CombatState holds the current attack/block declarations. Blockers maps
// an attacker permanent id to its ordered blocker id list; the order is
// the attacker's declared damage-assignment order.
type CombatState struct {
	Attackers []int
	Blockers  map[int][]int
}

func (c *CombatState) clone() *CombatState {
	if c == nil {
		return nil
	}
	cp := &CombatState{Attackers: append([]int(nil), c.Attackers...)}
	cp.Blockers = make(map[int][]int, len(c.Blockers))
	for id, blockers := range c.Blockers {
		cp.Blockers[id] = append([]int(nil), blockers...)
	}
	return cp
}

// GameState is the complete, immutable state of a game in progress.
type GameState struct {
	ActivePlayer    int
	Players         [2]PlayerState
	Turn            int
	Phase           Phase
	Combat          *CombatState
	StateHistory    map[string]struct{}
	NextPermanentID int
}

// Clone returns a deep copy of the state so callers can build a successor
// without the original observing the mutation.
func (s GameState) Clone() GameState {
	cp := s
	cp.Players = [2]PlayerState{s.Players[0].clone(), s.Players[1].clone()}
	cp.Combat = s.Combat.clone()
	cp.StateHistory = make(map[string]struct{}, len(s.StateHistory))
	for h := range s.StateHistory {
		cp.StateHistory[h] = struct{}{}
	}
	return cp
}

// Initial builds the starting state for a 3CB game: each deck becomes its
// owner's hand, both players start at 20 life with empty battlefields and
// graveyards, player 0 is active, and the game begins in main_precombat on
// turn 1.
func Initial(deck0, deck1 []card.Card) GameState {
	return GameState{
		ActivePlayer: 0,
		Players: [2]PlayerState{
			{Life: 20, Hand: append([]card.Card(nil), deck0...)},
			{Life: 20, Hand: append([]card.Card(nil), deck1...)},
		},
		Turn:            1,
		Phase:           MainPrecombat,
		Combat:          nil,
		StateHistory:    make(map[string]struct{}),
		NextPermanentID: 1,
	}
}

// Opponent returns the other seat.
func Opponent(p int) int { return 1 - p }

// CanAttack reports whether a permanent is eligible to be declared as an
// attacker: untapped, no defender, a creature, and (unless it has haste)
// not summoning sick.
func CanAttack(p Permanent) bool {
	if p.Tapped {
		return false
	}
	if p.HasKeyword(card.Defender) {
		return false
	}
	if !p.Source.IsCreature() {
		return false
	}
	if p.SummoningSick && !p.HasKeyword(card.Haste) {
		return false
	}
	return true
}

// CanBlock reports whether blocker may legally be assigned to block
// attacker, ignoring the menace count requirement (enforced instead at
// assignment-enumeration time).
func CanBlock(blocker, attacker Permanent) bool {
	if blocker.Tapped {
		return false
	}
	if !blocker.Source.IsCreature() {
		return false
	}
	if attacker.HasKeyword(card.Flying) {
		if !blocker.HasKeyword(card.Flying) && !blocker.HasKeyword(card.Reach) {
			return false
		}
	}
	return true
}

// HashState produces a canonical encoding of the board: active
// player, phase, both life totals, and for each player a sorted bag of
// (cardName, tapped?, summoningSick?) triples for the battlefield and a
// sorted bag of card names for the hand. Sorting guarantees that
// equivalent board positions reached via different action orderings share
// a key.
func HashState(s GameState) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(s.ActivePlayer))
	b.WriteByte('|')
	b.WriteString(string(s.Phase))
	for _, ps := range s.Players {
		b.WriteByte('|')
		b.WriteString(strconv.Itoa(ps.Life))
		b.WriteByte('|')
		b.WriteString(sortedBattlefieldBag(ps.Battlefield))
		b.WriteByte('|')
		b.WriteString(sortedHandBag(ps.Hand))
	}
	return b.String()
}

func sortedBattlefieldBag(battlefield []Permanent) string {
	entries := make([]string, len(battlefield))
	for i, p := range battlefield {
		entries[i] = p.Source.Name + "," + strconv.FormatBool(p.Tapped) + "," + strconv.FormatBool(p.SummoningSick)
	}
	sort.Strings(entries)
	return strings.Join(entries, ";")
}

func sortedHandBag(hand []card.Card) string {
	names := make([]string, len(hand))
	for i, c := range hand {
		names[i] = c.Name
	}
	sort.Strings(names)
	return strings.Join(names, ";")
}
