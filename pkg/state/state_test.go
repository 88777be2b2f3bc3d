package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtgsim/combatcore/pkg/card"
)

func TestInitialState(t *testing.T) {
	deck0 := []card.Card{card.NewCreature("Bear", 2, 2, 2)}
	deck1 := []card.Card{card.NewCreature("Eagle", 3, 3, 3, card.Flying)}

	s := Initial(deck0, deck1)
	assert.Equal(t, 0, s.ActivePlayer)
	assert.Equal(t, 1, s.Turn)
	assert.Equal(t, MainPrecombat, s.Phase)
	assert.Equal(t, 20, s.Players[0].Life)
	assert.Equal(t, 20, s.Players[1].Life)
	assert.Nil(t, s.Combat)
	assert.Len(t, s.Players[0].Hand, 1)
	assert.Empty(t, s.Players[0].Battlefield)
}

func TestOpponent(t *testing.T) {
	assert.Equal(t, 1, Opponent(0))
	assert.Equal(t, 0, Opponent(1))
}

func TestCloneIsIndependent(t *testing.T) {
	deck0 := []card.Card{card.NewCreature("Bear", 2, 2, 2)}
	deck1 := []card.Card{card.NewCreature("Eagle", 3, 3, 3, card.Flying)}
	s := Initial(deck0, deck1)
	cp := s.Clone()

	cp.Players[0].Hand = append(cp.Players[0].Hand, card.NewCreature("Extra", 1, 1, 1))
	assert.Len(t, s.Players[0].Hand, 1)
	assert.Len(t, cp.Players[0].Hand, 2)
}

func TestCanAttack(t *testing.T) {
	vanilla := Permanent{Source: card.NewCreature("Bear", 2, 2, 2)}
	assert.True(t, CanAttack(vanilla))

	tapped := vanilla
	tapped.Tapped = true
	assert.False(t, CanAttack(tapped))

	defender := Permanent{Source: card.NewCreature("Wall", 2, 0, 7, card.Defender)}
	assert.False(t, CanAttack(defender))

	sick := Permanent{Source: card.NewCreature("Bear", 2, 2, 2), SummoningSick: true}
	assert.False(t, CanAttack(sick))

	hasty := Permanent{Source: card.NewCreature("Raider", 2, 2, 2, card.Haste), SummoningSick: true}
	assert.True(t, CanAttack(hasty))
}

func TestCanBlockFlying(t *testing.T) {
	flyer := Permanent{Source: card.NewCreature("Eagle", 3, 3, 3, card.Flying)}
	groundBlocker := Permanent{Source: card.NewCreature("Bear", 2, 2, 2)}
	reachBlocker := Permanent{Source: card.NewCreature("Spider", 2, 2, 2, card.Reach)}

	assert.False(t, CanBlock(groundBlocker, flyer))
	assert.True(t, CanBlock(reachBlocker, flyer))
}

func TestCanBlockTappedBlocker(t *testing.T) {
	attacker := Permanent{Source: card.NewCreature("Bear", 2, 2, 2)}
	blocker := Permanent{Source: card.NewCreature("Bear", 2, 2, 2), Tapped: true}
	assert.False(t, CanBlock(blocker, attacker))
}

func TestRemainingToughness(t *testing.T) {
	p := Permanent{Source: card.NewCreature("Bear", 2, 2, 2), DamageMarked: 1}
	assert.Equal(t, 1, p.RemainingToughness())

	p.DamageMarked = 5
	assert.Equal(t, 0, p.RemainingToughness())
}

func TestHashStateStability(t *testing.T) {
	deck0 := []card.Card{card.NewCreature("Bear", 2, 2, 2)}
	deck1 := []card.Card{card.NewCreature("Eagle", 3, 3, 3, card.Flying)}

	a := Initial(deck0, deck1)
	b := Initial(append([]card.Card(nil), deck0...), append([]card.Card(nil), deck1...))
	require.Equal(t, HashState(a), HashState(b))
}

func TestHashStateIgnoresBattlefieldOrder(t *testing.T) {
	bear := card.NewCreature("Bear", 2, 2, 2)
	eagle := card.NewCreature("Eagle", 3, 3, 3, card.Flying)

	a := Initial(nil, nil)
	a.Players[0].Battlefield = []Permanent{{ID: 1, Source: bear}, {ID: 2, Source: eagle}}

	b := Initial(nil, nil)
	b.Players[0].Battlefield = []Permanent{{ID: 2, Source: eagle}, {ID: 1, Source: bear}}

	assert.Equal(t, HashState(a), HashState(b))
}

func TestHashStateDiffersOnLife(t *testing.T) {
	a := Initial(nil, nil)
	b := Initial(nil, nil)
	b.Players[0].Life = 19
	assert.NotEqual(t, HashState(a), HashState(b))
}
