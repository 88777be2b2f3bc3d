package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mtgsim/combatcore/pkg/card"
	"github.com/mtgsim/combatcore/pkg/combat"
	"github.com/mtgsim/combatcore/pkg/state"
)

func TestApplyCastMovesCardsFromHandToBattlefield(t *testing.T) {
	s := state.Initial([]card.Card{card.NewCreature("Bear", 2, 2, 2), card.NewCreature("Eagle", 3, 3, 3, card.Flying)}, nil)

	next := ApplyAction(s, Action{Kind: KindCast, CastIndices: []int{1}})

	require.Len(t, next.Players[0].Hand, 1)
	assert.Equal(t, "Bear", next.Players[0].Hand[0].Name)
	require.Len(t, next.Players[0].Battlefield, 1)
	assert.Equal(t, "Eagle", next.Players[0].Battlefield[0].Source.Name)
	assert.True(t, next.Players[0].Battlefield[0].SummoningSick)
	assert.Equal(t, state.DeclareAttackers, next.Phase)

	// Original state must be untouched.
	assert.Len(t, s.Players[0].Hand, 2)
	assert.Empty(t, s.Players[0].Battlefield)
}

func TestApplyDeclareAttackersTapsNonVigilant(t *testing.T) {
	s := state.Initial(nil, nil)
	s.Phase = state.DeclareAttackers
	s.Players[0].Battlefield = []state.Permanent{
		{ID: 1, Source: card.NewCreature("Bear", 2, 2, 2)},
		{ID: 2, Source: card.NewCreature("Warden", 3, 2, 2, card.Vigilance)},
	}

	next := ApplyAction(s, Action{Kind: KindDeclareAttackers, AttackerIDs: []int{1, 2}})

	byID := map[int]state.Permanent{}
	for _, p := range next.Players[0].Battlefield {
		byID[p.ID] = p
	}
	assert.True(t, byID[1].Tapped)
	assert.False(t, byID[2].Tapped, "vigilance must never tap its creature when attacking")
	assert.Equal(t, state.DeclareBlockers, next.Phase)
}

func TestApplyDeclareAttackersEmptySkipsCombat(t *testing.T) {
	s := state.Initial(nil, nil)
	s.Phase = state.DeclareAttackers
	s.Players[0].Battlefield = []state.Permanent{{ID: 1, Source: card.NewCreature("Bear", 2, 2, 2)}}

	next := ApplyAction(s, Action{Kind: KindDeclareAttackers, AttackerIDs: nil})

	assert.Nil(t, next.Combat)
	assert.Equal(t, state.MainPrecombat, next.Phase)
	assert.Equal(t, 1, next.ActivePlayer, "an empty attack still advances the turn")
}

func TestApplyDeclareBlockersRoutesThroughFirstStrikeWhenNeeded(t *testing.T) {
	s := state.Initial(nil, nil)
	s.Phase = state.DeclareBlockers
	s.Players[0].Battlefield = []state.Permanent{{ID: 1, Source: card.NewCreature("Swordsman", 2, 2, 2, card.FirstStrike)}}
	s.Players[1].Battlefield = []state.Permanent{{ID: 2, Source: card.NewCreature("Bear", 2, 2, 2)}}
	s.Combat = &state.CombatState{Attackers: []int{1}, Blockers: map[int][]int{}}

	next := ApplyAction(s, Action{Kind: KindDeclareBlockers, Assignment: combat.Assignment{Blockers: map[int][]int{1: {2}}}})
	assert.Equal(t, state.FirstStrikeDamage, next.Phase)
}

func TestApplyDeclareBlockersSkipsFirstStrikeWhenNotNeeded(t *testing.T) {
	s := state.Initial(nil, nil)
	s.Phase = state.DeclareBlockers
	s.Players[0].Battlefield = []state.Permanent{{ID: 1, Source: card.NewCreature("Bear", 2, 2, 2)}}
	s.Players[1].Battlefield = []state.Permanent{{ID: 2, Source: card.NewCreature("Bear", 2, 2, 2)}}
	s.Combat = &state.CombatState{Attackers: []int{1}, Blockers: map[int][]int{}}

	next := ApplyAction(s, Action{Kind: KindDeclareBlockers, Assignment: combat.Assignment{Blockers: map[int][]int{1: {2}}}})
	assert.Equal(t, state.CombatDamage, next.Phase)
}

func TestApplyPassCombatDamageKillsAndAdvancesTurn(t *testing.T) {
	s := state.Initial(nil, nil)
	s.Phase = state.CombatDamage
	s.Players[0].Battlefield = []state.Permanent{{ID: 1, Source: card.NewCreature("Bear", 2, 2, 2)}}
	s.Players[1].Battlefield = []state.Permanent{{ID: 2, Source: card.NewCreature("Bear", 2, 2, 2)}}
	s.Combat = &state.CombatState{Attackers: []int{1}, Blockers: map[int][]int{1: {2}}}

	next := ApplyAction(s, Action{Kind: KindPass})

	assert.Empty(t, next.Players[0].Battlefield)
	assert.Empty(t, next.Players[1].Battlefield)
	assert.Len(t, next.Players[0].Graveyard, 1)
	assert.Len(t, next.Players[1].Graveyard, 1)
	assert.Nil(t, next.Combat)
	assert.Equal(t, 1, next.ActivePlayer)
	assert.Equal(t, state.MainPrecombat, next.Phase)
}

func TestApplyPassUnblockedDealsDamageToDefender(t *testing.T) {
	s := state.Initial(nil, nil)
	s.Phase = state.CombatDamage
	s.Players[0].Battlefield = []state.Permanent{{ID: 1, Source: card.NewCreature("Bear", 2, 3, 3)}}
	s.Combat = &state.CombatState{Attackers: []int{1}, Blockers: map[int][]int{}}

	next := ApplyAction(s, Action{Kind: KindPass})
	assert.Equal(t, 17, next.Players[1].Life)
}

func TestAdvanceTurnClearsDamageAndSickness(t *testing.T) {
	s := state.Initial(nil, nil)
	s.Phase = state.MainPostcombat
	s.Players[0].Battlefield = []state.Permanent{{ID: 1, Source: card.NewCreature("Bear", 2, 2, 2), DamageMarked: 1, Tapped: true}}
	s.Players[1].Battlefield = []state.Permanent{{ID: 2, Source: card.NewCreature("Bear", 2, 2, 2), Tapped: true, SummoningSick: true}}

	next := ApplyAction(s, Action{Kind: KindPass})

	assert.Equal(t, 1, next.ActivePlayer)
	assert.False(t, next.Players[1].Battlefield[0].Tapped, "the new active player's permanents untap")
	assert.False(t, next.Players[1].Battlefield[0].SummoningSick)
	assert.Equal(t, 0, next.Players[0].Battlefield[0].DamageMarked, "damage clears for both players")
	assert.Equal(t, state.MainPrecombat, next.Phase)
}

func TestAdvanceTurnIncrementsTurnOnWrap(t *testing.T) {
	s := state.Initial(nil, nil)
	s.ActivePlayer = 1
	s.Phase = state.MainPostcombat
	s.Turn = 1

	next := ApplyAction(s, Action{Kind: KindPass})
	assert.Equal(t, 0, next.ActivePlayer)
	assert.Equal(t, 2, next.Turn)
}
