// Package card provides the immutable card and ability value types the
// rest of the combat engine operates over.
package card

import "strings"

// Color is one of the five Magic colors.
type Color string

const (
	White Color = "W"
	Blue  Color = "U"
	Black Color = "B"
	Red   Color = "R"
	Green Color = "G"
)

// CardType is one of the printed card types.
type CardType string

const (
	Creature     CardType = "creature"
	Instant      CardType = "instant"
	Sorcery      CardType = "sorcery"
	Enchantment  CardType = "enchantment"
	Artifact     CardType = "artifact"
	Planeswalker CardType = "planeswalker"
	Land         CardType = "land"
	Battle       CardType = "battle"
)

// Card is an identity-free, immutable description of a printed card. Two
// Permanents may wrap equal Card values; the Card itself carries no game
// state.
type Card struct {
	Name string

	// ManaCost is the printed cost string, display only.
	ManaCost      string
	ConvertedCost int

	Colors     []Color
	Types      []CardType
	Supertypes []string
	Subtypes   []string

	// OracleText is the original printed text, kept for display; Abilities
	// is what the engine actually reasons about.
	OracleText string

	// Power, Toughness, and Loyalty are nil for cards that don't print
	// them. A card with Power/Toughness present is intended as a creature.
	Power     *int
	Toughness *int
	Loyalty   *int

	Abilities []Ability

	// ExternalID is a stable identifier for the printed card, independent
	// of any in-game Permanent id.
	ExternalID string
}

// HasType reports whether the card has the given printed type.
func (c Card) HasType(t CardType) bool {
	for _, ct := range c.Types {
		if ct == t {
			return true
		}
	}
	return false
}

// IsCreature reports whether the card is (among its types) a creature.
func (c Card) IsCreature() bool {
	return c.HasType(Creature)
}

// HasKeyword reports whether the card carries the given evergreen keyword.
func (c Card) HasKeyword(k Keyword) bool {
	for _, a := range c.Abilities {
		if a.Kind == KindKeyword && a.Keyword == k {
			return true
		}
	}
	return false
}

// UnresolvedAbilities returns every Unresolved ability on the card, in
// printed order.
func (c Card) UnresolvedAbilities() []Ability {
	var out []Ability
	for _, a := range c.Abilities {
		if a.Kind == KindUnresolved {
			out = append(out, a)
		}
	}
	return out
}

// HasUnresolvedAbility reports whether any ability on the card failed to
// parse.
func (c Card) HasUnresolvedAbility() bool {
	for _, a := range c.Abilities {
		if a.Kind == KindUnresolved {
			return true
		}
	}
	return false
}

// PowerValue returns the printed power, or 0 if the card has none (e.g. a
// noncreature permanent).
func (c Card) PowerValue() int {
	if c.Power == nil {
		return 0
	}
	return *c.Power
}

// ToughnessValue returns the printed toughness, or 0 if the card has none.
func (c Card) ToughnessValue() int {
	if c.Toughness == nil {
		return 0
	}
	return *c.Toughness
}

func intPtr(v int) *int { return &v }

// NewCreature is a convenience constructor for the common case of a vanilla
// or keyword-only creature, used by tests and the demo command.
func NewCreature(name string, cmc, power, toughness int, keywords ...Keyword) Card {
	abilities := make([]Ability, 0, len(keywords))
	for _, k := range keywords {
		abilities = append(abilities, Ability{Kind: KindKeyword, Keyword: k})
	}
	return Card{
		Name:          name,
		ConvertedCost: cmc,
		Types:         []CardType{Creature},
		Power:         intPtr(power),
		Toughness:     intPtr(toughness),
		OracleText:    strings.Join(keywordStrings(keywords), ", "),
		Abilities:     abilities,
	}
}

func keywordStrings(keywords []Keyword) []string {
	out := make([]string, len(keywords))
	for i, k := range keywords {
		out[i] = string(k)
	}
	return out
}
