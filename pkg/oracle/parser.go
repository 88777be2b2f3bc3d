// Package oracle lifts printed oracle text into the structured ability set
// pkg/card understands. Parse is a pure function: it never consults game
// state, never mutates its input, and never panics on malformed numeric
// fields (those become an Unresolved ability instead).
package oracle

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mtgsim/combatcore/pkg/card"
)

const unresolvedReason = "no matching parser rule"

// simpleKeywords is the closed set of bare keyword tokens rule 1 accepts.
// Ward and Protection are excluded here because they always carry a
// parameter and are matched by their own dedicated rules instead.
var simpleKeywords = map[string]card.Keyword{
	"flying":         card.Flying,
	"first strike":   card.FirstStrike,
	"double strike":  card.DoubleStrike,
	"trample":        card.Trample,
	"deathtouch":     card.Deathtouch,
	"lifelink":       card.Lifelink,
	"reach":          card.Reach,
	"menace":         card.Menace,
	"defender":       card.Defender,
	"vigilance":      card.Vigilance,
	"indestructible": card.Indestructible,
	"haste":          card.Haste,
	"hexproof":       card.Hexproof,
	"flash":          card.Flash,
}

var reminderText = regexp.MustCompile(`\s*\([^)]*\)`)

var (
	wardRe = regexp.MustCompile(`(?i)^ward\s+(.+?)(?:\s*\([^)]*\))?$`)

	protectionRe = regexp.MustCompile(`(?i)^protection from\s+(.+?)(?:\s*\([^)]*\))?$`)

	etbDamageRe = regexp.MustCompile(`(?i)^when\s+.+?\s+enters(?:\s+the\s+battlefield)?,\s*(?:it\s+)?deals\s+(\d+)\s+damage\s+to\s+(.+?)\.?$`)

	etbLifeGainRe = regexp.MustCompile(`(?i)^when\s+.+?\s+enters(?:\s+the\s+battlefield)?,\s*(?:you\s+)?gain\s+(\d+)\s+life\.?$`)

	etbCreateTokenRe = regexp.MustCompile(`(?i)^when\s+.+?\s+enters(?:\s+the\s+battlefield)?,\s*create\s+(?:(a|an|one|two|three|four|five|six)\s+)?(\d+)/(\d+)(.*?)tokens?\.?$`)

	activatedTapDamageRe = regexp.MustCompile(`(?i)^\{T\}[^:]*:\s*.*?deals\s+(\d+)\s+damage\s+to\s+(.+?)\.?$`)

	activatedTapLifeGainRe = regexp.MustCompile(`(?i)^\{T\}[^:]*:\s*.*?gain\s+(\d+)\s+life\.?$`)

	staticPTModifierRe = regexp.MustCompile(`(?i)^(other creatures you control|enchanted creature|equipped creature|creatures you control)\s+gets?\s+([+-]\d+)/([+-]\d+)\.?$`)
)

var wordCounts = map[string]int{
	"one":   1,
	"two":   2,
	"three": 3,
	"four":  4,
	"five":  5,
	"six":   6,
}

// Parse lifts printed oracle text into an ordered ability sequence. Empty
// or whitespace-only input yields an empty sequence. Each non-empty line
// is tried against an ordered list of rules; the first rule that matches
// wins. A line that matches nothing becomes a single Unresolved ability.
func Parse(oracleText string) []card.Ability {
	lines := strings.Split(oracleText, "\n")
	var abilities []card.Ability
	for _, rawLine := range lines {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}
		abilities = append(abilities, parseLine(line)...)
	}
	return abilities
}

func parseLine(line string) []card.Ability {
	if abilities, ok := tryKeywordLine(line); ok {
		return abilities
	}
	if a, ok := tryWard(line); ok {
		return []card.Ability{a}
	}
	if a, ok := tryProtection(line); ok {
		return []card.Ability{a}
	}
	if a, ok := tryETBDamage(line); ok {
		return []card.Ability{a}
	}
	if a, ok := tryETBLifeGain(line); ok {
		return []card.Ability{a}
	}
	if a, ok := tryETBCreateToken(line); ok {
		return []card.Ability{a}
	}
	if a, ok := tryActivatedTapDamage(line); ok {
		return []card.Ability{a}
	}
	if a, ok := tryActivatedTapLifeGain(line); ok {
		return []card.Ability{a}
	}
	if a, ok := tryStaticPTModifier(line); ok {
		return []card.Ability{a}
	}
	return []card.Ability{unresolved(line, unresolvedReason)}
}

// tryKeywordLine implements rule 1: strip reminder text, split on commas,
// and only accept the line if every resulting token is a known simple
// keyword. A single unrecognized token falls the whole line through to
// the remaining rules, never a partial match.
func tryKeywordLine(line string) ([]card.Ability, bool) {
	stripped := strings.TrimSpace(reminderText.ReplaceAllString(line, ""))
	if stripped == "" {
		return nil, false
	}
	tokens := strings.Split(stripped, ",")
	abilities := make([]card.Ability, 0, len(tokens))
	for _, tok := range tokens {
		normalized := strings.ToLower(strings.TrimSpace(tok))
		kw, ok := simpleKeywords[normalized]
		if !ok {
			return nil, false
		}
		abilities = append(abilities, card.Ability{Kind: card.KindKeyword, Keyword: kw})
	}
	return abilities, true
}

func tryWard(line string) (card.Ability, bool) {
	m := wardRe.FindStringSubmatch(line)
	if m == nil {
		return card.Ability{}, false
	}
	return card.Ability{Kind: card.KindKeyword, Keyword: card.Ward, WardCost: strings.TrimSpace(m[1])}, true
}

func tryProtection(line string) (card.Ability, bool) {
	m := protectionRe.FindStringSubmatch(line)
	if m == nil {
		return card.Ability{}, false
	}
	return card.Ability{Kind: card.KindKeyword, Keyword: card.Protection, ProtectionQualifier: strings.TrimSpace(m[1])}, true
}

func tryETBDamage(line string) (card.Ability, bool) {
	m := etbDamageRe.FindStringSubmatch(line)
	if m == nil {
		return card.Ability{}, false
	}
	amount, err := strconv.Atoi(m[1])
	if err != nil {
		return unresolved(line, "malformed damage amount"), true
	}
	return card.Ability{
		Kind:         card.KindETBDamage,
		DamageAmount: amount,
		DamageTarget: classifyDamageTarget(m[2]),
	}, true
}

func tryETBLifeGain(line string) (card.Ability, bool) {
	m := etbLifeGainRe.FindStringSubmatch(line)
	if m == nil {
		return card.Ability{}, false
	}
	amount, err := strconv.Atoi(m[1])
	if err != nil {
		return unresolved(line, "malformed life amount"), true
	}
	return card.Ability{Kind: card.KindETBLifeGain, LifeAmount: amount}, true
}

func tryETBCreateToken(line string) (card.Ability, bool) {
	m := etbCreateTokenRe.FindStringSubmatch(line)
	if m == nil {
		return card.Ability{}, false
	}
	count := 1
	if word := strings.ToLower(m[1]); word != "" {
		if word == "a" || word == "an" {
			count = 1
		} else if n, ok := wordCounts[word]; ok {
			count = n
		}
	}
	power, err := strconv.Atoi(m[2])
	if err != nil {
		return unresolved(line, "malformed token power"), true
	}
	toughness, err := strconv.Atoi(m[3])
	if err != nil {
		return unresolved(line, "malformed token toughness"), true
	}
	return card.Ability{
		Kind:           card.KindETBCreateToken,
		TokenCount:     count,
		TokenPower:     power,
		TokenToughness: toughness,
		TokenKeywords:  extractKeywordMentions(m[4]),
	}, true
}

func tryActivatedTapDamage(line string) (card.Ability, bool) {
	m := activatedTapDamageRe.FindStringSubmatch(line)
	if m == nil {
		return card.Ability{}, false
	}
	amount, err := strconv.Atoi(m[1])
	if err != nil {
		return unresolved(line, "malformed damage amount"), true
	}
	return card.Ability{
		Kind:         card.KindActivatedTapDamage,
		DamageAmount: amount,
		DamageTarget: classifyDamageTarget(m[2]),
	}, true
}

func tryActivatedTapLifeGain(line string) (card.Ability, bool) {
	m := activatedTapLifeGainRe.FindStringSubmatch(line)
	if m == nil {
		return card.Ability{}, false
	}
	amount, err := strconv.Atoi(m[1])
	if err != nil {
		return unresolved(line, "malformed life amount"), true
	}
	return card.Ability{Kind: card.KindActivatedTapLifeGain, LifeAmount: amount}, true
}

func tryStaticPTModifier(line string) (card.Ability, bool) {
	m := staticPTModifierRe.FindStringSubmatch(line)
	if m == nil {
		return card.Ability{}, false
	}
	power, err := strconv.Atoi(m[2])
	if err != nil {
		return unresolved(line, "malformed power modifier"), true
	}
	toughness, err := strconv.Atoi(m[3])
	if err != nil {
		return unresolved(line, "malformed toughness modifier"), true
	}
	return card.Ability{
		Kind:         card.KindStaticPTModifier,
		PowerMod:     power,
		ToughnessMod: toughness,
		PTTarget:     classifyPTTarget(m[1]),
	}, true
}

// classifyDamageTarget derives the target kind from substring containment,
// most specific first.
func classifyDamageTarget(target string) card.DamageTarget {
	lower := strings.ToLower(target)
	switch {
	case strings.Contains(lower, "creature"):
		return card.TargetCreature
	case strings.Contains(lower, "opponent"):
		return card.TargetOpponent
	case strings.Contains(lower, "player"):
		return card.TargetPlayer
	default:
		return card.TargetAnyTarget
	}
}

func classifyPTTarget(phrase string) card.PTTarget {
	switch strings.ToLower(strings.TrimSpace(phrase)) {
	case "other creatures you control":
		return card.TargetOtherCreaturesYouControl
	case "enchanted creature":
		return card.TargetEnchantedCreature
	case "equipped creature":
		return card.TargetEquippedCreature
	case "creatures you control":
		return card.TargetCreaturesYouControl
	default:
		return card.TargetCreaturesYouControl
	}
}

func extractKeywordMentions(tail string) []card.Keyword {
	lower := strings.ToLower(tail)
	var found []card.Keyword
	for name, kw := range simpleKeywords {
		if strings.Contains(lower, name) {
			found = append(found, kw)
		}
	}
	return found
}

func unresolved(originalLine, reason string) card.Ability {
	return card.Ability{Kind: card.KindUnresolved, OriginalText: originalLine, Reason: reason}
}
