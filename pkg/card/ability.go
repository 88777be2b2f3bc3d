package card

// Kind discriminates the closed sum of ability variants lifted from oracle
// text. Every switch over Kind in this module is expected to be
// exhaustive; adding a variant here means updating pkg/oracle,
// pkg/combat, and pkg/state's keyword lookups together.
type Kind int

const (
	KindKeyword Kind = iota
	KindStaticPTModifier
	KindETBDamage
	KindETBLifeGain
	KindETBCreateToken
	KindActivatedTapDamage
	KindActivatedTapLifeGain
	KindUnresolved
)

// Keyword is one of the evergreen keyword abilities the parser recognizes.
type Keyword string

const (
	Flying         Keyword = "flying"
	FirstStrike    Keyword = "first_strike"
	DoubleStrike   Keyword = "double_strike"
	Trample        Keyword = "trample"
	Deathtouch     Keyword = "deathtouch"
	Lifelink       Keyword = "lifelink"
	Reach          Keyword = "reach"
	Menace         Keyword = "menace"
	Defender       Keyword = "defender"
	Vigilance      Keyword = "vigilance"
	Indestructible Keyword = "indestructible"
	Haste          Keyword = "haste"
	Hexproof       Keyword = "hexproof"
	Ward           Keyword = "ward"
	Flash          Keyword = "flash"
	Protection     Keyword = "protection"
)

// PTTarget names who a StaticPTModifier applies to.
type PTTarget string

const (
	TargetSelf                     PTTarget = "self"
	TargetEnchantedCreature        PTTarget = "enchanted_creature"
	TargetEquippedCreature         PTTarget = "equipped_creature"
	TargetOtherCreaturesYouControl PTTarget = "other_creatures_you_control"
	TargetCreaturesYouControl      PTTarget = "creatures_you_control"
)

// DamageTarget names the legal target shapes for ETB/activated damage.
type DamageTarget string

const (
	TargetAnyTarget  DamageTarget = "any_target"
	TargetCreature   DamageTarget = "creature"
	TargetPlayer     DamageTarget = "player"
	TargetOpponent   DamageTarget = "opponent"
)

// Ability is a tagged sum of every ability shape the oracle parser can
// produce. Only the fields relevant to Kind are meaningful; the others are
// zero-valued. This favors a closed value type over a mutable stack-based
// ability engine, since instants-on-the-stack and triggered-ability
// ordering beyond ETB are out of scope.
type Ability struct {
	Kind Kind

	// KindKeyword
	Keyword             Keyword
	WardCost            string // only set when Keyword == Ward
	ProtectionQualifier string // only set when Keyword == Protection

	// KindStaticPTModifier
	PowerMod    int
	ToughnessMod int
	PTTarget    PTTarget
	Condition   string

	// KindETBDamage / KindActivatedTapDamage
	DamageAmount int
	DamageTarget DamageTarget

	// KindETBLifeGain / KindActivatedTapLifeGain
	LifeAmount int

	// KindETBCreateToken
	TokenCount     int
	TokenPower     int
	TokenToughness int
	TokenKeywords  []Keyword

	// KindUnresolved
	OriginalText string
	Reason       string
}
