package sim

// Naval battle round engine: one large ship against a screen of
// identical small ships, using the HOI4 naval damage reduction and
// HP/ORG loss formulas.

import "math/rand"

// ShipClass is the stat line shared by every ship of one class.
type ShipClass struct {
	HP          float64 `toml:"hp"`
	HeavyAttack float64 `toml:"heavy_attack"`
	Piercing    float64 `toml:"piercing"`
	Armor       float64 `toml:"armor"`
	Speed       float64 `toml:"speed"`
	Org         float64 `toml:"org"`
}

// Scenario is one battle setup: a large ship versus NumSmall copies of
// the small ship class, fought for at most Rounds rounds.
type Scenario struct {
	Large    ShipClass `toml:"large"`
	Small    ShipClass `toml:"small"`
	NumSmall int       `toml:"num_small"`
	Rounds   int       `toml:"rounds"`
}

// ShipState is the remaining HP/ORG of one ship mid-battle.
type ShipState struct {
	HP  float64
	Org float64
}

// Round is the battle log entry for one combat round. Smalls holds the
// state of every surviving escort after the round, in fleet order.
type Round struct {
	Number          int
	LargeHP         float64
	LargeOrg        float64
	EffectiveAttack float64
	DamageToLarge   float64
	DamageReduction float64
	Smalls          []ShipState
}

// DamageReduction is the percentage of incoming damage an armored ship
// shrugs off: 90*(1 - piercing/armor) when armor exceeds piercing,
// otherwise nothing.
func DamageReduction(armor, piercing float64) float64 {
	if armor > piercing {
		return 90 * (1 - piercing/armor)
	}
	return 0
}

// hpOrgLoss splits incoming damage 60/40 between hull and organization,
// with the ORG share scaled by the fraction of base HP already lost, so
// ORG damage starts small and grows as the hull weakens.
func hpOrgLoss(damage, currentHP, baseHP float64) (hpLoss, orgLoss float64) {
	mult := 1 - currentHP/baseHP
	return damage * 0.6, damage * 0.4 * mult
}

// Battle runs one scenario. The random source picks the large ship's
// target each round; seed it for reproducible runs.
type Battle struct {
	scenario Scenario
	rng      *rand.Rand
}

func New(sc Scenario, seed int64) *Battle {
	if sc.Rounds <= 0 {
		sc.Rounds = 20
	}
	return &Battle{scenario: sc, rng: rand.New(rand.NewSource(seed))}
}

// Run fights the battle round by round until one side is eliminated or
// the round limit is reached, returning the full battle log.
func (b *Battle) Run() []Round {
	sc := b.scenario

	largeHP := sc.Large.HP
	largeOrg := sc.Large.Org
	smalls := make([]ShipState, sc.NumSmall)
	for i := range smalls {
		smalls[i] = ShipState{HP: sc.Small.HP, Org: sc.Small.Org}
	}

	dr := DamageReduction(sc.Large.Armor, sc.Small.Piercing)

	var log []Round
	for round := 1; round <= sc.Rounds; round++ {
		smalls = removeDead(smalls)
		if largeHP <= 0 || len(smalls) == 0 {
			break
		}

		// Large ship shells one surviving escort.
		target := &smalls[b.rng.Intn(len(smalls))]
		hpLoss, orgLoss := hpOrgLoss(sc.Large.HeavyAttack, target.HP, sc.Small.HP)
		target.HP -= hpLoss
		target.Org = max(0, target.Org-orgLoss)

		smalls = removeDead(smalls)

		// Surviving escorts return fire together, reduced by armor.
		totalDamage := float64(len(smalls)) * sc.Small.HeavyAttack * (1 - dr/100)
		hpLoss, orgLoss = hpOrgLoss(totalDamage, largeHP, sc.Large.HP)
		largeHP -= hpLoss
		largeOrg = max(0, largeOrg-orgLoss)

		// A ship with no organization left fights at half strength.
		largePenalty := 0.0
		if largeOrg <= 0 {
			largePenalty = 0.5
		}
		effectiveAttack := sc.Large.HeavyAttack * (1 - largePenalty)

		log = append(log, Round{
			Number:          round,
			LargeHP:         largeHP,
			LargeOrg:        largeOrg,
			EffectiveAttack: effectiveAttack,
			DamageToLarge:   totalDamage,
			DamageReduction: dr,
			Smalls:          append([]ShipState(nil), smalls...),
		})
	}
	return log
}

func removeDead(ships []ShipState) []ShipState {
	alive := ships[:0]
	for _, s := range ships {
		if s.HP > 0 {
			alive = append(alive, s)
		}
	}
	return alive
}
