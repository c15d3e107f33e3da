package sim

import (
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func testScenario() Scenario {
	return Scenario{
		Large:    ShipClass{HP: 1222, HeavyAttack: 158, Piercing: 612, Armor: 500, Speed: 28, Org: 50},
		Small:    ShipClass{HP: 283, HeavyAttack: 68, Piercing: 198, Armor: 75, Speed: 35, Org: 50},
		NumSmall: 4,
		Rounds:   20,
	}
}

func TestDamageReduction(t *testing.T) {
	convey.Convey("armor above piercing shrugs off a share of damage", t, func() {
		convey.So(DamageReduction(500, 198), convey.ShouldAlmostEqual, 90*(1-198.0/500.0))
	})
	convey.Convey("piercing at or above armor gets full damage through", t, func() {
		convey.So(DamageReduction(75, 198), convey.ShouldEqual, 0)
		convey.So(DamageReduction(100, 100), convey.ShouldEqual, 0)
	})
}

func TestHpOrgLoss(t *testing.T) {
	convey.Convey("a fresh hull takes no organization damage", t, func() {
		hp, org := hpOrgLoss(100, 283, 283)
		convey.So(hp, convey.ShouldAlmostEqual, 60)
		convey.So(org, convey.ShouldAlmostEqual, 0)
	})
	convey.Convey("organization loss grows as the hull weakens", t, func() {
		_, orgHalf := hpOrgLoss(100, 141.5, 283)
		convey.So(orgHalf, convey.ShouldAlmostEqual, 100*0.4*0.5)
	})
}

func TestBattleDeterministicWithSeed(t *testing.T) {
	convey.Convey("the same seed replays the same battle", t, func() {
		first := New(testScenario(), 42).Run()
		second := New(testScenario(), 42).Run()
		convey.So(first, convey.ShouldResemble, second)
		convey.So(len(first), convey.ShouldBeGreaterThan, 0)
	})
}

func TestBattleInvariants(t *testing.T) {
	convey.Convey("logged state never goes below zero org or keeps dead ships", t, func() {
		log := New(testScenario(), 7).Run()
		convey.So(len(log), convey.ShouldBeLessThanOrEqualTo, 20)
		for _, r := range log {
			convey.So(r.LargeOrg, convey.ShouldBeGreaterThanOrEqualTo, 0)
			for _, s := range r.Smalls {
				convey.So(s.HP, convey.ShouldBeGreaterThan, 0)
				convey.So(s.Org, convey.ShouldBeGreaterThanOrEqualTo, 0)
			}
		}
	})

	convey.Convey("an overwhelming screen ends the battle early", t, func() {
		sc := testScenario()
		sc.Large.HP = 50
		sc.Large.Armor = 0
		log := New(sc, 1).Run()
		convey.So(len(log), convey.ShouldBeLessThan, 20)
		last := log[len(log)-1]
		convey.So(last.LargeHP, convey.ShouldBeLessThanOrEqualTo, 0)
	})
}

func TestDepletedOrgHalvesAttack(t *testing.T) {
	convey.Convey("a ship at zero org fights at half strength", t, func() {
		sc := testScenario()
		sc.Large.Org = 0
		log := New(sc, 3).Run()
		convey.So(log[0].EffectiveAttack, convey.ShouldAlmostEqual, sc.Large.HeavyAttack/2)
	})
}

func TestRoundsDefault(t *testing.T) {
	convey.Convey("a scenario without a round limit gets twenty", t, func() {
		sc := testScenario()
		sc.Rounds = 0
		b := New(sc, 1)
		convey.So(b.scenario.Rounds, convey.ShouldEqual, 20)
	})
}
