package stats

import (
	"strings"
	"testing"

	"github.com/dzjyyds666/pdx/parse/pdx"
	"github.com/smartystreets/goconvey/convey"
)

const moduleSrc = `
equipment_modules = {
	engine_1 = {
		add_stats = { build_cost_ic = 100 }
		multiply_stats = { naval_speed = 0.1 }
		add_average_stats = { reliability = 0.6 }
	}
	gun_1 = {
		add_stats = { lg_attack = 2.5 build_cost_ic = 50 }
		add_average_stats = { reliability = 0.2 }
	}
}
`

const shipSrc = `
equipments = {
	ship_hull_light_1 = {
		year = 1922
		manpower = 200
		naval_speed = 30
		build_cost_ic = 1000
		default_modules = {
			fixed_ship_engine_slot = engine_1
			fixed_ship_battery_slot = gun_1
			front_1 = empty
		}
	}
	ship_hull_light_template = {
		year = 1922
	}
}
`

func parseSrc(t *testing.T, src string) *pdx.Map {
	t.Helper()
	doc, err := pdx.ParseDocument(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestExtractModules(t *testing.T) {
	convey.Convey("module stat blocks are pulled out by name", t, func() {
		modules := ExtractModules(parseSrc(t, moduleSrc))
		convey.So(modules, convey.ShouldContainKey, "engine_1")
		convey.So(modules, convey.ShouldContainKey, "gun_1")
		convey.So(modules["engine_1"].Add["build_cost_ic"], convey.ShouldEqual, 100)
		convey.So(modules["engine_1"].Multiply["naval_speed"], convey.ShouldAlmostEqual, 0.1)
		convey.So(modules["gun_1"].AddAverage["reliability"], convey.ShouldAlmostEqual, 0.2)
	})

	convey.Convey("a file without equipment_modules yields nothing", t, func() {
		modules := ExtractModules(parseSrc(t, "other = { a = 1 }"))
		convey.So(modules, convey.ShouldBeEmpty)
	})
}

func TestExtractShips(t *testing.T) {
	convey.Convey("only hulls with a loadout and manpower qualify", t, func() {
		ships := ExtractShips(parseSrc(t, shipSrc))
		convey.So(ships, convey.ShouldHaveLength, 1)
		ship := ships[0]
		convey.So(ship.Name, convey.ShouldEqual, "ship_hull_light_1")
		convey.So(ship.Manpower, convey.ShouldEqual, 200)
		convey.So(ship.NavalSpeed, convey.ShouldEqual, 30)
		convey.So(ship.Modules, convey.ShouldResemble, []string{"engine_1", "gun_1", "empty"})
	})
}

func TestCalculate(t *testing.T) {
	convey.Convey("module contributions fold into the hull's base stats", t, func() {
		modules := ExtractModules(parseSrc(t, moduleSrc))
		ships := ExtractShips(parseSrc(t, shipSrc))
		result := Calculate(ships[0], modules)

		convey.So(result.Name, convey.ShouldEqual, "ship_hull_light_1")
		convey.So(result.Stats["manpower"], convey.ShouldEqual, 200)
		convey.So(result.Stats["build_cost_ic"], convey.ShouldEqual, 1150)
		convey.So(result.Stats["naval_speed"], convey.ShouldAlmostEqual, 33)
		convey.So(result.Stats["lg_attack"], convey.ShouldAlmostEqual, 2.5)
		convey.So(result.Stats["reliability"], convey.ShouldAlmostEqual, 0.4)
	})
}

func TestWriteCSV(t *testing.T) {
	convey.Convey("rows share a sorted union of stat columns", t, func() {
		results := []ShipStats{
			{Name: "a", Stats: map[string]float64{"manpower": 200, "naval_speed": 33}},
			{Name: "b", Stats: map[string]float64{"manpower": 500}},
		}
		var buf strings.Builder
		err := WriteCSV(&buf, results)
		convey.So(err, convey.ShouldBeNil)
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		convey.So(lines, convey.ShouldHaveLength, 3)
		convey.So(lines[0], convey.ShouldEqual, "ship_name,manpower,naval_speed")
		convey.So(lines[1], convey.ShouldEqual, "a,200,33")
		convey.So(lines[2], convey.ShouldEqual, "b,500,0")
	})
}
