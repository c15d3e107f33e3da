package pdx

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"gopkg.in/yaml.v3"
)

func TestSafeAccessHelpers(t *testing.T) {
	convey.Convey("navigation unwraps assignments on the way down", t, func() {
		doc := parseDoc(t, `equipment_modules = {
	ship_engine_1 = {
		add_stats = { naval_speed = 10.5 }
	}
}`)
		speed, ok := Get(doc, "equipment_modules", "ship_engine_1", "add_stats", "naval_speed")
		convey.So(ok, convey.ShouldBeTrue)
		f, ok := Float(speed)
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(f, convey.ShouldEqual, 10.5)

		_, ok = Get(doc, "equipment_modules", "missing")
		convey.So(ok, convey.ShouldBeFalse)
	})

	convey.Convey("Float widens integers, rejects strings", t, func() {
		doc := parseDoc(t, "a = 3\nb = tag")
		a, _ := Get(doc, "a")
		f, ok := Float(a)
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(f, convey.ShouldEqual, 3.0)
		b, _ := Get(doc, "b")
		_, ok = Float(b)
		convey.So(ok, convey.ShouldBeFalse)
	})
}

func TestJSONDumpKeepsOrder(t *testing.T) {
	convey.Convey("map keys marshal in first-seen order", t, func() {
		doc := parseDoc(t, "zulu = 1\nalpha = 2\nmike = 3")
		out, err := json.Marshal(doc)
		convey.So(err, convey.ShouldBeNil)
		s := string(out)
		convey.So(strings.Index(s, "zulu"), convey.ShouldBeLessThan, strings.Index(s, "alpha"))
		convey.So(strings.Index(s, "alpha"), convey.ShouldBeLessThan, strings.Index(s, "mike"))
	})
}

func TestYAMLDump(t *testing.T) {
	convey.Convey("assignments dump as operator/value pairs", t, func() {
		doc := parseDoc(t, "limit >= 10")
		out, err := yaml.Marshal(doc)
		convey.So(err, convey.ShouldBeNil)
		convey.So(string(out), convey.ShouldContainSubstring, ">=")
		convey.So(string(out), convey.ShouldContainSubstring, "10")
	})

	convey.Convey("bare entries dump as null", t, func() {
		doc := parseDoc(t, "block = { flag }")
		out, err := yaml.Marshal(doc)
		convey.So(err, convey.ShouldBeNil)
		convey.So(string(out), convey.ShouldContainSubstring, "flag")
	})
}

func TestParseFileMissing(t *testing.T) {
	convey.Convey("a missing file surfaces the open error", t, func() {
		_, err := ParseFile("testdata/does_not_exist.txt")
		convey.So(err, convey.ShouldNotBeNil)
	})
}
