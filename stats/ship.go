package stats

// Ship stat aggregation over parsed equipment files: equipment modules
// contribute additive, multiplicative and averaged stats to the hulls
// that mount them.

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/dzjyyds666/pdx/parse/pdx"
)

// ModuleStats is the stat contribution of one equipment module.
type ModuleStats struct {
	Add        map[string]float64
	Multiply   map[string]float64
	AddAverage map[string]float64
}

// Ship is one hull definition with its default module loadout.
type Ship struct {
	Name        string
	Manpower    float64
	NavalSpeed  float64
	BuildCostIC float64
	Modules     []string
}

// ShipStats is the computed result for one ship.
type ShipStats struct {
	Name  string
	Stats map[string]float64
}

// =========================
// Extraction
// =========================

// ExtractModules reads the equipment_modules block of a parsed module
// file. Files without one yield an empty map.
func ExtractModules(doc *pdx.Map) map[string]ModuleStats {
	out := make(map[string]ModuleStats)
	block, ok := pdx.Get(doc, "equipment_modules")
	if !ok {
		return out
	}
	modules, ok := pdx.AsMap(block)
	if !ok {
		return out
	}
	for _, name := range modules.Keys() {
		content, _ := modules.Get(name)
		m, ok := pdx.AsMap(content)
		if !ok {
			continue
		}
		out[name] = ModuleStats{
			Add:        statMap(m, "add_stats"),
			Multiply:   statMap(m, "multiply_stats"),
			AddAverage: statMap(m, "add_average_stats"),
		}
	}
	return out
}

// ExtractShips reads the equipments block of a parsed hull file, keeping
// only entries that carry both a default loadout and a manpower cost.
func ExtractShips(doc *pdx.Map) []Ship {
	var ships []Ship
	block, ok := pdx.Get(doc, "equipments")
	if !ok {
		return nil
	}
	equipments, ok := pdx.AsMap(block)
	if !ok {
		return nil
	}
	for _, name := range equipments.Keys() {
		entry, _ := equipments.Get(name)
		data, ok := pdx.AsMap(entry)
		if !ok {
			continue
		}
		if _, ok := data.Get("default_modules"); !ok {
			continue
		}
		if _, ok := data.Get("manpower"); !ok {
			continue
		}
		ships = append(ships, Ship{
			Name:        name,
			Manpower:    statValue(data, "manpower"),
			NavalSpeed:  statValue(data, "naval_speed"),
			BuildCostIC: statValue(data, "build_cost_ic"),
			Modules:     moduleNames(data),
		})
	}
	return ships
}

func statMap(m *pdx.Map, key string) map[string]float64 {
	out := make(map[string]float64)
	n, ok := m.Get(key)
	if !ok {
		return out
	}
	inner, ok := pdx.AsMap(n)
	if !ok {
		return out
	}
	for _, k := range inner.Keys() {
		v, _ := inner.Get(k)
		if f, ok := pdx.Float(v); ok {
			out[k] = f
		}
	}
	return out
}

func statValue(m *pdx.Map, key string) float64 {
	n, ok := m.Get(key)
	if !ok {
		return 0
	}
	f, _ := pdx.Float(n)
	return f
}

// moduleNames flattens the default_modules block into the mounted module
// names, slot by slot. A slot that repeated in the source shows up as a
// coalesced list and contributes every entry.
func moduleNames(data *pdx.Map) []string {
	var names []string
	block, ok := data.Get("default_modules")
	if !ok {
		return nil
	}
	slots, ok := pdx.AsMap(block)
	if !ok {
		return nil
	}
	for _, slot := range slots.Keys() {
		n, _ := slots.Get(slot)
		if list, ok := pdx.AsList(n); ok {
			for _, elem := range list.Elems {
				if s, ok := pdx.Unwrap(elem).(*pdx.Scalar); ok {
					if name, ok := s.V.(string); ok {
						names = append(names, name)
					}
				}
			}
			continue
		}
		if s, ok := pdx.Unwrap(n).(*pdx.Scalar); ok {
			if name, ok := s.V.(string); ok {
				names = append(names, name)
			}
		}
	}
	return names
}

// =========================
// Aggregation
// =========================

// Calculate combines a ship's base stats with the contributions of its
// mounted modules: additive stats sum, multiply_stats on naval_speed
// accumulate into a speed multiplier over the base, averaged stats take
// the mean across contributing modules. Unknown modules and the "empty"
// slot filler are skipped.
func Calculate(ship Ship, modules map[string]ModuleStats) ShipStats {
	final := make(map[string]float64)
	averages := make(map[string][]float64)
	speedMod := 0.0

	for _, name := range ship.Modules {
		if name == "empty" {
			continue
		}
		mod, ok := modules[name]
		if !ok {
			continue
		}
		for k, v := range mod.Add {
			final[k] += v
		}
		if v, ok := mod.Multiply["naval_speed"]; ok {
			speedMod += v
		}
		for k, v := range mod.AddAverage {
			averages[k] = append(averages[k], v)
		}
	}

	final["manpower"] = ship.Manpower
	final["build_cost_ic"] += ship.BuildCostIC
	final["naval_speed"] = ship.NavalSpeed * (1 + speedMod)

	for k, vals := range averages {
		sum := 0.0
		for _, v := range vals {
			sum += v
		}
		final[k] = sum / float64(len(vals))
	}

	return ShipStats{Name: ship.Name, Stats: final}
}

// =========================
// CSV Export
// =========================

// WriteCSV writes one row per ship with a ship_name column followed by
// the union of all stat columns in sorted order.
func WriteCSV(w io.Writer, results []ShipStats) error {
	columns := make(map[string]bool)
	for _, r := range results {
		for k := range r.Stats {
			columns[k] = true
		}
	}
	keys := make([]string, 0, len(columns))
	for k := range columns {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cw := csv.NewWriter(w)
	header := append([]string{"ship_name"}, keys...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		row := make([]string, 0, len(header))
		row = append(row, r.Name)
		for _, k := range keys {
			row = append(row, strconv.FormatFloat(r.Stats[k], 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
