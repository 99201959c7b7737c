// Package minwage checks offers against regional minimum-wage floors.
package minwage

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/okian/offerlens/internal/domain/model"
)

// Message thresholds, percent above the annual floor.
const (
	meetsCeiling   = 20.0
	comfortCeiling = 50.0
)

type entry struct {
	key  string
	wage float64
}

// Checker resolves free-form locations against an annual minimum-wage
// table.
type Checker struct {
	entries []entry
}

// New builds a checker from an annual-wage-by-location table. Keys
// match case-insensitively. An empty table falls back to the built-in
// default.
func New(wages map[string]float64) *Checker {
	if len(wages) == 0 {
		wages = DefaultWages()
	}
	entries := make([]entry, 0, len(wages))
	for k, v := range wages {
		entries = append(entries, entry{key: strings.ToLower(strings.TrimSpace(k)), wage: v})
	}
	// Longest key first so the most specific entry wins; ties resolve
	// alphabetically to keep lookups deterministic.
	sort.Slice(entries, func(i, j int) bool {
		if len(entries[i].key) != len(entries[j].key) {
			return len(entries[i].key) > len(entries[j].key)
		}
		return entries[i].key < entries[j].key
	})
	return &Checker{entries: entries}
}

// WageFor resolves the annual floor for a location. Exact key match
// first, then containment in the location string.
func (c *Checker) WageFor(location string) (float64, bool) {
	loc := strings.ToLower(strings.TrimSpace(location))
	if loc == "" {
		return 0, false
	}
	for _, e := range c.entries {
		if e.wage <= 0 {
			continue
		}
		if e.key == loc || matchKey(loc, e.key) {
			return e.wage, true
		}
	}
	return 0, false
}

// matchKey matches a table key inside a location string. Keys of three
// characters or fewer ("nyc") match whole words only, so abbreviations
// cannot fire inside unrelated city names.
func matchKey(loc, key string) bool {
	if len(key) > 3 {
		return strings.Contains(loc, key)
	}
	for _, w := range strings.FieldsFunc(loc, func(r rune) bool {
		return r == ' ' || r == ',' || r == '/' || r == '-'
	}) {
		if w == key {
			return true
		}
	}
	return false
}

// Check compares the annual base salary against the resolved floor.
// A location without a wage entry passes vacuously.
func (c *Checker) Check(location string, baseSalary float64) model.WageCompliance {
	wage, ok := c.WageFor(location)
	if !ok {
		return model.WageCompliance{
			Complies: true,
			Message:  "No minimum-wage reference for this location",
		}
	}

	diff := baseSalary - wage
	pct := diff / wage * 100
	comp := model.WageCompliance{
		Applies:             true,
		Complies:            baseSalary >= wage,
		MinimumWage:         &wage,
		Difference:          &diff,
		PercentAboveMinimum: &pct,
	}

	switch {
	case !comp.Complies:
		comp.Message = fmt.Sprintf("WARNING: base salary is %.1f%% below the regional minimum wage of %s", -pct, money(wage))
	case pct < meetsCeiling:
		comp.Message = fmt.Sprintf("Meets the regional minimum wage of %s (%.1f%% above)", money(wage), pct)
	case pct < comfortCeiling:
		comp.Message = fmt.Sprintf("Above the regional minimum wage of %s (%.1f%% above)", money(wage), pct)
	default:
		comp.Message = fmt.Sprintf("Significantly above the regional minimum wage of %s", money(wage))
	}
	return comp
}

func money(v float64) string {
	return "$" + humanize.Comma(int64(v))
}

// DefaultWages is the built-in annual floor table (hourly floor x 2080),
// overridable through configuration.
func DefaultWages() map[string]float64 {
	return map[string]float64{
		"san francisco": 37_600,
		"seattle":       41_500,
		"new york":      33_300,
		"nyc":           33_300,
		"los angeles":   34_900,
		"boston":        31_200,
		"chicago":       32_900,
		"denver":        38_000,
		"portland":      33_200,
		"austin":        15_080,
	}
}
