// Package normalize canonicalizes free-form offer fields into the stable
// keys used by the salary reference store. It is shared by the write path
// (contribution ingestion) and the read path (market queries), which is
// what keeps the two sides of the store consistent.
//
// Everything here is pure and deterministic: unmatched input always maps
// to a defined default, never to an error.
package normalize

import (
	"sort"
	"strings"

	"github.com/okian/offerlens/internal/domain/model"
)

// UnknownTitle is returned for empty titles.
const UnknownTitle = "unknown"

const maxKeyLength = 50

// seniorityRule maps seniority keywords inside a matched title family to
// a canonical key.
type seniorityRule struct {
	terms []string
	key   string
}

// titleRule maps a family of role keywords to canonical keys, optionally
// refined by seniority keywords. Rules are evaluated in order; the first
// matching family wins.
type titleRule struct {
	terms     []string
	key       string
	seniority []seniorityRule
}

var titleRules = []titleRule{
	{
		terms: []string{"software engineer", "swe", "software developer", "developer"},
		key:   "software_engineer",
		seniority: []seniorityRule{
			{terms: []string{"senior", "sr", "lead"}, key: "senior_software_engineer"},
			{terms: []string{"staff"}, key: "staff_software_engineer"},
			{terms: []string{"principal"}, key: "principal_software_engineer"},
			{terms: []string{"junior", "jr", "associate"}, key: "junior_software_engineer"},
		},
	},
	{
		terms: []string{"product manager", "pm"},
		key:   "product_manager",
		seniority: []seniorityRule{
			{terms: []string{"senior", "sr"}, key: "senior_product_manager"},
			{terms: []string{"principal", "lead"}, key: "principal_product_manager"},
		},
	},
	{
		terms: []string{"data scientist", "data science"},
		key:   "data_scientist",
		seniority: []seniorityRule{
			{terms: []string{"senior", "sr"}, key: "senior_data_scientist"},
		},
	},
	{terms: []string{"devops", "dev ops", "platform engineer", "sre"}, key: "devops_engineer"},
	{terms: []string{"ux designer", "ui designer", "product designer", "ui/ux"}, key: "ux_designer"},
	{terms: []string{"backend", "back end"}, key: "backend_engineer"},
	{terms: []string{"frontend", "front end"}, key: "frontend_engineer"},
	{terms: []string{"full stack", "fullstack"}, key: "fullstack_engineer"},
}

// canonicalKeys lets already-normalized titles pass through unchanged,
// which guarantees Title(Title(x)) == Title(x) on the matched path.
var canonicalKeys = map[string]struct{}{}

func init() {
	canonicalKeys[UnknownTitle] = struct{}{}
	for _, r := range titleRules {
		canonicalKeys[r.key] = struct{}{}
		for _, s := range r.seniority {
			canonicalKeys[s.key] = struct{}{}
		}
	}
}

// Title normalizes a raw job title into a canonical key. Titles outside
// the known role families fall back to a slug of the lowercased text.
func Title(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	if t == "" {
		return UnknownTitle
	}
	if _, ok := canonicalKeys[t]; ok {
		return t
	}
	for _, r := range titleRules {
		if !containsAny(t, r.terms) {
			continue
		}
		for _, s := range r.seniority {
			if containsAny(t, s.terms) {
				return s.key
			}
		}
		return r.key
	}
	return slug(t)
}

// slug lowercases and collapses separators into underscores. Slugging is
// idempotent: applying it to its own output changes nothing.
func slug(t string) string {
	replacer := strings.NewReplacer(" ", "_", "-", "_", "/", "_", ",", "_", ".", "_")
	s := replacer.Replace(t)
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	s = strings.Trim(s, "_")
	if len(s) > maxKeyLength {
		s = strings.Trim(s[:maxKeyLength], "_")
	}
	if s == "" {
		return UnknownTitle
	}
	return s
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

// Company tier labels used in stored records and narrative context.
const (
	CompanyTierFAANG    = "FAANG"
	CompanyTierTopTech  = "Top Tech"
	CompanyTierStartup  = "Startup"
	CompanyTierStandard = "Standard"
	CompanyTierUnknown  = "Unknown"
)

var faangCompanies = []string{
	"google", "alphabet", "amazon", "meta", "facebook", "apple", "netflix", "microsoft",
}

var topTechCompanies = []string{
	"uber", "lyft", "airbnb", "spotify", "twitter", "linkedin",
	"salesforce", "oracle", "adobe", "intuit", "paypal", "square",
	"stripe", "coinbase", "discord", "slack", "zoom", "tiktok",
}

var startupCompanies = []string{
	"plaid", "robinhood", "databricks", "snowflake", "postman", "freshworks",
}

// CompanyTier buckets a company name for record keeping and narrative
// context. It carries no weight in classification or negotiation math.
func CompanyTier(company string) string {
	c := strings.ToLower(strings.TrimSpace(company))
	if c == "" {
		return CompanyTierUnknown
	}
	switch {
	case containsAny(c, faangCompanies):
		return CompanyTierFAANG
	case containsAny(c, topTechCompanies):
		return CompanyTierTopTech
	case containsAny(c, startupCompanies):
		return CompanyTierStartup
	default:
		return CompanyTierStandard
	}
}

// remoteTerms collapse into tier3 with a neutral multiplier.
var remoteTerms = []string{"remote", "work from home", "wfh"}

// colEntry is one city -> multiplier pair, ordered for deterministic
// substring matching.
type colEntry struct {
	city       string
	multiplier float64
}

// Normalizer resolves locations against curated city tables. The tables
// are configuration data injected at construction, not embedded logic.
type Normalizer struct {
	tier1Cities    []string
	tier2Cities    []string
	colMultipliers []colEntry
	tierDefaults   map[model.LocationTier]float64
}

// Option applies a configuration option to the Normalizer.
type Option func(*Normalizer)

// WithTierCities sets the curated tier1/tier2 city lists.
func WithTierCities(tier1, tier2 []string) Option {
	return func(n *Normalizer) {
		if len(tier1) > 0 {
			n.tier1Cities = lowered(tier1)
		}
		if len(tier2) > 0 {
			n.tier2Cities = lowered(tier2)
		}
	}
}

// WithCoLMultipliers sets the city -> cost-of-living multiplier table.
func WithCoLMultipliers(multipliers map[string]float64) Option {
	return func(n *Normalizer) {
		if len(multipliers) > 0 {
			n.colMultipliers = orderedEntries(multipliers)
		}
	}
}

// WithTierDefaults sets the fallback multiplier per location tier.
func WithTierDefaults(defaults map[model.LocationTier]float64) Option {
	return func(n *Normalizer) {
		if len(defaults) > 0 {
			n.tierDefaults = defaults
		}
	}
}

// New constructs a Normalizer with the curated default tables.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		tier1Cities:    DefaultTier1Cities(),
		tier2Cities:    DefaultTier2Cities(),
		colMultipliers: orderedEntries(DefaultCoLMultipliers()),
		tierDefaults: map[model.LocationTier]float64{
			model.Tier1: 1.4,
			model.Tier2: 1.1,
			model.Tier3: 1.0,
		},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Tier resolves a raw location into a location tier. Remote and
// unmatched locations are tier3.
func (n *Normalizer) Tier(location string) model.LocationTier {
	loc := strings.ToLower(strings.TrimSpace(location))
	if loc == "" {
		return model.Tier3
	}
	if containsAny(loc, remoteTerms) {
		return model.Tier3
	}
	if matchAnyCity(loc, n.tier1Cities) {
		return model.Tier1
	}
	if matchAnyCity(loc, n.tier2Cities) {
		return model.Tier2
	}
	return model.Tier3
}

// CoLMultiplier returns the cost-of-living multiplier for a location:
// the first matching city table entry, then the tier default, then 1.0.
func (n *Normalizer) CoLMultiplier(location string) float64 {
	loc := strings.ToLower(strings.TrimSpace(location))
	for _, e := range n.colMultipliers {
		if matchCity(loc, e.city) {
			return e.multiplier
		}
	}
	if m, ok := n.tierDefaults[n.Tier(location)]; ok {
		return m
	}
	return 1.0
}

func matchAnyCity(loc string, cities []string) bool {
	for _, city := range cities {
		if matchCity(loc, city) {
			return true
		}
	}
	return false
}

// matchCity matches by substring, except abbreviations of three runes or
// fewer which must appear as a whole word ("la" must not match inside
// "atlanta").
func matchCity(loc, city string) bool {
	if len(city) > 3 {
		return strings.Contains(loc, city)
	}
	for _, word := range strings.FieldsFunc(loc, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		if word == city {
			return true
		}
	}
	return false
}

// orderedEntries flattens a multiplier map into a deterministic scan
// order: longest city names first so specific names win over
// abbreviations, ties broken alphabetically.
func orderedEntries(m map[string]float64) []colEntry {
	entries := make([]colEntry, 0, len(m))
	for city, mult := range m {
		entries = append(entries, colEntry{city: strings.ToLower(city), multiplier: mult})
	}
	sort.Slice(entries, func(i, j int) bool {
		if len(entries[i].city) != len(entries[j].city) {
			return len(entries[i].city) > len(entries[j].city)
		}
		return entries[i].city < entries[j].city
	})
	return entries
}

func lowered(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
