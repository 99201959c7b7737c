package normalize

// Curated default tables. These are data, not logic: deployments can
// replace them wholesale through configuration without touching any
// control flow in this package.

// DefaultTier1Cities returns the highest cost-of-living markets.
func DefaultTier1Cities() []string {
	return []string{
		"san francisco", "sf", "bay area", "silicon valley", "palo alto",
		"new york", "nyc", "manhattan", "brooklyn",
		"seattle", "los angeles", "la", "santa monica",
		"boston", "washington dc", "dc", "san diego",
	}
}

// DefaultTier2Cities returns the medium-high cost-of-living markets.
func DefaultTier2Cities() []string {
	return []string{
		"austin", "denver", "portland", "chicago", "miami",
		"philadelphia", "atlanta", "dallas", "houston",
		"minneapolis", "phoenix", "salt lake city", "raleigh",
	}
}

// DefaultCoLMultipliers returns the city to cost-of-living multiplier
// table applied to market percentiles.
func DefaultCoLMultipliers() map[string]float64 {
	return map[string]float64{
		"san francisco": 1.52, "sf": 1.52, "bay area": 1.52, "silicon valley": 1.52,
		"new york": 1.48, "nyc": 1.48, "manhattan": 1.55,
		"seattle": 1.35, "los angeles": 1.42, "la": 1.42,
		"boston": 1.38, "washington dc": 1.35, "dc": 1.35,
		"san diego": 1.32,

		"austin": 1.18, "denver": 1.15, "portland": 1.12,
		"chicago": 1.08, "miami": 1.10, "philadelphia": 1.05,
		"atlanta": 1.03, "dallas": 1.04, "houston": 1.02,

		"remote": 1.00, "work from home": 1.00, "wfh": 1.00,
	}
}

// DefaultTechPremiums returns the curated hot-technology premium table.
// Values are multiplicative adjustments to market percentiles.
func DefaultTechPremiums() map[string]float64 {
	return map[string]float64{
		"rust": 1.20, "golang": 1.15, "go": 1.15,
		"kubernetes": 1.18, "k8s": 1.18, "docker": 1.08,
		"ai": 1.25, "ml": 1.25, "machine learning": 1.25,
		"deep learning": 1.28, "tensorflow": 1.22, "pytorch": 1.22,

		"aws": 1.12, "azure": 1.10, "gcp": 1.15,
		"terraform": 1.15, "ansible": 1.10,

		"react": 1.08, "vue": 1.06, "angular": 1.05,
		"nodejs": 1.10, "typescript": 1.12,

		"spark": 1.18, "hadoop": 1.15, "snowflake": 1.20,
		"tableau": 1.10, "looker": 1.08,

		"cryptography": 1.15, "security": 1.12,

		"blockchain": 1.20, "ethereum": 1.18, "solidity": 1.22,

		"react native": 1.12, "flutter": 1.15, "swift": 1.10,
	}
}
