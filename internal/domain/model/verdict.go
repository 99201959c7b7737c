package model

// Verdict is the ordered assessment of an offer against market bands.
type Verdict string

// Verdicts, worst to best. VerdictInsufficientData sits outside the
// ordering and is returned when market percentiles are missing.
const (
	VerdictSignificantlyUnderpaid Verdict = "SIGNIFICANTLY_UNDERPAID"
	VerdictUnderpaid              Verdict = "UNDERPAID"
	VerdictFair                   Verdict = "FAIR"
	VerdictCompetitive            Verdict = "COMPETITIVE"
	VerdictExcellent              Verdict = "EXCELLENT"
	VerdictInsufficientData       Verdict = "INSUFFICIENT_DATA"
)

var verdictRanks = map[Verdict]int{
	VerdictSignificantlyUnderpaid: 0,
	VerdictUnderpaid:              1,
	VerdictFair:                   2,
	VerdictCompetitive:            3,
	VerdictExcellent:              4,
}

// Rank returns the position of v in the worst-to-best ordering, or -1
// for INSUFFICIENT_DATA and unknown values.
func (v Verdict) Rank() int {
	if r, ok := verdictRanks[v]; ok {
		return r
	}
	return -1
}
