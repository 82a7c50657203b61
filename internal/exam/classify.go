package exam

// Tier is a discrete performance band for a TRI score. Tiers are ordered:
// a higher value always means a better band.
type Tier int

const (
	TierNotComputed Tier = iota
	TierCritical
	TierBelowAverage
	TierAverage
	TierAboveAverage
	TierExcellent
)

var tierNames = map[Tier]string{
	TierNotComputed:  "not_computed",
	TierCritical:     "critical",
	TierBelowAverage: "below_average",
	TierAverage:      "average",
	TierAboveAverage: "above_average",
	TierExcellent:    "excellent",
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "unknown"
}

// scoreBands maps ascending upper bounds to tiers. A score below a band's
// upper bound (and at or above the previous band's) falls in that band; a
// score at or above the last bound is TierExcellent. New bands are added
// here, not as new branches.
var scoreBands = []struct {
	upper float64
	tier  Tier
}{
	{450, TierCritical},
	{550, TierBelowAverage},
	{650, TierAverage},
	{750, TierAboveAverage},
}

// Classify maps a TRI score to its performance tier. A nil or zero score
// means the TRI model produced no estimate and maps to TierNotComputed.
// Classification is total: every other real score lands in exactly one band.
func Classify(score *float64) Tier {
	if score == nil || *score == 0 {
		return TierNotComputed
	}
	for _, band := range scoreBands {
		if *score < band.upper {
			return band.tier
		}
	}
	return TierExcellent
}
