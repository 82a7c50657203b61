package exam

// PositionResult places one student's score against their cohort's
// distribution. Percent is presentational positioning between the cohort
// min and max, not a statistical percentile.
type PositionResult struct {
	Percent      float64 `json:"percent"`
	Delta        float64 `json:"delta"`
	AboveAverage bool    `json:"above_average"`
}

// Position interpolates a score linearly between the cohort min and max,
// clamped to [0,100]. When min equals max every score in the cohort is the
// same and the position defaults to the midpoint, 50. Delta is the signed
// difference against the cohort average.
func Position(score float64, stats Stats) PositionResult {
	percent := 50.0
	if stats.Max > stats.Min {
		percent = (score - stats.Min) / (stats.Max - stats.Min) * 100
		if percent < 0 {
			percent = 0
		}
		if percent > 100 {
			percent = 100
		}
	}

	delta := score - stats.Average
	return PositionResult{
		Percent:      percent,
		Delta:        delta,
		AboveAverage: delta > 0,
	}
}
