package exam

import "errors"

// ErrNoData reports that a cohort has no computed scores for the requested
// area. Callers render a "not enough data" state instead of zeros.
var ErrNoData = errors.New("no scores for area in cohort")

// Stats summarizes a cohort's TRI scores for one area.
type Stats struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// CohortStats aggregates min/max/average over the non-nil scores for an area
// across a cohort snapshot. When a student appears more than once (re-grade),
// only their most recent result counts; a snapshot never mixes two grading
// events for the same student. Returns ErrNoData when no student in the
// snapshot has a computed score for the area.
func CohortStats(snapshot []ExamResult, area Area) (Stats, error) {
	latest := make(map[string]ExamResult, len(snapshot))
	for _, r := range snapshot {
		prev, ok := latest[r.StudentID]
		if !ok || r.GradedAt.After(prev.GradedAt) {
			latest[r.StudentID] = r
		}
	}

	var stats Stats
	var sum float64
	for _, r := range latest {
		score := r.Score(area)
		if score == nil {
			continue
		}
		if stats.Count == 0 || *score < stats.Min {
			stats.Min = *score
		}
		if stats.Count == 0 || *score > stats.Max {
			stats.Max = *score
		}
		sum += *score
		stats.Count++
	}

	if stats.Count == 0 {
		return Stats{}, ErrNoData
	}
	stats.Average = sum / float64(stats.Count)
	return stats, nil
}
