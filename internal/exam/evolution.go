package exam

import "time"

// Trend classifies the change between two consecutive results.
type Trend int

const (
	TrendDeclined Trend = iota
	TrendStable
	TrendImproved
)

var trendNames = map[Trend]string{
	TrendDeclined: "declined",
	TrendStable:   "stable",
	TrendImproved: "improved",
}

func (t Trend) String() string {
	if name, ok := trendNames[t]; ok {
		return name
	}
	return "unknown"
}

// evolutionThreshold is the minimum TRI-point move counted as a real change.
// Smaller deltas are noise in the estimate and report as stable.
const evolutionThreshold = 10.0

// HistoryPoint is one result in a student's per-area score history.
type HistoryPoint struct {
	ExamID   string    `json:"exam_id"`
	GradedAt time.Time `json:"graded_at"`
	Score    float64   `json:"score"`
}

// Comparison is the delta between a result and the immediately older one.
type Comparison struct {
	Delta float64 `json:"delta"`
	Trend Trend   `json:"trend"`
}

// Evolution compares each result in a student's history for one area against
// the immediately preceding result for that same student and area. The
// history is ordered newest first; the returned slice is positionally
// aligned with it and the oldest entry, having nothing to compare against,
// is nil. Comparisons never cross areas or students.
func Evolution(history []HistoryPoint) []*Comparison {
	comparisons := make([]*Comparison, len(history))
	for i := 0; i+1 < len(history); i++ {
		delta := history[i].Score - history[i+1].Score
		trend := TrendStable
		switch {
		case delta > evolutionThreshold:
			trend = TrendImproved
		case delta < -evolutionThreshold:
			trend = TrendDeclined
		}
		comparisons[i] = &Comparison{Delta: delta, Trend: trend}
	}
	return comparisons
}
