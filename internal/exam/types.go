// Package exam holds the performance engine's domain types and the pure
// per-result computations: score classification, cohort statistics,
// difficulty stratification, cohort positioning and evolution tracking.
package exam

import "time"

// Area identifies one of the four ENEM subject areas.
type Area string

const (
	AreaLinguagens Area = "linguagens"
	AreaHumanas    Area = "humanas"
	AreaNatureza   Area = "natureza"
	AreaMatematica Area = "matematica"
)

// Areas lists the subject areas in presentation order.
var Areas = []Area{AreaLinguagens, AreaHumanas, AreaNatureza, AreaMatematica}

// ExamResult is one grading event for one student on one exam. Results are
// immutable: a re-grade produces a new result with a later GradedAt, it never
// mutates an existing one. A nil score means the TRI model has not produced
// an estimate for that area.
type ExamResult struct {
	StudentID string            `json:"student_id"`
	ExamID    string            `json:"exam_id"`
	GradedAt  time.Time         `json:"graded_at"`
	Overall   *float64          `json:"overall,omitempty"`
	Scores    map[Area]*float64 `json:"scores,omitempty"`
	Correct   int               `json:"correct"`
	Wrong     int               `json:"wrong"`
	Blank     int               `json:"blank"`
	Answers   []string          `json:"answers,omitempty"`
}

// Score returns the student's TRI score for an area, nil if not computed.
func (r ExamResult) Score(area Area) *float64 {
	if r.Scores == nil {
		return nil
	}
	return r.Scores[area]
}

// QuestionStat carries population-level response data for one exam question.
// Supplied by the grading subsystem; CorrectRate is nil until enough of the
// population has been graded.
type QuestionStat struct {
	Number      int      `json:"number"`
	Area        Area     `json:"area"`
	Label       string   `json:"label,omitempty"`
	CorrectRate *float64 `json:"correct_rate,omitempty"`
}
