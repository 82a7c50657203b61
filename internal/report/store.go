// Package report composes the engine's per-student analysis: tier
// classification, cohort positioning, evolution and the adaptive
// remediation plan, over a store of graded exam results.
package report

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/xtribr/gabaritai-v3-escola-e-enem-sub001/internal/exam"
)

// ErrResultNotFound reports that no grading event exists for the requested
// student and exam.
var ErrResultNotFound = errors.New("exam result not found")

// StoredResult ties an exam result to the school and class it was graded in.
type StoredResult struct {
	School string `json:"school"`
	Class  string `json:"class"`
	exam.ExamResult
}

// ResultStore reads graded exam results. Results are written once by the
// grading pipeline and immutable afterwards; a re-grade appends a newer
// result rather than mutating the old one.
type ResultStore interface {
	// Add appends one grading event.
	Add(ctx context.Context, result StoredResult) error
	// Latest returns the most recent result for (school, student, exam)
	// or ErrResultNotFound.
	Latest(ctx context.Context, school, studentID, examID string) (*exam.ExamResult, error)
	// CohortSnapshot returns the most recent result per student for every
	// student of (school, class) on one exam.
	CohortSnapshot(ctx context.Context, school, class, examID string) ([]exam.ExamResult, error)
	// History returns all of a student's results across exams, newest
	// first, at most one per exam (the latest grading event).
	History(ctx context.Context, school, studentID string) ([]exam.ExamResult, error)
}

// MemoryResults is an in-memory ResultStore for development and tests.
type MemoryResults struct {
	results []StoredResult
	mu      sync.RWMutex
}

// NewMemoryResults creates an empty in-memory result store.
func NewMemoryResults() *MemoryResults {
	return &MemoryResults{}
}

func (s *MemoryResults) Add(ctx context.Context, result StoredResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
	return nil
}

func (s *MemoryResults) Latest(ctx context.Context, school, studentID, examID string) (*exam.ExamResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *exam.ExamResult
	for i := range s.results {
		r := s.results[i]
		if r.School != school || r.StudentID != studentID || r.ExamID != examID {
			continue
		}
		if latest == nil || r.GradedAt.After(latest.GradedAt) {
			latest = &s.results[i].ExamResult
		}
	}
	if latest == nil {
		return nil, ErrResultNotFound
	}
	copied := *latest
	return &copied, nil
}

func (s *MemoryResults) CohortSnapshot(ctx context.Context, school, class, examID string) ([]exam.ExamResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	latest := make(map[string]exam.ExamResult)
	for _, r := range s.results {
		if r.School != school || r.Class != class || r.ExamID != examID {
			continue
		}
		prev, ok := latest[r.StudentID]
		if !ok || r.GradedAt.After(prev.GradedAt) {
			latest[r.StudentID] = r.ExamResult
		}
	}

	snapshot := make([]exam.ExamResult, 0, len(latest))
	for _, r := range latest {
		snapshot = append(snapshot, r)
	}
	sort.Slice(snapshot, func(i, j int) bool {
		return snapshot[i].StudentID < snapshot[j].StudentID
	})
	return snapshot, nil
}

func (s *MemoryResults) History(ctx context.Context, school, studentID string) ([]exam.ExamResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	latestPerExam := make(map[string]exam.ExamResult)
	for _, r := range s.results {
		if r.School != school || r.StudentID != studentID {
			continue
		}
		prev, ok := latestPerExam[r.ExamID]
		if !ok || r.GradedAt.After(prev.GradedAt) {
			latestPerExam[r.ExamID] = r.ExamResult
		}
	}

	history := make([]exam.ExamResult, 0, len(latestPerExam))
	for _, r := range latestPerExam {
		history = append(history, r)
	}
	sort.Slice(history, func(i, j int) bool {
		return history[i].GradedAt.After(history[j].GradedAt)
	})
	return history, nil
}
