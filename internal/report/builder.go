package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/xtribr/gabaritai-v3-escola-e-enem-sub001/internal/exam"
	"github.com/xtribr/gabaritai-v3-escola-e-enem-sub001/internal/platform/cache"
	"github.com/xtribr/gabaritai-v3-escola-e-enem-sub001/internal/remediation"
)

const defaultStatsTTL = 5 * time.Minute

// StatsCache is the subset of the platform cache the builder uses for
// cohort statistics. Absence is reported as cache.ErrMiss.
type StatsCache interface {
	GetJSON(ctx context.Context, key string, v any) error
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
}

// BuilderConfig holds dependencies for the report builder.
type BuilderConfig struct {
	Results  ResultStore
	Catalog  *remediation.Loader
	Cache    StatsCache    // optional; nil disables stats caching
	StatsTTL time.Duration // default 5 minutes
}

// Builder assembles the per-student report the presentation layer renders:
// per-area tier, cohort position, evolution and the adaptive remediation
// plan for one exam.
type Builder struct {
	results ResultStore
	catalog *remediation.Loader
	cache   StatsCache
	ttl     time.Duration
}

// NewBuilder creates a report builder.
func NewBuilder(cfg BuilderConfig) *Builder {
	ttl := cfg.StatsTTL
	if ttl == 0 {
		ttl = defaultStatsTTL
	}
	return &Builder{
		results: cfg.Results,
		catalog: cfg.Catalog,
		cache:   cfg.Cache,
		ttl:     ttl,
	}
}

// AreaReport is one subject area's card in the student report. Stats and
// Position are nil when the cohort has no computed scores for the area, and
// the caller renders a "not enough data" state. Evolution is nil when this
// is the student's first result with a score in the area.
type AreaReport struct {
	Area      exam.Area            `json:"area"`
	Score     *float64             `json:"score,omitempty"`
	Tier      exam.Tier            `json:"tier"`
	Stats     *exam.Stats          `json:"stats,omitempty"`
	Position  *exam.PositionResult `json:"position,omitempty"`
	Evolution *exam.Comparison     `json:"evolution,omitempty"`
	Plan      *remediation.Plan    `json:"plan,omitempty"`
}

// StudentReport is the complete analysis of one student's exam.
type StudentReport struct {
	School       string       `json:"school"`
	Class        string       `json:"class"`
	StudentID    string       `json:"student_id"`
	ExamID       string       `json:"exam_id"`
	GradedAt     time.Time    `json:"graded_at"`
	OverallScore *float64     `json:"overall_score,omitempty"`
	OverallTier  exam.Tier    `json:"overall_tier"`
	Areas        []AreaReport `json:"areas"`
}

// Build assembles the report for one student's result on one exam. An area
// the student scored in but the remediation catalog does not cover is a
// configuration fault and fails the build; every other per-area gap (no
// cohort data, no history) degrades to a nil field on the area card.
func (b *Builder) Build(ctx context.Context, school, class, studentID, examID string) (*StudentReport, error) {
	current, err := b.results.Latest(ctx, school, studentID, examID)
	if err != nil {
		return nil, err
	}

	snapshot, err := b.results.CohortSnapshot(ctx, school, class, examID)
	if err != nil {
		return nil, fmt.Errorf("loading cohort snapshot: %w", err)
	}

	history, err := b.results.History(ctx, school, studentID)
	if err != nil {
		return nil, fmt.Errorf("loading exam history: %w", err)
	}

	rep := &StudentReport{
		School:       school,
		Class:        class,
		StudentID:    studentID,
		ExamID:       examID,
		GradedAt:     current.GradedAt,
		OverallScore: current.Overall,
		OverallTier:  exam.Classify(current.Overall),
		Areas:        make([]AreaReport, 0, len(exam.Areas)),
	}

	for _, area := range exam.Areas {
		card, err := b.buildArea(ctx, area, current, snapshot, history,
			statsKey(school, class, examID, area))
		if err != nil {
			return nil, err
		}
		rep.Areas = append(rep.Areas, card)
	}

	return rep, nil
}

func (b *Builder) buildArea(ctx context.Context, area exam.Area, current *exam.ExamResult, snapshot, history []exam.ExamResult, cacheKey string) (AreaReport, error) {
	score := current.Score(area)
	card := AreaReport{
		Area:  area,
		Score: score,
		Tier:  exam.Classify(score),
	}

	stats := b.cohortStats(ctx, cacheKey, snapshot, area)
	if stats != nil {
		card.Stats = stats
		if score != nil {
			pos := exam.Position(*score, *stats)
			card.Position = &pos
		}
	}

	if score != nil {
		points := areaHistory(history, area)
		comparisons := exam.Evolution(points)
		for i, p := range points {
			if p.ExamID == current.ExamID {
				card.Evolution = comparisons[i]
				break
			}
		}

		plan, err := b.catalog.PlanFor(area, *score)
		if err != nil {
			return AreaReport{}, fmt.Errorf("resolving remediation plan: %w", err)
		}
		card.Plan = &plan
	}

	return card, nil
}

// cohortStats computes the area's cohort statistics, consulting the cache
// first. Cache failures degrade to a direct computation; a cohort with no
// scores yields nil, never zeros.
func (b *Builder) cohortStats(ctx context.Context, key string, snapshot []exam.ExamResult, area exam.Area) *exam.Stats {
	if b.cache != nil {
		var cached exam.Stats
		err := b.cache.GetJSON(ctx, key, &cached)
		if err == nil {
			return &cached
		}
		if !errors.Is(err, cache.ErrMiss) {
			slog.Warn("stats cache read failed", "key", key, "error", err)
		}
	}

	stats, err := exam.CohortStats(snapshot, area)
	if errors.Is(err, exam.ErrNoData) {
		return nil
	}

	if b.cache != nil {
		if err := b.cache.SetJSON(ctx, key, stats, b.ttl); err != nil {
			slog.Warn("stats cache write failed", "key", key, "error", err)
		}
	}
	return &stats
}

// areaHistory projects a student's exam history onto one area, newest first,
// skipping results where the area score was never computed.
func areaHistory(history []exam.ExamResult, area exam.Area) []exam.HistoryPoint {
	points := make([]exam.HistoryPoint, 0, len(history))
	for _, r := range history {
		score := r.Score(area)
		if score == nil {
			continue
		}
		points = append(points, exam.HistoryPoint{
			ExamID:   r.ExamID,
			GradedAt: r.GradedAt,
			Score:    *score,
		})
	}
	return points
}

func statsKey(school, class, examID string, area exam.Area) string {
	return fmt.Sprintf("stats:%s:%s:%s:%s", school, class, examID, area)
}
