package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xtribr/gabaritai-v3-escola-e-enem-sub001/internal/exam"
)

const dbTimeout = 5 * time.Second

// PostgresResults is a PostgreSQL-backed ResultStore over the exam_results
// table. Area scores and submitted answers are stored as JSONB, mirroring
// the shape the grading pipeline emits.
type PostgresResults struct {
	pool *pgxpool.Pool
}

// NewPostgresResults creates a PostgreSQL-backed result store.
func NewPostgresResults(pool *pgxpool.Pool) (*PostgresResults, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresResults{pool: pool}, nil
}

// Schema is the exam_results table definition. Applied by migrations in
// deployment; tests apply it directly.
const Schema = `
CREATE TABLE IF NOT EXISTS exam_results (
	id         bigserial   PRIMARY KEY,
	school_id  text        NOT NULL,
	class      text        NOT NULL,
	student_id text        NOT NULL,
	exam_id    text        NOT NULL,
	graded_at  timestamptz NOT NULL,
	overall    double precision,
	scores     jsonb       NOT NULL DEFAULT '{}',
	correct    int         NOT NULL DEFAULT 0,
	wrong      int         NOT NULL DEFAULT 0,
	blank      int         NOT NULL DEFAULT 0,
	answers    jsonb       NOT NULL DEFAULT '[]'
)`

func (s *PostgresResults) Add(ctx context.Context, result StoredResult) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	scores, err := json.Marshal(result.Scores)
	if err != nil {
		return fmt.Errorf("marshal scores: %w", err)
	}
	answers, err := json.Marshal(result.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO exam_results (school_id, class, student_id, exam_id, graded_at, overall, scores, correct, wrong, blank, answers)
		 VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, $9, $10, $11::jsonb)`,
		result.School,
		result.Class,
		result.StudentID,
		result.ExamID,
		result.GradedAt,
		result.Overall,
		string(scores),
		result.Correct,
		result.Wrong,
		result.Blank,
		string(answers),
	)
	if err != nil {
		return fmt.Errorf("insert exam result: %w", err)
	}
	return nil
}

const resultColumns = `student_id, exam_id, graded_at, overall, scores, correct, wrong, blank, answers`

func (s *PostgresResults) Latest(ctx context.Context, school, studentID, examID string) (*exam.ExamResult, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	row := s.pool.QueryRow(ctx,
		`SELECT `+resultColumns+`
		 FROM exam_results
		 WHERE school_id = $1 AND student_id = $2 AND exam_id = $3
		 ORDER BY graded_at DESC
		 LIMIT 1`,
		school, studentID, examID,
	)
	result, err := scanResult(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("latest exam result: %w", err)
	}
	return result, nil
}

func (s *PostgresResults) CohortSnapshot(ctx context.Context, school, class, examID string) ([]exam.ExamResult, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rows, err := s.pool.Query(ctx,
		`SELECT DISTINCT ON (student_id) `+resultColumns+`
		 FROM exam_results
		 WHERE school_id = $1 AND class = $2 AND exam_id = $3
		 ORDER BY student_id, graded_at DESC`,
		school, class, examID,
	)
	if err != nil {
		return nil, fmt.Errorf("cohort snapshot: %w", err)
	}
	defer rows.Close()

	return collectResults(rows)
}

func (s *PostgresResults) History(ctx context.Context, school, studentID string) ([]exam.ExamResult, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	// Latest grading event per exam, then newest first overall for
	// evolution tracking.
	rows, err := s.pool.Query(ctx,
		`SELECT * FROM (
			SELECT DISTINCT ON (exam_id) `+resultColumns+`
			FROM exam_results
			WHERE school_id = $1 AND student_id = $2
			ORDER BY exam_id, graded_at DESC
		 ) latest
		 ORDER BY graded_at DESC`,
		school, studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("exam history: %w", err)
	}
	defer rows.Close()

	return collectResults(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResult(row rowScanner) (*exam.ExamResult, error) {
	var r exam.ExamResult
	var scores, answers []byte
	err := row.Scan(
		&r.StudentID,
		&r.ExamID,
		&r.GradedAt,
		&r.Overall,
		&scores,
		&r.Correct,
		&r.Wrong,
		&r.Blank,
		&answers,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(scores, &r.Scores); err != nil {
		return nil, fmt.Errorf("unmarshal scores: %w", err)
	}
	if err := json.Unmarshal(answers, &r.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}
	return &r, nil
}

func collectResults(rows pgx.Rows) ([]exam.ExamResult, error) {
	var results []exam.ExamResult
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scan exam result: %w", err)
		}
		results = append(results, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exam results: %w", err)
	}
	return results, nil
}
