package student

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const dbTimeout = 5 * time.Second

// PostgresDirectory is a PostgreSQL-backed Directory implementation over the
// students table, keyed by (school_id, matricula).
type PostgresDirectory struct {
	pool *pgxpool.Pool
}

// NewPostgresDirectory creates a PostgreSQL-backed student directory.
func NewPostgresDirectory(pool *pgxpool.Pool) (*PostgresDirectory, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresDirectory{pool: pool}, nil
}

// Schema is the students table definition. Applied by migrations in
// deployment; tests apply it directly.
const Schema = `
CREATE TABLE IF NOT EXISTS students (
	school_id     text        NOT NULL,
	matricula     text        NOT NULL,
	name          text        NOT NULL,
	class         text        NOT NULL,
	email         text        NOT NULL DEFAULT '',
	password_hash bytea,
	created_at    timestamptz NOT NULL DEFAULT now(),
	updated_at    timestamptz NOT NULL DEFAULT now(),
	PRIMARY KEY (school_id, matricula)
)`

func (d *PostgresDirectory) Find(ctx context.Context, school, matricula string) (*Account, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	var account Account
	err := d.pool.QueryRow(ctx,
		`SELECT school_id, matricula, name, class, email, COALESCE(password_hash, ''::bytea), created_at, updated_at
		 FROM students
		 WHERE school_id = $1 AND matricula = $2`,
		school, matricula,
	).Scan(
		&account.School,
		&account.Matricula,
		&account.Name,
		&account.Class,
		&account.Email,
		&account.PasswordHash,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find student: %w", err)
	}
	return &account, nil
}

func (d *PostgresDirectory) Create(ctx context.Context, account Account) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	cmd, err := d.pool.Exec(ctx,
		`INSERT INTO students (school_id, matricula, name, class, email, password_hash)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (school_id, matricula) DO NOTHING`,
		account.School,
		account.Matricula,
		account.Name,
		account.Class,
		account.Email,
		account.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrConflict
	}
	return nil
}

func (d *PostgresDirectory) Update(ctx context.Context, account Account) error {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	cmd, err := d.pool.Exec(ctx,
		`UPDATE students
		 SET name = $3,
		     class = $4,
		     email = CASE WHEN $5 = '' THEN email ELSE $5 END,
		     updated_at = now()
		 WHERE school_id = $1 AND matricula = $2`,
		account.School,
		account.Matricula,
		account.Name,
		account.Class,
		account.Email,
	)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
