package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/xtribr/gabaritai-v3-escola-e-enem-sub001/internal/student"
)

// Reconciler matches roster rows against the student directory, creating or
// updating accounts row by row. Row failures are captured in the row's own
// record; a batch always runs to completion.
type Reconciler struct {
	dir   student.Directory
	mu    sync.Mutex
	locks map[string]*keyLock // (school, matricula) -> in-flight lock
}

// keyLock serializes writers for one (school, matricula). The refs count
// lets the reconciler drop the entry once the last holder releases it, so
// the lock table stays proportional to in-flight rows, not to every
// matricula ever imported.
type keyLock struct {
	mu   sync.Mutex
	refs int
}

// NewReconciler creates a reconciler over the given directory.
func NewReconciler(dir student.Directory) *Reconciler {
	return &Reconciler{
		dir:   dir,
		locks: make(map[string]*keyLock),
	}
}

// Reconcile processes a parsed roster batch against one school's directory.
// Rows are processed in input order and the returned records preserve that
// order. The second row naming a matricula already seen in the same batch is
// an error row, so one batch can never create the same account twice.
// Concurrent Reconcile calls are serialized per (school, matricula); rows
// for distinct matriculas do not contend.
func (r *Reconciler) Reconcile(ctx context.Context, school string, rows []Row) Result {
	result := Result{
		Records: make([]Record, 0, len(rows)),
	}

	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		record := r.reconcileRow(ctx, school, row, seen)
		result.Records = append(result.Records, record)

		result.Summary.Total++
		switch record.Status {
		case StatusCreated:
			result.Summary.Created++
		case StatusUpdated:
			result.Summary.Updated++
		case StatusError:
			result.Summary.Errors++
		}
	}

	slog.Info("roster reconciled",
		"school", school,
		"total", result.Summary.Total,
		"created", result.Summary.Created,
		"updated", result.Summary.Updated,
		"errors", result.Summary.Errors,
	)
	return result
}

func (r *Reconciler) reconcileRow(ctx context.Context, school string, row Row, seen map[string]bool) Record {
	record := Record{Row: row}

	if err := validateRow(school, row); err != nil {
		record.Status = StatusError
		record.Message = err.Error()
		return record
	}

	matricula := strings.TrimSpace(row.Matricula)
	if seen[matricula] {
		record.Status = StatusError
		record.Message = fmt.Sprintf("duplicate matricula %q in batch", matricula)
		return record
	}
	seen[matricula] = true

	unlock := r.lock(school, matricula)
	defer unlock()

	account, err := r.dir.Find(ctx, school, matricula)
	switch {
	case errors.Is(err, student.ErrNotFound):
		return r.createAccount(ctx, school, row, record)
	case err != nil:
		record.Status = StatusError
		record.Message = err.Error()
		return record
	}

	// Existing account: overwrite mutable fields when they differ, skip the
	// redundant write when they match up to accents and case. Either way the
	// row reports as updated and no credential is touched.
	if foldKey(account.Name) != foldKey(row.Name) || foldKey(account.Class) != foldKey(row.Class) {
		account.Name = strings.TrimSpace(row.Name)
		account.Class = strings.TrimSpace(row.Class)
		if err := r.dir.Update(ctx, *account); err != nil {
			record.Status = StatusError
			record.Message = err.Error()
			return record
		}
	}
	record.Status = StatusUpdated
	return record
}

func (r *Reconciler) createAccount(ctx context.Context, school string, row Row, record Record) Record {
	password, err := GeneratePassword()
	if err != nil {
		record.Status = StatusError
		record.Message = err.Error()
		return record
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		record.Status = StatusError
		record.Message = fmt.Sprintf("hashing credential: %v", err)
		return record
	}

	err = r.dir.Create(ctx, student.Account{
		School:       school,
		Matricula:    strings.TrimSpace(row.Matricula),
		Name:         strings.TrimSpace(row.Name),
		Class:        strings.TrimSpace(row.Class),
		PasswordHash: hash,
	})
	if err != nil {
		record.Status = StatusError
		record.Message = err.Error()
		return record
	}

	// The only place the plaintext ever surfaces. It lives in this record
	// for the caller's single display pass and nowhere else.
	record.Status = StatusCreated
	record.Password = password
	return record
}

func validateRow(school string, row Row) error {
	if school == "" {
		return fmt.Errorf("missing school")
	}
	if strings.TrimSpace(row.Name) == "" {
		return fmt.Errorf("missing required field: name")
	}
	if strings.TrimSpace(row.Matricula) == "" {
		return fmt.Errorf("missing required field: matricula")
	}
	if strings.TrimSpace(row.Class) == "" {
		return fmt.Errorf("missing required field: class")
	}
	return nil
}

func (r *Reconciler) lock(school, matricula string) func() {
	key := school + ":" + matricula

	r.mu.Lock()
	l, ok := r.locks[key]
	if !ok {
		l = &keyLock{}
		r.locks[key] = l
	}
	l.refs++
	r.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		r.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(r.locks, key)
		}
		r.mu.Unlock()
	}
}
