// Package student holds the student account directory consumed and written
// by roster reconciliation.
package student

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Sentinel errors for directory operations.
var (
	ErrNotFound = errors.New("student not found")
	ErrConflict = errors.New("student already exists")
)

// Account is one student record. A matricula is unique within a school.
// PasswordHash holds a bcrypt hash or is empty when no credential has been
// issued; the plaintext is never stored.
type Account struct {
	School       string
	Matricula    string
	Name         string
	Class        string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasPassword reports whether a credential has been issued for the account.
func (a Account) HasPassword() bool {
	return len(a.PasswordHash) > 0
}

// Directory persists student accounts keyed by (school, matricula).
type Directory interface {
	// Find returns the account for (school, matricula) or ErrNotFound.
	Find(ctx context.Context, school, matricula string) (*Account, error)
	// Create inserts a new account; ErrConflict if the key already exists.
	Create(ctx context.Context, account Account) error
	// Update overwrites the account's mutable fields (name, class, email).
	// The credential state is preserved; ErrNotFound if the key is missing.
	Update(ctx context.Context, account Account) error
}

// MemoryDirectory is an in-memory Directory for development and tests.
type MemoryDirectory struct {
	accounts map[string]*Account
	mu       sync.RWMutex
}

// NewMemoryDirectory creates an empty in-memory directory.
func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{
		accounts: make(map[string]*Account),
	}
}

func directoryKey(school, matricula string) string {
	return school + ":" + matricula
}

func (d *MemoryDirectory) Find(ctx context.Context, school, matricula string) (*Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	account, ok := d.accounts[directoryKey(school, matricula)]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *account
	return &copied, nil
}

func (d *MemoryDirectory) Create(ctx context.Context, account Account) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := directoryKey(account.School, account.Matricula)
	if _, exists := d.accounts[key]; exists {
		return ErrConflict
	}

	now := time.Now()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now
	d.accounts[key] = &account
	return nil
}

func (d *MemoryDirectory) Update(ctx context.Context, account Account) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := directoryKey(account.School, account.Matricula)
	existing, ok := d.accounts[key]
	if !ok {
		return ErrNotFound
	}

	existing.Name = account.Name
	existing.Class = account.Class
	if account.Email != "" {
		existing.Email = account.Email
	}
	existing.UpdatedAt = time.Now()
	return nil
}
