package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"catalog-backend/internal/shared/apperr"
)

// MutationKind is the type of a staged write.
type MutationKind int

const (
	MutationInsert MutationKind = iota
	MutationUpdate
)

func (k MutationKind) String() string {
	if k == MutationUpdate {
		return "update"
	}
	return "insert"
}

// Mutation is one staged write. Values are captured when the write is staged,
// so later changes to the entity do not leak into it.
type Mutation struct {
	Kind    MutationKind
	Table   string
	ID      uuid.UUID
	Columns []string
	Values  []any

	// Versioned updates only apply when the stored version equals
	// ExpectedVersion.
	Versioned       bool
	ExpectedVersion int
}

// Backend executes reads and atomic batches of writes for the store.
type Backend interface {
	// Fetch reads every row of table. For each row it calls next to get fresh
	// scan targets for the given columns.
	Fetch(ctx context.Context, table string, columns []string, next func() []any) error

	// Apply executes all mutations in one transaction: either every mutation
	// is applied or none is.
	Apply(ctx context.Context, mutations []Mutation) error
}

// UnitOfWork collects writes from the repositories that share it and commits
// them together on Save. A UnitOfWork belongs to a single request and is not
// meant to be shared across goroutines, but Save and staging are guarded so a
// misuse cannot corrupt the pending list.
type UnitOfWork struct {
	backend Backend
	now     func() time.Time

	mu      sync.Mutex
	pending []Mutation
}

// Option customizes a UnitOfWork.
type Option func(*UnitOfWork)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(u *UnitOfWork) {
		u.now = now
	}
}

// NewUnitOfWork creates an empty unit of work on top of backend.
func NewUnitOfWork(backend Backend, opts ...Option) *UnitOfWork {
	u := &UnitOfWork{
		backend: backend,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// pendingLen returns the number of staged mutations.
func (u *UnitOfWork) pendingLen() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.pending)
}

// Save commits every staged mutation atomically and clears the pending list.
// On failure nothing is applied and the pending list is kept.
//
// Errors are *apperr.Error: Conflict for an optimistic version collision,
// Persistence for everything else, including constraint violations. The
// cause stays in the chain, so callers can test for ErrDuplicateKey.
func (u *UnitOfWork) Save(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if len(u.pending) == 0 {
		return nil
	}

	if err := u.backend.Apply(ctx, u.pending); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return apperr.Wrap(apperr.KindConflict, err, "The record was modified by another request. Please retry.")
		}
		return apperr.Persistence(fmt.Errorf("save %d mutation(s): %w", len(u.pending), err))
	}

	u.pending = nil
	return nil
}

func (u *UnitOfWork) stage(m Mutation) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.pending = append(u.pending, m)
}
