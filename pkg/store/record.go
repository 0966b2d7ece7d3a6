// Package store is a small generic persistence layer: a typed Repository per
// record type plus a UnitOfWork that commits staged writes atomically.
//
// Records describe their own table layout through the Record interface.
// Soft delete, timestamps and optimistic versioning are opt-in capabilities
// discovered by type assertion.
package store

import (
	"time"

	"github.com/google/uuid"
)

// Column names the store relies on when a record opts into a capability.
const (
	IDColumn      = "id"
	VersionColumn = "version"
)

// Record is implemented by every persisted entity.
// Columns, Values and ScanTargets must have the same length and order, and
// Columns must contain IDColumn.
type Record interface {
	GetID() uuid.UUID
	TableName() string
	Columns() []string
	Values() []any
	ScanTargets() []any
}

// Identifiable records get an id assigned on Create when theirs is uuid.Nil.
type Identifiable interface {
	SetID(id uuid.UUID)
}

// Activatable records are soft-deleted: Delete clears the flag instead of
// removing the row.
type Activatable interface {
	IsActive() bool
	SetActive(active bool)
}

// Timestamped records get their creation time stamped on Create and their
// update time touched on every staged update.
type Timestamped interface {
	MarkCreated(at time.Time)
	Touch(at time.Time)
}

// Versioned records are updated with optimistic concurrency on VersionColumn.
type Versioned interface {
	GetVersion() int
	SetVersion(v int)
}

// isActive: record không implement Activatable thì luôn coi là active
func isActive(r Record) bool {
	a, ok := r.(Activatable)
	return !ok || a.IsActive()
}
