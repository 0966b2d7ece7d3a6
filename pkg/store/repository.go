package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"catalog-backend/internal/shared/apperr"
)

// Repository gives typed access to one record type. E is the entity struct
// and P its pointer type, which must implement Record.
//
// Reads go straight to the backend and always return detached copies. Writes
// are staged on the shared UnitOfWork and only reach the backend on Save.
type Repository[E any, P interface {
	*E
	Record
}] struct {
	uow *UnitOfWork
}

// NewRepository creates a repository bound to uow.
func NewRepository[E any, P interface {
	*E
	Record
}](uow *UnitOfWork) *Repository[E, P] {
	return &Repository[E, P]{uow: uow}
}

// FindAll returns the records of the table.
//
// includeInactive == false returns every record. includeInactive == true
// returns only records whose active flag is set. The name reads backwards but
// callers depend on this polarity.
func (r *Repository[E, P]) FindAll(ctx context.Context, includeInactive bool) ([]P, error) {
	return r.FindByCondition(ctx, nil, includeInactive)
}

// FindByCondition applies the same active filter as FindAll, then pred.
// A nil pred matches everything.
func (r *Repository[E, P]) FindByCondition(ctx context.Context, pred func(P) bool, includeInactive bool) ([]P, error) {
	all, err := r.fetch(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]P, 0, len(all))
	for _, rec := range all {
		if includeInactive && !isActive(rec) {
			continue
		}
		if pred != nil && !pred(rec) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// FindByID returns the record with id regardless of its active flag, or nil.
func (r *Repository[E, P]) FindByID(ctx context.Context, id uuid.UUID) (P, error) {
	found, err := r.FindByCondition(ctx, func(p P) bool { return p.GetID() == id }, false)
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return found[0], nil
}

// Create stages an insert of entity. Nothing is written until Save.
func (r *Repository[E, P]) Create(entity P) error {
	now := r.uow.now()

	if ident, ok := any(entity).(Identifiable); ok && entity.GetID() == uuid.Nil {
		ident.SetID(uuid.New())
	}
	if ts, ok := any(entity).(Timestamped); ok {
		ts.MarkCreated(now)
	}
	if v, ok := any(entity).(Versioned); ok && v.GetVersion() == 0 {
		v.SetVersion(1)
	}

	m, err := r.mutation(MutationInsert, entity)
	if err != nil {
		return err
	}
	r.uow.stage(m)
	return nil
}

// Delete soft-deletes entity: the active flag is cleared, the update time is
// touched and an update is staged. Records that are not Activatable are left
// alone.
func (r *Repository[E, P]) Delete(entity P) error {
	act, ok := any(entity).(Activatable)
	if !ok {
		return nil
	}

	act.SetActive(false)
	if ts, ok := any(entity).(Timestamped); ok {
		ts.Touch(r.uow.now())
	}
	return r.stageUpdate(entity)
}

func (r *Repository[E, P]) stageUpdate(entity P) error {
	expected := 0
	v, versioned := any(entity).(Versioned)
	if versioned {
		expected = v.GetVersion()
		v.SetVersion(expected + 1)
	}

	m, err := r.mutation(MutationUpdate, entity)
	if err != nil {
		return err
	}
	m.Versioned = versioned
	m.ExpectedVersion = expected
	r.uow.stage(m)
	return nil
}

func (r *Repository[E, P]) mutation(kind MutationKind, entity P) (Mutation, error) {
	cols := entity.Columns()
	vals := entity.Values()
	if len(cols) != len(vals) {
		return Mutation{}, fmt.Errorf("%s %s: %w", kind, entity.TableName(), ErrColumnMismatch)
	}

	return Mutation{
		Kind:    kind,
		Table:   entity.TableName(),
		ID:      entity.GetID(),
		Columns: append([]string(nil), cols...),
		Values:  append([]any(nil), vals...),
	}, nil
}

func (r *Repository[E, P]) fetch(ctx context.Context) ([]P, error) {
	var proto P = new(E)
	table := proto.TableName()

	var rows []P
	err := r.uow.backend.Fetch(ctx, table, proto.Columns(), func() []any {
		var rec P = new(E)
		rows = append(rows, rec)
		return rec.ScanTargets()
	})
	if err != nil {
		return nil, apperr.Persistence(fmt.Errorf("fetch %s: %w", table, err))
	}
	return rows, nil
}
