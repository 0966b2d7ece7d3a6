package store

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

type memRow map[string]any

type memTable struct {
	order []uuid.UUID
	rows  map[uuid.UUID]memRow
}

func (t *memTable) clone() *memTable {
	c := &memTable{
		order: append([]uuid.UUID(nil), t.order...),
		rows:  make(map[uuid.UUID]memRow, len(t.rows)),
	}
	// rows được thay thế nguyên khối khi update nên copy map là đủ
	for id, row := range t.rows {
		c.rows[id] = row
	}
	return c
}

// MemoryBackend keeps tables in process memory. Rows are copied on write and
// on read, so callers never share state with the backend. Apply is
// all-or-nothing.
type MemoryBackend struct {
	mu     sync.RWMutex
	tables map[string]*memTable
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{tables: make(map[string]*memTable)}
}

// Fetch implements Backend.
func (m *MemoryBackend) Fetch(ctx context.Context, table string, columns []string, next func() []any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tables[table]
	if !ok {
		return nil
	}

	for _, id := range t.order {
		row := t.rows[id]
		targets := next()
		if len(targets) != len(columns) {
			return fmt.Errorf("%s: %w", table, ErrColumnMismatch)
		}
		for i, col := range columns {
			val, ok := row[col]
			if !ok {
				return fmt.Errorf("%s: unknown column %q", table, col)
			}
			if err := assign(targets[i], val); err != nil {
				return fmt.Errorf("%s.%s: %w", table, col, err)
			}
		}
	}
	return nil
}

// Apply implements Backend.
func (m *MemoryBackend) Apply(ctx context.Context, mutations []Mutation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Apply lên bản sao, chỉ swap khi toàn bộ mutations thành công
	staged := make(map[string]*memTable, len(m.tables))
	for name, t := range m.tables {
		staged[name] = t
	}
	cloned := make(map[string]bool)

	for i, mut := range mutations {
		t, ok := staged[mut.Table]
		switch {
		case !ok:
			t = &memTable{rows: make(map[uuid.UUID]memRow)}
			staged[mut.Table] = t
			cloned[mut.Table] = true
		case !cloned[mut.Table]:
			t = t.clone()
			staged[mut.Table] = t
			cloned[mut.Table] = true
		}

		if err := applyMutation(t, mut); err != nil {
			return fmt.Errorf("mutation %d (%s %s): %w", i, mut.Kind, mut.Table, err)
		}
	}

	m.tables = staged
	return nil
}

// Len returns the number of rows stored in table.
func (m *MemoryBackend) Len(table string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.tables[table]; ok {
		return len(t.order)
	}
	return 0
}

func applyMutation(t *memTable, mut Mutation) error {
	if len(mut.Columns) != len(mut.Values) {
		return ErrColumnMismatch
	}

	switch mut.Kind {
	case MutationInsert:
		if _, exists := t.rows[mut.ID]; exists {
			return ErrDuplicateKey
		}
		row := make(memRow, len(mut.Columns))
		for i, col := range mut.Columns {
			row[col] = detach(mut.Values[i])
		}
		t.rows[mut.ID] = row
		t.order = append(t.order, mut.ID)

	case MutationUpdate:
		current, exists := t.rows[mut.ID]
		if !exists {
			return ErrRowNotFound
		}
		if mut.Versioned {
			if v, _ := current[VersionColumn].(int); v != mut.ExpectedVersion {
				return ErrVersionConflict
			}
		}
		row := make(memRow, len(current))
		for col, val := range current {
			row[col] = val
		}
		for i, col := range mut.Columns {
			row[col] = detach(mut.Values[i])
		}
		t.rows[mut.ID] = row

	default:
		return fmt.Errorf("unsupported mutation kind %d", mut.Kind)
	}
	return nil
}

// detach copies one level of pointer indirection so stored values do not
// alias caller memory.
func detach(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return v
	}
	cp := reflect.New(rv.Elem().Type())
	cp.Elem().Set(rv.Elem())
	return cp.Interface()
}

// assign writes val into the pointer target.
func assign(target, val any) error {
	dst := reflect.ValueOf(target)
	if dst.Kind() != reflect.Pointer || dst.IsNil() {
		return fmt.Errorf("scan target must be a non-nil pointer, got %T", target)
	}
	elem := dst.Elem()

	if val == nil {
		elem.Set(reflect.Zero(elem.Type()))
		return nil
	}

	src := reflect.ValueOf(detach(val))
	switch {
	case src.Kind() == reflect.Pointer && src.IsNil():
		elem.Set(reflect.Zero(elem.Type()))
	case src.Type().AssignableTo(elem.Type()):
		elem.Set(src)
	case src.Type().ConvertibleTo(elem.Type()):
		elem.Set(src.Convert(elem.Type()))
	default:
		return fmt.Errorf("cannot assign %s to %s", src.Type(), elem.Type())
	}
	return nil
}
