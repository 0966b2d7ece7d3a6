// Package entity holds the envelope shared by every persisted entity.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Common là envelope chung: id, cờ active (soft delete), timestamps và version.
// Embed vào entity để có sẵn các capability mà pkg/store cần.
type Common struct {
	ID          uuid.UUID  `json:"id"`
	Active      bool       `json:"is_active"`
	DateCreated time.Time  `json:"date_created"`
	DateUpdated *time.Time `json:"date_updated,omitempty"`
	Version     int        `json:"version"`
}

// NewCommon returns an active envelope with a fresh id.
func NewCommon() Common {
	return Common{ID: uuid.New(), Active: true}
}

func (c *Common) GetID() uuid.UUID         { return c.ID }
func (c *Common) SetID(id uuid.UUID)       { c.ID = id }
func (c *Common) IsActive() bool           { return c.Active }
func (c *Common) SetActive(active bool)    { c.Active = active }
func (c *Common) MarkCreated(at time.Time) { c.DateCreated = at }
func (c *Common) GetVersion() int          { return c.Version }
func (c *Common) SetVersion(v int)         { c.Version = v }

func (c *Common) Touch(at time.Time) {
	c.DateUpdated = &at
}

// CommonColumns are the envelope columns, in the order of CommonValues.
var CommonColumns = []string{"id", "is_active", "date_created", "date_updated", "version"}

func (c *Common) CommonValues() []any {
	return []any{c.ID, c.Active, c.DateCreated, c.DateUpdated, c.Version}
}

func (c *Common) CommonTargets() []any {
	return []any{&c.ID, &c.Active, &c.DateCreated, &c.DateUpdated, &c.Version}
}

// Columns nối envelope columns với columns riêng của entity
func Columns(own ...string) []string {
	out := make([]string, 0, len(CommonColumns)+len(own))
	return append(append(out, CommonColumns...), own...)
}
