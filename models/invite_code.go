package models

import (
	"time"
)

// InviteCode is a single-use registration token
type InviteCode struct {
	Code      string     `db:"code"`
	IsActive  bool       `db:"is_active"`
	UsedBy    *int64     `db:"used_by"`
	UsedAt    *time.Time `db:"used_at"`
	CreatedAt time.Time  `db:"created_at"`
}

// IsConsumable checks if the code can still admit a registration
func (c *InviteCode) IsConsumable() bool {
	return c.IsActive && c.UsedBy == nil
}
