package models

import (
	"time"
)

// Role controls access to admin-only operations
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User represents a registered competitor
type User struct {
	ID             int64     `db:"id"`
	Email          string    `db:"email"`
	Username       string    `db:"username"`
	PasswordHash   string    `db:"password_hash"`
	Role           Role      `db:"role"`
	InviteCodeUsed string    `db:"invite_code_used"`
	TotalPoints    int       `db:"total_points"`
	BetsWon        int       `db:"bets_won"`
	BetsLost       int       `db:"bets_lost"`
	BiggestHit     int       `db:"biggest_hit"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// IsAdmin checks whether the user may perform admin-only operations
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
