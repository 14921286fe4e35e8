package models

import (
	"time"
)

// BetStatus represents the state of a bet
type BetStatus string

const (
	BetStatusPending BetStatus = "PENDING"
	BetStatusWon     BetStatus = "WON"
	BetStatusLost    BetStatus = "LOST"
	BetStatusVoided  BetStatus = "VOIDED"
)

// Odds bounds accepted at placement time. Only positive American odds are
// representable.
const (
	MinOdds = 100
	MaxOdds = 10000
)

// Per-user weekly placement caps.
const (
	MaxRegularBetsPerWeek = 3
	MaxKingLocksPerWeek   = 1
)

// Bet represents a single-outcome pick owned by one user
type Bet struct {
	ID            int64      `db:"id"`
	UserID        int64      `db:"user_id"`
	WeekNumber    int        `db:"week_number"`
	Sport         string     `db:"sport"`
	Description   string     `db:"description"`
	OddsAmerican  int        `db:"odds_american"`
	OddsLocked    int        `db:"odds_locked"`
	IsKingLock    bool       `db:"is_king_lock"`
	GameStartTime time.Time  `db:"game_start_time"`
	Status        BetStatus  `db:"status"`
	PointsAwarded *int       `db:"points_awarded"`
	ResolvedAt    *time.Time `db:"resolved_at"`
	CreatedAt     time.Time  `db:"created_at"`
}

// IsValidResolution reports whether a status is a legal terminal state
func IsValidResolution(status BetStatus) bool {
	return status == BetStatusWon || status == BetStatusLost || status == BetStatusVoided
}

// IsResolved checks if the bet has reached a terminal state
func (b *Bet) IsResolved() bool {
	return b.Status != BetStatusPending
}

// CanBeDeleted checks if the bet may still be withdrawn by its owner
func (b *Bet) CanBeDeleted() bool {
	return b.Status == BetStatusPending
}

// IsOwnedBy checks whether the given user owns the bet
func (b *Bet) IsOwnedBy(userID int64) bool {
	return b.UserID == userID
}
