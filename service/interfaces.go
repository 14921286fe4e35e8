package service

import (
	"context"
	"time"

	"parlay/events"
	"parlay/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by ID, nil if absent
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetByEmail retrieves a user by email, nil if absent
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByUsername retrieves a user by username, nil if absent
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// Create persists a new user and fills in ID and timestamps
	Create(ctx context.Context, user *models.User) error

	// UpdateAggregates overwrites the user's derived statistics
	UpdateAggregates(ctx context.Context, userID int64, agg models.UserAggregates) error

	// GetLeaderboard returns USER-role rows ordered by totalPoints desc,
	// betsWon desc, biggestHit desc
	GetLeaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)
}

// BetRepository defines the interface for bet data access
type BetRepository interface {
	// Create persists a new PENDING bet and fills in ID and created_at
	Create(ctx context.Context, bet *models.Bet) error

	// GetByID retrieves a bet by ID, nil if absent
	GetByID(ctx context.Context, id int64) (*models.Bet, error)

	// GetByUserAndWeek returns a user's bets for a week, newest first
	GetByUserAndWeek(ctx context.Context, userID int64, weekNumber int) ([]*models.Bet, error)

	// GetAllByUser returns a user's full bet history
	GetAllByUser(ctx context.Context, userID int64) ([]*models.Bet, error)

	// Resolve transitions a PENDING bet to a terminal state, stamping
	// points and resolvedAt. Fails with ErrBetNotFound if the bet does not
	// exist and ErrBetAlreadyResolved if it is no longer PENDING.
	Resolve(ctx context.Context, betID int64, status models.BetStatus, points *int, resolvedAt time.Time) (*models.Bet, error)

	// Delete removes a bet, conditional on it still being PENDING. Fails
	// with ErrBetNotFound or ErrBetNotDeletable.
	Delete(ctx context.Context, betID int64) error

	// AcquirePlacementLock serializes concurrent placements for one
	// (user, week) pair for the remainder of the current transaction.
	AcquirePlacementLock(ctx context.Context, userID int64, weekNumber int) error
}

// InviteCodeRepository defines the interface for invite code data access
type InviteCodeRepository interface {
	// Create persists a new active code
	Create(ctx context.Context, code string) (*models.InviteCode, error)

	// GetByCode retrieves a code, nil if absent
	GetByCode(ctx context.Context, code string) (*models.InviteCode, error)

	// GetAll returns all codes, newest first
	GetAll(ctx context.Context) ([]*models.InviteCode, error)

	// Consume atomically spends the code for the given user. Fails with
	// ErrInviteCodeUsed unless this call itself flipped the code from
	// active to used.
	Consume(ctx context.Context, code string, userID int64) error
}

// PlaceBetInput carries a placement request into the betting service
type PlaceBetInput struct {
	Sport         string
	Description   string
	OddsAmerican  int
	GameStartTime time.Time
	IsKingLock    bool
}

// BettingService defines the interface for bet lifecycle operations
type BettingService interface {
	// PlaceBet runs the odds gate and weekly placement policy, then
	// creates a PENDING bet in the current week bucket
	PlaceBet(ctx context.Context, userID int64, input PlaceBetInput) (*models.Bet, error)

	// GetBetsForWeek returns the user's bets for a week, newest first
	GetBetsForWeek(ctx context.Context, userID int64, weekNumber int) ([]*models.Bet, error)

	// CurrentWeek returns the active placement week bucket
	CurrentWeek() int

	// DeleteBet removes a PENDING bet owned by the requester
	DeleteBet(ctx context.Context, betID, requesterID int64) error

	// ResolveBet transitions a bet to WON/LOST/VOIDED, awards points and
	// recomputes the owner's aggregates from full history
	ResolveBet(ctx context.Context, betID int64, status models.BetStatus) (*models.Bet, error)
}

// RegisterInput carries a registration request into the user service
type RegisterInput struct {
	Email      string
	Username   string
	Password   string
	InviteCode string
}

// UserService defines the interface for account operations
type UserService interface {
	// Register creates a user and consumes the invite code atomically
	Register(ctx context.Context, input RegisterInput) (*models.User, error)

	// Authenticate verifies credentials and returns the user
	Authenticate(ctx context.Context, email, password string) (*models.User, error)

	// GetByID retrieves a user, failing with ErrUserNotFound
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// StatsService defines the interface for leaderboard reads
type StatsService interface {
	// GetLeaderboard returns ranked USER-role entries
	GetLeaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error)
}

// InviteService defines the interface for invite code administration
type InviteService interface {
	// CreateCode registers a new single-use code (uppercased, length >= 4)
	CreateCode(ctx context.Context, code string) (*models.InviteCode, error)

	// ListCodes returns all codes, newest first
	ListCodes(ctx context.Context) ([]*models.InviteCode, error)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction and discards pending events
	Rollback() error

	// Repository getters
	UserRepository() UserRepository
	BetRepository() BetRepository
	InviteCodeRepository() InviteCodeRepository
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}
