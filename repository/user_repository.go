package repository

import (
	"context"
	"fmt"

	"parlay/database"
	"parlay/models"

	"github.com/jackc/pgx/v5"
)

// UserRepository implements the service.UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository bound to a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

const userColumns = `
	id, email, username, password_hash, role, invite_code_used,
	total_points, bets_won, bets_lost, biggest_hit, created_at, updated_at
`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.InviteCodeUsed,
		&user.TotalPoints,
		&user.BetsWon,
		&user.BetsLost,
		&user.BiggestHit,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by their ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT` + userColumns + `FROM users WHERE id = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT` + userColumns + `FROM users WHERE email = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT` + userColumns + `FROM users WHERE username = $1`

	user, err := scanUser(r.q.QueryRow(ctx, query, username))
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// Create persists a new user and fills in ID and timestamps
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, username, password_hash, role, invite_code_used)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, total_points, bets_won, bets_lost, biggest_hit, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.Role,
		user.InviteCodeUsed,
	).Scan(
		&user.ID,
		&user.TotalPoints,
		&user.BetsWon,
		&user.BetsLost,
		&user.BiggestHit,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user %s: %w", user.Username, err)
	}

	return nil
}

// UpdateAggregates overwrites the user's derived statistics wholesale
func (r *UserRepository) UpdateAggregates(ctx context.Context, userID int64, agg models.UserAggregates) error {
	query := `
		UPDATE users
		SET total_points = $1, bets_won = $2, bets_lost = $3, biggest_hit = $4, updated_at = NOW()
		WHERE id = $5
	`

	result, err := r.q.Exec(ctx, query,
		agg.TotalPoints,
		agg.BetsWon,
		agg.BetsLost,
		agg.BiggestHit,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update aggregates for user %d: %w", userID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update aggregates for user %d: %w", userID, models.ErrUserNotFound)
	}

	return nil
}

// GetLeaderboard returns USER-role rows ordered by total points, bets won
// and biggest hit, all descending.
func (r *UserRepository) GetLeaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	query := `
		SELECT username, total_points, bets_won, bets_lost, biggest_hit
		FROM users
		WHERE role = 'USER'
		ORDER BY total_points DESC, bets_won DESC, biggest_hit DESC
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	for rows.Next() {
		var entry models.LeaderboardEntry
		err := rows.Scan(
			&entry.Username,
			&entry.TotalPoints,
			&entry.BetsWon,
			&entry.BetsLost,
			&entry.BiggestHit,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard: %w", err)
	}

	return entries, nil
}
