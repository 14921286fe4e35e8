package repository

import (
	"context"
	"fmt"
	"time"

	"parlay/database"
	"parlay/models"

	"github.com/jackc/pgx/v5"
)

// BetRepository implements the service.BetRepository interface
type BetRepository struct {
	q queryable
}

// NewBetRepository creates a new bet repository
func NewBetRepository(db *database.DB) *BetRepository {
	return &BetRepository{q: db.Pool}
}

// newBetRepositoryWithTx creates a new bet repository bound to a transaction
func newBetRepositoryWithTx(tx queryable) *BetRepository {
	return &BetRepository{q: tx}
}

const betColumns = `
	id, user_id, week_number, sport, description, odds_american, odds_locked,
	is_king_lock, game_start_time, status, points_awarded, resolved_at, created_at
`

func scanBet(row pgx.Row) (*models.Bet, error) {
	var bet models.Bet
	err := row.Scan(
		&bet.ID,
		&bet.UserID,
		&bet.WeekNumber,
		&bet.Sport,
		&bet.Description,
		&bet.OddsAmerican,
		&bet.OddsLocked,
		&bet.IsKingLock,
		&bet.GameStartTime,
		&bet.Status,
		&bet.PointsAwarded,
		&bet.ResolvedAt,
		&bet.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bet, nil
}

func scanBets(rows pgx.Rows) ([]*models.Bet, error) {
	defer rows.Close()

	var bets []*models.Bet
	for rows.Next() {
		bet, err := scanBet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bet: %w", err)
		}
		bets = append(bets, bet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bets: %w", err)
	}

	return bets, nil
}

// Create persists a new PENDING bet
func (r *BetRepository) Create(ctx context.Context, bet *models.Bet) error {
	query := `
		INSERT INTO bets (user_id, week_number, sport, description, odds_american,
			odds_locked, is_king_lock, game_start_time, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	bet.Status = models.BetStatusPending
	err := r.q.QueryRow(ctx, query,
		bet.UserID,
		bet.WeekNumber,
		bet.Sport,
		bet.Description,
		bet.OddsAmerican,
		bet.OddsLocked,
		bet.IsKingLock,
		bet.GameStartTime,
		bet.Status,
	).Scan(&bet.ID, &bet.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create bet for user %d: %w", bet.UserID, err)
	}

	return nil
}

// GetByID retrieves a bet by its ID
func (r *BetRepository) GetByID(ctx context.Context, id int64) (*models.Bet, error) {
	query := `SELECT` + betColumns + `FROM bets WHERE id = $1`

	bet, err := scanBet(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get bet %d: %w", id, err)
	}
	return bet, nil
}

// GetByUserAndWeek returns a user's bets for a week, newest first
func (r *BetRepository) GetByUserAndWeek(ctx context.Context, userID int64, weekNumber int) ([]*models.Bet, error) {
	query := `SELECT` + betColumns + `
		FROM bets
		WHERE user_id = $1 AND week_number = $2
		ORDER BY created_at DESC
	`

	rows, err := r.q.Query(ctx, query, userID, weekNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets for user %d week %d: %w", userID, weekNumber, err)
	}

	return scanBets(rows)
}

// GetAllByUser returns a user's full bet history, newest first
func (r *BetRepository) GetAllByUser(ctx context.Context, userID int64) ([]*models.Bet, error) {
	query := `SELECT` + betColumns + `
		FROM bets
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bets for user %d: %w", userID, err)
	}

	return scanBets(rows)
}

// Resolve transitions a PENDING bet to a terminal state. The update is
// conditional on the current status so a lost race or a repeated resolution
// surfaces as a conflict instead of silently overwriting.
func (r *BetRepository) Resolve(ctx context.Context, betID int64, status models.BetStatus, points *int, resolvedAt time.Time) (*models.Bet, error) {
	query := `
		UPDATE bets
		SET status = $1, points_awarded = $2, resolved_at = $3
		WHERE id = $4 AND status = 'PENDING'
		RETURNING` + betColumns

	bet, err := scanBet(r.q.QueryRow(ctx, query, status, points, resolvedAt, betID))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve bet %d: %w", betID, err)
	}

	if bet == nil {
		existing, err := r.GetByID(ctx, betID)
		if err != nil {
			return nil, fmt.Errorf("failed to check bet %d: %w", betID, err)
		}
		if existing == nil {
			return nil, fmt.Errorf("resolve bet %d: %w", betID, models.ErrBetNotFound)
		}
		return nil, fmt.Errorf("resolve bet %d: %w", betID, models.ErrBetAlreadyResolved)
	}

	return bet, nil
}

// Delete removes a bet, conditional on it still being PENDING
func (r *BetRepository) Delete(ctx context.Context, betID int64) error {
	query := `DELETE FROM bets WHERE id = $1 AND status = 'PENDING'`

	result, err := r.q.Exec(ctx, query, betID)
	if err != nil {
		return fmt.Errorf("failed to delete bet %d: %w", betID, err)
	}

	if result.RowsAffected() == 0 {
		existing, err := r.GetByID(ctx, betID)
		if err != nil {
			return fmt.Errorf("failed to check bet %d: %w", betID, err)
		}
		if existing == nil {
			return fmt.Errorf("delete bet %d: %w", betID, models.ErrBetNotFound)
		}
		return fmt.Errorf("delete bet %d: %w", betID, models.ErrBetNotDeletable)
	}

	return nil
}

// AcquirePlacementLock takes a transaction-scoped advisory lock on the
// (user, week) pair so concurrent placements serialize and each one sees the
// other's committed inserts when re-reading the week's bets. Released
// automatically at commit or rollback. The key is a single bigint composed
// from the user ID and the week (which fits in the low byte), keeping the
// full int8 ID range usable.
func (r *BetRepository) AcquirePlacementLock(ctx context.Context, userID int64, weekNumber int) error {
	query := `SELECT pg_advisory_xact_lock(($1::bigint << 8) | $2::bigint)`

	if _, err := r.q.Exec(ctx, query, userID, weekNumber); err != nil {
		return fmt.Errorf("failed to acquire placement lock for user %d week %d: %w", userID, weekNumber, err)
	}

	return nil
}
