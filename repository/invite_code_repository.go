package repository

import (
	"context"
	"fmt"

	"parlay/database"
	"parlay/models"

	"github.com/jackc/pgx/v5"
)

// InviteCodeRepository implements the service.InviteCodeRepository interface
type InviteCodeRepository struct {
	q queryable
}

// NewInviteCodeRepository creates a new invite code repository
func NewInviteCodeRepository(db *database.DB) *InviteCodeRepository {
	return &InviteCodeRepository{q: db.Pool}
}

// newInviteCodeRepositoryWithTx creates a new invite code repository bound to a transaction
func newInviteCodeRepositoryWithTx(tx queryable) *InviteCodeRepository {
	return &InviteCodeRepository{q: tx}
}

// Create persists a new active code
func (r *InviteCodeRepository) Create(ctx context.Context, code string) (*models.InviteCode, error) {
	query := `
		INSERT INTO invite_codes (code)
		VALUES ($1)
		RETURNING code, is_active, used_by, used_at, created_at
	`

	var invite models.InviteCode
	err := r.q.QueryRow(ctx, query, code).Scan(
		&invite.Code,
		&invite.IsActive,
		&invite.UsedBy,
		&invite.UsedAt,
		&invite.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create invite code %s: %w", code, err)
	}

	return &invite, nil
}

// GetByCode retrieves a code, nil if absent
func (r *InviteCodeRepository) GetByCode(ctx context.Context, code string) (*models.InviteCode, error) {
	query := `
		SELECT code, is_active, used_by, used_at, created_at
		FROM invite_codes
		WHERE code = $1
	`

	var invite models.InviteCode
	err := r.q.QueryRow(ctx, query, code).Scan(
		&invite.Code,
		&invite.IsActive,
		&invite.UsedBy,
		&invite.UsedAt,
		&invite.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invite code: %w", err)
	}

	return &invite, nil
}

// GetAll returns all codes, newest first
func (r *InviteCodeRepository) GetAll(ctx context.Context) ([]*models.InviteCode, error) {
	query := `
		SELECT code, is_active, used_by, used_at, created_at
		FROM invite_codes
		ORDER BY created_at DESC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get invite codes: %w", err)
	}
	defer rows.Close()

	var codes []*models.InviteCode
	for rows.Next() {
		var invite models.InviteCode
		err := rows.Scan(
			&invite.Code,
			&invite.IsActive,
			&invite.UsedBy,
			&invite.UsedAt,
			&invite.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invite code: %w", err)
		}
		codes = append(codes, &invite)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invite codes: %w", err)
	}

	return codes, nil
}

// Consume spends the code for the given user with a single conditional
// update. The WHERE clause is the validity check, so under concurrency
// exactly one caller can flip the code from active to used.
func (r *InviteCodeRepository) Consume(ctx context.Context, code string, userID int64) error {
	query := `
		UPDATE invite_codes
		SET used_by = $1, used_at = NOW(), is_active = FALSE
		WHERE code = $2 AND is_active = TRUE AND used_by IS NULL
	`

	result, err := r.q.Exec(ctx, query, userID, code)
	if err != nil {
		return fmt.Errorf("failed to consume invite code: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("consume invite code %s: %w", code, models.ErrInviteCodeUsed)
	}

	return nil
}
