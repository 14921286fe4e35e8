package service

import (
	"context"
	"fmt"
	"strings"

	"parlay/events"
	"parlay/models"
)

type inviteService struct {
	uowFactory UnitOfWorkFactory
}

// NewInviteService creates a new invite code service
func NewInviteService(uowFactory UnitOfWorkFactory) InviteService {
	return &inviteService{
		uowFactory: uowFactory,
	}
}

// CreateCode registers a new single-use code. Codes are stored uppercased;
// the storage-level minimum is 4 characters, the registration validator is
// stricter.
func (s *inviteService) CreateCode(ctx context.Context, code string) (*models.InviteCode, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) < 4 {
		return nil, fmt.Errorf("code must be at least 4 characters: %w", models.ErrValidation)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	existing, err := uow.InviteCodeRepository().GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to check invite code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("create code %s: %w", code, models.ErrInviteCodeExists)
	}

	invite, err := uow.InviteCodeRepository().Create(ctx, code)
	if err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.InviteCodeCreatedEvent{Code: invite.Code})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return invite, nil
}

// ListCodes returns all codes, newest first
func (s *inviteService) ListCodes(ctx context.Context) ([]*models.InviteCode, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	codes, err := uow.InviteCodeRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list invite codes: %w", err)
	}

	return codes, nil
}
