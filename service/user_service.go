package service

import (
	"context"
	"fmt"
	"strings"

	"parlay/events"
	"parlay/models"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type userService struct {
	uowFactory UnitOfWorkFactory
}

// NewUserService creates a new user service
func NewUserService(uowFactory UnitOfWorkFactory) UserService {
	return &userService{
		uowFactory: uowFactory,
	}
}

// Register creates a user behind the invite gate. User creation and code
// consumption share one transaction: if the code is consumed concurrently,
// the conditional update fails and the user row rolls back with it.
func (s *userService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)
	code := strings.ToUpper(strings.TrimSpace(input.InviteCode))

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	invite, err := uow.InviteCodeRepository().GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to check invite code: %w", err)
	}
	if invite == nil || !invite.IsConsumable() {
		return nil, fmt.Errorf("register with code %s: %w", code, models.ErrInviteCodeUsed)
	}

	existing, err := uow.UserRepository().GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("register %s: %w", email, models.ErrEmailTaken)
	}

	existing, err = uow.UserRepository().GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("register %s: %w", username, models.ErrUsernameTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:          email,
		Username:       username,
		PasswordHash:   string(hash),
		Role:           models.RoleUser,
		InviteCodeUsed: code,
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := uow.InviteCodeRepository().Consume(ctx, code, user.ID); err != nil {
		return nil, err
	}

	uow.EventBus().Publish(events.UserRegisteredEvent{
		UserID:     user.ID,
		Username:   user.Username,
		InviteCode: code,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, nil
}

// Authenticate verifies credentials and returns the matching user
func (s *userService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	return user, nil
}

// GetByID retrieves a user, failing with ErrUserNotFound
func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", id, models.ErrUserNotFound)
	}

	return user, nil
}
