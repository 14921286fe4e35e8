package service

import (
	"context"
	"time"

	"parlay/events"
	"parlay/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateAggregates(ctx context.Context, userID int64, agg models.UserAggregates) error {
	args := m.Called(ctx, userID, agg)
	return args.Error(0)
}

func (m *MockUserRepository) GetLeaderboard(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LeaderboardEntry), args.Error(1)
}

// MockBetRepository is a mock implementation of BetRepository
type MockBetRepository struct {
	mock.Mock
}

func (m *MockBetRepository) Create(ctx context.Context, bet *models.Bet) error {
	args := m.Called(ctx, bet)
	return args.Error(0)
}

func (m *MockBetRepository) GetByID(ctx context.Context, id int64) (*models.Bet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}

func (m *MockBetRepository) GetByUserAndWeek(ctx context.Context, userID int64, weekNumber int) ([]*models.Bet, error) {
	args := m.Called(ctx, userID, weekNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Bet), args.Error(1)
}

func (m *MockBetRepository) GetAllByUser(ctx context.Context, userID int64) ([]*models.Bet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Bet), args.Error(1)
}

func (m *MockBetRepository) Resolve(ctx context.Context, betID int64, status models.BetStatus, points *int, resolvedAt time.Time) (*models.Bet, error) {
	args := m.Called(ctx, betID, status, points, resolvedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bet), args.Error(1)
}

func (m *MockBetRepository) Delete(ctx context.Context, betID int64) error {
	args := m.Called(ctx, betID)
	return args.Error(0)
}

func (m *MockBetRepository) AcquirePlacementLock(ctx context.Context, userID int64, weekNumber int) error {
	args := m.Called(ctx, userID, weekNumber)
	return args.Error(0)
}

// MockInviteCodeRepository is a mock implementation of InviteCodeRepository
type MockInviteCodeRepository struct {
	mock.Mock
}

func (m *MockInviteCodeRepository) Create(ctx context.Context, code string) (*models.InviteCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InviteCode), args.Error(1)
}

func (m *MockInviteCodeRepository) GetByCode(ctx context.Context, code string) (*models.InviteCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InviteCode), args.Error(1)
}

func (m *MockInviteCodeRepository) GetAll(ctx context.Context) ([]*models.InviteCode, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.InviteCode), args.Error(1)
}

func (m *MockInviteCodeRepository) Consume(ctx context.Context, code string, userID int64) error {
	args := m.Called(ctx, code, userID)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.Called(event)
}

// MockUnitOfWork is a mock implementation of UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
	userRepo       UserRepository
	betRepo        BetRepository
	inviteCodeRepo InviteCodeRepository
	eventBus       EventPublisher
}

// SetRepositories wires the repositories the mock hands out
func (m *MockUnitOfWork) SetRepositories(userRepo UserRepository, betRepo BetRepository, inviteCodeRepo InviteCodeRepository) {
	m.userRepo = userRepo
	m.betRepo = betRepo
	m.inviteCodeRepo = inviteCodeRepo
	m.eventBus = &nopPublisher{}
}

type nopPublisher struct{}

func (*nopPublisher) Publish(events.Event) {}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() UserRepository {
	return m.userRepo
}

func (m *MockUnitOfWork) BetRepository() BetRepository {
	return m.betRepo
}

func (m *MockUnitOfWork) InviteCodeRepository() InviteCodeRepository {
	return m.inviteCodeRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}
