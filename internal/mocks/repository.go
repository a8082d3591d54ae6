package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/yunta/internal/domain"
)

type MockJuntaRepository struct {
	mock.Mock
}

func (m *MockJuntaRepository) Create(ctx context.Context, junta *domain.Junta) error {
	args := m.Called(ctx, junta)
	return args.Error(0)
}

func (m *MockJuntaRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Junta, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Junta), args.Error(1)
}

func (m *MockJuntaRepository) GetActive(ctx context.Context) (*domain.Junta, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Junta), args.Error(1)
}

func (m *MockJuntaRepository) ListByStatus(ctx context.Context, statuses []domain.JuntaStatus) ([]*domain.Junta, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Junta), args.Error(1)
}

func (m *MockJuntaRepository) Archive(ctx context.Context, id uuid.UUID, archivedAt, endedAt time.Time, reason *string, report *domain.FinalReport) (bool, error) {
	args := m.Called(ctx, id, archivedAt, endedAt, reason, report)
	return args.Bool(0), args.Error(1)
}

func (m *MockJuntaRepository) Cancel(ctx context.Context, id uuid.UUID, at time.Time, reason *string) (bool, error) {
	args := m.Called(ctx, id, at, reason)
	return args.Bool(0), args.Error(1)
}

func (m *MockJuntaRepository) CreateShares(ctx context.Context, shares []*domain.Share) error {
	args := m.Called(ctx, shares)
	return args.Error(0)
}

func (m *MockJuntaRepository) GetShares(ctx context.Context, juntaID uuid.UUID) ([]*domain.Share, error) {
	args := m.Called(ctx, juntaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Share), args.Error(1)
}

func (m *MockJuntaRepository) CreateTurns(ctx context.Context, turns []*domain.Turn) error {
	args := m.Called(ctx, turns)
	return args.Error(0)
}

func (m *MockJuntaRepository) GetTurns(ctx context.Context, juntaID uuid.UUID) ([]*domain.Turn, error) {
	args := m.Called(ctx, juntaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Turn), args.Error(1)
}

func (m *MockJuntaRepository) GetTurnByDate(ctx context.Context, juntaID uuid.UUID, date time.Time) (*domain.Turn, error) {
	args := m.Called(ctx, juntaID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Turn), args.Error(1)
}

func (m *MockJuntaRepository) GetOpenTurnsBefore(ctx context.Context, juntaID uuid.UUID, date time.Time) ([]*domain.Turn, error) {
	args := m.Called(ctx, juntaID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Turn), args.Error(1)
}

func (m *MockJuntaRepository) UpdateTurnBeneficiary(ctx context.Context, turnID, beneficiaryID uuid.UUID) error {
	args := m.Called(ctx, turnID, beneficiaryID)
	return args.Error(0)
}

func (m *MockJuntaRepository) UpdateTurnState(ctx context.Context, turn *domain.Turn) error {
	args := m.Called(ctx, turn)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByJuntaID(ctx context.Context, juntaID uuid.UUID) ([]*domain.Payment, error) {
	args := m.Called(ctx, juntaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByDate(ctx context.Context, juntaID uuid.UUID, date time.Time) ([]*domain.Payment, error) {
	args := m.Called(ctx, juntaID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) CountByJuntaID(ctx context.Context, juntaID uuid.UUID) (int, error) {
	args := m.Called(ctx, juntaID)
	return args.Int(0), args.Error(1)
}

// PassthroughTransactor runs the unit of work without a database
type PassthroughTransactor struct{}

func (PassthroughTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
