package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/yunta/internal/domain"
)

type MockJuntaService struct {
	mock.Mock
}

// NewMockJuntaService creates a new mock junta service instance
func NewMockJuntaService() *MockJuntaService {
	return &MockJuntaService{}
}

func (m *MockJuntaService) CreateJunta(ctx context.Context, req *domain.CreateJuntaRequest) (*domain.CreateJuntaResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreateJuntaResponse), args.Error(1)
}

func (m *MockJuntaService) ScheduleTurns(ctx context.Context, juntaID uuid.UUID, req *domain.ScheduleTurnsRequest) ([]*domain.Turn, error) {
	args := m.Called(ctx, juntaID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Turn), args.Error(1)
}

func (m *MockJuntaService) GetActiveJunta(ctx context.Context) (*domain.JuntaState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JuntaState), args.Error(1)
}

func (m *MockJuntaService) GetJunta(ctx context.Context, juntaID uuid.UUID) (*domain.JuntaState, error) {
	args := m.Called(ctx, juntaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JuntaState), args.Error(1)
}

func (m *MockJuntaService) GetDailySummary(ctx context.Context, juntaID uuid.UUID, date time.Time) (*domain.DailySummary, error) {
	args := m.Called(ctx, juntaID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailySummary), args.Error(1)
}

func (m *MockJuntaService) RecordPayment(ctx context.Context, juntaID uuid.UUID, req *domain.RecordPaymentRequest) (*domain.Payment, error) {
	args := m.Called(ctx, juntaID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockJuntaService) RescheduleTurn(ctx context.Context, juntaID uuid.UUID, date time.Time, beneficiaryID uuid.UUID) (*domain.Turn, error) {
	args := m.Called(ctx, juntaID, date, beneficiaryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Turn), args.Error(1)
}

func (m *MockJuntaService) CloseDay(ctx context.Context, juntaID uuid.UUID, date time.Time) (*domain.Turn, error) {
	args := m.Called(ctx, juntaID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Turn), args.Error(1)
}

func (m *MockJuntaService) ReopenDay(ctx context.Context, juntaID uuid.UUID, date time.Time) (*domain.Turn, error) {
	args := m.Called(ctx, juntaID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Turn), args.Error(1)
}

func (m *MockJuntaService) DeliverTurn(ctx context.Context, juntaID uuid.UUID, date time.Time) (*domain.Turn, error) {
	args := m.Called(ctx, juntaID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Turn), args.Error(1)
}

func (m *MockJuntaService) AutoCloseElapsedDays(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockJuntaService) GetKardex(ctx context.Context, juntaID, shareID uuid.UUID) (*domain.Kardex, error) {
	args := m.Called(ctx, juntaID, shareID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Kardex), args.Error(1)
}

func (m *MockJuntaService) ArchiveJunta(ctx context.Context, juntaID uuid.UUID, reason *string) (*domain.FinalReport, error) {
	args := m.Called(ctx, juntaID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinalReport), args.Error(1)
}

func (m *MockJuntaService) ListArchivedJuntas(ctx context.Context) ([]*domain.ArchivedJuntaSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ArchivedJuntaSummary), args.Error(1)
}

func (m *MockJuntaService) GetArchiveReport(ctx context.Context, juntaID uuid.UUID) (*domain.FinalReport, error) {
	args := m.Called(ctx, juntaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinalReport), args.Error(1)
}

func (m *MockJuntaService) DuplicateJunta(ctx context.Context, sourceID uuid.UUID, req *domain.DuplicateJuntaRequest) (*domain.CreateJuntaResponse, error) {
	args := m.Called(ctx, sourceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreateJuntaResponse), args.Error(1)
}

func (m *MockJuntaService) CancelJunta(ctx context.Context, juntaID uuid.UUID, reason *string) (*domain.Junta, error) {
	args := m.Called(ctx, juntaID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Junta), args.Error(1)
}

func (m *MockJuntaService) Today() time.Time {
	args := m.Called()
	return args.Get(0).(time.Time)
}
