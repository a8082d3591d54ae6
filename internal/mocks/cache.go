package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/yunta/internal/domain"
)

type MockReportCache struct {
	mock.Mock
}

func (m *MockReportCache) Get(ctx context.Context, juntaID uuid.UUID) (*domain.FinalReport, bool, error) {
	args := m.Called(ctx, juntaID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.FinalReport), args.Bool(1), args.Error(2)
}

func (m *MockReportCache) Set(ctx context.Context, report *domain.FinalReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}
