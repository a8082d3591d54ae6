package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/yunta/internal/domain"
	"github.com/segyhp/yunta/internal/mocks"
	customError "github.com/segyhp/yunta/pkg/errors"
)

var (
	fixedNow  = time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	startDay  = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	ten       = decimal.NewFromInt(10)
	errBoom   = errors.New("connection reset")
	noRowsErr = sql.ErrNoRows
)

var (
	_ Service = (*JuntaService)(nil)
	_ Service = (*mocks.MockJuntaService)(nil)
)

type mockDeps struct {
	juntas   *mocks.MockJuntaRepository
	payments *mocks.MockPaymentRepository
	reports  *mocks.MockReportCache
}

func newMockService() (*JuntaService, *mockDeps) {
	deps := &mockDeps{
		juntas:   &mocks.MockJuntaRepository{},
		payments: &mocks.MockPaymentRepository{},
		reports:  &mocks.MockReportCache{},
	}
	svc := &JuntaService{
		juntaRepo:          deps.juntas,
		paymentRepo:        deps.payments,
		tx:                 mocks.PassthroughTransactor{},
		reports:            deps.reports,
		loc:                time.UTC,
		autoCloseAfterDays: 2,
		now:                func() time.Time { return fixedNow },
	}
	return svc, deps
}

func activeJunta() *domain.Junta {
	return &domain.Junta{
		ID:        uuid.New(),
		Name:      "Junta Familiar",
		StartDate: startDay,
		Duration:  3,
		Status:    domain.JuntaStatusActive,
	}
}

func roster(juntaID uuid.UUID) []*domain.Share {
	return []*domain.Share{
		{ID: uuid.New(), JuntaID: juntaID, Name: "Ana", DailyCommitment: ten, Position: 0},
		{ID: uuid.New(), JuntaID: juntaID, Name: "Beto", DailyCommitment: ten, Position: 1},
	}
}

func TestCreateJunta_Success(t *testing.T) {
	svc, deps := newMockService()

	deps.juntas.On("GetActive", mock.Anything).Return(nil, noRowsErr)
	deps.juntas.On("Create", mock.Anything, mock.MatchedBy(func(j *domain.Junta) bool {
		return j.Name == "Junta Familiar" && j.Duration == 3 && j.Status == domain.JuntaStatusActive
	})).Return(nil)
	deps.juntas.On("CreateShares", mock.Anything, mock.MatchedBy(func(shares []*domain.Share) bool {
		return len(shares) == 2
	})).Return(nil)
	deps.juntas.On("CreateTurns", mock.Anything, mock.MatchedBy(func(turns []*domain.Turn) bool {
		return len(turns) == 3
	})).Return(nil)

	resp, err := svc.CreateJunta(context.Background(), &domain.CreateJuntaRequest{
		Name:      "  Junta Familiar ",
		StartDate: "2026-03-01",
		Duration:  3,
		Participants: []domain.ParticipantInput{
			{Name: "Ana", DailyCommitment: ten},
			{Name: "Beto", DailyCommitment: ten},
		},
	})

	require.NoError(t, err)
	require.Len(t, resp.Schedule, 3)
	assert.Equal(t, resp.Participants[0].ID, resp.Schedule[0].BeneficiaryID)
	assert.Equal(t, resp.Participants[1].ID, resp.Schedule[1].BeneficiaryID)
	assert.Equal(t, resp.Participants[0].ID, resp.Schedule[2].BeneficiaryID)
	assert.Equal(t, "2026-03-03", resp.Schedule[2].Date.Format("2006-01-02"))
	assert.Equal(t, 3, resp.Schedule[2].TurnNumber)

	deps.juntas.AssertExpectations(t)
}

func TestCreateJunta_DurationDefaultsToRoster(t *testing.T) {
	svc, deps := newMockService()

	deps.juntas.On("GetActive", mock.Anything).Return(nil, noRowsErr)
	deps.juntas.On("Create", mock.Anything, mock.Anything).Return(nil)
	deps.juntas.On("CreateShares", mock.Anything, mock.Anything).Return(nil)
	deps.juntas.On("CreateTurns", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.CreateJunta(context.Background(), &domain.CreateJuntaRequest{
		Name:      "Semanal",
		StartDate: "2026-03-01",
		Participants: []domain.ParticipantInput{
			{Name: "Ana", DailyCommitment: ten},
			{Name: "Beto", DailyCommitment: ten},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Junta.Duration)
	assert.Len(t, resp.Schedule, 2)
}

func TestCreateJunta_ExplicitSchedule(t *testing.T) {
	svc, deps := newMockService()

	deps.juntas.On("GetActive", mock.Anything).Return(nil, noRowsErr)
	deps.juntas.On("Create", mock.Anything, mock.Anything).Return(nil)
	deps.juntas.On("CreateShares", mock.Anything, mock.Anything).Return(nil)
	deps.juntas.On("CreateTurns", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.CreateJunta(context.Background(), &domain.CreateJuntaRequest{
		Name:      "Explicit",
		StartDate: "2026-03-01",
		Participants: []domain.ParticipantInput{
			{Name: "Ana", DailyCommitment: ten},
			{Name: "Beto", DailyCommitment: ten},
		},
		Schedule: []domain.ScheduleEntry{
			{Date: "2026-03-02", BeneficiaryIndex: 0},
			{Date: "2026-03-01", BeneficiaryIndex: 1},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Junta.Duration)
	assert.Equal(t, 1, resp.Schedule[0].TurnNumber)
	assert.Equal(t, "2026-03-01", resp.Schedule[0].Date.Format("2006-01-02"))
	assert.Equal(t, resp.Participants[1].ID, resp.Schedule[0].BeneficiaryID)
}

func TestCreateJunta_Validation(t *testing.T) {
	tests := []struct {
		name     string
		req      *domain.CreateJuntaRequest
		expected error
	}{
		{
			name:     "bad start date",
			req:      &domain.CreateJuntaRequest{Name: "X", StartDate: "01/03/2026", Participants: []domain.ParticipantInput{{Name: "Ana", DailyCommitment: ten}}},
			expected: customError.ErrInvalidDate,
		},
		{
			name:     "no participants",
			req:      &domain.CreateJuntaRequest{Name: "X", StartDate: "2026-03-01"},
			expected: customError.ErrInvalidInput,
		},
		{
			name:     "zero commitment",
			req:      &domain.CreateJuntaRequest{Name: "X", StartDate: "2026-03-01", Participants: []domain.ParticipantInput{{Name: "Ana", DailyCommitment: decimal.Zero}}},
			expected: customError.ErrInvalidInput,
		},
		{
			name: "schedule outside the period",
			req: &domain.CreateJuntaRequest{
				Name: "X", StartDate: "2026-03-01",
				Participants: []domain.ParticipantInput{{Name: "Ana", DailyCommitment: ten}},
				Schedule:     []domain.ScheduleEntry{{Date: "2026-03-05", BeneficiaryIndex: 0}},
			},
			expected: customError.ErrInvalidInput,
		},
		{
			name: "beneficiary index out of range",
			req: &domain.CreateJuntaRequest{
				Name: "X", StartDate: "2026-03-01",
				Participants: []domain.ParticipantInput{{Name: "Ana", DailyCommitment: ten}},
				Schedule:     []domain.ScheduleEntry{{Date: "2026-03-01", BeneficiaryIndex: 3}},
			},
			expected: customError.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newMockService()

			_, err := svc.CreateJunta(context.Background(), tt.req)

			assert.ErrorIs(t, err, tt.expected)
			deps.juntas.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateJunta_RejectsSecondActive(t *testing.T) {
	svc, deps := newMockService()
	deps.juntas.On("GetActive", mock.Anything).Return(activeJunta(), nil)

	_, err := svc.CreateJunta(context.Background(), &domain.CreateJuntaRequest{
		Name:         "Another",
		StartDate:    "2026-03-01",
		Participants: []domain.ParticipantInput{{Name: "Ana", DailyCommitment: ten}},
	})

	assert.ErrorIs(t, err, customError.ErrActiveJuntaExists)
	deps.juntas.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordPayment_Validation(t *testing.T) {
	juntaID := uuid.New()
	tests := []struct {
		name     string
		req      *domain.RecordPaymentRequest
		expected error
	}{
		{
			name:     "zero amount",
			req:      &domain.RecordPaymentRequest{TargetDate: "2026-03-01", ParticipantID: uuid.NewString(), Amount: decimal.Zero, Method: domain.PaymentMethodCash},
			expected: customError.ErrInvalidPaymentAmount,
		},
		{
			name:     "negative amount",
			req:      &domain.RecordPaymentRequest{TargetDate: "2026-03-01", ParticipantID: uuid.NewString(), Amount: decimal.NewFromInt(-5), Method: domain.PaymentMethodCash},
			expected: customError.ErrInvalidPaymentAmount,
		},
		{
			name:     "unknown method",
			req:      &domain.RecordPaymentRequest{TargetDate: "2026-03-01", ParticipantID: uuid.NewString(), Amount: ten, Method: "BITCOIN"},
			expected: customError.ErrInvalidPaymentMethod,
		},
		{
			name:     "bad date",
			req:      &domain.RecordPaymentRequest{TargetDate: "yesterday", ParticipantID: uuid.NewString(), Amount: ten, Method: domain.PaymentMethodCash},
			expected: customError.ErrInvalidDate,
		},
		{
			name:     "bad participant id",
			req:      &domain.RecordPaymentRequest{TargetDate: "2026-03-01", ParticipantID: "ana", Amount: ten, Method: domain.PaymentMethodCash},
			expected: customError.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newMockService()

			_, err := svc.RecordPayment(context.Background(), juntaID, tt.req)

			assert.ErrorIs(t, err, tt.expected)
			assert.Equal(t, customError.CategoryValidation, customError.CategoryOf(err))
			deps.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestRecordPayment_Success(t *testing.T) {
	svc, deps := newMockService()
	junta := activeJunta()
	shares := roster(junta.ID)
	turn := &domain.Turn{ID: uuid.New(), JuntaID: junta.ID, TurnNumber: 1, Date: startDay, BeneficiaryID: shares[0].ID, Status: domain.TurnStatusPending}

	deps.juntas.On("GetByID", mock.Anything, junta.ID).Return(junta, nil)
	deps.juntas.On("GetTurnByDate", mock.Anything, junta.ID, startDay).Return(turn, nil)
	deps.juntas.On("GetShares", mock.Anything, junta.ID).Return(shares, nil)
	deps.payments.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.TurnID == turn.ID && p.ShareID == shares[1].ID && p.Amount.Equal(decimal.NewFromInt(5))
	})).Return(nil)

	payment, err := svc.RecordPayment(context.Background(), junta.ID, &domain.RecordPaymentRequest{
		TargetDate:    "2026-03-01",
		ParticipantID: shares[1].ID.String(),
		Amount:        decimal.NewFromInt(5),
		Method:        domain.PaymentMethodYape,
	})

	require.NoError(t, err)
	assert.Equal(t, startDay, payment.TargetDate)
	assert.Equal(t, fixedNow, payment.CreatedAt)
	deps.payments.AssertExpectations(t)
}

func TestRecordPayment_DayClosed(t *testing.T) {
	svc, deps := newMockService()
	junta := activeJunta()
	turn := &domain.Turn{ID: uuid.New(), JuntaID: junta.ID, Date: startDay, IsClosed: true}

	deps.juntas.On("GetByID", mock.Anything, junta.ID).Return(junta, nil)
	deps.juntas.On("GetTurnByDate", mock.Anything, junta.ID, startDay).Return(turn, nil)

	_, err := svc.RecordPayment(context.Background(), junta.ID, &domain.RecordPaymentRequest{
		TargetDate:    "2026-03-01",
		ParticipantID: uuid.NewString(),
		Amount:        ten,
		Method:        domain.PaymentMethodCash,
	})

	assert.ErrorIs(t, err, customError.ErrDayClosed)
	assert.Equal(t, customError.CategoryConflict, customError.CategoryOf(err))
	deps.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecordPayment_NoTurnForDate(t *testing.T) {
	svc, deps := newMockService()
	junta := activeJunta()

	deps.juntas.On("GetByID", mock.Anything, junta.ID).Return(junta, nil)
	deps.juntas.On("GetTurnByDate", mock.Anything, junta.ID, mock.Anything).Return(nil, noRowsErr)

	_, err := svc.RecordPayment(context.Background(), junta.ID, &domain.RecordPaymentRequest{
		TargetDate:    "2026-04-01",
		ParticipantID: uuid.NewString(),
		Amount:        ten,
		Method:        domain.PaymentMethodCash,
	})

	assert.ErrorIs(t, err, customError.ErrTurnNotFound)
}

func TestRecordPayment_ArchivedJunta(t *testing.T) {
	svc, deps := newMockService()
	junta := activeJunta()
	junta.Status = domain.JuntaStatusArchived

	deps.juntas.On("GetByID", mock.Anything, junta.ID).Return(junta, nil)

	_, err := svc.RecordPayment(context.Background(), junta.ID, &domain.RecordPaymentRequest{
		TargetDate:    "2026-03-01",
		ParticipantID: uuid.NewString(),
		Amount:        ten,
		Method:        domain.PaymentMethodCash,
	})

	assert.ErrorIs(t, err, customError.ErrJuntaNotActive)
	deps.juntas.AssertNotCalled(t, "GetTurnByDate", mock.Anything, mock.Anything, mock.Anything)
}

func TestRecordPayment_DatabaseError(t *testing.T) {
	svc, deps := newMockService()
	junta := activeJunta()

	deps.juntas.On("GetByID", mock.Anything, junta.ID).Return(nil, errBoom)

	_, err := svc.RecordPayment(context.Background(), junta.ID, &domain.RecordPaymentRequest{
		TargetDate:    "2026-03-01",
		ParticipantID: uuid.NewString(),
		Amount:        ten,
		Method:        domain.PaymentMethodCash,
	})

	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, customError.CategoryUnexpected, customError.CategoryOf(err))
}

func TestCloseDay_FundsFullyCollectedTurn(t *testing.T) {
	tests := []struct {
		name           string
		collected      []string
		expectedStatus string
	}{
		{name: "full pot", collected: []string{"10", "10"}, expectedStatus: domain.TurnStatusFunded},
		{name: "overpaid pot", collected: []string{"15", "10"}, expectedStatus: domain.TurnStatusFunded},
		{name: "short pot", collected: []string{"10", "5"}, expectedStatus: domain.TurnStatusPending},
		{name: "nothing collected", collected: nil, expectedStatus: domain.TurnStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newMockService()
			junta := activeJunta()
			shares := roster(junta.ID)
			turn := &domain.Turn{ID: uuid.New(), JuntaID: junta.ID, Date: startDay, BeneficiaryID: shares[0].ID, Status: domain.TurnStatusPending}

			payments := []*domain.Payment{}
			for i, amount := range tt.collected {
				payments = append(payments, &domain.Payment{ShareID: shares[i].ID, Amount: decimal.RequireFromString(amount), TargetDate: startDay})
			}

			deps.juntas.On("GetByID", mock.Anything, junta.ID).Return(junta, nil)
			deps.juntas.On("GetTurnByDate", mock.Anything, junta.ID, startDay).Return(turn, nil)
			deps.juntas.On("GetShares", mock.Anything, junta.ID).Return(shares, nil)
			deps.payments.On("GetByDate", mock.Anything, junta.ID, startDay).Return(payments, nil)
			deps.juntas.On("UpdateTurnState", mock.Anything, mock.MatchedBy(func(t *domain.Turn) bool {
				return t.IsClosed && t.ClosedAt != nil && t.Status == tt.expectedStatus
			})).Return(nil)

			got, err := svc.CloseDay(context.Background(), junta.ID, startDay)

			require.NoError(t, err)
			assert.True(t, got.IsClosed)
			assert.Equal(t, tt.expectedStatus, got.Status)
			deps.juntas.AssertExpectations(t)
		})
	}
}

func TestCloseDay_AlreadyClosed(t *testing.T) {
	svc, deps := newMockService()
	junta := activeJunta()

	deps.juntas.On("GetByID", mock.Anything, junta.ID).Return(junta, nil)
	deps.juntas.On("GetTurnByDate", mock.Anything, junta.ID, startDay).Return(&domain.Turn{JuntaID: junta.ID, Date: startDay, IsClosed: true}, nil)

	_, err := svc.CloseDay(context.Background(), junta.ID, startDay)

	assert.ErrorIs(t, err, customError.ErrDayAlreadyClosed)
	deps.juntas.AssertNotCalled(t, "UpdateTurnState", mock.Anything, mock.Anything)
}

func TestReopenDay(t *testing.T) {
	svc, deps := newMockService()
	junta := activeJunta()
	closedAt := fixedNow
	turn := &domain.Turn{ID: uuid.New(), JuntaID: junta.ID, Date: startDay, IsClosed: true, ClosedAt: &closedAt, Status: domain.TurnStatusFunded}

	deps.juntas.On("GetByID", mock.Anything, junta.ID).Return(junta, nil)
	deps.juntas.On("GetTurnByDate", mock.Anything, junta.ID, startDay).Return(turn, nil)
	deps.juntas.On("UpdateTurnState", mock.Anything, mock.MatchedBy(func(t *domain.Turn) bool {
		return !t.IsClosed && t.ClosedAt == nil && t.Status == domain.TurnStatusPending
	})).Return(nil)

	got, err := svc.ReopenDay(context.Background(), junta.ID, startDay)

	require.NoError(t, err)
	assert.False(t, got.IsClosed)
	deps.payments.AssertNotCalled(t, "GetByDate", mock.Anything, mock.Anything, mock.Anything)
}

func TestReopenDay_AlreadyOpen(t *testing.T) {
	svc, deps := newMockService()
	junta := activeJunta()

	deps.juntas.On("GetByID", mock.Anything, junta.ID).Return(junta, nil)
	deps.juntas.On("GetTurnByDate", mock.Anything, junta.ID, startDay).Return(&domain.Turn{JuntaID: junta.ID, Date: startDay}, nil)

	_, err := svc.ReopenDay(context.Background(), junta.ID, startDay)

	assert.ErrorIs(t, err, customError.ErrDayAlreadyOpen)
}

func TestRescheduleTurn_ParticipantFromAnotherJunta(t *testing.T) {
	svc, deps := newMockService()
	junta := activeJunta()
	shares := roster(junta.ID)

	deps.juntas.On("GetByID", mock.Anything, junta.ID).Return(junta, nil)
	deps.juntas.On("GetTurnByDate", mock.Anything, junta.ID, startDay).Return(&domain.Turn{ID: uuid.New(), JuntaID: junta.ID, Date: startDay, BeneficiaryID: shares[0].ID}, nil)
	deps.juntas.On("GetShares", mock.Anything, junta.ID).Return(shares, nil)

	_, err := svc.RescheduleTurn(context.Background(), junta.ID, startDay, uuid.New())

	assert.ErrorIs(t, err, customError.ErrParticipantNotFound)
	deps.juntas.AssertNotCalled(t, "UpdateTurnBeneficiary", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeliverTurn_Twice(t *testing.T) {
	svc, deps := newMockService()
	junta := activeJunta()

	deps.juntas.On("GetByID", mock.Anything, junta.ID).Return(junta, nil)
	deps.juntas.On("GetTurnByDate", mock.Anything, junta.ID, startDay).Return(&domain.Turn{JuntaID: junta.ID, Date: startDay, Status: domain.TurnStatusPaidOut}, nil)

	_, err := svc.DeliverTurn(context.Background(), junta.ID, startDay)

	assert.ErrorIs(t, err, customError.ErrTurnAlreadyPaidOut)
}

func TestAutoCloseElapsedDays(t *testing.T) {
	svc, deps := newMockService()
	junta := activeJunta()
	shares := roster(junta.ID)
	old := &domain.Turn{ID: uuid.New(), JuntaID: junta.ID, Date: startDay.AddDate(0, 0, -5), Status: domain.TurnStatusPending}

	// today is 2026-03-02; with a two day threshold everything up to 2026-02-28 closes
	cutoff := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	deps.juntas.On("GetActive", mock.Anything).Return(junta, nil)
	deps.juntas.On("GetOpenTurnsBefore", mock.Anything, junta.ID, cutoff).Return([]*domain.Turn{old}, nil)
	deps.juntas.On("GetShares", mock.Anything, junta.ID).Return(shares, nil)
	deps.payments.On("GetByDate", mock.Anything, junta.ID, old.Date).Return([]*domain.Payment{}, nil)
	deps.juntas.On("UpdateTurnState", mock.Anything, old).Return(nil)

	closed, err := svc.AutoCloseElapsedDays(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, closed)
	assert.True(t, old.IsClosed)
	deps.juntas.AssertExpectations(t)
}

func TestAutoCloseElapsedDays_Disabled(t *testing.T) {
	svc, deps := newMockService()
	svc.autoCloseAfterDays = 0

	closed, err := svc.AutoCloseElapsedDays(context.Background())

	require.NoError(t, err)
	assert.Zero(t, closed)
	deps.juntas.AssertNotCalled(t, "GetActive", mock.Anything)
}

func TestAutoCloseElapsedDays_NoActiveJunta(t *testing.T) {
	svc, deps := newMockService()
	deps.juntas.On("GetActive", mock.Anything).Return(nil, noRowsErr)

	closed, err := svc.AutoCloseElapsedDays(context.Background())

	require.NoError(t, err)
	assert.Zero(t, closed)
}

func TestArchiveJunta_NotActive(t *testing.T) {
	svc, deps := newMockService()
	junta := activeJunta()
	junta.Status = domain.JuntaStatusArchived

	deps.juntas.On("GetByID", mock.Anything, junta.ID).Return(junta, nil)

	_, err := svc.ArchiveJunta(context.Background(), junta.ID, nil)

	assert.ErrorIs(t, err, customError.ErrJuntaNotActive)
	assert.Contains(t, err.Error(), "only active juntas can be archived")
	deps.reports.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestArchiveJunta_CachesReport(t *testing.T) {
	svc, deps := newMockService()
	junta := activeJunta()
	shares := roster(junta.ID)
	reason := "  ciclo terminado "

	deps.juntas.On("GetByID", mock.Anything, junta.ID).Return(junta, nil)
	deps.juntas.On("GetShares", mock.Anything, junta.ID).Return(shares, nil)
	deps.juntas.On("GetTurns", mock.Anything, junta.ID).Return([]*domain.Turn{}, nil)
	deps.payments.On("GetByJuntaID", mock.Anything, junta.ID).Return([]*domain.Payment{}, nil)
	deps.juntas.On("Archive", mock.Anything, junta.ID, fixedNow, fixedNow.Truncate(24*time.Hour), mock.MatchedBy(func(r *string) bool {
		return r != nil && *r == "ciclo terminado"
	}), mock.Anything).Return(true, nil)
	deps.reports.On("Set", mock.Anything, mock.Anything).Return(errBoom)

	report, err := svc.ArchiveJunta(context.Background(), junta.ID, &reason)

	require.NoError(t, err, "a cache failure must not fail the archive")
	assert.Equal(t, 2, report.GlobalStats.ParticipantCount)
	assert.Equal(t, 2, report.Period.TotalDays)
	deps.juntas.AssertExpectations(t)
	deps.reports.AssertExpectations(t)
}

func TestArchiveJunta_LostRace(t *testing.T) {
	svc, deps := newMockService()
	junta := activeJunta()

	deps.juntas.On("GetByID", mock.Anything, junta.ID).Return(junta, nil)
	deps.juntas.On("GetShares", mock.Anything, junta.ID).Return(roster(junta.ID), nil)
	deps.juntas.On("GetTurns", mock.Anything, junta.ID).Return([]*domain.Turn{}, nil)
	deps.payments.On("GetByJuntaID", mock.Anything, junta.ID).Return([]*domain.Payment{}, nil)
	deps.juntas.On("Archive", mock.Anything, junta.ID, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

	_, err := svc.ArchiveJunta(context.Background(), junta.ID, nil)

	assert.ErrorIs(t, err, customError.ErrJuntaNotActive)
}

func TestGetArchiveReport_CacheHit(t *testing.T) {
	svc, deps := newMockService()
	juntaID := uuid.New()
	cached := &domain.FinalReport{JuntaID: juntaID, JuntaName: "cached"}

	deps.reports.On("Get", mock.Anything, juntaID).Return(cached, true, nil)

	report, err := svc.GetArchiveReport(context.Background(), juntaID)

	require.NoError(t, err)
	assert.Same(t, cached, report)
	deps.juntas.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestGetArchiveReport_CacheMissFillsCache(t *testing.T) {
	svc, deps := newMockService()
	junta := activeJunta()
	junta.Status = domain.JuntaStatusArchived
	junta.FinalReport = &domain.FinalReport{JuntaID: junta.ID, JuntaName: junta.Name}

	deps.reports.On("Get", mock.Anything, junta.ID).Return(nil, false, errBoom)
	deps.juntas.On("GetByID", mock.Anything, junta.ID).Return(junta, nil)
	deps.reports.On("Set", mock.Anything, junta.FinalReport).Return(nil)

	report, err := svc.GetArchiveReport(context.Background(), junta.ID)

	require.NoError(t, err)
	assert.Equal(t, junta.Name, report.JuntaName)
	deps.reports.AssertExpectations(t)
}

func TestGetArchiveReport_NoReport(t *testing.T) {
	svc, deps := newMockService()
	junta := activeJunta()

	deps.reports.On("Get", mock.Anything, junta.ID).Return(nil, false, nil)
	deps.juntas.On("GetByID", mock.Anything, junta.ID).Return(junta, nil)

	_, err := svc.GetArchiveReport(context.Background(), junta.ID)

	assert.ErrorIs(t, err, customError.ErrReportNotFound)
}

func TestGetJunta_NotFound(t *testing.T) {
	svc, deps := newMockService()
	id := uuid.New()
	deps.juntas.On("GetByID", mock.Anything, id).Return(nil, noRowsErr)

	_, err := svc.GetJunta(context.Background(), id)

	assert.ErrorIs(t, err, customError.ErrJuntaNotFound)
	assert.Equal(t, customError.CategoryNotFound, customError.CategoryOf(err))
}

func TestToday_UsesJuntaTimeZone(t *testing.T) {
	lima, err := time.LoadLocation("America/Lima")
	require.NoError(t, err)

	svc := &JuntaService{
		loc: lima,
		now: func() time.Time { return time.Date(2026, 3, 2, 3, 0, 0, 0, time.UTC) },
	}

	assert.Equal(t, "2026-03-01", svc.Today().Format("2006-01-02"))
}
