package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/segyhp/yunta/internal/cache"
	"github.com/segyhp/yunta/internal/config"
	"github.com/segyhp/yunta/internal/domain"
	"github.com/segyhp/yunta/internal/repository"
	customError "github.com/segyhp/yunta/pkg/errors"
	"github.com/segyhp/yunta/pkg/utils"
)

// Service is the junta engine as the HTTP API, the CLI and the scheduler see it
type Service interface {
	CreateJunta(ctx context.Context, req *domain.CreateJuntaRequest) (*domain.CreateJuntaResponse, error)
	ScheduleTurns(ctx context.Context, juntaID uuid.UUID, req *domain.ScheduleTurnsRequest) ([]*domain.Turn, error)
	GetActiveJunta(ctx context.Context) (*domain.JuntaState, error)
	GetJunta(ctx context.Context, juntaID uuid.UUID) (*domain.JuntaState, error)

	GetDailySummary(ctx context.Context, juntaID uuid.UUID, date time.Time) (*domain.DailySummary, error)
	RecordPayment(ctx context.Context, juntaID uuid.UUID, req *domain.RecordPaymentRequest) (*domain.Payment, error)
	RescheduleTurn(ctx context.Context, juntaID uuid.UUID, date time.Time, beneficiaryID uuid.UUID) (*domain.Turn, error)
	CloseDay(ctx context.Context, juntaID uuid.UUID, date time.Time) (*domain.Turn, error)
	ReopenDay(ctx context.Context, juntaID uuid.UUID, date time.Time) (*domain.Turn, error)
	DeliverTurn(ctx context.Context, juntaID uuid.UUID, date time.Time) (*domain.Turn, error)
	AutoCloseElapsedDays(ctx context.Context) (int, error)

	GetKardex(ctx context.Context, juntaID, shareID uuid.UUID) (*domain.Kardex, error)

	ArchiveJunta(ctx context.Context, juntaID uuid.UUID, reason *string) (*domain.FinalReport, error)
	ListArchivedJuntas(ctx context.Context) ([]*domain.ArchivedJuntaSummary, error)
	GetArchiveReport(ctx context.Context, juntaID uuid.UUID) (*domain.FinalReport, error)
	DuplicateJunta(ctx context.Context, sourceID uuid.UUID, req *domain.DuplicateJuntaRequest) (*domain.CreateJuntaResponse, error)
	CancelJunta(ctx context.Context, juntaID uuid.UUID, reason *string) (*domain.Junta, error)

	Today() time.Time
}

type JuntaService struct {
	juntaRepo          repository.JuntaRepository
	paymentRepo        repository.PaymentRepository
	tx                 repository.Transactor
	reports            cache.ReportCache
	loc                *time.Location
	autoCloseAfterDays int
	now                func() time.Time
}

func NewJuntaService(
	juntaRepo repository.JuntaRepository,
	paymentRepo repository.PaymentRepository,
	tx repository.Transactor,
	reports cache.ReportCache,
	cfg *config.Config,
) *JuntaService {
	return &JuntaService{
		juntaRepo:          juntaRepo,
		paymentRepo:        paymentRepo,
		tx:                 tx,
		reports:            reports,
		loc:                cfg.Location(),
		autoCloseAfterDays: cfg.Junta.AutoCloseAfterDays,
		now:                time.Now,
	}
}

// Today is the current calendar day in the junta time zone
func (s *JuntaService) Today() time.Time {
	return utils.DateOf(s.now(), s.loc)
}

// CreateJunta creates a junta with its roster and schedule.
// Only one junta may be ACTIVE at a time.
func (s *JuntaService) CreateJunta(ctx context.Context, req *domain.CreateJuntaRequest) (*domain.CreateJuntaResponse, error) {
	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, customError.WrapInvalidDate(req.StartDate)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, customError.WrapInvalidInput("junta name is required")
	}
	if len(req.Participants) == 0 {
		return nil, customError.WrapInvalidInput("a junta needs at least one participant")
	}
	if req.Duration < 0 {
		return nil, customError.WrapInvalidInput("duration must not be negative")
	}

	junta := &domain.Junta{
		ID:        uuid.New(),
		Name:      name,
		StartDate: start,
		Status:    domain.JuntaStatusActive,
	}

	shares, err := newShares(junta.ID, req.Participants)
	if err != nil {
		return nil, err
	}

	var turns []*domain.Turn
	if len(req.Schedule) > 0 {
		turns, err = explicitTurns(junta.ID, start, req.Schedule, shares)
		if err != nil {
			return nil, err
		}
		junta.Duration = len(turns)
	} else {
		junta.Duration = req.Duration
		if junta.Duration == 0 {
			junta.Duration = len(shares)
		}
		turns = rotationTurns(junta.ID, start, junta.Duration, shareIDs(shares))
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.ensureNoActiveJunta(ctx); err != nil {
			return err
		}
		if err := s.juntaRepo.Create(ctx, junta); err != nil {
			return customError.WrapDatabaseError(err)
		}
		if err := s.juntaRepo.CreateShares(ctx, shares); err != nil {
			return customError.WrapDatabaseError(err)
		}
		if err := s.juntaRepo.CreateTurns(ctx, turns); err != nil {
			return customError.WrapDatabaseError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Junta created",
		"junta_id", junta.ID,
		"participants", len(shares),
		"duration", junta.Duration,
	)

	return &domain.CreateJuntaResponse{Junta: junta, Participants: shares, Schedule: turns}, nil
}

// ScheduleTurns fills the schedule of an active junta that has none yet
func (s *JuntaService) ScheduleTurns(ctx context.Context, juntaID uuid.UUID, req *domain.ScheduleTurnsRequest) ([]*domain.Turn, error) {
	var turns []*domain.Turn

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		junta, err := s.getActiveJunta(ctx, juntaID)
		if err != nil {
			return err
		}

		existing, err := s.juntaRepo.GetTurns(ctx, juntaID)
		if err != nil {
			return customError.WrapDatabaseError(err)
		}
		if len(existing) > 0 {
			return customError.WrapTurnsAlreadyScheduled(juntaID.String())
		}

		shares, err := s.juntaRepo.GetShares(ctx, juntaID)
		if err != nil {
			return customError.WrapDatabaseError(err)
		}
		if len(shares) == 0 {
			return customError.WrapInvalidInput("junta has no participants")
		}

		order := shareIDs(shares)
		if req != nil && len(req.BeneficiaryOrder) > 0 {
			order, err = beneficiaryOrder(req.BeneficiaryOrder, shares)
			if err != nil {
				return err
			}
		}

		turns = rotationTurns(juntaID, junta.StartDate, junta.Duration, order)
		if err := s.juntaRepo.CreateTurns(ctx, turns); err != nil {
			return customError.WrapDatabaseError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Turns scheduled", "junta_id", juntaID, "turns", len(turns))
	return turns, nil
}

// GetActiveJunta returns the state of the single ACTIVE junta
func (s *JuntaService) GetActiveJunta(ctx context.Context) (*domain.JuntaState, error) {
	junta, err := s.juntaRepo.GetActive(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapNoActiveJunta()
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return s.loadState(ctx, junta)
}

// GetJunta returns the state of any junta, whatever its status
func (s *JuntaService) GetJunta(ctx context.Context, juntaID uuid.UUID) (*domain.JuntaState, error) {
	junta, err := s.getJunta(ctx, juntaID)
	if err != nil {
		return nil, err
	}

	return s.loadState(ctx, junta)
}

func (s *JuntaService) loadState(ctx context.Context, junta *domain.Junta) (*domain.JuntaState, error) {
	shares, err := s.juntaRepo.GetShares(ctx, junta.ID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	turns, err := s.juntaRepo.GetTurns(ctx, junta.ID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	payments, err := s.paymentRepo.GetByJuntaID(ctx, junta.ID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.JuntaState{
		Junta:        junta,
		Participants: shares,
		Schedule:     turns,
		Ledger:       payments,
		DateRange:    domain.DateRange{From: junta.StartDate, To: junta.EndDate()},
	}, nil
}

func (s *JuntaService) ensureNoActiveJunta(ctx context.Context) error {
	active, err := s.juntaRepo.GetActive(ctx)
	switch {
	case err == nil:
		return customError.WrapActiveJuntaExists(active.ID.String())
	case errors.Is(err, sql.ErrNoRows):
		return nil
	default:
		return customError.WrapDatabaseError(err)
	}
}

func (s *JuntaService) getJunta(ctx context.Context, juntaID uuid.UUID) (*domain.Junta, error) {
	junta, err := s.juntaRepo.GetByID(ctx, juntaID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapJuntaNotFound(juntaID.String())
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return junta, nil
}

func (s *JuntaService) getActiveJunta(ctx context.Context, juntaID uuid.UUID) (*domain.Junta, error) {
	junta, err := s.getJunta(ctx, juntaID)
	if err != nil {
		return nil, err
	}
	if !junta.IsActive() {
		return nil, customError.WrapJuntaNotActive(juntaID.String(), string(junta.Status))
	}
	return junta, nil
}

func (s *JuntaService) getTurn(ctx context.Context, juntaID uuid.UUID, date time.Time) (*domain.Turn, error) {
	turn, err := s.juntaRepo.GetTurnByDate(ctx, juntaID, date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapTurnNotFound(utils.FormatDate(date))
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return turn, nil
}

// getShare loads the roster and picks one participant out of it
func (s *JuntaService) getShare(ctx context.Context, juntaID, shareID uuid.UUID) (*domain.Share, []*domain.Share, error) {
	shares, err := s.juntaRepo.GetShares(ctx, juntaID)
	if err != nil {
		return nil, nil, customError.WrapDatabaseError(err)
	}
	for _, share := range shares {
		if share.ID == shareID {
			return share, shares, nil
		}
	}
	return nil, shares, customError.WrapParticipantNotFound(shareID.String())
}

func newShares(juntaID uuid.UUID, inputs []domain.ParticipantInput) ([]*domain.Share, error) {
	shares := make([]*domain.Share, 0, len(inputs))
	for i, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if name == "" && (in.UserID == nil || *in.UserID == "") {
			return nil, customError.WrapInvalidInput(fmt.Sprintf("participant %d needs a name or a user id", i+1))
		}
		if !in.DailyCommitment.IsPositive() {
			return nil, customError.WrapInvalidInput(fmt.Sprintf("participant %d: daily commitment must be positive", i+1))
		}
		shares = append(shares, &domain.Share{
			ID:              uuid.New(),
			JuntaID:         juntaID,
			UserID:          in.UserID,
			Name:            name,
			DailyCommitment: in.DailyCommitment,
			Position:        i,
		})
	}
	return shares, nil
}

func shareIDs(shares []*domain.Share) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(shares))
	for _, s := range shares {
		ids = append(ids, s.ID)
	}
	return ids
}

// rotationTurns assigns one turn per day, cycling through order
func rotationTurns(juntaID uuid.UUID, start time.Time, duration int, order []uuid.UUID) []*domain.Turn {
	turns := make([]*domain.Turn, 0, duration)
	if len(order) == 0 {
		return turns
	}
	for i := 0; i < duration; i++ {
		turns = append(turns, &domain.Turn{
			ID:            uuid.New(),
			JuntaID:       juntaID,
			TurnNumber:    i + 1,
			Date:          utils.AddDays(start, i),
			BeneficiaryID: order[i%len(order)],
			Status:        domain.TurnStatusPending,
		})
	}
	return turns
}

// explicitTurns builds the schedule from dated entries. The entries must cover
// [start, start+len(entries)) exactly once.
func explicitTurns(juntaID uuid.UUID, start time.Time, entries []domain.ScheduleEntry, shares []*domain.Share) ([]*domain.Turn, error) {
	end := utils.AddDays(start, len(entries))
	seen := make(map[string]bool, len(entries))
	turns := make([]*domain.Turn, 0, len(entries))

	for _, e := range entries {
		date, err := utils.ParseDate(e.Date)
		if err != nil {
			return nil, customError.WrapInvalidDate(e.Date)
		}
		if date.Before(start) || !date.Before(end) {
			return nil, customError.WrapInvalidInput(fmt.Sprintf("schedule date %s is outside the junta period", e.Date))
		}
		if seen[e.Date] {
			return nil, customError.WrapInvalidInput(fmt.Sprintf("schedule date %s appears twice", e.Date))
		}
		seen[e.Date] = true

		if e.BeneficiaryIndex < 0 || e.BeneficiaryIndex >= len(shares) {
			return nil, customError.WrapInvalidInput(fmt.Sprintf("beneficiary index %d is out of range", e.BeneficiaryIndex))
		}

		turns = append(turns, &domain.Turn{
			ID:            uuid.New(),
			JuntaID:       juntaID,
			Date:          date,
			BeneficiaryID: shares[e.BeneficiaryIndex].ID,
			Status:        domain.TurnStatusPending,
		})
	}

	sort.Slice(turns, func(i, j int) bool { return turns[i].Date.Before(turns[j].Date) })
	for i, t := range turns {
		t.TurnNumber = i + 1
	}

	return turns, nil
}

func beneficiaryOrder(raw []string, shares []*domain.Share) ([]uuid.UUID, error) {
	members := make(map[uuid.UUID]bool, len(shares))
	for _, s := range shares {
		members[s.ID] = true
	}

	order := make([]uuid.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := uuid.Parse(value)
		if err != nil {
			return nil, customError.WrapInvalidInput(fmt.Sprintf("beneficiary %q is not a valid id", value))
		}
		if !members[id] {
			return nil, customError.WrapParticipantNotFound(value)
		}
		order = append(order, id)
	}
	return order, nil
}
