package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/segyhp/yunta/internal/calculator"
	"github.com/segyhp/yunta/internal/domain"
	"github.com/segyhp/yunta/internal/metrics"
	customError "github.com/segyhp/yunta/pkg/errors"
	"github.com/segyhp/yunta/pkg/utils"
)

const (
	closeTriggerManual = "manual"
	closeTriggerAuto   = "auto"
)

// GetDailySummary aggregates one day of the ledger. A day without a turn still
// gets a summary with zero turn fields.
func (s *JuntaService) GetDailySummary(ctx context.Context, juntaID uuid.UUID, date time.Time) (*domain.DailySummary, error) {
	junta, err := s.getJunta(ctx, juntaID)
	if err != nil {
		return nil, err
	}

	turn, err := s.getTurn(ctx, juntaID, date)
	if err != nil && customError.CategoryOf(err) != customError.CategoryNotFound {
		return nil, err
	}

	shares, err := s.juntaRepo.GetShares(ctx, juntaID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	payments, err := s.paymentRepo.GetByDate(ctx, juntaID, date)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return calculator.DailySummary(junta, date, turn, shares, payments, s.Today()), nil
}

// RecordPayment appends one payment to the ledger of an open day
func (s *JuntaService) RecordPayment(ctx context.Context, juntaID uuid.UUID, req *domain.RecordPaymentRequest) (*domain.Payment, error) {
	targetDate, err := utils.ParseDate(req.TargetDate)
	if err != nil {
		return nil, customError.WrapInvalidDate(req.TargetDate)
	}
	shareID, err := uuid.Parse(req.ParticipantID)
	if err != nil {
		return nil, customError.WrapInvalidInput("participant_id must be a valid id")
	}
	if !req.Amount.IsPositive() {
		return nil, customError.WrapInvalidPaymentAmount(req.Amount.String())
	}
	if !req.Method.Valid() {
		return nil, customError.WrapInvalidPaymentMethod(string(req.Method))
	}

	var payment *domain.Payment

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.getActiveJunta(ctx, juntaID); err != nil {
			return err
		}

		turn, err := s.getTurn(ctx, juntaID, targetDate)
		if err != nil {
			return err
		}
		if turn.IsClosed {
			return customError.WrapDayClosed(req.TargetDate)
		}

		if _, _, err := s.getShare(ctx, juntaID, shareID); err != nil {
			return err
		}

		payment = &domain.Payment{
			ID:          uuid.New(),
			TurnID:      turn.ID,
			ShareID:     shareID,
			Amount:      req.Amount,
			Method:      req.Method,
			Destination: req.Destination,
			Notes:       req.Notes,
			RecordedBy:  req.RecordedBy,
			TargetDate:  turn.Date,
			CreatedAt:   s.now().UTC(),
		}
		if err := s.paymentRepo.Create(ctx, payment); err != nil {
			return customError.WrapDatabaseError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentsRecorded.WithLabelValues(string(payment.Method)).Inc()
	slog.Info("Payment recorded",
		"junta_id", juntaID,
		"participant_id", shareID,
		"date", req.TargetDate,
		"amount", payment.Amount.String(),
		"method", payment.Method,
	)

	return payment, nil
}

// RescheduleTurn hands the pot of an open day to another participant
func (s *JuntaService) RescheduleTurn(ctx context.Context, juntaID uuid.UUID, date time.Time, beneficiaryID uuid.UUID) (*domain.Turn, error) {
	var turn *domain.Turn

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.getActiveJunta(ctx, juntaID); err != nil {
			return err
		}

		var err error
		turn, err = s.getTurn(ctx, juntaID, date)
		if err != nil {
			return err
		}
		if turn.IsClosed {
			return customError.WrapDayClosed(utils.FormatDate(date))
		}
		if turn.Status == domain.TurnStatusPaidOut {
			return customError.WrapTurnAlreadyPaidOut(utils.FormatDate(date))
		}

		if _, _, err := s.getShare(ctx, juntaID, beneficiaryID); err != nil {
			return err
		}

		if err := s.juntaRepo.UpdateTurnBeneficiary(ctx, turn.ID, beneficiaryID); err != nil {
			return customError.WrapDatabaseError(err)
		}
		turn.BeneficiaryID = beneficiaryID
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Turn rescheduled", "junta_id", juntaID, "date", utils.FormatDate(date), "beneficiary_id", beneficiaryID)
	return turn, nil
}

// CloseDay locks a day against payments and reassignment
func (s *JuntaService) CloseDay(ctx context.Context, juntaID uuid.UUID, date time.Time) (*domain.Turn, error) {
	var turn *domain.Turn

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.getActiveJunta(ctx, juntaID); err != nil {
			return err
		}

		var err error
		turn, err = s.getTurn(ctx, juntaID, date)
		if err != nil {
			return err
		}
		if turn.IsClosed {
			return customError.WrapDayAlreadyClosed(utils.FormatDate(date))
		}

		return s.closeTurn(ctx, turn)
	})
	if err != nil {
		return nil, err
	}

	metrics.DaysClosed.WithLabelValues(closeTriggerManual).Inc()
	slog.Info("Day closed", "junta_id", juntaID, "date", utils.FormatDate(date), "turn_status", turn.Status)
	return turn, nil
}

// ReopenDay is the administrative override of CloseDay. Payments are left alone.
func (s *JuntaService) ReopenDay(ctx context.Context, juntaID uuid.UUID, date time.Time) (*domain.Turn, error) {
	var turn *domain.Turn

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.getActiveJunta(ctx, juntaID); err != nil {
			return err
		}

		var err error
		turn, err = s.getTurn(ctx, juntaID, date)
		if err != nil {
			return err
		}
		if !turn.IsClosed {
			return customError.WrapDayAlreadyOpen(utils.FormatDate(date))
		}

		turn.IsClosed = false
		turn.ClosedAt = nil
		if turn.Status == domain.TurnStatusFunded {
			turn.Status = domain.TurnStatusPending
		}

		if err := s.juntaRepo.UpdateTurnState(ctx, turn); err != nil {
			return customError.WrapDatabaseError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Day reopened", "junta_id", juntaID, "date", utils.FormatDate(date))
	return turn, nil
}

// DeliverTurn records that the beneficiary was handed the pot of the day
func (s *JuntaService) DeliverTurn(ctx context.Context, juntaID uuid.UUID, date time.Time) (*domain.Turn, error) {
	var turn *domain.Turn

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.getActiveJunta(ctx, juntaID); err != nil {
			return err
		}

		var err error
		turn, err = s.getTurn(ctx, juntaID, date)
		if err != nil {
			return err
		}
		if turn.Status == domain.TurnStatusPaidOut {
			return customError.WrapTurnAlreadyPaidOut(utils.FormatDate(date))
		}

		turn.Status = domain.TurnStatusPaidOut
		if err := s.juntaRepo.UpdateTurnState(ctx, turn); err != nil {
			return customError.WrapDatabaseError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Turn delivered", "junta_id", juntaID, "date", utils.FormatDate(date), "beneficiary_id", turn.BeneficiaryID)
	return turn, nil
}

// AutoCloseElapsedDays closes the open days of the active junta that are at
// least autoCloseAfterDays old. It returns how many days were closed.
func (s *JuntaService) AutoCloseElapsedDays(ctx context.Context) (int, error) {
	if s.autoCloseAfterDays <= 0 {
		return 0, nil
	}

	cutoff := utils.AddDays(s.Today(), -s.autoCloseAfterDays+1)
	closed := 0

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		active, err := s.juntaRepo.GetActive(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return customError.WrapDatabaseError(err)
		}

		turns, err := s.juntaRepo.GetOpenTurnsBefore(ctx, active.ID, cutoff)
		if err != nil {
			return customError.WrapDatabaseError(err)
		}

		for _, turn := range turns {
			if err := s.closeTurn(ctx, turn); err != nil {
				return err
			}
			closed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if closed > 0 {
		metrics.DaysClosed.WithLabelValues(closeTriggerAuto).Add(float64(closed))
		slog.Info("Elapsed days auto-closed", "days", closed, "cutoff", utils.FormatDate(cutoff))
	}
	return closed, nil
}

// closeTurn flips the turn to closed. A pending turn whose day collected the
// full pot becomes FUNDED.
func (s *JuntaService) closeTurn(ctx context.Context, turn *domain.Turn) error {
	shares, err := s.juntaRepo.GetShares(ctx, turn.JuntaID)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}
	payments, err := s.paymentRepo.GetByDate(ctx, turn.JuntaID, turn.Date)
	if err != nil {
		return customError.WrapDatabaseError(err)
	}

	expected := calculator.ExpectedPerDay(shares)
	collected := calculator.CollectedOn(payments, utils.FormatDate(turn.Date))

	closedAt := s.now().UTC()
	turn.IsClosed = true
	turn.ClosedAt = &closedAt
	if turn.Status == domain.TurnStatusPending && expected.IsPositive() && collected.GreaterThanOrEqual(expected) {
		turn.Status = domain.TurnStatusFunded
	}

	if err := s.juntaRepo.UpdateTurnState(ctx, turn); err != nil {
		return customError.WrapDatabaseError(err)
	}
	return nil
}
