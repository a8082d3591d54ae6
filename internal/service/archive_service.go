package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/segyhp/yunta/internal/calculator"
	"github.com/segyhp/yunta/internal/domain"
	"github.com/segyhp/yunta/internal/metrics"
	customError "github.com/segyhp/yunta/pkg/errors"
	"github.com/segyhp/yunta/pkg/utils"
)

// GetKardex builds the day-by-day statement of one participant
func (s *JuntaService) GetKardex(ctx context.Context, juntaID, shareID uuid.UUID) (*domain.Kardex, error) {
	junta, err := s.getJunta(ctx, juntaID)
	if err != nil {
		return nil, err
	}

	share, _, err := s.getShare(ctx, juntaID, shareID)
	if err != nil {
		return nil, err
	}

	turns, err := s.juntaRepo.GetTurns(ctx, juntaID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	payments, err := s.paymentRepo.GetByJuntaID(ctx, juntaID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return calculator.BuildKardex(junta, share, turns, payments, s.Today()), nil
}

// ArchiveJunta freezes an active junta into its final report.
// The status flip and the report are written by one guarded UPDATE.
func (s *JuntaService) ArchiveJunta(ctx context.Context, juntaID uuid.UUID, reason *string) (*domain.FinalReport, error) {
	reason = trimmed(reason)
	var report *domain.FinalReport

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		junta, err := s.getJunta(ctx, juntaID)
		if err != nil {
			return err
		}
		if !junta.IsActive() {
			return customError.WrapJuntaNotArchivable(juntaID.String(), string(junta.Status))
		}

		shares, err := s.juntaRepo.GetShares(ctx, juntaID)
		if err != nil {
			return customError.WrapDatabaseError(err)
		}
		turns, err := s.juntaRepo.GetTurns(ctx, juntaID)
		if err != nil {
			return customError.WrapDatabaseError(err)
		}
		payments, err := s.paymentRepo.GetByJuntaID(ctx, juntaID)
		if err != nil {
			return customError.WrapDatabaseError(err)
		}

		now := s.now().UTC()
		today := s.Today()
		report = calculator.BuildFinalReport(junta, shares, turns, payments, now, today, reason)

		endedAt := today
		if endedAt.After(junta.EndDate()) {
			endedAt = junta.EndDate()
		}
		if endedAt.Before(junta.StartDate) {
			endedAt = junta.StartDate
		}

		ok, err := s.juntaRepo.Archive(ctx, juntaID, now, endedAt, reason, report)
		if err != nil {
			return customError.WrapDatabaseError(err)
		}
		if !ok {
			return customError.WrapJuntaNotArchivable(juntaID.String(), "no longer active")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.reports.Set(ctx, report); err != nil {
		slog.Warn("Failed to cache archive report", "junta_id", juntaID, "error", err)
	}

	metrics.JuntasArchived.Inc()
	slog.Info("Junta archived",
		"junta_id", juntaID,
		"total_collected", report.GlobalStats.TotalCollected.String(),
		"global_compliance", report.GlobalStats.GlobalCompliance.String(),
	)

	return report, nil
}

// ListArchivedJuntas lists closed juntas, most recently archived first.
// Totals come from the stored report, never from live rows.
func (s *JuntaService) ListArchivedJuntas(ctx context.Context) ([]*domain.ArchivedJuntaSummary, error) {
	juntas, err := s.juntaRepo.ListByStatus(ctx, domain.ClosedStatuses)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	summaries := make([]*domain.ArchivedJuntaSummary, 0, len(juntas))
	for _, j := range juntas {
		summary := &domain.ArchivedJuntaSummary{
			ID:            j.ID,
			Name:          j.Name,
			Status:        j.Status,
			StartDate:     utils.FormatDate(j.StartDate),
			EndDate:       utils.FormatDate(j.EndDate()),
			ArchivedAt:    j.UpdatedAt,
			ArchiveReason: j.ArchiveReason,
		}
		if j.ArchivedAt != nil {
			summary.ArchivedAt = *j.ArchivedAt
		}

		if r := j.FinalReport; r != nil {
			summary.EndDate = r.Period.End
			summary.ParticipantCount = r.GlobalStats.ParticipantCount
			summary.TotalCollected = r.GlobalStats.TotalCollected
			summary.TotalExpected = r.GlobalStats.TotalExpected
			summary.ComplianceRate = r.GlobalStats.GlobalCompliance
		} else {
			shares, err := s.juntaRepo.GetShares(ctx, j.ID)
			if err != nil {
				return nil, customError.WrapDatabaseError(err)
			}
			summary.ParticipantCount = len(shares)
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// GetArchiveReport returns the stored snapshot of an archived junta
func (s *JuntaService) GetArchiveReport(ctx context.Context, juntaID uuid.UUID) (*domain.FinalReport, error) {
	report, ok, err := s.reports.Get(ctx, juntaID)
	if err != nil {
		slog.Warn("Archive report cache unavailable", "junta_id", juntaID, "error", err)
	}
	if ok {
		return report, nil
	}

	junta, err := s.getJunta(ctx, juntaID)
	if err != nil {
		return nil, err
	}
	if junta.FinalReport == nil {
		return nil, customError.WrapReportNotFound(juntaID.String())
	}

	if err := s.reports.Set(ctx, junta.FinalReport); err != nil {
		slog.Warn("Failed to cache archive report", "junta_id", juntaID, "error", err)
	}

	return junta.FinalReport, nil
}

// DuplicateJunta starts a new active junta with the roster and commitments of
// another one. No turns or payments are copied.
func (s *JuntaService) DuplicateJunta(ctx context.Context, sourceID uuid.UUID, req *domain.DuplicateJuntaRequest) (*domain.CreateJuntaResponse, error) {
	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, customError.WrapInvalidDate(req.StartDate)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, customError.WrapInvalidInput("junta name is required")
	}

	var resp *domain.CreateJuntaResponse

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		source, err := s.getJunta(ctx, sourceID)
		if err != nil {
			return err
		}
		if err := s.ensureNoActiveJunta(ctx); err != nil {
			return err
		}

		roster, err := s.juntaRepo.GetShares(ctx, sourceID)
		if err != nil {
			return customError.WrapDatabaseError(err)
		}

		junta := &domain.Junta{
			ID:        uuid.New(),
			Name:      name,
			StartDate: start,
			Duration:  source.Duration,
			Status:    domain.JuntaStatusActive,
		}

		shares := make([]*domain.Share, 0, len(roster))
		for _, src := range roster {
			shares = append(shares, &domain.Share{
				ID:              uuid.New(),
				JuntaID:         junta.ID,
				UserID:          src.UserID,
				Name:            src.Name,
				DailyCommitment: src.DailyCommitment,
				Position:        src.Position,
			})
		}

		if err := s.juntaRepo.Create(ctx, junta); err != nil {
			return customError.WrapDatabaseError(err)
		}
		if err := s.juntaRepo.CreateShares(ctx, shares); err != nil {
			return customError.WrapDatabaseError(err)
		}

		resp = &domain.CreateJuntaResponse{Junta: junta, Participants: shares, Schedule: []*domain.Turn{}}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Junta duplicated", "source_id", sourceID, "junta_id", resp.Junta.ID, "participants", len(resp.Participants))
	return resp, nil
}

// CancelJunta abandons an active junta without producing a report
func (s *JuntaService) CancelJunta(ctx context.Context, juntaID uuid.UUID, reason *string) (*domain.Junta, error) {
	reason = trimmed(reason)
	var junta *domain.Junta

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.getActiveJunta(ctx, juntaID); err != nil {
			return err
		}

		ok, err := s.juntaRepo.Cancel(ctx, juntaID, s.now().UTC(), reason)
		if err != nil {
			return customError.WrapDatabaseError(err)
		}
		if !ok {
			return customError.WrapJuntaNotActive(juntaID.String(), "no longer active")
		}

		junta, err = s.getJunta(ctx, juntaID)
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Junta cancelled", "junta_id", juntaID)
	return junta, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
