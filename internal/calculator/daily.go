package calculator

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/segyhp/yunta/internal/domain"
	"github.com/segyhp/yunta/pkg/utils"
)

// DailyStatus classifies one participant's day. Only unpaid days look at the calendar.
func DailyStatus(paid, commitment decimal.Decimal, day, today time.Time) domain.DailyStatus {
	switch {
	case paid.GreaterThanOrEqual(commitment):
		return domain.DailyStatusCompleted
	case paid.IsPositive():
		return domain.DailyStatusPartial
	case day.Before(today):
		return domain.DailyStatusOverdue
	case day.After(today):
		return domain.DailyStatusAhead
	default:
		return domain.DailyStatusPending
	}
}

// DailySummary aggregates the ledger for one day. turn may be nil when the day
// has no scheduled turn; the totals are still computed.
func DailySummary(
	junta *domain.Junta,
	day time.Time,
	turn *domain.Turn,
	shares []*domain.Share,
	payments []*domain.Payment,
	today time.Time,
) *domain.DailySummary {
	idx := indexLedger(payments)
	key := utils.FormatDate(day)

	summary := &domain.DailySummary{
		JuntaID:      junta.ID,
		Date:         day,
		Participants: make([]domain.ParticipantDay, 0, len(shares)),
		Expected:     decimal.Zero,
		Collected:    decimal.Zero,
	}
	if turn != nil {
		summary.TurnNumber = turn.TurnNumber
		summary.BeneficiaryID = turn.BeneficiaryID
		summary.IsClosed = turn.IsClosed
		summary.TurnStatus = turn.Status
	}

	for _, share := range shares {
		paid := idx.paid(key, share.ID)
		summary.Participants = append(summary.Participants, domain.ParticipantDay{
			ParticipantID: share.ID,
			Name:          share.DisplayName(),
			Expected:      share.DailyCommitment,
			Paid:          paid,
			Pending:       share.DailyCommitment.Sub(paid),
			Status:        DailyStatus(paid, share.DailyCommitment, day, today),
			IsBeneficiary: turn != nil && turn.BeneficiaryID == share.ID,
		})
		summary.Expected = summary.Expected.Add(share.DailyCommitment)
		summary.Collected = summary.Collected.Add(paid)
	}

	// overpayment leaves pending negative on purpose
	summary.Pending = summary.Expected.Sub(summary.Collected)

	return summary
}
