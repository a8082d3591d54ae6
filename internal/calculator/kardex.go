package calculator

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/segyhp/yunta/internal/domain"
	"github.com/segyhp/yunta/pkg/utils"
)

// KardexStatus classifies a statement day
func KardexStatus(paid, expected decimal.Decimal, day, today time.Time) domain.KardexStatus {
	switch {
	case paid.GreaterThanOrEqual(expected):
		return domain.KardexStatusCompleted
	case paid.IsPositive():
		return domain.KardexStatusPartial
	case day.After(today):
		return domain.KardexStatusFuture
	default:
		return domain.KardexStatusMissing
	}
}

// BuildKardex folds the ledger of one participant over every day of the junta.
//
// balanceAfter[d] = balanceAfter[d-1] + paid[d] - expected[d], seeded at zero.
// Debt and compliance only look at days up to today; the balance after the last
// scheduled day is reported separately as ProjectedBalance.
func BuildKardex(
	junta *domain.Junta,
	share *domain.Share,
	turns []*domain.Turn,
	payments []*domain.Payment,
	today time.Time,
) *domain.Kardex {
	idx := indexLedger(payments)

	turnByDate := make(map[string]*domain.Turn, len(turns))
	for _, t := range turns {
		turnByDate[utils.FormatDate(t.Date)] = t
	}

	k := &domain.Kardex{
		JuntaID:         junta.ID,
		JuntaName:       junta.Name,
		ParticipantID:   share.ID,
		ParticipantName: share.DisplayName(),
		DailyCommitment: share.DailyCommitment,
		Days:            make([]domain.KardexDay, 0, junta.Duration),
		TotalPaid:       decimal.Zero,
		TotalExpected:   decimal.Zero,
		GlobalDebt:      decimal.Zero,
		TurnsAssigned:   []int{},
	}

	balance := decimal.Zero
	elapsedBalance := decimal.Zero
	completed := 0

	for i, day := range junta.Days() {
		key := utils.FormatDate(day)
		paid := idx.paid(key, share.ID)
		expected := share.DailyCommitment
		balance = balance.Add(paid).Sub(expected)

		status := KardexStatus(paid, expected, day, today)
		turn := turnByDate[key]

		k.Days = append(k.Days, domain.KardexDay{
			Date:         day,
			DayNumber:    i + 1,
			Expected:     expected,
			Paid:         paid,
			BalanceAfter: balance,
			Status:       status,
			IsTurn:       turn != nil && turn.BeneficiaryID == share.ID,
			Transactions: transactionsOf(idx.rows(key, share.ID)),
		})

		k.TotalPaid = k.TotalPaid.Add(paid)

		if !day.After(today) {
			k.ElapsedDays++
			k.TotalExpected = k.TotalExpected.Add(expected)
			elapsedBalance = balance
			if status == domain.KardexStatusCompleted {
				completed++
			}
		}
	}

	k.ProjectedBalance = balance
	if elapsedBalance.IsNegative() {
		k.GlobalDebt = elapsedBalance
	}
	k.ComplianceRate = int(utils.PercentOf(completed, k.ElapsedDays).Round(0).IntPart())

	sorted := make([]*domain.Turn, len(turns))
	copy(sorted, turns)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	for _, t := range sorted {
		if t.BeneficiaryID != share.ID {
			continue
		}
		k.TurnsAssigned = append(k.TurnsAssigned, t.TurnNumber)
		if k.NextTurnDate == nil && !t.Date.Before(today) {
			next := t.Date
			k.NextTurnDate = &next
		}
	}

	return k
}

func transactionsOf(rows []*domain.Payment) []domain.KardexTransaction {
	txs := make([]domain.KardexTransaction, 0, len(rows))
	for _, p := range rows {
		txs = append(txs, domain.KardexTransaction{
			ID:        p.ID,
			Amount:    p.Amount,
			Method:    p.Method,
			CreatedAt: p.CreatedAt,
		})
	}
	return txs
}
