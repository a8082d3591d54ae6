// Package calculator holds the pure folds over a junta's schedule and ledger.
// Nothing here touches storage; callers load the rows and pass them in.
package calculator

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/yunta/internal/domain"
	"github.com/segyhp/yunta/pkg/utils"
)

type cellKey struct {
	date    string
	shareID uuid.UUID
}

// ledgerIndex groups payments by (calendar day, participant)
type ledgerIndex struct {
	totals   map[cellKey]decimal.Decimal
	payments map[cellKey][]*domain.Payment
	byShare  map[uuid.UUID]decimal.Decimal
}

func indexLedger(payments []*domain.Payment) *ledgerIndex {
	idx := &ledgerIndex{
		totals:   make(map[cellKey]decimal.Decimal),
		payments: make(map[cellKey][]*domain.Payment),
		byShare:  make(map[uuid.UUID]decimal.Decimal),
	}
	for _, p := range payments {
		key := cellKey{date: utils.FormatDate(p.TargetDate), shareID: p.ShareID}
		idx.totals[key] = idx.totals[key].Add(p.Amount)
		idx.payments[key] = append(idx.payments[key], p)
		idx.byShare[p.ShareID] = idx.byShare[p.ShareID].Add(p.Amount)
	}
	return idx
}

func (idx *ledgerIndex) paid(day string, shareID uuid.UUID) decimal.Decimal {
	return idx.totals[cellKey{date: day, shareID: shareID}]
}

func (idx *ledgerIndex) rows(day string, shareID uuid.UUID) []*domain.Payment {
	return idx.payments[cellKey{date: day, shareID: shareID}]
}

func (idx *ledgerIndex) totalFor(shareID uuid.UUID) decimal.Decimal {
	return idx.byShare[shareID]
}

// CollectedOn sums every payment targeting one calendar day
func CollectedOn(payments []*domain.Payment, day string) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		if utils.FormatDate(p.TargetDate) == day {
			total = total.Add(p.Amount)
		}
	}
	return total
}

// ExpectedPerDay is the pot a fully paid day collects
func ExpectedPerDay(shares []*domain.Share) decimal.Decimal {
	commitments := make([]decimal.Decimal, 0, len(shares))
	for _, s := range shares {
		commitments = append(commitments, s.DailyCommitment)
	}
	return utils.SumDecimals(commitments)
}
