package calculator

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/segyhp/yunta/internal/domain"
	"github.com/segyhp/yunta/pkg/utils"
)

// ElapsedDays counts the scheduled days from the start up to today, inclusive,
// bounded by the junta duration.
func ElapsedDays(junta *domain.Junta, today time.Time) int {
	days := utils.DaysBetween(junta.StartDate, today) + 1
	if days < 0 {
		return 0
	}
	if days > junta.Duration {
		return junta.Duration
	}
	return days
}

// BuildFinalReport snapshots the whole junta at archive time
func BuildFinalReport(
	junta *domain.Junta,
	shares []*domain.Share,
	turns []*domain.Turn,
	payments []*domain.Payment,
	now time.Time,
	today time.Time,
	reason *string,
) *domain.FinalReport {
	idx := indexLedger(payments)
	totalDays := ElapsedDays(junta, today)
	days := junta.Days()[:totalDays]

	end := junta.StartDate
	if totalDays > 0 {
		end = days[totalDays-1]
	}

	sortedTurns := make([]*domain.Turn, len(turns))
	copy(sortedTurns, turns)
	sort.Slice(sortedTurns, func(i, j int) bool { return sortedTurns[i].Date.Before(sortedTurns[j].Date) })

	report := &domain.FinalReport{
		JuntaID:   junta.ID,
		JuntaName: junta.Name,
		Period: domain.ReportPeriod{
			Start:     utils.FormatDate(junta.StartDate),
			End:       utils.FormatDate(end),
			TotalDays: totalDays,
		},
		Participants:  make([]domain.ParticipantFinalReport, 0, len(shares)),
		Timeline:      []domain.TimelineEvent{},
		ArchivedAt:    now,
		ArchiveReason: reason,
	}

	totalCollected := decimal.Zero
	totalExpected := decimal.Zero
	complianceSum := decimal.Zero

	for _, share := range shares {
		completeDays := 0
		for _, day := range days {
			if idx.paid(utils.FormatDate(day), share.ID).GreaterThanOrEqual(share.DailyCommitment) {
				completeDays++
			}
		}

		paid := idx.totalFor(share.ID)
		expected := share.DailyCommitment.Mul(decimal.NewFromInt(int64(totalDays)))
		rate := utils.PercentOf(completeDays, totalDays).Round(2)

		received := []int{}
		for _, t := range sortedTurns {
			if t.BeneficiaryID == share.ID && t.Delivered() {
				received = append(received, t.TurnNumber)
			}
		}

		report.Participants = append(report.Participants, domain.ParticipantFinalReport{
			ID:              share.ID,
			Name:            share.DisplayName(),
			DailyCommitment: share.DailyCommitment,
			TotalPaid:       paid,
			TotalExpected:   expected,
			CompleteDays:    completeDays,
			ComplianceRate:  rate,
			FinalDebt:       paid.Sub(expected),
			TurnsReceived:   received,
		})

		totalCollected = totalCollected.Add(paid)
		totalExpected = totalExpected.Add(expected)
		complianceSum = complianceSum.Add(rate)
	}

	globalCompliance := decimal.Zero
	if len(shares) > 0 {
		globalCompliance = complianceSum.Div(decimal.NewFromInt(int64(len(shares)))).Round(2)
	}

	report.GlobalStats = domain.GlobalStats{
		TotalCollected:   totalCollected,
		TotalExpected:    totalExpected,
		GlobalCompliance: globalCompliance,
		TotalDebt:        totalCollected.Sub(totalExpected),
		ParticipantCount: len(shares),
	}

	names := make(map[string]string, len(shares))
	for _, s := range shares {
		names[s.ID.String()] = s.DisplayName()
	}
	for _, t := range sortedTurns {
		if !t.Delivered() {
			continue
		}
		name, ok := names[t.BeneficiaryID.String()]
		if !ok {
			name = "Unknown"
		}
		report.Timeline = append(report.Timeline, domain.TimelineEvent{
			Date:  utils.FormatDate(t.Date),
			Event: fmt.Sprintf("Turn %d delivered to %s", t.TurnNumber, name),
		})
	}

	return report
}
