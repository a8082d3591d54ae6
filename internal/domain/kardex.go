package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type KardexStatus string

const (
	KardexStatusCompleted KardexStatus = "COMPLETED"
	KardexStatusPartial   KardexStatus = "PARTIAL"
	KardexStatusMissing   KardexStatus = "MISSING"
	KardexStatusFuture    KardexStatus = "FUTURE"
)

type KardexTransaction struct {
	ID        uuid.UUID       `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    PaymentMethod   `json:"method"`
	CreatedAt time.Time       `json:"created_at"`
}

type KardexDay struct {
	Date         time.Time           `json:"date"`
	DayNumber    int                 `json:"day_number"`
	Expected     decimal.Decimal     `json:"expected"`
	Paid         decimal.Decimal     `json:"paid"`
	BalanceAfter decimal.Decimal     `json:"balance_after"`
	Status       KardexStatus        `json:"status"`
	IsTurn       bool                `json:"is_turn"`
	Transactions []KardexTransaction `json:"transactions"`
}

// Kardex is a participant's day-by-day statement over the whole junta
type Kardex struct {
	JuntaID          uuid.UUID       `json:"junta_id"`
	JuntaName        string          `json:"junta_name"`
	ParticipantID    uuid.UUID       `json:"participant_id"`
	ParticipantName  string          `json:"participant_name"`
	DailyCommitment  decimal.Decimal `json:"daily_commitment"`
	Days             []KardexDay     `json:"days"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	TotalExpected    decimal.Decimal `json:"total_expected"`
	GlobalDebt       decimal.Decimal `json:"global_debt"`
	ProjectedBalance decimal.Decimal `json:"projected_balance"`
	ComplianceRate   int             `json:"compliance_rate"`
	ElapsedDays      int             `json:"elapsed_days"`
	NextTurnDate     *time.Time      `json:"next_turn_date,omitempty"`
	TurnsAssigned    []int           `json:"turns_assigned"`
}
