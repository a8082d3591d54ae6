package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DailyStatus string

// Per-participant status for one collection day
const (
	DailyStatusCompleted DailyStatus = "COMPLETED"
	DailyStatusPartial   DailyStatus = "PARTIAL"
	DailyStatusPending   DailyStatus = "PENDING"
	DailyStatusOverdue   DailyStatus = "VENCIDO"
	DailyStatusAhead     DailyStatus = "ADELANTADO"
)

type ParticipantDay struct {
	ParticipantID uuid.UUID       `json:"participant_id"`
	Name          string          `json:"name"`
	Expected      decimal.Decimal `json:"expected"`
	Paid          decimal.Decimal `json:"paid"`
	Pending       decimal.Decimal `json:"pending"`
	Status        DailyStatus     `json:"status"`
	IsBeneficiary bool            `json:"is_beneficiary"`
}

// DailySummary is the collection view of a single day
type DailySummary struct {
	JuntaID       uuid.UUID        `json:"junta_id"`
	Date          time.Time        `json:"date"`
	TurnNumber    int              `json:"turn_number"`
	BeneficiaryID uuid.UUID        `json:"beneficiary_id"`
	IsClosed      bool             `json:"is_closed"`
	TurnStatus    string           `json:"turn_status"`
	Participants  []ParticipantDay `json:"participants"`
	Expected      decimal.Decimal  `json:"expected"`
	Collected     decimal.Decimal  `json:"collected"`
	Pending       decimal.Decimal  `json:"pending"`
}
