package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DTOs for requests and responses

type ParticipantInput struct {
	Name            string          `json:"name" validate:"required_without=UserID,max=100"`
	UserID          *string         `json:"user_id,omitempty" validate:"omitempty,max=64"`
	DailyCommitment decimal.Decimal `json:"daily_commitment" validate:"required,gt=0"`
}

// ScheduleEntry assigns the beneficiary of one day by roster index
type ScheduleEntry struct {
	Date             string `json:"date" validate:"required,datetime=2006-01-02"`
	BeneficiaryIndex int    `json:"beneficiary_index" validate:"gte=0"`
}

type CreateJuntaRequest struct {
	Name         string             `json:"name" validate:"required,max=120"`
	StartDate    string             `json:"start_date" validate:"required,datetime=2006-01-02"`
	Duration     int                `json:"duration" validate:"gte=0,lte=366"`
	Participants []ParticipantInput `json:"participants" validate:"required,min=1,dive"`
	Schedule     []ScheduleEntry    `json:"schedule,omitempty" validate:"omitempty,dive"`
}

// ScheduleTurnsRequest optionally lists beneficiaries (participant ids) in rotation order
type ScheduleTurnsRequest struct {
	BeneficiaryOrder []string `json:"beneficiary_order,omitempty" validate:"omitempty,dive,uuid"`
}

type RecordPaymentRequest struct {
	TargetDate    string          `json:"target_date" validate:"required,datetime=2006-01-02"`
	ParticipantID string          `json:"participant_id" validate:"required,uuid"`
	Amount        decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Method        PaymentMethod   `json:"method" validate:"required"`
	Destination   *string         `json:"destination,omitempty" validate:"omitempty,max=64"`
	Notes         *string         `json:"notes,omitempty" validate:"omitempty,max=500"`
	RecordedBy    *string         `json:"recorded_by,omitempty" validate:"omitempty,max=64"`
}

type RescheduleTurnRequest struct {
	BeneficiaryID string `json:"beneficiary_id" validate:"required,uuid"`
}

type ArchiveJuntaRequest struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

type DuplicateJuntaRequest struct {
	Name      string `json:"name" validate:"required,max=120"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
}

type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// JuntaState is the full view of a junta: roster, schedule and flattened ledger
type JuntaState struct {
	Junta        *Junta     `json:"junta"`
	Participants []*Share   `json:"participants"`
	Schedule     []*Turn    `json:"schedule"`
	Ledger       []*Payment `json:"ledger"`
	DateRange    DateRange  `json:"date_range"`
}

type CreateJuntaResponse struct {
	Junta        *Junta   `json:"junta"`
	Participants []*Share `json:"participants"`
	Schedule     []*Turn  `json:"schedule"`
}
