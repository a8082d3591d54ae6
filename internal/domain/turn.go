package domain

import (
	"time"

	"github.com/google/uuid"
)

// Turn payout statuses
const (
	TurnStatusPending = "PENDING"
	TurnStatusFunded  = "FUNDED"
	TurnStatusPaidOut = "PAID_OUT"
)

// Turn is one scheduled collection day and its beneficiary
type Turn struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	JuntaID       uuid.UUID  `json:"junta_id" db:"junta_id"`
	TurnNumber    int        `json:"turn_number" db:"turn_number"`
	Date          time.Time  `json:"date" db:"turn_date"`
	BeneficiaryID uuid.UUID  `json:"beneficiary_id" db:"beneficiary_id"`
	Status        string     `json:"status" db:"status"`
	IsClosed      bool       `json:"is_closed" db:"is_closed"`
	ClosedAt      *time.Time `json:"closed_at,omitempty" db:"closed_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// Delivered reports whether the beneficiary got (or is owed) the pot
func (t *Turn) Delivered() bool {
	return t.Status == TurnStatusFunded || t.Status == TurnStatusPaidOut
}
