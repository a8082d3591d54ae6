package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCash      PaymentMethod = "CASH"
	PaymentMethodDebit     PaymentMethod = "DEBIT"
	PaymentMethodCreditBCP PaymentMethod = "CREDIT_BCP"
	PaymentMethodYape      PaymentMethod = "YAPE"
	PaymentMethodPlin      PaymentMethod = "PLIN"
	PaymentMethodTransfer  PaymentMethod = "TRANSFER"
)

var paymentMethods = map[PaymentMethod]bool{
	PaymentMethodCash:      true,
	PaymentMethodDebit:     true,
	PaymentMethodCreditBCP: true,
	PaymentMethodYape:      true,
	PaymentMethodPlin:      true,
	PaymentMethodTransfer:  true,
}

func (m PaymentMethod) Valid() bool {
	return paymentMethods[m]
}

// Payment is an immutable ledger row. TargetDate is the turn's date, filled by reads.
type Payment struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	TurnID      uuid.UUID       `json:"turn_id" db:"turn_id"`
	ShareID     uuid.UUID       `json:"participant_id" db:"share_id"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Method      PaymentMethod   `json:"method" db:"method"`
	Destination *string         `json:"destination,omitempty" db:"destination"`
	Notes       *string         `json:"notes,omitempty" db:"notes"`
	RecordedBy  *string         `json:"recorded_by,omitempty" db:"recorded_by"`
	TargetDate  time.Time       `json:"target_date" db:"target_date"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
}
