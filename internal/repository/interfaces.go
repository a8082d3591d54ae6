package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/segyhp/yunta/internal/domain"
)

// JuntaRepository defines the data operations over juntas, their shares and turns.
// Lookups that miss return sql.ErrNoRows.
type JuntaRepository interface {
	// Create creates a new junta
	Create(ctx context.Context, junta *domain.Junta) error

	// GetByID retrieves a junta by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Junta, error)

	// GetActive retrieves the single ACTIVE junta
	GetActive(ctx context.Context) (*domain.Junta, error)

	// ListByStatus lists juntas in any of the given statuses, most recently archived first
	ListByStatus(ctx context.Context, statuses []domain.JuntaStatus) ([]*domain.Junta, error)

	// Archive flips an ACTIVE junta to ARCHIVED and stores its report in one statement.
	// It reports false when the junta was no longer ACTIVE.
	Archive(ctx context.Context, id uuid.UUID, archivedAt, endedAt time.Time, reason *string, report *domain.FinalReport) (bool, error)

	// Cancel flips an ACTIVE junta to CANCELLED
	Cancel(ctx context.Context, id uuid.UUID, at time.Time, reason *string) (bool, error)

	// CreateShares creates the roster of a junta
	CreateShares(ctx context.Context, shares []*domain.Share) error

	// GetShares retrieves the roster of a junta in roster order
	GetShares(ctx context.Context, juntaID uuid.UUID) ([]*domain.Share, error)

	// CreateTurns creates schedule entries
	CreateTurns(ctx context.Context, turns []*domain.Turn) error

	// GetTurns retrieves the schedule of a junta by date
	GetTurns(ctx context.Context, juntaID uuid.UUID) ([]*domain.Turn, error)

	// GetTurnByDate retrieves the turn scheduled on an exact calendar day
	GetTurnByDate(ctx context.Context, juntaID uuid.UUID, date time.Time) (*domain.Turn, error)

	// GetOpenTurnsBefore retrieves open turns dated strictly before date
	GetOpenTurnsBefore(ctx context.Context, juntaID uuid.UUID, date time.Time) ([]*domain.Turn, error)

	// UpdateTurnBeneficiary reassigns who receives the pot of a turn
	UpdateTurnBeneficiary(ctx context.Context, turnID, beneficiaryID uuid.UUID) error

	// UpdateTurnState writes the closed flag and payout status of a turn
	UpdateTurnState(ctx context.Context, turn *domain.Turn) error
}

// PaymentRepository defines the append-only ledger. There is no update or delete.
type PaymentRepository interface {
	// Create appends a payment record
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByJuntaID retrieves the whole ledger of a junta with target dates filled
	GetByJuntaID(ctx context.Context, juntaID uuid.UUID) ([]*domain.Payment, error)

	// GetByDate retrieves the payments targeting one day of a junta
	GetByDate(ctx context.Context, juntaID uuid.UUID, date time.Time) ([]*domain.Payment, error)

	// CountByJuntaID counts the ledger rows of a junta
	CountByJuntaID(ctx context.Context, juntaID uuid.UUID) (int, error)
}
