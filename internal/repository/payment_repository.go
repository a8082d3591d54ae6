package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/yunta/internal/domain"
)

const paymentSelect = `
	SELECT p.id, p.turn_id, p.share_id, p.amount, p.method, p.destination, p.notes, p.recorded_by,
	       t.turn_date AS target_date, p.created_at
	FROM junta_payments p
	JOIN junta_turns t ON t.id = p.turn_id
`

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now().UTC()
	}

	q := conn(ctx, r.db)
	query := q.Rebind(`
		INSERT INTO junta_payments (id, turn_id, share_id, amount, method, destination, notes, recorded_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := q.ExecContext(ctx, query,
		payment.ID.String(),
		payment.TurnID.String(),
		payment.ShareID.String(),
		payment.Amount.String(),
		string(payment.Method),
		nullString(payment.Destination),
		nullString(payment.Notes),
		nullString(payment.RecordedBy),
		payment.CreatedAt,
	)

	return err
}

func (r *paymentRepository) GetByJuntaID(ctx context.Context, juntaID uuid.UUID) ([]*domain.Payment, error) {
	q := conn(ctx, r.db)
	query := q.Rebind(paymentSelect + ` WHERE t.junta_id = ? ORDER BY t.turn_date, p.created_at`)

	payments := []*domain.Payment{}
	if err := q.SelectContext(ctx, &payments, query, juntaID.String()); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) GetByDate(ctx context.Context, juntaID uuid.UUID, date time.Time) ([]*domain.Payment, error) {
	q := conn(ctx, r.db)
	query := q.Rebind(paymentSelect + ` WHERE t.junta_id = ? AND t.turn_date = ? ORDER BY p.created_at`)

	payments := []*domain.Payment{}
	if err := q.SelectContext(ctx, &payments, query, juntaID.String(), dateArg(q, date)); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) CountByJuntaID(ctx context.Context, juntaID uuid.UUID) (int, error) {
	q := conn(ctx, r.db)
	query := q.Rebind(`
		SELECT COUNT(*)
		FROM junta_payments p
		JOIN junta_turns t ON t.id = p.turn_id
		WHERE t.junta_id = ?
	`)

	var count int
	if err := q.GetContext(ctx, &count, query, juntaID.String()); err != nil {
		return 0, err
	}

	return count, nil
}
