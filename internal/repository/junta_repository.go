package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/yunta/internal/domain"
)

const juntaColumns = `id, name, start_date, duration, status, archived_at, ended_at, archive_reason, final_report, created_at, updated_at`

const shareColumns = `id, junta_id, user_id, name, daily_commitment, roster_order, created_at`

const turnColumns = `id, junta_id, turn_number, turn_date, beneficiary_id, status, is_closed, closed_at, created_at, updated_at`

type juntaRepository struct {
	db *sqlx.DB
}

func NewJuntaRepository(db *sqlx.DB) JuntaRepository {
	return &juntaRepository{db: db}
}

func (r *juntaRepository) Create(ctx context.Context, junta *domain.Junta) error {
	now := time.Now().UTC()
	if junta.ID == uuid.Nil {
		junta.ID = uuid.New()
	}
	if junta.CreatedAt.IsZero() {
		junta.CreatedAt = now
	}
	junta.UpdatedAt = now

	q := conn(ctx, r.db)
	query := q.Rebind(`
		INSERT INTO juntas (id, name, start_date, duration, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)

	_, err := q.ExecContext(ctx, query,
		junta.ID.String(),
		junta.Name,
		dateArg(q, junta.StartDate),
		junta.Duration,
		string(junta.Status),
		junta.CreatedAt,
		junta.UpdatedAt,
	)

	return err
}

func (r *juntaRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Junta, error) {
	q := conn(ctx, r.db)
	query := q.Rebind(`SELECT ` + juntaColumns + ` FROM juntas WHERE id = ?`)

	var junta domain.Junta
	if err := q.GetContext(ctx, &junta, query, id.String()); err != nil {
		return nil, err
	}

	return &junta, nil
}

func (r *juntaRepository) GetActive(ctx context.Context) (*domain.Junta, error) {
	q := conn(ctx, r.db)
	query := q.Rebind(`SELECT ` + juntaColumns + ` FROM juntas WHERE status = ?`)

	var junta domain.Junta
	if err := q.GetContext(ctx, &junta, query, string(domain.JuntaStatusActive)); err != nil {
		return nil, err
	}

	return &junta, nil
}

func (r *juntaRepository) ListByStatus(ctx context.Context, statuses []domain.JuntaStatus) ([]*domain.Junta, error) {
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}

	query, args, err := sqlx.In(`
		SELECT `+juntaColumns+`
		FROM juntas
		WHERE status IN (?)
		ORDER BY COALESCE(archived_at, updated_at) DESC
	`, values)
	if err != nil {
		return nil, err
	}

	q := conn(ctx, r.db)
	juntas := []*domain.Junta{}
	if err := q.SelectContext(ctx, &juntas, q.Rebind(query), args...); err != nil {
		return nil, err
	}

	return juntas, nil
}

func (r *juntaRepository) Archive(ctx context.Context, id uuid.UUID, archivedAt, endedAt time.Time, reason *string, report *domain.FinalReport) (bool, error) {
	doc, err := report.Value()
	if err != nil {
		return false, err
	}

	q := conn(ctx, r.db)
	query := q.Rebind(`
		UPDATE juntas
		SET status = ?, archived_at = ?, ended_at = ?, archive_reason = ?, final_report = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`)

	res, err := q.ExecContext(ctx, query,
		string(domain.JuntaStatusArchived),
		archivedAt.UTC(),
		dateArg(q, endedAt),
		nullString(reason),
		doc,
		archivedAt.UTC(),
		id.String(),
		string(domain.JuntaStatusActive),
	)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	return n == 1, err
}

func (r *juntaRepository) Cancel(ctx context.Context, id uuid.UUID, at time.Time, reason *string) (bool, error) {
	q := conn(ctx, r.db)
	query := q.Rebind(`
		UPDATE juntas
		SET status = ?, archived_at = ?, archive_reason = ?, updated_at = ?
		WHERE id = ? AND status = ?
	`)

	res, err := q.ExecContext(ctx, query,
		string(domain.JuntaStatusCancelled),
		at.UTC(),
		nullString(reason),
		at.UTC(),
		id.String(),
		string(domain.JuntaStatusActive),
	)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	return n == 1, err
}

func (r *juntaRepository) CreateShares(ctx context.Context, shares []*domain.Share) error {
	q := conn(ctx, r.db)
	query := q.Rebind(`
		INSERT INTO junta_shares (id, junta_id, user_id, name, daily_commitment, roster_order, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)

	now := time.Now().UTC()
	for _, share := range shares {
		if share.ID == uuid.Nil {
			share.ID = uuid.New()
		}
		if share.CreatedAt.IsZero() {
			share.CreatedAt = now
		}
		_, err := q.ExecContext(ctx, query,
			share.ID.String(),
			share.JuntaID.String(),
			nullString(share.UserID),
			share.Name,
			share.DailyCommitment.String(),
			share.Position,
			share.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *juntaRepository) GetShares(ctx context.Context, juntaID uuid.UUID) ([]*domain.Share, error) {
	q := conn(ctx, r.db)
	query := q.Rebind(`SELECT ` + shareColumns + ` FROM junta_shares WHERE junta_id = ? ORDER BY roster_order`)

	shares := []*domain.Share{}
	if err := q.SelectContext(ctx, &shares, query, juntaID.String()); err != nil {
		return nil, err
	}

	return shares, nil
}

func (r *juntaRepository) CreateTurns(ctx context.Context, turns []*domain.Turn) error {
	q := conn(ctx, r.db)
	query := q.Rebind(`
		INSERT INTO junta_turns (id, junta_id, turn_number, turn_date, beneficiary_id, status, is_closed, closed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	now := time.Now().UTC()
	for _, turn := range turns {
		if turn.ID == uuid.Nil {
			turn.ID = uuid.New()
		}
		if turn.CreatedAt.IsZero() {
			turn.CreatedAt = now
		}
		turn.UpdatedAt = now
		_, err := q.ExecContext(ctx, query,
			turn.ID.String(),
			turn.JuntaID.String(),
			turn.TurnNumber,
			dateArg(q, turn.Date),
			turn.BeneficiaryID.String(),
			turn.Status,
			turn.IsClosed,
			nullTime(turn.ClosedAt),
			turn.CreatedAt,
			turn.UpdatedAt,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *juntaRepository) GetTurns(ctx context.Context, juntaID uuid.UUID) ([]*domain.Turn, error) {
	q := conn(ctx, r.db)
	query := q.Rebind(`SELECT ` + turnColumns + ` FROM junta_turns WHERE junta_id = ? ORDER BY turn_date`)

	turns := []*domain.Turn{}
	if err := q.SelectContext(ctx, &turns, query, juntaID.String()); err != nil {
		return nil, err
	}

	return turns, nil
}

func (r *juntaRepository) GetTurnByDate(ctx context.Context, juntaID uuid.UUID, date time.Time) (*domain.Turn, error) {
	q := conn(ctx, r.db)
	query := q.Rebind(`SELECT ` + turnColumns + ` FROM junta_turns WHERE junta_id = ? AND turn_date = ?`)

	var turn domain.Turn
	if err := q.GetContext(ctx, &turn, query, juntaID.String(), dateArg(q, date)); err != nil {
		return nil, err
	}

	return &turn, nil
}

func (r *juntaRepository) GetOpenTurnsBefore(ctx context.Context, juntaID uuid.UUID, date time.Time) ([]*domain.Turn, error) {
	q := conn(ctx, r.db)
	query := q.Rebind(`
		SELECT ` + turnColumns + `
		FROM junta_turns
		WHERE junta_id = ? AND is_closed = ? AND turn_date < ?
		ORDER BY turn_date
	`)

	turns := []*domain.Turn{}
	if err := q.SelectContext(ctx, &turns, query, juntaID.String(), false, dateArg(q, date)); err != nil {
		return nil, err
	}

	return turns, nil
}

func (r *juntaRepository) UpdateTurnBeneficiary(ctx context.Context, turnID, beneficiaryID uuid.UUID) error {
	q := conn(ctx, r.db)
	query := q.Rebind(`UPDATE junta_turns SET beneficiary_id = ?, updated_at = ? WHERE id = ?`)

	_, err := q.ExecContext(ctx, query, beneficiaryID.String(), time.Now().UTC(), turnID.String())
	return err
}

func (r *juntaRepository) UpdateTurnState(ctx context.Context, turn *domain.Turn) error {
	turn.UpdatedAt = time.Now().UTC()

	q := conn(ctx, r.db)
	query := q.Rebind(`UPDATE junta_turns SET is_closed = ?, closed_at = ?, status = ?, updated_at = ? WHERE id = ?`)

	_, err := q.ExecContext(ctx, query,
		turn.IsClosed,
		nullTime(turn.ClosedAt),
		turn.Status,
		turn.UpdatedAt,
		turn.ID.String(),
	)
	return err
}
