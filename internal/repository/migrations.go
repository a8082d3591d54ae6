package repository

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
)

// juntas must exist before shares, shares before turns, turns before payments
const postgresSchema = `
CREATE TABLE IF NOT EXISTS juntas (
    id UUID PRIMARY KEY,
    name TEXT NOT NULL,
    start_date DATE NOT NULL,
    duration INTEGER NOT NULL CHECK (duration >= 0),
    status TEXT NOT NULL,
    archived_at TIMESTAMPTZ,
    ended_at DATE,
    archive_reason TEXT,
    final_report JSONB,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_juntas_single_active ON juntas (status) WHERE status = 'ACTIVE';

CREATE TABLE IF NOT EXISTS junta_shares (
    id UUID PRIMARY KEY,
    junta_id UUID NOT NULL REFERENCES juntas(id) ON DELETE CASCADE,
    user_id TEXT,
    name TEXT NOT NULL,
    daily_commitment NUMERIC(14, 2) NOT NULL CHECK (daily_commitment > 0),
    roster_order INTEGER NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS junta_turns (
    id UUID PRIMARY KEY,
    junta_id UUID NOT NULL REFERENCES juntas(id) ON DELETE CASCADE,
    turn_number INTEGER NOT NULL,
    turn_date DATE NOT NULL,
    beneficiary_id UUID NOT NULL REFERENCES junta_shares(id),
    status TEXT NOT NULL,
    is_closed BOOLEAN NOT NULL DEFAULT FALSE,
    closed_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL,
    UNIQUE (junta_id, turn_date),
    UNIQUE (junta_id, turn_number)
);

CREATE TABLE IF NOT EXISTS junta_payments (
    id UUID PRIMARY KEY,
    turn_id UUID NOT NULL REFERENCES junta_turns(id),
    share_id UUID NOT NULL REFERENCES junta_shares(id),
    amount NUMERIC(14, 2) NOT NULL CHECK (amount > 0),
    method TEXT NOT NULL,
    destination TEXT,
    notes TEXT,
    recorded_by TEXT,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_junta_shares_junta_id ON junta_shares(junta_id);
CREATE INDEX IF NOT EXISTS idx_junta_payments_turn_id ON junta_payments(turn_id);
CREATE INDEX IF NOT EXISTS idx_junta_payments_share_id ON junta_payments(share_id);
`

// amounts are TEXT so sqlite keeps them exact
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS juntas (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    start_date DATE NOT NULL,
    duration INTEGER NOT NULL CHECK (duration >= 0),
    status TEXT NOT NULL,
    archived_at DATETIME,
    ended_at DATE,
    archive_reason TEXT,
    final_report TEXT,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_juntas_single_active ON juntas (status) WHERE status = 'ACTIVE';

CREATE TABLE IF NOT EXISTS junta_shares (
    id TEXT PRIMARY KEY,
    junta_id TEXT NOT NULL REFERENCES juntas(id) ON DELETE CASCADE,
    user_id TEXT,
    name TEXT NOT NULL,
    daily_commitment TEXT NOT NULL,
    roster_order INTEGER NOT NULL,
    created_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS junta_turns (
    id TEXT PRIMARY KEY,
    junta_id TEXT NOT NULL REFERENCES juntas(id) ON DELETE CASCADE,
    turn_number INTEGER NOT NULL,
    turn_date DATE NOT NULL,
    beneficiary_id TEXT NOT NULL REFERENCES junta_shares(id),
    status TEXT NOT NULL,
    is_closed BOOLEAN NOT NULL DEFAULT 0,
    closed_at DATETIME,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL,
    UNIQUE (junta_id, turn_date),
    UNIQUE (junta_id, turn_number)
);

CREATE TABLE IF NOT EXISTS junta_payments (
    id TEXT PRIMARY KEY,
    turn_id TEXT NOT NULL REFERENCES junta_turns(id),
    share_id TEXT NOT NULL REFERENCES junta_shares(id),
    amount TEXT NOT NULL,
    method TEXT NOT NULL,
    destination TEXT,
    notes TEXT,
    recorded_by TEXT,
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_junta_shares_junta_id ON junta_shares(junta_id);
CREATE INDEX IF NOT EXISTS idx_junta_payments_turn_id ON junta_payments(turn_id);
CREATE INDEX IF NOT EXISTS idx_junta_payments_share_id ON junta_payments(share_id);
`

// Migrate creates the schema for the connected driver. It is idempotent.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	schema := postgresSchema
	if strings.HasPrefix(db.DriverName(), "sqlite") {
		schema = sqliteSchema
	}

	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
