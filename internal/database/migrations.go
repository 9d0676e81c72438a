package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// migration is one versioned schema step. Steps run in order inside a
// transaction each; applied versions are recorded in schema_migrations and
// never re-run.
type migration struct {
	version int
	name    string
	sql     string
}

// The schema keeps exactly one canonical shape per entity. Membership lives
// in users.household_code; households.members is only a cached projection of
// it, refreshed on join and back-filled by migration 2.
var migrations = []migration{
	{
		version: 1,
		name:    "initial schema",
		sql: `
CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    household_code TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS households (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name TEXT NOT NULL,
    code TEXT NOT NULL UNIQUE,
    members TEXT[] NOT NULL DEFAULT '{}',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS chores (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    household_code TEXT NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_by TEXT NOT NULL,
    assigned_to TEXT NOT NULL DEFAULT '',
    due_date TIMESTAMPTZ NOT NULL,
    frequency TEXT NOT NULL DEFAULT 'once'
        CHECK (frequency IN ('once', 'daily', 'weekly', 'monthly')),
    completed BOOLEAN NOT NULL DEFAULT FALSE,
    completed_at TIMESTAMPTZ,
    completed_by TEXT NOT NULL DEFAULT '',
    last_completed_at TIMESTAMPTZ,
    last_completed_by TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS groceries (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    household_code TEXT NOT NULL,
    name TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT 'Other',
    quantity TEXT NOT NULL DEFAULT '1',
    is_purchased BOOLEAN NOT NULL DEFAULT FALSE,
    added_by TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS grocery_history (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    household_code TEXT NOT NULL,
    grocery_id UUID NOT NULL REFERENCES groceries(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    quantity TEXT NOT NULL DEFAULT '1',
    category TEXT NOT NULL DEFAULT 'Other',
    added_by TEXT NOT NULL DEFAULT 'Unknown',
    purchased_by TEXT NOT NULL DEFAULT 'Unknown',
    purchased_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS notices (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    household_code TEXT NOT NULL,
    title TEXT NOT NULL,
    message TEXT NOT NULL,
    created_by TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS notice_comments (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    notice_id UUID NOT NULL REFERENCES notices(id) ON DELETE CASCADE,
    body TEXT NOT NULL,
    author TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS notice_likes (
    notice_id UUID NOT NULL REFERENCES notices(id) ON DELETE CASCADE,
    member TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (notice_id, member)
);

CREATE TABLE IF NOT EXISTS expenses (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    household_code TEXT NOT NULL,
    title TEXT NOT NULL,
    amount NUMERIC(14, 2) NOT NULL CHECK (amount >= 0),
    paid_by TEXT NOT NULL,
    split_with TEXT[] NOT NULL CHECK (cardinality(split_with) > 0),
    per_person NUMERIC(18, 6) NOT NULL,
    expense_type TEXT NOT NULL DEFAULT 'one-time',
    purchase_date TIMESTAMPTZ NOT NULL,
    due_date TIMESTAMPTZ,
    notes TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS settlements (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    household_code TEXT NOT NULL,
    from_member TEXT NOT NULL,
    to_member TEXT NOT NULL,
    amount NUMERIC(14, 2) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS refresh_tokens (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    token_hash TEXT NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    revoked_at TIMESTAMPTZ,
    replaced_by UUID
);

CREATE INDEX IF NOT EXISTS idx_users_household_code ON users(household_code);
CREATE INDEX IF NOT EXISTS idx_chores_household_code ON chores(household_code);
CREATE INDEX IF NOT EXISTS idx_groceries_household_code ON groceries(household_code);
CREATE INDEX IF NOT EXISTS idx_grocery_history_household_code ON grocery_history(household_code);
CREATE INDEX IF NOT EXISTS idx_grocery_history_grocery_id ON grocery_history(grocery_id);
CREATE INDEX IF NOT EXISTS idx_notices_household_code ON notices(household_code);
CREATE INDEX IF NOT EXISTS idx_notice_comments_notice_id ON notice_comments(notice_id);
CREATE INDEX IF NOT EXISTS idx_expenses_household_code ON expenses(household_code);
CREATE INDEX IF NOT EXISTS idx_settlements_household_code ON settlements(household_code);
CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user_id ON refresh_tokens(user_id);
`,
	},
	{
		version: 2,
		name:    "back-fill household member projection from users",
		sql: `
UPDATE households h
SET members = COALESCE(
    (SELECT ARRAY_AGG(u.name ORDER BY u.created_at)
     FROM users u
     WHERE u.household_code = h.code),
    h.members
);
`,
	},
}

// Migrate applies all pending schema migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INT PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	for _, m := range migrations {
		applied, err := isApplied(ctx, pool, m.version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		if err := apply(ctx, pool, m); err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", m.version, m.name, err)
		}

		slog.Info("migration applied", slog.Int("version", m.version), slog.String("name", m.name))
	}

	return nil
}

func isApplied(ctx context.Context, pool *pgxpool.Pool, version int) (bool, error) {
	var exists bool
	err := pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`,
		version,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check migration %d: %w", version, err)
	}
	return exists, nil
}

func apply(ctx context.Context, pool *pgxpool.Pool, m migration) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, m.sql); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`,
		m.version, m.name,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
