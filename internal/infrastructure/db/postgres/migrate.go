package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
	id                UUID PRIMARY KEY,
	user_id           TEXT NOT NULL,
	session_token     TEXT NOT NULL UNIQUE,
	url               TEXT NOT NULL,
	start_time        TIMESTAMPTZ NOT NULL,
	end_time          TIMESTAMPTZ,
	duration          INTEGER,
	interaction_count INTEGER NOT NULL DEFAULT 0,
	is_active         BOOLEAN NOT NULL DEFAULT TRUE,
	created_at        TIMESTAMPTZ NOT NULL,
	updated_at        TIMESTAMPTZ NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_user_created ON sessions (user_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_active ON sessions (is_active)`,

	`CREATE TABLE IF NOT EXISTS feedback (
	id            UUID PRIMARY KEY,
	user_id       TEXT NOT NULL,
	feedback_type TEXT NOT NULL,
	feedback      TEXT NOT NULL,
	subject_name  TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_feedback_user_created ON feedback (user_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS user_interactions (
	id               UUID PRIMARY KEY,
	session_token    TEXT NOT NULL,
	user_id          TEXT NOT NULL,
	interaction_type TEXT NOT NULL,
	"timestamp"      TIMESTAMPTZ NOT NULL,
	url              TEXT NOT NULL DEFAULT '',
	element_info     JSONB,
	data             JSONB,
	created_at       TIMESTAMPTZ NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_interactions_session_ts ON user_interactions (session_token, "timestamp")`,
	`CREATE INDEX IF NOT EXISTS idx_interactions_user ON user_interactions (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_interactions_type ON user_interactions (interaction_type)`,
}

// Migrate applies the schema idempotently. Statements run one by one so a
// failure names the statement that broke.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
