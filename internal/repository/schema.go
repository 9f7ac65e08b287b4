package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id             BIGSERIAL PRIMARY KEY,
	open_id        TEXT NOT NULL UNIQUE,
	name           TEXT,
	email          TEXT,
	login_method   TEXT,
	role           TEXT NOT NULL DEFAULT 'user',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	last_signed_in TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS user_preferences (
	id                BIGSERIAL PRIMARY KEY,
	user_id           BIGINT NOT NULL UNIQUE REFERENCES users(id),
	theme             TEXT NOT NULL DEFAULT 'light',
	accent_color      TEXT NOT NULL DEFAULT 'brown',
	font_size         TEXT NOT NULL DEFAULT 'medium',
	show_cursor_trail SMALLINT NOT NULL DEFAULT 1,
	updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS newsletter_subscribers (
	id            BIGSERIAL PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	subscribed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	active        SMALLINT NOT NULL DEFAULT 1
);
`

// Migrate applies the schema idempotently. Callers skip it entirely when the
// store is unavailable.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
