package sqlite

import (
	"context"
	"database/sql"

	"github.com/m-mizutani/goerr/v2"
)

// Statements are idempotent and run on every open.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		user_id      TEXT PRIMARY KEY,
		persona_name TEXT NOT NULL,
		goals        TEXT NOT NULL DEFAULT '[]',
		preferences  TEXT NOT NULL DEFAULT '',
		created_at   INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS chat_log (
		seq       INTEGER PRIMARY KEY AUTOINCREMENT,
		id        TEXT NOT NULL UNIQUE,
		user_id   TEXT NOT NULL,
		message   TEXT NOT NULL,
		response  TEXT NOT NULL,
		timestamp INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_chat_log_user_time ON chat_log (user_id, timestamp DESC)`,
	`CREATE TABLE IF NOT EXISTS schedule_log (
		seq         INTEGER PRIMARY KEY AUTOINCREMENT,
		id          TEXT NOT NULL UNIQUE,
		user_id     TEXT NOT NULL,
		date        TEXT NOT NULL,
		payload     TEXT NOT NULL,
		prompt_text TEXT NOT NULL DEFAULT '',
		created_at  INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_schedule_log_user_time ON schedule_log (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS conversations (
		session_key TEXT PRIMARY KEY,
		history     BLOB NOT NULL,
		updated_at  INTEGER NOT NULL
	)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return goerr.Wrap(err, "failed to run migration", goerr.V("index", i))
		}
	}
	return nil
}
