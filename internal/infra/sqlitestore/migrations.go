package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations are applied in order; PRAGMA user_version records how many ran.
var migrations = []string{
	`CREATE TABLE boards (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		normalized_name TEXT NOT NULL,
		state TEXT NOT NULL CHECK (state IN ('active', 'archived', 'deleted')),
		position INTEGER,
		trash_position INTEGER,
		created_at INTEGER NOT NULL,
		archived_at INTEGER,
		removed_at INTEGER
	)`,
	`CREATE INDEX idx_boards_state ON boards(state)`,
	`CREATE TABLE labels (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		normalized_name TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE TABLE board_labels (
		board_id INTEGER NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
		label_id INTEGER NOT NULL REFERENCES labels(id) ON DELETE CASCADE,
		PRIMARY KEY (board_id, label_id)
	)`,
	`CREATE TABLE tasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		board_id INTEGER NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		normalized_name TEXT NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0,
		position INTEGER,
		completed_position INTEGER,
		priority INTEGER,
		date TEXT,
		time TEXT,
		created_at INTEGER NOT NULL,
		completed_at INTEGER
	)`,
	`CREATE INDEX idx_tasks_board ON tasks(board_id)`,
	`CREATE TABLE subtasks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		task_id INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		normalized_name TEXT NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0,
		position INTEGER,
		completed_position INTEGER,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX idx_subtasks_task ON subtasks(task_id)`,
}

// runMigrations applies migrations not yet recorded in user_version.
func runMigrations(ctx context.Context, db *sql.DB) error {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version > len(migrations) {
		return fmt.Errorf("schema version %d is newer than this build (%d)", version, len(migrations))
	}
	if version == len(migrations) {
		return nil
	}

	return withTx(ctx, db, func(tx *sql.Tx) error {
		for i := version; i < len(migrations); i++ {
			if _, err := tx.ExecContext(ctx, migrations[i]); err != nil {
				return fmt.Errorf("migration %d: %w", i+1, err)
			}
		}
		// PRAGMA does not take bound parameters
		_, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", len(migrations)))
		return err
	})
}
