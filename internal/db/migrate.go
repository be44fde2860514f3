package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillCompleted(db); err != nil {
		return fmt.Errorf("backfilling completed flags: %w", err)
	}
	return nil
}

// migrateBackfillCompleted re-derives the completed flag for rows written
// before completion was tied to progress.
func migrateBackfillCompleted(db *sql.DB) error {
	ctx := context.Background()
	if _, err := db.ExecContext(ctx,
		`UPDATE tasks SET completed = 1 WHERE progress >= 100 AND completed = 0`); err != nil {
		return fmt.Errorf("marking finished tasks: %w", err)
	}
	if _, err := db.ExecContext(ctx,
		`UPDATE tasks SET completed = 0 WHERE progress < 100 AND completed = 1`); err != nil {
		return fmt.Errorf("reopening unfinished tasks: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL,
		title           TEXT NOT NULL,
		estimated_hours REAL NOT NULL DEFAULT 0 CHECK(estimated_hours >= 0),
		deadline        TEXT NOT NULL,
		progress        INTEGER NOT NULL DEFAULT 0 CHECK(progress BETWEEN 0 AND 100),
		time_spent      REAL NOT NULL DEFAULT 0 CHECK(time_spent >= 0),
		completed       INTEGER NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_deadline ON tasks(user_id, deadline)`,

	`CREATE TABLE IF NOT EXISTS schedule_slots (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		task_id    TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		date       TEXT NOT NULL,
		start_time TEXT NOT NULL,
		recorded   INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_slots_user_date_start ON schedule_slots(user_id, date, start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_slots_task ON schedule_slots(task_id)`,

	`CREATE TABLE IF NOT EXISTS notification_configs (
		user_id    TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS fired_reminders (
		user_id  TEXT NOT NULL,
		key      TEXT NOT NULL,
		fired_at TEXT NOT NULL,
		PRIMARY KEY (user_id, key)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_fired_reminders_at ON fired_reminders(fired_at)`,

	// Optional time of day for a deadline ('' = end of the deadline day).
	`ALTER TABLE tasks ADD COLUMN deadline_time TEXT NOT NULL DEFAULT ''`,

	// Photo references as a JSON array.
	`ALTER TABLE tasks ADD COLUMN photos TEXT NOT NULL DEFAULT '[]'`,
}
