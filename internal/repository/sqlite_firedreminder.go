package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pacer/internal/db"
)

// SQLiteFiredReminderRepo implements FiredReminderRepo using a SQLite database.
type SQLiteFiredReminderRepo struct {
	db db.DBTX
}

func NewSQLiteFiredReminderRepo(conn db.DBTX) *SQLiteFiredReminderRepo {
	return &SQLiteFiredReminderRepo{db: conn}
}

func (r *SQLiteFiredReminderRepo) ListKeys(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key FROM fired_reminders WHERE user_id = ? ORDER BY key`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing fired reminders: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scanning fired reminder: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating fired reminders: %w", err)
	}
	return keys, nil
}

// Add records a key. Re-adding an existing key is a no-op.
func (r *SQLiteFiredReminderRepo) Add(ctx context.Context, userID, key string, firedAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO fired_reminders (user_id, key, fired_at) VALUES (?, ?, ?)`,
		userID, key, formatTime(firedAt))
	if err != nil {
		return fmt.Errorf("recording fired reminder: %w", err)
	}
	return nil
}

// PruneBefore drops keys fired before cutoff, for every user.
func (r *SQLiteFiredReminderRepo) PruneBefore(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM fired_reminders WHERE fired_at < ?`, formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("pruning fired reminders: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting pruned reminders: %w", err)
	}
	return int(n), nil
}
