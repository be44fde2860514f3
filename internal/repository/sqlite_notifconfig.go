package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pacer/internal/db"
)

// SQLiteNotificationConfigRepo implements NotificationConfigRepo using a SQLite database.
type SQLiteNotificationConfigRepo struct {
	db db.DBTX
}

func NewSQLiteNotificationConfigRepo(conn db.DBTX) *SQLiteNotificationConfigRepo {
	return &SQLiteNotificationConfigRepo{db: conn}
}

func (r *SQLiteNotificationConfigRepo) Get(ctx context.Context, userID string) ([]byte, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM notification_configs WHERE user_id = ?`, userID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("notification config: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("loading notification config: %w", err)
	}
	return []byte(payload), nil
}

func (r *SQLiteNotificationConfigRepo) Put(ctx context.Context, userID string, payload []byte) error {
	query := `INSERT INTO notification_configs (user_id, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, query, userID, string(payload), formatTime(time.Now())); err != nil {
		return fmt.Errorf("saving notification config: %w", err)
	}
	return nil
}
