package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/pacer/internal/db"
	"github.com/alexanderramin/pacer/internal/domain"
)

const slotColumns = `id, user_id, task_id, date, start_time, recorded, created_at`

// SQLiteScheduleRepo implements ScheduleRepo using a SQLite database.
type SQLiteScheduleRepo struct {
	db db.DBTX
}

func NewSQLiteScheduleRepo(conn db.DBTX) *SQLiteScheduleRepo {
	return &SQLiteScheduleRepo{db: conn}
}

// Create inserts a slot. An occupied (user, date, start) triple yields ErrConflict.
func (r *SQLiteScheduleRepo) Create(ctx context.Context, s *domain.ScheduleSlot) error {
	query := `INSERT INTO schedule_slots (` + slotColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.TaskID,
		s.Date,
		s.StartTime,
		boolToInt(s.Recorded),
		formatTime(s.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("slot %s %s: %w", s.Date, s.StartTime, ErrConflict)
		}
		return fmt.Errorf("inserting slot: %w", err)
	}
	return nil
}

func (r *SQLiteScheduleRepo) GetByID(ctx context.Context, id string) (*domain.ScheduleSlot, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+slotColumns+` FROM schedule_slots WHERE id = ?`, id)
	return r.scanSlot(row)
}

func (r *SQLiteScheduleRepo) ListByUser(ctx context.Context, userID string) ([]*domain.ScheduleSlot, error) {
	return r.list(ctx, `WHERE user_id = ?`, userID)
}

func (r *SQLiteScheduleRepo) ListByDate(ctx context.Context, userID, date string) ([]*domain.ScheduleSlot, error) {
	return r.list(ctx, `WHERE user_id = ? AND date = ?`, userID, date)
}

func (r *SQLiteScheduleRepo) ListByTask(ctx context.Context, taskID string) ([]*domain.ScheduleSlot, error) {
	return r.list(ctx, `WHERE task_id = ?`, taskID)
}

func (r *SQLiteScheduleRepo) list(ctx context.Context, where string, args ...any) ([]*domain.ScheduleSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM schedule_slots ` + where + ` ORDER BY date, start_time`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing slots: %w", err)
	}
	defer rows.Close()
	return r.scanSlots(rows)
}

func (r *SQLiteScheduleRepo) MarkRecorded(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE schedule_slots SET recorded = 1 WHERE id = ? AND recorded = 0`, id)
	if err != nil {
		return fmt.Errorf("marking slot recorded: %w", err)
	}
	return requireAffected(res, "open slot")
}

func (r *SQLiteScheduleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM schedule_slots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting slot: %w", err)
	}
	return requireAffected(res, "slot")
}

func (r *SQLiteScheduleRepo) scanSlot(row *sql.Row) (*domain.ScheduleSlot, error) {
	var s domain.ScheduleSlot
	var recorded int
	var createdAt string
	if err := row.Scan(&s.ID, &s.UserID, &s.TaskID, &s.Date, &s.StartTime, &recorded, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("slot: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning slot: %w", err)
	}
	return populateSlot(&s, recorded, createdAt)
}

func (r *SQLiteScheduleRepo) scanSlots(rows *sql.Rows) ([]*domain.ScheduleSlot, error) {
	var slots []*domain.ScheduleSlot
	for rows.Next() {
		var s domain.ScheduleSlot
		var recorded int
		var createdAt string
		if err := rows.Scan(&s.ID, &s.UserID, &s.TaskID, &s.Date, &s.StartTime, &recorded, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning slot row: %w", err)
		}
		slot, err := populateSlot(&s, recorded, createdAt)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating slots: %w", err)
	}
	return slots, nil
}

func populateSlot(s *domain.ScheduleSlot, recorded int, createdAt string) (*domain.ScheduleSlot, error) {
	var err error
	s.Recorded = intToBool(recorded)
	if s.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	return s, nil
}
