package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/pacer/internal/db"
	"github.com/alexanderramin/pacer/internal/domain"
)

const taskColumns = `id, user_id, title, estimated_hours, deadline, deadline_time,
		progress, time_spent, completed, photos, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo using a SQLite database.
type SQLiteTaskRepo struct {
	db db.DBTX
}

func NewSQLiteTaskRepo(conn db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: conn}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	photos, err := encodeStrings(t.Photos)
	if err != nil {
		return err
	}
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		t.ID,
		t.UserID,
		t.Title,
		t.EstimatedHours,
		t.Deadline,
		t.DeadlineTime,
		t.Progress,
		t.TimeSpent,
		boolToInt(t.Completed),
		photos,
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	return r.scanTask(row)
}

// ListByUser returns a user's tasks ordered by deadline, then creation time.
func (r *SQLiteTaskRepo) ListByUser(ctx context.Context, userID string, includeCompleted bool) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = ?`
	if !includeCompleted {
		query += ` AND completed = 0`
	}
	query += ` ORDER BY deadline, deadline_time = '', deadline_time, created_at`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()
	return r.scanTasks(rows)
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	photos, err := encodeStrings(t.Photos)
	if err != nil {
		return err
	}
	query := `UPDATE tasks SET title = ?, estimated_hours = ?, deadline = ?, deadline_time = ?,
		progress = ?, time_spent = ?, completed = ?, photos = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.EstimatedHours,
		t.Deadline,
		t.DeadlineTime,
		t.Progress,
		t.TimeSpent,
		boolToInt(t.Completed),
		photos,
		formatTime(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireAffected(res, "task")
}

// Delete removes the task; its slots go with it through the foreign key.
func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireAffected(res, "task")
}

func (r *SQLiteTaskRepo) DeleteCompleted(ctx context.Context, userID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = ? AND completed = 1`, userID)
	if err != nil {
		return 0, fmt.Errorf("deleting completed tasks: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted tasks: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteTaskRepo) scanTask(row *sql.Row) (*domain.Task, error) {
	var t domain.Task
	var completed int
	var photos, createdAt, updatedAt string
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.EstimatedHours, &t.Deadline, &t.DeadlineTime,
		&t.Progress, &t.TimeSpent, &completed, &photos, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	return populateTask(&t, completed, photos, createdAt, updatedAt)
}

func (r *SQLiteTaskRepo) scanTasks(rows *sql.Rows) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		var completed int
		var photos, createdAt, updatedAt string
		err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.EstimatedHours, &t.Deadline, &t.DeadlineTime,
			&t.Progress, &t.TimeSpent, &completed, &photos, &createdAt, &updatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		task, err := populateTask(&t, completed, photos, createdAt, updatedAt)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func populateTask(t *domain.Task, completed int, photos, createdAt, updatedAt string) (*domain.Task, error) {
	var err error
	t.Completed = intToBool(completed)
	if t.Photos, err = decodeStrings(photos); err != nil {
		return nil, fmt.Errorf("task %s photos: %w", t.ID, err)
	}
	if t.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if t.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return t, nil
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s rows: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
