package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/pacer/internal/db"
	"github.com/alexanderramin/pacer/internal/domain"
	"github.com/alexanderramin/pacer/internal/repository"
	"github.com/alexanderramin/pacer/internal/testutil"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC)

func fixedClock() Clock {
	return func() time.Time { return fixedNow }
}

// changeLog records every ChangeNotifier call.
type changeLog struct {
	mu    sync.Mutex
	users []string
}

func (c *changeLog) Changed(_ context.Context, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = append(c.users, userID)
}

func (c *changeLog) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.users)
}

type fixture struct {
	db      *sql.DB
	uow     db.UnitOfWork
	tasks   *repository.SQLiteTaskRepo
	slots   *repository.SQLiteScheduleRepo
	configs *repository.SQLiteNotificationConfigRepo
	changes *changeLog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &fixture{
		db:      database,
		uow:     testutil.NewTestUoW(database),
		tasks:   repository.NewSQLiteTaskRepo(database),
		slots:   repository.NewSQLiteScheduleRepo(database),
		configs: repository.NewSQLiteNotificationConfigRepo(database),
		changes: &changeLog{},
	}
}

func (f *fixture) opts() []Option {
	return []Option{WithClock(fixedClock()), WithChangeNotifier(f.changes)}
}

func (f *fixture) seedTask(t *testing.T, title string, opts ...testutil.TaskOption) *domain.Task {
	t.Helper()
	task := testutil.NewTestTask(title, opts...)
	require.NoError(t, f.tasks.Create(context.Background(), task))
	return task
}

func (f *fixture) seedSlots(t *testing.T, taskID, date string, hours ...int) []*domain.ScheduleSlot {
	t.Helper()
	var out []*domain.ScheduleSlot
	for _, h := range hours {
		s := testutil.NewTestSlot(taskID, date, h)
		require.NoError(t, f.slots.Create(context.Background(), s))
		out = append(out, s)
	}
	return out
}
