package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexanderramin/pacer/internal/metrics"
	"github.com/alexanderramin/pacer/internal/repository"
	"github.com/alexanderramin/pacer/internal/service"
	"github.com/alexanderramin/pacer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, 6, 15, 8, 30, 0, 0, time.UTC)

type fixture struct {
	server *Server
	tasks  repository.TaskRepo
	slots  repository.ScheduleRepo
}

func setupTestServer(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	tasks := repository.NewSQLiteTaskRepo(database)
	slots := repository.NewSQLiteScheduleRepo(database)
	configs := repository.NewSQLiteNotificationConfigRepo(database)
	clock := service.WithClock(func() time.Time { return fixedNow })

	srv, err := NewServer(Services{
		Dashboard: service.NewDashboardService(tasks, slots, clock),
		Config:    service.NewConfigService(configs, clock),
	}, metrics.New().Handler(), zap.NewNop(), "127.0.0.1:0")
	require.NoError(t, err)
	return &fixture{server: srv, tasks: tasks, slots: slots}
}

func (f *fixture) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestNewServer(t *testing.T) {
	t.Run("requires dashboard service", func(t *testing.T) {
		_, err := NewServer(Services{}, nil, zap.NewNop(), "")
		assert.Error(t, err)
	})

	t.Run("requires logger", func(t *testing.T) {
		_, err := NewServer(Services{Dashboard: stubDashboard{}}, nil, nil, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "logger is required")
	})

	t.Run("omits metrics route without handler", func(t *testing.T) {
		srv, err := NewServer(Services{Dashboard: stubDashboard{}}, nil, zap.NewNop(), "")
		require.NoError(t, err)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleHealth(t *testing.T) {
	rec := setupTestServer(t).get(t, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestMetricsRoute(t *testing.T) {
	rec := setupTestServer(t).get(t, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestHandleToday(t *testing.T) {
	f := setupTestServer(t)
	ctx := context.Background()
	task := testutil.NewTestTask("Essay", testutil.WithEstimate(10), testutil.WithProgress(40, 4))
	require.NoError(t, f.tasks.Create(ctx, task))
	require.NoError(t, f.slots.Create(ctx, testutil.NewTestSlot(task.ID, "2025-06-15", 10)))
	require.NoError(t, f.slots.Create(ctx, testutil.NewTestSlot(task.ID, "2025-06-15", 9, testutil.WithRecorded())))
	require.NoError(t, f.slots.Create(ctx, testutil.NewTestSlot(task.ID, "2025-06-16", 9)))

	rec := f.get(t, "/api/v1/users/"+testutil.DefaultUserID+"/today")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp TodayResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-06-15", resp.Date)
	require.Len(t, resp.Entries, 1)
	entry := resp.Entries[0]
	assert.Equal(t, "Essay", entry.Task.Title)
	assert.Equal(t, "09:00", entry.FirstStartTime)
	require.Len(t, entry.Slots, 2)
	assert.True(t, entry.Slots[0].Recorded)
	assert.False(t, entry.AllRecorded)
	assert.Equal(t, 30, entry.TargetDelta, "60 points over two open slots")
	assert.Equal(t, entry.Slots[1].ID, entry.NextSlotID)
}

func TestHandleStatus(t *testing.T) {
	f := setupTestServer(t)
	ctx := context.Background()
	task := testutil.NewTestTask("Essay", testutil.WithEstimate(10))
	require.NoError(t, f.tasks.Create(ctx, task))

	rec := f.get(t, "/api/v1/users/"+testutil.DefaultUserID+"/status")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1.0, resp.GlobalAbility)
	assert.Equal(t, 10.0, resp.TotalRemaining)
	assert.Equal(t, []string{task.ID}, resp.UnsafeTaskIDs)
	require.Len(t, resp.Tasks, 1)
	assert.False(t, resp.Tasks[0].Safe)
}

func TestHandleStatus_EmptyUser(t *testing.T) {
	rec := setupTestServer(t).get(t, "/api/v1/users/nobody/status")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"global_ability":1,"total_remaining_hours":0,"achievement_pct":0,"unsafe_task_ids":[],"tasks":[]}`,
		rec.Body.String())
}

func TestHandleNotificationConfig_Defaults(t *testing.T) {
	rec := setupTestServer(t).get(t, "/api/v1/users/"+testutil.DefaultUserID+"/notifications")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"version":2,"deadlineLeadTimes":[24],"dailySummaryTime":"08:00","enableSlotReminders":true}`,
		rec.Body.String())
}

type stubDashboard struct{ err error }

func (s stubDashboard) Today(context.Context, string) (*service.TodayView, error) {
	return &service.TodayView{}, s.err
}

func (s stubDashboard) Status(context.Context, string) (*service.StatusView, error) {
	return &service.StatusView{}, s.err
}

func TestHandler_ServiceErrorIs500(t *testing.T) {
	srv, err := NewServer(Services{Dashboard: stubDashboard{err: errors.New("db gone")}}, nil, zap.NewNop(), "")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/users/u1/status", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
