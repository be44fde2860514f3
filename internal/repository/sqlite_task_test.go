package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/pacer/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskRepo_CreateAndGetByID(t *testing.T) {
	repo := NewSQLiteTaskRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	task := testutil.NewTestTask("Thesis",
		testutil.WithEstimate(12.5),
		testutil.WithDeadline("2025-07-01", "17:30"),
		testutil.WithProgress(40, 3.5),
		testutil.WithPhotos("photos/a.jpg", "photos/b.jpg"),
	)
	require.NoError(t, repo.Create(ctx, task))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Title, got.Title)
	assert.Equal(t, testutil.DefaultUserID, got.UserID)
	assert.Equal(t, 12.5, got.EstimatedHours)
	assert.Equal(t, "2025-07-01", got.Deadline)
	assert.Equal(t, "17:30", got.DeadlineTime)
	assert.Equal(t, 40, got.Progress)
	assert.Equal(t, 3.5, got.TimeSpent)
	assert.False(t, got.Completed)
	assert.Equal(t, []string{"photos/a.jpg", "photos/b.jpg"}, got.Photos)
	assert.True(t, task.CreatedAt.Equal(got.CreatedAt))
}

func TestTaskRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteTaskRepo(testutil.NewTestDB(t))
	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskRepo_ListByUser(t *testing.T) {
	repo := NewSQLiteTaskRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	late := testutil.NewTestTask("Late", testutil.WithDeadline("2025-07-10", ""))
	early := testutil.NewTestTask("Early", testutil.WithDeadline("2025-07-01", ""))
	timed := testutil.NewTestTask("Timed", testutil.WithDeadline("2025-07-01", "09:00"))
	done := testutil.NewTestTask("Done", testutil.WithProgress(100, 5))
	other := testutil.NewTestTask("Other", testutil.WithTaskUser("someone-else"))
	require.NoError(t, repo.Create(ctx, late))
	require.NoError(t, repo.Create(ctx, early))
	require.NoError(t, repo.Create(ctx, timed))
	require.NoError(t, repo.Create(ctx, done))
	require.NoError(t, repo.Create(ctx, other))

	open, err := repo.ListByUser(ctx, testutil.DefaultUserID, false)
	require.NoError(t, err)
	require.Len(t, open, 3)
	assert.Equal(t, "Timed", open[0].Title)
	assert.Equal(t, "Early", open[1].Title)
	assert.Equal(t, "Late", open[2].Title)

	all, err := repo.ListByUser(ctx, testutil.DefaultUserID, true)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestTaskRepo_Update(t *testing.T) {
	repo := NewSQLiteTaskRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	task := testutil.NewTestTask("Draft")
	require.NoError(t, repo.Create(ctx, task))

	task.SetProgress(100, 8, task.UpdatedAt)
	task.AddPhoto("photos/final.png", task.UpdatedAt)
	require.NoError(t, repo.Update(ctx, task))

	got, err := repo.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, got.Progress)
	assert.True(t, got.Completed)
	assert.Equal(t, []string{"photos/final.png"}, got.Photos)
}

func TestTaskRepo_Update_NotFound(t *testing.T) {
	repo := NewSQLiteTaskRepo(testutil.NewTestDB(t))
	err := repo.Update(context.Background(), testutil.NewTestTask("Ghost"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTaskRepo_DeleteCascadesSlots(t *testing.T) {
	database := testutil.NewTestDB(t)
	tasks := NewSQLiteTaskRepo(database)
	slots := NewSQLiteScheduleRepo(database)
	ctx := context.Background()

	task := testutil.NewTestTask("Cascade")
	require.NoError(t, tasks.Create(ctx, task))
	require.NoError(t, slots.Create(ctx, testutil.NewTestSlot(task.ID, "2025-06-15", 9)))
	require.NoError(t, slots.Create(ctx, testutil.NewTestSlot(task.ID, "2025-06-16", 9)))

	require.NoError(t, tasks.Delete(ctx, task.ID))

	remaining, err := slots.ListByTask(ctx, task.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	assert.ErrorIs(t, tasks.Delete(ctx, task.ID), ErrNotFound)
}

func TestTaskRepo_DeleteCompleted(t *testing.T) {
	repo := NewSQLiteTaskRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestTask("Open")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTask("Done 1", testutil.WithProgress(100, 2))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTask("Done 2", testutil.WithProgress(100, 3))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestTask("Foreign", testutil.WithTaskUser("u2"), testutil.WithProgress(100, 1))))

	n, err := repo.DeleteCompleted(ctx, testutil.DefaultUserID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err := repo.ListByUser(ctx, testutil.DefaultUserID, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Open", all[0].Title)
}
