package gateway

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/models"
	"github.com/dmitrijs2005/taskkeeper/internal/store"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func openTestGateway(t *testing.T) *SQLiteGateway {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.db")
	g, err := Open(context.Background(), path, testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = g.Close() })
	return g
}

func TestSaveLoadRoundTrip(t *testing.T) {
	g := openTestGateway(t)
	ctx := context.Background()

	created := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	due := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)

	snap := &store.Snapshot{
		Users: []models.User{
			{ID: "u1", UserName: "alice", Email: "alice@example.com", PasswordHash: []byte("hash"),
				Settings: models.Settings{Theme: "dark"}, CreatedAt: created},
		},
		Tasks: []models.Task{
			{ID: "11111111-1111-1111-1111-111111111111", Title: "one", Priority: models.PriorityHigh,
				Status: models.StatusPending, DueDate: &due, Tags: []string{"work"},
				CreatedBy: "alice", Recurrence: models.RecurrenceWeekly, CreatedAt: created},
			{ID: "22222222-2222-2222-2222-222222222222", Title: "two", Priority: models.PriorityMedium,
				Status: models.StatusPending, CreatedBy: "alice", CreatedAt: created},
		},
		Events: []models.AssignmentEvent{
			{TaskID: "11111111-1111-1111-1111-111111111111", Assigner: "alice", Assignee: "alice", At: created},
		},
	}
	require.NoError(t, g.SaveAll(ctx, snap))

	got, err := g.LoadAll(ctx)
	require.NoError(t, err)

	require.Len(t, got.Users, 1)
	assert.Equal(t, "alice", got.Users[0].UserName)
	assert.Equal(t, "dark", got.Users[0].Settings.Theme)

	require.Len(t, got.Tasks, 2)
	assert.Equal(t, snap.Tasks[0].ID, got.Tasks[0].ID)
	assert.Equal(t, snap.Tasks[1].ID, got.Tasks[1].ID)
	require.NotNil(t, got.Tasks[0].DueDate)
	assert.Equal(t, due, *got.Tasks[0].DueDate)
	assert.Equal(t, []string{"work"}, got.Tasks[0].Tags)

	require.Len(t, got.Events, 1)
	assert.Equal(t, "alice", got.Events[0].Assigner)
}

func TestLoadAllEmptyDatabase(t *testing.T) {
	g := openTestGateway(t)

	got, err := g.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got.Users)
	assert.Empty(t, got.Tasks)
	assert.Empty(t, got.Events)
}

func TestSaveAllKeepsPreviousStateOnFailure(t *testing.T) {
	g := openTestGateway(t)
	ctx := context.Background()

	created := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	good := &store.Snapshot{
		Tasks: []models.Task{
			{ID: "t1", Title: "keep me", Priority: models.PriorityLow,
				Status: models.StatusPending, CreatedBy: "alice", CreatedAt: created},
		},
	}
	require.NoError(t, g.SaveAll(ctx, good))

	// The CHECK constraint on priority rejects the bad row, so the whole
	// save rolls back.
	bad := &store.Snapshot{
		Tasks: []models.Task{
			{ID: "t2", Title: "bad", Priority: "urgent",
				Status: models.StatusPending, CreatedBy: "alice", CreatedAt: created},
		},
	}
	err := g.SaveAll(ctx, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "previous state kept")

	got, err := g.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, "t1", got.Tasks[0].ID)
}

func TestSaveAllRollsBackTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	g := &SQLiteGateway{db: db, log: testLogger()}

	boom := errors.New("disk full")
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM users").WillReturnError(boom)
	mock.ExpectRollback()

	err = g.SaveAll(context.Background(), &store.Snapshot{})
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenReopensExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.db")
	ctx := context.Background()

	g, err := Open(ctx, path, testLogger())
	require.NoError(t, err)

	created := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, g.SaveAll(ctx, &store.Snapshot{
		Users: []models.User{{ID: "u1", UserName: "alice", Email: "a@example.com", PasswordHash: []byte("h"), CreatedAt: created}},
	}))
	require.NoError(t, g.Close())

	// Migrations are idempotent across reopens.
	g2, err := Open(ctx, path, testLogger())
	require.NoError(t, err)
	defer g2.Close()

	got, err := g2.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, got.Users, 1)
	assert.Equal(t, "alice", got.Users[0].UserName)
}
