package events

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/taskkeeper/internal/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE assignment_events (
  seq INTEGER NOT NULL,
  task_id TEXT NOT NULL,
  assigner TEXT NOT NULL,
  assignee TEXT NOT NULL,
  at TEXT NOT NULL
);
`)
	require.NoError(t, err)

	return db
}

func TestReplaceAllAndGetAllKeepsAppendOrder(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	at := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	in := []models.AssignmentEvent{
		{TaskID: "t1", Assigner: "alice", Assignee: "bob", At: at},
		{TaskID: "t1", Assigner: "alice", Assignee: "carol", At: at},
		{TaskID: "t2", Assigner: "bob", Assignee: "alice", At: at},
	}
	require.NoError(t, r.ReplaceAll(ctx, in))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := range in {
		assert.Equal(t, in[i].TaskID, got[i].TaskID)
		assert.Equal(t, in[i].Assigner, got[i].Assigner)
		assert.Equal(t, in[i].Assignee, got[i].Assignee)
		assert.True(t, got[i].At.Equal(at))
	}
}

func TestReplaceAllClearsPreviousRows(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	at := time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	require.NoError(t, r.ReplaceAll(ctx, []models.AssignmentEvent{
		{TaskID: "old", Assigner: "a", Assignee: "b", At: at},
	}))
	require.NoError(t, r.ReplaceAll(ctx, []models.AssignmentEvent{
		{TaskID: "new", Assigner: "a", Assignee: "b", At: at},
	}))

	got, err := r.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].TaskID)
}
