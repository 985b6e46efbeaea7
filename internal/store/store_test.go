package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/taskkeeper/internal/clock"
	"github.com/dmitrijs2005/taskkeeper/internal/models"
)

// plainHasher avoids bcrypt cost in tests.
type plainHasher struct{}

func (plainHasher) Hash(password []byte) ([]byte, error) { return append([]byte("h:"), password...), nil }
func (plainHasher) Verify(hash, password []byte) bool {
	return string(hash) == "h:"+string(password)
}

func newTestStore(now time.Time) *Store {
	return New(clock.Fixed(now), plainHasher{}, CreatorOnlyPolicy{})
}

func mustRegister(t *testing.T, s *Store, username string) {
	t.Helper()
	_, err := s.RegisterUser(username, username+"@example.com", "password123")
	require.NoError(t, err)
}

func mustCreate(t *testing.T, s *Store, d TaskDraft) string {
	t.Helper()
	id, err := s.CreateTask(d)
	require.NoError(t, err)
	return id
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSnapshotRoundTrip(t *testing.T) {
	now := date(2024, time.March, 15)
	s := newTestStore(now)
	mustRegister(t, s, "alice")
	mustRegister(t, s, "bob")

	due := date(2024, time.March, 20)
	id1 := mustCreate(t, s, TaskDraft{Title: "first", CreatedBy: "alice", DueDate: &due, Tags: []string{"work"}})
	id2 := mustCreate(t, s, TaskDraft{Title: "second", CreatedBy: "bob", Priority: models.PriorityHigh})

	require.NoError(t, s.AssignTask(id1, "alice", "bob"))

	snap := s.Snapshot()
	restored := FromSnapshot(snap, clock.Fixed(now), plainHasher{}, CreatorOnlyPolicy{})

	// Users survive with their credentials.
	_, err := restored.Authenticate("alice", "password123")
	require.NoError(t, err)

	// Creation order is preserved.
	got := restored.Query(Filter{}, Sort{})
	require.Len(t, got, 2)
	require.Equal(t, id1, got[0].ID)
	require.Equal(t, id2, got[1].ID)
	require.Equal(t, "bob", got[0].AssignedTo)
	require.Equal(t, []string{"work"}, got[0].Tags)

	// Assignment log survives.
	require.Len(t, restored.Events(), 1)
	require.Equal(t, id1, restored.Events()[0].TaskID)
}

func TestSnapshotSharesNothing(t *testing.T) {
	now := date(2024, time.March, 15)
	s := newTestStore(now)
	mustRegister(t, s, "alice")
	id := mustCreate(t, s, TaskDraft{Title: "task", CreatedBy: "alice", Tags: []string{"one"}})

	snap := s.Snapshot()
	snap.Tasks[0].Title = "mutated"
	snap.Tasks[0].Tags[0] = "mutated"

	got, err := s.GetTask(id)
	require.NoError(t, err)
	require.Equal(t, "task", got.Title)
	require.Equal(t, []string{"one"}, got.Tags)
}
