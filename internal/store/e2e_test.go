package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/taskkeeper/internal/models"
)

func TestShipReportLifecycle(t *testing.T) {
	now := date(2024, time.December, 1)
	s := newTestStore(now)

	_, err := s.RegisterUser("alice", "alice@x.com", "password1")
	require.NoError(t, err)

	due := date(2024, time.December, 31)
	id, err := s.CreateTask(TaskDraft{
		Title:     "Ship report",
		DueDate:   &due,
		Priority:  models.PriorityHigh,
		CreatedBy: "alice",
	})
	require.NoError(t, err)

	got := s.Query(Filter{Priority: models.PriorityHigh}, Sort{})
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, "Ship report", got[0].Title)

	completed := models.StatusCompleted
	task, err := s.UpdateTask(id, TaskPatch{Status: &completed})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, task.Status)
	require.NotNil(t, task.CompletedAt)

	// No recurrence, so completing produced no second task.
	assert.Len(t, s.Query(Filter{}, Sort{}), 1)
}

func TestWeeklyLineageRollover(t *testing.T) {
	now := date(2024, time.January, 1)
	s := newTestStore(now)

	_, err := s.RegisterUser("alice", "alice@x.com", "password1")
	require.NoError(t, err)

	due := date(2024, time.January, 1)
	id, err := s.CreateTask(TaskDraft{
		Title:      "standup notes",
		DueDate:    &due,
		Recurrence: models.RecurrenceWeekly,
		CreatedBy:  "alice",
	})
	require.NoError(t, err)

	completed := models.StatusCompleted
	_, err = s.UpdateTask(id, TaskPatch{Status: &completed})
	require.NoError(t, err)

	all := s.Query(Filter{}, Sort{})
	require.Len(t, all, 2)
	assert.Equal(t, id, all[0].ID)
	assert.Equal(t, models.StatusCompleted, all[0].Status)

	succ := all[1]
	assert.NotEqual(t, id, succ.ID)
	assert.Equal(t, models.StatusPending, succ.Status)
	require.NotNil(t, succ.DueDate)
	assert.Equal(t, date(2024, time.January, 8), *succ.DueDate)
}
