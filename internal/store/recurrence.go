package store

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/models"
)

// nextOccurrence advances a due date by one recurrence period.
func nextOccurrence(due time.Time, r models.Recurrence) time.Time {
	switch r {
	case models.RecurrenceDaily:
		return due.AddDate(0, 0, 1)
	case models.RecurrenceWeekly:
		return due.AddDate(0, 0, 7)
	case models.RecurrenceMonthly:
		return addMonthClamped(due)
	}
	return due
}

// addMonthClamped moves to the same day of the next month, clamped to the
// last valid day when the target month is shorter: Jan 31 becomes Feb 28
// (Feb 29 in a leap year), never Mar 3.
func addMonthClamped(t time.Time) time.Time {
	y, m, d := t.Date()
	firstOfNext := time.Date(y, m+1, 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfNext.AddDate(0, 1, -1).Day()
	if d > lastDay {
		d = lastDay
	}
	return time.Date(firstOfNext.Year(), firstOfNext.Month(), d, 0, 0, 0, 0, t.Location())
}

// nextDueAfter applies the single-jump catch-up policy: the due date is
// advanced period by period until it is not before today, so a long-overdue
// task yields one future occurrence instead of a backlog of missed periods.
func nextDueAfter(due time.Time, r models.Recurrence, today time.Time) time.Time {
	next := nextOccurrence(due, r)
	for next.Before(today) {
		next = nextOccurrence(next, r)
	}
	return next
}

// materializeSuccessor creates the next instance of a completed recurring
// task: same title, description, priority, tags, creator, assignee and
// recurrence, a fresh id, pending status, and the rolled-forward due date.
// The completed parent is left untouched as history.
func (s *Store) materializeSuccessor(parent *models.Task, now time.Time) (string, error) {
	if parent.DueDate == nil {
		return "", fmt.Errorf("task %s has no due date to roll forward from: %w", parent.ID, common.ErrorRecurrence)
	}
	due := nextDueAfter(*parent.DueDate, parent.Recurrence, models.DateOnly(now))

	succ, err := s.buildTask(TaskDraft{
		Title:       parent.Title,
		Description: parent.Description,
		DueDate:     &due,
		Priority:    parent.Priority,
		Tags:        parent.Tags,
		Recurrence:  parent.Recurrence,
		CreatedBy:   parent.CreatedBy,
		AssignedTo:  parent.AssignedTo,
	}, now)
	if err != nil {
		return "", fmt.Errorf("task %s: %v: %w", parent.ID, err, common.ErrorRecurrence)
	}
	s.insertTask(succ)
	return succ.ID, nil
}

// RollForward sweeps pending recurring tasks whose due date has passed and
// moves each one's due date to its next occurrence on or after today. This
// backs the periodic "process recurring" job; unlike completion it advances
// the same instance instead of materializing a successor. Returns the number
// of tasks rolled forward.
func (s *Store) RollForward() int {
	now := s.clock.Now()
	today := models.DateOnly(now)

	rolled := 0
	for _, id := range s.order {
		t := s.tasks[id]
		if t.Recurrence == models.RecurrenceNone || !t.Overdue(now) {
			continue
		}
		due := nextDueAfter(*t.DueDate, t.Recurrence, today)
		t.DueDate = &due
		rolled++
	}
	return rolled
}
