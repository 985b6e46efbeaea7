// Package models defines the domain entities of the task store.
package models

import (
	"strings"
	"time"
)

// DateLayout is the canonical rendering of calendar dates everywhere a date
// crosses a boundary (CLI input, export records, the database).
const DateLayout = "2006-01-02"

// TaskIDLength is the length of the canonical string form of a task id
// (uuid, 36 characters).
const TaskIDLength = 36

// Priority is the severity of a task.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities lists all priorities in ascending severity order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

var priorityRanks = map[Priority]int{
	PriorityLow:      0,
	PriorityMedium:   1,
	PriorityHigh:     2,
	PriorityCritical: 3,
}

func (p Priority) Valid() bool {
	_, ok := priorityRanks[p]
	return ok
}

// Rank returns the severity rank used for sorting (low < medium < high < critical).
func (p Priority) Rank() int { return priorityRanks[p] }

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Statuses lists all task statuses.
var Statuses = []Status{StatusPending, StatusCompleted}

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusCompleted
}

// Recurrence is the repeat interval of a recurring task. The zero value
// means the task does not recur.
type Recurrence string

const (
	RecurrenceNone    Recurrence = ""
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
)

func (r Recurrence) Valid() bool {
	switch r {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly:
		return true
	}
	return false
}

// Task is one row in the task store. A recurring lineage spans multiple
// instances that share static fields but not ids.
type Task struct {
	// ID is the 128-bit unique identifier in its 36-character canonical form.
	ID string

	Title       string
	Description string

	// DueDate is an optional calendar date (midnight UTC, no time component).
	DueDate *time.Time

	Priority Priority
	Status   Status

	// Tags is an unordered set of labels; insertion order is not significant.
	Tags []string

	// CreatedBy is the username of the owner; always set.
	CreatedBy string
	// AssignedTo is the username of the current assignee; "" means unassigned.
	AssignedTo string

	Recurrence Recurrence

	CreatedAt time.Time
	// CompletedAt is set exactly when Status transitions to completed.
	CompletedAt *time.Time
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.CompletedAt != nil {
		d := *t.CompletedAt
		c.CompletedAt = &d
	}
	if t.Tags != nil {
		c.Tags = append([]string(nil), t.Tags...)
	}
	return &c
}

// HasTag reports whether the task carries the given tag (case-insensitive).
func (t *Task) HasTag(tag string) bool {
	for _, have := range t.Tags {
		if strings.EqualFold(have, tag) {
			return true
		}
	}
	return false
}

// Overdue reports whether the task is pending with a due date strictly
// before now.
func (t *Task) Overdue(now time.Time) bool {
	return t.Status == StatusPending && t.DueDate != nil && t.DueDate.Before(DateOnly(now))
}

// DateOnly truncates t to midnight UTC, the canonical form of a due date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
