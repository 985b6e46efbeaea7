package models

import "time"

// AssignmentEvent records one task hand-off for workload/audit purposes.
// The event log is append-only: entries are never mutated or reordered.
type AssignmentEvent struct {
	TaskID   string
	Assigner string
	Assignee string
	At       time.Time
}
