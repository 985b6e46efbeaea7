package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/models"
)

// FlatRecord is the tabular form of a task crossing the export/import
// boundary: every field as a string, tags comma-joined, calendar dates in
// YYYY-MM-DD, timestamps in RFC 3339, ids in the 36-character canonical form.
type FlatRecord struct {
	ID          string
	Title       string
	Description string
	DueDate     string
	Priority    string
	Status      string
	Tags        string
	CreatedBy   string
	AssignedTo  string
	Recurrence  string
	CreatedAt   string
	CompletedAt string
}

// ExportRecords flattens every task, ordered by creation.
func (s *Store) ExportRecords() []FlatRecord {
	records := make([]FlatRecord, 0, len(s.order))
	for _, id := range s.order {
		records = append(records, flatten(s.tasks[id]))
	}
	return records
}

func flatten(t *models.Task) FlatRecord {
	r := FlatRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		Tags:        strings.Join(t.Tags, ","),
		CreatedBy:   t.CreatedBy,
		AssignedTo:  t.AssignedTo,
		Recurrence:  string(t.Recurrence),
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if t.DueDate != nil {
		r.DueDate = t.DueDate.Format(models.DateLayout)
	}
	if t.CompletedAt != nil {
		r.CompletedAt = t.CompletedAt.UTC().Format(time.RFC3339Nano)
	}
	return r
}

// RowError ties an import failure to the (zero-based) record that caused it.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string { return fmt.Sprintf("record %d: %v", e.Row, e.Err) }
func (e RowError) Unwrap() error { return e.Err }

// ImportRecords re-validates and inserts each record under the same rules as
// CreateTask. Failures are collected per row instead of aborting the batch;
// valid rows are inserted regardless of invalid neighbours. Ids present in a
// record are preserved, so an export loaded into an empty store reproduces
// the original task set field for field.
func (s *Store) ImportRecords(records []FlatRecord) []RowError {
	var errs []RowError
	for i, r := range records {
		if err := s.importRecord(r); err != nil {
			errs = append(errs, RowError{Row: i, Err: err})
		}
	}
	return errs
}

func (s *Store) importRecord(r FlatRecord) error {
	draft := TaskDraft{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Priority:    models.Priority(r.Priority),
		Recurrence:  models.Recurrence(r.Recurrence),
		CreatedBy:   r.CreatedBy,
		AssignedTo:  r.AssignedTo,
	}
	if r.Tags != "" {
		draft.Tags = strings.Split(r.Tags, ",")
	}
	if r.DueDate != "" {
		due, err := time.ParseInLocation(models.DateLayout, r.DueDate, time.UTC)
		if err != nil {
			return fmt.Errorf("invalid due date %q: %w", r.DueDate, common.ErrorValidation)
		}
		draft.DueDate = &due
	}

	status := models.Status(r.Status)
	if r.Status == "" {
		status = models.StatusPending
	}
	if !status.Valid() {
		return fmt.Errorf("invalid status %q: %w", r.Status, common.ErrorValidation)
	}
	if (status == models.StatusCompleted) != (r.CompletedAt != "") {
		return fmt.Errorf("completed_at must be set exactly for completed tasks: %w", common.ErrorValidation)
	}

	now := s.clock.Now()
	createdAt := now
	if r.CreatedAt != "" {
		ts, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
		if err != nil {
			return fmt.Errorf("invalid created_at %q: %w", r.CreatedAt, common.ErrorValidation)
		}
		createdAt = ts
	}
	var completedAt *time.Time
	if r.CompletedAt != "" {
		ts, err := time.Parse(time.RFC3339Nano, r.CompletedAt)
		if err != nil {
			return fmt.Errorf("invalid completed_at %q: %w", r.CompletedAt, common.ErrorValidation)
		}
		completedAt = &ts
	}

	t, err := s.buildTask(draft, createdAt)
	if err != nil {
		return err
	}
	t.Status = status
	t.CompletedAt = completedAt
	s.insertTask(t)
	return nil
}
