package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/models"
)

// TaskDraft is the input to CreateTask. ID is normally left empty and
// generated; the import path supplies it to preserve exported ids.
type TaskDraft struct {
	ID          string
	Title       string
	Description string
	DueDate     *time.Time
	Priority    models.Priority // defaults to medium when empty
	Tags        []string
	Recurrence  models.Recurrence
	CreatedBy   string
	AssignedTo  string
}

// TaskPatch is a partial update; nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Priority    *models.Priority
	Status      *models.Status
	Tags        []string // nil = unchanged, empty slice clears
	Recurrence  *models.Recurrence
}

// CreateTask validates the draft and stores a new pending task, returning
// its id.
func (s *Store) CreateTask(d TaskDraft) (string, error) {
	now := s.clock.Now()

	t, err := s.buildTask(d, now)
	if err != nil {
		return "", err
	}
	s.insertTask(t)
	return t.ID, nil
}

// buildTask turns a validated draft into a task entity. It performs the full
// creation-time validation shared by CreateTask and the import path.
func (s *Store) buildTask(d TaskDraft, now time.Time) (*models.Task, error) {
	if strings.TrimSpace(d.Title) == "" {
		return nil, fmt.Errorf("title must not be empty: %w", common.ErrorValidation)
	}

	prio := d.Priority
	if prio == "" {
		prio = models.PriorityMedium
	}
	if !prio.Valid() {
		return nil, fmt.Errorf("invalid priority %q: %w", d.Priority, common.ErrorValidation)
	}

	if !d.Recurrence.Valid() {
		return nil, fmt.Errorf("invalid recurrence %q: %w", d.Recurrence, common.ErrorValidation)
	}
	if d.Recurrence != models.RecurrenceNone && d.DueDate == nil {
		return nil, fmt.Errorf("recurrence requires a due date: %w", common.ErrorValidation)
	}

	if d.CreatedBy == "" {
		return nil, fmt.Errorf("created_by is required: %w", common.ErrorValidation)
	}
	if _, ok := s.users[d.CreatedBy]; !ok {
		return nil, fmt.Errorf("created_by: unknown user %q: %w", d.CreatedBy, common.ErrorValidation)
	}
	if d.AssignedTo != "" {
		if _, ok := s.users[d.AssignedTo]; !ok {
			return nil, fmt.Errorf("assigned_to: unknown user %q: %w", d.AssignedTo, common.ErrorValidation)
		}
	}

	id := d.ID
	if id == "" {
		id = uuid.NewString()
	} else {
		if len(id) != models.TaskIDLength {
			return nil, fmt.Errorf("task id must be the %d-character canonical form: %w", models.TaskIDLength, common.ErrorValidation)
		}
		if _, err := uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("malformed task id %q: %w", id, common.ErrorValidation)
		}
		if _, used := s.usedIDs[id]; used {
			return nil, fmt.Errorf("task id %q: %w", id, common.ErrorConflict)
		}
	}

	var due *time.Time
	if d.DueDate != nil {
		dd := models.DateOnly(*d.DueDate)
		due = &dd
	}

	return &models.Task{
		ID:          id,
		Title:       strings.TrimSpace(d.Title),
		Description: d.Description,
		DueDate:     due,
		Priority:    prio,
		Status:      models.StatusPending,
		Tags:        normalizeTags(d.Tags),
		CreatedBy:   d.CreatedBy,
		AssignedTo:  d.AssignedTo,
		Recurrence:  d.Recurrence,
		CreatedAt:   now,
	}, nil
}

func (s *Store) insertTask(t *models.Task) {
	s.tasks[t.ID] = t
	s.order = append(s.order, t.ID)
	s.usedIDs[t.ID] = struct{}{}
}

// normalizeTags trims whitespace and drops empty and duplicate tags while
// keeping first-seen order.
func normalizeTags(tags []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// GetTask returns a copy of the task with the given id.
func (s *Store) GetTask(id string) (*models.Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, common.ErrorNotFound)
	}
	return t.Clone(), nil
}

// UpdateTask applies the patch to an existing task, re-validating every
// changed field under the creation rules. A transition to completed stamps
// CompletedAt and hands the task to the recurrence engine; the returned task
// is the updated original, not the successor.
func (s *Store) UpdateTask(id string, p TaskPatch) (*models.Task, error) {
	t, ok := s.tasks[id]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", id, common.ErrorNotFound)
	}

	now := s.clock.Now()

	// Validate against a working copy so a failed patch leaves the task
	// untouched.
	next := t.Clone()

	if p.Title != nil {
		if strings.TrimSpace(*p.Title) == "" {
			return nil, fmt.Errorf("title must not be empty: %w", common.ErrorValidation)
		}
		next.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		next.Description = *p.Description
	}
	if p.DueDate != nil {
		dd := models.DateOnly(*p.DueDate)
		next.DueDate = &dd
	}
	if p.Priority != nil {
		if !p.Priority.Valid() {
			return nil, fmt.Errorf("invalid priority %q: %w", *p.Priority, common.ErrorValidation)
		}
		next.Priority = *p.Priority
	}
	if p.Tags != nil {
		next.Tags = normalizeTags(p.Tags)
	}
	if p.Recurrence != nil {
		if !p.Recurrence.Valid() {
			return nil, fmt.Errorf("invalid recurrence %q: %w", *p.Recurrence, common.ErrorValidation)
		}
		next.Recurrence = *p.Recurrence
	}
	if next.Recurrence != models.RecurrenceNone && next.DueDate == nil {
		return nil, fmt.Errorf("recurrence requires a due date: %w", common.ErrorValidation)
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return nil, fmt.Errorf("invalid status %q: %w", *p.Status, common.ErrorValidation)
		}
		next.Status = *p.Status
	}

	completing := t.Status == models.StatusPending && next.Status == models.StatusCompleted
	reopening := t.Status == models.StatusCompleted && next.Status == models.StatusPending

	if completing {
		next.CompletedAt = &now
	}
	if reopening {
		next.CompletedAt = nil
	}

	*t = *next

	if completing && t.Recurrence != models.RecurrenceNone {
		if _, err := s.materializeSuccessor(t, now); err != nil {
			// The completion itself stands; the failed rollover is surfaced.
			return t.Clone(), err
		}
	}

	return t.Clone(), nil
}

// DeleteTask removes the task permanently. Its id is never reissued.
func (s *Store) DeleteTask(id string) error {
	if _, ok := s.tasks[id]; !ok {
		return fmt.Errorf("task %s: %w", id, common.ErrorNotFound)
	}
	delete(s.tasks, id)
	for i, tid := range s.order {
		if tid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// AssignTask hands the task to assignee, recording the hand-off in the
// append-only assignment log. The configured policy decides whether the
// assigner is permitted to act.
func (s *Store) AssignTask(id, assigner, assignee string) error {
	t, ok := s.tasks[id]
	if !ok {
		return fmt.Errorf("task %s: %w", id, common.ErrorNotFound)
	}
	actor, ok := s.users[assigner]
	if !ok {
		return fmt.Errorf("assigner %q: %w", assigner, common.ErrorNotFound)
	}
	if _, ok := s.users[assignee]; !ok {
		return fmt.Errorf("assignee %q: %w", assignee, common.ErrorNotFound)
	}
	if !s.policy.CanAssign(actor, t) {
		return fmt.Errorf("user %q may not assign task %s: %w", assigner, id, common.ErrorNotPermitted)
	}

	now := s.clock.Now()
	t.AssignedTo = assignee
	s.events = append(s.events, models.AssignmentEvent{
		TaskID:   id,
		Assigner: assigner,
		Assignee: assignee,
		At:       now,
	})
	return nil
}
