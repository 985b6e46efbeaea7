package cli

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/models"
	"github.com/dmitrijs2005/taskkeeper/internal/store"
)

func parseDueDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := time.ParseInLocation(models.DateLayout, value, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid date format %q, use YYYY-MM-DD", value)
	}
	return &d, nil
}

func checkTaskID(id string) error {
	if len(id) != models.TaskIDLength {
		return fmt.Errorf("invalid task id format (expected the full %d-character id)", models.TaskIDLength)
	}
	return nil
}

// Add creates a task: add [flags] <title>. When -created-by is omitted the
// session user is used.
func (a *App) Add(ctx context.Context, args []string) error {
	title, rest := popPositional(args)

	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	description := fs.String("description", "", "task description")
	dueDate := fs.String("due-date", "", "due date (YYYY-MM-DD)")
	priority := fs.String("priority", "", "low, medium, high or critical")
	recurrence := fs.String("recurrence", "", "daily, weekly or monthly")
	createdBy := fs.String("created-by", "", "task owner username")
	assignTo := fs.String("assign-to", "", "assignee username")
	var tags stringsFlag
	fs.Var(&tags, "tag", "tag (repeatable)")
	if err := fs.Parse(rest); err != nil {
		return err
	}
	if title == "" {
		title, _ = popPositional(fs.Args())
	}
	if title == "" {
		return fmt.Errorf("usage: add [flags] <title>")
	}

	due, err := parseDueDate(*dueDate)
	if err != nil {
		return err
	}

	owner := a.sessionOr(*createdBy)
	if owner == "" {
		return fmt.Errorf("no -created-by given and not logged in")
	}

	var id string
	err = a.withStore(ctx, true, func(s *store.Store) error {
		var err error
		id, err = s.CreateTask(store.TaskDraft{
			Title:       title,
			Description: *description,
			DueDate:     due,
			Priority:    models.Priority(*priority),
			Tags:        tags,
			Recurrence:  models.Recurrence(*recurrence),
			CreatedBy:   owner,
			AssignedTo:  *assignTo,
		})
		return err
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Task created [ID: %s]\n", id)
	return nil
}

// Update patches a task: update [flags] <task-id>. Only flags that were
// given are applied.
func (a *App) Update(ctx context.Context, args []string) error {
	id, rest := popPositional(args)

	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	title := fs.String("title", "", "new title")
	description := fs.String("description", "", "new description")
	dueDate := fs.String("due-date", "", "new due date (YYYY-MM-DD)")
	priority := fs.String("priority", "", "low, medium, high or critical")
	status := fs.String("status", "", "pending or completed")
	recurrence := fs.String("recurrence", "", "daily, weekly or monthly")
	var tags stringsFlag
	fs.Var(&tags, "tag", "tag (repeatable, replaces the tag set)")
	if err := fs.Parse(rest); err != nil {
		return err
	}
	if id == "" {
		id, _ = popPositional(fs.Args())
	}
	if err := checkTaskID(id); err != nil {
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if len(set) == 0 {
		return fmt.Errorf("no updates provided")
	}

	var patch store.TaskPatch
	if set["title"] {
		patch.Title = title
	}
	if set["description"] {
		patch.Description = description
	}
	if set["due-date"] {
		due, err := parseDueDate(*dueDate)
		if err != nil {
			return err
		}
		patch.DueDate = due
	}
	if set["priority"] {
		p := models.Priority(*priority)
		patch.Priority = &p
	}
	if set["status"] {
		st := models.Status(*status)
		patch.Status = &st
	}
	if set["recurrence"] {
		r := models.Recurrence(*recurrence)
		patch.Recurrence = &r
	}
	if set["tag"] {
		patch.Tags = tags
	}

	err := a.withStore(ctx, true, func(s *store.Store) error {
		_, err := s.UpdateTask(id, patch)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Task %s updated\n", id)
	return nil
}

// Complete marks a task completed: complete <task-id>. For a recurring task
// the store materializes the next occurrence as part of the same operation.
func (a *App) Complete(ctx context.Context, args []string) error {
	id, _ := popPositional(args)
	if err := checkTaskID(id); err != nil {
		return err
	}

	completed := models.StatusCompleted
	err := a.withStore(ctx, true, func(s *store.Store) error {
		_, err := s.UpdateTask(id, store.TaskPatch{Status: &completed})
		return err
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Task %s completed\n", id)
	return nil
}

// Delete removes a task permanently: delete <task-id>.
func (a *App) Delete(ctx context.Context, args []string) error {
	id, _ := popPositional(args)
	if err := checkTaskID(id); err != nil {
		return err
	}

	err := a.withStore(ctx, true, func(s *store.Store) error {
		return s.DeleteTask(id)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Task %s deleted\n", id)
	return nil
}

// Assign hands a task to another user: assign <task-id> <assigner> <assignee>.
func (a *App) Assign(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: assign <task-id> <assigner> <assignee>")
	}
	id, assigner, assignee := args[0], args[1], args[2]
	if err := checkTaskID(id); err != nil {
		return err
	}

	err := a.withStore(ctx, true, func(s *store.Store) error {
		return s.AssignTask(id, assigner, assignee)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Task %s assigned to %s\n", id, assignee)
	return nil
}
