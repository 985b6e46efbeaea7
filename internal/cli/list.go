package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/models"
	"github.com/dmitrijs2005/taskkeeper/internal/store"
)

// List prints tasks matching the given filters. All filters are combined
// with AND; -tag may repeat and matches tasks carrying any of the tags.
func (a *App) List(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	username := fs.String("user", "", "tasks created by or assigned to a user")
	priority := fs.String("priority", "", "low, medium, high or critical")
	status := fs.String("status", "", "pending or completed")
	overdue := fs.Bool("overdue", false, "only pending tasks past their due date")
	search := fs.String("search", "", "substring match on title and description")
	sortKey := fs.String("sort", "", "due_date, priority or created_at")
	reverse := fs.Bool("reverse", false, "reverse the sort order")
	var tags stringsFlag
	fs.Var(&tags, "tag", "tag filter (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	key := store.SortKey(*sortKey)
	if key != "" && !key.Valid() {
		return fmt.Errorf("invalid sort key %q", *sortKey)
	}

	return a.withStore(ctx, false, func(s *store.Store) error {
		tasks := s.Query(store.Filter{
			Username: *username,
			Priority: models.Priority(*priority),
			Status:   models.Status(*status),
			Overdue:  *overdue,
			Tags:     tags,
			Search:   *search,
		}, store.Sort{Key: key, Reverse: *reverse})

		if len(tasks) == 0 {
			fmt.Fprintln(a.out, "No tasks found")
			return nil
		}

		layout := a.dateFormatFor(s, a.sessionOr(*username))
		for i := range tasks {
			a.printTask(&tasks[i], layout)
		}
		fmt.Fprintf(a.out, "%d task(s)\n", len(tasks))
		return nil
	})
}

func (a *App) printTask(t *models.Task, dateLayout string) {
	fmt.Fprintf(a.out, "[%s] %s\n", t.ID, t.Title)
	if t.Description != "" {
		fmt.Fprintf(a.out, "    %s\n", t.Description)
	}
	fmt.Fprintf(a.out, "    priority: %s  status: %s", t.Priority, t.Status)
	if t.DueDate != nil {
		fmt.Fprintf(a.out, "  due: %s", t.DueDate.Format(dateLayout))
	}
	fmt.Fprintln(a.out)
	if len(t.Tags) > 0 {
		fmt.Fprintf(a.out, "    tags: %s\n", strings.Join(t.Tags, ", "))
	}
	line := fmt.Sprintf("    created by %s", t.CreatedBy)
	if t.AssignedTo != "" {
		line += fmt.Sprintf(", assigned to %s", t.AssignedTo)
	}
	if t.Recurrence != "" {
		line += fmt.Sprintf(", repeats %s", t.Recurrence)
	}
	fmt.Fprintln(a.out, line)
}
