package store

import (
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/models"
)

// Filter is a conjunctive set of predicates; zero-valued fields impose no
// constraint.
type Filter struct {
	// Username matches tasks the user created or is assigned to.
	Username string
	Priority models.Priority
	Status   models.Status
	// Overdue keeps only pending tasks whose due date is in the past.
	Overdue bool
	// Tags keeps tasks carrying at least one of the given tags.
	Tags []string
	// Search is a case-insensitive substring match over title and description.
	Search string
}

// SortKey selects the ordering of query results.
type SortKey string

const (
	SortByDueDate   SortKey = "due_date"
	SortByPriority  SortKey = "priority"
	SortByCreatedAt SortKey = "created_at"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortByDueDate, SortByPriority, SortByCreatedAt:
		return true
	}
	return false
}

// Sort describes the requested ordering. Reverse inverts the key order only;
// tasks without a value for the key sort last either way, and ties keep
// their pre-sort relative order.
type Sort struct {
	Key     SortKey
	Reverse bool
}

// Query returns the tasks matching the filter, ordered per srt. It never
// mutates the store; the returned tasks are copies in a fresh slice.
func (s *Store) Query(f Filter, srt Sort) []models.Task {
	now := s.clock.Now()

	// Creation order is the stable base order for tie-breaking.
	var result []models.Task
	for _, id := range s.order {
		t := s.tasks[id]
		if matches(t, f, now) {
			result = append(result, *t.Clone())
		}
	}

	if srt.Key == "" {
		return result
	}

	sort.SliceStable(result, func(i, j int) bool {
		return taskLess(&result[i], &result[j], srt)
	})
	return result
}

func matches(t *models.Task, f Filter, now time.Time) bool {
	if f.Username != "" && t.CreatedBy != f.Username && t.AssignedTo != f.Username {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Overdue && !t.Overdue(now) {
		return false
	}
	if len(f.Tags) > 0 {
		any := false
		for _, tag := range f.Tags {
			if t.HasTag(tag) {
				any = true
				break
			}
		}
		if !any {
			return false
		}
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.Description), needle) {
			return false
		}
	}
	return true
}

// sortValue maps a task to a comparable value for the key. ok is false when
// the task has no value for the key (e.g. no due date).
func sortValue(t *models.Task, key SortKey) (v int64, ok bool) {
	switch key {
	case SortByDueDate:
		if t.DueDate == nil {
			return 0, false
		}
		return t.DueDate.UnixNano(), true
	case SortByPriority:
		return int64(t.Priority.Rank()), true
	case SortByCreatedAt:
		return t.CreatedAt.UnixNano(), true
	}
	return 0, false
}

func taskLess(a, b *models.Task, srt Sort) bool {
	av, aok := sortValue(a, srt.Key)
	bv, bok := sortValue(b, srt.Key)

	// Null keys sort last regardless of direction.
	if aok != bok {
		return aok
	}
	if !aok {
		return false
	}
	if srt.Reverse {
		return bv < av
	}
	return av < bv
}
