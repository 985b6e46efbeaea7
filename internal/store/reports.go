package store

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/models"
)

// WorkloadReport counts the tasks currently assigned to one user, grouped by
// status and by priority. Both groupings partition the same task set, so
// their counts each sum to Total.
type WorkloadReport struct {
	UserName   string
	Total      int
	ByStatus   map[models.Status]int
	ByPriority map[models.Priority]int
}

// Workload builds the workload report for the named user. A user without
// tasks gets zero counts, not an error.
func (s *Store) Workload(username string) (*WorkloadReport, error) {
	if _, ok := s.users[username]; !ok {
		return nil, fmt.Errorf("user %q: %w", username, common.ErrorNotFound)
	}

	r := &WorkloadReport{
		UserName:   username,
		ByStatus:   make(map[models.Status]int, len(models.Statuses)),
		ByPriority: make(map[models.Priority]int, len(models.Priorities)),
	}
	for _, st := range models.Statuses {
		r.ByStatus[st] = 0
	}
	for _, p := range models.Priorities {
		r.ByPriority[p] = 0
	}

	for _, id := range s.order {
		t := s.tasks[id]
		if t.AssignedTo != username {
			continue
		}
		r.Total++
		r.ByStatus[t.Status]++
		r.ByPriority[t.Priority]++
	}
	return r, nil
}

// Period is the bucket width of a productivity series.
type Period string

const (
	PeriodDay  Period = "day"
	PeriodWeek Period = "week"
)

func (p Period) Valid() bool { return p == PeriodDay || p == PeriodWeek }

// ProductivityDatum is one bucket of a productivity series: the bucket start
// and the number of completions that fall into it.
type ProductivityDatum struct {
	BucketStart time.Time
	Count       int
}

// Productivity buckets the user's completion timestamps between from and to
// (inclusive) into day or week buckets. The series is ascending by time and
// contains every bucket in the range, empty ones with count 0, so downstream
// charting gets an evenly spaced series.
func (s *Store) Productivity(username string, period Period, from, to time.Time) ([]ProductivityDatum, error) {
	if _, ok := s.users[username]; !ok {
		return nil, fmt.Errorf("user %q: %w", username, common.ErrorNotFound)
	}
	if !period.Valid() {
		return nil, fmt.Errorf("invalid period %q: %w", period, common.ErrorValidation)
	}

	start := bucketStart(from, period)
	end := bucketStart(to, period)
	if end.Before(start) {
		return nil, fmt.Errorf("range end before start: %w", common.ErrorValidation)
	}

	counts := make(map[time.Time]int)
	for _, id := range s.order {
		t := s.tasks[id]
		if t.CompletedAt == nil {
			continue
		}
		if t.CreatedBy != username && t.AssignedTo != username {
			continue
		}
		b := bucketStart(*t.CompletedAt, period)
		if b.Before(start) || b.After(end) {
			continue
		}
		counts[b]++
	}

	var series []ProductivityDatum
	for b := start; !b.After(end); b = nextBucket(b, period) {
		series = append(series, ProductivityDatum{BucketStart: b, Count: counts[b]})
	}
	return series, nil
}

// bucketStart truncates t to the start of its bucket: midnight UTC for day
// buckets, the preceding Monday for week buckets.
func bucketStart(t time.Time, period Period) time.Time {
	d := models.DateOnly(t)
	if period == PeriodDay {
		return d
	}
	offset := (int(d.Weekday()) + 6) % 7 // Monday-based week
	return d.AddDate(0, 0, -offset)
}

func nextBucket(b time.Time, period Period) time.Time {
	if period == PeriodDay {
		return b.AddDate(0, 0, 1)
	}
	return b.AddDate(0, 0, 7)
}

// ProductivityStats is the roll-up handed to the chart-rendering
// collaborator: totals, completion rate, overdue count and the priority
// distribution across the user's visible tasks.
type ProductivityStats struct {
	UserName             string
	Total                int
	CompletionRate       float64
	OverdueCount         int
	PriorityDistribution map[models.Priority]int
}

// Stats summarizes the tasks the user created or is assigned to.
func (s *Store) Stats(username string) (*ProductivityStats, error) {
	if _, ok := s.users[username]; !ok {
		return nil, fmt.Errorf("user %q: %w", username, common.ErrorNotFound)
	}

	now := s.clock.Now()
	st := &ProductivityStats{
		UserName:             username,
		PriorityDistribution: make(map[models.Priority]int, len(models.Priorities)),
	}
	for _, p := range models.Priorities {
		st.PriorityDistribution[p] = 0
	}

	completed := 0
	for _, id := range s.order {
		t := s.tasks[id]
		if t.CreatedBy != username && t.AssignedTo != username {
			continue
		}
		st.Total++
		st.PriorityDistribution[t.Priority]++
		if t.Status == models.StatusCompleted {
			completed++
		}
		if t.Overdue(now) {
			st.OverdueCount++
		}
	}
	if st.Total > 0 {
		st.CompletionRate = float64(completed) / float64(st.Total)
	}
	return st, nil
}
