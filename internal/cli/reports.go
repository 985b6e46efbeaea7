package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/dmitrijs2005/taskkeeper/internal/models"
	"github.com/dmitrijs2005/taskkeeper/internal/store"
)

// Workload prints the assignment summary for one user: workload <username>.
func (a *App) Workload(ctx context.Context, args []string) error {
	username, _ := popPositional(args)
	username = a.sessionOr(username)
	if username == "" {
		return fmt.Errorf("usage: workload <username>")
	}

	return a.withStore(ctx, false, func(s *store.Store) error {
		r, err := s.Workload(username)
		if err != nil {
			return err
		}

		fmt.Fprintf(a.out, "Workload for %s: %d task(s) assigned\n", r.UserName, r.Total)
		for _, st := range models.Statuses {
			fmt.Fprintf(a.out, "  %-10s %d\n", st, r.ByStatus[st])
		}
		fmt.Fprintln(a.out, "By priority:")
		for _, p := range models.Priorities {
			fmt.Fprintf(a.out, "  %-10s %d\n", p, r.ByPriority[p])
		}
		return nil
	})
}

// Report prints a completion report: report [flags] <username>. The window
// defaults to the last 30 days for daily buckets and the last 12 weeks for
// weekly ones.
func (a *App) Report(ctx context.Context, args []string) error {
	username, rest := popPositional(args)

	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	period := fs.String("period", "day", "bucket size: day or week")
	fromStr := fs.String("from", "", "window start (YYYY-MM-DD)")
	toStr := fs.String("to", "", "window end (YYYY-MM-DD)")
	if err := fs.Parse(rest); err != nil {
		return err
	}
	if username == "" {
		username, _ = popPositional(fs.Args())
	}
	username = a.sessionOr(username)
	if username == "" {
		return fmt.Errorf("usage: report [flags] <username>")
	}

	p := store.Period(*period)
	if !p.Valid() {
		return fmt.Errorf("invalid period %q, use day or week", *period)
	}

	now := a.clock.Now()
	to := models.DateOnly(now)
	from := to.AddDate(0, 0, -30)
	if p == store.PeriodWeek {
		from = to.AddDate(0, 0, -12*7)
	}
	if *fromStr != "" {
		d, err := parseDueDate(*fromStr)
		if err != nil {
			return err
		}
		from = *d
	}
	if *toStr != "" {
		d, err := parseDueDate(*toStr)
		if err != nil {
			return err
		}
		to = *d
	}

	return a.withStore(ctx, false, func(s *store.Store) error {
		data, err := s.Productivity(username, p, from, to)
		if err != nil {
			return err
		}
		stats, err := s.Stats(username)
		if err != nil {
			return err
		}

		layout := a.dateFormatFor(s, username)
		fmt.Fprintf(a.out, "Productivity for %s (%s buckets)\n", username, p)
		for _, d := range data {
			fmt.Fprintf(a.out, "  %s  %d completed\n", d.BucketStart.Format(layout), d.Count)
		}
		fmt.Fprintf(a.out, "Total tasks: %d\n", stats.Total)
		fmt.Fprintf(a.out, "Completion rate: %.1f%%\n", stats.CompletionRate*100)
		fmt.Fprintf(a.out, "Overdue: %d\n", stats.OverdueCount)
		fmt.Fprintln(a.out, "By priority:")
		for _, pr := range models.Priorities {
			fmt.Fprintf(a.out, "  %-10s %d\n", pr, stats.PriorityDistribution[pr])
		}
		return nil
	})
}
