// Package events persists the append-only assignment log for the gateway.
package events

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/models"
)

// SQLiteRepository maps assignment-event rows using a DBTX.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a repository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// GetAll loads the log in append order.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.AssignmentEvent, error) {
	query := `SELECT task_id, assigner, assignee, at FROM assignment_events ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select assignment events: %w", err)
	}
	defer rows.Close()

	var result []models.AssignmentEvent
	for rows.Next() {
		var (
			e  models.AssignmentEvent
			at string
		)
		if err := rows.Scan(&e.TaskID, &e.Assigner, &e.Assignee, &at); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("assignment event: bad timestamp: %w", err)
		}
		e.At = ts
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ReplaceAll rewrites the log, preserving slice order. It is meant to run
// inside the gateway's save transaction.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, events []models.AssignmentEvent) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM assignment_events`); err != nil {
		return fmt.Errorf("failed to clear assignment events: %w", err)
	}

	query := `INSERT INTO assignment_events (seq, task_id, assigner, assignee, at) VALUES (?, ?, ?, ?, ?)`
	for i, e := range events {
		_, err := r.db.ExecContext(ctx, query,
			i, e.TaskID, e.Assigner, e.Assignee, e.At.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("failed to insert assignment event %d: %w", i, err)
		}
	}
	return nil
}
