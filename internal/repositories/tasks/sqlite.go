// Package tasks persists task rows for the load-all/save-all gateway.
package tasks

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/models"
)

// SQLiteRepository maps task rows using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a repository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// GetAll loads every task in creation order. The seq column records the
// store's creation order across saves; created_at alone cannot break ties.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Task, error) {
	query := `SELECT id, title, description, due_date, priority, status, tags,
	                 recurrence, created_by, assigned_to, created_at, completed_at
	          FROM tasks ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	var result []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanTask(rows *sql.Rows) (*models.Task, error) {
	var (
		t           models.Task
		due         sql.NullString
		tags        string
		recurrence  sql.NullString
		assignedTo  sql.NullString
		createdAt   string
		completedAt sql.NullString
	)
	if err := rows.Scan(&t.ID, &t.Title, &t.Description, &due, &t.Priority, &t.Status,
		&tags, &recurrence, &t.CreatedBy, &assignedTo, &createdAt, &completedAt); err != nil {
		return nil, err
	}

	if due.Valid && due.String != "" {
		d, err := time.ParseInLocation(models.DateLayout, due.String, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("task %s: bad due date: %w", t.ID, err)
		}
		t.DueDate = &d
	}
	if tags != "" {
		t.Tags = strings.Split(tags, ",")
	}
	if recurrence.Valid {
		t.Recurrence = models.Recurrence(recurrence.String)
	}
	if assignedTo.Valid {
		t.AssignedTo = assignedTo.String
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("task %s: bad created_at: %w", t.ID, err)
	}
	t.CreatedAt = ts

	if completedAt.Valid && completedAt.String != "" {
		ts, err := time.Parse(time.RFC3339Nano, completedAt.String)
		if err != nil {
			return nil, fmt.Errorf("task %s: bad completed_at: %w", t.ID, err)
		}
		t.CompletedAt = &ts
	}
	return &t, nil
}

// ReplaceAll rewrites the tasks table with the given set, preserving slice
// order as the seq column. It is meant to run inside the gateway's save
// transaction.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, tasks []models.Task) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}

	query := `INSERT INTO tasks (seq, id, title, description, due_date, priority, status,
	                             tags, recurrence, created_by, assigned_to, created_at, completed_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i := range tasks {
		t := &tasks[i]

		var due any
		if t.DueDate != nil {
			due = t.DueDate.Format(models.DateLayout)
		}
		var recurrence any
		if t.Recurrence != models.RecurrenceNone {
			recurrence = string(t.Recurrence)
		}
		var assignedTo any
		if t.AssignedTo != "" {
			assignedTo = t.AssignedTo
		}
		var completedAt any
		if t.CompletedAt != nil {
			completedAt = t.CompletedAt.UTC().Format(time.RFC3339Nano)
		}

		_, err := r.db.ExecContext(ctx, query,
			i, t.ID, t.Title, t.Description, due, string(t.Priority), string(t.Status),
			strings.Join(t.Tags, ","), recurrence, t.CreatedBy, assignedTo,
			t.CreatedAt.UTC().Format(time.RFC3339Nano), completedAt)
		if err != nil {
			return fmt.Errorf("failed to insert task %s: %w", t.ID, err)
		}
	}
	return nil
}
