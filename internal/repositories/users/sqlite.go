// Package users persists user rows for the load-all/save-all gateway.
package users

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/models"
)

// SQLiteRepository maps user rows using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a repository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// GetAll loads every user, ordered by username.
func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.User, error) {
	query := `SELECT id, username, email, password_hash, settings, created_at FROM users ORDER BY username`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select users: %w", err)
	}
	defer rows.Close()

	var result []models.User
	for rows.Next() {
		var (
			u         models.User
			settings  string
			createdAt string
		)
		if err := rows.Scan(&u.ID, &u.UserName, &u.Email, &u.PasswordHash, &settings, &createdAt); err != nil {
			return nil, err
		}
		if settings != "" {
			if err := json.Unmarshal([]byte(settings), &u.Settings); err != nil {
				return nil, fmt.Errorf("user %s: bad settings payload: %w", u.UserName, err)
			}
		}
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("user %s: bad created_at: %w", u.UserName, err)
		}
		u.CreatedAt = ts
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// ReplaceAll rewrites the users table with the given set. It is meant to run
// inside the gateway's save transaction.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, users []models.User) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}

	query := `INSERT INTO users (id, username, email, password_hash, settings, created_at)
	          VALUES (?, ?, ?, ?, ?, ?)`
	for i := range users {
		u := &users[i]
		settings, err := json.Marshal(u.Settings)
		if err != nil {
			return fmt.Errorf("user %s: encode settings: %w", u.UserName, err)
		}
		_, err = r.db.ExecContext(ctx, query,
			u.ID, u.UserName, u.Email, u.PasswordHash, string(settings),
			u.CreatedAt.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("failed to insert user %s: %w", u.UserName, err)
		}
	}
	return nil
}
