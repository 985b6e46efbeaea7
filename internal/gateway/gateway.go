// Package gateway is the persistence collaborator of the core: a SQLite
// file behind a load-all/save-all contract. The store is read in full at the
// start of an invocation and written back in full at the end, inside one
// transaction, so a failed save leaves the file unchanged.
package gateway

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/repositories/events"
	"github.com/dmitrijs2005/taskkeeper/internal/repositories/tasks"
	"github.com/dmitrijs2005/taskkeeper/internal/repositories/users"
	"github.com/dmitrijs2005/taskkeeper/internal/store"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLiteGateway owns the database handle for one invocation.
type SQLiteGateway struct {
	db  *sql.DB
	log logging.Logger
}

// Open opens (creating if necessary) the database at path and brings the
// schema up to date.
func Open(ctx context.Context, path string, log logging.Logger) (*SQLiteGateway, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}

	return &SQLiteGateway{db: db, log: log}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, "migrations")
}

func (g *SQLiteGateway) Close() error {
	return g.db.Close()
}

// LoadAll reads the complete persisted state.
func (g *SQLiteGateway) LoadAll(ctx context.Context) (*store.Snapshot, error) {
	snap := &store.Snapshot{}

	var err error
	if snap.Users, err = users.NewSQLiteRepository(g.db).GetAll(ctx); err != nil {
		return nil, err
	}
	if snap.Tasks, err = tasks.NewSQLiteRepository(g.db).GetAll(ctx); err != nil {
		return nil, err
	}
	if snap.Events, err = events.NewSQLiteRepository(g.db).GetAll(ctx); err != nil {
		return nil, err
	}

	g.log.Debug(ctx, "state loaded",
		"users", len(snap.Users), "tasks", len(snap.Tasks), "events", len(snap.Events))
	return snap, nil
}

// SaveAll writes the complete state in one transaction. On any error the
// transaction rolls back and the previous state survives untouched.
func (g *SQLiteGateway) SaveAll(ctx context.Context, snap *store.Snapshot) error {
	err := dbx.WithTx(ctx, g.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := users.NewSQLiteRepository(tx).ReplaceAll(ctx, snap.Users); err != nil {
			return err
		}
		if err := tasks.NewSQLiteRepository(tx).ReplaceAll(ctx, snap.Tasks); err != nil {
			return err
		}
		return events.NewSQLiteRepository(tx).ReplaceAll(ctx, snap.Events)
	})
	if err != nil {
		return fmt.Errorf("save failed, previous state kept: %w", err)
	}

	g.log.Debug(ctx, "state saved",
		"users", len(snap.Users), "tasks", len(snap.Tasks), "events", len(snap.Events))
	return nil
}
