package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/taskkeeper/internal/filex"
	"github.com/dmitrijs2005/taskkeeper/internal/store"
)

// ProcessRecurring advances every overdue recurring task to its next
// occurrence on or after today.
func (a *App) ProcessRecurring(ctx context.Context) error {
	var n int
	err := a.withStore(ctx, true, func(s *store.Store) error {
		n = s.RollForward()
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Rolled forward %d recurring task(s)\n", n)
	return nil
}

// Backup copies the store file to the given path: backup <file>.
func (a *App) Backup(ctx context.Context, args []string) error {
	dst, _ := popPositional(args)
	if dst == "" {
		return fmt.Errorf("usage: backup <file>")
	}

	if _, err := os.Stat(a.config.DatabasePath); err != nil {
		return fmt.Errorf("no store to back up: %w", err)
	}
	if err := filex.CopyFile(a.config.DatabasePath, dst); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Backed up %s to %s\n", a.config.DatabasePath, dst)
	return nil
}

// Restore replaces the store file with the given backup: restore <file>.
// The current store is overwritten, so the backup becomes the live state.
func (a *App) Restore(ctx context.Context, args []string) error {
	src, _ := popPositional(args)
	if src == "" {
		return fmt.Errorf("usage: restore <file>")
	}

	if _, err := os.Stat(src); err != nil {
		return fmt.Errorf("backup not found: %w", err)
	}
	if err := filex.CopyFile(src, a.config.DatabasePath); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Restored %s from %s\n", a.config.DatabasePath, src)
	return nil
}
