package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/taskkeeper/internal/export"
	"github.com/dmitrijs2005/taskkeeper/internal/store"
)

const defaultExportFile = "tasks.csv"

// Export writes every task to a CSV file in creation order: export [file].
func (a *App) Export(ctx context.Context, args []string) error {
	path, _ := popPositional(args)
	if path == "" {
		path = defaultExportFile
	}

	var count int
	err := a.withStore(ctx, false, func(s *store.Store) error {
		records := s.ExportRecords()
		count = len(records)

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer f.Close()

		return export.WriteCSV(f, records)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Exported %d task(s) to %s\n", count, path)
	return nil
}

// Import loads tasks from a CSV file: import <file>. Bad rows are reported
// and skipped; every valid row is saved.
func (a *App) Import(ctx context.Context, args []string) error {
	path, _ := popPositional(args)
	if path == "" {
		return fmt.Errorf("usage: import <file>")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening import file: %w", err)
	}
	defer f.Close()

	records, err := export.ReadCSV(f)
	if err != nil {
		return err
	}

	var rowErrs []store.RowError
	err = a.withStore(ctx, true, func(s *store.Store) error {
		rowErrs = s.ImportRecords(records)
		return nil
	})
	if err != nil {
		return err
	}

	for _, re := range rowErrs {
		fmt.Fprintf(a.out, "skipped %v\n", re)
	}
	fmt.Fprintf(a.out, "Imported %d task(s), %d skipped\n", len(records)-len(rowErrs), len(rowErrs))
	return nil
}
