// Package export serializes flat task records to and from CSV. The record
// layout itself (field order, tag joining, date formats) is owned by the
// store; this package only handles the tabular encoding.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dmitrijs2005/taskkeeper/internal/store"
)

var header = []string{
	"id", "title", "description", "due_date", "priority", "status",
	"tags", "created_by", "assigned_to", "recurrence", "created_at", "completed_at",
}

// WriteCSV writes the records to w with a header row.
func WriteCSV(w io.Writer, records []store.FlatRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range records {
		row := []string{
			r.ID, r.Title, r.Description, r.DueDate, r.Priority, r.Status,
			r.Tags, r.CreatedBy, r.AssignedTo, r.Recurrence, r.CreatedAt, r.CompletedAt,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses records from r, expecting the same layout WriteCSV
// produces. The header row is required and verified.
func ReadCSV(r io.Reader) ([]store.FlatRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)

	first, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, name := range header {
		if first[i] != name {
			return nil, fmt.Errorf("unexpected header column %d: got %q, want %q", i, first[i], name)
		}
	}

	var records []store.FlatRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}
		records = append(records, store.FlatRecord{
			ID:          row[0],
			Title:       row[1],
			Description: row[2],
			DueDate:     row[3],
			Priority:    row[4],
			Status:      row[5],
			Tags:        row[6],
			CreatedBy:   row[7],
			AssignedTo:  row[8],
			Recurrence:  row[9],
			CreatedAt:   row[10],
			CompletedAt: row[11],
		})
	}
	return records, nil
}
