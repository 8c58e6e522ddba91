// Package reconcile merges crawled club records into the persisted dataset
// without destroying hand-maintained data. The write policy is field-level
// and strictly additive: a matched row only has its blank core cells filled,
// a non-empty cell is never overwritten, tracking columns are never part of
// any write, and unmatched records are appended as new rows.
package reconcile

import (
	"errors"
	"fmt"

	"github.com/nolancacheux/webscrapping-clubs/internal/club"
	"github.com/nolancacheux/webscrapping-clubs/internal/dataset"
	"github.com/nolancacheux/webscrapping-clubs/internal/logger"
	"github.com/nolancacheux/webscrapping-clubs/internal/match"
)

// Report summarizes one reconciliation run. When the store becomes
// unreachable mid-run, Committed and Pending tell the operator which records
// made it in before the abort.
type Report struct {
	Records      int      `json:"records"`
	Matched      int      `json:"matched"`
	Appended     int      `json:"appended"`
	CellsFilled  int      `json:"cells_filled"`
	FailedWrites int      `json:"failed_writes"`
	DryRun       bool     `json:"dry_run"`
	Committed    []string `json:"committed,omitempty"`
	Pending      []string `json:"pending,omitempty"`
}

// Writer applies match decisions to the dataset store. It is the sole writer
// of the persisted store during a run.
type Writer struct {
	store     dataset.Store
	threshold float64
}

// New creates a writer with the default match threshold.
func New(store dataset.Store) *Writer {
	return &Writer{store: store, threshold: match.DefaultThreshold}
}

// NewWithThreshold creates a writer with a custom match threshold.
func NewWithThreshold(store dataset.Store, threshold float64) *Writer {
	return &Writer{store: store, threshold: threshold}
}

// Run reads the dataset once, matches every record, and applies the merge.
// A failed write on one record is counted and the run continues; a store
// connectivity failure aborts with the report showing committed vs pending.
// In dry-run mode decisions are computed and reported but nothing is written.
func (w *Writer) Run(records []*club.Record, dryRun bool) (*Report, error) {
	report := &Report{DryRun: dryRun}

	rows, err := w.store.ReadAllRows()
	if err != nil {
		return report, fmt.Errorf("reading dataset: %w", err)
	}

	matcher := match.New(w.threshold)
	for _, row := range rows {
		matcher.Add(row.Key, row.Values[club.FieldName])
	}
	rowByKey := make(map[int]dataset.Row, len(rows))
	for _, row := range rows {
		rowByKey[row.Key] = row
	}
	nextKey := len(rows)

	for i, rec := range records {
		if !rec.Found() {
			continue
		}
		report.Records++

		decision := matcher.Match(rec.Name)
		var writeErr error
		if decision.Matched {
			report.Matched++
			writeErr = w.fillBlanks(rowByKey[decision.RowKey], rec, dryRun, report)
		} else {
			report.Appended++
			var values map[club.Field]string
			values, writeErr = w.append(rec, dryRun)
			if writeErr == nil {
				// Index the new row so a second occurrence of the same club
				// in this run matches instead of appending again.
				matcher.Add(nextKey, rec.Name)
				rowByKey[nextKey] = dataset.Row{Key: nextKey, Values: values}
				nextKey++
			}
		}

		if writeErr != nil {
			if errors.Is(writeErr, dataset.ErrUnavailable) {
				for _, rest := range records[i:] {
					if rest.Found() {
						report.Pending = append(report.Pending, rest.Name)
					}
				}
				return report, fmt.Errorf("store unreachable, aborting run: %w", writeErr)
			}
			report.FailedWrites++
			logger.Error("record write failed", logger.Fields{"club": rec.Name}, writeErr)
			continue
		}
		report.Committed = append(report.Committed, rec.Name)
	}

	if !dryRun {
		if err := w.store.Flush(); err != nil {
			return report, fmt.Errorf("committing dataset: %w", err)
		}
	}
	return report, nil
}

// fillBlanks writes incoming values into the blank core cells of a matched
// row. Non-empty cells are left untouched even when the incoming value
// differs; tracking columns are not addressable here at all.
func (w *Writer) fillBlanks(row dataset.Row, rec *club.Record, dryRun bool, report *Report) error {
	cells := make(map[club.Field]string)
	for _, field := range club.CoreFields() {
		incoming := rec.FieldValue(field)
		if incoming == "" {
			continue
		}
		if row.Values[field] != "" {
			continue
		}
		cells[field] = incoming
	}
	if len(cells) == 0 {
		return nil
	}

	report.CellsFilled += len(cells)
	if dryRun {
		return nil
	}
	if err := w.store.WriteCells(row.Key, cells); err != nil {
		return err
	}
	// Keep the in-memory view current so repeated matches in one run see
	// the filled cells.
	for field, value := range cells {
		row.Values[field] = value
	}
	return nil
}

// append adds a new dataset row from all available incoming fields and
// returns the values for in-run bookkeeping.
func (w *Writer) append(rec *club.Record, dryRun bool) (map[club.Field]string, error) {
	values := make(map[club.Field]string)
	for _, field := range club.CoreFields() {
		if v := rec.FieldValue(field); v != "" {
			values[field] = v
		}
	}
	if dryRun {
		return values, nil
	}
	if err := w.store.AppendRow(values); err != nil {
		return nil, err
	}
	return values, nil
}
