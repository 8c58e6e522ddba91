// Package dataset provides the tabular store capability consumed by the
// reconciliation writer: read all rows, write specific cells, append a row.
// A CSV file backs the default implementation; a spreadsheet backend only
// needs to satisfy the same three operations plus the column mapping.
//
// Tracking columns (outreach dates, response status) are maintained by hand
// in the store. They are read so rows can be located but are structurally
// unaddressable by writes: cells are keyed by logical field, and tracking
// columns have no logical field.
//
// The design assumes at most one writer process at a time; nothing locks
// the underlying file.
package dataset

import (
	"errors"
	"fmt"

	"github.com/nolancacheux/webscrapping-clubs/internal/club"
)

// ErrUnavailable reports that the persisted store itself cannot be read or
// written. Unlike a per-record write failure it is fatal to the run.
var ErrUnavailable = errors.New("dataset store unavailable")

// Row is one persisted record, exposing only the logical core fields. Key is
// the row's position in store order and is stable for the duration of a run.
type Row struct {
	Key    int
	Values map[club.Field]string
}

// Store is the tabular store capability.
type Store interface {
	// ReadAllRows returns every row in store order.
	ReadAllRows() ([]Row, error)
	// WriteCells sets the given logical-field cells of one row.
	WriteCells(rowKey int, cells map[club.Field]string) error
	// AppendRow adds a new row; tracking columns stay at their blank default.
	AppendRow(values map[club.Field]string) error
	// Flush commits buffered writes to the underlying store.
	Flush() error
}

// ColumnMap binds logical fields to physical column headers and names the
// tracking columns the pipeline must never write.
type ColumnMap struct {
	Columns  map[club.Field]string
	Tracking []string
}

// DefaultColumnMap returns the mapping for the outreach spreadsheet, with
// its French headers.
func DefaultColumnMap() ColumnMap {
	return ColumnMap{
		Columns: map[club.Field]string{
			club.FieldName:        "Club",
			club.FieldAffiliation: "Numéro d'affiliation",
			club.FieldEmail:       "Email",
			club.FieldPhone:       "Téléphone",
			club.FieldAddress:     "Adresse",
		},
		Tracking: []string{"Date de contact", "Statut réponse", "Relance"},
	}
}

// Validate checks that the name field is mapped and that no tracking column
// doubles as a core column.
func (m ColumnMap) Validate() error {
	if m.Columns[club.FieldName] == "" {
		return fmt.Errorf("column map: no column for %s", club.FieldName)
	}
	core := make(map[string]bool, len(m.Columns))
	for _, header := range m.Columns {
		core[header] = true
	}
	for _, header := range m.Tracking {
		if core[header] {
			return fmt.Errorf("column map: %q is both core and tracking", header)
		}
	}
	return nil
}
