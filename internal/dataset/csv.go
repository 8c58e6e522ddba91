package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nolancacheux/webscrapping-clubs/internal/club"
)

// CSVStore implements Store over a CSV file. The whole file is read once at
// open; writes mutate the in-memory copy and Flush rewrites the file
// atomically. Unknown and tracking columns are carried through untouched.
type CSVStore struct {
	path    string
	columns ColumnMap
	header  []string
	index   map[string]int // header -> column position
	rows    [][]string
}

// OpenCSV opens (or creates) the dataset CSV. A new file gets a header of
// the core columns followed by the tracking columns. An existing file must
// contain every mapped core column.
func OpenCSV(path string, columns ColumnMap) (*CSVStore, error) {
	if err := columns.Validate(); err != nil {
		return nil, err
	}

	s := &CSVStore{path: path, columns: columns}

	data, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: opening %s: %v", ErrUnavailable, path, err)
		}
		for _, f := range club.CoreFields() {
			s.header = append(s.header, columns.Columns[f])
		}
		s.header = append(s.header, columns.Tracking...)
		s.buildIndex()
		return s, nil
	}
	defer data.Close()

	reader := csv.NewReader(data)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrUnavailable, path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s has no header row", ErrUnavailable, path)
	}

	s.header = records[0]
	s.rows = records[1:]
	s.buildIndex()

	for field, header := range columns.Columns {
		if _, ok := s.index[header]; !ok {
			return nil, fmt.Errorf("dataset %s: missing column %q for field %s", path, header, field)
		}
	}
	return s, nil
}

func (s *CSVStore) buildIndex() {
	s.index = make(map[string]int, len(s.header))
	for i, h := range s.header {
		s.index[h] = i
	}
}

// ReadAllRows returns every row in file order.
func (s *CSVStore) ReadAllRows() ([]Row, error) {
	rows := make([]Row, 0, len(s.rows))
	for key, raw := range s.rows {
		values := make(map[club.Field]string, len(s.columns.Columns))
		for field, header := range s.columns.Columns {
			if pos, ok := s.index[header]; ok && pos < len(raw) {
				values[field] = raw[pos]
			}
		}
		rows = append(rows, Row{Key: key, Values: values})
	}
	return rows, nil
}

// WriteCells sets core-field cells of one row in memory. Fields without a
// mapped column are rejected, which keeps tracking columns out of reach.
func (s *CSVStore) WriteCells(rowKey int, cells map[club.Field]string) error {
	if rowKey < 0 || rowKey >= len(s.rows) {
		return fmt.Errorf("writing row %d: no such row", rowKey)
	}
	row := s.rows[rowKey]
	for field, value := range cells {
		header, ok := s.columns.Columns[field]
		if !ok {
			return fmt.Errorf("writing row %d: field %s has no mapped column", rowKey, field)
		}
		pos := s.index[header]
		for len(row) <= pos {
			row = append(row, "")
		}
		row[pos] = value
	}
	s.rows[rowKey] = row
	return nil
}

// AppendRow adds a new full-width row; tracking columns are left blank.
func (s *CSVStore) AppendRow(values map[club.Field]string) error {
	row := make([]string, len(s.header))
	for field, value := range values {
		header, ok := s.columns.Columns[field]
		if !ok {
			return fmt.Errorf("appending row: field %s has no mapped column", field)
		}
		row[s.index[header]] = value
	}
	s.rows = append(s.rows, row)
	return nil
}

// Flush rewrites the file atomically (temp file + rename).
func (s *CSVStore) Flush() error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".dataset-*.csv")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", ErrUnavailable, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(s.header); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: writing header: %v", ErrUnavailable, err)
	}
	for _, row := range s.rows {
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("%w: writing row: %v", ErrUnavailable, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: flushing: %v", ErrUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing temp file: %v", ErrUnavailable, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: replacing %s: %v", ErrUnavailable, s.path, err)
	}
	return nil
}
