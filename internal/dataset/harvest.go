package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/nolancacheux/webscrapping-clubs/internal/club"
)

// harvestHeader is the range-mode output format. Column names match the
// original harvest files so downstream tooling keeps working.
var harvestHeader = []string{
	"scl", "nom", "numero_affiliation", "email", "telephone", "adresse",
	"url_detail", "temps_extraction",
}

// HarvestWriter appends range-mode results to a CSV file. Existing content
// is never rewritten; identifiers already present are remembered so a
// re-run can skip them.
type HarvestWriter struct {
	file *os.File
	w    *csv.Writer
	seen map[int]bool
}

// OpenHarvest opens the harvest CSV for appending, creating it with a
// header when new, and indexes the identifiers already recorded.
func OpenHarvest(path string) (*HarvestWriter, error) {
	seen := make(map[int]bool)

	if data, err := os.Open(path); err == nil {
		reader := csv.NewReader(data)
		reader.FieldsPerRecord = -1
		records, readErr := reader.ReadAll()
		data.Close()
		if readErr != nil {
			return nil, fmt.Errorf("reading existing harvest %s: %w", path, readErr)
		}
		for i, rec := range records {
			if i == 0 || len(rec) == 0 {
				continue
			}
			if scl, convErr := strconv.Atoi(rec[0]); convErr == nil {
				seen[scl] = true
			}
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("opening harvest %s: %w", path, err)
	}

	writeHeader := len(seen) == 0
	if _, err := os.Stat(path); err == nil {
		writeHeader = false
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening harvest %s: %w", path, err)
	}

	h := &HarvestWriter{file: file, w: csv.NewWriter(file), seen: seen}
	if writeHeader {
		if err := h.w.Write(harvestHeader); err != nil {
			file.Close()
			return nil, fmt.Errorf("writing harvest header: %w", err)
		}
		h.w.Flush()
	}
	return h, nil
}

// Seen reports whether an identifier was already harvested in a prior run.
func (h *HarvestWriter) Seen(scl int) bool {
	return h.seen[scl]
}

// Append records one harvested club. The row is flushed immediately so an
// interrupted run keeps everything written so far.
func (h *HarvestWriter) Append(scl int, rec *club.Record, took time.Duration) error {
	row := []string{
		strconv.Itoa(scl),
		rec.Name,
		rec.Affiliation,
		rec.Email,
		rec.Phone,
		rec.Address,
		rec.SourceURL,
		fmt.Sprintf("%.2f", took.Seconds()),
	}
	if err := h.w.Write(row); err != nil {
		return fmt.Errorf("appending scl %d: %w", scl, err)
	}
	h.w.Flush()
	if err := h.w.Error(); err != nil {
		return fmt.Errorf("appending scl %d: %w", scl, err)
	}
	h.seen[scl] = true
	return nil
}

// ReadHarvest loads a harvest CSV back into club records, skipping rows
// whose name column is empty (identifiers probed but not found).
func ReadHarvest(path string) ([]*club.Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening harvest %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading harvest %s: %w", path, err)
	}

	records := make([]*club.Record, 0, len(rows))
	for i, row := range rows {
		if i == 0 || len(row) < len(harvestHeader) {
			continue
		}
		if row[1] == "" {
			continue
		}
		records = append(records, &club.Record{
			Name:        row[1],
			Affiliation: row[2],
			Email:       row[3],
			Phone:       row[4],
			Address:     row[5],
			SourceURL:   row[6],
			SourceID:    row[0],
		})
	}
	return records, nil
}

// Close flushes and closes the file.
func (h *HarvestWriter) Close() error {
	h.w.Flush()
	if err := h.w.Error(); err != nil {
		h.file.Close()
		return err
	}
	return h.file.Close()
}
