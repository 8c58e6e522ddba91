package dataset

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/nolancacheux/webscrapping-clubs/internal/club"
)

func TestHarvest_AppendAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harvest.csv")

	h, err := OpenHarvest(path)
	if err != nil {
		t.Fatalf("OpenHarvest() error = %v", err)
	}

	rec := &club.Record{
		Name:        "FC NANTES",
		Affiliation: "500123",
		Email:       "contact@fcnantes.fr",
		Phone:       "0240123456",
		Address:     "44000 NANTES",
		SourceURL:   "https://district44.fff.fr/recherche-clubs?scl=1001",
	}
	if err := h.Append(1001, rec, 1200*time.Millisecond); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if !h.Seen(1001) {
		t.Error("Seen(1001) = false after append")
	}
	if h.Seen(1002) {
		t.Error("Seen(1002) = true, never appended")
	}
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}

	records, err := ReadHarvest(path)
	if err != nil {
		t.Fatalf("ReadHarvest() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("ReadHarvest() returned %d records, want 1", len(records))
	}
	got := records[0]
	if got.Name != rec.Name || got.Affiliation != rec.Affiliation || got.Email != rec.Email {
		t.Errorf("round-tripped record = %+v", got)
	}
	if got.SourceID != "1001" {
		t.Errorf("SourceID = %q, want 1001", got.SourceID)
	}
}

func TestHarvest_Resume(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harvest.csv")

	h, err := OpenHarvest(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := h.Append(1001, &club.Record{Name: "FC NANTES"}, time.Second); err != nil {
		t.Fatal(err)
	}
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopening indexes prior identifiers and appends without a second header.
	h2, err := OpenHarvest(path)
	if err != nil {
		t.Fatal(err)
	}
	if !h2.Seen(1001) {
		t.Error("Seen(1001) = false after reopen")
	}
	if err := h2.Append(1002, &club.Record{Name: "US ORVAULT"}, time.Second); err != nil {
		t.Fatal(err)
	}
	if err := h2.Close(); err != nil {
		t.Fatal(err)
	}

	rows := readCSV(t, path)
	if len(rows) != 3 {
		t.Fatalf("file has %d rows, want header + 2", len(rows))
	}
	if rows[0][0] != "scl" {
		t.Errorf("first row = %v, want single header", rows[0])
	}
	if rows[1][0] != "1001" || rows[2][0] != "1002" {
		t.Errorf("rows out of order: %v / %v", rows[1], rows[2])
	}
}

func TestReadHarvest_SkipsEmptyNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "harvest.csv")
	writeCSV(t, path, [][]string{
		{"scl", "nom", "numero_affiliation", "email", "telephone", "adresse", "url_detail", "temps_extraction"},
		{"1001", "FC NANTES", "500123", "", "", "", "u", "1.00"},
		{"1002", "", "", "", "", "", "u", "0.40"},
	})

	records, err := ReadHarvest(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("ReadHarvest() returned %d records, want 1", len(records))
	}
	if records[0].Name != "FC NANTES" {
		t.Errorf("Name = %q", records[0].Name)
	}
}

func TestReadHarvest_MissingFile(t *testing.T) {
	_, err := ReadHarvest(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Error("ReadHarvest() on missing file succeeded, want error")
	}
}
