package reconcile

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nolancacheux/webscrapping-clubs/internal/club"
	"github.com/nolancacheux/webscrapping-clubs/internal/dataset"
)

// fakeStore is an in-memory dataset.Store with fault injection.
type fakeStore struct {
	rows       []dataset.Row
	flushed    bool
	failAppend error
	failAfter  int // appends allowed before failAppend triggers; <0 = never
	appends    int
}

func newFakeStore(names ...string) *fakeStore {
	s := &fakeStore{failAfter: -1}
	for i, name := range names {
		s.rows = append(s.rows, dataset.Row{
			Key:    i,
			Values: map[club.Field]string{club.FieldName: name},
		})
	}
	return s
}

func (s *fakeStore) ReadAllRows() ([]dataset.Row, error) {
	out := make([]dataset.Row, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func (s *fakeStore) WriteCells(rowKey int, cells map[club.Field]string) error {
	if rowKey < 0 || rowKey >= len(s.rows) {
		return fmt.Errorf("no such row %d", rowKey)
	}
	for f, v := range cells {
		s.rows[rowKey].Values[f] = v
	}
	return nil
}

func (s *fakeStore) AppendRow(values map[club.Field]string) error {
	if s.failAfter >= 0 && s.appends >= s.failAfter {
		return s.failAppend
	}
	s.appends++
	copied := make(map[club.Field]string, len(values))
	for f, v := range values {
		copied[f] = v
	}
	s.rows = append(s.rows, dataset.Row{Key: len(s.rows), Values: copied})
	return nil
}

func (s *fakeStore) Flush() error {
	s.flushed = true
	return nil
}

func TestRun_FillsOnlyBlankCells(t *testing.T) {
	store := newFakeStore("AS Safran Bordeaux")
	store.rows[0].Values[club.FieldEmail] = "existant@safran.fr"

	records := []*club.Record{{
		Name:  "A. S. SAFRAN BORDEAUX",
		Email: "nouveau@safran.fr",
		Phone: "0556123456",
	}}

	report, err := New(store).Run(records, false)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Matched != 1 || report.Appended != 0 {
		t.Errorf("report = %+v, want 1 matched, 0 appended", report)
	}
	if report.CellsFilled != 1 {
		t.Errorf("CellsFilled = %d, want 1 (phone only)", report.CellsFilled)
	}
	if got := store.rows[0].Values[club.FieldEmail]; got != "existant@safran.fr" {
		t.Errorf("existing email overwritten: %q", got)
	}
	if got := store.rows[0].Values[club.FieldPhone]; got != "0556123456" {
		t.Errorf("phone = %q, want filled", got)
	}
	if !store.flushed {
		t.Error("store not flushed")
	}
}

func TestRun_AppendsUnmatched(t *testing.T) {
	store := newFakeStore("FC Nantes")

	records := []*club.Record{{Name: "US ORVAULT", Email: "contact@usorvault.fr"}}

	report, err := New(store).Run(records, false)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Appended != 1 || report.Matched != 0 {
		t.Errorf("report = %+v, want 1 appended", report)
	}
	if len(store.rows) != 2 {
		t.Fatalf("store has %d rows, want 2", len(store.rows))
	}
	if store.rows[1].Values[club.FieldName] != "US ORVAULT" {
		t.Errorf("appended row = %+v", store.rows[1].Values)
	}
}

func TestRun_DuplicateInBatchMatchesAppendedRow(t *testing.T) {
	store := newFakeStore()

	records := []*club.Record{
		{Name: "US ORVAULT", Email: "contact@usorvault.fr"},
		{Name: "U.S. ORVAULT", Phone: "0240998877"},
	}

	report, err := New(store).Run(records, false)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if report.Appended != 1 {
		t.Errorf("Appended = %d, want 1 (second occurrence matches the first)", report.Appended)
	}
	if report.Matched != 1 {
		t.Errorf("Matched = %d, want 1", report.Matched)
	}
	if len(store.rows) != 1 {
		t.Fatalf("store has %d rows, want 1", len(store.rows))
	}
	values := store.rows[0].Values
	if values[club.FieldEmail] != "contact@usorvault.fr" || values[club.FieldPhone] != "0240998877" {
		t.Errorf("merged row = %+v", values)
	}
}

func TestRun_SecondRunWritesNothing(t *testing.T) {
	store := newFakeStore()
	records := []*club.Record{{
		Name:  "FC NANTES",
		Email: "contact@fcnantes.fr",
		Phone: "0240123456",
	}}

	if _, err := New(store).Run(records, false); err != nil {
		t.Fatal(err)
	}
	report, err := New(store).Run(records, false)
	if err != nil {
		t.Fatal(err)
	}

	if report.Appended != 0 {
		t.Errorf("second run Appended = %d, want 0", report.Appended)
	}
	if report.CellsFilled != 0 {
		t.Errorf("second run CellsFilled = %d, want 0", report.CellsFilled)
	}
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	store := newFakeStore("FC Nantes")
	records := []*club.Record{
		{Name: "FC NANTES", Email: "contact@fcnantes.fr"},
		{Name: "US ORVAULT"},
	}

	report, err := New(store).Run(records, true)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !report.DryRun {
		t.Error("DryRun flag not set")
	}
	if report.Matched != 1 || report.Appended != 1 || report.CellsFilled != 1 {
		t.Errorf("report = %+v", report)
	}
	if len(store.rows) != 1 {
		t.Errorf("store has %d rows, want 1 (dry run)", len(store.rows))
	}
	if store.rows[0].Values[club.FieldEmail] != "" {
		t.Error("dry run wrote a cell")
	}
	if store.flushed {
		t.Error("dry run flushed the store")
	}
}

func TestRun_SkipsNotFoundRecords(t *testing.T) {
	store := newFakeStore()
	records := []*club.Record{nil, {Name: "  "}, {Name: "FC NANTES"}}

	report, err := New(store).Run(records, false)
	if err != nil {
		t.Fatal(err)
	}
	if report.Records != 1 || report.Appended != 1 {
		t.Errorf("report = %+v, want 1 record, 1 appended", report)
	}
}

func TestRun_PerRecordFailureContinues(t *testing.T) {
	store := newFakeStore()
	store.failAfter = 1
	store.failAppend = errors.New("row rejected")

	records := []*club.Record{
		{Name: "FC NANTES"},
		{Name: "US ORVAULT"},
		{Name: "RC LENS"},
	}

	report, err := New(store).Run(records, false)
	if err != nil {
		t.Fatalf("Run() error = %v, want nil (per-record failures are counted)", err)
	}
	if report.FailedWrites != 2 {
		t.Errorf("FailedWrites = %d, want 2", report.FailedWrites)
	}
	if len(report.Committed) != 1 {
		t.Errorf("Committed = %v, want the first record only", report.Committed)
	}
}

func TestRun_StoreUnavailableAborts(t *testing.T) {
	store := newFakeStore()
	store.failAfter = 1
	store.failAppend = fmt.Errorf("%w: connection lost", dataset.ErrUnavailable)

	records := []*club.Record{
		{Name: "FC NANTES"},
		{Name: "US ORVAULT"},
		{Name: "RC LENS"},
	}

	report, err := New(store).Run(records, false)
	if !errors.Is(err, dataset.ErrUnavailable) {
		t.Fatalf("Run() error = %v, want ErrUnavailable", err)
	}
	if len(report.Committed) != 1 || report.Committed[0] != "FC NANTES" {
		t.Errorf("Committed = %v", report.Committed)
	}
	if len(report.Pending) != 2 {
		t.Errorf("Pending = %v, want the two unwritten records", report.Pending)
	}
}
