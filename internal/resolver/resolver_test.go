package resolver

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/nolancacheux/webscrapping-clubs/internal/extract"
)

func testProber(client *http.Client) *Prober {
	return &Prober{client: client, marker: defaultMarker, pace: 0}
}

func TestProbe_ValidEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div class="resultats-clubs">Les clubs du district</div></body></html>`))
	}))
	defer server.Close()

	p := testProber(server.Client())
	if err := p.probe(server.URL); err != nil {
		t.Errorf("probe() error = %v, want nil", err)
	}
}

func TestProbe_StatusNotOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	p := testProber(server.Client())
	if err := p.probe(server.URL); err == nil {
		t.Error("probe() on 404 succeeded, want error")
	}
}

func TestProbe_MarkerMissing(t *testing.T) {
	// A holding page answers 200 but has no club structure; it must not be
	// mistaken for a valid endpoint.
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`<html><body>Site en construction</body></html>`))
	}))
	defer server.Close()

	p := testProber(server.Client())
	if err := p.probe(server.URL); err == nil {
		t.Error("probe() without marker succeeded, want error")
	}
	if hits != 1 {
		t.Errorf("marker miss probed %d times, want 1 (permanent, no retry)", hits)
	}
}

func TestProbe_TransientFailureRetried(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`<html><body>Les clubs</body></html>`))
	}))
	defer server.Close()

	p := testProber(server.Client())
	if err := p.probe(server.URL); err != nil {
		t.Errorf("probe() error = %v, want success on retry", err)
	}
	if hits != 2 {
		t.Errorf("probed %d times, want 2", hits)
	}
}

func TestURLTemplate(t *testing.T) {
	if got := URLTemplate("district44"); got != "https://district44.fff.fr/les-clubs/" {
		t.Errorf("URLTemplate() = %q", got)
	}
}

func TestDistricts_Table(t *testing.T) {
	districts := Districts()
	if len(districts) < 80 {
		t.Fatalf("Districts() has %d entries, want the full metropolitan table", len(districts))
	}

	seen := make(map[string]bool)
	for _, d := range districts {
		if d.Name == "" {
			t.Error("district with empty name")
		}
		if seen[d.Name] {
			t.Errorf("duplicate district %q", d.Name)
		}
		seen[d.Name] = true
		if len(d.Slugs) == 0 {
			t.Errorf("district %q has no slug candidates", d.Name)
		}
	}
}

func TestRegistry_AddLookup(t *testing.T) {
	reg := NewRegistry()
	ep := Endpoint{URL: "https://district44.fff.fr/les-clubs/", Layout: extract.LayoutDistrictList}

	reg.Add("Loire_Atlantique", ep)
	reg.Add("Nord", Endpoint{URL: "https://district59.fff.fr/les-clubs/", Layout: extract.LayoutDistrictList})
	reg.Add("Loire_Atlantique", ep) // re-add must not duplicate the order entry

	if len(reg.Order) != 2 {
		t.Errorf("Order = %v, want 2 entries", reg.Order)
	}
	if reg.Order[0] != "Loire_Atlantique" {
		t.Errorf("Order[0] = %q, want probe order preserved", reg.Order[0])
	}

	got, ok := reg.Lookup("Loire_Atlantique")
	if !ok || got.URL != ep.URL {
		t.Errorf("Lookup() = %+v, %v", got, ok)
	}
	if _, ok := reg.Lookup("Corse"); ok {
		t.Error("Lookup() of unknown district = true")
	}
}

func TestStore_SaveLoad(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	reg := NewRegistry()
	reg.Add("Nord", Endpoint{URL: "https://district59.fff.fr/les-clubs/", Layout: extract.LayoutDistrictList})
	if err := store.Save(reg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	ep, ok := loaded.Lookup("Nord")
	if !ok || ep.Layout != extract.LayoutDistrictList {
		t.Errorf("Lookup() after reload = %+v, %v", ep, ok)
	}
	if loaded.UpdatedAt == "" {
		t.Error("UpdatedAt not set on save")
	}
	if _, err := time.Parse(time.RFC3339, loaded.UpdatedAt); err != nil {
		t.Errorf("UpdatedAt not RFC3339: %v", err)
	}
}

func TestStore_LoadMissing(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "fresh"))
	if err != nil {
		t.Fatal(err)
	}
	reg, err := store.Load()
	if err != nil {
		t.Fatalf("Load() of missing registry error = %v, want empty registry", err)
	}
	if len(reg.Endpoints) != 0 {
		t.Errorf("registry = %+v, want empty", reg)
	}
}
