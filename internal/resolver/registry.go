package resolver

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const registryFile = "districts.json"

// Endpoint is a validated district entry point plus the layout tag that
// selects its extraction strategy.
type Endpoint struct {
	URL    string `json:"url"`
	Layout string `json:"layout"`
}

// Registry maps district names to validated endpoints. It is produced by
// Resolve, persisted under the data directory, and consumed read-only by the
// crawl controller. Stale entries are corrected by re-running resolution,
// never invalidated automatically.
type Registry struct {
	Endpoints map[string]Endpoint `json:"endpoints"`
	// Order preserves the probe order of valid districts.
	Order     []string `json:"order"`
	UpdatedAt string   `json:"updated_at"`
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{Endpoints: make(map[string]Endpoint)}
}

// Add appends a valid district endpoint.
func (r *Registry) Add(district string, ep Endpoint) {
	if _, exists := r.Endpoints[district]; !exists {
		r.Order = append(r.Order, district)
	}
	r.Endpoints[district] = ep
}

// Lookup returns the endpoint for a district.
func (r *Registry) Lookup(district string) (Endpoint, bool) {
	ep, ok := r.Endpoints[district]
	return ep, ok
}

// Store persists the endpoint registry under a data directory.
type Store struct {
	dataDir string
}

// NewStore creates a registry store, expanding ~ and creating the directory
// if needed.
func NewStore(dataDir string) (*Store, error) {
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Store{dataDir: dataDir}, nil
}

func (s *Store) path() string {
	return filepath.Join(s.dataDir, registryFile)
}

// Load reads the persisted registry. A missing file yields an empty
// registry, not an error.
func (s *Store) Load() (*Registry, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return NewRegistry(), nil
		}
		return nil, fmt.Errorf("reading registry: %w", err)
	}

	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parsing registry: %w", err)
	}
	if reg.Endpoints == nil {
		reg.Endpoints = make(map[string]Endpoint)
	}
	return &reg, nil
}

// Save writes the registry to disk.
func (s *Store) Save(reg *Registry) error {
	reg.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding registry: %w", err)
	}

	if err := os.WriteFile(s.path(), data, 0644); err != nil {
		return fmt.Errorf("writing registry: %w", err)
	}
	return nil
}
