package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// StateVersion is the current version of the state file format.
const StateVersion = 1

// DatasetState is the persisted form of the dataset collection.
type DatasetState struct {
	// Version is the state file format version.
	Version int `json:"version"`

	// SavedAt is when the state was last saved.
	SavedAt time.Time `json:"saved_at"`

	// Datasets holds every known dataset in insertion order.
	Datasets []DatasetRecord `json:"datasets,omitempty"`

	// PreferredID is the ID of the preferred dataset, or "" when the
	// collection is empty.
	PreferredID string `json:"preferred_id,omitempty"`
}

// DatasetRecord is the persisted form of a single operational dataset.
type DatasetRecord struct {
	// ID is the stable external reference key.
	ID string `json:"id"`

	// Source identifies the submitter. Free text, not unique.
	Source string `json:"source"`

	// TLV is the canonical hex-encoded dataset blob.
	TLV string `json:"tlv"`

	// Created is when the dataset was added.
	Created time.Time `json:"created"`
}

// DatasetStateStore manages persistence of the dataset collection to a JSON file.
type DatasetStateStore struct {
	mu   sync.Mutex
	path string
}

// NewDatasetStateStore creates a new dataset state store.
func NewDatasetStateStore(path string) *DatasetStateStore {
	return &DatasetStateStore{path: path}
}

// Save persists the dataset collection to disk.
func (s *DatasetStateStore) Save(state *DatasetState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	state.Version = StateVersion
	if state.SavedAt.IsZero() {
		state.SavedAt = time.Now()
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0600)
}

// Load reads the dataset collection from disk.
// Returns nil, nil if the file doesn't exist (empty state).
func (s *DatasetStateStore) Load() (*DatasetState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &DatasetState{}
	if err := json.Unmarshal(data, state); err != nil {
		return nil, err
	}

	return state, nil
}

// Clear removes the state file.
func (s *DatasetStateStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
