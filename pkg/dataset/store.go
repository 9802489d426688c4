package dataset

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/threadnet-protocol/threadnet-go/pkg/meshcop"
	"github.com/threadnet-protocol/threadnet-go/pkg/persistence"
)

// Store is the persisted collection of operational datasets.
type Store struct {
	mu sync.Mutex

	logger *slog.Logger
	state  *persistence.DatasetStateStore

	// datasets holds insertion order; byID indexes the same values.
	datasets []*Dataset
	byID     map[string]*Dataset

	// preferredID designates the preferred dataset, "" when the store is
	// empty.
	preferredID string
}

// NewStore creates a dataset store backed by the given state file and loads
// any previously persisted collection.
func NewStore(state *persistence.DatasetStateStore, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		logger: logger,
		state:  state,
		byID:   make(map[string]*Dataset),
	}

	saved, err := state.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset state: %w", err)
	}
	if saved != nil {
		for _, rec := range saved.Datasets {
			ds := &Dataset{
				ID:      rec.ID,
				Source:  rec.Source,
				TLV:     rec.TLV,
				Created: rec.Created,
			}
			s.datasets = append(s.datasets, ds)
			s.byID[ds.ID] = ds
		}
		s.preferredID = saved.PreferredID
		logger.Debug("loaded dataset state",
			"datasets", len(s.datasets), "preferred", s.preferredID)
	}

	return s, nil
}

// Add validates and stores a new dataset. The TLV blob is decoded before
// anything is mutated; a meshcop.InvalidFormatError leaves the store
// untouched. The first dataset ever added becomes the preferred dataset.
func (s *Store) Add(source, tlv string) (*Dataset, error) {
	if _, err := meshcop.ParseHex(tlv); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ds := &Dataset{
		ID:      uuid.NewString(),
		Source:  source,
		TLV:     tlv,
		Created: time.Now().UTC(),
	}

	s.datasets = append(s.datasets, ds)
	s.byID[ds.ID] = ds
	wasPreferred := s.preferredID
	if s.preferredID == "" {
		s.preferredID = ds.ID
	}

	if err := s.save(); err != nil {
		// Persistence failures must not be masked; roll back so the
		// in-memory view matches disk.
		s.datasets = s.datasets[:len(s.datasets)-1]
		delete(s.byID, ds.ID)
		s.preferredID = wasPreferred
		return nil, err
	}

	s.logger.Info("dataset added",
		"dataset_id", ds.ID, "source", source, "preferred", s.preferredID == ds.ID)
	return ds, nil
}

// Get returns the dataset with the given ID.
func (s *Store) Get(id string) (*Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ds, ok := s.byID[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return ds, nil
}

// List returns all datasets in insertion order.
func (s *Store) List() []*Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*Dataset, len(s.datasets))
	copy(out, s.datasets)
	return out
}

// Len returns the number of stored datasets.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.datasets)
}

// Preferred returns the ID of the preferred dataset, or "" when the store is
// empty.
func (s *Store) Preferred() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preferredID
}

// SetPreferred designates the dataset with the given ID as preferred.
func (s *Store) SetPreferred(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return &NotFoundError{ID: id}
	}

	was := s.preferredID
	s.preferredID = id
	if err := s.save(); err != nil {
		s.preferredID = was
		return err
	}

	s.logger.Info("preferred dataset changed", "dataset_id", id)
	return nil
}

// Delete removes the dataset with the given ID.
//
// Deleting the preferred dataset fails with ErrDeletePreferred while other
// datasets remain. When the preferred dataset is the sole entry, deleting it
// is allowed and clears the preferred designation.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return &NotFoundError{ID: id}
	}
	if id == s.preferredID && len(s.datasets) > 1 {
		return ErrDeletePreferred
	}

	idx := -1
	for i, ds := range s.datasets {
		if ds.ID == id {
			idx = i
			break
		}
	}

	removed := s.datasets[idx]
	s.datasets = append(s.datasets[:idx], s.datasets[idx+1:]...)
	delete(s.byID, id)
	wasPreferred := s.preferredID
	if id == s.preferredID {
		s.preferredID = ""
	}

	if err := s.save(); err != nil {
		s.datasets = append(s.datasets[:idx], append([]*Dataset{removed}, s.datasets[idx:]...)...)
		s.byID[id] = removed
		s.preferredID = wasPreferred
		return err
	}

	s.logger.Info("dataset deleted", "dataset_id", id)
	return nil
}

// save persists the current collection. Callers must hold s.mu.
func (s *Store) save() error {
	state := &persistence.DatasetState{
		Datasets:    make([]persistence.DatasetRecord, 0, len(s.datasets)),
		PreferredID: s.preferredID,
	}
	for _, ds := range s.datasets {
		state.Datasets = append(state.Datasets, persistence.DatasetRecord{
			ID:      ds.ID,
			Source:  ds.Source,
			TLV:     ds.TLV,
			Created: ds.Created,
		})
	}

	if err := s.state.Save(state); err != nil {
		return fmt.Errorf("failed to save dataset state: %w", err)
	}
	return nil
}
