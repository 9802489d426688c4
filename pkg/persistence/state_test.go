package persistence

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDatasetStateStore(t *testing.T) {
	t.Run("NewDatasetStateStore", func(t *testing.T) {
		dir := t.TempDir()
		store := NewDatasetStateStore(filepath.Join(dir, "datasets.json"))
		if store == nil {
			t.Fatal("NewDatasetStateStore() returned nil")
		}
	})

	t.Run("SaveAndLoadEmpty", func(t *testing.T) {
		dir := t.TempDir()
		store := NewDatasetStateStore(filepath.Join(dir, "datasets.json"))

		state := &DatasetState{
			Version: 1,
			SavedAt: time.Now(),
		}

		if err := store.Save(state); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if got.Version != 1 {
			t.Errorf("Version = %d, want 1", got.Version)
		}
		if got.PreferredID != "" {
			t.Errorf("PreferredID = %q, want empty", got.PreferredID)
		}
	})

	t.Run("LoadNonExistent", func(t *testing.T) {
		dir := t.TempDir()
		store := NewDatasetStateStore(filepath.Join(dir, "nonexistent.json"))

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		// Should return nil (empty state) for non-existent file
		if got != nil {
			t.Errorf("Load() = %v, want nil for non-existent file", got)
		}
	})

	t.Run("DatasetRoundTrip", func(t *testing.T) {
		dir := t.TempDir()
		store := NewDatasetStateStore(filepath.Join(dir, "datasets.json"))

		created := time.Now().Add(-time.Hour).UTC()
		state := &DatasetState{
			Version: 1,
			Datasets: []DatasetRecord{
				{ID: "ds-1", Source: "Google", TLV: "01021234", Created: created},
				{ID: "ds-2", Source: "Multipan", TLV: "0102ABCD", Created: created.Add(time.Minute)},
			},
			PreferredID: "ds-1",
		}

		if err := store.Save(state); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if len(got.Datasets) != 2 {
			t.Fatalf("len(Datasets) = %d, want 2", len(got.Datasets))
		}
		if got.Datasets[0].ID != "ds-1" {
			t.Errorf("Datasets[0].ID = %q, want %q", got.Datasets[0].ID, "ds-1")
		}
		if got.Datasets[1].Source != "Multipan" {
			t.Errorf("Datasets[1].Source = %q, want %q", got.Datasets[1].Source, "Multipan")
		}
		if got.PreferredID != "ds-1" {
			t.Errorf("PreferredID = %q, want %q", got.PreferredID, "ds-1")
		}
		if !got.Datasets[0].Created.Equal(created) {
			t.Errorf("Datasets[0].Created = %v, want %v", got.Datasets[0].Created, created)
		}
	})

	t.Run("ForwardCompatibleFields", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "datasets.json")

		// A future version may add fields; they must not break loading.
		future := `{
  "version": 1,
  "saved_at": "2026-01-02T15:04:05Z",
  "datasets": [{"id": "ds-1", "source": "test", "tlv": "01021234", "created": "2026-01-02T15:04:05Z", "pending": true}],
  "preferred_id": "ds-1",
  "preferred_border_agent": "aabbccdd"
}`
		if err := os.WriteFile(path, []byte(future), 0600); err != nil {
			t.Fatal(err)
		}

		store := NewDatasetStateStore(path)
		got, err := store.Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if len(got.Datasets) != 1 || got.Datasets[0].ID != "ds-1" {
			t.Errorf("unexpected datasets: %+v", got.Datasets)
		}
	})

	t.Run("Clear", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "datasets.json")
		store := NewDatasetStateStore(path)

		if err := store.Save(&DatasetState{}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		if err := store.Clear(); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("state file still exists after Clear()")
		}

		// Clearing a missing file is not an error.
		if err := store.Clear(); err != nil {
			t.Errorf("Clear() on missing file error = %v", err)
		}
	})
}
