package log

import (
	"io"
	"path/filepath"
	"testing"
)

func TestFileLoggerAndReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.tlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}

	logger.Log(DatasetEvent(ActionAdded, "ds-1", "Google"))
	logger.Log(DiscoveryEvent(ActionDiscovered, "f6a99b425a67abed", "router A"))
	logger.Log(DiscoveryEvent(ActionRemoved, "f6a99b425a67abed", "router A"))

	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Logging after close is silently ignored.
	logger.Log(DatasetEvent(ActionDeleted, "ds-1", ""))
	if err := logger.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	t.Run("ReadAll", func(t *testing.T) {
		r, err := NewReader(path)
		if err != nil {
			t.Fatalf("NewReader() error = %v", err)
		}
		defer r.Close()

		var count int
		for {
			_, err := r.Next()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatalf("Next() error = %v", err)
			}
			count++
		}
		if count != 3 {
			t.Errorf("read %d events, want 3", count)
		}
	})

	t.Run("Filtered", func(t *testing.T) {
		cat := CategoryDiscovery
		action := ActionRemoved
		r, err := NewFilteredReader(path, Filter{Category: &cat, Action: &action})
		if err != nil {
			t.Fatalf("NewFilteredReader() error = %v", err)
		}
		defer r.Close()

		event, err := r.Next()
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if event.RouterKey != "f6a99b425a67abed" {
			t.Errorf("RouterKey = %q, want %q", event.RouterKey, "f6a99b425a67abed")
		}

		if _, err := r.Next(); err != io.EOF {
			t.Errorf("Next() error = %v, want io.EOF", err)
		}
	})

	t.Run("FilterByKey", func(t *testing.T) {
		r, err := NewFilteredReader(path, Filter{RouterKey: "no-such-key"})
		if err != nil {
			t.Fatalf("NewFilteredReader() error = %v", err)
		}
		defer r.Close()

		if _, err := r.Next(); err != io.EOF {
			t.Errorf("Next() error = %v, want io.EOF", err)
		}
	})
}

func TestMultiLogger(t *testing.T) {
	var a, b recorder
	m := NewMultiLogger(&a, &b)
	m.Log(DatasetEvent(ActionAdded, "ds-1", "test"))

	if len(a.events) != 1 || len(b.events) != 1 {
		t.Errorf("events = %d/%d, want 1/1", len(a.events), len(b.events))
	}
}

// recorder collects events for assertions.
type recorder struct {
	events []Event
}

func (r *recorder) Log(event Event) { r.events = append(r.events, event) }
