package log

import (
	"testing"
	"time"
)

func TestEncodeDecodeEvent(t *testing.T) {
	event := Event{
		Timestamp: time.Now(),
		Category:  CategoryDiscovery,
		Action:    ActionDiscovered,
		RouterKey: "aeeb2f594b570bbf",
		Service:   "HomeAssistant OpenThreadBorderRouter._meshcop._udp.local.",
		Network:   "OpenThread HC",
	}

	data, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("EncodeEvent() error = %v", err)
	}

	got, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent() error = %v", err)
	}

	if got.Category != CategoryDiscovery {
		t.Errorf("Category = %v, want %v", got.Category, CategoryDiscovery)
	}
	if got.Action != ActionDiscovered {
		t.Errorf("Action = %v, want %v", got.Action, ActionDiscovered)
	}
	if got.RouterKey != event.RouterKey {
		t.Errorf("RouterKey = %q, want %q", got.RouterKey, event.RouterKey)
	}
	if got.Network != event.Network {
		t.Errorf("Network = %q, want %q", got.Network, event.Network)
	}
	if !got.Timestamp.Equal(event.Timestamp) {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, event.Timestamp)
	}
}

func TestEventConstructors(t *testing.T) {
	ds := DatasetEvent(ActionAdded, "ds-1", "Google")
	if ds.Category != CategoryDataset || ds.Action != ActionAdded {
		t.Errorf("DatasetEvent() = %+v", ds)
	}
	if ds.Timestamp.IsZero() {
		t.Error("DatasetEvent() timestamp not set")
	}

	disc := DiscoveryEvent(ActionRemoved, "aeeb2f594b570bbf", "some service")
	if disc.Category != CategoryDiscovery || disc.RouterKey != "aeeb2f594b570bbf" {
		t.Errorf("DiscoveryEvent() = %+v", disc)
	}
}

func TestCategoryActionStrings(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{CategoryDataset.String(), "DATASET"},
		{CategoryDiscovery.String(), "DISCOVERY"},
		{Category(99).String(), "UNKNOWN"},
		{ActionAdded.String(), "ADDED"},
		{ActionResolveFailed.String(), "RESOLVE_FAILED"},
		{ActionUnsubscribed.String(), "UNSUBSCRIBED"},
		{Action(99).String(), "UNKNOWN"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}
