package log

import "time"

// Event is a single audit record. CBOR encoding uses integer keys for
// compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// Category classifies the subsystem that produced the event.
	Category Category `cbor:"2,keyasint"`

	// Action is what happened.
	Action Action `cbor:"3,keyasint"`

	// DatasetID identifies the affected dataset (dataset events).
	DatasetID string `cbor:"4,keyasint,omitempty"`

	// Source is the dataset submitter (dataset add events).
	Source string `cbor:"5,keyasint,omitempty"`

	// RouterKey is the fingerprint of the affected border router
	// (discovery events).
	RouterKey string `cbor:"6,keyasint,omitempty"`

	// Service is the mDNS service instance name (discovery events).
	Service string `cbor:"7,keyasint,omitempty"`

	// Network is the Thread network name, when known.
	Network string `cbor:"8,keyasint,omitempty"`

	// Error carries the error message for failure events.
	Error string `cbor:"9,keyasint,omitempty"`
}

// Category classifies the subsystem producing an event.
type Category uint8

const (
	// CategoryDataset covers dataset store mutations.
	CategoryDataset Category = 0
	// CategoryDiscovery covers border router discovery.
	CategoryDiscovery Category = 1
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryDataset:
		return "DATASET"
	case CategoryDiscovery:
		return "DISCOVERY"
	default:
		return "UNKNOWN"
	}
}

// Action is the audited operation.
type Action uint8

const (
	// ActionAdded - a dataset was added to the store.
	ActionAdded Action = 0
	// ActionDeleted - a dataset was deleted from the store.
	ActionDeleted Action = 1
	// ActionPreferred - the preferred dataset changed.
	ActionPreferred Action = 2
	// ActionDiscovered - a border router was discovered or re-announced.
	ActionDiscovered Action = 3
	// ActionRemoved - a border router announcement was withdrawn.
	ActionRemoved Action = 4
	// ActionResolveFailed - a service announcement could not be resolved.
	ActionResolveFailed Action = 5
	// ActionSubscribed - a discovery session started.
	ActionSubscribed Action = 6
	// ActionUnsubscribed - a discovery session ended.
	ActionUnsubscribed Action = 7
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionAdded:
		return "ADDED"
	case ActionDeleted:
		return "DELETED"
	case ActionPreferred:
		return "PREFERRED"
	case ActionDiscovered:
		return "DISCOVERED"
	case ActionRemoved:
		return "REMOVED"
	case ActionResolveFailed:
		return "RESOLVE_FAILED"
	case ActionSubscribed:
		return "SUBSCRIBED"
	case ActionUnsubscribed:
		return "UNSUBSCRIBED"
	default:
		return "UNKNOWN"
	}
}

// DatasetEvent builds a dataset audit event stamped with the current time.
func DatasetEvent(action Action, datasetID, source string) Event {
	return Event{
		Timestamp: time.Now(),
		Category:  CategoryDataset,
		Action:    action,
		DatasetID: datasetID,
		Source:    source,
	}
}

// DiscoveryEvent builds a discovery audit event stamped with the current time.
func DiscoveryEvent(action Action, routerKey, service string) Event {
	return Event{
		Timestamp: time.Now(),
		Category:  CategoryDiscovery,
		Action:    action,
		RouterKey: routerKey,
		Service:   service,
	}
}
