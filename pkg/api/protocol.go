package api

import (
	"errors"
	"time"

	"github.com/threadnet-protocol/threadnet-go/pkg/dataset"
	"github.com/threadnet-protocol/threadnet-go/pkg/discovery"
	"github.com/threadnet-protocol/threadnet-go/pkg/meshcop"
)

// Command names accepted over the WebSocket API.
const (
	CommandAddDatasetTLV       = "add_dataset_tlv"
	CommandDeleteDataset       = "delete_dataset"
	CommandListDatasets        = "list_datasets"
	CommandGetDatasetTLV       = "get_dataset_tlv"
	CommandSetPreferredDataset = "set_preferred_dataset"
	CommandDiscoverRouters     = "discover_routers"
	CommandUnsubscribe         = "unsubscribe"
)

// Error codes returned in failed responses.
const (
	CodeInvalidFormat  = "invalid_format"
	CodeNotFound       = "not_found"
	CodeNotAllowed     = "not_allowed"
	CodeUnknownCommand = "unknown_command"
	CodeInternalError  = "internal_error"
)

// Message type discriminators.
const (
	MessageTypeResult = "result"
	MessageTypeEvent  = "event"
)

// Event types pushed on a discover_routers subscription.
const (
	EventRouterDiscovered = "router_discovered"
	EventRouterRemoved    = "router_removed"
)

// Request is a single client command.
type Request struct {
	ID      uint64 `json:"id"`
	Command string `json:"command"`

	// Source and TLV are set for add_dataset_tlv.
	Source string `json:"source,omitempty"`
	TLV    string `json:"tlv,omitempty"`

	// DatasetID is set for delete_dataset, get_dataset_tlv and
	// set_preferred_dataset.
	DatasetID string `json:"dataset_id,omitempty"`

	// SubscriptionID is set for unsubscribe. It names the id of the
	// discover_routers request that opened the subscription.
	SubscriptionID uint64 `json:"subscription_id,omitempty"`
}

// Response answers one Request, correlated by ID.
type Response struct {
	ID      uint64     `json:"id"`
	Type    string     `json:"type"`
	Success bool       `json:"success"`
	Result  any        `json:"result,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo describes a failed command.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// EventMessage is a pushed subscription event. ID is the subscription id,
// not a request id.
type EventMessage struct {
	ID    uint64 `json:"id"`
	Type  string `json:"type"`
	Event Event  `json:"event"`
}

// Event is a router lifecycle notification.
type Event struct {
	Type string `json:"type"`
	Key  string `json:"key"`

	// Data carries the full router record for router_discovered events.
	Data *RouterData `json:"data,omitempty"`
}

// RouterData is the wire form of a discovered border router.
type RouterData struct {
	ExtendedPanID string   `json:"extended_pan_id"`
	NetworkName   string   `json:"network_name"`
	ModelName     string   `json:"model_name"`
	VendorName    string   `json:"vendor_name"`
	Brand         string   `json:"brand"`
	ThreadVersion string   `json:"thread_version,omitempty"`
	Server        string   `json:"server"`
	Port          uint16   `json:"port,omitempty"`
	Addresses     []string `json:"addresses,omitempty"`
}

// DatasetInfo is one entry in a list_datasets result. The TLV-derived
// fields are empty when the stored blob lacks them.
type DatasetInfo struct {
	DatasetID     string `json:"dataset_id"`
	Source        string `json:"source"`
	Created       string `json:"created"`
	Preferred     bool   `json:"preferred"`
	NetworkName   string `json:"network_name,omitempty"`
	ExtendedPanID string `json:"extended_pan_id,omitempty"`
	PanID         string `json:"pan_id,omitempty"`
	Channel       uint16 `json:"channel,omitempty"`
}

// ListDatasetsResult is the result payload of list_datasets.
type ListDatasetsResult struct {
	Datasets []DatasetInfo `json:"datasets"`
}

// GetDatasetTLVResult is the result payload of get_dataset_tlv.
type GetDatasetTLVResult struct {
	TLV string `json:"tlv"`
}

// RouterDiscoveredEvent builds the event for a discovered router.
func RouterDiscoveredEvent(r *discovery.Router) Event {
	return Event{
		Type: EventRouterDiscovered,
		Key:  r.Key,
		Data: &RouterData{
			ExtendedPanID: r.ExtendedPanID,
			NetworkName:   r.NetworkName,
			ModelName:     r.ModelName,
			VendorName:    r.VendorName,
			Brand:         r.Brand,
			ThreadVersion: r.ThreadVersion,
			Server:        r.Server,
			Port:          r.Port,
			Addresses:     r.Addresses,
		},
	}
}

// RouterRemovedEvent builds the event for a withdrawn router.
func RouterRemovedEvent(key string) Event {
	return Event{
		Type: EventRouterRemoved,
		Key:  key,
	}
}

// datasetInfo converts a stored dataset to its wire form.
func datasetInfo(ds *dataset.Dataset, preferred bool) DatasetInfo {
	info := DatasetInfo{
		DatasetID: ds.ID,
		Source:    ds.Source,
		Created:   ds.Created.Format(time.RFC3339),
		Preferred: preferred,
	}

	if decoded, err := ds.Decode(); err == nil {
		info.NetworkName = decoded.NetworkName()
		info.ExtendedPanID = decoded.ExtendedPanID()
		info.PanID = decoded.PanID()
		if ch, ok := decoded.Channel(); ok {
			info.Channel = ch
		}
	}

	return info
}

// errorInfo maps a store or decoder error to its wire code and message.
func errorInfo(err error) *ErrorInfo {
	var invalid *meshcop.InvalidFormatError
	if errors.As(err, &invalid) {
		return &ErrorInfo{Code: CodeInvalidFormat, Message: invalid.Error()}
	}

	var notFound *dataset.NotFoundError
	if errors.As(err, &notFound) {
		return &ErrorInfo{Code: CodeNotFound, Message: notFound.Error()}
	}

	if errors.Is(err, dataset.ErrDeletePreferred) {
		return &ErrorInfo{Code: CodeNotAllowed, Message: dataset.ErrDeletePreferred.Error()}
	}

	return &ErrorInfo{Code: CodeInternalError, Message: err.Error()}
}
