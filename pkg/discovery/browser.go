package discovery

import (
	"context"
	"encoding/hex"

	"github.com/threadnet-protocol/threadnet-go/pkg/version"
)

// ServiceListener receives raw DNS-SD service lifecycle callbacks from a
// ServiceBrowser. Callbacks carry only the service type and instance name;
// attributes must be fetched with Resolve.
type ServiceListener interface {
	// AddService is called when an instance of the subscribed service
	// type appears.
	AddService(serviceType, instance string)

	// UpdateService is called when a known instance re-announces.
	UpdateService(serviceType, instance string)

	// RemoveService is called when an instance announcement is withdrawn.
	RemoveService(serviceType, instance string)
}

// ServiceBrowser is the transport-level DNS-SD capability RouterDiscovery
// is built on: subscribe to announcements of one service type and resolve
// instance names to their records.
type ServiceBrowser interface {
	// Subscribe registers a listener for announcements of the given
	// service type. Only one subscription is active at a time.
	Subscribe(serviceType string, listener ServiceListener) error

	// Unsubscribe cancels the active subscription and releases the
	// underlying multicast listener.
	Unsubscribe() error

	// Resolve returns the address, port and TXT records of the named
	// instance. It blocks until the instance is resolved or the context
	// is done.
	Resolve(ctx context.Context, serviceType, instance string) (*ServiceEntry, error)
}

// ServiceEntry is a resolved DNS-SD service instance.
type ServiceEntry struct {
	// Instance is the service instance name.
	Instance string

	// Host is the target host name.
	Host string

	// Port is the service port.
	Port uint16

	// Text contains the raw TXT records as "key=value" strings.
	Text []string

	// Addresses contains resolved IP addresses.
	Addresses []string
}

// ToRouter converts a resolved border agent entry to a Router record. An
// advertised Thread version that does not parse as "major.minor[.patch]"
// is dropped rather than failing the whole entry.
func (e *ServiceEntry) ToRouter() (*Router, error) {
	txt := StringsToTXTRecords(e.Text)
	info, err := DecodeRouterTXT(txt)
	if err != nil {
		return nil, err
	}

	threadVersion := info.ThreadVersion
	if _, err := version.Parse(threadVersion); err != nil {
		threadVersion = ""
	}

	return &Router{
		Key:           RouterKey(info.ExtendedPanID),
		ExtendedPanID: hex.EncodeToString(info.ExtendedPanID),
		NetworkName:   info.NetworkName,
		ModelName:     info.ModelName,
		VendorName:    info.VendorName,
		Brand:         BrandForVendor(info.VendorName),
		ThreadVersion: threadVersion,
		Server:        e.Host,
		Port:          e.Port,
		Addresses:     e.Addresses,
	}, nil
}
