package discovery

import (
	"errors"
	"time"
)

// Service type constants for mDNS.
const (
	// ServiceTypeBorderRouter is the MeshCoP border agent service type.
	ServiceTypeBorderRouter = "_meshcop._udp"

	// Domain is the mDNS domain.
	Domain = "local"
)

// TXT record key constants.
const (
	TXTKeyExtendedPanID   = "xp" // Extended PAN ID (raw bytes, required)
	TXTKeyNetworkName     = "nn" // Thread network name
	TXTKeyVendorName      = "vn" // Border router vendor name
	TXTKeyModelName       = "mn" // Border router model name
	TXTKeyExtendedAddress = "xa" // Border agent extended address
	TXTKeyThreadVersion   = "tv" // Thread version string
	TXTKeyStateBitmap     = "sb" // Border agent state bitmap
)

// Timing constants.
const (
	// ResolveTimeout is the default timeout for resolving an announced
	// service instance. Resolutions that exceed it fail silently; the
	// router is simply never discovered.
	ResolveTimeout = 10 * time.Second
)

// KeyLength is the length of a router fingerprint (16 hex chars = 64 bits).
const KeyLength = 16

// Discovery errors.
var (
	ErrAlreadySubscribed = errors.New("discovery already subscribed")
	ErrNotSubscribed     = errors.New("discovery not subscribed")
	ErrMissingExtPanID   = errors.New("announcement has no extended PAN ID")
	ErrNotFound          = errors.New("service not found")
)

// knownBrands maps advertised vendor names to brand identifiers.
var knownBrands = map[string]string{
	"Apple Inc.":    "apple",
	"Aqara":         "aqara",
	"eero":          "eero",
	"Google Inc.":   "google",
	"HomeAssistant": "homeassistant",
	"OpenThread":    "openthread",
}

// BrandForVendor returns the brand identifier for an advertised vendor name,
// or "" when the vendor is not recognized.
func BrandForVendor(vendorName string) string {
	return knownBrands[vendorName]
}

// Router is a discovered Thread border router.
type Router struct {
	// Key is the stable fingerprint derived from the extended PAN ID.
	// Announcements under different instance names but the same extended
	// PAN ID share a key and collapse to one router.
	Key string

	// ExtendedPanID is the Thread network's extended PAN ID, lowercase hex.
	ExtendedPanID string

	// NetworkName is the Thread network name (from TXT "nn").
	NetworkName string

	// ModelName is the border router model (from TXT "mn").
	ModelName string

	// VendorName is the border router vendor (from TXT "vn").
	VendorName string

	// Brand is derived from VendorName, "" when unrecognized.
	Brand string

	// ThreadVersion is the advertised Thread version (from TXT "tv"),
	// "" when absent or unparseable.
	ThreadVersion string

	// Server is the resolved host name of the border agent.
	Server string

	// Port is the border agent service port.
	Port uint16

	// Addresses contains resolved IP addresses.
	Addresses []string
}

// RouterInfo contains the fields decoded from a border agent TXT record.
type RouterInfo struct {
	// ExtendedPanID is the raw extended PAN ID bytes (required).
	ExtendedPanID []byte

	// NetworkName is the Thread network name.
	NetworkName string

	// VendorName is the vendor name.
	VendorName string

	// ModelName is the model name.
	ModelName string

	// ThreadVersion is the raw advertised Thread version string.
	ThreadVersion string

	// ExtendedAddress is the border agent extended address, when present.
	ExtendedAddress []byte
}
