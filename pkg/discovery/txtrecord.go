package discovery

import (
	"fmt"
	"strings"
)

// TXTRecordMap is a map of TXT record key-value pairs. Values are the raw
// record bytes; MeshCoP publishes binary values (xp, xa) alongside UTF-8
// ones (nn, vn, mn).
type TXTRecordMap map[string]string

// DecodeRouterTXT parses the TXT records of a border agent announcement.
// The extended PAN ID is required; everything else is optional.
func DecodeRouterTXT(txt TXTRecordMap) (*RouterInfo, error) {
	xp, ok := txt[TXTKeyExtendedPanID]
	if !ok || xp == "" {
		return nil, fmt.Errorf("%w: missing %s", ErrMissingExtPanID, TXTKeyExtendedPanID)
	}

	info := &RouterInfo{
		ExtendedPanID: []byte(xp),
		NetworkName:   txt[TXTKeyNetworkName],
		VendorName:    txt[TXTKeyVendorName],
		ModelName:     txt[TXTKeyModelName],
		ThreadVersion: txt[TXTKeyThreadVersion],
	}
	if xa, ok := txt[TXTKeyExtendedAddress]; ok {
		info.ExtendedAddress = []byte(xa)
	}

	return info, nil
}

// StringsToTXTRecords parses a slice of "key=value" strings into a TXTRecordMap.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap)
	for _, s := range strs {
		parts := strings.SplitN(s, "=", 2)
		if len(parts) == 2 {
			txt[parts[0]] = parts[1]
		} else if len(parts) == 1 && parts[0] != "" {
			// Key without value (boolean flag)
			txt[parts[0]] = ""
		}
	}
	return txt
}
