package discovery

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// txtStrings renders a TXTRecordMap in the "key=value" form mDNS libraries
// deliver.
func txtStrings(txt TXTRecordMap) []string {
	out := make([]string, 0, len(txt))
	for k, v := range txt {
		out = append(out, k+"="+v)
	}
	return out
}

func TestDecodeRouterTXT(t *testing.T) {
	xp := string([]byte{0xe6, 0x0f, 0xc7, 0xc1, 0x86, 0x21, 0x2c, 0xe5})

	txt := TXTRecordMap{
		TXTKeyExtendedPanID: xp,
		TXTKeyNetworkName:   "OpenThread HC",
		TXTKeyVendorName:    "HomeAssistant",
		TXTKeyModelName:     "OpenThreadBorderRouter",
		TXTKeyThreadVersion: "1.3.0",
	}

	info, err := DecodeRouterTXT(txt)
	require.NoError(t, err)

	assert.Equal(t, []byte(xp), info.ExtendedPanID)
	assert.Equal(t, "OpenThread HC", info.NetworkName)
	assert.Equal(t, "HomeAssistant", info.VendorName)
	assert.Equal(t, "OpenThreadBorderRouter", info.ModelName)
	assert.Equal(t, "1.3.0", info.ThreadVersion)
	assert.Nil(t, info.ExtendedAddress)
}

func TestDecodeRouterTXTMissingExtPanID(t *testing.T) {
	tests := []struct {
		name string
		txt  TXTRecordMap
	}{
		{"NoKey", TXTRecordMap{TXTKeyNetworkName: "SomeNet"}},
		{"EmptyValue", TXTRecordMap{TXTKeyExtendedPanID: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRouterTXT(tt.txt)
			assert.True(t, errors.Is(err, ErrMissingExtPanID))
		})
	}
}

func TestStringsToTXTRecords(t *testing.T) {
	txt := StringsToTXTRecords([]string{"nn=My Network", "xp=\x11\x22", "flag", "a=b=c"})

	assert.Equal(t, "My Network", txt["nn"])
	assert.Equal(t, "\x11\x22", txt["xp"])
	assert.Equal(t, "", txt["flag"])
	assert.Equal(t, "b=c", txt["a"])
}

func TestBrandForVendor(t *testing.T) {
	assert.Equal(t, "google", BrandForVendor("Google Inc."))
	assert.Equal(t, "homeassistant", BrandForVendor("HomeAssistant"))
	assert.Equal(t, "apple", BrandForVendor("Apple Inc."))
	assert.Equal(t, "", BrandForVendor("Unknown Vendor GmbH"))
}

func TestServiceEntryToRouter(t *testing.T) {
	xp := []byte{0xe6, 0x0f, 0xc7, 0xc1, 0x86, 0x21, 0x2c, 0xe5}

	entry := &ServiceEntry{
		Instance: "HomeAssistant OpenThreadBorderRouter #0BBF",
		Host:     "core-silabs-multiprotocol.local.",
		Port:     49153,
		Text: txtStrings(TXTRecordMap{
			TXTKeyExtendedPanID: string(xp),
			TXTKeyNetworkName:   "OpenThread HC",
			TXTKeyVendorName:    "HomeAssistant",
			TXTKeyModelName:     "OpenThreadBorderRouter",
			TXTKeyThreadVersion: "1.3.0",
		}),
		Addresses: []string{"192.168.0.115"},
	}

	router, err := entry.ToRouter()
	require.NoError(t, err)

	assert.Equal(t, RouterKey(xp), router.Key)
	assert.Equal(t, "e60fc7c186212ce5", router.ExtendedPanID)
	assert.Equal(t, "OpenThread HC", router.NetworkName)
	assert.Equal(t, "OpenThreadBorderRouter", router.ModelName)
	assert.Equal(t, "HomeAssistant", router.VendorName)
	assert.Equal(t, "homeassistant", router.Brand)
	assert.Equal(t, "1.3.0", router.ThreadVersion)
	assert.Equal(t, "core-silabs-multiprotocol.local.", router.Server)
	assert.Equal(t, uint16(49153), router.Port)
	assert.Equal(t, []string{"192.168.0.115"}, router.Addresses)
}

func TestServiceEntryToRouterBadThreadVersion(t *testing.T) {
	xp := []byte{0xe6, 0x0f, 0xc7, 0xc1, 0x86, 0x21, 0x2c, 0xe5}

	entry := &ServiceEntry{
		Instance: "agent",
		Text: txtStrings(TXTRecordMap{
			TXTKeyExtendedPanID: string(xp),
			TXTKeyThreadVersion: "banana",
		}),
	}

	router, err := entry.ToRouter()
	require.NoError(t, err)
	assert.Equal(t, "", router.ThreadVersion)
}

func TestServiceEntryToRouterNoExtPanID(t *testing.T) {
	entry := &ServiceEntry{
		Instance: "bad agent",
		Text:     []string{"nn=SomeNet"},
	}

	_, err := entry.ToRouter()
	assert.True(t, errors.Is(err, ErrMissingExtPanID))
}
