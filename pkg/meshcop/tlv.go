package meshcop

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// InvalidFormatError reports a malformed operational dataset: a blob that
// is not valid hex, an unrecognized type tag, or a truncated record.
//
// Offset is the byte position of the record that failed. For an unrecognized
// type tag, Type carries the offending tag and the message is
// "unknown type <n>"; for a truncated record the message names the offset.
type InvalidFormatError struct {
	Type      uint8
	Offset    int
	truncated bool
	hexErr    error
}

func (e *InvalidFormatError) Error() string {
	switch {
	case e.hexErr != nil:
		return "invalid hex encoding: " + e.hexErr.Error()
	case e.truncated:
		return fmt.Sprintf("truncated TLV at offset %d", e.Offset)
	default:
		return fmt.Sprintf("unknown type %d", e.Type)
	}
}

// Unwrap returns the underlying hex decode error, or nil for structural
// failures.
func (e *InvalidFormatError) Unwrap() error { return e.hexErr }

// Dataset is a decoded operational dataset: a mapping from TLV type to raw
// value bytes. Field accessors interpret the common display fields.
type Dataset map[TLVType][]byte

// Parse decodes an operational dataset TLV blob.
func Parse(data []byte) (Dataset, error) {
	ds := make(Dataset)
	pos := 0
	for pos < len(data) {
		typ := TLVType(data[pos])
		if !typ.Known() {
			return nil, &InvalidFormatError{Type: uint8(typ), Offset: pos}
		}
		if pos+1 >= len(data) {
			return nil, &InvalidFormatError{Offset: pos, truncated: true}
		}
		length := int(data[pos+1])
		if pos+2+length > len(data) {
			return nil, &InvalidFormatError{Offset: pos, truncated: true}
		}
		val := make([]byte, length)
		copy(val, data[pos+2:pos+2+length])
		ds[typ] = val
		pos += 2 + length
	}
	return ds, nil
}

// ParseHex decodes a hex-encoded operational dataset TLV blob.
func ParseHex(s string) (Dataset, error) {
	data, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, &InvalidFormatError{hexErr: err}
	}
	return Parse(data)
}

// NetworkName returns the network name field, or "" when absent.
func (d Dataset) NetworkName() string {
	return string(d[TypeNetworkName])
}

// PanID returns the PAN ID as lowercase hex (4 chars), or "" when absent.
func (d Dataset) PanID() string {
	return hex.EncodeToString(d[TypePanID])
}

// ExtendedPanID returns the extended PAN ID as lowercase hex (16 chars),
// or "" when absent.
func (d Dataset) ExtendedPanID() string {
	return hex.EncodeToString(d[TypeExtPanID])
}

// ExtendedPanIDBytes returns the raw extended PAN ID, or nil when absent.
func (d Dataset) ExtendedPanIDBytes() []byte {
	return d[TypeExtPanID]
}

// ActiveTimestamp returns the active timestamp's seconds component, or
// false when the field is absent or malformed. The TLV value packs 48 bits
// of seconds, 15 bits of ticks and an authoritative flag into 8 bytes.
func (d Dataset) ActiveTimestamp() (uint64, bool) {
	val, ok := d[TypeActiveTimestamp]
	if !ok || len(val) != 8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(val) >> 16, true
}

// Channel returns the channel number, or false when the field is absent or
// malformed. The channel TLV value is a one-byte channel page followed by a
// two-byte channel number.
func (d Dataset) Channel() (uint16, bool) {
	val, ok := d[TypeChannel]
	if !ok || len(val) != 3 {
		return 0, false
	}
	return binary.BigEndian.Uint16(val[1:]), true
}
