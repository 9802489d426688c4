package discovery

import (
	"crypto/sha256"
	"encoding/hex"
)

// RouterKey generates the registry key for a border router from its extended
// PAN ID.
//
// The key is the first 64 bits (16 hex chars) of SHA-256(extended PAN ID),
// so it is stable across transient properties like instance name, host and
// addresses: re-announcements of the same Thread network always map to the
// same entry.
func RouterKey(extPanID []byte) string {
	hash := sha256.Sum256(extPanID)
	return hex.EncodeToString(hash[:8])
}

// ValidateKey checks if a key string is a valid 64-bit fingerprint (16 hex chars).
func ValidateKey(key string) bool {
	if len(key) != KeyLength {
		return false
	}
	return isHexString(key)
}

// isHexString reports whether s consists only of hex digits.
func isHexString(s string) bool {
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
