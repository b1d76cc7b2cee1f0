package hlsign

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Cloid is a 16-byte client order identifier. Its canonical text form is
// "0x" followed by 32 lowercase hex characters; construction fails on
// anything else and the value never changes afterwards.
type Cloid struct {
	value string
}

// CloidFromInt renders a non-negative integer as a zero-padded cloid.
func CloidFromInt(v int64) (Cloid, error) {
	if v < 0 {
		return Cloid{}, fmt.Errorf("%w: negative value %d", ErrInvalidCloid, v)
	}
	return Cloid{value: fmt.Sprintf("0x%032x", v)}, nil
}

// CloidFromString validates s as a cloid. Hex digits may be upper case on
// input; the stored form is always lower case.
func CloidFromString(s string) (Cloid, error) {
	if !strings.HasPrefix(s, "0x") {
		return Cloid{}, fmt.Errorf("%w: missing 0x prefix: %q", ErrInvalidCloid, s)
	}

	raw := s[2:]
	if len(raw) != 32 {
		return Cloid{}, fmt.Errorf("%w: want 32 hex characters, got %d", ErrInvalidCloid, len(raw))
	}

	if _, err := hex.DecodeString(raw); err != nil {
		return Cloid{}, fmt.Errorf("%w: %q", ErrInvalidCloid, s)
	}

	return Cloid{value: "0x" + strings.ToLower(raw)}, nil
}

// String returns the canonical text form.
func (c Cloid) String() string {
	return c.value
}
