package fingerprint

import (
	"fmt"
	"hash/crc64"
	"strconv"
)

// Polynomial is the reflected Jones polynomial used for track keys.
// Changing it orphans every stored counter row, so it is part of the on-disk format.
const Polynomial = 0xad93d23594c935a9

// KeyLen is the length of the textual form of a Key.
const KeyLen = 16

var table = crc64.MakeTable(Polynomial)

// Key is the 64-bit fingerprint of a track path.
type Key uint64

// Of returns the fingerprint of a track path.
// CRC-64 (reflected, LSB first) with initial state 0 and no final XOR. hash/crc64 inverts the state
// on entry and exit, so the state is pre- and post-inverted to cancel that out.
// Distinct paths may collide; that is accepted and never detected.
func Of(path string) Key {
	return Key(^crc64.Update(^uint64(0), table, []byte(path)))
}

// String returns the 16 character lowercase hex form stored in the database.
func (k Key) String() string {
	return fmt.Sprintf("%016x", uint64(k))
}

// ParseKey parses the textual form produced by Key.String.
func ParseKey(s string) (Key, error) {
	if len(s) != KeyLen {
		return 0, fmt.Errorf("track key %q: want %d hex characters, got %d", s, KeyLen, len(s))
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return 0, fmt.Errorf("track key %q: invalid character %q", s, c)
		}
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("track key %q: %w", s, err)
	}
	return Key(v), nil
}

// OfString is a convenience for callers that only need the stored form.
func OfString(path string) string {
	return Of(path).String()
}
