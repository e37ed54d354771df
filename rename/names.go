package rename

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"unicode/utf8"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding/unicode"
)

// ErrEncoding is returned if a replacement string cannot be stored as a
// UTF-16BE name record.
var ErrEncoding = errors.New("cannot encode name")

// NameMap maps name IDs to replacement strings.
type NameMap map[sfnt.NameID]string

// AshellNames returns the names for the ashell icon font.
func AshellNames() NameMap {
	return NameMap{
		sfnt.NameIDFamily:           "Ashell Nerd Font",
		sfnt.NameIDSubfamily:        "Regular",
		sfnt.NameIDUniqueIdentifier: "AshellNerdFont-Regular",
		sfnt.NameIDFull:             "Ashell Nerd Font Regular",
		sfnt.NameIDPostScript:       "AshellNerdFont-Regular",
	}
}

// IDs returns the name IDs of the map in ascending order.
func (m NameMap) IDs() []sfnt.NameID {
	return slices.Sorted(maps.Keys(m))
}

// encode returns the UTF-16BE encodings of all values, or the first error.
func (m NameMap) encode() (map[sfnt.NameID][]byte, error) {
	encoded := make(map[sfnt.NameID][]byte, len(m))
	for _, id := range m.IDs() {
		b, err := EncodeUTF16BE(m[id])
		if err != nil {
			return nil, fmt.Errorf("name ID %d: %w", id, err)
		}
		encoded[id] = b
	}
	return encoded, nil
}

// EncodeUTF16BE encodes s as big-endian UTF-16 without byte order mark.
// s has to be valid UTF-8 and the result must fit into a name record,
// i.e. be no longer than 65535 bytes.
func EncodeUTF16BE(s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, fmt.Errorf("%w: %q is not valid UTF-8", ErrEncoding, s)
	}
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()
	b, err := enc.Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	if len(b) > 0xffff {
		return nil, fmt.Errorf("%w: %d bytes exceed name record capacity", ErrEncoding, len(b))
	}
	return b, nil
}
