package otquery

import (
	"fmt"
	"iter"

	"github.com/npillmayer/fontrename/ot"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding/unicode"
)

// Encoding IDs we are able to decode, per platform.
const (
	EncodingIDUnicodeBMP    uint16 = 3
	EncodingIDWindowsSymbol uint16 = 0 // symbol fonts store UTF-16BE as well
	EncodingIDWindowsBMP    uint16 = 1
)

// NamesRange yields decoded `(nameID, value)` pairs from a font's OpenType
// `name` table.
//
// Only currently supported encodings are yielded (Unicode BMP, Windows symbol
// and Windows BMP), records which do not decode are skipped.
func NamesRange(otf *ot.Font) iter.Seq2[sfnt.NameID, string] {
	names := otf.Name()
	return func(yield func(sfnt.NameID, string) bool) {
		if names == nil {
			tracer().Debugf("no name table found in font")
			return
		}
		for _, rec := range names.Records {
			if !isSupportedNameEncoding(rec) {
				continue
			}
			stringValue, err := DecodeUTF16(rec.Value)
			if err != nil || stringValue == "" {
				continue
			}
			if !yield(rec.NameID, stringValue) {
				return
			}
		}
	}
}

func isSupportedNameEncoding(rec ot.NameRecord) bool {
	return (rec.PlatformID == ot.PlatformUnicode && rec.EncodingID == EncodingIDUnicodeBMP) ||
		(rec.PlatformID == ot.PlatformWindows && rec.EncodingID == EncodingIDWindowsBMP) ||
		(rec.PlatformID == ot.PlatformWindows && rec.EncodingID == EncodingIDWindowsSymbol)
}

// DecodeUTF16 decodes a big-endian UTF-16 name string.
func DecodeUTF16(str []byte) (string, error) {
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	decoder := enc.NewDecoder()
	s, err := decoder.Bytes(str)
	if err != nil {
		return "", fmt.Errorf("decoding UTF-16 error: %v", err)
	}
	return string(s), nil
}

// FamilyName extracts family and subfamily names from a font's `name` table.
//
// Returned values are empty if no matching records exist or if records cannot be
// decoded.
func FamilyName(otf *ot.Font) (family, subfamily string) {
	for nameId, stringValue := range NamesRange(otf) {
		switch nameId {
		case sfnt.NameIDFamily:
			if family == "" {
				family = stringValue
			}
		case sfnt.NameIDSubfamily:
			if subfamily == "" {
				subfamily = stringValue
			}
		}
	}
	return
}

var nameInfoKeys = map[sfnt.NameID]string{
	sfnt.NameIDFamily:           "family",
	sfnt.NameIDSubfamily:        "subfamily",
	sfnt.NameIDUniqueIdentifier: "uniqueid",
	sfnt.NameIDFull:             "fullname",
	sfnt.NameIDVersion:          "version",
	sfnt.NameIDPostScript:       "postscript",
}

// NameInfo returns the decoded standard names of a font, keyed by
// "family", "subfamily", "uniqueid", "fullname", "version" and "postscript".
// The first decodable record for a name ID wins.
func NameInfo(otf *ot.Font) map[string]string {
	info := make(map[string]string, len(nameInfoKeys))
	for nameID, value := range NamesRange(otf) {
		key, ok := nameInfoKeys[nameID]
		if !ok {
			continue
		}
		if _, seen := info[key]; !seen {
			info[key] = value
		}
	}
	return info
}
