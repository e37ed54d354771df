package ttxtest

import (
	"encoding/binary"
	"fmt"
	"sort"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoded returns the record's text as it is stored in a font: Mac Roman for
// the Macintosh platform, UTF-16BE otherwise.
func (rec ExpectedNameRecord) Encoded() ([]byte, error) {
	var enc encoding.Encoding = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	if rec.PlatformID == 1 {
		enc = charmap.Macintosh
	}
	return enc.NewEncoder().Bytes([]byte(rec.Text))
}

// NameTableBinary serializes the records as a version 0 'name' table.
// Strings are stored in record order without sharing.
func NameTableBinary(names *ExpectedName) ([]byte, error) {
	n := len(names.Records)
	header := make([]byte, 6+12*n)
	binary.BigEndian.PutUint16(header[2:], uint16(n))
	binary.BigEndian.PutUint16(header[4:], uint16(len(header)))
	var storage []byte
	for i, rec := range names.Records {
		value, err := rec.Encoded()
		if err != nil {
			return nil, fmt.Errorf("ttx: encoding record %d: %w", i, err)
		}
		r := header[6+12*i:]
		binary.BigEndian.PutUint16(r[0:], rec.PlatformID)
		binary.BigEndian.PutUint16(r[2:], rec.PlatEncID)
		binary.BigEndian.PutUint16(r[4:], rec.LangID)
		binary.BigEndian.PutUint16(r[6:], rec.NameID)
		binary.BigEndian.PutUint16(r[8:], uint16(len(value)))
		binary.BigEndian.PutUint16(r[10:], uint16(len(storage)))
		storage = append(storage, value...)
	}
	return append(header, storage...), nil
}

// HeadTableBinary returns a minimal version 1.0 'head' table.
func HeadTableBinary() []byte {
	head := make([]byte, 54)
	binary.BigEndian.PutUint16(head[0:], 1)            // majorVersion
	binary.BigEndian.PutUint32(head[4:], 0x00010000)   // fontRevision
	binary.BigEndian.PutUint32(head[12:], 0x5F0F3CF5) // magicNumber
	binary.BigEndian.PutUint16(head[18:], 1000)       // unitsPerEm
	return head
}

// BuildFont assembles a TrueType-flavoured font binary from a 'name' table
// fixture and additional opaque tables. Tables 'head' and 'name' are
// generated unless present in `extra`. The checksum adjustment in 'head'
// is left zero.
func BuildFont(names *ExpectedName, extra map[string][]byte) ([]byte, error) {
	tables := make(map[string][]byte, len(extra)+2)
	for tag, b := range extra {
		if len(tag) != 4 {
			return nil, fmt.Errorf("ttx: invalid table tag %q", tag)
		}
		tables[tag] = b
	}
	if _, ok := tables["head"]; !ok {
		tables["head"] = HeadTableBinary()
	}
	if _, ok := tables["name"]; !ok && names != nil {
		b, err := NameTableBinary(names)
		if err != nil {
			return nil, err
		}
		tables["name"] = b
	}
	tags := make([]string, 0, len(tables))
	for tag := range tables {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	dirSize := 12 + 16*len(tags)
	out := make([]byte, dirSize)
	binary.BigEndian.PutUint32(out[0:], 0x00010000)
	binary.BigEndian.PutUint16(out[4:], uint16(len(tags)))
	for i, tag := range tags {
		rec := out[12+16*i:]
		copy(rec[0:4], tag)
		binary.BigEndian.PutUint32(rec[4:], tableChecksum(tables[tag]))
		binary.BigEndian.PutUint32(rec[8:], uint32(len(out)))
		binary.BigEndian.PutUint32(rec[12:], uint32(len(tables[tag])))
		out = append(out, tables[tag]...)
		for len(out)%4 != 0 {
			out = append(out, 0)
		}
	}
	return out, nil
}

func tableChecksum(b []byte) uint32 {
	var sum uint32
	for i := 0; i < len(b); i += 4 {
		var word [4]byte
		copy(word[:], b[i:])
		sum += binary.BigEndian.Uint32(word[:])
	}
	return sum
}
