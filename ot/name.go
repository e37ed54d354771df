package ot

import (
	"bytes"
	"fmt"

	"golang.org/x/image/font/sfnt"
)

const (
	nameHeaderSize     = 6
	nameRecordSize     = 12
	langTagRecordSize  = 4
	maxNameStorageSize = 0xffff // offsets into the storage area are 16 bit
)

// Platform IDs of the OpenType naming registry.
const (
	PlatformUnicode   uint16 = 0
	PlatformMacintosh uint16 = 1
	PlatformWindows   uint16 = 3
)

// NameRecord is one entry of the OpenType naming table.
//
// Value holds the string as stored in the font, i.e. in the encoding implied
// by PlatformID and EncodingID. For the Unicode platform and for Windows
// encodings 1 and 10 this is UTF-16 big endian.
type NameRecord struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     sfnt.NameID // see https://pkg.go.dev/golang.org/x/image/font/sfnt#NameID
	Value      []byte
}

func (rec NameRecord) String() string {
	return fmt.Sprintf("(%d,%d,0x%x) #%d: %d bytes", rec.PlatformID, rec.EncodingID,
		rec.LanguageID, rec.NameID, len(rec.Value))
}

// NameTable is the naming table ('name') of a font.
//
// Records are kept in the order found in the font file. Clients may change
// record values in place; Encode will lay out a new storage area.
type NameTable struct {
	tableBase
	Version  uint16
	Records  []NameRecord
	LangTags [][]byte // language-tag strings of a version 1 table, UTF-16BE
}

func newNameTable(tag Tag, b binarySegm, offset, size uint32) *NameTable {
	t := &NameTable{}
	t.data = b
	t.name = tag
	t.offset = offset
	t.length = size
	t.self = t
	return t
}

// Lookup finds the record with the given key.
func (t *NameTable) Lookup(platform, encoding, language uint16, nameID sfnt.NameID) (NameRecord, bool) {
	if t == nil {
		return NameRecord{}, false
	}
	for _, rec := range t.Records {
		if rec.PlatformID == platform && rec.EncodingID == encoding &&
			rec.LanguageID == language && rec.NameID == nameID {
			return rec, true
		}
	}
	return NameRecord{}, false
}

// parseNames decodes a naming table from its binary representation.
// Value slices of the records are copies, not views into b.
func parseNames(t *NameTable, b binarySegm, ec *errorCollector) error {
	tag := T("name")
	if len(b) < nameHeaderSize {
		return ec.addError(tag, "Header", "name section corrupt", SeverityCritical, t.offset)
	}
	t.Version = u16(b[0:2])
	if t.Version > 1 {
		ec.addWarning(tag, fmt.Sprintf("unknown name table version %d", t.Version), t.offset)
	}
	N := int(u16(b[2:4]))
	strOffset := int(u16(b[4:6]))
	if strOffset > len(b) {
		return ec.addError(tag, "Storage", "string offset exceeds table size", SeverityCritical, t.offset)
	}
	storage := b[strOffset:]
	tracer().Debugf("name table has %d strings, starting at %d", N, strOffset)

	nameRecsSize, err := checkedMulInt(nameRecordSize, N)
	if err != nil {
		return ec.addError(tag, "NameRecord", fmt.Sprintf("records size overflow: %v", err), SeverityCritical, t.offset)
	}
	recordsEnd, err := checkedAddInt(nameHeaderSize, nameRecsSize)
	if err != nil {
		return ec.addError(tag, "NameRecord", fmt.Sprintf("size calculation overflow: %v", err), SeverityCritical, t.offset)
	}
	if len(b) < recordsEnd {
		return ec.addError(tag, "NameRecord", fmt.Sprintf("%d records exceed table size", N), SeverityCritical, t.offset)
	}
	t.Records = make([]NameRecord, 0, N)
	for i := range N {
		rec := b[nameHeaderSize+i*nameRecordSize : nameHeaderSize+(i+1)*nameRecordSize]
		value, err := storageString(storage, rec[8:12])
		if err != nil {
			return ec.addError(tag, "NameRecord", fmt.Sprintf("record %d: %v", i, err), SeverityCritical,
				t.offset+uint32(nameHeaderSize+i*nameRecordSize))
		}
		t.Records = append(t.Records, NameRecord{
			PlatformID: u16(rec[0:2]),
			EncodingID: u16(rec[2:4]),
			LanguageID: u16(rec[4:6]),
			NameID:     sfnt.NameID(u16(rec[6:8])),
			Value:      value,
		})
	}
	if t.Version != 1 {
		return nil
	}
	// version 1: langTagCount followed by LangTagRecords
	cnt, err := b.u16(recordsEnd)
	if err != nil {
		return ec.addError(tag, "LangTagRecord", "missing language tag count", SeverityMajor, t.offset)
	}
	langTagsStart := recordsEnd + 2
	if len(b) < langTagsStart+int(cnt)*langTagRecordSize {
		return ec.addError(tag, "LangTagRecord", "language tag records exceed table size", SeverityCritical, t.offset)
	}
	for i := range int(cnt) {
		rec := b[langTagsStart+i*langTagRecordSize : langTagsStart+(i+1)*langTagRecordSize]
		value, err := storageString(storage, rec)
		if err != nil {
			return ec.addError(tag, "LangTagRecord", fmt.Sprintf("lang tag %d: %v", i, err), SeverityCritical, t.offset)
		}
		t.LangTags = append(t.LangTags, value)
	}
	return nil
}

// storageString copies a string from the storage area. lenOff holds a
// length and an offset, 16 bit each.
func storageString(storage binarySegm, lenOff []byte) ([]byte, error) {
	length, offset := int(u16(lenOff[0:2])), int(u16(lenOff[2:4]))
	if length == 0 {
		return []byte{}, nil
	}
	s, err := storage.view(offset, length)
	if err != nil {
		return nil, fmt.Errorf("string [%d:%d] exceeds storage of size %d", offset, offset+length, len(storage))
	}
	return bytes.Clone(s), nil
}

// Encode lays out the naming table anew: header, records in their current
// order, language-tag records, and a storage area in which identical strings
// are stored only once.
//
// Encode fails if a string is longer than 65535 bytes or if the storage
// area would outgrow 16-bit offsets.
func (t *NameTable) Encode() ([]byte, error) {
	if t == nil {
		return nil, errFontFormat("no name table")
	}
	if len(t.Records) > 0xffff || len(t.LangTags) > 0xffff {
		return nil, errFontFormat("too many name records")
	}
	version := t.Version
	if version > 1 {
		version = 1
	}
	if len(t.LangTags) > 0 {
		version = 1
	}
	headerSize := nameHeaderSize + len(t.Records)*nameRecordSize
	if version == 1 {
		headerSize += 2 + len(t.LangTags)*langTagRecordSize
	}
	var storage []byte
	placed := make(map[string]int)
	place := func(s []byte) (uint16, uint16, error) {
		if len(s) > 0xffff {
			return 0, 0, errFontFormat(fmt.Sprintf("name string of %d bytes too long", len(s)))
		}
		if len(s) == 0 {
			return 0, 0, nil
		}
		if off, ok := placed[string(s)]; ok {
			return uint16(len(s)), uint16(off), nil
		}
		off := len(storage)
		if off > maxNameStorageSize {
			return 0, 0, errFontFormat("name storage area exceeds 64K")
		}
		placed[string(s)] = off
		storage = append(storage, s...)
		return uint16(len(s)), uint16(off), nil
	}
	w := newBinaryWriter(headerSize)
	w.writeU16(version)
	w.writeU16(uint16(len(t.Records)))
	w.writeU16(0) // storage offset, patched below
	for _, rec := range t.Records {
		length, offset, err := place(rec.Value)
		if err != nil {
			return nil, err
		}
		w.writeU16(rec.PlatformID)
		w.writeU16(rec.EncodingID)
		w.writeU16(rec.LanguageID)
		w.writeU16(uint16(rec.NameID))
		w.writeU16(length)
		w.writeU16(offset)
	}
	if version == 1 {
		w.writeU16(uint16(len(t.LangTags)))
		for _, lt := range t.LangTags {
			length, offset, err := place(lt)
			if err != nil {
				return nil, err
			}
			w.writeU16(length)
			w.writeU16(offset)
		}
	}
	if w.Len() > 0xffff {
		return nil, errFontFormat("name table header exceeds 64K")
	}
	b := w.Bytes()
	b[4], b[5] = byte(w.Len()>>8), byte(w.Len())
	return append(b, storage...), nil
}
