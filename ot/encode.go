package ot

import (
	"encoding/binary"
	"fmt"
	"math/bits"
)

const (
	offsetTableSize = 12
	tableRecordSize = 16
)

// Encode serializes the font into a new binary.
//
// Table 'name' is laid out anew from its records. Table 'head' is copied with
// a recalculated checkSumAdjustment; all other tables are copied verbatim.
// Tables are written in tag order, each starting on a 4-byte boundary and
// padded with zeros, and each table record carries a fresh checksum.
func (otf *Font) Encode() ([]byte, error) {
	if otf == nil || otf.Header == nil {
		return nil, errFontFormat("no font to encode")
	}
	tags := otf.TableTags()
	blobs := make([][]byte, len(tags))
	size := offsetTableSize + len(tags)*tableRecordSize
	headIndex := -1
	for i, tag := range tags {
		var blob []byte
		switch t := otf.tables[tag].Self(); tag {
		case T("name"):
			b, err := t.AsName().Encode()
			if err != nil {
				return nil, fmt.Errorf("encoding table 'name': %w", err)
			}
			blob = b
		case T("head"):
			blob = append([]byte(nil), otf.tables[tag].Binary()...)
			binary.BigEndian.PutUint32(blob[checkSumAdjustmentOffset:], 0)
			headIndex = i
		default:
			blob = otf.tables[tag].Binary()
		}
		blobs[i] = blob
		size += (len(blob) + 3) &^ 3
	}
	w := newBinaryWriter(size)
	numTables := uint16(len(tags))
	entrySelector := uint16(bits.Len16(numTables) - 1) // floor(log2(numTables))
	searchRange := uint16(1<<entrySelector) * tableRecordSize
	w.writeU32(otf.Header.FontType)
	w.writeU16(numTables)
	w.writeU16(searchRange)
	w.writeU16(entrySelector)
	w.writeU16(numTables*tableRecordSize - searchRange)
	offset := uint32(offsetTableSize + len(tags)*tableRecordSize)
	for i, tag := range tags {
		w.writeU32(uint32(tag))
		w.writeU32(checksum(blobs[i]))
		w.writeU32(offset)
		w.writeU32(uint32(len(blobs[i])))
		offset += uint32((len(blobs[i]) + 3) &^ 3)
	}
	headAt := -1
	for i, blob := range blobs {
		if i == headIndex {
			headAt = w.Len()
		}
		w.writeBytes(blob)
		w.pad4()
	}
	out := w.Bytes()
	if headAt >= 0 {
		adjustment := checkSumMagic - checksum(out)
		binary.BigEndian.PutUint32(out[headAt+checkSumAdjustmentOffset:], adjustment)
		otf.Head().CheckSumAdjustment = adjustment
	}
	tracer().Debugf("encoded font with %d tables, %d bytes", numTables, len(out))
	return out, nil
}
