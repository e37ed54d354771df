package ot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"slices"
)

// Code comment often will cite passage from the
// OpenType specification version 1.8.4;
// see https://docs.microsoft.com/en-us/typography/opentype/spec/.

// ---------------------------------------------------------------------------

// Maximum reasonable count of tables in a font.
// Fonts in the wild carry some 10 to 30 tables.
const MaxTableCount = 256

// Checked arithmetic operations to prevent integer overflow

// checkedMulInt checks for overflow in multiplication of two integers
func checkedMulInt(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > 0 && b > 0 && a > math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	if a < 0 && b < 0 && a < math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	if (a < 0 && b > 0 && a < math.MinInt/b) || (a > 0 && b < 0 && b < math.MinInt/a) {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	return a * b, nil
}

// checkedAddInt checks for overflow in addition of two integers
func checkedAddInt(a, b int) (int, error) {
	if b > 0 && a > math.MaxInt-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	if b < 0 && a < math.MinInt-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}

// checkedAddUint32 checks for overflow in addition of two uint32 values
func checkedAddUint32(a, b uint32) (uint32, error) {
	if a > math.MaxUint32-b {
		return 0, fmt.Errorf("integer overflow: %d + %d", a, b)
	}
	return a + b, nil
}

// ---------------------------------------------------------------------------

// errFontFormat produces user level errors for font parsing.
func errFontFormat(message string) error {
	return fmt.Errorf("OpenType font format: %s", message)
}

// ---------------------------------------------------------------------------

// Parse parses an OpenType font from a byte slice.
// An ot.Font needs ongoing access to the fonts byte-data after the Parse function returns.
// Its elements are assumed immutable while the ot.Font remains in use.
//
// Parse reads the table directory and decodes tables 'name' and 'head'.
// It fails for font collections, for fonts with a corrupt table directory and
// for fonts lacking one of the RequiredTables (unless IsTestfont is given).
// Errors describing a format violation wrap a FontError, which callers may
// extract with errors.As.
func Parse(font []byte, opts ...ParseOption) (*Font, error) {
	// https://www.microsoft.com/typography/otspec/otff.htm: Offset Table is 12 bytes.
	ec := &errorCollector{}
	r := bytes.NewReader(font)
	h := FontHeader{}
	if err := binary.Read(r, binary.BigEndian, &h); err != nil {
		return nil, ec.addError(T(""), "Header", fmt.Sprintf("cannot read offset table: %v", err), SeverityCritical, 0)
	}
	tracer().Debugf("header = %v, tag = %x|%s", h, h.FontType, Tag(h.FontType).String())

	if !(h.FontType == FontTypeCFF ||
		h.FontType == FontTypeTrueType ||
		h.FontType == FontTypeAppleTrueType) {
		return nil, ec.addError(T(""), "Header", fmt.Sprintf("font type not supported: %x", h.FontType), SeverityCritical, 0)
	}
	if h.TableCount == 0 || h.TableCount > MaxTableCount {
		return nil, ec.addError(T(""), "Header", fmt.Sprintf("implausible table count %d", h.TableCount), SeverityCritical, 4)
	}
	otf := &Font{Header: &h, tables: make(map[Tag]Table)}
	src := binarySegm(font)
	// "The Offset Table is followed immediately by the Table Record entries …
	// sorted in ascending order by tag", 16 bytes each.
	tableRecordsSize, err := checkedMulInt(16, int(h.TableCount))
	if err != nil {
		return nil, ec.addError(T(""), "TableRecords", fmt.Sprintf("table count too large: %v", err), SeverityCritical, 12)
	}
	buf, err := src.view(12, tableRecordsSize)
	if err != nil {
		return nil, ec.addError(T(""), "TableRecords", "table record entries", SeverityCritical, 12)
	}
	for b, prevTag := buf, Tag(0); len(b) > 0; b = b[16:] {
		tag := MakeTag(b)
		if tag < prevTag {
			// unsorted directories occur in the wild; Encode writes them sorted
			ec.addWarning(tag, "table records not sorted by tag", 12)
		}
		prevTag = tag
		if _, dup := otf.tables[tag]; dup {
			return nil, ec.addError(tag, "TableRecords", "duplicate table record", SeverityCritical, 12)
		}
		off, size := u32(b[8:12]), u32(b[12:16])
		if off&3 != 0 { // ignore checksums, but "all tables must begin on four byte boundries".
			return nil, ec.addError(tag, "Offset", "invalid table offset", SeverityCritical, off)
		}
		tableEnd, err := checkedAddUint32(off, size)
		if err != nil {
			return nil, ec.addError(tag, "Size", fmt.Sprintf("size calculation overflow: %v", err), SeverityCritical, off)
		}
		if off > uint32(len(src)) || tableEnd > uint32(len(src)) {
			return nil, ec.addError(tag, "Bounds", fmt.Sprintf("bounds [%d:%d] exceed font size %d", off, tableEnd, len(src)), SeverityCritical, off)
		}
		if sum := checksum(src[off:tableEnd]); sum != u32(b[4:8]) && tag != T("head") {
			ec.addWarning(tag, fmt.Sprintf("checksum mismatch: stored %#08x, computed %#08x", u32(b[4:8]), sum), off)
		}
		otf.tables[tag], err = parseTable(tag, src[off:tableEnd], off, size, ec)
		if err != nil {
			return nil, err
		}
	}
	if !slices.Contains(opts, IsTestfont) {
		for _, tag := range RequiredTables {
			if otf.tables[T(tag)] == nil {
				return nil, ec.addError(T(tag), "Missing", "missing required table", SeverityCritical, 0)
			}
		}
	}
	otf.parseWarnings = ec.warnings
	return otf, nil
}

// RequiredTables are the tables a font has to contain for us to work on it.
// The OpenType specification requires more ('cmap', 'hhea', 'hmtx', 'maxp',
// 'OS/2', 'post'), but we pass these through without looking at them.
var RequiredTables = []string{
	"head", "name",
}

func parseTable(t Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	switch t {
	case T("head"):
		return parseHead(t, b, offset, size, ec)
	case T("name"):
		return parseName(t, b, offset, size, ec)
	}
	tracer().Debugf("table %s: %d bytes passed through", t, size)
	return newTable(t, b, offset, size), nil
}

// --- Head table ------------------------------------------------------------

func parseHead(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	if size < headMinSize {
		return nil, ec.addError(tag, "Size", fmt.Sprintf("head table too short: %d", size), SeverityCritical, offset)
	}
	t := newHeadTable(tag, b, offset, size)
	if magic := u32(b[12:16]); magic != 0x5F0F3CF5 {
		ec.addWarning(tag, fmt.Sprintf("wrong magic number %#08x", magic), offset+12)
	}
	t.CheckSumAdjustment = u32(b[checkSumAdjustmentOffset:])
	t.Flags = u16(b[16:])
	t.UnitsPerEm = u16(b[18:])
	// IndexToLocFormat is needed to interpret the loca table:
	// 0 for short offsets, 1 for long
	t.IndexToLocFormat = u16(b[50:])
	return t, nil
}

// --- Name table ------------------------------------------------------------

func parseName(tag Tag, b binarySegm, offset, size uint32, ec *errorCollector) (Table, error) {
	t := newNameTable(tag, b, offset, size)
	if err := parseNames(t, b, ec); err != nil {
		return nil, err
	}
	return t, nil
}
