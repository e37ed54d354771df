package ot

import (
	"sort"
)

// Font represents the table directory of an OpenType font.
// It is used to inspect a font's tables and to edit its naming table.
//
// Tables other than 'name' and 'head' are views into the binary data the font
// has been parsed from, which therefore must not change while the Font is in use.
type Font struct {
	Header        *FontHeader
	tables        map[Tag]Table
	parseWarnings []FontWarning // Warnings accumulated during parsing
}

// ParseOption guides and influences the parsing of the font.
type ParseOption int

const (
	IsTestfont ParseOption = iota // accept fonts lacking required tables
)

// FontHeader is a directory of the top-level tables in a font. If the font file
// contains only one font, the table directory will begin at byte 0 of the file.
//
// OpenType fonts that contain TrueType outlines should use the value of 0x00010000
// for the FontType. OpenType fonts containing CFF data (version 1 or 2) should
// use 0x4F54544F ('OTTO', when re-interpreted as a Tag).
// The Apple specification for TrueType fonts allows for 'true' and 'typ1',
// but these version tags should not be used for OpenType fonts.
type FontHeader struct {
	FontType   uint32
	TableCount uint16
}

// Font types we are able to read and write.
const (
	FontTypeTrueType      uint32 = 0x00010000
	FontTypeCFF           uint32 = 0x4f54544f // OTTO
	FontTypeAppleTrueType uint32 = 0x74727565 // true
)

// Table returns the font table for a given tag. If a table for a tag cannot
// be found in the font, nil is returned.
//
// Table tag names are case-sensitive, following the names in the OpenType specification,
// e.g. 'name', 'head', 'OS/2', 'cvt '.
func (otf *Font) Table(tag Tag) Table {
	if otf == nil {
		return nil
	}
	if t, ok := otf.tables[tag]; ok {
		return t
	}
	return nil
}

// TableTags returns a list of tags, one for each table contained in the font,
// in ascending order.
func (otf *Font) TableTags() []Tag {
	var tags = make([]Tag, 0, len(otf.tables))
	for tag := range otf.tables {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

// Name returns the parsed naming table, or nil.
func (otf *Font) Name() *NameTable {
	if t := otf.Table(T("name")); t != nil {
		return t.Self().AsName()
	}
	return nil
}

// Head returns the parsed font header table, or nil.
func (otf *Font) Head() *HeadTable {
	if t := otf.Table(T("head")); t != nil {
		return t.Self().AsHead()
	}
	return nil
}

// Warnings returns all warnings encountered during font parsing.
// Warnings indicate potential issues that are generally safe to ignore.
func (otf *Font) Warnings() []FontWarning {
	if otf.parseWarnings == nil {
		return []FontWarning{}
	}
	return otf.parseWarnings
}

// --- Tag -------------------------------------------------------------------

// Tag is defined by the spec as:
// Array of four uint8s (length = 32 bits) used to identify a table, design-variation axis,
// script, language system, feature, or baseline
type Tag uint32

// MakeTag creates a Tag from 4 bytes, e.g.,
// If b is shorter or longer, it will be silently extended or cut as appropriate
//
//	MakeTag([]byte("cmap"))
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// --- Table -----------------------------------------------------------------

// Table represents one of the various OpenType font tables.
//
// Only 'name' and 'head' have a typed representation; for all other tables
// Binary returns the table's bytes as found in the font file.
type Table interface {
	Extent() (uint32, uint32) // offset and byte size within the font's binary data
	Binary() []byte           // the bytes of this table; should be treated as read-only by clients
	Self() TableSelf          // reference to itself
}

func newTable(tag Tag, b binarySegm, offset, size uint32) *genericTable {
	t := &genericTable{tableBase{
		data:   b,
		name:   tag,
		offset: offset,
		length: size,
	},
	}
	t.self = t
	return t
}

type genericTable struct {
	tableBase
}

// tableBase is a common parent for all kinds of OpenType tables.
type tableBase struct {
	data   binarySegm // a table is a slice of font data
	name   Tag        // 4-byte name as an integer
	offset uint32     // from offset
	length uint32     // to offset + length
	self   any
}

// Extent returns offset and byte size of this table within the OpenType font.
func (tb *tableBase) Extent() (uint32, uint32) {
	return tb.offset, tb.length
}

// Binary returns the bytes of this table. Should be treated as read-only by
// clients, as it is a view into the original data.
func (tb *tableBase) Binary() []byte {
	return tb.data
}

func (tb *tableBase) Self() TableSelf {
	return TableSelf{tableBase: tb}
}

// TableSelf is a reference to a table. Its primary use is for converting
// a generic table to a concrete table flavour, and for reproducing the
// name tag of a table.
type TableSelf struct {
	tableBase *tableBase
}

// NameTag returns the 4-letter name of a table.
func (tself TableSelf) NameTag() Tag {
	return tself.tableBase.name
}

func safeSelf(tself TableSelf) any {
	if tself.tableBase == nil || tself.tableBase.self == nil {
		return TableSelf{}
	}
	return tself.tableBase.self
}

// AsName returns this table as a name table, or nil.
func (tself TableSelf) AsName() *NameTable {
	if nt, ok := safeSelf(tself).(*NameTable); ok {
		return nt
	}
	return nil
}

// AsHead returns this table as a head table, or nil.
func (tself TableSelf) AsHead() *HeadTable {
	if ht, ok := safeSelf(tself).(*HeadTable); ok {
		return ht
	}
	return nil
}

// --- Head table ------------------------------------------------------------

// HeadTable gives global information about the font.
// Only a small subset of fields is interpreted; the rest of the table is
// carried along as bytes.
type HeadTable struct {
	tableBase
	Flags              uint16
	UnitsPerEm         uint16
	IndexToLocFormat   uint16 // needed to interpret loca table
	CheckSumAdjustment uint32
}

// headMinSize is the size of a version 1.0 'head' table.
const headMinSize = 54

// checkSumAdjustmentOffset is the position of field checkSumAdjustment in 'head'.
const checkSumAdjustmentOffset = 8

// checkSumMagic is the value the whole font's checksum has to sum up to.
const checkSumMagic uint32 = 0xB1B0AFBA

func newHeadTable(tag Tag, b binarySegm, offset, size uint32) *HeadTable {
	t := &HeadTable{}
	t.data = b
	t.name = tag
	t.offset = offset
	t.length = size
	t.self = t
	return t
}
