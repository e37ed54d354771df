/*
Package ot provides access to the table directory of an OpenType font and
re-serializes it.

Package `ot` reads the offset table and the table records of a single-font
SFNT file (TrueType or CFF flavoured) and keeps every table as a view into
the font's binary data. Two tables are decoded into typed structures:

▪︎ 'name', the naming table, as a list of NameRecords which clients may edit.

▪︎ 'head', the font header, which carries the whole-font checksum adjustment.

All other tables are treated as opaque byte blobs. Writing a font with
(*Font).Encode will copy them verbatim, so glyph outlines, metrics and layout
tables pass through unchanged. This makes `ot` a container-level package:
it is not able to interpret glyphs, but it is able to change a font's names
without disturbing anything else.

# Status

No font collections (*.ttc) nor WOFF containers are supported.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

/*
The writer follows the recipe of the OpenType specification, chapter
"The OpenType Font File": table records sorted by tag, tables on 4-byte
boundaries, zero padding, per-table checksums, and finally the 'head'
checksum adjustment 0xB1B0AFBA minus the checksum of the whole file.

Valuable resource:
https://docs.microsoft.com/en-us/typography/opentype/spec/otff
*/

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.opentype'
func tracer() tracing.Trace {
	return tracing.Select("font.opentype")
}
