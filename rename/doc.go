/*
Package rename rewrites the naming records of an OpenType font.

Given a NameMap from name IDs to strings, every record of the font's 'name'
table with a name ID found in the map gets its value replaced by the mapped
string, encoded as UTF-16 big endian. This happens for records of all
platforms and encodings alike, including Macintosh records which would
normally hold Mac Roman text. Records with other name IDs stay untouched,
no record is added or removed, and all tables other than 'name' and 'head'
are written back byte for byte.

	res, err := rename.File("ashell_icon.ttf", rename.AshellNames())

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package rename

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'font.rename'
func tracer() tracing.Trace {
	return tracing.Select("font.rename")
}
