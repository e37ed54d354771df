/*
Package otquery answers questions about a font's naming and header tables,
decoding the raw records package `ot` exposes.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'font.query'
func tracer() tracing.Trace {
	return tracing.Select("font.query")
}
