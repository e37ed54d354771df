/*
Package fontrename rewrites the naming records of OpenType fonts.

The heavy lifting is done in sub-packages:

▪︎ ot reads an SFNT container into tables, and writes it back.

▪︎ otquery decodes information from tables, e.g. family names.

▪︎ rename replaces name records and overwrites font files.

This package offers a thin layer on top of golang.org/x/image/font/sfnt,
which is used to cross-check fonts after they have been re-written: a font
which x/image can no longer load has been damaged.

We will stick to the following nomenclature: a "typeface" is a family of
fonts, e.g. "Helvetica". A "scalable font" is one variant of a typeface with
a certain weight, slant, etc., e.g. "Helvetica regular".

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontrename

import (
	"os"

	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'fontrename'
func tracer() tracing.Trace {
	return tracing.Select("fontrename")
}

// ScalableFont is an outline font of type TTF or OTF, as seen by x/image.
type ScalableFont struct {
	Fontname string     // full font name, if present
	Filepath string     // file path, if loaded from a file
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container; not safe for concurrent use
}

// LoadScalableFont loads an OpenType font (TTF or OTF) from a file.
func LoadScalableFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseScalableFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseScalableFont loads an OpenType font (TTF or OTF) from memory.
func ParseScalableFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err == nil {
		tracer().Debugf("loaded and parsed SFNT %s", f.Fontname)
	} else if err == sfnt.ErrNotFound {
		err = nil
	}
	return
}

// NumGlyphs returns the number of glyphs in the font.
func (f *ScalableFont) NumGlyphs() int {
	if f == nil || f.SFNT == nil {
		return 0
	}
	return f.SFNT.NumGlyphs()
}
