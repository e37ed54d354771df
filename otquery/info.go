package otquery

import "github.com/npillmayer/fontrename/ot"

// FontType returns the flavour of a font's outlines as a string:
// "TrueType", "OpenType/CFF" or "Apple TrueType".
func FontType(otf *ot.Font) string {
	if otf == nil || otf.Header == nil {
		return ""
	}
	switch otf.Header.FontType {
	case ot.FontTypeTrueType:
		return "TrueType"
	case ot.FontTypeCFF:
		return "OpenType/CFF"
	case ot.FontTypeAppleTrueType:
		return "Apple TrueType"
	}
	return ot.Tag(otf.Header.FontType).String()
}
