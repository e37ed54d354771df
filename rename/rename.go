package rename

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/npillmayer/fontrename/ot"
	"github.com/npillmayer/fontrename/otquery"
)

var (
	// ErrNoNameTable is returned for fonts without a 'name' table.
	ErrNoNameTable = errors.New("font has no name table")
	// ErrVerify is returned if the re-written font differs from the original
	// in tables other than 'name' and 'head'.
	ErrVerify = errors.New("re-written font fails verification")
)

// Result reports the outcome of renaming a font file.
type Result struct {
	Path     string // font file which has been overwritten
	Replaced int    // number of name records replaced
	Family   string // decoded family name after renaming
	FullName string // decoded full font name after renaming
	FontType string // flavour of the font container, e.g. "TrueType"
	Revision string // font revision from table 'head', e.g. "1.000"
}

// Apply replaces the value of every name record of otf whose name ID is a
// key of `names`, using the UTF-16BE encoding of the mapped string.
// It returns the number of records replaced.
//
// All strings are encoded before any record is touched, so an encoding error
// leaves the font unchanged.
func Apply(otf *ot.Font, names NameMap) (int, error) {
	table := otf.Name()
	if table == nil {
		return 0, ErrNoNameTable
	}
	encoded, err := names.encode()
	if err != nil {
		return 0, err
	}
	replaced := 0
	for i := range table.Records {
		rec := &table.Records[i]
		value, ok := encoded[rec.NameID]
		if !ok {
			continue
		}
		tracer().Debugf("replacing name record %s", rec)
		rec.Value = bytes.Clone(value)
		replaced++
	}
	if replaced == 0 {
		tracer().Infof("font has no records for name IDs %v", names.IDs())
	}
	return replaced, nil
}

// Font renames a font held in memory and returns the new font binary
// together with the number of replaced records. `data` is not modified.
func Font(data []byte, names NameMap) ([]byte, int, error) {
	_, out, n, err := rewrite(data, names)
	return out, n, err
}

func rewrite(data []byte, names NameMap) (*ot.Font, []byte, int, error) {
	otf, err := ot.Parse(data)
	if err != nil {
		return nil, nil, 0, err
	}
	for _, w := range otf.Warnings() {
		tracer().Infof("%s", w)
	}
	n, err := Apply(otf, names)
	if err != nil {
		return nil, nil, 0, err
	}
	out, err := otf.Encode()
	if err != nil {
		return nil, nil, 0, err
	}
	if err := ot.CompareTables(data, out, ot.T("name"), ot.T("head")); err != nil {
		return nil, nil, 0, fmt.Errorf("%w: %w", ErrVerify, err)
	}
	return otf, out, n, nil
}

// File renames the font at `path` and overwrites it in place, keeping the
// file's permissions. No backup is made.
//
// File fails without writing if the file cannot be read or is not a valid
// font, or if a name cannot be encoded. Format violations wrap an
// ot.FontError. If writing itself fails, the file may
// be left truncated.
func File(path string, names NameMap) (Result, error) {
	res := Result{Path: path}
	info, err := os.Stat(path)
	if err != nil {
		return res, err
	}
	if !info.Mode().IsRegular() {
		return res, fmt.Errorf("%s is not a regular file", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return res, err
	}
	otf, out, n, err := rewrite(data, names)
	if err != nil {
		return res, fmt.Errorf("renaming %s: %w", path, err)
	}
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return res, err
	}
	tracer().Debugf("wrote %d bytes to %s", len(out), path)
	res.Replaced = n
	res.Family, _ = otquery.FamilyName(otf)
	res.FullName = otquery.NameInfo(otf)["fullname"]
	res.FontType = otquery.FontType(otf)
	if head, ok := otquery.HeadInfo(otf); ok {
		res.Revision = head.Revision()
	}
	return res, nil
}
