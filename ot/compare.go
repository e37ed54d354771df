package ot

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	gotext "github.com/go-text/typesetting/font/opentype"
)

// ErrTableMismatch is returned by CompareTables if two fonts differ in a table
// which has not been excluded from comparison.
var ErrTableMismatch = errors.New("font tables differ")

// CompareTables loads two font binaries with an independent OpenType loader
// and checks that every table of `before`, except for the ones in `ignore`,
// is present in `after` with identical bytes, and that `after` carries no
// additional tables.
//
// It is used to make sure that re-serializing a font did not disturb
// tables we did not mean to touch.
func CompareTables(before, after []byte, ignore ...Tag) error {
	ldBefore, err := gotext.NewLoader(bytes.NewReader(before))
	if err != nil {
		return fmt.Errorf("loading original font: %w", err)
	}
	ldAfter, err := gotext.NewLoader(bytes.NewReader(after))
	if err != nil {
		return fmt.Errorf("loading re-written font: %w", err)
	}
	var errs []error
	beforeTags := ldBefore.Tables()
	for _, t := range beforeTags {
		tag := Tag(t)
		if slices.Contains(ignore, tag) {
			continue
		}
		b1, err := ldBefore.RawTable(t)
		if err != nil {
			return fmt.Errorf("table %s of original font: %w", tag, err)
		}
		b2, err := ldAfter.RawTable(t)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: table %s missing", ErrTableMismatch, tag))
			continue
		}
		if !bytes.Equal(b1, b2) {
			errs = append(errs, fmt.Errorf("%w: table %s changed (%d → %d bytes)",
				ErrTableMismatch, tag, len(b1), len(b2)))
		}
	}
	for _, t := range ldAfter.Tables() {
		if !slices.Contains(beforeTags, t) {
			errs = append(errs, fmt.Errorf("%w: table %s added", ErrTableMismatch, Tag(t)))
		}
	}
	return errors.Join(errs...)
}
