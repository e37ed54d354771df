package ttxtest

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ttxFont is the subset of a fontTools TTX document we care about.
type ttxFont struct {
	XMLName xml.Name `xml:"ttFont"`
	Name    struct {
		Records []ttxNameRecord `xml:"namerecord"`
	} `xml:"name"`
}

type ttxNameRecord struct {
	NameID     string `xml:"nameID,attr"`
	PlatformID string `xml:"platformID,attr"`
	PlatEncID  string `xml:"platEncID,attr"`
	LangID     string `xml:"langID,attr"`
	Text       string `xml:",chardata"`
}

// ParseTTXNameFile parses a TTX XML dump containing a 'name' table.
func ParseTTXNameFile(path string) (*ExpectedName, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTTXName(f)
}

// ParseTTXName parses a TTX XML document into an ExpectedName model.
func ParseTTXName(r io.Reader) (*ExpectedName, error) {
	var font ttxFont
	if err := xml.NewDecoder(r).Decode(&font); err != nil {
		return nil, err
	}
	if len(font.Name.Records) == 0 {
		return nil, fmt.Errorf("ttx: missing name/namerecord")
	}
	exp := &ExpectedName{}
	for i, nr := range font.Name.Records {
		rec, err := normalizeNameRecord(nr)
		if err != nil {
			return nil, fmt.Errorf("ttx: namerecord %d: %w", i, err)
		}
		exp.Records = append(exp.Records, rec)
	}
	return exp, nil
}

func normalizeNameRecord(nr ttxNameRecord) (ExpectedNameRecord, error) {
	var rec ExpectedNameRecord
	var err error
	if rec.NameID, err = parseUint16(nr.NameID); err != nil {
		return rec, fmt.Errorf("invalid nameID: %w", err)
	}
	if rec.PlatformID, err = parseUint16(nr.PlatformID); err != nil {
		return rec, fmt.Errorf("invalid platformID: %w", err)
	}
	if rec.PlatEncID, err = parseUint16(nr.PlatEncID); err != nil {
		return rec, fmt.Errorf("invalid platEncID: %w", err)
	}
	if rec.LangID, err = parseUint16(nr.LangID); err != nil {
		return rec, fmt.Errorf("invalid langID: %w", err)
	}
	rec.Text = strings.TrimSpace(nr.Text)
	return rec, nil
}

// parseUint16 accepts decimal and 0x-prefixed hex values, as TTX uses both.
func parseUint16(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, err
	}
	return uint16(n), nil
}
