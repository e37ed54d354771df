package ttxtest

// ExpectedName is a normalized model of a 'name' table as derived from TTX.
type ExpectedName struct {
	Records []ExpectedNameRecord
}

// ExpectedNameRecord mirrors a <namerecord> element of a TTX dump.
// Text is the decoded string, with surrounding whitespace removed as
// fontTools does.
type ExpectedNameRecord struct {
	NameID     uint16
	PlatformID uint16
	PlatEncID  uint16
	LangID     uint16
	Text       string
}

// Find returns the first record with the given name ID and platform.
func (n *ExpectedName) Find(nameID, platformID uint16) (ExpectedNameRecord, bool) {
	if n == nil {
		return ExpectedNameRecord{}, false
	}
	for _, rec := range n.Records {
		if rec.NameID == nameID && rec.PlatformID == platformID {
			return rec, true
		}
	}
	return ExpectedNameRecord{}, false
}
