package rename

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/fontrename/internal/ttxtest"
	"github.com/npillmayer/fontrename/ot"
	"github.com/npillmayer/fontrename/otquery"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

const oldNamesTTX = `<ttFont>
  <name>
    <namerecord nameID="1" platformID="1" platEncID="0" langID="0x0">Old Family</namerecord>
    <namerecord nameID="1" platformID="3" platEncID="1" langID="0x409">Old Family</namerecord>
    <namerecord nameID="2" platformID="3" platEncID="1" langID="0x409">Bold</namerecord>
    <namerecord nameID="5" platformID="3" platEncID="1" langID="0x409">Version 1.0</namerecord>
    <namerecord nameID="6" platformID="3" platEncID="1" langID="0x409">OldPS</namerecord>
    <namerecord nameID="16" platformID="3" platEncID="1" langID="0x409">Old Typographic</namerecord>
  </name>
</ttFont>`

var opaqueTables = map[string][]byte{
	"glyf": {0x00, 0x01, 0x00, 0x00, 0x00, 0x0a, 0x00, 0x14, 0x03},
	"hmtx": {0x02, 0x58, 0x00, 0x32},
	"maxp": {0x00, 0x00, 0x50, 0x00, 0x00, 0x02},
}

func TestApplyScenario(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.rename")
	defer teardown()
	//
	otf := parseFont(t, buildFont(t))
	before := cloneRecords(otf.Name().Records)
	n, err := Apply(otf, AshellNames())
	require.NoError(t, err)
	assert.Equal(t, 4, n, "name ID 1 is present twice, 2 and 6 once, 3 and 4 not at all")

	after := otf.Name().Records
	require.Len(t, after, len(before), "records must neither be added nor removed")
	names := AshellNames()
	for i, rec := range after {
		want, mapped := names[rec.NameID]
		if !mapped {
			assert.Equal(t, before[i].Value, rec.Value, "record %s must be unchanged", rec)
			continue
		}
		got, err := otquery.DecodeUTF16(rec.Value)
		require.NoError(t, err)
		assert.Equal(t, want, got, "record %s", rec)
	}
	family, subfamily := otquery.FamilyName(otf)
	assert.Equal(t, "Ashell Nerd Font", family)
	assert.Equal(t, "Regular", subfamily)
	assert.Equal(t, "AshellNerdFont-Regular", otquery.NameInfo(otf)["postscript"])
}

func TestApplyMatchesTTXDump(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.rename")
	defer teardown()
	//
	expected, err := ttxtest.ParseTTXNameFile(filepath.Join("testdata", "renamed-names.ttx"))
	require.NoError(t, err)
	otf := parseFont(t, buildFont(t))
	_, err = Apply(otf, AshellNames())
	require.NoError(t, err)
	var windows []ttxtest.ExpectedNameRecord
	for _, rec := range otf.Name().Records {
		if rec.PlatformID != ot.PlatformWindows {
			continue
		}
		text, err := otquery.DecodeUTF16(rec.Value)
		require.NoError(t, err)
		windows = append(windows, ttxtest.ExpectedNameRecord{
			NameID:     uint16(rec.NameID),
			PlatformID: rec.PlatformID,
			PlatEncID:  rec.EncodingID,
			LangID:     rec.LanguageID,
			Text:       text,
		})
	}
	if diff := cmp.Diff(expected.Records, windows); diff != "" {
		t.Errorf("Windows name records differ from TTX dump (-want +got):\n%s", diff)
	}
}

func TestApplyMacintoshRecordGetsUTF16(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.rename")
	defer teardown()
	//
	otf := parseFont(t, buildFont(t))
	_, err := Apply(otf, AshellNames())
	require.NoError(t, err)
	mac, ok := otf.Name().Lookup(ot.PlatformMacintosh, 0, 0, sfnt.NameIDFamily)
	require.True(t, ok)
	want, _ := EncodeUTF16BE("Ashell Nerd Font")
	assert.Equal(t, want, mac.Value)
}

func TestApplyEncodingError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.rename")
	defer teardown()
	//
	otf := parseFont(t, buildFont(t))
	before := cloneRecords(otf.Name().Records)
	_, err := Apply(otf, NameMap{
		sfnt.NameIDFamily:     "Fine",
		sfnt.NameIDPostScript: "broken\xff",
	})
	require.ErrorIs(t, err, ErrEncoding)
	if diff := cmp.Diff(before, otf.Name().Records); diff != "" {
		t.Errorf("font changed despite encoding error (-want +got):\n%s", diff)
	}
}

func TestApplyWithoutNameTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.rename")
	defer teardown()
	//
	b, err := ttxtest.BuildFont(nil, opaqueTables)
	require.NoError(t, err)
	otf, err := ot.Parse(b, ot.IsTestfont)
	require.NoError(t, err)
	_, err = Apply(otf, AshellNames())
	assert.ErrorIs(t, err, ErrNoNameTable)
}

func TestFontKeepsOtherTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.rename")
	defer teardown()
	//
	in := buildFont(t)
	out, n, err := Font(in, AshellNames())
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	require.NoError(t, ot.CompareTables(in, out, ot.T("name"), ot.T("head")))
	otf := parseFont(t, out)
	for tag, want := range opaqueTables {
		assert.Equal(t, want, otf.Table(ot.T(tag)).Binary(), "table %s", tag)
	}
}

func TestFontGoRegular(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.rename")
	defer teardown()
	//
	out, n, err := Font(goregular.TTF, AshellNames())
	require.NoError(t, err)
	assert.Positive(t, n)
	otf := parseFont(t, out)
	info := otquery.NameInfo(otf)
	assert.Equal(t, "Ashell Nerd Font", info["family"])
	assert.Equal(t, "Ashell Nerd Font Regular", info["fullname"])
	assert.Equal(t, "AshellNerdFont-Regular", info["uniqueid"])
	assert.NotEmpty(t, info["version"], "version record must survive")

	f1, err := sfnt.Parse(goregular.TTF)
	require.NoError(t, err)
	f2, err := sfnt.Parse(out)
	require.NoError(t, err, "x/image must still accept the font")
	assert.Equal(t, f1.NumGlyphs(), f2.NumGlyphs())
	assert.Equal(t, f1.UnitsPerEm(), f2.UnitsPerEm())
}

func TestFileScenario(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.rename")
	defer teardown()
	//
	path := writeFont(t, buildFont(t), 0o640)
	res, err := File(path, AshellNames())
	require.NoError(t, err)
	assert.Equal(t, path, res.Path)
	assert.Equal(t, 4, res.Replaced)
	assert.Equal(t, "Ashell Nerd Font", res.Family)
	assert.Empty(t, res.FullName, "font has no full name record to replace")
	assert.Equal(t, "TrueType", res.FontType)
	assert.Equal(t, "1.000", res.Revision)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	otf := parseFont(t, data)
	typo, ok := otf.Name().Lookup(ot.PlatformWindows, 1, 0x409, sfnt.NameID(16))
	require.True(t, ok, "nameID 16 must be preserved")
	s, err := otquery.DecodeUTF16(typo.Value)
	require.NoError(t, err)
	assert.Equal(t, "Old Typographic", s)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm(), "file mode must be kept")
}

func TestFileIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.rename")
	defer teardown()
	//
	path := writeFont(t, goregular.TTF, 0o644)
	_, err := File(path, AshellNames())
	require.NoError(t, err)
	once, err := os.ReadFile(path)
	require.NoError(t, err)
	_, err = File(path, AshellNames())
	require.NoError(t, err)
	twice, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(once, twice), "second run must not change the font")
}

func TestFileMissing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.rename")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "ashell_icon.ttf")
	_, err := File(path, AshellNames())
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err), "expected not-exist error, have %v", err)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "no file must be created")
}

func TestFileMalformedFontIsNotWritten(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.rename")
	defer teardown()
	//
	garbage := []byte(strings.Repeat("not a font ", 10))
	path := writeFont(t, garbage, 0o644)
	_, err := File(path, AshellNames())
	require.Error(t, err)
	var fe ot.FontError
	require.ErrorAs(t, err, &fe, "format violations must be reported as font errors")
	assert.Equal(t, ot.SeverityCritical, fe.Severity)
	assert.Equal(t, "Header", fe.Section)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, garbage, data, "file must be left unmodified")
}

func TestFileEncodingErrorIsNotWritten(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.rename")
	defer teardown()
	//
	in := buildFont(t)
	path := writeFont(t, in, 0o644)
	_, err := File(path, NameMap{sfnt.NameIDFamily: string([]byte{0xc3})})
	require.ErrorIs(t, err, ErrEncoding)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, in, data, "file must be left unmodified")
}

func TestFileRejectsDirectory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.rename")
	defer teardown()
	//
	_, err := File(t.TempDir(), AshellNames())
	assert.Error(t, err)
}

// --- Helpers ---------------------------------------------------------------

func buildFont(t *testing.T) []byte {
	t.Helper()
	names, err := ttxtest.ParseTTXName(strings.NewReader(oldNamesTTX))
	require.NoError(t, err)
	b, err := ttxtest.BuildFont(names, opaqueTables)
	require.NoError(t, err)
	return b
}

func parseFont(t *testing.T, b []byte) *ot.Font {
	t.Helper()
	otf, err := ot.Parse(b)
	require.NoError(t, err)
	return otf
}

func writeFont(t *testing.T, b []byte, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ashell_icon.ttf")
	require.NoError(t, os.WriteFile(path, b, perm))
	require.NoError(t, os.Chmod(path, perm)) // umask
	return path
}

func cloneRecords(recs []ot.NameRecord) []ot.NameRecord {
	clone := make([]ot.NameRecord, len(recs))
	for i, rec := range recs {
		clone[i] = rec
		clone[i].Value = bytes.Clone(rec.Value)
	}
	return clone
}
