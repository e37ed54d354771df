// Command ashell-font-rename gives the ashell icon font its family names.
//
// It rewrites the naming records of assets/ashell_icon.ttf in place, setting
// family "Ashell Nerd Font", style "Regular" and the derived full, unique and
// PostScript names. The command takes no arguments.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/npillmayer/fontrename"
	"github.com/npillmayer/fontrename/rename"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
	"golang.org/x/term"
)

const fontFile = "ashell_icon.ttf"

// tracer traces with key 'font.rename'
func tracer() tracing.Trace {
	return tracing.Select("font.rename")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":     "go",
		"trace.font.rename":   "Info",
		"trace.fontrename":    "Error",
		"trace.font.query":    "Error",
		"trace.font.opentype": "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	if err := run(os.Stdout, fontPath()); err != nil {
		pterm.Error.Println(errorMessage(err))
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output, unless output is redirected.
func initDisplay() {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		pterm.DisableStyling()
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// fontPath locates the icon font in the module's assets folder, relative to
// this source file.
func fontPath() string {
	_, src, _, ok := runtime.Caller(0)
	if !ok {
		return filepath.Join("assets", fontFile)
	}
	return filepath.Join(filepath.Dir(src), "..", "..", "assets", fontFile)
}

// successText, followed by the file name, is printed after the font has been written.
const successText = "✅ Font renamed and saved as "

// run renames the font at path and reports success on w.
func run(w io.Writer, path string) error {
	res, err := rename.File(path, rename.AshellNames())
	if err != nil {
		return err
	}
	tracer().Infof("replaced %d name records, family is now %q", res.Replaced, res.Family)
	f, err := fontrename.LoadScalableFont(path)
	if err != nil {
		return fmt.Errorf("re-loading %s: %w", path, err)
	}
	tracer().Debugf("%s has %d glyphs\n%s", f.Filepath, f.NumGlyphs(), formatResult(res))
	pterm.Fprintln(w, successText+filepath.Base(path))
	return nil
}
