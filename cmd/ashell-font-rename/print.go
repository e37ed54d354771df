package main

import (
	"errors"
	"fmt"

	"github.com/npillmayer/fontrename/ot"
	"github.com/npillmayer/fontrename/rename"
	"github.com/pterm/pterm"
)

// formatResult renders the names read back from a renamed font as a table.
func formatResult(res rename.Result) string {
	data := [][]string{
		{"Property", "Value"},
		{"Family", res.Family},
		{"Full name", res.FullName},
		{"Font type", res.FontType},
		{"Revision", res.Revision},
		{"Records replaced", fmt.Sprintf("%d", res.Replaced)},
	}
	s, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Sprintf("%+v", res)
	}
	return fmt.Sprintf("%s:\n%s", res.Path, s)
}

// errorMessage spells out where a font is damaged, if err tells us.
func errorMessage(err error) string {
	var fe ot.FontError
	if !errors.As(err, &fe) {
		return err.Error()
	}
	where := fmt.Sprintf("table '%s', %s", fe.Table, fe.Section)
	if fe.Offset > 0 {
		where += fmt.Sprintf(" at offset %d", fe.Offset)
	}
	return fmt.Sprintf("font is damaged (%s): %s [%s]", where, fe.Issue, fe.Severity)
}
