package ui

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/nconklindev/sheetjson/internal/types"
)

const (
	title = "⇄ sheetjson - Spreadsheet Rows to JSON"

	promptFileName = "Input file name (no extension, may be left blank)"
	promptStartRow = "Start row (1-based)"
	promptEndRow   = "End row (inclusive, may be left blank)"
)

// noteRowNumbers warns that blank rows above the data still count.
const noteRowNumbers = "Row numbers are sheet rows: row 1 is the top of the sheet, even when the data starts further down."

var usageNotes = []string{
	"The start row holds the keys, the rows after it become the elements. Blank rows are ignored.",
	noteRowNumbers,
	"The file name may be a relative path, e.g. ../test/myData.",
	"Leave it blank to convert every .xlsx/.xls file in this directory and its subdirectories.",
	"Hidden files and spreadsheet lock files (~$*) are never touched.",
}

// summary counts results by status.
type summary struct {
	written, skipped, failed int
}

func summarize(results []types.ConversionResult) summary {
	var s summary
	for _, res := range results {
		switch res.Status {
		case types.StatusWritten:
			s.written++
		case types.StatusSkipped:
			s.skipped++
		case types.StatusFailed:
			s.failed++
		}
	}
	return s
}

func (s summary) String() string {
	return fmt.Sprintf("%d written, %d skipped, %d failed", s.written, s.skipped, s.failed)
}

// formatResult renders one result as a single styled line. Paths are shown
// relative to root.
func formatResult(res types.ConversionResult, root string) string {
	name := relTo(root, res.InputFile)
	if res.Sheet != "" {
		name = fmt.Sprintf("%s [%s]", name, res.Sheet)
	}

	switch res.Status {
	case types.StatusWritten:
		return SuccessStyle.Render(fmt.Sprintf("✓ %s → %s", name, res.OutputFile)) +
			fmt.Sprintf(" (%d records, %s)", res.Records, humanize.Bytes(uint64(res.Bytes)))
	case types.StatusSkipped:
		return WarningStyle.Render(fmt.Sprintf("! %s skipped: %v", name, res.Err))
	default:
		return ErrorStyle.Render(fmt.Sprintf("✗ %s failed: %v", name, rootCause(res.Err)))
	}
}

func formatResults(results []types.ConversionResult, root string) string {
	if len(results) == 0 {
		return WarningStyle.Render("No spreadsheets were converted.")
	}

	var s strings.Builder
	for _, res := range results {
		s.WriteString(formatResult(res, root))
		s.WriteString("\n")
	}
	s.WriteString("\n")
	s.WriteString(summarize(results).String())
	return s.String()
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func relTo(root, path string) string {
	if r, err := filepath.Rel(root, path); err == nil {
		return r
	}
	return path
}
