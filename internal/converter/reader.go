package converter

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/extrame/xls"
	"github.com/nconklindev/sheetjson/internal/types"
	"github.com/xuri/excelize/v2"
)

// Decoder reads every sheet of the workbook at path.
type Decoder func(path string) (*types.Document, error)

// Decode picks a decoder from the file extension.
func Decode(path string) (*types.Document, error) {
	switch ext := filepath.Ext(path); ext {
	case ".xlsx":
		return DecodeXLSX(path)
	case ".xls":
		return DecodeXLS(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// DecodeXLSX reads an Office Open XML workbook. Cell values keep their
// stored type: numbers become float64, booleans bool, everything else string.
func DecodeXLSX(path string) (*types.Document, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc := &types.Document{Path: path}
	for _, name := range f.GetSheetList() {
		raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}

		rows := make([]types.Row, len(raw))
		for i, cols := range raw {
			row := make(types.Row, len(cols))
			for j, text := range cols {
				if text == "" {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(j+1, i+1)
				if err != nil {
					return nil, err
				}
				typ, err := f.GetCellType(name, cell)
				if err != nil {
					return nil, fmt.Errorf("cell %s!%s: %w", name, cell, err)
				}
				row[j] = xlsxValue(text, typ)
			}
			rows[i] = row
		}
		doc.Sheets = append(doc.Sheets, types.Sheet{Name: name, Rows: rows})
	}
	return doc, nil
}

func xlsxValue(text string, typ excelize.CellType) any {
	switch typ {
	case excelize.CellTypeBool:
		if b, err := strconv.ParseBool(text); err == nil {
			return b
		}
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if n, ok := parseNumber(text); ok {
			return n
		}
	}
	return text
}

// DecodeXLS reads a legacy BIFF workbook. The format only exposes cell text,
// so numbers and booleans are inferred from it.
func DecodeXLS(path string) (*types.Document, error) {
	// xls.Open never closes the file it opens.
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	wb, err := xls.OpenReader(f, "utf-8")
	if err != nil {
		return nil, err
	}
	if wb == nil {
		return nil, fmt.Errorf("%w: no workbook stream in %s", ErrUnsupportedFormat, filepath.Base(path))
	}

	doc := &types.Document{Path: path}
	for i := range wb.NumSheets() {
		ws := wb.GetSheet(i)
		if ws == nil {
			continue
		}
		doc.Sheets = append(doc.Sheets, types.Sheet{Name: ws.Name, Rows: xlsRows(ws)})
	}
	return doc, nil
}

// xlsRows lays the sheet out by absolute row index. Missing rows stay nil and
// cells left of a row's first column are padded with nil.
func xlsRows(ws *xls.WorkSheet) []types.Row {
	rows := make([]types.Row, 0, int(ws.MaxRow)+1)
	for i := 0; i <= int(ws.MaxRow); i++ {
		r := sheetRow(ws, i)
		if r == nil {
			rows = append(rows, nil)
			continue
		}
		// LastCol is one past the last cell.
		row := make(types.Row, max(r.LastCol(), 0))
		for j := max(r.FirstCol(), 0); j < len(row); j++ {
			if text := r.Col(j); text != "" {
				row[j] = inferValue(text)
			}
		}
		rows = append(rows, row)
	}
	return trimTrailingEmpty(rows)
}

// sheetRow returns nil for a row the sheet has no record of. WorkSheet.Row
// dereferences the missing entry instead.
func sheetRow(ws *xls.WorkSheet, i int) (row *xls.Row) {
	defer func() {
		if recover() != nil {
			row = nil
		}
	}()
	return ws.Row(i)
}

func inferValue(text string) any {
	switch text {
	case "TRUE":
		return true
	case "FALSE":
		return false
	}
	if n, ok := parseNumber(text); ok {
		return n
	}
	return text
}

func parseNumber(text string) (float64, bool) {
	n, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func isEmptyRow(row types.Row) bool {
	for _, cell := range row {
		if cell != nil {
			return false
		}
	}
	return true
}

func trimTrailingEmpty(rows []types.Row) []types.Row {
	n := len(rows)
	for n > 0 && isEmptyRow(rows[n-1]) {
		n--
	}
	return rows[:n]
}
