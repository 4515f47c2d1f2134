package converter

import (
	"strconv"

	"github.com/nconklindev/sheetjson/internal/types"
)

// Slice cuts rows down to r, uses the first row of the cut as the header and
// turns every remaining row into a Record. Rows with no values are dropped.
func Slice(rows []types.Row, r types.RowRange) ([]types.Record, error) {
	start := r.Start - 1
	if start < 0 {
		start = 0
	}
	end := len(rows)
	if r.End > 0 && r.End < end {
		end = r.End
	}
	if start >= end {
		return nil, ErrInsufficientRows
	}

	window := rows[start:end]
	header := headerKeys(window[0])

	records := make([]types.Record, 0, len(window)-1)
	for _, row := range window[1:] {
		rec := toRecord(header, row)
		if rec.Len() == 0 {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// headerKeys returns the key for each header cell, "" where the cell is empty.
func headerKeys(row types.Row) []string {
	keys := make([]string, len(row))
	for i, cell := range row {
		keys[i] = CellKey(cell)
	}
	return keys
}

func toRecord(header []string, row types.Row) types.Record {
	rec := types.NewRecord()
	n := min(len(header), len(row))
	for i := range n {
		if header[i] == "" || row[i] == nil {
			continue
		}
		rec.Set(header[i], row[i])
	}
	return rec
}

// CellKey renders a header cell as an object key.
func CellKey(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
