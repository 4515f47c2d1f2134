package types

import orderedmap "github.com/wk8/go-ordered-map/v2"

// Row is one spreadsheet row. Cells are string, float64, bool or nil when empty.
type Row []any

type Sheet struct {
	Name string
	Rows []Row
}

// Document holds the sheets of one decoded workbook in workbook order.
type Document struct {
	Path   string
	Sheets []Sheet
}

// RowRange is a 1-based inclusive row interval. End == 0 means through the
// last row of the sheet.
type RowRange struct {
	Start int
	End   int
}

// Record maps header keys to cell values in header order.
type Record = *orderedmap.OrderedMap[string, any]

func NewRecord() Record {
	return orderedmap.New[string, any]()
}

type Status int

const (
	StatusWritten Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusWritten:
		return "written"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

type ConversionResult struct {
	InputFile  string
	Sheet      string
	OutputFile string
	Records    int
	Bytes      int64
	Status     Status
	Err        error
}
