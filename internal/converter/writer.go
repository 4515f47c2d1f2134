package converter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/nconklindev/sheetjson/internal/types"
)

// OutputPath returns the JSON path next to input. With perSheet the sheet
// name is folded into the file name so sheets of one workbook do not collide.
func OutputPath(input, sheet string, perSheet bool) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if perSheet {
		return base + "." + sanitizeSheetName(sheet) + ".json"
	}
	return base + ".json"
}

func sanitizeSheetName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
}

// EncodeRecords renders records as a JSON array indented by two spaces.
func EncodeRecords(records []types.Record) ([]byte, error) {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// WriteRecords replaces the file at path with the encoded records and
// returns the number of bytes written.
func WriteRecords(path string, records []types.Record) (int64, error) {
	data, err := EncodeRecords(records)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}
