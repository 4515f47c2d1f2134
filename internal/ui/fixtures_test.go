package ui

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writePeople saves <dir>/<name>.xlsx holding a Name/Age sheet with two records.
func writePeople(t *testing.T, dir, name string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	rows := [][]any{{"Name", "Age"}, {"A", 1}, {"B", 2}}
	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(dir, name+".xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}
