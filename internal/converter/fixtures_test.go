package converter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fixtureSheet struct {
	name string
	rows [][]any
}

// writeWorkbook saves an xlsx with the given sheets. Nil cells are left unset.
func writeWorkbook(t *testing.T, path string, sheets ...fixtureSheet) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		switch {
		case i == 0 && sheet.name != "Sheet1":
			require.NoError(t, f.SetSheetName("Sheet1", sheet.name))
		case i > 0:
			_, err := f.NewSheet(sheet.name)
			require.NoError(t, err)
		}
		for r, row := range sheet.rows {
			for c, v := range row {
				if v == nil {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(sheet.name, cell, v))
			}
		}
	}

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, f.SaveAs(path))
}

// copyFixture copies testdata/name to dst.
//
// The .xls fixtures are described in testdata/README.md.
func copyFixture(t *testing.T, name, dst string) {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(dst, data, 0o644))
}
