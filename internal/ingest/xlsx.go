package ingest

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readWorkbook returns the rows of the sheet named after the table, or of the
// first sheet when the workbook has no such sheet.
func readWorkbook(path, source string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s workbook %s: %w", source, path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if idx, err := f.GetSheetIndex(source); err == nil && idx >= 0 {
		sheet = source
	}

	// Raw values: number formats must not round or reformat the inputs
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("cannot read sheet %q of %s: %w", sheet, path, err)
	}
	return rows, nil
}
