package importer

import (
	"io"

	"github.com/xuri/excelize/v2"

	"marketer/internal/domain"
)

// ParseXLSX reads the first sheet of an uploaded workbook into raw
// Rows, reconciling headers the same way the CSV path does.
func ParseXLSX(r io.Reader) ([]Row, error) {
	xl, err := excelize.OpenReader(r)
	if err != nil {
		return nil, domain.Validationf("failed to open workbook: %v", err)
	}
	defer xl.Close()

	sheets := xl.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.Validation("workbook has no sheets")
	}
	records, err := xl.GetRows(sheets[0])
	if err != nil {
		return nil, domain.Validationf("failed to read sheet: %v", err)
	}
	if len(records) < 2 {
		return nil, domain.Validation("workbook is empty or has no data rows")
	}
	return rowsFromRecords(records), nil
}
