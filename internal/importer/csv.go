package importer

import (
	"encoding/csv"
	"io"

	"marketer/internal/domain"
)

// ParseCSV reads an uploaded CSV with a header row into raw Rows.
func ParseCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, domain.Validationf("failed to parse CSV: %v", err)
	}
	if len(records) < 2 {
		return nil, domain.Validation("CSV file is empty or has no data rows")
	}
	return rowsFromRecords(records), nil
}
