package importer

import (
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"marketer/internal/domain"
)

// WriteXLSX renders the contact book as a single-sheet workbook for
// download. Column order mirrors the headers the importer accepts, so
// an exported file can be re-imported unchanged.
func WriteXLSX(w io.Writer, contacts []domain.Contact) error {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := xl.GetSheetName(0)
	header := []string{"name", "phone", "email", "optInStatus", "createdAt"}
	if err := xl.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, c := range contacts {
		record := []string{
			c.Name,
			c.Phone,
			c.Email,
			string(c.OptInStatus),
			c.CreatedAt.UTC().Format(time.RFC3339),
		}
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := xl.SetSheetRow(sheet, cellRef, &record); err != nil {
			return err
		}
	}

	return xl.Write(w)
}
