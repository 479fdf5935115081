package importer

import (
	"fmt"
	"time"

	"marketer/internal/domain"
	"marketer/internal/observability"
	"marketer/internal/store"
	"marketer/internal/util"
)

// Result summarizes one import batch. Errors holds row-level failures;
// a row error never aborts the rest of the batch.
type Result struct {
	Imported int                  `json:"imported"`
	Created  int                  `json:"created"`
	Updated  int                  `json:"updated"`
	Contacts []store.MergeOutcome `json:"contacts"`
	Errors   []string             `json:"errors,omitempty"`
}

// Importer merges parsed contact rows into the contact store.
type Importer struct {
	Contacts    *store.ContactStore
	CountryCode string
}

// Import validates and normalizes each row, then applies the whole
// batch to the store in one merge and one persist. Rows without a
// name or a usable phone number are reported by file line and skipped.
func (im *Importer) Import(rows []Row, now time.Time) (Result, error) {
	var res Result
	ups := make([]store.ContactUpsert, 0, len(rows))

	for _, row := range rows {
		phone := util.NormalizePhone(row.Phone, im.CountryCode)
		if row.Name == "" || phone == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d: Missing name or phone number", row.Line))
			observability.ImportRows.WithLabelValues("error").Inc()
			continue
		}
		ups = append(ups, store.ContactUpsert{
			Name:        row.Name,
			Phone:       phone,
			Email:       row.Email,
			OptInStatus: domain.ParseOptInStatus(row.OptIn),
		})
	}

	outcomes, err := im.Contacts.MergeBatch(ups, now)
	if err != nil {
		return Result{}, err
	}

	res.Contacts = outcomes
	res.Imported = len(outcomes)
	for _, o := range outcomes {
		if o.Updated {
			res.Updated++
			observability.ImportRows.WithLabelValues("updated").Inc()
		} else {
			res.Created++
			observability.ImportRows.WithLabelValues("created").Inc()
		}
	}
	return res, nil
}
