package importer

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"marketer/internal/domain"
	"marketer/internal/store"
)

func newImporter(t *testing.T) *Importer {
	t.Helper()
	s := store.NewContactStore(filepath.Join(t.TempDir(), "contacts.json"))
	if err := s.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	return &Importer{Contacts: s, CountryCode: "+254"}
}

const sampleCSV = `name,phone,email,optInStatus
Amy,0712345678,amy@example.com,opted-in
Bob,0712345679,,
`

func TestImportIdempotence(t *testing.T) {
	im := newImporter(t)
	now := time.Now().UTC()

	rows, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	first, err := im.Import(rows, now)
	if err != nil {
		t.Fatalf("first import: %v", err)
	}
	if first.Created != 2 || first.Updated != 0 {
		t.Fatalf("first import: created=%d updated=%d, want 2/0", first.Created, first.Updated)
	}

	second, err := im.Import(rows, now)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if second.Created != 0 || second.Updated != 2 {
		t.Fatalf("second import: created=%d updated=%d, want 0/2", second.Created, second.Updated)
	}
	if im.Contacts.Count() != 2 {
		t.Fatalf("contact count after re-import = %d, want 2", im.Contacts.Count())
	}
}

func TestImportPartialFailure(t *testing.T) {
	im := newImporter(t)
	csv := `name,phone
Amy,0712345678
Bob,
Cara,0712345680
`
	rows, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	res, err := im.Import(rows, time.Now().UTC())
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Imported != 2 {
		t.Fatalf("imported = %d, want 2", res.Imported)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %v, want exactly one", res.Errors)
	}
	// Bob sits on file line 3: header is line 1, data rows count from 2.
	if res.Errors[0] != "Row 3: Missing name or phone number" {
		t.Fatalf("unexpected row error: %q", res.Errors[0])
	}
	if im.Contacts.Count() != 2 {
		t.Fatalf("store has %d contacts, want 2", im.Contacts.Count())
	}
}

func TestImportNormalizesPhones(t *testing.T) {
	im := newImporter(t)
	csv := `Name,Phone Number
Amy,0712 345-678
`
	rows, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	res, err := im.Import(rows, time.Now().UTC())
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if res.Created != 1 {
		t.Fatalf("created = %d, want 1", res.Created)
	}
	if got := res.Contacts[0].Contact.Phone; got != "+254712345678" {
		t.Fatalf("phone = %q, want +254712345678", got)
	}
}

func TestImportAppliesOptInStatus(t *testing.T) {
	im := newImporter(t)
	csv := `name,phone,opt-in
Amy,0712345678,opted-in
Bob,0712345679,nonsense
`
	rows, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, err := im.Import(rows, time.Now().UTC()); err != nil {
		t.Fatalf("import: %v", err)
	}

	amy := im.Contacts.List(domain.ContactFilter{Search: "amy"})[0]
	if amy.OptInStatus != domain.OptedIn {
		t.Fatalf("amy status = %s, want opted-in", amy.OptInStatus)
	}
	bob := im.Contacts.List(domain.ContactFilter{Search: "bob"})[0]
	if bob.OptInStatus != domain.OptInUnknown {
		t.Fatalf("unrecognized consent value should stay unknown, got %s", bob.OptInStatus)
	}
}

func TestParseCSVHeaderAliases(t *testing.T) {
	csv := `NAME,phoneNumber,E-MAIL,Opt In
Amy,0712345678,amy@example.com,yes
`
	rows, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	r := rows[0]
	if r.Name != "Amy" || r.Phone != "0712345678" || r.Email != "amy@example.com" || r.OptIn != "yes" {
		t.Fatalf("header aliasing failed: %+v", r)
	}
}

func TestParseCSVEmpty(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("name,phone\n")); err == nil {
		t.Fatal("expected error for CSV with no data rows")
	}
	if _, err := ParseCSV(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty CSV")
	}
}
