package importer

import "strings"

// Row is one data row from an uploaded contact file, still raw.
// Line is the 1-indexed position in the file including the header,
// so the first data row is line 2.
type Row struct {
	Name  string
	Phone string
	Email string
	OptIn string
	Line  int
}

// Column headers are reconciled case-insensitively against a fixed
// alias list per field, so "Phone Number" and "phoneNumber" both land
// on the phone column.
var headerAliases = map[string][]string{
	"name":  {"name", "full name", "contact name"},
	"phone": {"phone", "phonenumber", "phone number", "mobile", "msisdn"},
	"email": {"email", "email address", "e-mail"},
	"optin": {"optinstatus", "opt-in", "opt in", "optin", "opt-in status", "consent"},
}

type columnMap struct {
	name  int
	phone int
	email int
	optIn int
}

func mapColumns(header []string) columnMap {
	m := columnMap{name: -1, phone: -1, email: -1, optIn: -1}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		switch {
		case m.name < 0 && matches(key, headerAliases["name"]):
			m.name = i
		case m.phone < 0 && matches(key, headerAliases["phone"]):
			m.phone = i
		case m.email < 0 && matches(key, headerAliases["email"]):
			m.email = i
		case m.optIn < 0 && matches(key, headerAliases["optin"]):
			m.optIn = i
		}
	}
	return m
}

func matches(key string, aliases []string) bool {
	for _, a := range aliases {
		if key == a {
			return true
		}
	}
	return false
}

func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// rowsFromRecords turns a header row plus data records into Rows.
func rowsFromRecords(records [][]string) []Row {
	if len(records) == 0 {
		return nil
	}
	cols := mapColumns(records[0])
	rows := make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		rows = append(rows, Row{
			Name:  cell(rec, cols.name),
			Phone: cell(rec, cols.phone),
			Email: cell(rec, cols.email),
			OptIn: cell(rec, cols.optIn),
			Line:  i + 2,
		})
	}
	return rows
}
