package util

import "strings"

var phoneCleaner = strings.NewReplacer(" ", "", "\t", "", "-", "", "(", "", ")", "")

// NormalizePhone turns a free-form phone string into an E.164-ish one.
// A leading 0 is swapped for the default country code; anything else
// without a + gets one prepended. Digit counts are not validated.
// TODO - may use libphonenumber once numbers outside the default
// country start showing up in imports.
func NormalizePhone(raw, countryCode string) string {
	p := phoneCleaner.Replace(strings.TrimSpace(raw))
	switch {
	case p == "":
		return ""
	case strings.HasPrefix(p, "0"):
		return countryCode + p[1:]
	case !strings.HasPrefix(p, "+"):
		return "+" + p
	default:
		return p
	}
}

// ParsePhoneList splits comma- or newline-separated phone text and
// normalizes each entry. Entries that are empty after cleaning are
// dropped rather than normalized.
func ParsePhoneList(raw, countryCode string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if p := NormalizePhone(f, countryCode); p != "" {
			out = append(out, p)
		}
	}
	return out
}
