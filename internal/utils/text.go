package utils

import "strings"

// NormalizePhone strips everything but digits from a phone number, so
// "+1 555-0100" and "whatsapp:+15550100" compare equal.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeLabel lowercases a button label and collapses whitespace
// runs, the comparison form used by the button matcher.
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), " "))
}

// LabelsEqual compares two button labels case- and
// whitespace-insensitively.
func LabelsEqual(a, b string) bool {
	return NormalizeLabel(a) == NormalizeLabel(b)
}
