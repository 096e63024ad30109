package banklink

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Đ has no canonical decomposition, so it is mapped by hand.
var strokeReplacer = strings.NewReplacer("Đ", "D", "đ", "D")

// NormalizeName upper-cases s, strips diacritics and collapses whitespace.
func NormalizeName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, strokeReplacer.Replace(s))
	if err != nil {
		stripped = s
	}
	return strings.Join(strings.Fields(strings.ToUpper(stripped)), " ")
}

// NameMatches reports whether the holder name contains the last word of the
// employee name as a whole word, after normalization.
func NameMatches(employeeName, holderName string) bool {
	employeeTokens := strings.Fields(NormalizeName(employeeName))
	if len(employeeTokens) == 0 {
		return false
	}
	last := employeeTokens[len(employeeTokens)-1]
	for _, token := range strings.Fields(NormalizeName(holderName)) {
		if token == last {
			return true
		}
	}
	return false
}
