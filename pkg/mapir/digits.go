package mapir

import "strings"

var faDigits = strings.NewReplacer(
	"0", "۰", "1", "۱", "2", "۲", "3", "۳", "4", "۴",
	"5", "۵", "6", "۶", "7", "۷", "8", "۸", "9", "۹",
)

// FaDigits replaces ASCII digits in s with Persian digits.
func FaDigits(s string) string {
	return faDigits.Replace(s)
}
