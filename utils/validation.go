// utils/validation.go
package utils

import (
	"strings"

	"github.com/ttacon/libphonenumber"
)

// CountryCode is the default region for parsing local phone numbers.
var CountryCode = "TH"

var thaiMobilePrefixes = []string{"06", "08", "09"}

// DigitsOnly strips everything except ASCII digits.
func DigitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizePhone reduces phone to its digits and checks it is a 10-digit
// number starting with 06, 08 or 09. The result is formatted "081-2345678".
func NormalizePhone(phone string) (string, bool) {
	digits := DigitsOnly(phone)
	if len(digits) != 10 {
		return "", false
	}
	for _, prefix := range thaiMobilePrefixes {
		if strings.HasPrefix(digits, prefix) {
			return digits[:3] + "-" + digits[3:], true
		}
	}
	return "", false
}

// ValidatePhone reports whether phone passes NormalizePhone.
func ValidatePhone(phone string) bool {
	_, ok := NormalizePhone(phone)
	return ok
}

// ToE164 converts a local number into E.164 ("+66812345678") for SMS delivery.
func ToE164(phone string) (string, error) {
	p, err := libphonenumber.Parse(phone, CountryCode)
	if err != nil {
		return "", err
	}
	return libphonenumber.Format(p, libphonenumber.E164), nil
}
