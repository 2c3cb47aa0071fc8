// Package validator checks Korean business identifiers that arrive from
// receipts, statements and user input.
package validator

import (
	"strings"
	"unicode"
)

var bizNumWeights = [9]int{1, 3, 7, 1, 3, 7, 1, 3, 5}

// DigitsOnly strips everything but ASCII digits.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidBusinessNumber reports whether s is a 10-digit business registration
// number (사업자등록번호) with a correct check digit. Hyphens are ignored.
func ValidBusinessNumber(s string) bool {
	digits := DigitsOnly(s)
	if len(digits) != 10 || len(digits) != len(strings.ReplaceAll(strings.TrimSpace(s), "-", "")) {
		return false
	}
	d := make([]int, 10)
	for i, r := range digits {
		d[i] = int(r - '0')
	}
	sum := 0
	for i, w := range bizNumWeights {
		sum += d[i] * w
	}
	sum += d[8] * 5 / 10
	return (10-sum%10)%10 == d[9]
}

// FormatBusinessNumber renders a valid number as 000-00-00000.
func FormatBusinessNumber(s string) string {
	digits := DigitsOnly(s)
	if len(digits) != 10 {
		return s
	}
	return digits[:3] + "-" + digits[3:5] + "-" + digits[5:]
}

// ValidResidentID reports whether s looks like a resident registration number
// (6 birth-date digits, 7 more digits, optional hyphen).
func ValidResidentID(s string) bool {
	s = strings.TrimSpace(s)
	front, back, found := strings.Cut(s, "-")
	if !found {
		if len(s) != 13 {
			return false
		}
		front, back = s[:6], s[6:]
	}
	return len(front) == 6 && len(back) == 7 && allDigits(front) && allDigits(back)
}

// MaskResidentID keeps the birth date and the gender digit and hides the rest.
func MaskResidentID(s string) string {
	digits := DigitsOnly(s)
	if len(digits) != 13 {
		return strings.Repeat("*", len(s))
	}
	return digits[:6] + "-" + digits[6:7] + "******"
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) || r > unicode.MaxASCII {
			return false
		}
	}
	return s != ""
}
