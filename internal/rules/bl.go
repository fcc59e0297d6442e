package rules

import (
	"regexp"
	"strings"
)

var blCodePattern = regexp.MustCompile(`^[347]\d{5}$`)

// ValidateBL reports whether a bill-of-lading identifier is well formed:
// "<prefix>-<code>" where code is six digits starting with 3, 4 or 7.
// A null (empty) value or any malformed shape is invalid, never an error.
func ValidateBL(bl string) bool {
	if strings.TrimSpace(bl) == "" {
		return false
	}
	parts := strings.Split(bl, "-")
	if len(parts) != 2 {
		return false
	}
	return blCodePattern.MatchString(parts[1])
}
