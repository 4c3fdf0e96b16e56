package common

import "strings"

// ToLowerWithTrim normalizes user-supplied identifiers before lookups.
func ToLowerWithTrim(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
