// Package strings holds small normalizers for user-supplied string lists.
package strings

import (
	"strings"
)

// DedupeAndTrimLower trims and lowercases every element, then drops empties and
// repeats. Order of first appearance is preserved.
//
//	DedupeAndTrimLower([]string{" Saturday", "sunday", "SATURDAY", ""})
//	// []string{"saturday", "sunday"}
func DedupeAndTrimLower(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		normalized := strings.ToLower(strings.TrimSpace(v))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}
	return result
}
