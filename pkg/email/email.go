// Package email derives display data from email addresses.
package email

import (
	"strings"
	"unicode"
)

const fallbackName = "Volunteer"

// DisplayNameFromEmail derives a display name from the local part of an
// address, ignoring any +subaddress: "jane.doe+hmc@example.org" becomes
// "Jane Doe". Bulk imports use it when a row has no name.
func DisplayNameFromEmail(address string) string {
	local, _, _ := strings.Cut(address, "@")
	local, _, _ = strings.Cut(local, "+")

	words := strings.FieldsFunc(local, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if len(words) == 0 {
		return fallbackName
	}
	for i, w := range words {
		words[i] = titleCase(w)
	}
	return strings.Join(words, " ")
}

func titleCase(word string) string {
	runes := []rune(strings.ToLower(word))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
