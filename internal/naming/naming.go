// Package naming decomposes identifiers into lowercase word tokens.
package naming

import (
	"strings"
	"unicode"
)

// Delimiter separates words in snake_case identifiers.
const Delimiter = "_"

// Split breaks an identifier into lowercase tokens, left to right.
//
// Identifiers containing Delimiter are split on it and empty segments are
// dropped. Otherwise a new token starts at every uppercase letter that follows
// a non-empty buffer, so runs of capitals are not grouped: "HTTPServer" yields
// h, t, t, p, server.
func Split(name string) []string {
	if strings.Contains(name, Delimiter) {
		var parts []string
		for _, seg := range strings.Split(name, Delimiter) {
			if seg != "" {
				parts = append(parts, strings.ToLower(seg))
			}
		}
		return parts
	}

	var parts []string
	var current strings.Builder
	for _, r := range name {
		if unicode.IsUpper(r) && current.Len() > 0 {
			parts = append(parts, strings.ToLower(current.String()))
			current.Reset()
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		parts = append(parts, strings.ToLower(current.String()))
	}
	return parts
}

// HasDelimiter reports whether name is written in delimiter-separated style.
func HasDelimiter(name string) bool {
	return strings.Contains(name, Delimiter)
}
