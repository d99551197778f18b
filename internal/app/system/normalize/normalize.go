// Package normalize centralizes the small string normalizations applied
// before storing or comparing user-supplied values. Keeping them in one
// place ensures login lookups and uniqueness checks agree on the folded
// form.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role tag ("teacher", "ta").
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam trims a query-string value and maps the empty string to the
// supplied default. The list endpoints treat "all" as "no filter".
func QueryParam(s, def string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	return s
}
