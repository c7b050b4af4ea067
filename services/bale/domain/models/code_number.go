package models

import "strings"

// CodeNumber is the lot code printed on a bale, e.g. "AB12-0042".
// The part before the first dash is the lot prefix used for filtering and ribbon colours.
type CodeNumber string

// Prefix returns the lot prefix, or the whole code when it has no dash.
func (c CodeNumber) Prefix() string {
	s := string(c)
	if i := strings.IndexByte(s, '-'); i >= 0 {
		return s[:i]
	}
	return s
}

// HasPrefix reports whether the code starts with p. An empty p matches every code.
func (c CodeNumber) HasPrefix(p string) bool {
	return strings.HasPrefix(string(c), p)
}

// String returns the underlying string value.
func (c CodeNumber) String() string {
	return string(c)
}
