// Package truncate bounds display strings for length-limited chat protocols.
//
// Lengths are counted in characters (runes), never bytes, and the cut is made at the
// exact limit with no attempt to respect word boundaries.
package truncate

import "unicode/utf8"

// Marker is appended to every truncated string.
const Marker = "..."

// String returns s cut down to at most max characters. When a cut happens the result ends
// with Marker and the marker counts towards max. A non-positive max disables the limit.
func String(s string, max int) (string, bool) {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s, false
	}

	markerLen := utf8.RuneCountInString(Marker)
	if max <= markerLen {
		// no room for any content, keep as much of the marker as fits
		return string([]rune(Marker)[:max]), true
	}

	runes := []rune(s)
	return string(runes[:max-markerLen]) + Marker, true
}

// Len is the character length used by String.
func Len(s string) int {
	return utf8.RuneCountInString(s)
}
