package validate

import "strings"

// markerFoundIn reports whether a bracketed marker like "(transfer)" occurs
// in the turn text. Matching is deliberately loose to favor recall against
// varied model formatting: the bracketed form, the keyword in angle
// brackets, the bare keyword next to a space, or the keyword opening or
// closing the text all count. Case-insensitive. Tightening the rules only
// requires changing this function.
func markerFoundIn(text, marker string) bool {
	text = strings.ToLower(text)
	marker = strings.ToLower(marker)
	bare := strings.Trim(marker, "()")
	return strings.Contains(text, marker) ||
		strings.Contains(text, "<"+bare+">") ||
		strings.Contains(text, " "+bare) ||
		strings.Contains(text, bare+" ") ||
		strings.HasPrefix(text, bare) ||
		strings.HasSuffix(text, bare)
}

// normalizeMarker ensures a marker is in its bracketed form. "transfer" and
// "(transfer)" refer to the same marker.
func normalizeMarker(tag string) string {
	if strings.HasPrefix(tag, "(") {
		return tag
	}
	return "(" + tag + ")"
}
