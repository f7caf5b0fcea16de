package rdl

import "strings"

// sanitize strips code points that are illegal in the output document.
// Legal points are tab, line feed, carriage return, 0x20-0xD7FF, and
// 0xE000-0xFFFD. The filter runs on every piece of free text before it
// is inserted, so an illegal point can never reach the element tree.
func sanitize(s string) string {
	if allLegal(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if legalRune(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allLegal(s string) bool {
	for _, r := range s {
		if !legalRune(r) {
			return false
		}
	}
	return true
}

func legalRune(r rune) bool {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	default:
		return false
	}
}
