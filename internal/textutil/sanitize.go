package textutil

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// nonPrintableASCII matches every rune outside the printable ASCII range.
var nonPrintableASCII = runes.Remove(runes.Predicate(func(r rune) bool {
	return r < 0x20 || r > 0x7e
}))

// SanitizeName reduces a display name to printable ASCII so persisted lines
// stay stable across encodings. Non-ASCII code points are dropped, not
// transliterated, matching how the catalog and games-log formats are defined.
func SanitizeName(name string) string {
	out, _, err := transform.String(nonPrintableASCII, name)
	if err != nil {
		// The remover cannot fail on valid UTF-8; fall back to a rune filter
		// for malformed input.
		var b strings.Builder
		for _, r := range name {
			if r >= 0x20 && r <= 0x7e {
				b.WriteRune(r)
			}
		}
		return strings.TrimSpace(b.String())
	}
	return strings.TrimSpace(out)
}
