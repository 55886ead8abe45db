package identity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var sinTildes = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicaliza texto libre para compararlo: descompone los
// caracteres acentuados y descarta las marcas diacríticas, pasa a
// minúsculas y colapsa los espacios internos en uno solo.
func Normalize(s string) string {
	out, _, err := transform.String(sinTildes, s)
	if err != nil {
		out = s
	}
	return strings.Join(strings.Fields(strings.ToLower(out)), " ")
}
