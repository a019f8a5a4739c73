// Package textnorm compara textos sin distinguir mayúsculas ni tildes
// ("Asignación" coincide con "asignacion").
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold devuelve s en minúsculas, sin marcas diacríticas y sin espacios en los extremos.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Contains indica si needle aparece en alguno de los textos. Un needle vacío coincide siempre.
func Contains(needle string, haystacks ...string) bool {
	n := Fold(needle)
	if n == "" {
		return true
	}
	for _, h := range haystacks {
		if strings.Contains(Fold(h), n) {
			return true
		}
	}
	return false
}
