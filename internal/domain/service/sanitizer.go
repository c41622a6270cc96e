package service

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/unicode/norm"
)

var specialCases = strings.NewReplacer(
	"&", "and",
	"'", "",
	"Ñ", "N",
	"ñ", "n",
	"Ç", "C",
	"ç", "c",
	"º", "o",
	"ª", "a",
)

// Accented Latin letters and their base letters: acute, grave, circumflex, tilde,
// umlaut, ring, ligature, stroke and the eth/thorn letters.
var transliterations = map[rune]string{
	'Á': "A", 'À': "A", 'Â': "A", 'Ã': "A", 'Ä': "A", 'Å': "A", 'Æ': "AE",
	'á': "a", 'à': "a", 'â': "a", 'ã': "a", 'ä': "a", 'å': "a", 'æ': "ae",
	'É': "E", 'È': "E", 'Ê': "E", 'Ë': "E",
	'é': "e", 'è': "e", 'ê': "e", 'ë': "e",
	'Í': "I", 'Ì': "I", 'Î': "I", 'Ï': "I",
	'í': "i", 'ì': "i", 'î': "i", 'ï': "i",
	'Ó': "O", 'Ò': "O", 'Ô': "O", 'Õ': "O", 'Ö': "O", 'Ø': "O", 'Œ': "OE",
	'ó': "o", 'ò': "o", 'ô': "o", 'õ': "o", 'ö': "o", 'ø': "o", 'œ': "oe",
	'Ú': "U", 'Ù': "U", 'Û': "U", 'Ü': "U",
	'ú': "u", 'ù': "u", 'û': "u", 'ü': "u",
	'Ý': "Y", 'Ÿ': "Y",
	'ý': "y", 'ÿ': "y",
	'Ð': "E", 'ð': "e",
	'Þ': "TH", 'þ': "th",
	'ß': "sz",
}

// stripDisallowed deletes every rune outside A-Z a-z 0-9 / - ? : ( ) . , + and space.
var stripDisallowed = runes.Remove(runes.Predicate(func(r rune) bool {
	return !isPermitted(r)
}))

func isPermitted(r rune) bool {
	switch {
	case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("/-?:().,+ ", r)
}

// Sanitize maps free text onto the restricted alphabet of the transfer file.
// It never fails: characters without an equivalent are dropped. Sanitize is idempotent.
func Sanitize(text string) string {
	s := norm.NFC.String(strings.TrimSpace(text))
	s = specialCases.Replace(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if base, ok := transliterations[r]; ok {
			b.WriteString(base)
			continue
		}
		b.WriteRune(r)
	}

	out := stripDisallowed.String(b.String())

	// Stripping may expose whitespace at either end. Legacy writers kept it
	// ("€ Hello" became " Hello"); trimming here differs from them and keeps
	// Sanitize idempotent.
	return strings.TrimSpace(out)
}
