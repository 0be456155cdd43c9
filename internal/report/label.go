package report

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var asciiFold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldASCII strips diacritics and drops any remaining non-ASCII runes.
// Company labels arrive unnormalized and feed into both the PDF text (which
// uses a latin-1 core font) and artifact filenames.
func FoldASCII(s string) string {
	folded, _, err := transform.String(asciiFold, s)
	if err != nil {
		folded = s
	}
	var sb strings.Builder
	for _, r := range folded {
		if r < 128 {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// FileLabel reduces a label to a filename-safe token: diacritics folded,
// whitespace and separators collapsed to underscores, everything else
// non-alphanumeric dropped.
func FileLabel(s string) string {
	folded := FoldASCII(s)
	var sb strings.Builder
	lastUnderscore := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastUnderscore = false
		case r == ' ' || r == '-' || r == '_' || r == '.':
			if !lastUnderscore && sb.Len() > 0 {
				sb.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "_")
}
