package markupgen

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// exportName returns name with its first letter in title case, which is the
// Go field name for a prop or a parameter.
func exportName(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return cases.Title(language.Und, cases.NoLower).String(name[:size]) + name[size:]
}

// camelName joins the '_'-separated parts of name, each starting in title
// case. Empty parts are dropped.
func camelName(name string) string {
	var sb strings.Builder
	for part := range strings.SplitSeq(name, "_") {
		sb.WriteString(exportName(part))
	}
	return sb.String()
}

// normalizePropName strips whitespace and turns '-' into '_'.
func normalizePropName(name string) string {
	name = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
	return strings.ReplaceAll(name, "-", "_")
}

// isPropIdentifier reports whether name starts with a letter, continues with
// letters, digits or underscores, and is not a Go keyword.
func isPropIdentifier(name string) bool {
	for i, r := range name {
		switch {
		case unicode.IsLetter(r):
		case i > 0 && (r == '_' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return name != "" && !token.IsKeyword(name)
}
