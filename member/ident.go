package member

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und, cases.NoLower)

// ValidIdent reports whether name is usable as a member or type name:
// a non-empty letter-or-underscore start followed by letters, digits or
// underscores.
func ValidIdent(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// Exported returns name with its first rune upper-cased, the spelling used
// when a member surfaces as an exported Go identifier.
func Exported(name string) string {
	if name == "" {
		return name
	}
	return titleCaser.String(name[:1]) + name[1:]
}

// Unexported returns name with its first rune lower-cased.
func Unexported(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
