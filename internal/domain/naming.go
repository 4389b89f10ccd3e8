// Package domain contains the rename engine: case conversion, import origin
// classification, the scope-aware rewriter, and the path rename planner.
package domain

import (
	"strings"
	"unicode"
)

// IsPascalCase reports whether a name follows PascalCase convention and is
// therefore likely a class/type name. All-uppercase names and names containing
// underscores do not qualify.
func IsPascalCase(name string) bool {
	if len(name) < 2 {
		return false
	}

	return unicode.IsUpper(rune(name[0])) && !isAllUpper(name) && !strings.Contains(name, "_")
}

// isUnderscorePrefixedPascalCase reports whether a name is PascalCase wrapped
// in leading (and possibly trailing) underscores, e.g. _PrivateClass or
// __DunderThing__.
func isUnderscorePrefixedPascalCase(name string) bool {
	if len(name) < 3 || !strings.HasPrefix(name, "_") {
		return false
	}

	core := strings.Trim(name, "_")

	return core != "" && IsPascalCase(core)
}

// isDunder reports whether a name is wrapped in double underscores (__x__).
// Dunder names carry Python runtime meaning and are never converted.
func isDunder(name string) bool {
	return len(name) > 4 && strings.HasPrefix(name, "__") && strings.HasSuffix(name, "__") &&
		strings.Trim(name, "_") != ""
}

func isAllUpper(s string) bool {
	hasLetter := false

	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}

		if unicode.IsUpper(r) {
			hasLetter = true
		}
	}

	return hasLetter
}

// ToSnakeCase converts a name to snake_case.
//
// Dunder names are returned unchanged and leading underscores are preserved.
// A separator is inserted at each lowercase/digit to uppercase transition, and
// a run of uppercase letters is treated as one unit, split only at the
// boundary with a following lowercase letter: XMLParser becomes xml_parser,
// not x_m_l_parser. The conversion is idempotent.
func ToSnakeCase(name string) string {
	if name == "" {
		return ""
	}

	if isDunder(name) {
		return name
	}

	core := strings.TrimLeft(name, "_")
	if core == "" {
		// All-underscore names stay as they are.
		return name
	}

	prefix := name[:len(name)-len(core)]

	runes := []rune(core)

	var b strings.Builder

	b.Grow(len(core) + len(core)/2)

	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextIsLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextIsLower) {
				b.WriteByte('_')
			}
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return prefix + b.String()
}

// ToPascalCase converts a name to PascalCase, preserving underscore prefixes
// and suffixes around the converted core.
//
// All-uppercase segments (acronyms) are preserved as-is rather than
// title-cased: XMLParser and xml_XML both keep their XML run intact. Dunder
// names are returned unchanged.
func ToPascalCase(name string) string {
	if name == "" {
		return ""
	}

	if isDunder(name) {
		return name
	}

	core := strings.Trim(name, "_")
	if core == "" {
		return name
	}

	start := strings.Index(name, core)
	prefix, suffix := name[:start], name[start+len(core):]

	var b strings.Builder

	b.Grow(len(core))

	for _, word := range splitWords(core) {
		if isAllUpper(word) {
			b.WriteString(word)
			continue
		}

		b.WriteString(capitalize(word))
	}

	return prefix + b.String() + suffix
}

// splitWords breaks a name into its constituent words, keeping the original
// casing of each word. Splits happen at underscores, at lowercase/digit to
// uppercase transitions, and at the tail of an uppercase run followed by a
// lowercase letter (so XMLParser yields [XML Parser]).
func splitWords(s string) []string {
	var words []string

	for _, chunk := range strings.Split(s, "_") {
		if chunk == "" {
			continue
		}

		runes := []rune(chunk)
		start := 0

		for i := 1; i < len(runes); i++ {
			r, prev := runes[i], runes[i-1]
			if !unicode.IsUpper(r) {
				continue
			}

			boundary := unicode.IsLower(prev) || unicode.IsDigit(prev) ||
				(unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]))
			if boundary && i > start {
				words = append(words, string(runes[start:i]))
				start = i
			}
		}

		words = append(words, string(runes[start:]))
	}

	return words
}

func capitalize(word string) string {
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}

	runes[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}

	return string(runes)
}
