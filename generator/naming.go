package generator

import (
	"strings"
	"unicode"
)

// mangle converts a qualified C++ name ("demo::Point::x") into a
// mangling-safe identifier ("demo_Point_x") suitable for embedding in a
// generated bridge/thunk name, per spec.md §4.6's
// "extended_name = mangling-safe(qualified_name)". Adapted from the
// teacher's schema/naming.go toSnakeCase core, stripped of its table-name
// pluralization concerns — reused here for C++-safe identifiers instead of
// database columns.
func mangle(qualifiedName string) string {
	var b strings.Builder
	b.Grow(len(qualifiedName))
	for _, r := range qualifiedName {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return collapseUnderscores(b.String())
}

func collapseUnderscores(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastWasUnderscore := false
	for _, r := range s {
		if r == '_' {
			if lastWasUnderscore {
				continue
			}
			lastWasUnderscore = true
		} else {
			lastWasUnderscore = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// thunkName derives a bridge/thunk identifier per spec.md §4.6:
// "<extended_name>_<member>[_invoker|_ctor|_dtor]".
func thunkName(qualifiedName, member, suffix string) string {
	name := mangle(qualifiedName)
	if member != "" {
		name += "_" + mangle(member)
	}
	if suffix != "" {
		name += "_" + suffix
	}
	return name
}

// toIdentifier converts a snake_case or mixed-case name into PascalCase,
// used for the static artifact's generated member/type names. Adapted
// from the teacher's toPascalCase core, again without pluralization.
func toIdentifier(name string) string {
	if name == "" {
		return ""
	}
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == ':'
	})
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		runes := []rune(p)
		b.WriteRune(unicode.ToUpper(runes[0]))
		b.WriteString(string(runes[1:]))
	}
	return b.String()
}
