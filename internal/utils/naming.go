package utils

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultClassName is used when a node name has no identifier characters at all
const DefaultClassName = "AutoBindUI"

// SanitizeIdentifier drops every rune that cannot appear in a Go identifier
func SanitizeIdentifier(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SafeClassName derives an exported type name from a node display name
func SafeClassName(nodeName string) string {
	name := SanitizeIdentifier(nodeName)
	if name == "" {
		return DefaultClassName
	}
	first, _ := utf8.DecodeRuneInString(name)
	if unicode.IsDigit(first) || first == '_' {
		name = "UI" + strings.TrimLeft(name, "_")
	}
	return ToUpperCamel(name)
}

// ToUpperCamel upper-cases the first rune
func ToUpperCamel(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// ToLowerCamel lower-cases the first rune
func ToLowerCamel(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}

// ToSnakeCase converts CamelCase to snake_case, keeping acronyms together
//   - "LoginView" -> "login_view"
//   - "HTTPPanel" -> "http_panel"
func ToSnakeCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			prevLower := i > 0 && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1]))
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			prevUpper := i > 0 && unicode.IsUpper(runes[i-1])
			if i > 0 && runes[i-1] != '_' && (prevLower || (prevUpper && nextLower)) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsValidIdentifier reports whether s can be used as a Go field or type name
func IsValidIdentifier(s string) bool {
	return token.IsIdentifier(s)
}

// IsPackageName reports whether s is usable as a Go package clause
func IsPackageName(s string) bool {
	return token.IsIdentifier(s) && s != "_" && s == strings.ToLower(s)
}
