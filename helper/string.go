package helper

import (
	"strings"
	"unicode"
)

// Underscore converts a CamelCase field name to snake_case,
// so validation error keys match the JSON field names.
func Underscore(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			// A boundary sits before the first upper of a new word,
			// including the last upper of an acronym run (CourseID -> course_id).
			if i > 0 && (!unicode.IsUpper(runes[i-1]) ||
				(i+1 < len(runes) && !unicode.IsUpper(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
