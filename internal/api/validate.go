package api

import (
	"strings"
	"unicode/utf8"
)

// Query length bounds, applied to trimmed input before any network call.
const (
	MinQueryLen = 3
	MaxQueryLen = 1000
)

// ValidateQuery checks query text locally. It returns an empty string
// when the trimmed text is submittable, otherwise the reason it is not.
func ValidateQuery(text string) string {
	trimmed := strings.TrimSpace(text)
	switch {
	case trimmed == "":
		return "Query cannot be empty"
	case utf8.RuneCountInString(trimmed) < MinQueryLen:
		return "Query is too short (min 3 characters)"
	case utf8.RuneCountInString(trimmed) > MaxQueryLen:
		return "Query is too long (max 1000 characters)"
	}
	return ""
}
