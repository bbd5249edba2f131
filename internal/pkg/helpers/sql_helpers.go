package helpers

import "strings"

// NullIfEmpty trims s and returns nil when nothing is left, so optional
// text columns are stored as NULL rather than ''.
func NullIfEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// StringValue dereferences s, returning "" for nil.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// LikePattern wraps a search term for a substring ILIKE match, escaping the
// wildcard characters the user typed.
func LikePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(term)) + "%"
}
