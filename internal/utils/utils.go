package utils

import "strings"

// TruncateForLog shortens the provided string to the specified limit,
// appending an ellipsis when truncated. Job descriptions can be pages long;
// debug logs carry only a preview.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
