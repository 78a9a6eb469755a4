// internal/registry/values.go
//
// Loose readers for content values.  Content maps arrive from defaults
// ([]string), from JSON ([]any), or from BSON, so every reader accepts the
// shapes it can make sense of and falls back to the zero value otherwise.
package registry

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// String returns content[key] as a string, or "" when missing.
func String(content map[string]any, key string) string {
	switch v := content[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case bool, int, int32, int64, float32, float64:
		return fmt.Sprint(v)
	default:
		return ""
	}
}

// StringList returns content[key] as a string slice.  A bare string is split on
// ListDelimiter so legacy rows that stored joined text still read back.
func StringList(content map[string]any, key string) []string {
	switch v := content[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return SplitList(v)
	default:
		return nil
	}
}

// Len returns the element count of a slice value, or 0.
func Len(content map[string]any, key string) int {
	switch v := content[key].(type) {
	case []any:
		return len(v)
	case []string:
		return len(v)
	case []map[string]any:
		return len(v)
	default:
		return 0
	}
}

// SplitList is the inverse of JoinList.  Empty input yields an empty slice,
// never [""].
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	parts := strings.Split(s, ListDelimiter)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// JoinList formats a list value for display.
func JoinList(items []string) string { return strings.Join(items, ListDelimiter) }

// Truncate shortens s to max runes, appending "..." when cut.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return strings.TrimRight(string(r[:max]), " ") + "..."
}

// Or returns s, or placeholder when s is blank.
func Or(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
