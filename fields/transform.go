package fields

import (
	"strings"

	"github.com/skosovsky/promptsig/internal/cast"
)

// Canned transforms for common output field types. Each returns the value
// unchanged when conversion fails, leaving rejection to validators.

// AsInt converts numeric values to int64.
func AsInt(value any) any {
	if i, ok := cast.ToInt64(value); ok {
		return i
	}
	return value
}

// AsFloat converts numeric values to float64.
func AsFloat(value any) any {
	if f, ok := cast.ToFloat64(value); ok {
		return f
	}
	return value
}

// AsBool converts bool-like values ("true"/"yes"/"1" and their negatives).
func AsBool(value any) any {
	if b, ok := cast.ToBool(value); ok {
		return b
	}
	return value
}

// AsStringSlice converts []any of strings to []string.
func AsStringSlice(value any) any {
	if ss, ok := cast.ToStringSlice(value); ok {
		return ss
	}
	return value
}

// NonEmpty is a validator rejecting nil values and blank strings.
func NonEmpty(_ map[string]any, value any) bool {
	if value == nil {
		return false
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}
