package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCannedTransforms(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fn   TransformFunc
		in   any
		want any
	}{
		{"AsInt from float64", AsInt, float64(5), int64(5)},
		{"AsInt from int", AsInt, 7, int64(7)},
		{"AsInt passthrough", AsInt, "five", "five"},
		{"AsFloat from int", AsFloat, 2, float64(2)},
		{"AsFloat passthrough", AsFloat, "x", "x"},
		{"AsBool from string", AsBool, "yes", true},
		{"AsBool from bool", AsBool, false, false},
		{"AsBool passthrough", AsBool, "maybe", "maybe"},
		{"AsStringSlice from []any", AsStringSlice, []any{"a", "b"}, []string{"a", "b"}},
		{"AsStringSlice passthrough", AsStringSlice, 42, 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.fn(tt.in))
		})
	}
}

func TestNonEmpty(t *testing.T) {
	t.Parallel()
	assert.True(t, NonEmpty(nil, "x"))
	assert.True(t, NonEmpty(nil, 0))
	assert.False(t, NonEmpty(nil, nil))
	assert.False(t, NonEmpty(nil, ""))
	assert.False(t, NonEmpty(nil, "   "))
}
