package attrs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	kv := []any{"subject", "unit_a", 7, "ignored", "stage", 3, "decision"}

	tests := []struct {
		key  string
		want string
	}{
		{"subject", "unit_a"},
		{"stage", ""},
		{"decision", ""},
		{"missing", ""},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, String(kv, tt.key))
		})
	}
}

func TestLookup(t *testing.T) {
	v, ok := Lookup[int]([]any{"attempts", 3}, "attempts")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	_, ok = Lookup[int]([]any{"attempts", "3"}, "attempts")
	assert.False(t, ok)
}
