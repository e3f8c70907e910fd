package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestContainsUpper(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"all lowercase", "hello", false},
		{"all uppercase", "HELLO", true},
		{"mixed case", "hEllo", true},
		{"empty string", "", false},
		{"numbers only", "12345", false},
		{"unicode lowercase", "こんにちは", false},
		{"special chars", "!@#$%", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.expected, ContainsUpper(tt.input))
		})
	}
}

func TestLowerRunesKeepsLength(t *testing.T) {
	t.Parallel()
	in := []rune("FooÄBar İ")
	out := LowerRunes(in)
	require.Len(t, out, len(in))
	require.Equal(t, []rune("foo"), out[:3])
	require.Equal(t, 'ä', out[3])
	// the input is left untouched
	require.Equal(t, 'F', in[0])
}

func TestIndentWidth(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected int
	}{
		{"", 0},
		{"foo", 0},
		{"    foo", 4},
		{"\t\tfoo", 2},
		{"   ", 3},
		{" \t x", 3},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, IndentWidth(tt.input), "IndentWidth(%q)", tt.input)
	}
}
