// internal/nlu/normalize/normalize_test.go
package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "trims and lowercases",
			input:    "  Where IS the Library?  ",
			expected: "where is the library?",
		},
		{
			name:     "empty input yields empty output",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   \t\n  ",
			expected: "",
		},
		{
			name:     "compatibility characters are canonicalized",
			input:    "ﬁnd Butler Court", // U+FB01 LATIN SMALL LIGATURE FI
			expected: "find butler court",
		},
		{
			name:     "fullwidth digits fold to ascii",
			input:    "room ２０４",
			expected: "room 204",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Clean(tt.input))
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"  Tell me about Butler Court accommodation and prices ",
		"Wie komme ich zur Bücherei?",
		"ﬁnancial support オプション",
	}

	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once), "normalization must be idempotent for %q", in)
	}
}
