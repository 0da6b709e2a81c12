package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple title",
			input:    "Hello World",
			expected: "hello-world",
		},
		{
			name:     "mixed case and punctuation",
			input:    "Go, Postgres & You!",
			expected: "go-postgres-you",
		},
		{
			name:     "duplicate separators collapse",
			input:    "a  --  b",
			expected: "a-b",
		},
		{
			name:     "leading and trailing junk",
			input:    "  ...Launch Day...  ",
			expected: "launch-day",
		},
		{
			name:     "digits preserved",
			input:    "Top 10 SEO Tips for 2025",
			expected: "top-10-seo-tips-for-2025",
		},
		{
			name:     "already a slug",
			input:    "already-a-slug",
			expected: "already-a-slug",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only punctuation",
			input:    "!!!",
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Slugify(tc.input))
		})
	}
}
