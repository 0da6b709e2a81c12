package postservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const calloutFragment = `<div class="rounded-xl bg-blue-500/10 p-6"><div class="flex"><div class="ml-3"><h4 class="font-bold">Pro tip</h4><div class="text-dark-300 text-sm">Always index your slug column</div></div></div></div>`

const secondFragment = `<div class="rounded-xl bg-red-500/10 p-6"><div class="flex"><div class="ml-3"><h4 class="font-bold">Warning</h4><div class="text-dark-300 text-sm">Backups are not optional</div></div></div></div>`

func TestExtractContentBlocks(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected ContentBlocks
	}{
		{
			name:  "single callout",
			input: calloutFragment,
			expected: ContentBlocks{
				{Type: "blue", Title: "Pro tip", Content: "Always index your slug column"},
			},
		},
		{
			name:  "multiple callouts keep order",
			input: calloutFragment + "\n" + secondFragment,
			expected: ContentBlocks{
				{Type: "blue", Title: "Pro tip", Content: "Always index your slug column"},
				{Type: "red", Title: "Warning", Content: "Backups are not optional"},
			},
		},
		{
			name:  "non-matching input degrades to fallback block",
			input: "hello",
			expected: ContentBlocks{
				{Type: "emerald", Title: "", Content: "", HTML: "hello"},
			},
		},
		{
			name:     "blank input yields no blocks",
			input:    "   \n\t",
			expected: nil,
		},
		{
			name:     "empty input yields no blocks",
			input:    "",
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			blocks := extractContentBlocks(tc.input)

			assert.Equal(t, len(tc.expected), len(blocks))
			for i := range blocks {
				assert.Equal(t, tc.expected[i].Type, blocks[i].Type)
				assert.Equal(t, tc.expected[i].Title, blocks[i].Title)
				assert.Equal(t, tc.expected[i].Content, blocks[i].Content)
				if tc.expected[i].HTML != "" {
					assert.Equal(t, tc.expected[i].HTML, blocks[i].HTML)
				} else {
					assert.NotEmpty(t, blocks[i].HTML)
				}
			}
		})
	}
}

func TestNormalizeTagNames(t *testing.T) {
	testCases := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "trims and drops blanks",
			input:    []string{" go ", "", "  ", "postgres"},
			expected: []string{"go", "postgres"},
		},
		{
			name:     "deduplicates by derived slug",
			input:    []string{"A", "a", "A "},
			expected: []string{"A"},
		},
		{
			name:     "keeps first spelling per slug",
			input:    []string{"Web Design", "web-design", "SEO"},
			expected: []string{"Web Design", "SEO"},
		},
		{
			name:     "empty input",
			input:    nil,
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, normalizeTagNames(tc.input))
		})
	}
}
