package postservice

import (
	"regexp"
	"strings"
)

// The admin editor used to submit callout blocks as rendered HTML: a wrapper
// div carrying a bg-<variant>-500/10 utility class, an h4 heading and a
// text-dark-300 body div. The extraction below mirrors that markup exactly.
// It is heuristic and lossy; the raw fragment is kept alongside the extracted
// fields so nothing is thrown away.
var (
	calloutRX = regexp.MustCompile(`(?s)<div[^>]*class="[^"]*bg-(\w+)-500/10[^"]*"[^>]*>.*?</div>\s*</div>\s*</div>`)
	headingRX = regexp.MustCompile(`<h4[^>]*>([^<]*)</h4>`)
	bodyRX    = regexp.MustCompile(`<div[^>]*class="[^"]*text-dark-300[^"]*"[^>]*>([^<]*)</div>`)
)

const fallbackVariant = "emerald"

// extractContentBlocks parses a legacy HTML string into structured blocks.
// Fragments that match the callout pattern yield one block each; a non-blank
// input with no matches degrades to a single fallback block holding the raw
// input. Blank input yields no blocks.
func extractContentBlocks(html string) ContentBlocks {
	var blocks ContentBlocks

	for _, match := range calloutRX.FindAllStringSubmatch(html, -1) {
		fragment := match[0]
		variant := match[1]

		heading := headingRX.FindStringSubmatch(fragment)
		body := bodyRX.FindStringSubmatch(fragment)
		if heading == nil || body == nil {
			continue
		}

		blocks = append(blocks, ContentBlock{
			Type:    variant,
			Title:   strings.TrimSpace(heading[1]),
			Content: strings.TrimSpace(body[1]),
			HTML:    fragment,
		})
	}

	if len(blocks) == 0 && strings.TrimSpace(html) != "" {
		blocks = append(blocks, ContentBlock{
			Type:    fallbackVariant,
			Title:   "",
			Content: "",
			HTML:    html,
		})
	}

	return blocks
}
