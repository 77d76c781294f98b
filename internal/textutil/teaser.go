package textutil

import (
	"strings"
	"unicode"
)

const (
	teaserMin = 200
	teaserMax = 350
)

// Teaser derives a bounded preview from full post text. It prefers cutting at
// a sentence end, then at a word boundary, then hard-cuts. Indexes are code
// points, not bytes, so multi-byte text truncates consistently.
//
// Texts shorter than 200 runes are returned unchanged. Otherwise the text is
// scanned from rune 199 up to rune 350, remembering the last whitespace seen
// and stopping at the first '.'. A found dot is included in the preview.
func Teaser(text string) string {
	runes := []rune(text)
	if len(runes) < teaserMin {
		return text
	}

	index := teaserMin - 1
	spaceIndex := 0
	foundDot := false
	for index < len(runes) && index < teaserMax {
		c := runes[index]
		if unicode.IsSpace(c) {
			spaceIndex = index
		}
		if c == '.' {
			foundDot = true
			break
		}
		index++
	}

	if foundDot {
		return string(runes[:index+1])
	}
	if spaceIndex > 0 {
		return strings.TrimRightFunc(string(runes[:spaceIndex]), unicode.IsSpace)
	}
	if len(runes) < teaserMax {
		return text
	}
	return strings.TrimRightFunc(string(runes[:teaserMax]), unicode.IsSpace)
}
