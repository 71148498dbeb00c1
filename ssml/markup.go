package ssml

import (
	"regexp"
	"slices"
)

// InlineElements are the elements a script may carry through generation.
// Everything else, including the structural elements Generate adds itself,
// is escaped as text.
var InlineElements = []string{
	string(KindEmphasis), string(KindSayAs), string(KindSub), string(KindLang),
	string(KindVoice), string(KindPhoneme), string(KindBreak), "prosody",
}

// markupRegex matches one start, end or empty-element tag with quoted
// attributes. Group 1 is the end-tag slash, 2 the name, 3 the attributes, 4
// the empty-element slash.
var markupRegex = regexp.MustCompile(`<(/?)([A-Za-z][\w:.-]*)((?:\s+[\w:.-]+\s*=\s*(?:"[^"<>]*"|'[^'<>]*'))*)\s*(/?)>`)

// markupSpans returns the byte ranges of the inline element tags in text that
// are kept as markup. Start and end tags are kept only in matched pairs, so
// stray or unclosed tags are left to be escaped.
func markupSpans(text string) [][]int {
	type open struct {
		name string
		loc  []int
	}

	var (
		kept  [][]int
		stack []open
	)
	for _, m := range markupRegex.FindAllStringSubmatchIndex(text, -1) {
		closing := m[3] > m[2]
		empty := m[9] > m[8]
		name := text[m[4]:m[5]]
		hasAttrs := m[7] > m[6]

		switch {
		case !slices.Contains(InlineElements, name):
		case closing && (empty || hasAttrs):
		case empty:
			kept = append(kept, m[:2])
		case closing:
			for i := len(stack) - 1; i >= 0; i-- {
				if stack[i].name == name {
					kept = append(kept, stack[i].loc, m[:2])
					stack = stack[:i]
					break
				}
			}
		default:
			stack = append(stack, open{name: name, loc: m[:2]})
		}
	}

	slices.SortFunc(kept, func(a, b []int) int { return a[0] - b[0] })
	return kept
}
