// Package sentence splits normalized script text into sentences.
package sentence

import (
	"regexp"
	"strings"
	"time"
)

// WordsPerMinute is the speaking rate assumed at a prosody rate of 100%.
const WordsPerMinute = 150.0

// Segmenter splits text at terminal punctuation followed by whitespace.
// Text is expected to be normalized, so every < starts an element tag. A
// mark inside a tag or inside an open element is not a boundary.
type Segmenter struct {
	boundaryRegex *regexp.Regexp
	tagRegex      *regexp.Regexp
}

// NewSegmenter creates a segmenter for the terminal marks . ! ? and :.
func NewSegmenter() *Segmenter {
	return &Segmenter{
		boundaryRegex: regexp.MustCompile(`[.!?:]\s+`),
		tagRegex:      regexp.MustCompile(`<[^<>]*>`),
	}
}

var defaultSegmenter = NewSegmenter()

// Split splits text with the default segmenter.
func Split(text string) []string {
	return defaultSegmenter.Split(text)
}

// Split returns the non-empty, trimmed sentences of text in source order.
// The punctuation mark stays with its sentence; the whitespace after it is
// dropped.
func (s *Segmenter) Split(text string) []string {
	tags := s.tagRegex.FindAllStringIndex(text, -1)

	sentences := make([]string, 0, 8)
	start, depth, t := 0, 0, 0
	for _, loc := range s.boundaryRegex.FindAllStringIndex(text, -1) {
		for t < len(tags) && tags[t][1] <= loc[0] {
			depth = max(depth+tagDepth(text[tags[t][0]:tags[t][1]]), 0)
			t++
		}
		if depth > 0 || (t < len(tags) && tags[t][0] <= loc[0]) {
			continue
		}

		// keep the mark, consume the whitespace
		sentences = appendTrimmed(sentences, text[start:loc[0]+1])
		start = loc[1]
	}
	return appendTrimmed(sentences, text[start:])
}

// tagDepth is +1 for a start tag, -1 for an end tag and 0 for an empty
// element tag.
func tagDepth(tag string) int {
	switch {
	case strings.HasPrefix(tag, "</"):
		return -1
	case strings.HasSuffix(tag, "/>"):
		return 0
	}
	return 1
}

func appendTrimmed(sentences []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

// EstimateDuration estimates how long text takes to speak at the given
// prosody rate in percent. Element tags are not counted as words.
func EstimateDuration(text string, ratePercent int) time.Duration {
	words := len(strings.Fields(defaultSegmenter.tagRegex.ReplaceAllString(text, " ")))
	if words == 0 || ratePercent <= 0 {
		return 0
	}

	wpm := WordsPerMinute * float64(ratePercent) / 100.0
	seconds := float64(words) * 60.0 / wpm
	return time.Duration(seconds * float64(time.Second))
}
