package ssml

import "strings"

// LongPause is appended after a sentence to force a longer pause.
const LongPause = " —"

// Annotate joins sentences into a single body, marking sentences and the
// paragraph and appending long pauses as requested. Both options can apply
// at once.
func Annotate(sentences []string, sentencePauses, longPauseDash bool) string {
	parts := make([]string, len(sentences))
	for i, s := range sentences {
		if sentencePauses {
			s = element("s", s)
		}
		if longPauseDash {
			s += LongPause
		}
		parts[i] = s
	}

	body := strings.Join(parts, " ")
	if sentencePauses {
		body = element("p", body)
	}
	return body
}

func element(name, body string) string {
	return "<" + name + ">" + body + "</" + name + ">"
}
