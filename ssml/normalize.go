package ssml

import (
	"strings"
)

// Normalize collapses every run of whitespace into a single space, trims the
// ends and escapes the characters SSML reserves. Matched inline element tags
// (see InlineElements) are kept verbatim, so tags inserted into a script
// survive generation. An ampersand that already starts an entity reference
// is kept, so Normalize is idempotent.
func Normalize(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")

	var b strings.Builder
	b.Grow(len(collapsed))
	last := 0
	for _, loc := range markupSpans(collapsed) {
		b.WriteString(Escape(collapsed[last:loc[0]]))
		b.WriteString(collapsed[loc[0]:loc[1]])
		last = loc[1]
	}
	b.WriteString(Escape(collapsed[last:]))
	return b.String()
}

// Escape replaces & < > " ' with their named entities. The ampersand is
// handled first so the entities introduced here are never escaped twice.
func Escape(text string) string {
	if !strings.ContainsAny(text, `&<>"'`) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + len(text)/8)
	for i := 0; i < len(text); i++ {
		if text[i] == '&' {
			if n := entityLen(text[i:]); n > 0 {
				b.WriteString(text[i : i+n])
				i += n - 1
				continue
			}
			b.WriteString("&amp;")
			continue
		}
		b.WriteByte(text[i])
	}

	return entityReplacer.Replace(b.String())
}

var entityReplacer = strings.NewReplacer(
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

var namedEntities = []string{"&amp;", "&lt;", "&gt;", "&quot;", "&apos;"}

// entityLen returns the length of the entity reference at the start of s, or
// zero if s does not start with one.
func entityLen(s string) int {
	for _, e := range namedEntities {
		if strings.HasPrefix(s, e) {
			return len(e)
		}
	}

	// numeric: &#123; or &#x1F;
	if len(s) < 4 || s[1] != '#' {
		return 0
	}
	i, hex := 2, false
	if s[i] == 'x' || s[i] == 'X' {
		hex = true
		i++
	}
	start := i
	for i < len(s) && isDigit(s[i], hex) {
		i++
	}
	if i == start || i >= len(s) || s[i] != ';' {
		return 0
	}
	return i + 1
}

func isDigit(c byte, hex bool) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case hex && (c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'):
		return true
	}
	return false
}
