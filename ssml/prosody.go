package ssml

import "fmt"

// Prosody encloses body in a whole-track prosody element.
func Prosody(body string, rate int, pitch Pitch, volume Volume) string {
	return fmt.Sprintf(`<prosody rate="%d%%" pitch="%s" volume="%s">%s</prosody>`, rate, pitch, volume, body)
}

// WrapRoot encloses markup in the <speak> root element when wrap is set.
func WrapRoot(markup string, wrap bool) string {
	if !wrap {
		return markup
	}
	return element("speak", markup)
}
