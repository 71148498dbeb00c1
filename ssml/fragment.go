package ssml

import (
	"fmt"
	"strings"
)

const (
	// Placeholder marks where wrapped text goes in a paired fragment.
	Placeholder = "{text}"

	// DefaultText fills a paired fragment inserted without a selection.
	DefaultText = "your text here"
)

// Fragment is a markup template. A paired fragment holds Placeholder exactly
// once; a void fragment holds none and is inserted as is.
type Fragment struct {
	template string
	paired   bool
}

// ParseFragment wraps an opaque template, such as a preset value. A template
// with one placeholder is paired, one without is void.
func ParseFragment(template string) (Fragment, error) {
	switch strings.Count(template, Placeholder) {
	case 0:
		return Fragment{template: template}, nil
	case 1:
		return Fragment{template: template, paired: true}, nil
	default:
		return Fragment{}, fmt.Errorf("%w: placeholder %s appears more than once", ErrInvalidFragment, Placeholder)
	}
}

// IsPaired reports whether the fragment wraps text.
func (f Fragment) IsPaired() bool {
	return f.paired
}

// IsZero reports whether the fragment is empty.
func (f Fragment) IsZero() bool {
	return f.template == ""
}

// Wrap substitutes text for the placeholder. Void fragments ignore text.
func (f Fragment) Wrap(text string) string {
	if !f.paired {
		return f.template
	}
	return strings.Replace(f.template, Placeholder, text, 1)
}

// String returns the raw template.
func (f Fragment) String() string {
	return f.template
}

type attribute struct {
	name  string
	value string
}

func pairedFragment(name string, attrs []attribute) Fragment {
	return Fragment{
		template: openTag(name, attrs) + Placeholder + "</" + name + ">",
		paired:   true,
	}
}

func voidFragment(name string, attrs []attribute) Fragment {
	open := openTag(name, attrs)
	return Fragment{template: open[:len(open)-1] + "/>"}
}

func openTag(name string, attrs []attribute) string {
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(name)
	for _, a := range attrs {
		fmt.Fprintf(&b, ` %s="%s"`, a.name, Escape(a.value))
	}
	b.WriteString(">")
	return b.String()
}
