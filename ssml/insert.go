package ssml

import (
	"fmt"
	"strings"
)

// Selection is a byte range [Start, End) of a TextBuffer. Text, when set, is
// what the caller believes the range holds; it is checked, not searched for.
type Selection struct {
	Start int
	End   int
	Text  string
}

// Empty reports whether the selection covers no text. An inverted range is
// not empty; it is invalid.
func (s *Selection) Empty() bool {
	return s == nil || s.End == s.Start
}

// TextBuffer is the editable script text and its current selection.
type TextBuffer struct {
	Text      string
	Selection *Selection
}

// SelectText selects the first occurrence of text in buffer. This is only
// exact when text occurs once; prefer offsets from the editor when known.
func SelectText(buffer, text string) (*Selection, bool) {
	if text == "" {
		return nil, false
	}
	i := strings.Index(buffer, text)
	if i < 0 {
		return nil, false
	}
	return &Selection{Start: i, End: i + len(text), Text: text}, true
}

// ResolveInsertion merges frag into buf. A paired fragment wraps the selected
// span in place, or wraps DefaultText and is appended when nothing is
// selected. A void fragment is always appended. A selection outside the
// buffer or with Start after End fails with ErrInvalidSelection. The
// returned buffer carries no selection; text outside the edited span is
// unchanged.
func ResolveInsertion(buf TextBuffer, frag Fragment) (TextBuffer, error) {
	if frag.IsZero() {
		return buf, fmt.Errorf("%w: empty fragment", ErrInvalidFragment)
	}

	sel := buf.Selection
	if sel != nil && (sel.Start < 0 || sel.End < sel.Start || sel.End > len(buf.Text)) {
		return buf, fmt.Errorf("%w: [%d, %d) in buffer of %d bytes", ErrInvalidSelection, sel.Start, sel.End, len(buf.Text))
	}

	if !frag.IsPaired() || sel.Empty() {
		return TextBuffer{Text: buf.Text + frag.Wrap(DefaultText)}, nil
	}

	selected := buf.Text[sel.Start:sel.End]
	if sel.Text != "" && sel.Text != selected {
		return buf, fmt.Errorf("%w: want %q, buffer holds %q", ErrSelectionMismatch, sel.Text, selected)
	}

	return TextBuffer{Text: buf.Text[:sel.Start] + frag.Wrap(selected) + buf.Text[sel.End:]}, nil
}
