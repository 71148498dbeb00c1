// Package session holds the editing state around the stateless ssml core:
// the script buffer, the current selection and the last generated output.
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/ssmltag/internal/presets"
	"github.com/dgnsrekt/ssmltag/ssml"
	"github.com/dgnsrekt/ssmltag/ssml/sentence"
)

// Stats describes the last generated output.
type Stats struct {
	Sentences int
	Bytes     int
	Duration  time.Duration // estimated speaking time
}

// Session owns one text buffer. It is not safe for concurrent use.
type Session struct {
	buffer  ssml.TextBuffer
	output  string
	stats   Stats
	presets presets.Set
}

// New creates a session around text.
func New(text string, set presets.Set) *Session {
	if set == nil {
		set = presets.Set{}
	}
	return &Session{
		buffer:  ssml.TextBuffer{Text: text},
		presets: set,
	}
}

// Text returns the current buffer contents.
func (s *Session) Text() string {
	return s.buffer.Text
}

// SetText replaces the buffer and clears the selection.
func (s *Session) SetText(text string) {
	s.buffer = ssml.TextBuffer{Text: text}
}

// Output returns the last generated markup.
func (s *Session) Output() string {
	return s.output
}

// Stats returns statistics for the last generated markup.
func (s *Session) Stats() Stats {
	return s.stats
}

// Presets returns the presets available to InsertPreset.
func (s *Session) Presets() presets.Set {
	return s.presets
}

// Selection returns the current selection, or nil.
func (s *Session) Selection() *ssml.Selection {
	return s.buffer.Selection
}

// Select selects the byte range [start, end) of the buffer.
func (s *Session) Select(start, end int) error {
	if start < 0 || end < start || end > len(s.buffer.Text) {
		return fmt.Errorf("%w: [%d, %d) in buffer of %d bytes", ssml.ErrInvalidSelection, start, end, len(s.buffer.Text))
	}
	s.buffer.Selection = &ssml.Selection{
		Start: start,
		End:   end,
		Text:  s.buffer.Text[start:end],
	}
	return nil
}

// SelectText selects the first occurrence of text and reports whether it was
// found. The selection is ambiguous when text occurs more than once.
func (s *Session) SelectText(text string) bool {
	sel, ok := ssml.SelectText(s.buffer.Text, text)
	if !ok {
		return false
	}
	s.buffer.Selection = sel
	return true
}

// ClearSelection drops the current selection.
func (s *Session) ClearSelection() {
	s.buffer.Selection = nil
}

// Generate renders the buffer with cfg and keeps the result as the session
// output. An invalid cfg leaves the previous output in place.
func (s *Session) Generate(cfg ssml.GenerationConfig) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	sentences := sentence.Split(ssml.Normalize(s.buffer.Text))
	s.output = ssml.Compose(sentences, cfg)
	s.stats = Stats{
		Sentences: len(sentences),
		Bytes:     len(s.output),
		Duration:  sentence.EstimateDuration(strings.Join(sentences, " "), cfg.Rate),
	}

	log.Debug("Generated SSML",
		"sentences", s.stats.Sentences,
		"bytes", s.stats.Bytes,
		"speak", cfg.WrapInRoot,
		"rate", cfg.Rate,
	)
	return s.output, nil
}

// InsertTag builds the fragment for spec and merges it at the selection. A
// configuration error leaves the buffer and output untouched.
func (s *Session) InsertTag(spec ssml.TagSpec) error {
	frag, err := ssml.BuildFragment(spec)
	if err != nil {
		log.Debug("Tag rejected", "error", err)
		return err
	}
	return s.insert(frag)
}

// InsertPreset merges the named preset at the selection.
func (s *Session) InsertPreset(name string) error {
	frag, err := s.presets.Fragment(name)
	if err != nil {
		return err
	}
	return s.insert(frag)
}

func (s *Session) insert(frag ssml.Fragment) error {
	buf, err := ssml.ResolveInsertion(s.buffer, frag)
	if err != nil {
		return err
	}

	log.Debug("Inserted fragment",
		"fragment", frag.String(),
		"selection", s.buffer.Selection != nil,
		"bytes", len(buf.Text)-len(s.buffer.Text),
	)
	s.buffer = buf
	return nil
}
