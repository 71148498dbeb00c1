// Package presets reads named tag presets from a YAML file. Presets are
// read-only; the file is maintained by hand or by other tools.
package presets

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dgnsrekt/ssmltag/ssml"
	"github.com/mattn/go-runewidth"
	"github.com/mitchellh/go-homedir"
	"github.com/muesli/reflow/truncate"
	"github.com/sahilm/fuzzy"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a preset name is not in the set.
var ErrNotFound = errors.New("preset not found")

// Set maps preset names to tag strings. A value holding ssml.Placeholder once
// wraps text; any other value is inserted as is.
type Set map[string]string

// Load reads a preset file. A leading ~ in path is expanded.
func Load(path string) (Set, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("unable to expand preset path: %w", err)
	}

	b, err := os.ReadFile(expanded)
	if err != nil {
		return nil, fmt.Errorf("unable to read preset file: %w", err)
	}

	set := Set{}
	if err := yaml.Unmarshal(b, &set); err != nil {
		return nil, fmt.Errorf("unable to parse preset file %s: %w", expanded, err)
	}
	return set, nil
}

// LoadOrEmpty reads a preset file, falling back to an empty set when the file
// is missing or unreadable. Presets are optional, so this never fails.
func LoadOrEmpty(path string) Set {
	if path == "" {
		return Set{}
	}
	set, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug("No preset file", "path", path)
		} else {
			log.Warn("Could not load presets", "path", path, "error", err)
		}
		return Set{}
	}
	log.Debug("Loaded presets", "path", path, "count", len(set))
	return set
}

// Names returns the preset names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fragment returns the named preset as a fragment. Unknown names fail with
// ErrNotFound and, when possible, the closest matching names.
func (s Set) Fragment(name string) (ssml.Fragment, error) {
	value, ok := s[name]
	if !ok {
		if suggestions := s.Suggest(name); len(suggestions) > 0 {
			return ssml.Fragment{}, fmt.Errorf("%w: %q (did you mean %s?)", ErrNotFound, name, strings.Join(suggestions, ", "))
		}
		return ssml.Fragment{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	frag, err := ssml.ParseFragment(value)
	if err != nil {
		return ssml.Fragment{}, fmt.Errorf("preset %q: %w", name, err)
	}
	return frag, nil
}

// Suggest returns up to three names that fuzzily match name, best first.
func (s Set) Suggest(name string) []string {
	if name == "" {
		return nil
	}
	matches := fuzzy.Find(name, s.Names())
	suggestions := make([]string, 0, 3)
	for _, m := range matches {
		if len(suggestions) == cap(suggestions) {
			break
		}
		suggestions = append(suggestions, m.Str)
	}
	return suggestions
}

// Write prints the presets as aligned name/value columns. Values longer than
// the remaining width are truncated; width <= 0 disables truncation.
func (s Set) Write(w io.Writer, width int) error {
	names := s.Names()

	nameWidth := 0
	for _, name := range names {
		nameWidth = max(nameWidth, runewidth.StringWidth(name))
	}

	for _, name := range names {
		value := s[name]
		if width > 0 {
			if room := width - nameWidth - 2; room > 0 {
				value = truncate.StringWithTail(value, uint(room), "…") //nolint:gosec
			}
		}
		if _, err := fmt.Fprintf(w, "%s  %s\n", runewidth.FillRight(name, nameWidth), value); err != nil {
			return fmt.Errorf("unable to write presets: %w", err)
		}
	}
	return nil
}
