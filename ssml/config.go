package ssml

import (
	"fmt"
	"slices"
)

// Prosody rate bounds, in percent of the engine's default speaking rate.
const (
	MinRate     = 20
	MaxRate     = 200
	DefaultRate = 100
)

// Pitch is a named prosody pitch.
type Pitch string

// Supported pitch values.
const (
	PitchXLow   Pitch = "x-low"
	PitchLow    Pitch = "low"
	PitchMedium Pitch = "medium"
	PitchHigh   Pitch = "high"
	PitchXHigh  Pitch = "x-high"
)

// Pitches lists every pitch in ascending order.
var Pitches = []Pitch{PitchXLow, PitchLow, PitchMedium, PitchHigh, PitchXHigh}

// Valid reports whether p is a known pitch.
func (p Pitch) Valid() bool {
	return slices.Contains(Pitches, p)
}

// Volume is a named prosody volume.
type Volume string

// Supported volume values.
const (
	VolumeSilent Volume = "silent"
	VolumeXSoft  Volume = "x-soft"
	VolumeSoft   Volume = "soft"
	VolumeMedium Volume = "medium"
	VolumeLoud   Volume = "loud"
	VolumeXLoud  Volume = "x-loud"
)

// Volumes lists every volume in ascending order.
var Volumes = []Volume{VolumeSilent, VolumeXSoft, VolumeSoft, VolumeMedium, VolumeLoud, VolumeXLoud}

// Valid reports whether v is a known volume.
func (v Volume) Valid() bool {
	return slices.Contains(Volumes, v)
}

// GenerationConfig holds the resolved options for one generation request.
// It is a plain value; build a fresh one per request.
type GenerationConfig struct {
	// WrapInRoot encloses the output in a <speak> element.
	WrapInRoot bool `yaml:"speak" mapstructure:"speak"`

	// Whole-track prosody
	Rate   int    `yaml:"rate" mapstructure:"rate"`
	Pitch  Pitch  `yaml:"pitch" mapstructure:"pitch"`
	Volume Volume `yaml:"volume" mapstructure:"volume"`

	// SentencePauses marks sentences with <s> and the body with <p>.
	SentencePauses bool `yaml:"sentence_pauses" mapstructure:"sentence_pauses"`

	// LongPauseDash appends an em-dash after every sentence.
	LongPauseDash bool `yaml:"long_pause_dash" mapstructure:"long_pause_dash"`
}

// DefaultGenerationConfig returns the default options.
func DefaultGenerationConfig() GenerationConfig {
	return GenerationConfig{
		WrapInRoot: true,
		Rate:       DefaultRate,
		Pitch:      PitchMedium,
		Volume:     VolumeMedium,
	}
}

// Validate checks that every option is inside its allowed set.
func (c GenerationConfig) Validate() error {
	if c.Rate < MinRate || c.Rate > MaxRate {
		return fmt.Errorf("%w: %w: %d (want %d-%d)", ErrInvalidConfig, ErrInvalidRate, c.Rate, MinRate, MaxRate)
	}
	if !c.Pitch.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, ErrInvalidPitch, c.Pitch)
	}
	if !c.Volume.Valid() {
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, ErrInvalidVolume, c.Volume)
	}
	return nil
}
