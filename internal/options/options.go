// Package options resolves generation options from configuration files,
// flags and the environment into a single ssml.GenerationConfig.
package options

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/dgnsrekt/ssmltag/ssml"
	"github.com/spf13/viper"
)

// Configuration keys.
const (
	KeySpeak          = "ssml.speak"
	KeyRate           = "ssml.rate"
	KeyPitch          = "ssml.pitch"
	KeyVolume         = "ssml.volume"
	KeySentencePauses = "ssml.sentence_pauses"
	KeyLongPauseDash  = "ssml.long_pause_dash"
	KeyPresets        = "presets"
)

// Env holds settings read from the process environment.
type Env struct {
	ConfigHome  string `env:"SSMLTAG_CONFIG_HOME"`
	XDGConfig   string `env:"XDG_CONFIG_HOME"`
	PresetsFile string `env:"SSMLTAG_PRESETS"`
	Debug       bool   `env:"SSMLTAG_DEBUG"`
}

// ParseEnv reads Env from the environment.
func ParseEnv() (Env, error) {
	e, err := env.ParseAs[Env]()
	if err != nil {
		return Env{}, fmt.Errorf("error parsing environment: %w", err)
	}
	return e, nil
}

// SetDefaults registers the default for every key on v.
func SetDefaults(v *viper.Viper) {
	d := ssml.DefaultGenerationConfig()
	v.SetDefault(KeySpeak, d.WrapInRoot)
	v.SetDefault(KeyRate, d.Rate)
	v.SetDefault(KeyPitch, string(d.Pitch))
	v.SetDefault(KeyVolume, string(d.Volume))
	v.SetDefault(KeySentencePauses, d.SentencePauses)
	v.SetDefault(KeyLongPauseDash, d.LongPauseDash)
	v.SetDefault(KeyPresets, "")
}

// GenerationConfig builds and validates a config from the current values in
// v. Flags bound to v take precedence over the config file.
func GenerationConfig(v *viper.Viper) (ssml.GenerationConfig, error) {
	cfg := ssml.GenerationConfig{
		WrapInRoot:     v.GetBool(KeySpeak),
		Rate:           v.GetInt(KeyRate),
		Pitch:          ssml.Pitch(v.GetString(KeyPitch)),
		Volume:         ssml.Volume(v.GetString(KeyVolume)),
		SentencePauses: v.GetBool(KeySentencePauses),
		LongPauseDash:  v.GetBool(KeyLongPauseDash),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// PresetsPath returns the preset file to use. The environment overrides the
// config file.
func PresetsPath(v *viper.Viper, e Env) string {
	if e.PresetsFile != "" {
		return e.PresetsFile
	}
	return v.GetString(KeyPresets)
}
