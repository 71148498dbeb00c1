package ssml

import (
	"errors"
	"fmt"
)

// Common errors for SSML generation and tag insertion.
var (
	// Generation config errors
	ErrInvalidConfig = errors.New("invalid generation configuration")
	ErrInvalidRate   = errors.New("prosody rate out of range")
	ErrInvalidPitch  = errors.New("unknown prosody pitch")
	ErrInvalidVolume = errors.New("unknown prosody volume")

	// Inline tag errors
	ErrUnknownTag        = errors.New("unknown tag kind")
	ErrMissingParam      = errors.New("required parameter missing")
	ErrConflictingParams = errors.New("conflicting parameters")
	ErrInvalidValue      = errors.New("invalid parameter value")

	// Insertion errors
	ErrInvalidSelection  = errors.New("selection out of range")
	ErrSelectionMismatch = errors.New("selection does not match buffer text")
	ErrInvalidFragment   = errors.New("invalid fragment")
)

// ConfigurationError reports invalid or incomplete parameters for an inline
// tag. Building that fragment is aborted; nothing else is affected.
type ConfigurationError struct {
	Kind  TagKind // Tag being built
	Param string  // Offending parameter, empty when the error spans several
	Err   error   // One of ErrMissingParam, ErrConflictingParams, ErrInvalidValue, ErrUnknownTag
	Value string  // Rejected value, if any
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	msg := e.Err.Error()
	if e.Kind != "" {
		msg = fmt.Sprintf("%s: %s", e.Kind, msg)
	}
	if e.Param != "" {
		msg += fmt.Sprintf(" %q", e.Param)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" (got %q)", e.Value)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// IsConfigurationError reports whether err carries a *ConfigurationError.
func IsConfigurationError(err error) bool {
	var cerr *ConfigurationError
	return errors.As(err, &cerr)
}

func missing(kind TagKind, param string) error {
	return &ConfigurationError{Kind: kind, Param: param, Err: ErrMissingParam}
}

func invalid(kind TagKind, param, value string) error {
	return &ConfigurationError{Kind: kind, Param: param, Err: ErrInvalidValue, Value: value}
}
