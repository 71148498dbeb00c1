// Package ssml turns plain script text into SSML markup. It normalizes and
// escapes text, marks sentences and pauses, wraps the result in prosody and
// root elements, and builds inline tag fragments that can be merged into an
// editable text buffer.
//
// Everything in this package is a pure function of its inputs.
package ssml
