// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session holds the selection state of an interactive front end:
// which file is loaded and which output format is chosen. A successful
// conversion clears the selection; a failed one keeps it so the user can
// retry or pick another format.
package session

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/pdiddy/heicconv/internal/convert"
	"github.com/pdiddy/heicconv/pkg/types"
)

// State is the lifecycle state of the loaded-file slot.
type State int

const (
	// Empty means no file is selected and conversion is disabled.
	Empty State = iota
	// Loaded means a validated file is selected and conversion is enabled.
	Loaded
)

func (s State) String() string {
	if s == Loaded {
		return "loaded"
	}
	return "empty"
}

// ErrNoFileSelected is returned by Convert when the session is Empty.
var ErrNoFileSelected = errors.New("no file selected")

const noFileStatus = "No file selected"

// Session tracks the currently selected file and output format.
type Session struct {
	conv    convert.Converter
	current string
	format  types.OutputKind
}

// New creates an Empty session that converts through conv. The output
// format starts as types.DefaultOutputKind.
func New(conv convert.Converter) *Session {
	return &Session{conv: conv, format: types.DefaultOutputKind}
}

// State reports whether a file is loaded.
func (s *Session) State() State {
	if s.current == "" {
		return Empty
	}
	return Loaded
}

// CanConvert reports whether Convert would call the converter.
func (s *Session) CanConvert() bool { return s.State() == Loaded }

// Current returns the selected path, or "" when Empty.
func (s *Session) Current() string { return s.current }

// Format returns the chosen output kind.
func (s *Session) Format() types.OutputKind { return s.format }

// SetFormat chooses the output kind used by the next Convert.
func (s *Session) SetFormat(kind types.OutputKind) { s.format = kind }

// Status is the one-line description of the selection shown to the user.
func (s *Session) Status() string {
	if s.current == "" {
		return noFileStatus
	}
	return "Selected: " + filepath.Base(s.current)
}

// Load validates path and selects it. On a validation error the previous
// selection is left untouched.
func (s *Session) Load(path string) error {
	if err := convert.ValidateInput(path); err != nil {
		return err
	}
	s.current = path
	return nil
}

// Drop loads a path delivered by a drag-and-drop payload. Some platforms
// wrap paths containing spaces in braces, which are removed first.
func (s *Session) Drop(payload string) error {
	return s.Load(strings.Trim(payload, "{}"))
}

// Convert converts the selected file to the chosen format. On success the
// session returns to Empty; on failure the file stays selected.
func (s *Session) Convert() (types.ConversionResult, error) {
	if s.current == "" {
		return types.ConversionResult{}, ErrNoFileSelected
	}
	res, err := s.conv.Convert(s.current, s.format)
	if err != nil {
		return types.ConversionResult{}, err
	}
	s.Reset()
	return res, nil
}

// Reset clears the selection.
func (s *Session) Reset() { s.current = "" }
