package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/tupshar/internal/render"
)

// ErrInvalid indicates a configuration value that cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// FieldError describes one invalid setting.
type FieldError struct {
	Path    string
	Value   any
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s = %v: %s", e.Path, e.Value, e.Message)
}

// ValidationError collects every invalid setting.
type ValidationError struct {
	Errors []*FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		msgs[i] = fe.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// Is reports ErrInvalid.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Validate checks every setting.
func (c *Config) Validate() error {
	var errs []*FieldError
	add := func(path string, value any, msg string) {
		errs = append(errs, &FieldError{Path: path, Value: value, Message: msg})
	}

	if _, err := render.ParseKind(c.Editor.DefaultView); err != nil {
		add("editor.default_view", c.Editor.DefaultView, "expected cuneiform, transliteration, normalisation or translation")
	}
	if !logLevels[strings.ToLower(c.Logging.Level)] {
		add("logging.level", c.Logging.Level, "expected debug, info, warn or error")
	}
	if _, err := colorful.Hex(c.UI.Accent); err != nil {
		add("ui.accent", c.UI.Accent, "expected a #rrggbb colour")
	}
	if _, err := colorful.Hex(c.UI.Selection); err != nil {
		add("ui.selection", c.UI.Selection, "expected a #rrggbb colour")
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// DefaultView returns the parsed default view.
func (c *Config) DefaultView() render.Kind {
	k, err := render.ParseKind(c.Editor.DefaultView)
	if err != nil {
		return render.Transliteration
	}
	return k
}

// AccentColor returns the accent colour.
func (c *Config) AccentColor() colorful.Color {
	return mustColor(c.UI.Accent, "#d4a017")
}

// SelectionColor returns the selection highlight colour.
func (c *Config) SelectionColor() colorful.Color {
	return mustColor(c.UI.Selection, "#3a5f8a")
}

func mustColor(hex, fallback string) colorful.Color {
	if col, err := colorful.Hex(hex); err == nil {
		return col
	}
	col, _ := colorful.Hex(fallback)
	return col
}
