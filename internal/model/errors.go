package model

import (
	"errors"
	"fmt"
	"strings"
)

// Reasons carried by a ConfigurationError. Match them with errors.Is.
var (
	ErrMissingField      = errors.New("missing required field")
	ErrMalformedValue    = errors.New("malformed value")
	ErrUnreadableFile    = errors.New("unreadable file")
	ErrUnknownKey        = errors.New("unknown key")
	ErrUnsupportedFormat = errors.New("unsupported format")
)

// ConfigurationError is the only error kind produced while loading a descriptor.
// It is always fatal for the run.
type ConfigurationError struct {
	Path   Path   // descriptor file, empty when loading from memory
	Key    string // offending key in dotted form, e.g. "babel.optionsFile"
	Reason error  // one of the Err* reasons above
	Err    error  // underlying cause, may be nil
}

// NewConfigurationError builds a ConfigurationError for key.
func NewConfigurationError(key string, reason, err error) *ConfigurationError {
	return &ConfigurationError{Key: key, Reason: reason, Err: err}
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder

	b.WriteString("configuration error")

	if e.Path != "" {
		fmt.Fprintf(&b, " in %s", e.Path)
	}

	if e.Key != "" {
		fmt.Fprintf(&b, " at %q", e.Key)
	}

	if e.Reason != nil {
		b.WriteString(": ")
		b.WriteString(e.Reason.Error())
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

// Unwrap exposes both the reason and the cause to errors.Is and errors.As.
func (e *ConfigurationError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Reason != nil {
		errs = append(errs, e.Reason)
	}

	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}

// ConfigurationErrors flattens err into every ConfigurationError it carries,
// following joined and wrapped errors.
func ConfigurationErrors(err error) []*ConfigurationError {
	if err == nil {
		return nil
	}

	if cfgErr, ok := err.(*ConfigurationError); ok {
		return []*ConfigurationError{cfgErr}
	}

	var found []*ConfigurationError

	switch wrapped := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range wrapped.Unwrap() {
			found = append(found, ConfigurationErrors(inner)...)
		}
	case interface{ Unwrap() error }:
		found = append(found, ConfigurationErrors(wrapped.Unwrap())...)
	}

	return found
}
