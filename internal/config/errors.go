package config

import (
	"errors"
	"fmt"
)

// ErrConfigParse marks every configuration validation failure.
var ErrConfigParse = errors.New("config parse error")

// ParseError describes why a configuration was rejected. Field is a dotted
// path such as rules.node-fs; File is set when the config came from disk.
type ParseError struct {
	File   string
	Field  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	msg := e.Reason
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	return fmt.Sprintf("%s: %s", ErrConfigParse, msg)
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrConfigParse, e.Err}
	}
	return []error{ErrConfigParse}
}

func fieldError(field, format string, args ...any) *ParseError {
	return &ParseError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
