package config

import (
	"fmt"
	"strings"
)

// LocationError reports that the platform configuration directory could
// not be determined.
type LocationError struct {
	Reason string
}

func (e *LocationError) Error() string {
	return "cannot determine configuration directory: " + e.Reason
}

// ReadError reports a missing or unreadable configuration file.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading config file %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ParseError reports a syntactically malformed configuration document.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing config file: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Violation is a single semantic rule breach found during validation.
// Entity and Field identify the offending item; Message is the complete
// human-readable description.
type Violation struct {
	Entity  string // e.g. a backup path, a profile name, or "global"
	Field   string // offending field within the entity
	Message string // complete human-readable description, one line
}

// ValidationError aggregates every violation found in one validation
// pass. Its message is the newline-joined list of per-violation messages,
// one line each, in discovery order.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, "\n")
}
