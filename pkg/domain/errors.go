package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrParse is matched (errors.Is) by every *ParseError.
var ErrParse = errors.New("parse error")

// ErrFilename is matched (errors.Is) by every *FilenameError.
var ErrFilename = errors.New("filename convention violation")

// ErrInvalidBehaviour is matched (errors.Is) by an *AggregateError of validation failures.
var ErrInvalidBehaviour = errors.New("invalid behaviour")

// ParseError reports a structural failure in a script. Line is 1-based; zero
// means the failure is not tied to a single line.
type ParseError struct {
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error at line %d: %s", e.Line, e.Msg)
	}
	return "parse error: " + e.Msg
}

func (e *ParseError) Is(target error) bool { return target == ErrParse }

func (e *ParseError) Unwrap() error { return e.Err }

// FilenameError reports a path rejected by the script naming conventions.
type FilenameError struct {
	Path string
	Rule string
}

func (e *FilenameError) Error() string {
	return fmt.Sprintf("filename %q %s", e.Path, e.Rule)
}

func (e *FilenameError) Is(target error) bool { return target == ErrFilename }

// ValidationError represents a single invariant failure.
type ValidationError struct {
	Key    string // Element path, e.g. "verbs[2].followers"
	Reason string // Human-readable reason for failure
	Value  any    // The offending value
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("%s: %s (got %q)", e.Key, e.Reason, fmt.Sprint(e.Value))
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

func (e *AggregateError) Is(target error) bool { return target == ErrInvalidBehaviour }

func (e *AggregateError) Unwrap() []error { return e.Errors }

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
