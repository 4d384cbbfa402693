// Package errors provides standardized error handling patterns for the
// graphhansard engine. It includes error classification, standard error
// variables, and helper functions for consistent error wrapping across the
// resolution and graph pipeline.
package errors

import (
	"errors"
	"fmt"
)

// ErrorClass represents the classification of errors for handling purposes
type ErrorClass int

const (
	// ErrorRecoverable represents per-item conditions (a malformed segment,
	// an ambiguous alias) that are handled locally and never abort a batch
	ErrorRecoverable ErrorClass = iota
	// ErrorInvalid represents errors due to invalid input or configuration
	ErrorInvalid
	// ErrorFatal represents unrecoverable errors that should stop the run
	ErrorFatal
)

// String returns the string representation of ErrorClass
func (ec ErrorClass) String() string {
	switch ec {
	case ErrorRecoverable:
		return "recoverable"
	case ErrorInvalid:
		return "invalid"
	case ErrorFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions
var (
	// Registry errors. Registry load failures are fatal: no correct
	// resolution is possible without a registry.
	ErrRegistryNotFound = errors.New("registry version not found")
	ErrInvalidRegistry  = errors.New("invalid registry source")
	ErrEntityNotFound   = errors.New("entity not found")

	// Input errors
	ErrInvalidData      = errors.New("invalid data format")
	ErrMalformedSegment = errors.New("malformed transcript segment")
	ErrEmptyInput       = errors.New("empty input")

	// Graph errors
	ErrDegenerateGraph = errors.New("graph too small for metric computation")
	ErrNoGraphs        = errors.New("no session graphs to merge")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrMissingConfig = errors.New("missing required configuration")
)

// ClassifiedError wraps an error with its classification
type ClassifiedError struct {
	Class     ErrorClass
	Err       error
	Message   string
	Component string
	Operation string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	if ce.Message != "" {
		return ce.Message
	}
	return ce.Err.Error()
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// IsFatal checks if an error is fatal and should stop the run
func IsFatal(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorFatal
	}

	return errors.Is(err, ErrRegistryNotFound) ||
		errors.Is(err, ErrInvalidRegistry) ||
		errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrMissingConfig)
}

// IsInvalid checks if an error is due to invalid input
func IsInvalid(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorInvalid
	}

	return errors.Is(err, ErrInvalidData) ||
		errors.Is(err, ErrMalformedSegment) ||
		errors.Is(err, ErrEmptyInput)
}

// IsRecoverable checks if an error can be handled at the item level
// (segment, mention, session) without aborting the surrounding batch
func IsRecoverable(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorRecoverable
	}

	return errors.Is(err, ErrMalformedSegment) ||
		errors.Is(err, ErrDegenerateGraph)
}

// Classify returns the error class for an error
func Classify(err error) ErrorClass {
	if err == nil {
		return ErrorRecoverable
	}

	if IsFatal(err) {
		return ErrorFatal
	}
	if IsInvalid(err) {
		return ErrorInvalid
	}

	// Default to recoverable: local conditions are handled at the smallest
	// unit and must not propagate as batch failures
	return ErrorRecoverable
}

// newClassified creates a new classified error
// This is an internal helper - use WrapRecoverable(), WrapFatal(), or WrapInvalid() instead.
func newClassified(class ErrorClass, err error, component, operation, message string) *ClassifiedError {
	return &ClassifiedError{
		Class:     class,
		Err:       err,
		Message:   message,
		Component: component,
		Operation: operation,
	}
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// WrapRecoverable wraps an error as recoverable with context
func WrapRecoverable(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorRecoverable, wrappedErr, component, method, wrappedErr.Error())
}

// WrapFatal wraps an error as fatal with context
func WrapFatal(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorFatal, wrappedErr, component, method, wrappedErr.Error())
}

// WrapInvalid wraps an error as invalid with context
func WrapInvalid(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorInvalid, wrappedErr, component, method, wrappedErr.Error())
}
