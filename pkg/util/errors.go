// Package util provides logging helpers and the driver's error taxonomy.
package util

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every typed error below unwraps to exactly one of these.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrReplaceConfig = errors.New("replace config failed")
	ErrMergeConfig   = errors.New("merge config failed")
	ErrCommit        = errors.New("commit failed")
	ErrNotSupported  = errors.New("not supported")
	ErrConnection    = errors.New("connection failed")
	ErrLookup        = errors.New("lookup failed")
)

// InvalidInputError reports a caller-supplied argument the driver cannot act on.
type InvalidInputError struct {
	Operation string
	Reason    string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input for %s: %s", e.Operation, e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// NewInvalidInputError creates an invalid input error
func NewInvalidInputError(operation, reason string) *InvalidInputError {
	return &InvalidInputError{Operation: operation, Reason: reason}
}

// ConfigErrorKind identifies which lifecycle step the device rejected.
type ConfigErrorKind int

const (
	KindReplace ConfigErrorKind = iota
	KindMerge
	KindCommit
)

func (k ConfigErrorKind) sentinel() error {
	switch k {
	case KindMerge:
		return ErrMergeConfig
	case KindCommit:
		return ErrCommit
	default:
		return ErrReplaceConfig
	}
}

// ConfigError is a device-side rejection of a load, merge, commit or rollback.
// Output holds the raw device output for diagnosis.
type ConfigError struct {
	Kind    ConfigErrorKind
	Message string
	Output  string
	Cause   error
}

func (e *ConfigError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *ConfigError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind.sentinel(), e.Cause}
	}
	return []error{e.Kind.sentinel()}
}

// NewReplaceConfigError creates a replace failure carrying device output
func NewReplaceConfigError(message, output string) *ConfigError {
	return &ConfigError{Kind: KindReplace, Message: message, Output: output}
}

// NewMergeConfigError creates a merge failure carrying device output
func NewMergeConfigError(message, output string) *ConfigError {
	return &ConfigError{Kind: KindMerge, Message: message, Output: output}
}

// NewCommitError creates a commit failure carrying device output
func NewCommitError(message, output string, cause error) *ConfigError {
	return &ConfigError{Kind: KindCommit, Message: message, Output: output, Cause: cause}
}

// NotSupportedError reports a feature the firmware cannot provide.
type NotSupportedError struct {
	Feature string
}

func (e *NotSupportedError) Error() string {
	return e.Feature + " is not supported on this platform"
}

func (e *NotSupportedError) Unwrap() error {
	return ErrNotSupported
}

// NewNotSupportedError creates a not-supported error
func NewNotSupportedError(feature string) *NotSupportedError {
	return &NotSupportedError{Feature: feature}
}

// ConnectionError is a transport failure. It is fatal to the session.
type ConnectionError struct {
	Device    string
	Operation string
	Err       error
}

func (e *ConnectionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("connection to %s failed during %s", e.Device, e.Operation)
	}
	return fmt.Sprintf("connection to %s failed during %s: %v", e.Device, e.Operation, e.Err)
}

func (e *ConnectionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConnection}
	}
	return []error{ErrConnection, e.Err}
}

// NewConnectionError creates a connection error
func NewConnectionError(device, operation string, err error) *ConnectionError {
	return &ConnectionError{Device: device, Operation: operation, Err: err}
}

// LookupError reports a field or cross-reference a parser expected but could not find.
type LookupError struct {
	Source string
	Key    string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %q not found", e.Source, e.Key)
}

func (e *LookupError) Unwrap() error {
	return ErrLookup
}

// NewLookupError creates a lookup error
func NewLookupError(source, key string) *LookupError {
	return &LookupError{Source: source, Key: key}
}
