// Package errors provides centralized error handling for onelock's CLI and
// configuration layers.
//
// This package defines sentinel errors used for programmatic error
// categorization. All error types can be checked using errors.Is().
// Lock-domain sentinels (would-block, timeout) live in the public filelock
// package so that library consumers can check them without reaching into
// internal packages.
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrValueOutOfRange indicates that a value is outside the allowed range.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrCommandFailed indicates that a wrapped command execution failed.
	ErrCommandFailed = errors.New("command failed")
)
