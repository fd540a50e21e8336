// Package testutil provides testing utilities for onelock.
//
// This package contains mock errors and test helpers used across test files.
// It should only be imported by test files (*_test.go).
package testutil

import "errors"

// Mock errors for testing purposes.
// These errors are used to simulate various failure scenarios in tests.
var (
	// ErrMockBackend indicates a simulated backend I/O failure (used in tests).
	ErrMockBackend = errors.New("backend failure")

	// ErrMockPermission indicates a simulated permission failure (used in tests).
	ErrMockPermission = errors.New("permission denied")
)
