// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode represents a process exit status code.
	// Exit codes are in the range 0-255 on POSIX systems.
	// The zero value (0) means success.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside the
	// valid range (0-255).
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Reserved exit codes for the runner's own failure modes. A failing recipe
// mirrors the failing command's status instead, so these only apply to
// errors raised before any command runs (plus the "not found" lookup case).
const (
	// ExitSuccess is the zero exit code.
	ExitSuccess ExitCode = 0
	// ExitFailure is the generic non-zero exit code for internal errors.
	ExitFailure ExitCode = 1
	// ExitNotFound is returned when the requested recipe does not exist.
	ExitNotFound ExitCode = 2
	// ExitLoadError is returned when a chorefile cannot be read or parsed.
	ExitLoadError ExitCode = 3
	// ExitResolveError is returned when the merged namespace is invalid
	// (duplicate names, alias cycles, attribute conflicts).
	ExitResolveError ExitCode = 4
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode so callers can use errors.Is for programmatic detection.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside the valid range (0-255).
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == 0 }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
