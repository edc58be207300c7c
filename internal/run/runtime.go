// SPDX-License-Identifier: MPL-2.0

package run

import (
	"context"
	"io"

	"chore-cli/pkg/types"
)

type (
	// IO bundles the standard streams a command line is wired to.
	IO struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// LineContext carries the per-line execution environment.
	LineContext struct {
		// Dir is the working directory for the command line.
		Dir string
		// Env is the complete environment in "KEY=value" form.
		Env []string
		// IO is where the command's streams are wired.
		IO IO
	}

	// Result is the outcome of running one command line.
	Result struct {
		ExitCode types.ExitCode
		// Err is set for infrastructure failures (no shell, parse error),
		// not for commands that merely exit non-zero.
		Err error
	}

	// Runtime executes a single opaque command line. The executor blocks on
	// each line until it terminates; cancellation of ctx is propagated to
	// the running command.
	Runtime interface {
		// Name identifies the runtime ("native" or "virtual").
		Name() string
		// Available reports whether the runtime can execute on this host.
		Available() bool
		// RunLine executes one command line to completion.
		RunLine(ctx context.Context, line string, lc LineContext) *Result
	}

	// LineValidator is implemented by runtimes that can check a command
	// line without executing it. The executor validates every shell line of
	// a recipe up front before spawning anything.
	LineValidator interface {
		Validate(line string) error
	}
)

// Mode names for runtime selection.
const (
	// ModeNative executes lines with the host shell.
	ModeNative = "native"
	// ModeVirtual executes lines with the embedded POSIX shell interpreter.
	ModeVirtual = "virtual"
)

// NewErrorResult creates a Result with the given exit code and error.
func NewErrorResult(code types.ExitCode, err error) *Result {
	return &Result{ExitCode: code, Err: err}
}

// NewSuccessResult creates a Result with exit code 0 and no error.
func NewSuccessResult() *Result {
	return &Result{}
}

// NewExitCodeResult creates a Result with the given exit code and no error.
// Use this for non-zero exits that represent normal process termination
// rather than infrastructure failures.
func NewExitCodeResult(code types.ExitCode) *Result {
	return &Result{ExitCode: code}
}

// IsFailure reports whether the result represents a failed line.
func (r *Result) IsFailure() bool {
	return r.Err != nil || !r.ExitCode.IsSuccess()
}
