// SPDX-License-Identifier: MPL-2.0

package run

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"chore-cli/pkg/types"
)

// ErrShellNotFound is returned when no usable shell exists on the host.
var ErrShellNotFound = errors.New("no shell found")

// NativeRuntime executes command lines with the host shell.
type NativeRuntime struct {
	// Shell overrides shell discovery ($SHELL, then "sh" on PATH).
	Shell string
}

// NewNativeRuntime creates a native runtime with default shell discovery.
func NewNativeRuntime() *NativeRuntime {
	return &NativeRuntime{}
}

// Name returns the runtime name.
func (r *NativeRuntime) Name() string { return ModeNative }

// Available reports whether a shell could be located.
func (r *NativeRuntime) Available() bool {
	_, err := r.shell()
	return err == nil
}

// RunLine executes one command line via the shell, inheriting the streams
// from the line context. Cancelling ctx kills the child process.
func (r *NativeRuntime) RunLine(ctx context.Context, line string, lc LineContext) *Result {
	shell, err := r.shell()
	if err != nil {
		return NewErrorResult(types.ExitFailure, err)
	}

	cmd := exec.CommandContext(ctx, shell, shellArgs(line)...)
	cmd.Dir = lc.Dir
	cmd.Env = lc.Env
	cmd.Stdin = lc.IO.Stdin
	cmd.Stdout = lc.IO.Stdout
	cmd.Stderr = lc.IO.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := types.ExitCode(exitErr.ExitCode())
			if code < 0 {
				// The process was killed by a signal (ExitCode reports -1),
				// typically our own context cancellation.
				if ctxErr := ctx.Err(); ctxErr != nil {
					return NewErrorResult(types.ExitFailure, ctxErr)
				}
				return NewErrorResult(types.ExitFailure, err)
			}
			return NewExitCodeResult(code)
		}
		return NewErrorResult(types.ExitFailure, fmt.Errorf("run command line: %w", err))
	}
	return NewSuccessResult()
}

// shell resolves the shell binary: explicit override, then $SHELL, then
// "sh" on PATH (cmd.exe on Windows).
func (r *NativeRuntime) shell() (string, error) {
	if r.Shell != "" {
		if path, err := exec.LookPath(r.Shell); err == nil {
			return path, nil
		}
		return "", fmt.Errorf("%w: %q is not executable", ErrShellNotFound, r.Shell)
	}
	if runtime.GOOS == "windows" {
		if path, err := exec.LookPath("cmd"); err == nil {
			return path, nil
		}
		return "", fmt.Errorf("%w: cmd.exe is not on PATH", ErrShellNotFound)
	}
	if env := os.Getenv("SHELL"); env != "" {
		if path, err := exec.LookPath(env); err == nil {
			return path, nil
		}
	}
	if path, err := exec.LookPath("sh"); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("%w: neither $SHELL nor sh is usable", ErrShellNotFound)
}

// shellArgs returns the argument list handing one command line to the shell.
func shellArgs(line string) []string {
	if runtime.GOOS == "windows" {
		return []string{"/C", line}
	}
	return []string{"-c", line}
}
