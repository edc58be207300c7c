// SPDX-License-Identifier: MPL-2.0

package run

import (
	"context"
	"fmt"
	"strings"

	"chore-cli/pkg/types"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRuntime executes command lines with the embedded mvdan/sh POSIX
// interpreter. It needs no shell binary on the host, which keeps recipe
// execution portable to minimal environments.
type VirtualRuntime struct{}

// NewVirtualRuntime creates a virtual runtime.
func NewVirtualRuntime() *VirtualRuntime {
	return &VirtualRuntime{}
}

// Name returns the runtime name.
func (r *VirtualRuntime) Name() string { return ModeVirtual }

// Available reports whether this runtime can execute. The interpreter is
// built in, so it always can.
func (r *VirtualRuntime) Available() bool { return true }

// Validate parses the command line without executing it, surfacing shell
// syntax errors early.
func (r *VirtualRuntime) Validate(line string) error {
	if _, err := syntax.NewParser().Parse(strings.NewReader(line), "line"); err != nil {
		return fmt.Errorf("command line syntax error: %w", err)
	}
	return nil
}

// RunLine parses and interprets one command line to completion.
func (r *VirtualRuntime) RunLine(ctx context.Context, line string, lc LineContext) *Result {
	prog, err := syntax.NewParser().Parse(strings.NewReader(line), "line")
	if err != nil {
		return NewErrorResult(types.ExitFailure, fmt.Errorf("parse command line: %w", err))
	}

	runner, err := interp.New(
		interp.Dir(lc.Dir),
		interp.Env(expand.ListEnviron(lc.Env...)),
		interp.StdIO(lc.IO.Stdin, lc.IO.Stdout, lc.IO.Stderr),
	)
	if err != nil {
		return NewErrorResult(types.ExitFailure, fmt.Errorf("create shell interpreter: %w", err))
	}

	if err := runner.Run(ctx, prog); err != nil {
		if status, ok := interp.IsExitStatus(err); ok {
			return NewExitCodeResult(types.ExitCode(status))
		}
		return NewErrorResult(types.ExitFailure, err)
	}
	return NewSuccessResult()
}
