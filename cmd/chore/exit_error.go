// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"chore-cli/pkg/types"
)

// ExitError carries a process exit code out of a RunE handler so Execute
// decides the status after cobra unwinds, instead of os.Exit cutting off
// deferred cleanup mid-command. Code follows the documented mapping: a
// failing recipe mirrors its command's status, 2 unknown recipe, 3 load
// failure, 4 resolution failure.
type ExitError struct {
	Code types.ExitCode
	// Err is the classified failure. It is nil when a recipe's command
	// failed and the executor already reported (or deliberately
	// suppressed) the summary; only the status needs propagating then.
	Err error
}

// Error returns the underlying failure's message, or a plain status line
// for the nil-Err recipe-failure case.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap exposes the classified failure to errors.Is/As.
func (e *ExitError) Unwrap() error {
	return e.Err
}
