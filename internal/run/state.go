// SPDX-License-Identifier: MPL-2.0

package run

import (
	"fmt"

	"chore-cli/pkg/types"
)

// State is the lifecycle state of one recipe invocation. Transitions are
// strictly Pending -> Running -> (Succeeded | Failed); Failed and Succeeded
// are terminal.
type State int

const (
	// StatePending is the initial state before any body line runs.
	StatePending State = iota
	// StateRunning means a body line is executing.
	StateRunning
	// StateSucceeded is terminal: every line that ran reported success.
	StateSucceeded
	// StateFailed is terminal: a body line reported failure.
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// invocation tracks one recipe invocation through the state machine.
type invocation struct {
	recipe types.RecipeName
	state  State
	// line is the source line currently running (Running) or the line
	// that failed (Failed).
	line int
	// status is the exit status in a terminal state.
	status types.ExitCode
}

func newInvocation(recipe types.RecipeName) *invocation {
	return &invocation{recipe: recipe, state: StatePending}
}

// running transitions to Running for the given source line.
func (inv *invocation) running(line int) {
	inv.state = StateRunning
	inv.line = line
}

// succeed transitions to the terminal Succeeded state.
func (inv *invocation) succeed() {
	inv.state = StateSucceeded
	inv.status = types.ExitSuccess
}

// fail transitions to the terminal Failed state, recording the failing
// line and its status.
func (inv *invocation) fail(line int, status types.ExitCode) {
	inv.state = StateFailed
	inv.line = line
	inv.status = status
}
