// SPDX-License-Identifier: MPL-2.0

package run

import (
	"errors"
	"fmt"
	"strings"

	"chore-cli/pkg/types"
)

var (
	// ErrRecipeNotFound is the sentinel error wrapped by NotFoundError.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrInvocation is the sentinel error wrapped by invocation-level
	// failures detected before any command line runs (bad arguments,
	// recipe cycles).
	ErrInvocation = errors.New("invalid invocation")
)

type (
	// NotFoundError is returned when a requested or invoked recipe is
	// absent from the namespace.
	NotFoundError struct {
		Name types.RecipeName
	}

	// ArgumentError is returned when the supplied arguments do not fit
	// the recipe's parameters.
	ArgumentError struct {
		Recipe   types.RecipeName
		Required int
		Max      int
		Got      int
	}

	// CycleError is returned when a recipe invokes itself, directly or
	// transitively, through its body lines.
	CycleError struct {
		Stack []types.RecipeName
	}
)

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("recipe %q not found", e.Name)
}

// Unwrap returns ErrRecipeNotFound so callers can use errors.Is for programmatic detection.
func (e *NotFoundError) Unwrap() error { return ErrRecipeNotFound }

// Error implements the error interface.
func (e *ArgumentError) Error() string {
	if e.Got > e.Max {
		return fmt.Sprintf("recipe %q takes at most %d argument(s), got %d", e.Recipe, e.Max, e.Got)
	}
	return fmt.Sprintf("recipe %q requires %d argument(s), got %d", e.Recipe, e.Required, e.Got)
}

// Unwrap returns ErrInvocation so callers can use errors.Is for programmatic detection.
func (e *ArgumentError) Unwrap() error { return ErrInvocation }

// Error implements the error interface.
func (e *CycleError) Error() string {
	names := make([]string, len(e.Stack))
	for i, n := range e.Stack {
		names[i] = string(n)
	}
	return fmt.Sprintf("recipe invocation cycle: %s", strings.Join(names, " -> "))
}

// Unwrap returns ErrInvocation so callers can use errors.Is for programmatic detection.
func (e *CycleError) Unwrap() error { return ErrInvocation }
