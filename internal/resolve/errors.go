// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"errors"
	"fmt"
	"strings"

	"chore-cli/pkg/chorefile"
	"chore-cli/pkg/types"
)

// ErrResolution is the sentinel error wrapped by every resolution error
// kind. Callers map it to a dedicated exit code distinct from load and
// execution failures.
var ErrResolution = errors.New("namespace resolution error")

type (
	// DuplicateRecipeError is returned when a later source redefines a
	// recipe whose earlier definition carries the no-override attribute.
	DuplicateRecipeError struct {
		Name         types.RecipeName
		FirstSource  string
		SecondSource string
	}

	// AliasTargetError is returned when an alias (transitively) references
	// a name absent from the merged namespace.
	AliasTargetError struct {
		Alias  types.RecipeName
		Target types.RecipeName
	}

	// AliasCycleError is returned when alias chains form a cycle.
	AliasCycleError struct {
		Chain []types.RecipeName
	}

	// AliasDepthError is returned when an alias chain exceeds the
	// configured depth limit without reaching a recipe.
	AliasDepthError struct {
		Alias types.RecipeName
		Limit int
	}

	// AliasCollisionError is returned when an alias shares its name with
	// a recipe in the merged namespace.
	AliasCollisionError struct {
		Name types.RecipeName
	}

	// AttributeConflictError is returned when a recipe declares two
	// mutually exclusive attributes.
	AttributeConflictError struct {
		Recipe types.RecipeName
		First  chorefile.AttributeName
		Second chorefile.AttributeName
	}

	// DuplicateDefaultError is returned when more than one recipe carries
	// the default attribute.
	DuplicateDefaultError struct {
		First  types.RecipeName
		Second types.RecipeName
	}
)

// Error implements the error interface.
func (e *DuplicateRecipeError) Error() string {
	return fmt.Sprintf("recipe %q in %s overrides a no-override definition in %s",
		e.Name, e.SecondSource, e.FirstSource)
}

// Unwrap returns ErrResolution so callers can use errors.Is for programmatic detection.
func (e *DuplicateRecipeError) Unwrap() error { return ErrResolution }

// Error implements the error interface.
func (e *AliasTargetError) Error() string {
	return fmt.Sprintf("alias %q resolves to %q, which is not defined", e.Alias, e.Target)
}

// Unwrap returns ErrResolution so callers can use errors.Is for programmatic detection.
func (e *AliasTargetError) Unwrap() error { return ErrResolution }

// Error implements the error interface.
func (e *AliasCycleError) Error() string {
	names := make([]string, len(e.Chain))
	for i, n := range e.Chain {
		names[i] = string(n)
	}
	return fmt.Sprintf("alias cycle: %s", strings.Join(names, " -> "))
}

// Unwrap returns ErrResolution so callers can use errors.Is for programmatic detection.
func (e *AliasCycleError) Unwrap() error { return ErrResolution }

// Error implements the error interface.
func (e *AliasDepthError) Error() string {
	return fmt.Sprintf("alias %q chains through more than %d aliases", e.Alias, e.Limit)
}

// Unwrap returns ErrResolution so callers can use errors.Is for programmatic detection.
func (e *AliasDepthError) Unwrap() error { return ErrResolution }

// Error implements the error interface.
func (e *AliasCollisionError) Error() string {
	return fmt.Sprintf("alias %q collides with a recipe of the same name", e.Name)
}

// Unwrap returns ErrResolution so callers can use errors.Is for programmatic detection.
func (e *AliasCollisionError) Unwrap() error { return ErrResolution }

// Error implements the error interface.
func (e *AttributeConflictError) Error() string {
	return fmt.Sprintf("recipe %q declares conflicting attributes %q and %q",
		e.Recipe, e.First, e.Second)
}

// Unwrap returns ErrResolution so callers can use errors.Is for programmatic detection.
func (e *AttributeConflictError) Unwrap() error { return ErrResolution }

// Error implements the error interface.
func (e *DuplicateDefaultError) Error() string {
	return fmt.Sprintf("recipes %q and %q are both marked default", e.First, e.Second)
}

// Unwrap returns ErrResolution so callers can use errors.Is for programmatic detection.
func (e *DuplicateDefaultError) Unwrap() error { return ErrResolution }
