// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRecipeName is the sentinel error wrapped by InvalidRecipeNameError.
var ErrInvalidRecipeName = errors.New("invalid recipe name")

type (
	// RecipeName identifies a recipe (or alias) in a namespace.
	// Names are case-sensitive and unique after merging.
	RecipeName string

	// InvalidRecipeNameError is returned when a RecipeName is empty or
	// contains characters reserved by the chorefile syntax.
	InvalidRecipeNameError struct {
		Value  RecipeName
		Reason string
	}
)

// reservedNameChars are characters that carry meaning in the chorefile
// syntax and therefore cannot appear in a name.
const reservedNameChars = ":[]{}#@>\"'"

// Error implements the error interface.
func (e *InvalidRecipeNameError) Error() string {
	return fmt.Sprintf("invalid recipe name %q: %s", string(e.Value), e.Reason)
}

// Unwrap returns ErrInvalidRecipeName so callers can use errors.Is for programmatic detection.
func (e *InvalidRecipeNameError) Unwrap() error { return ErrInvalidRecipeName }

// Validate returns an error if the RecipeName is empty, contains whitespace,
// or contains a reserved syntax character.
func (n RecipeName) Validate() error {
	if n == "" {
		return &InvalidRecipeNameError{Value: n, Reason: "name must not be empty"}
	}
	if strings.ContainsFunc(string(n), func(r rune) bool { return r == ' ' || r == '\t' }) {
		return &InvalidRecipeNameError{Value: n, Reason: "name must not contain whitespace"}
	}
	if i := strings.IndexAny(string(n), reservedNameChars); i >= 0 {
		return &InvalidRecipeNameError{
			Value:  n,
			Reason: fmt.Sprintf("name must not contain %q", string(n)[i]),
		}
	}
	return nil
}

// String returns the name as a plain string.
func (n RecipeName) String() string { return string(n) }
