// SPDX-License-Identifier: MPL-2.0

package chorefile

import (
	"fmt"
	"strings"

	"chore-cli/pkg/types"
)

// AttributeName identifies one of the recognized recipe attributes.
// The set is closed: an unrecognized name is a parse error, never
// silently ignored.
type AttributeName string

const (
	// AttrDefault marks the recipe executed when none is named.
	AttrDefault AttributeName = "default"
	// AttrPrivate excludes the recipe from listings (still invocable by name).
	AttrPrivate AttributeName = "private"
	// AttrNoOverride makes redefinition by a later source a resolution error.
	AttrNoOverride AttributeName = "no-override"
	// AttrNoExitMessage suppresses the runner's own failure summary.
	AttrNoExitMessage AttributeName = "no-exit-message"
	// AttrExitMessage forces the failure summary; conflicts with AttrNoExitMessage.
	AttrExitMessage AttributeName = "exit-message"
	// AttrContinueOnError keeps executing body lines past a failing one.
	AttrContinueOnError AttributeName = "continue-on-error"
	// AttrWorkingDirectory runs body lines in the given directory
	// (relative to the recipe's source file). Takes a parameter.
	AttrWorkingDirectory AttributeName = "working-directory"
)

// LineKind discriminates the two kinds of body lines.
type LineKind int

const (
	// LineShell is an opaque command line handed to the execution runtime.
	LineShell LineKind = iota
	// LineInvoke names another recipe to run (text is "name [args...]").
	LineInvoke
)

type (
	// Attribute is a single annotation bound to a recipe header.
	Attribute struct {
		Name AttributeName
		// Param holds the parameter for parameterized attributes
		// (currently only working-directory).
		Param string
		// Line is the 1-based source line of the annotation.
		Line int
	}

	// Parameter is a declared recipe parameter. Optional parameters carry
	// a default and must follow all required ones.
	Parameter struct {
		Name       string
		Default    string
		HasDefault bool
	}

	// Line is one body line of a recipe.
	Line struct {
		Kind LineKind
		// Text is the line content with indentation and sigils stripped.
		// Placeholders ({{param}}) are still unexpanded.
		Text string
		// Quiet suppresses echoing the line before execution.
		Quiet bool
		// Number is the 1-based source line number.
		Number int
	}

	// Recipe is a named, attributed, parameterized command sequence.
	// It is pure data: validation only, no behavior.
	Recipe struct {
		Name        types.RecipeName
		Description string
		Attributes  []Attribute
		Params      []Parameter
		Lines       []Line
		// SourcePath is the chorefile this recipe was declared in.
		SourcePath string
		// HeaderLine is the 1-based line of the recipe header.
		HeaderLine int
	}

	// Alias declares an alternate name for a recipe.
	Alias struct {
		Name   types.RecipeName
		Target types.RecipeName
		Line   int
	}

	// Import references another chorefile to merge before this one.
	Import struct {
		Path     string
		Optional bool
		Line     int
	}

	// Chorefile is the raw, unmerged content of a single source file,
	// in declaration order.
	Chorefile struct {
		Path    string
		Imports []Import
		Aliases []Alias
		Recipes []*Recipe
	}
)

// knownAttributes maps recognized attribute names to whether they take a parameter.
var knownAttributes = map[AttributeName]bool{
	AttrDefault:          false,
	AttrPrivate:          false,
	AttrNoOverride:       false,
	AttrNoExitMessage:    false,
	AttrExitMessage:      false,
	AttrContinueOnError:  false,
	AttrWorkingDirectory: true,
}

// HasAttribute reports whether the recipe carries the given attribute.
func (r *Recipe) HasAttribute(name AttributeName) bool {
	for _, a := range r.Attributes {
		if a.Name == name {
			return true
		}
	}
	return false
}

// AttributeParam returns the parameter of the given attribute, if declared.
func (r *Recipe) AttributeParam(name AttributeName) (string, bool) {
	for _, a := range r.Attributes {
		if a.Name == name {
			return a.Param, true
		}
	}
	return "", false
}

// RequiredParams returns the number of parameters without defaults.
func (r *Recipe) RequiredParams() int {
	n := 0
	for _, p := range r.Params {
		if !p.HasDefault {
			n++
		}
	}
	return n
}

// Validate checks the structural invariants of a single recipe: a valid
// name, a non-empty body, well-formed parameters, recognized attributes,
// and body placeholders that reference declared parameters.
func (r *Recipe) Validate() error {
	if err := r.Name.Validate(); err != nil {
		return err
	}
	if len(r.Lines) == 0 {
		return fmt.Errorf("recipe %q has an empty body", r.Name)
	}

	seenOptional := false
	paramNames := make(map[string]bool, len(r.Params))
	for _, p := range r.Params {
		if p.Name == "" {
			return fmt.Errorf("recipe %q declares a parameter with an empty name", r.Name)
		}
		if paramNames[p.Name] {
			return fmt.Errorf("recipe %q declares parameter %q twice", r.Name, p.Name)
		}
		paramNames[p.Name] = true
		if p.HasDefault {
			seenOptional = true
		} else if seenOptional {
			return fmt.Errorf("recipe %q: required parameter %q follows an optional one", r.Name, p.Name)
		}
	}

	for _, a := range r.Attributes {
		takesParam, known := knownAttributes[a.Name]
		if !known {
			return fmt.Errorf("recipe %q has unknown attribute %q", r.Name, a.Name)
		}
		if takesParam && a.Param == "" {
			return fmt.Errorf("recipe %q: attribute %q requires a parameter", r.Name, a.Name)
		}
		if !takesParam && a.Param != "" {
			return fmt.Errorf("recipe %q: attribute %q takes no parameter", r.Name, a.Name)
		}
	}

	for _, line := range r.Lines {
		refs, err := scanPlaceholders(line.Text)
		if err != nil {
			return fmt.Errorf("recipe %q line %d: %w", r.Name, line.Number, err)
		}
		for _, ref := range refs {
			if !paramNames[ref] {
				return fmt.Errorf("recipe %q line %d references undeclared parameter %q", r.Name, line.Number, ref)
			}
		}
	}

	return nil
}

// scanPlaceholders returns the {{name}} references in text, in order.
func scanPlaceholders(text string) ([]string, error) {
	var refs []string
	for {
		start := strings.Index(text, "{{")
		if start < 0 {
			return refs, nil
		}
		rest := text[start+2:]
		end := strings.Index(rest, "}}")
		if end < 0 {
			return nil, fmt.Errorf("unterminated placeholder %q", text[start:])
		}
		refs = append(refs, strings.TrimSpace(rest[:end]))
		text = rest[end+2:]
	}
}

// Interpolate substitutes {{param}} placeholders in text with the bound
// values. Every placeholder must have a binding; Recipe.Validate guarantees
// that for lines of a validated recipe executed with bound arguments.
func Interpolate(text string, values map[string]string) (string, error) {
	var out strings.Builder
	for {
		start := strings.Index(text, "{{")
		if start < 0 {
			out.WriteString(text)
			return out.String(), nil
		}
		out.WriteString(text[:start])
		rest := text[start+2:]
		end := strings.Index(rest, "}}")
		if end < 0 {
			return "", fmt.Errorf("unterminated placeholder %q", text[start:])
		}
		name := strings.TrimSpace(rest[:end])
		value, ok := values[name]
		if !ok {
			return "", fmt.Errorf("no value bound for parameter %q", name)
		}
		out.WriteString(value)
		text = rest[end+2:]
	}
}
