// SPDX-License-Identifier: MPL-2.0

// Package list enumerates the recipes of a resolved namespace for display.
package list

import (
	"chore-cli/internal/resolve"
	"chore-cli/pkg/chorefile"
	"chore-cli/pkg/types"
)

// Entry is one listable recipe.
type Entry struct {
	Name types.RecipeName
	// Description is the recipe's doc comment, empty if none was declared.
	Description string
	// Aliases are the alias names resolving to this recipe, sorted.
	Aliases []types.RecipeName
	// Default marks the namespace's default recipe.
	Default bool
}

// Entries returns every non-private recipe in declaration order, paired
// with its description and aliases. Private recipes stay invocable by name
// but are excluded here.
func Entries(ns *resolve.Namespace) []Entry {
	defaultName, hasDefault := ns.Default()
	var entries []Entry
	for _, recipe := range ns.Recipes() {
		if recipe.HasAttribute(chorefile.AttrPrivate) {
			continue
		}
		entries = append(entries, Entry{
			Name:        recipe.Name,
			Description: recipe.Description,
			Aliases:     ns.AliasesFor(recipe.Name),
			Default:     hasDefault && recipe.Name == defaultName,
		})
	}
	return entries
}
