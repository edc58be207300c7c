// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"log/slog"
	"sort"

	"chore-cli/pkg/chorefile"
	"chore-cli/pkg/types"
)

// DefaultAliasDepthLimit bounds alias chain length when the config does
// not override it.
const DefaultAliasDepthLimit = 8

type (
	// Options tunes resolution.
	Options struct {
		// AliasDepthLimit bounds how many aliases a chain may traverse
		// before resolution fails. Zero means DefaultAliasDepthLimit.
		AliasDepthLimit int
	}

	// Namespace is the fully merged, post-alias-resolution mapping from
	// name to recipe. It is built once per invocation and read-only
	// afterward; the Lister and Executor share it by reference.
	Namespace struct {
		recipes map[types.RecipeName]*chorefile.Recipe
		// order holds recipe names in declaration order of the merged
		// fold. An overriding definition keeps the slot of the name it
		// replaces, so listing order stays stable across overrides.
		order   []types.RecipeName
		aliases map[types.RecipeName]types.RecipeName

		defaultRecipe types.RecipeName
		hasDefault    bool

		// rootPath is the path of the root chorefile (the last merged source).
		rootPath string
	}
)

// Resolve merges the ordered source list into a single namespace as a
// deterministic left-fold: each file's imports come before it in the list,
// so later sources override earlier ones and the root source wins last.
// Resolution fails atomically; no partially merged namespace is returned.
func Resolve(files []*chorefile.Chorefile, opts Options) (*Namespace, error) {
	limit := opts.AliasDepthLimit
	if limit <= 0 {
		limit = DefaultAliasDepthLimit
	}

	ns := &Namespace{
		recipes: make(map[types.RecipeName]*chorefile.Recipe),
		aliases: make(map[types.RecipeName]types.RecipeName),
	}
	if len(files) > 0 {
		ns.rootPath = files[len(files)-1].Path
	}

	rawAliases := make(map[types.RecipeName]types.RecipeName)
	for _, cf := range files {
		for _, recipe := range cf.Recipes {
			if prev, exists := ns.recipes[recipe.Name]; exists {
				if prev.HasAttribute(chorefile.AttrNoOverride) {
					return nil, &DuplicateRecipeError{
						Name:         recipe.Name,
						FirstSource:  prev.SourcePath,
						SecondSource: recipe.SourcePath,
					}
				}
				slog.Debug("recipe overridden by later source",
					"recipe", recipe.Name, "from", prev.SourcePath, "by", recipe.SourcePath)
			} else {
				ns.order = append(ns.order, recipe.Name)
			}
			ns.recipes[recipe.Name] = recipe
		}
		for _, alias := range cf.Aliases {
			rawAliases[alias.Name] = alias.Target
		}
	}

	for _, name := range ns.order {
		if err := checkAttributeConflicts(ns.recipes[name]); err != nil {
			return nil, err
		}
	}

	if err := ns.resolveAliases(rawAliases, limit); err != nil {
		return nil, err
	}
	var root *chorefile.Chorefile
	if len(files) > 0 {
		root = files[len(files)-1]
	}
	if err := ns.selectDefault(root); err != nil {
		return nil, err
	}
	return ns, nil
}

// conflictingAttributes lists mutually exclusive attribute pairs.
var conflictingAttributes = [][2]chorefile.AttributeName{
	{chorefile.AttrNoExitMessage, chorefile.AttrExitMessage},
}

func checkAttributeConflicts(recipe *chorefile.Recipe) error {
	for _, pair := range conflictingAttributes {
		if recipe.HasAttribute(pair[0]) && recipe.HasAttribute(pair[1]) {
			return &AttributeConflictError{Recipe: recipe.Name, First: pair[0], Second: pair[1]}
		}
	}
	return nil
}

// resolveAliases dereferences every alias, transitively through chained
// aliases, to a concrete recipe. Chains are bounded by limit; cycles and
// dangling targets are distinct errors.
func (ns *Namespace) resolveAliases(raw map[types.RecipeName]types.RecipeName, limit int) error {
	// Deterministic iteration so the same broken input reports the same error.
	names := make([]types.RecipeName, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	for _, name := range names {
		if _, clash := ns.recipes[name]; clash {
			return &AliasCollisionError{Name: name}
		}

		chain := []types.RecipeName{name}
		visited := map[types.RecipeName]bool{name: true}
		target := raw[name]
		for hops := 0; ; hops++ {
			if _, ok := ns.recipes[target]; ok {
				ns.aliases[name] = target
				break
			}
			next, ok := raw[target]
			if !ok {
				return &AliasTargetError{Alias: name, Target: target}
			}
			if visited[target] {
				return &AliasCycleError{Chain: append(chain, target)}
			}
			if hops+1 >= limit {
				return &AliasDepthError{Alias: name, Limit: limit}
			}
			visited[target] = true
			chain = append(chain, target)
			target = next
		}
	}
	return nil
}

// selectDefault records the default recipe: the unique recipe marked
// [default] or, failing that, the first recipe declared in the root source
// that takes no required parameters. The implicit scan walks the root
// file's own declaration order, not the merged fold: an override keeps the
// overridden name's merged slot, which may precede recipes the root file
// declares earlier. A private default still governs selection; it is only
// excluded from listing.
func (ns *Namespace) selectDefault(root *chorefile.Chorefile) error {
	for _, name := range ns.order {
		if !ns.recipes[name].HasAttribute(chorefile.AttrDefault) {
			continue
		}
		if ns.hasDefault {
			return &DuplicateDefaultError{First: ns.defaultRecipe, Second: name}
		}
		ns.defaultRecipe = name
		ns.hasDefault = true
	}
	if ns.hasDefault || root == nil {
		return nil
	}

	for _, recipe := range root.Recipes {
		if recipe.RequiredParams() > 0 {
			continue
		}
		ns.defaultRecipe = recipe.Name
		ns.hasDefault = true
		return nil
	}
	return nil
}

// Lookup returns the recipe for name, following one alias hop if name is
// an alias. The second result reports whether the name resolved.
func (ns *Namespace) Lookup(name types.RecipeName) (*chorefile.Recipe, bool) {
	if recipe, ok := ns.recipes[name]; ok {
		return recipe, true
	}
	if target, ok := ns.aliases[name]; ok {
		recipe, ok := ns.recipes[target]
		return recipe, ok
	}
	return nil, false
}

// Recipes returns every recipe in declaration order.
func (ns *Namespace) Recipes() []*chorefile.Recipe {
	out := make([]*chorefile.Recipe, len(ns.order))
	for i, name := range ns.order {
		out[i] = ns.recipes[name]
	}
	return out
}

// Aliases returns the resolved alias table (alias name to recipe name),
// sorted by alias name.
func (ns *Namespace) Aliases() []chorefile.Alias {
	out := make([]chorefile.Alias, 0, len(ns.aliases))
	for name, target := range ns.aliases {
		out = append(out, chorefile.Alias{Name: name, Target: target})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AliasesFor returns the alias names resolving to the given recipe, sorted.
func (ns *Namespace) AliasesFor(recipe types.RecipeName) []types.RecipeName {
	var out []types.RecipeName
	for name, target := range ns.aliases {
		if target == recipe {
			out = append(out, name)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Default returns the default recipe name, if one was selected.
func (ns *Namespace) Default() (types.RecipeName, bool) {
	return ns.defaultRecipe, ns.hasDefault
}

// RootPath returns the path of the root chorefile.
func (ns *Namespace) RootPath() string { return ns.rootPath }

// Len returns the number of recipes in the namespace.
func (ns *Namespace) Len() int { return len(ns.order) }
