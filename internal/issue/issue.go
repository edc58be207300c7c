// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a catalog entry.
type Id int

const (
	ChorefileNotFoundId Id = iota + 1
	ChorefileParseErrorId
	MissingImportId
	RecipeNotFoundId
	AliasCycleId
	AttributeConflictId
	DuplicateRecipeId
	ShellNotFoundId
	ConfigLoadFailedId
)

// MarkdownMsg is rendered guidance text in Markdown.
type MarkdownMsg string

// HttpLink is a documentation or external reference URL.
type HttpLink string

// Issue is a catalog entry: a known failure mode with rendered guidance.
type Issue struct {
	id       Id          // ID used to look up the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // project documentation links
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render produces the styled terminal text for this issue.
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

// render is a seam for tests to stub glamour out.
var render = func(in string, stylePath string) (string, error) {
	return glamour.Render(in, stylePath)
}

var (
	chorefileNotFoundIssue = &Issue{
		id: ChorefileNotFoundId,
		mdMsg: `
# No chorefile found!

We looked for a chorefile in the current directory and every parent
directory, and came up empty.

## Things you can try:
- Create a starter chorefile here:
~~~
$ chore init
~~~

- Point chore at an existing file:
~~~
$ chore --chorefile /path/to/chorefile
$ CHOREFILE=/path/to/chorefile chore
~~~`,
	}

	chorefileParseErrorIssue = &Issue{
		id: ChorefileParseErrorId,
		mdMsg: `
# The chorefile could not be parsed

The reported line does not match any chorefile construct.

## Reminders:
- Recipe headers end with a colon: ` + "`build:`" + `
- Body lines are indented consistently under their header
- Attributes are bracketed and precede the header: ` + "`[private]`" + `
- Imports use a quoted path: ` + "`import \"common.chore\"`" + ``,
	}

	missingImportIssue = &Issue{
		id: MissingImportId,
		mdMsg: `
# A required import is missing

An ` + "`import`" + ` declaration names a file that does not exist.

## Things you can try:
- Create the missing file, or fix the path (it is resolved relative to
  the importing file)
- Mark the import optional if it may legitimately be absent:
~~~
import? "local.chore"
~~~`,
	}

	recipeNotFoundIssue = &Issue{
		id: RecipeNotFoundId,
		mdMsg: `
# Unknown recipe

The requested name is neither a recipe nor an alias.

## Things you can try:
- List the available recipes:
~~~
$ chore --list
~~~
- Check for typos; recipe names are case-sensitive`,
	}

	aliasCycleIssue = &Issue{
		id: AliasCycleId,
		mdMsg: `
# Alias cycle detected

Aliases must resolve, possibly through other aliases, to a concrete
recipe. A chain that loops back on itself can never resolve.

Break the cycle by pointing one of the aliases at a real recipe.`,
	}

	attributeConflictIssue = &Issue{
		id: AttributeConflictId,
		mdMsg: `
# Conflicting attributes

A recipe declares an attribute together with its negation (for example
` + "`[no-exit-message]`" + ` and ` + "`[exit-message]`" + `). Keep exactly one of the pair.`,
	}

	duplicateRecipeIssue = &Issue{
		id: DuplicateRecipeId,
		mdMsg: `
# Recipe redefinition blocked

A later source redefines a recipe whose original definition is marked
` + "`[no-override]`" + `.

## Things you can try:
- Rename the new recipe
- Remove ` + "`[no-override]`" + ` from the original if overriding is intended`,
	}

	shellNotFoundIssue = &Issue{
		id: ShellNotFoundId,
		mdMsg: `
# No usable shell

The native runtime needs a shell binary and none was found.

## Things you can try:
- Set one in the config file: ` + "`shell = \"/bin/bash\"`" + `
- Use the built-in interpreter instead:
~~~
$ chore --runtime virtual <recipe>
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Configuration could not be loaded

The config file exists but could not be read or contains invalid values.

## Things you can try:
- Check the TOML syntax
- Show the effective configuration:
~~~
$ chore config show
~~~`,
	}

	catalog = map[Id]*Issue{
		ChorefileNotFoundId:   chorefileNotFoundIssue,
		ChorefileParseErrorId: chorefileParseErrorIssue,
		MissingImportId:       missingImportIssue,
		RecipeNotFoundId:      recipeNotFoundIssue,
		AliasCycleId:          aliasCycleIssue,
		AttributeConflictId:   attributeConflictIssue,
		DuplicateRecipeId:     duplicateRecipeIssue,
		ShellNotFoundId:       shellNotFoundIssue,
		ConfigLoadFailedId:    configLoadFailedIssue,
	}
)

// ById returns the catalog entry for id, or nil if unknown.
func ById(id Id) *Issue {
	return catalog[id]
}

// Ids returns every cataloged issue id, sorted.
func Ids() []Id {
	ids := maps.Keys(catalog)
	slices.Sort(ids)
	return ids
}
