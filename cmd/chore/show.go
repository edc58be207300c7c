// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"chore-cli/internal/run"
	"chore-cli/pkg/chorefile"
	"chore-cli/pkg/types"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// showCmd prints one recipe's resolved definition.
var showCmd = &cobra.Command{
	Use:   "show <recipe>",
	Short: "Show a recipe's resolved definition",
	Long: `Show a recipe's resolved definition: its description, attributes,
parameters, aliases, and body, after imports and overrides are applied.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	ns, err := loadNamespace()
	if err != nil {
		return reportError(err)
	}

	name := types.RecipeName(args[0])
	recipe, ok := ns.Lookup(name)
	if !ok {
		return reportError(&run.NotFoundError{Name: name})
	}

	md := recipeMarkdown(recipe, ns.AliasesFor(recipe.Name))
	rendered, err := glamour.Render(md, "auto")
	if err != nil {
		// Fall back to the raw markdown on rendering failures.
		fmt.Print(md)
		return nil
	}
	fmt.Print(rendered)
	return nil
}

// recipeMarkdown renders a recipe definition as Markdown for display.
func recipeMarkdown(recipe *chorefile.Recipe, aliases []types.RecipeName) string {
	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", recipe.Name)
	if recipe.Description != "" {
		fmt.Fprintf(&md, "%s\n\n", recipe.Description)
	}
	fmt.Fprintf(&md, "Defined in `%s` (line %d)\n\n", recipe.SourcePath, recipe.HeaderLine)

	if len(aliases) > 0 {
		names := make([]string, len(aliases))
		for i, a := range aliases {
			names[i] = "`" + string(a) + "`"
		}
		fmt.Fprintf(&md, "Aliases: %s\n\n", strings.Join(names, ", "))
	}
	if len(recipe.Attributes) > 0 {
		md.WriteString("Attributes:\n")
		for _, attr := range recipe.Attributes {
			if attr.Param != "" {
				fmt.Fprintf(&md, "- `[%s: %q]`\n", attr.Name, attr.Param)
			} else {
				fmt.Fprintf(&md, "- `[%s]`\n", attr.Name)
			}
		}
		md.WriteString("\n")
	}
	if len(recipe.Params) > 0 {
		md.WriteString("Parameters:\n")
		for _, param := range recipe.Params {
			if param.HasDefault {
				fmt.Fprintf(&md, "- `%s` (default %q)\n", param.Name, param.Default)
			} else {
				fmt.Fprintf(&md, "- `%s` (required)\n", param.Name)
			}
		}
		md.WriteString("\n")
	}

	md.WriteString("```\n")
	for _, line := range recipe.Lines {
		switch {
		case line.Kind == chorefile.LineInvoke && line.Quiet:
			fmt.Fprintf(&md, "@> %s\n", line.Text)
		case line.Kind == chorefile.LineInvoke:
			fmt.Fprintf(&md, "> %s\n", line.Text)
		case line.Quiet:
			fmt.Fprintf(&md, "@%s\n", line.Text)
		default:
			fmt.Fprintf(&md, "%s\n", line.Text)
		}
	}
	md.WriteString("```\n")
	return md.String()
}
