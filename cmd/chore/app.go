// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"chore-cli/internal/issue"
	"chore-cli/internal/list"
	"chore-cli/internal/resolve"
	"chore-cli/internal/run"
	"chore-cli/pkg/chorefile"
	"chore-cli/pkg/types"

	"github.com/spf13/cobra"
)

// runRoot is the single terminal action of an invocation: list recipes or
// execute exactly one of them.
func runRoot(cmd *cobra.Command, args []string) error {
	ns, err := loadNamespace()
	if err != nil {
		return reportError(err)
	}

	if listFlag {
		listRecipes(ns)
		return nil
	}

	var name types.RecipeName
	var recipeArgs []string
	if len(args) > 0 {
		name = types.RecipeName(args[0])
		recipeArgs = args[1:]
	} else {
		defaultName, ok := ns.Default()
		if !ok {
			listRecipes(ns)
			return nil
		}
		name = defaultName
	}

	runtime, err := selectRuntime()
	if err != nil {
		return reportError(err)
	}

	executor := run.NewExecutor(ns, runtime)
	executor.Echo = func(line string) {
		fmt.Fprintln(os.Stderr, EchoStyle.Render(line))
	}
	executor.Summary = func(recipe types.RecipeName, line int, code types.ExitCode) {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("error: ")+fmt.Sprintf(
			"recipe %s failed on line %d with exit code %s",
			RecipeStyle.Render(string(recipe)), line, code))
	}

	code, err := executor.Execute(cmd.Context(), name, recipeArgs)
	if err != nil {
		return reportError(err)
	}
	if !code.IsSuccess() {
		// The executor already reported (or deliberately suppressed) the
		// failure; only the status needs propagating.
		return &ExitError{Code: code}
	}
	return nil
}

// loadNamespace locates, loads, and resolves the chorefile sources into
// the invocation's namespace.
func loadNamespace() (*resolve.Namespace, error) {
	path := chorefilePath
	if path == "" {
		path = cfg.Chorefile
	}
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determine working directory: %w", err)
		}
		path, err = chorefile.Find(cwd)
		if err != nil {
			return nil, err
		}
	}

	files, err := chorefile.Load(path)
	if err != nil {
		return nil, err
	}
	return resolve.Resolve(files, resolve.Options{AliasDepthLimit: cfg.AliasDepthLimit})
}

// selectRuntime picks the execution runtime: the --runtime flag, then the
// configured default.
func selectRuntime() (run.Runtime, error) {
	mode := runtimeFlag
	if mode == "" {
		mode = string(cfg.DefaultRuntime)
	}
	switch mode {
	case run.ModeNative:
		shell := shellFlag
		if shell == "" {
			shell = cfg.Shell
		}
		return &run.NativeRuntime{Shell: shell}, nil
	case run.ModeVirtual:
		return run.NewVirtualRuntime(), nil
	default:
		return nil, fmt.Errorf("invalid runtime %q (expected %q or %q)",
			mode, run.ModeNative, run.ModeVirtual)
	}
}

// listRecipes prints every non-private recipe in declaration order.
func listRecipes(ns *resolve.Namespace) {
	entries := list.Entries(ns)
	if len(entries) == 0 {
		fmt.Println(SubtitleStyle.Render("No recipes defined."))
		return
	}

	width := 0
	for _, entry := range entries {
		if len(entry.Name) > width {
			width = len(entry.Name)
		}
	}

	fmt.Println(TitleStyle.Render("Available recipes:"))
	for _, entry := range entries {
		line := "  " + RecipeStyle.Render(fmt.Sprintf("%-*s", width, entry.Name))
		if entry.Description != "" {
			line += "  " + SubtitleStyle.Render(entry.Description)
		}
		var notes []string
		for _, alias := range entry.Aliases {
			notes = append(notes, "alias: "+string(alias))
		}
		if entry.Default {
			notes = append(notes, "default")
		}
		if len(notes) > 0 {
			note := "("
			for i, n := range notes {
				if i > 0 {
					note += ", "
				}
				note += n
			}
			note += ")"
			line += "  " + SubtitleStyle.Render(note)
		}
		fmt.Println(line)
	}
}

// reportError prints a user-facing message for err and converts it into
// the ExitError carrying the documented exit code for its failure class.
func reportError(err error) error {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("error: ")+formatErrorForDisplay(err, verbose))

	if entry := issueFor(err); entry != nil {
		if verbose || errors.Is(err, chorefile.ErrNotFound) {
			if rendered, renderErr := entry.Render(""); renderErr == nil {
				fmt.Fprintln(os.Stderr, rendered)
			}
		}
	}

	return &ExitError{Code: classifyExitCode(err), Err: err}
}

// classifyExitCode maps an error to the documented exit code for its
// class: 3 for load failures, 4 for resolution failures, 2 for an unknown
// recipe, 1 otherwise. Failing recipes mirror the command's own status
// and never reach this path.
func classifyExitCode(err error) types.ExitCode {
	switch {
	case errors.Is(err, chorefile.ErrParse),
		errors.Is(err, chorefile.ErrLoad),
		errors.Is(err, chorefile.ErrNotFound):
		return types.ExitLoadError
	case errors.Is(err, resolve.ErrResolution):
		return types.ExitResolveError
	case errors.Is(err, run.ErrRecipeNotFound):
		return types.ExitNotFound
	default:
		return types.ExitFailure
	}
}

// issueFor maps an error to its catalog entry, if one exists.
func issueFor(err error) *issue.Issue {
	switch {
	case errors.Is(err, chorefile.ErrNotFound):
		return issue.ById(issue.ChorefileNotFoundId)
	case errors.Is(err, chorefile.ErrParse):
		return issue.ById(issue.ChorefileParseErrorId)
	case errors.As(err, new(*chorefile.MissingImportError)):
		return issue.ById(issue.MissingImportId)
	case errors.As(err, new(*resolve.AliasCycleError)),
		errors.As(err, new(*resolve.AliasTargetError)),
		errors.As(err, new(*resolve.AliasDepthError)):
		return issue.ById(issue.AliasCycleId)
	case errors.As(err, new(*resolve.AttributeConflictError)):
		return issue.ById(issue.AttributeConflictId)
	case errors.As(err, new(*resolve.DuplicateRecipeError)):
		return issue.ById(issue.DuplicateRecipeId)
	case errors.Is(err, run.ErrRecipeNotFound):
		return issue.ById(issue.RecipeNotFoundId)
	case errors.Is(err, run.ErrShellNotFound):
		return issue.ById(issue.ShellNotFoundId)
	default:
		return nil
	}
}
