// SPDX-License-Identifier: MPL-2.0

package run

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"chore-cli/internal/resolve"
	"chore-cli/pkg/chorefile"
	"chore-cli/pkg/types"
)

// Environment variables injected into every command line so scripts can
// identify the invoking recipe and source file.
const (
	// EnvRecipe carries the name of the recipe being executed.
	EnvRecipe = "CHORE_RECIPE"
	// EnvChorefile carries the path of the root chorefile.
	EnvChorefile = "CHORE_CHOREFILE"
)

type (
	// Executor runs recipes from a resolved namespace. Body lines execute
	// strictly in declaration order; each line runs to completion before
	// the next starts. Nested recipe invocations are resolved through the
	// same namespace with an explicit call stack for cycle detection.
	Executor struct {
		Namespace *resolve.Namespace
		Runtime   Runtime
		IO        IO

		// Echo is called with each shell line before it runs, unless the
		// line is marked quiet. Nil means a plain stderr echo.
		Echo func(line string)
		// Summary is called when a recipe fails and does not carry the
		// no-exit-message attribute. Nil means a plain stderr message.
		Summary func(recipe types.RecipeName, line int, code types.ExitCode)
	}
)

// NewExecutor creates an executor over the given namespace and runtime,
// wired to the process's standard streams.
func NewExecutor(ns *resolve.Namespace, rt Runtime) *Executor {
	return &Executor{
		Namespace: ns,
		Runtime:   rt,
		IO:        IO{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr},
	}
}

// Execute looks up the named recipe and runs its body. The returned exit
// code mirrors the failing line's status on failure; the error is non-nil
// only for failures that preceded command execution (unknown recipe, bad
// arguments, a cycle) or infrastructure faults.
func (e *Executor) Execute(ctx context.Context, name types.RecipeName, args []string) (types.ExitCode, error) {
	recipe, ok := e.Namespace.Lookup(name)
	if !ok {
		return types.ExitNotFound, &NotFoundError{Name: name}
	}
	return e.run(ctx, recipe, args, nil)
}

func (e *Executor) run(ctx context.Context, recipe *chorefile.Recipe, args []string, stack []types.RecipeName) (types.ExitCode, error) {
	for _, name := range stack {
		if name == recipe.Name {
			return types.ExitFailure, &CycleError{Stack: append(append([]types.RecipeName{}, stack...), recipe.Name)}
		}
	}
	stack = append(stack, recipe.Name)

	values, err := bindArguments(recipe, args)
	if err != nil {
		return types.ExitFailure, err
	}

	lc := LineContext{
		Dir: e.workDir(recipe),
		Env: append(os.Environ(),
			EnvRecipe+"="+string(recipe.Name),
			EnvChorefile+"="+e.Namespace.RootPath(),
		),
		IO: e.IO,
	}

	if v, ok := e.Runtime.(LineValidator); ok {
		if err := validateLines(v, recipe, values); err != nil {
			return types.ExitFailure, err
		}
	}

	continueOnError := recipe.HasAttribute(chorefile.AttrContinueOnError)
	inv := newInvocation(recipe.Name)
	slog.Debug("executing recipe", "recipe", recipe.Name, "lines", len(recipe.Lines), "runtime", e.Runtime.Name())

	var last *Result = NewSuccessResult()
	for _, line := range recipe.Lines {
		if ctxErr := ctx.Err(); ctxErr != nil {
			inv.fail(line.Number, types.ExitFailure)
			return types.ExitFailure, ctxErr
		}
		inv.running(line.Number)

		text, err := chorefile.Interpolate(line.Text, values)
		if err != nil {
			inv.fail(line.Number, types.ExitFailure)
			return types.ExitFailure, fmt.Errorf("recipe %q line %d: %w", recipe.Name, line.Number, err)
		}

		var res *Result
		if line.Kind == chorefile.LineInvoke {
			code, err := e.invoke(ctx, text, stack)
			if err != nil {
				inv.fail(line.Number, code)
				return code, err
			}
			res = NewExitCodeResult(code)
		} else {
			if !line.Quiet {
				e.echo(text)
			}
			res = e.Runtime.RunLine(ctx, text, lc)
		}

		last = res
		if res.IsFailure() && !continueOnError {
			inv.fail(line.Number, res.ExitCode)
			if line.Kind == chorefile.LineShell && !recipe.HasAttribute(chorefile.AttrNoExitMessage) {
				e.summary(recipe.Name, line.Number, res.ExitCode)
			}
			return res.ExitCode, res.Err
		}
	}

	// With continue-on-error the recipe's outcome is the last executed
	// line's outcome; otherwise reaching this point means every line succeeded.
	if last.IsFailure() {
		lineNo := recipe.Lines[len(recipe.Lines)-1].Number
		inv.fail(lineNo, last.ExitCode)
		if !recipe.HasAttribute(chorefile.AttrNoExitMessage) {
			e.summary(recipe.Name, lineNo, last.ExitCode)
		}
		return last.ExitCode, last.Err
	}
	inv.succeed()
	return types.ExitSuccess, nil
}

// invoke runs a nested recipe invocation line ("name arg ...").
func (e *Executor) invoke(ctx context.Context, text string, stack []types.RecipeName) (types.ExitCode, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		// The raw line named a recipe, but interpolation can leave it blank
		// (an empty argument bound to a {{param}} in name position).
		return types.ExitFailure, fmt.Errorf("%w: invocation line names no recipe after interpolation", ErrInvocation)
	}
	name := types.RecipeName(fields[0])
	recipe, ok := e.Namespace.Lookup(name)
	if !ok {
		return types.ExitNotFound, &NotFoundError{Name: name}
	}
	return e.run(ctx, recipe, fields[1:], stack)
}

// workDir returns the directory body lines run in: the recipe's source
// directory, adjusted by a working-directory attribute if present.
func (e *Executor) workDir(recipe *chorefile.Recipe) string {
	dir := filepath.Dir(recipe.SourcePath)
	if wd, ok := recipe.AttributeParam(chorefile.AttrWorkingDirectory); ok {
		if filepath.IsAbs(wd) {
			return wd
		}
		return filepath.Join(dir, wd)
	}
	return dir
}

func (e *Executor) echo(line string) {
	if e.Echo != nil {
		e.Echo(line)
		return
	}
	fmt.Fprintln(e.IO.Stderr, line)
}

func (e *Executor) summary(recipe types.RecipeName, line int, code types.ExitCode) {
	if e.Summary != nil {
		e.Summary(recipe, line, code)
		return
	}
	fmt.Fprintf(e.IO.Stderr, "error: recipe %q failed on line %d with exit code %s\n", recipe, line, code)
}

// validateLines syntax-checks every shell line of the recipe before any of
// them executes, so a late parse error cannot leave earlier lines' side
// effects behind.
func validateLines(v LineValidator, recipe *chorefile.Recipe, values map[string]string) error {
	for _, line := range recipe.Lines {
		if line.Kind != chorefile.LineShell {
			continue
		}
		text, err := chorefile.Interpolate(line.Text, values)
		if err != nil {
			return fmt.Errorf("recipe %q line %d: %w", recipe.Name, line.Number, err)
		}
		if err := v.Validate(text); err != nil {
			return fmt.Errorf("recipe %q line %d: %w", recipe.Name, line.Number, err)
		}
	}
	return nil
}

// bindArguments maps positional args onto the recipe's parameters,
// applying defaults for unsupplied optional parameters.
func bindArguments(recipe *chorefile.Recipe, args []string) (map[string]string, error) {
	required := recipe.RequiredParams()
	if len(args) < required || len(args) > len(recipe.Params) {
		return nil, &ArgumentError{
			Recipe:   recipe.Name,
			Required: required,
			Max:      len(recipe.Params),
			Got:      len(args),
		}
	}
	values := make(map[string]string, len(recipe.Params))
	for i, param := range recipe.Params {
		if i < len(args) {
			values[param.Name] = args[i]
		} else {
			values[param.Name] = param.Default
		}
	}
	return values, nil
}
