// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for chore.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"chore-cli/internal/config"
	"chore-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// chorefilePath overrides the root chorefile location
	chorefilePath string
	// listFlag forces listing instead of execution
	listFlag bool
	// runtimeFlag overrides the execution runtime (native or virtual)
	runtimeFlag string
	// shellFlag overrides the native runtime's shell
	shellFlag string

	// cfg is the loaded configuration, populated by initRootConfig.
	cfg *config.Config

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "chore [recipe] [args...]",
		Short: "A minimal declarative task runner",
		Long: TitleStyle.Render("chore") + SubtitleStyle.Render(" - A minimal declarative task runner") + `

chore runs named recipes from a 'chorefile': a plain list of imports,
aliases, and attributed recipes whose bodies are ordinary command lines.
Recipes can invoke each other, take parameters, and execute either in the
host shell or in a built-in POSIX shell interpreter.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Create a chorefile in your project directory (chore init)
  2. Declare recipes as 'name:' headers with indented command lines
  3. Run them with: chore <recipe-name>

` + SubtitleStyle.Render("Examples:") + `
  chore                     Run the default recipe (or list recipes)
  chore --list              List all available recipes
  chore build               Run the 'build' recipe
  chore deploy prod         Run 'deploy' with argument 'prod'
  chore init                Create a new chorefile`,
		Args: cobra.ArbitraryArgs,
		RunE: runRoot,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Flags after the recipe name belong to the recipe, not to chore.
	rootCmd.Flags().SetInterspersed(false)

	rootCmd.Flags().BoolVarP(&listFlag, "list", "l", false, "list available recipes and exit")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/chore/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&chorefilePath, "chorefile", "f", "", "path to the root chorefile (default: nearest 'chorefile', see also $CHOREFILE)")
	rootCmd.PersistentFlags().StringVarP(&runtimeFlag, "runtime", "r", "", "execution runtime: native or virtual")
	rootCmd.PersistentFlags().StringVar(&shellFlag, "shell", "", "shell for the native runtime")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig reads the config file and environment, and installs the
// structured logger.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	loaded, err := config.Load()
	if err != nil {
		// Surface config problems but keep going on defaults.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		loaded = config.DefaultConfig()
	}
	cfg = loaded

	if !verbose {
		verbose = cfg.UI.Verbose
	}

	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: false,
	})
	slog.SetDefault(slog.New(handler))
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
