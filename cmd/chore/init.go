// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"chore-cli/pkg/chorefile"

	"github.com/spf13/cobra"
)

var (
	initForce bool

	// initCmd creates a new chorefile
	initCmd = &cobra.Command{
		Use:   "init [filename]",
		Short: "Create a new chorefile in the current directory",
		Long: `Create a new chorefile in the current directory with example recipes.

This command generates a starter chorefile with sample recipes to help
you get started quickly.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
)

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "F", false, "overwrite an existing chorefile")
}

func runInit(cmd *cobra.Command, args []string) error {
	filename := chorefile.DefaultFileName
	if len(args) > 0 {
		filename = args[0]
	}

	if _, err := os.Stat(filename); err == nil && !initForce {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", filename)
	}

	if err := os.WriteFile(filename, []byte(starterChorefile), 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	absPath, _ := filepath.Abs(filename)
	fmt.Printf("%s Created %s\n", SuccessStyle.Render("✓"), absPath)
	fmt.Println()
	fmt.Println(SubtitleStyle.Render("Next steps:"))
	fmt.Println("  1. Edit the chorefile to add your recipes")
	fmt.Println("  2. Run 'chore --list' to see available recipes")
	fmt.Println("  3. Run 'chore <recipe>' to execute a recipe")

	return nil
}

// starterChorefile is the template written by 'chore init'.
const starterChorefile = `alias b := build

# Build the project
build:
    echo "add your build command here"

# Run the test suite
test:
    > build
    echo "add your test command here"

[private]
clean:
    @rm -rf dist
`
