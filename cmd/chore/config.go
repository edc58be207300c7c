// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"chore-cli/internal/config"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

var (
	// configCmd groups configuration subcommands.
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Inspect chore configuration",
	}

	// configShowCmd prints the effective configuration.
	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration as TOML",
		Long: `Show the effective configuration: built-in defaults layered under the
config file and environment variables.`,
		RunE: runConfigShow,
	}
)

func init() {
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if dir, dirErr := config.ConfigDir(); dirErr == nil {
		path := filepath.Join(dir, config.ConfigFileName+"."+config.ConfigFileExt)
		fmt.Println(SubtitleStyle.Render("# config file: " + path))
	}
	fmt.Print(string(out))
	return nil
}
