// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

const (
	// RuntimeNative runs command lines in the host system shell.
	// Defined locally to avoid coupling config to internal/run.
	RuntimeNative RuntimeMode = "native"
	// RuntimeVirtual runs command lines in the embedded mvdan/sh interpreter.
	RuntimeVirtual RuntimeMode = "virtual"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidRuntimeMode is returned when a RuntimeMode value is not recognized.
	ErrInvalidRuntimeMode = errors.New("invalid runtime mode")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidAliasDepthLimit is returned when the alias depth limit is not positive.
	ErrInvalidAliasDepthLimit = errors.New("alias_depth_limit must be positive")
)

type (
	// RuntimeMode selects how command lines are executed.
	RuntimeMode string

	// ColorScheme selects the terminal color scheme for styled output.
	ColorScheme string

	// UIConfig groups presentation settings.
	UIConfig struct {
		// ColorScheme selects auto, dark, or light styling.
		ColorScheme ColorScheme `mapstructure:"color_scheme" toml:"color_scheme"`
		// Verbose enables verbose output without the --verbose flag.
		Verbose bool `mapstructure:"verbose" toml:"verbose"`
	}

	// Config is the effective chore configuration.
	Config struct {
		// Chorefile overrides the root chorefile path (also settable via
		// the CHOREFILE environment variable and the --chorefile flag).
		Chorefile string `mapstructure:"chorefile" toml:"chorefile,omitempty"`
		// Shell overrides the shell used by the native runtime.
		Shell string `mapstructure:"shell" toml:"shell,omitempty"`
		// DefaultRuntime selects the runtime when --runtime is not given.
		DefaultRuntime RuntimeMode `mapstructure:"default_runtime" toml:"default_runtime"`
		// AliasDepthLimit bounds alias chain length during resolution.
		AliasDepthLimit int `mapstructure:"alias_depth_limit" toml:"alias_depth_limit"`
		// UI groups presentation settings.
		UI UIConfig `mapstructure:"ui" toml:"ui"`
	}
)

// IsValid reports whether the RuntimeMode is recognized.
func (m RuntimeMode) IsValid() bool {
	return m == RuntimeNative || m == RuntimeVirtual
}

// IsValid reports whether the ColorScheme is recognized.
func (s ColorScheme) IsValid() bool {
	return s == ColorSchemeAuto || s == ColorSchemeDark || s == ColorSchemeLight
}

// DefaultConfig returns the built-in defaults applied before any config
// file or environment values.
func DefaultConfig() *Config {
	return &Config{
		DefaultRuntime:  RuntimeNative,
		AliasDepthLimit: 8,
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// Validate checks the configuration values after loading.
func (c *Config) Validate() error {
	if !c.DefaultRuntime.IsValid() {
		return fmt.Errorf("%w: %q (expected %q or %q)",
			ErrInvalidRuntimeMode, c.DefaultRuntime, RuntimeNative, RuntimeVirtual)
	}
	if !c.UI.ColorScheme.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidColorScheme, c.UI.ColorScheme)
	}
	if c.AliasDepthLimit <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAliasDepthLimit, c.AliasDepthLimit)
	}
	return nil
}
