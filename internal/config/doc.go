// SPDX-License-Identifier: MPL-2.0

// Package config loads the chore configuration from the platform config
// directory (TOML via viper), layered under environment variables and
// CLI flags.
package config
