// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from the --config flag path, then config.cue in the
// platform config directory ($XDG_CONFIG_HOME/components on Linux,
// ~/Library/Application Support/components on macOS, %APPDATA%\components on
// Windows), then components.cue in the working directory. Missing files fall
// back to defaults. Environment variables prefixed with COMPONENTS_ override
// file values (COMPONENTS_PATHS_COMPONENTS overrides paths.components).
//
// Configuration files are validated against the embedded CUE schema
// (config_schema.cue). Relative paths in the configuration resolve against
// base_path.
package config
