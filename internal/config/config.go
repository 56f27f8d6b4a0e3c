// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/consigliere/components/internal/issue"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "components"
	// ConfigFileName is the name of the user config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// LocalConfigFile is the project-local config file looked up in the working directory.
	LocalConfigFile = AppName + "." + ConfigFileExt
	// EnvPrefix prefixes environment overrides (COMPONENTS_BASE_PATH, ...).
	EnvPrefix = "COMPONENTS"

	// maxConfigFileSize bounds the config file read into memory.
	maxConfigFileSize = 1 << 20
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns the configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	// Allow tests to override the config directory
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// UserConfigPath returns the path of config.cue inside ConfigDir.
func UserConfigPath() (string, error) {
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt), nil
}

// loadWithOptions performs option-driven config loading: defaults, then the
// first config file found, then COMPONENTS_* environment overrides, then the
// explicit BasePath option.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}

	v := newViper()

	resolvedPath, err := resolveConfigFile(opts)
	if err != nil {
		return nil, err
	}
	if resolvedPath != "" {
		if err := loadCUEIntoViper(v, resolvedPath); err != nil {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid CUE syntax").
				WithSuggestion("Verify the configuration values match the expected schema").
				WithSuggestion("See 'components config --help' for configuration options").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if opts.BasePath != "" {
		cfg.BasePath = FilesystemPath(opts.BasePath)
	}
	cfg.source = resolvedPath

	if valid, errs := cfg.IsValid(); !valid {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Paths must not be blank and the manifest must be a plain file name").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(errors.Join(errs...)).
			BuildError()
	}

	return &cfg, nil
}

// newViper returns a Viper instance seeded with defaults and bound to the
// COMPONENTS_ environment prefix. Every key has a default so AutomaticEnv
// applies to Unmarshal.
func newViper() *viper.Viper {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("base_path", defaults.BasePath)
	v.SetDefault("manifest", defaults.Manifest)
	v.SetDefault("paths.components", defaults.Paths.Components)
	v.SetDefault("paths.assets", defaults.Paths.Assets)
	v.SetDefault("paths.migration", defaults.Paths.Migration)
	v.SetDefault("paths.generator.assets", defaults.Paths.Generator.Assets)
	v.SetDefault("paths.generator.migration", defaults.Paths.Generator.Migration)
	v.SetDefault("paths.generator.config", defaults.Paths.Generator.Config)
	v.SetDefault("scan.enabled", defaults.Scan.Enabled)
	v.SetDefault("scan.paths", defaults.Scan.Paths)
	v.SetDefault("stubs.enabled", defaults.Stubs.Enabled)
	v.SetDefault("stubs.path", defaults.Stubs.Path)
	v.SetDefault("used_file", defaults.UsedFile)
	v.SetDefault("assets_url", defaults.AssetsURL)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// resolveConfigFile picks the file to load. An explicit path must exist; the
// user config and the local components.cue are optional. An empty result
// means defaults only.
func resolveConfigFile(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if !fileExists(opts.ConfigFilePath) {
			return "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(opts.ConfigFilePath).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'components config init' to write a default configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", opts.ConfigFilePath)).
				BuildError()
		}
		return opts.ConfigFilePath, nil
	}

	cfgDir, err := configDirWithOverride(opts.ConfigDirPath)
	if err != nil {
		return "", err
	}
	if cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt); fileExists(cuePath) {
		return cuePath, nil
	}

	localPath := LocalConfigFile
	if opts.BasePath != "" {
		localPath = filepath.Join(opts.BasePath, LocalConfigFile)
	}
	if fileExists(localPath) {
		return localPath, nil
	}

	return "", nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}
	return ConfigDir()
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config schema,
// and merges its contents into Viper.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if len(data) > maxConfigFileSize {
		return fmt.Errorf("config file %s exceeds %d bytes", path, maxConfigFileSize)
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(configSchema)
	if schemaValue.Err() != nil {
		return fmt.Errorf("internal error: failed to compile config schema: %w", schemaValue.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(path))
	if userValue.Err() != nil {
		return formatCUEError(userValue.Err(), path)
	}

	// Unify with schema to validate against #Config definition
	schema := schemaValue.LookupPath(cue.ParsePath("#Config"))
	unified := schema.Unify(userValue)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return formatCUEError(err, path)
	}

	var configMap map[string]any
	if err := unified.Decode(&configMap); err != nil {
		return formatCUEError(err, path)
	}

	// Merge into Viper (preserves defaults, allows env overrides)
	if err := v.MergeConfigMap(configMap); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// formatCUEError flattens a CUE error list into one line per problem with
// its source position.
func formatCUEError(err error, path string) error {
	var lines []string
	for _, e := range cueerrors.Errors(err) {
		msg := e.Error()
		if positions := cueerrors.Positions(e); len(positions) > 0 {
			msg = fmt.Sprintf("%s: %s", positions[0], msg)
		}
		lines = append(lines, msg)
	}
	if len(lines) == 0 {
		return fmt.Errorf("%s: %w", path, err)
	}
	return fmt.Errorf("%s: %s", path, strings.Join(lines, "; "))
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// WriteDefault writes the default configuration to path. Existing files are
// left untouched unless force is set.
func WriteDefault(path string, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("config file already exists: %s", path)
	}
	return Save(DefaultConfig(), path)
}

// Save writes cfg as CUE to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(GenerateCUE(cfg)), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// Components configuration file\n")
	sb.WriteString("// Relative paths resolve against base_path.\n\n")

	fmt.Fprintf(&sb, "base_path: %q\n", cfg.BasePath)
	fmt.Fprintf(&sb, "manifest:  %q\n", cfg.ManifestFile())
	fmt.Fprintf(&sb, "used_file: %q\n", cfg.UsedFile)
	fmt.Fprintf(&sb, "assets_url: %q\n", cfg.AssetsURL)

	sb.WriteString("\npaths: {\n")
	fmt.Fprintf(&sb, "\tcomponents: %q\n", cfg.Paths.Components)
	fmt.Fprintf(&sb, "\tassets:     %q\n", cfg.Paths.Assets)
	fmt.Fprintf(&sb, "\tmigration:  %q\n", cfg.Paths.Migration)
	sb.WriteString("\tgenerator: {\n")
	fmt.Fprintf(&sb, "\t\tassets:    %q\n", cfg.Paths.Generator.Assets)
	fmt.Fprintf(&sb, "\t\tmigration: %q\n", cfg.Paths.Generator.Migration)
	fmt.Fprintf(&sb, "\t\tconfig:    %q\n", cfg.Paths.Generator.Config)
	sb.WriteString("\t}\n")
	sb.WriteString("}\n")

	sb.WriteString("\nscan: {\n")
	fmt.Fprintf(&sb, "\tenabled: %v\n", cfg.Scan.Enabled)
	if len(cfg.Scan.Paths) > 0 {
		sb.WriteString("\tpaths: [\n")
		for _, p := range cfg.Scan.Paths {
			fmt.Fprintf(&sb, "\t\t%q,\n", p)
		}
		sb.WriteString("\t]\n")
	} else {
		sb.WriteString("\tpaths: []\n")
	}
	sb.WriteString("}\n")

	sb.WriteString("\nstubs: {\n")
	fmt.Fprintf(&sb, "\tenabled: %v\n", cfg.Stubs.Enabled)
	fmt.Fprintf(&sb, "\tpath:    %q\n", cfg.Stubs.Path)
	sb.WriteString("}\n")

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose:      %v\n", cfg.UI.Verbose)
	sb.WriteString("}\n")

	return sb.String()
}
