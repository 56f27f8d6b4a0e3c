// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultManifestFile is the manifest file name looked up in each component directory.
	DefaultManifestFile = "component.json"
	// DefaultStubsPath is the stub directory used when stubs are enabled and no path is set.
	DefaultStubsPath = "vendor/consigliere/components/src/Commands/stubs"
	// DefaultUsedFile is the state file holding the currently used component.
	DefaultUsedFile = "storage/app/components/components.used"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidFilesystemPath is returned when a FilesystemPath value is whitespace-only.
	ErrInvalidFilesystemPath = errors.New("invalid filesystem path")
	// ErrInvalidManifestFile is returned when the manifest file name is empty or contains a separator.
	ErrInvalidManifestFile = errors.New("invalid manifest file name")
	// ErrInvalidPathsConfig is the sentinel error wrapped by InvalidPathsConfigError.
	ErrInvalidPathsConfig = errors.New("invalid paths config")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// FilesystemPath is a configured path. Relative values resolve against
	// Config.BasePath. The zero value is valid where a field is optional;
	// whitespace-only values are never valid.
	FilesystemPath string

	// InvalidFilesystemPathError is returned when a FilesystemPath is whitespace-only.
	InvalidFilesystemPathError struct {
		Field string
		Value FilesystemPath
	}

	// InvalidManifestFileError is returned when the manifest file name is unusable.
	InvalidManifestFileError struct {
		Value string
	}

	// InvalidPathsConfigError is returned when a PathsConfig has invalid fields.
	InvalidPathsConfigError struct {
		FieldErrors []error
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// BasePath is the host application root.
		BasePath FilesystemPath `json:"base_path" mapstructure:"base_path"`
		// Manifest is the manifest file name inside each component directory.
		Manifest string `json:"manifest" mapstructure:"manifest"`
		// Paths configures component, asset and migration locations.
		Paths PathsConfig `json:"paths" mapstructure:"paths"`
		// Scan configures extra scan roots.
		Scan ScanConfig `json:"scan" mapstructure:"scan"`
		// Stubs configures the generator stub directory.
		Stubs StubsConfig `json:"stubs" mapstructure:"stubs"`
		// UsedFile is the state file for the currently used component.
		UsedFile FilesystemPath `json:"used_file" mapstructure:"used_file"`
		// AssetsURL is the URL prefix for component assets.
		AssetsURL string `json:"assets_url" mapstructure:"assets_url"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`

		// source is the file the configuration was read from, empty for defaults.
		source string
	}

	// PathsConfig names the host directories components are read from and published to.
	PathsConfig struct {
		Components FilesystemPath  `json:"components" mapstructure:"components"`
		Assets     FilesystemPath  `json:"assets" mapstructure:"assets"`
		Migration  FilesystemPath  `json:"migration" mapstructure:"migration"`
		Generator  GeneratorConfig `json:"generator" mapstructure:"generator"`
	}

	// GeneratorConfig is the resource layout inside a component, relative to its root.
	GeneratorConfig struct {
		Assets    string `json:"assets" mapstructure:"assets"`
		Migration string `json:"migration" mapstructure:"migration"`
		Config    string `json:"config" mapstructure:"config"`
	}

	// ScanConfig adds scan roots beyond Paths.Components.
	ScanConfig struct {
		Enabled bool     `json:"enabled" mapstructure:"enabled"`
		Paths   []string `json:"paths" mapstructure:"paths"`
	}

	// StubsConfig controls where generator stubs are read from.
	StubsConfig struct {
		Enabled bool   `json:"enabled" mapstructure:"enabled"`
		Path    string `json:"path" mapstructure:"path"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme ("auto", "dark", "light")
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BasePath: ".",
		Manifest: DefaultManifestFile,
		Paths: PathsConfig{
			Components: "components",
			Assets:     "public/components",
			Migration:  "database/migrations",
			Generator: GeneratorConfig{
				Assets:    "Resources/assets",
				Migration: "Database/Migrations",
				Config:    "Config",
			},
		},
		Scan: ScanConfig{
			Enabled: false,
			Paths:   []string{},
		},
		Stubs: StubsConfig{
			Enabled: false,
			Path:    DefaultStubsPath,
		},
		UsedFile:  DefaultUsedFile,
		AssetsURL: "/components",
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}

// Source returns the file the configuration was loaded from, or "" when only
// defaults and environment overrides apply.
func (c *Config) Source() string { return c.source }

// Resolve returns p joined onto BasePath unless it is already absolute.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(string(c.BasePath), p)
}

// ComponentsPath returns the resolved default components root.
func (c *Config) ComponentsPath() string { return c.Resolve(string(c.Paths.Components)) }

// AssetsPath returns the resolved public assets root.
func (c *Config) AssetsPath() string { return c.Resolve(string(c.Paths.Assets)) }

// MigrationPath returns the resolved host migrations directory.
func (c *Config) MigrationPath() string { return c.Resolve(string(c.Paths.Migration)) }

// UsedFilePath returns the resolved used-component state file.
func (c *Config) UsedFilePath() string { return c.Resolve(string(c.UsedFile)) }

// ScanPaths returns the resolved extra scan roots, or nil when scanning is disabled.
func (c *Config) ScanPaths() []string {
	if !c.Scan.Enabled {
		return nil
	}
	out := make([]string, 0, len(c.Scan.Paths))
	for _, p := range c.Scan.Paths {
		out = append(out, c.Resolve(p))
	}
	return out
}

// StubsPath returns the resolved stub directory when stubs are enabled, else "".
func (c *Config) StubsPath() string {
	if !c.Stubs.Enabled {
		return ""
	}
	p := c.Stubs.Path
	if p == "" {
		p = DefaultStubsPath
	}
	return c.Resolve(p)
}

// ManifestFile returns the manifest file name, defaulting to component.json.
func (c *Config) ManifestFile() string {
	if c.Manifest == "" {
		return DefaultManifestFile
	}
	return c.Manifest
}

// IsValid returns whether the Config has valid fields.
// It delegates to BasePath, Paths, UsedFile and UI validation; bool fields
// need no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.BasePath.isValidField("base_path"); !valid {
		errs = append(errs, fieldErrs...)
	}
	if c.Manifest != "" && strings.ContainsAny(c.Manifest, `/\`) {
		errs = append(errs, &InvalidManifestFileError{Value: c.Manifest})
	}
	if valid, fieldErrs := c.Paths.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UsedFile.isValidField("used_file"); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	if len(e.FieldErrors) == 1 {
		return fmt.Sprintf("invalid config: %v", e.FieldErrors[0])
	}
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// IsValid returns whether every configured path is usable.
func (c PathsConfig) IsValid() (bool, []error) {
	var errs []error
	fields := []struct {
		name string
		path FilesystemPath
	}{
		{"paths.components", c.Components},
		{"paths.assets", c.Assets},
		{"paths.migration", c.Migration},
	}
	for _, f := range fields {
		if valid, fieldErrs := f.path.isValidField(f.name); !valid {
			errs = append(errs, fieldErrs...)
		}
	}
	if len(errs) > 0 {
		return false, []error{&InvalidPathsConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidPathsConfigError.
func (e *InvalidPathsConfigError) Error() string {
	return fmt.Sprintf("invalid paths config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidPathsConfig for errors.Is() compatibility.
func (e *InvalidPathsConfigError) Unwrap() error { return ErrInvalidPathsConfig }

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		return false, []error{&InvalidUIConfigError{FieldErrors: fieldErrs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// String returns the string representation of the FilesystemPath.
func (p FilesystemPath) String() string { return string(p) }

// IsValid returns whether the FilesystemPath is valid. The zero value is
// valid; whitespace-only values are not.
func (p FilesystemPath) IsValid() (bool, []error) { return p.isValidField("") }

func (p FilesystemPath) isValidField(field string) (bool, []error) {
	if p != "" && strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidFilesystemPathError{Field: field, Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidFilesystemPathError.
func (e *InvalidFilesystemPathError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid filesystem path %q: must not be whitespace-only", string(e.Value))
	}
	return fmt.Sprintf("invalid %s %q: must not be whitespace-only", e.Field, string(e.Value))
}

// Unwrap returns ErrInvalidFilesystemPath for errors.Is() compatibility.
func (e *InvalidFilesystemPathError) Unwrap() error { return ErrInvalidFilesystemPath }

// Error implements the error interface for InvalidManifestFileError.
func (e *InvalidManifestFileError) Error() string {
	return fmt.Sprintf("invalid manifest file name %q: must be a plain file name", e.Value)
}

// Unwrap returns ErrInvalidManifestFile for errors.Is() compatibility.
func (e *InvalidManifestFileError) Unwrap() error { return ErrInvalidManifestFile }

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes.
// The zero value is treated as auto.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case "", ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}
