package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-workerbundle/internal/fileutil"
	"github.com/alnah/go-workerbundle/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrFieldRequired   = errors.New("required field is empty")
	ErrInvalidField    = errors.New("invalid field value")
)

// DefaultConfigName is looked up in the working directory when no config is given.
const DefaultConfigName = "workerbundle"

// Field length limits.
const (
	MaxVersionLength   = 64   // "1.2.3-rc.1+build.5"
	MaxPathLength      = 4096 // PATH_MAX on Linux
	MaxEntryNameLength = 255  // single path component
	MaxSpecifierLength = 256  // "cloudflare:sockets"
)

// SupportedTargets lists the accepted bundle.target values.
var SupportedTargets = []string{"esnext", "es2020", "es2021", "es2022", "es2023"}

// Config holds all configuration for a worker build.
type Config struct {
	Version     string       `yaml:"version"`     // Empty = read from packageFile
	PackageFile string       `yaml:"packageFile"` // package.json holding "version"
	Entry       string       `yaml:"entry"`       // Worker entry script
	Assets      AssetsConfig `yaml:"assets"`
	Bundle      BundleConfig `yaml:"bundle"`
	Output      OutputConfig `yaml:"output"`
}

// AssetsConfig defines where page templates and the icon live.
type AssetsConfig struct {
	Dir       string   `yaml:"dir"`       // Root holding one directory per page
	Icon      string   `yaml:"icon"`      // Binary icon embedded as __ICON__
	AssetOnly []string `yaml:"assetOnly"` // Pages built from markup alone
}

// BundleConfig defines options passed to the bundler.
type BundleConfig struct {
	External  []string `yaml:"external"`  // Specifiers left unresolved
	Target    string   `yaml:"target"`    // "esnext", "es2022", ...
	SourceMap bool     `yaml:"sourcemap"` // Write {script}.map next to the script
}

// OutputConfig defines output destinations.
type OutputConfig struct {
	Dir       string `yaml:"dir"`
	Script    string `yaml:"script"`    // Plain bundled script file name
	Archive   string `yaml:"archive"`   // Zip archive file name
	EntryName string `yaml:"entryName"` // Sole entry inside the archive
}

// ScriptPath returns the full path of the plain script output.
func (o OutputConfig) ScriptPath() string {
	return filepath.Join(o.Dir, o.Script)
}

// ArchivePath returns the full path of the archive output.
func (o OutputConfig) ArchivePath() string {
	return filepath.Join(o.Dir, o.Archive)
}

// DefaultConfig returns the conventional Cloudflare Pages worker layout.
func DefaultConfig() *Config {
	return &Config{
		PackageFile: "package.json",
		Entry:       "src/worker.ts",
		Assets: AssetsConfig{
			Dir:       "src/assets",
			Icon:      "src/assets/favicon.ico",
			AssetOnly: []string{"error"},
		},
		Bundle: BundleConfig{
			External: []string{"cloudflare:sockets"},
			Target:   "esnext",
		},
		Output: OutputConfig{
			Dir:       "dist",
			Script:    "worker.js",
			Archive:   "worker.zip",
			EntryName: "_worker.js",
		},
	}
}

// Validate checks required fields, lengths, and enumerated values.
// Called automatically by LoadConfig, and by the CLI after flags and
// environment overrides are merged.
func (c *Config) Validate() error {
	required := []struct{ field, value string }{
		{"entry", c.Entry},
		{"assets.dir", c.Assets.Dir},
		{"assets.icon", c.Assets.Icon},
		{"output.dir", c.Output.Dir},
		{"output.script", c.Output.Script},
		{"output.archive", c.Output.Archive},
		{"output.entryName", c.Output.EntryName},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s", ErrFieldRequired, r.field)
		}
		if err := validateFieldLength(r.field, r.value, MaxPathLength); err != nil {
			return err
		}
	}

	if c.Version == "" && c.PackageFile == "" {
		return fmt.Errorf("%w: version or packageFile", ErrFieldRequired)
	}
	if err := ValidateVersion(c.Version); err != nil {
		return err
	}

	for _, name := range []struct{ field, value string }{
		{"output.script", c.Output.Script},
		{"output.archive", c.Output.Archive},
		{"output.entryName", c.Output.EntryName},
	} {
		if err := validateFieldLength(name.field, name.value, MaxEntryNameLength); err != nil {
			return err
		}
		if strings.ContainsAny(name.value, "/\\\x00") {
			return fmt.Errorf("%w: %s must be a file name, got %q", ErrInvalidField, name.field, name.value)
		}
	}
	if c.Output.Script == c.Output.Archive {
		return fmt.Errorf("%w: output.script and output.archive both %q", ErrInvalidField, c.Output.Script)
	}

	for i, ext := range c.Bundle.External {
		field := fmt.Sprintf("bundle.external[%d]", i)
		if strings.TrimSpace(ext) == "" {
			return fmt.Errorf("%w: %s", ErrFieldRequired, field)
		}
		if err := validateFieldLength(field, ext, MaxSpecifierLength); err != nil {
			return err
		}
	}

	if c.Bundle.Target != "" && !isSupportedTarget(c.Bundle.Target) {
		return fmt.Errorf("%w: bundle.target %q (must be one of %s)",
			ErrInvalidField, c.Bundle.Target, strings.Join(SupportedTargets, ", "))
	}

	return nil
}

// ValidateVersion rejects versions that are too long or carry control characters.
// An empty version is valid here; it means "read from packageFile".
func ValidateVersion(v string) error {
	if err := validateFieldLength("version", v, MaxVersionLength); err != nil {
		return err
	}
	for _, r := range v {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("%w: version contains control character %q", ErrInvalidField, r)
		}
	}
	return nil
}

func isSupportedTarget(target string) bool {
	for _, t := range SupportedTargets {
		if strings.EqualFold(t, target) {
			return true
		}
	}
	return false
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindDefault returns the path of DefaultConfigName in dir, or "" if absent.
func FindDefault(dir string) string {
	for _, ext := range []string{".yaml", ".yml"} {
		p := filepath.Join(dir, DefaultConfigName+ext)
		if fileutil.FileExists(p) {
			return p
		}
	}
	return ""
}

// SearchPaths returns the files tried, in order, for a config name that is
// not a path: name.yaml and name.yml in the working directory, then in the
// user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-workerbundle", name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
