package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// Sentinel errors for version resolution.
var (
	ErrPackageRead     = errors.New("failed to read package file")
	ErrPackageParse    = errors.New("package file is not valid JSON")
	ErrVersionNotFound = errors.New("package file has no string version field")
)

// ResolveVersion returns the configured version, or the "version" field of
// PackageFile when none is configured. The result is validated.
func (c *Config) ResolveVersion() (string, error) {
	if c.Version != "" {
		return c.Version, ValidateVersion(c.Version)
	}

	data, err := os.ReadFile(c.PackageFile) // #nosec G304 -- package path comes from build config
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrPackageRead, err)
	}

	version, err := VersionFromPackageJSON(data)
	if err != nil {
		return "", fmt.Errorf("%s: %w", c.PackageFile, err)
	}
	return version, nil
}

// VersionFromPackageJSON extracts the top-level "version" string.
func VersionFromPackageJSON(data []byte) (string, error) {
	if !gjson.ValidBytes(data) {
		return "", ErrPackageParse
	}

	v := gjson.GetBytes(data, "version")
	if v.Type != gjson.String || v.Str == "" {
		return "", ErrVersionNotFound
	}
	if err := ValidateVersion(v.Str); err != nil {
		return "", err
	}
	return v.Str, nil
}
