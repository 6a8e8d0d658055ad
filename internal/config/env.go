package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every recognized environment variable.
const EnvPrefix = "WORKERBUNDLE_"

// EnvOverrides holds configuration read from WORKERBUNDLE_* variables.
// Zero values mean "not set"; SourceMap is a pointer so false can be forced.
type EnvOverrides struct {
	ConfigPath string   `env:"CONFIG"`
	Version    string   `env:"VERSION"`
	Entry      string   `env:"ENTRY"`
	AssetDir   string   `env:"ASSET_DIR"`
	Icon       string   `env:"ICON"`
	OutputDir  string   `env:"OUTPUT_DIR"`
	External   []string `env:"EXTERNAL" envSeparator:","`
	Target     string   `env:"TARGET"`
	SourceMap  *bool    `env:"SOURCEMAP"`
}

// knownEnvVars lists valid WORKERBUNDLE_* variables for typo detection.
var knownEnvVars = map[string]bool{
	EnvPrefix + "CONFIG":     true,
	EnvPrefix + "VERSION":    true,
	EnvPrefix + "ENTRY":      true,
	EnvPrefix + "ASSET_DIR":  true,
	EnvPrefix + "ICON":       true,
	EnvPrefix + "OUTPUT_DIR": true,
	EnvPrefix + "EXTERNAL":   true,
	EnvPrefix + "TARGET":     true,
	EnvPrefix + "SOURCEMAP":  true,
}

// LoadEnv parses overrides from the process environment.
func LoadEnv() (*EnvOverrides, error) {
	return LoadEnvFrom(EnvironMap(os.Environ()))
}

// LoadEnvFrom parses overrides from the given variables instead of the
// process environment.
func LoadEnvFrom(vars map[string]string) (*EnvOverrides, error) {
	var o EnvOverrides
	opts := env.Options{Prefix: EnvPrefix, Environment: vars}
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return nil, fmt.Errorf("%w: environment: %v", ErrConfigParse, err)
	}
	return &o, nil
}

// UnknownEnvVars returns WORKERBUNDLE_* names in vars that are not recognized.
func UnknownEnvVars(vars map[string]string) []string {
	var unknown []string
	for name := range vars {
		if strings.HasPrefix(name, EnvPrefix) && !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// Apply merges set overrides into cfg. ConfigPath is consumed by the caller
// before the file is loaded and is not applied here.
func (o *EnvOverrides) Apply(cfg *Config) {
	if o.Version != "" {
		cfg.Version = o.Version
	}
	if o.Entry != "" {
		cfg.Entry = o.Entry
	}
	if o.AssetDir != "" {
		cfg.Assets.Dir = o.AssetDir
	}
	if o.Icon != "" {
		cfg.Assets.Icon = o.Icon
	}
	if o.OutputDir != "" {
		cfg.Output.Dir = o.OutputDir
	}
	if len(o.External) > 0 {
		cfg.Bundle.External = o.External
	}
	if o.Target != "" {
		cfg.Bundle.Target = o.Target
	}
	if o.SourceMap != nil {
		cfg.Bundle.SourceMap = *o.SourceMap
	}
}

// EnvironMap converts os.Environ-style "KEY=value" pairs to a map.
func EnvironMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return m
}
