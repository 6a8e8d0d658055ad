package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "workerbundle.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestDefaultConfig - Conventional layout
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Entry != "src/worker.ts" {
		t.Errorf("Entry = %q, want src/worker.ts", cfg.Entry)
	}
	if cfg.Assets.Dir != "src/assets" {
		t.Errorf("Assets.Dir = %q, want src/assets", cfg.Assets.Dir)
	}
	if !reflect.DeepEqual(cfg.Assets.AssetOnly, []string{"error"}) {
		t.Errorf("Assets.AssetOnly = %v, want [error]", cfg.Assets.AssetOnly)
	}
	if !reflect.DeepEqual(cfg.Bundle.External, []string{"cloudflare:sockets"}) {
		t.Errorf("Bundle.External = %v, want [cloudflare:sockets]", cfg.Bundle.External)
	}
	if cfg.Output.EntryName != "_worker.js" {
		t.Errorf("Output.EntryName = %q, want _worker.js", cfg.Output.EntryName)
	}
	if got := cfg.Output.ScriptPath(); got != filepath.Join("dist", "worker.js") {
		t.Errorf("ScriptPath() = %q", got)
	}
	if got := cfg.Output.ArchivePath(); got != filepath.Join("dist", "worker.zip") {
		t.Errorf("ArchivePath() = %q", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate - Field rules
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"defaults", func(c *Config) {}, nil},
		{"explicit version", func(c *Config) { c.Version = "1.2.3" }, nil},
		{"empty entry", func(c *Config) { c.Entry = "" }, ErrFieldRequired},
		{"blank asset dir", func(c *Config) { c.Assets.Dir = "  " }, ErrFieldRequired},
		{"empty icon", func(c *Config) { c.Assets.Icon = "" }, ErrFieldRequired},
		{"empty entry name", func(c *Config) { c.Output.EntryName = "" }, ErrFieldRequired},
		{"no version source", func(c *Config) { c.PackageFile = "" }, ErrFieldRequired},
		{"version without package file", func(c *Config) { c.PackageFile = ""; c.Version = "1.0.0" }, nil},
		{"version too long", func(c *Config) { c.Version = strings.Repeat("1", MaxVersionLength+1) }, ErrFieldTooLong},
		{"version with newline", func(c *Config) { c.Version = "1.0\n0" }, ErrInvalidField},
		{"entry name with separator", func(c *Config) { c.Output.EntryName = "a/_worker.js" }, ErrInvalidField},
		{"script name with backslash", func(c *Config) { c.Output.Script = `a\worker.js` }, ErrInvalidField},
		{"script equals archive", func(c *Config) { c.Output.Archive = c.Output.Script }, ErrInvalidField},
		{"blank external", func(c *Config) { c.Bundle.External = []string{"cloudflare:sockets", ""} }, ErrFieldRequired},
		{"unknown target", func(c *Config) { c.Bundle.Target = "es5" }, ErrInvalidField},
		{"target case-insensitive", func(c *Config) { c.Bundle.Target = "ES2022" }, nil},
		{"empty target", func(c *Config) { c.Bundle.Target = "" }, nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File loading
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("partial file keeps defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, "version: \"2.1.0\"\noutput:\n  dir: build\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Version != "2.1.0" {
			t.Errorf("Version = %q, want 2.1.0", cfg.Version)
		}
		if cfg.Output.Dir != "build" {
			t.Errorf("Output.Dir = %q, want build", cfg.Output.Dir)
		}
		if cfg.Output.EntryName != "_worker.js" {
			t.Errorf("Output.EntryName = %q, want default _worker.js", cfg.Output.EntryName)
		}
		if cfg.Entry != "src/worker.ts" {
			t.Errorf("Entry = %q, want default", cfg.Entry)
		}
	})

	t.Run("full file", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, `
entry: worker/main.ts
assets:
  dir: pages
  icon: pages/icon.ico
  assetOnly: [error, maintenance]
bundle:
  external: ["cloudflare:sockets", "cloudflare:workers"]
  target: es2022
  sourcemap: true
output:
  dir: out
  script: app.js
  archive: app.zip
  entryName: _worker.js
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if !reflect.DeepEqual(cfg.Assets.AssetOnly, []string{"error", "maintenance"}) {
			t.Errorf("AssetOnly = %v", cfg.Assets.AssetOnly)
		}
		if len(cfg.Bundle.External) != 2 || !cfg.Bundle.SourceMap {
			t.Errorf("Bundle = %+v", cfg.Bundle)
		}
		if cfg.Output.Script != "app.js" {
			t.Errorf("Output.Script = %q, want app.js", cfg.Output.Script)
		}
	})

	t.Run("unknown key rejected", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, "entyr: src/worker.ts\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		t.Parallel()

		path := writeConfigFile(t, "bundle:\n  target: es3\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidField) {
			t.Errorf("LoadConfig() error = %v, want ErrInvalidField", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("LoadConfig(\"\") error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("no-such-config-abc123")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestFindDefault - Working directory lookup
// ---------------------------------------------------------------------------

func TestFindDefault(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if got := FindDefault(dir); got != "" {
		t.Errorf("FindDefault(empty dir) = %q, want empty", got)
	}

	want := filepath.Join(dir, "workerbundle.yml")
	if err := os.WriteFile(want, []byte("version: 1.0.0\n"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if got := FindDefault(dir); got != want {
		t.Errorf("FindDefault() = %q, want %q", got, want)
	}
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("ci")
	if len(paths) < 2 || paths[0] != "ci.yaml" || paths[1] != "ci.yml" {
		t.Fatalf("SearchPaths() = %v, want local candidates first", paths)
	}
	for _, p := range paths[2:] {
		if !strings.Contains(filepath.ToSlash(p), "go-workerbundle/ci.") {
			t.Errorf("user candidate %q not under go-workerbundle", p)
		}
	}
}
