package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	workerbundle "github.com/alnah/go-workerbundle"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment and project fixtures
// ---------------------------------------------------------------------------

var testNow = time.Date(2025, 2, 3, 4, 5, 6, 789_000_000, time.UTC)

// stubBundler returns a fixed module that echoes the version literal.
type stubBundler struct {
	request workerbundle.BundleRequest
	err     error
}

func (s *stubBundler) Bundle(_ context.Context, req workerbundle.BundleRequest) (*workerbundle.BundleResult, error) {
	s.request = req
	if s.err != nil {
		return nil, s.err
	}
	return &workerbundle.BundleResult{
		Code:     "export const version = " + req.Defines[workerbundle.SymbolVersion] + ";\n",
		Warnings: []string{"worker.ts:1:1: example warning"},
	}, nil
}

// testEnv returns an Environment with captured output, a fixed clock, and
// the given environment variables.
func testEnv(bundler workerbundle.Bundler, vars ...string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	env := &Environment{
		Now:     func() time.Time { return testNow },
		Stdout:  stdout,
		Stderr:  stderr,
		Environ: func() []string { return vars },
		NewBuilder: func() Builder {
			if bundler == nil {
				return workerbundle.New()
			}
			return workerbundle.New(workerbundle.WithBundler(bundler))
		},
	}
	return env, stdout, stderr
}

// testProject lays out a minimal project and returns its root.
func testProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"package.json":                 `{"name":"demo","version":"0.9.1"}`,
		"src/worker.ts":                "declare const __VERSION__: string;\nexport default { version: __VERSION__ };\n",
		"src/assets/favicon.ico":       "ICON",
		"src/assets/panel/index.html":  "<html>__STYLE__<body>__VERSION__<script>__SCRIPT__</script></body></html>",
		"src/assets/panel/style.css":   "body{margin:0}",
		"src/assets/panel/script.js":   "run();",
		"src/assets/error/index.html":  "<p>__VERSION__</p>",
		"src/assets/orphan/index.html": "<p>x</p>",
		"src/assets/orphan/style.css":  "",
		"src/assets/orphan/script.js":  "",
	}
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// projectArgs returns build flags pointing every path into root.
func projectArgs(root string, extra ...string) []string {
	args := []string{
		"workerbundle", "build",
		"--entry", filepath.Join(root, "src", "worker.ts"),
		"--asset-dir", filepath.Join(root, "src", "assets"),
		"--icon", filepath.Join(root, "src", "assets", "favicon.ico"),
		"--output", filepath.Join(root, "dist"),
		"--version-string", "1.2.3",
	}
	return append(args, extra...)
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "workerbundle.yaml")
	if err := os.WriteFile(path, []byte(strings.TrimLeft(content, "\n")), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
