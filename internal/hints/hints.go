// Package hints provides actionable error hints for common build failures.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"
)

// InCI reports whether the process runs under a known CI system.
var InCI = func() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and creating a config in ~/.config/go-workerbundle/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml or run 'workerbundle init'"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-workerbundle") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForAssetDir returns hints when the asset root is missing or unreadable.
func ForAssetDir() string {
	hints := []string{"run from the project root or set assets.dir"}
	if InCI() && os.Getenv("WORKERBUNDLE_ASSET_DIR") == "" {
		hints = append(hints, "set WORKERBUNDLE_ASSET_DIR in the CI job")
	}
	return formatHints(hints)
}

// ForIncompletePage returns hints for a page lacking style.css or script.js.
func ForIncompletePage(assetOnly []string) string {
	hint := "add style.css and script.js, or list the page under assets.assetOnly"
	if len(assetOnly) > 0 {
		hint += " (currently: " + strings.Join(assetOnly, ", ") + ")"
	}
	return format(hint)
}

// ForVersion returns hints when no version can be resolved.
func ForVersion() string {
	return format("add \"version\" to package.json, set version in workerbundle.yaml, or use --version-string")
}

// ForBundle returns hints for bundler failures.
func ForBundle(external []string) string {
	if len(external) == 0 {
		return format("platform modules must be listed under bundle.external")
	}
	return format("only " + strings.Join(external, ", ") + " are left unresolved; add other platform modules to bundle.external")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
