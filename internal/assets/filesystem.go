package assets

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File names inside a page directory.
const (
	MarkupFile = "index.html"
	StyleFile  = "style.css"
	ScriptFile = "script.js"
)

// Page holds the raw fragments of one page directory.
// Style and Script are empty for asset-only pages.
type Page struct {
	Name      string
	HTML      string
	Style     string
	Script    string
	AssetOnly bool
}

// PageLoader reads page directories from an asset root on disk.
type PageLoader struct {
	basePath  string
	assetOnly map[string]bool
}

// NewPageLoader creates a PageLoader rooted at basePath. Pages named in
// assetOnly are loaded from their markup file alone.
// Returns ErrInvalidBasePath if the path is not a valid, readable directory.
func NewPageLoader(basePath string, assetOnly []string) (*PageLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Resolve symlinks so containment checks compare real paths
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}
	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	reserved := make(map[string]bool, len(assetOnly))
	for _, name := range assetOnly {
		reserved[name] = true
	}

	return &PageLoader{basePath: absPath, assetOnly: reserved}, nil
}

// BasePath returns the resolved absolute asset root.
func (l *PageLoader) BasePath() string {
	return l.basePath
}

// IsAssetOnly reports whether the named page skips style and script loading.
func (l *PageLoader) IsAssetOnly(name string) bool {
	return l.assetOnly[name]
}

// Discover returns the names of every directory below the asset root that
// contains index.html, in lexical walk order. A markup file directly in the
// root is not a page.
func (l *PageLoader) Discover() ([]string, error) {
	var names []string

	err := filepath.WalkDir(l.basePath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != MarkupFile {
			return nil
		}
		dir := filepath.Dir(p)
		if dir == l.basePath {
			return nil
		}
		rel, err := filepath.Rel(l.basePath, dir)
		if err != nil {
			return err
		}
		names = append(names, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walking %s: %v", ErrAssetRead, l.basePath, err)
	}

	return names, nil
}

// LoadPage reads the fragments of the named page.
// Returns ErrPageNotFound if index.html is missing and ErrIncompletePage if a
// non asset-only page lacks style.css or script.js.
func (l *PageLoader) LoadPage(name string) (*Page, error) {
	if err := ValidatePageName(name); err != nil {
		return nil, err
	}

	dirPath := filepath.Join(l.basePath, filepath.FromSlash(name))
	if err := l.verifyPathContainment(dirPath + string(filepath.Separator)); err != nil {
		return nil, err
	}

	markup, err := os.ReadFile(filepath.Join(dirPath, MarkupFile)) // #nosec G304 -- path validated above
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q has no %s", ErrPageNotFound, name, MarkupFile)
		}
		return nil, fmt.Errorf("%w: reading %s/%s: %v", ErrAssetRead, name, MarkupFile, err)
	}

	page := &Page{Name: name, HTML: string(markup), AssetOnly: l.IsAssetOnly(name)}
	if page.AssetOnly {
		return page, nil
	}

	if page.Style, err = l.readFragment(dirPath, name, StyleFile); err != nil {
		return nil, err
	}
	if page.Script, err = l.readFragment(dirPath, name, ScriptFile); err != nil {
		return nil, err
	}

	return page, nil
}

func (l *PageLoader) readFragment(dirPath, name, file string) (string, error) {
	content, err := os.ReadFile(filepath.Join(dirPath, file)) // #nosec G304 -- dirPath validated by caller
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %q missing %s", ErrIncompletePage, name, file)
		}
		return "", fmt.Errorf("%w: reading %s/%s: %v", ErrAssetRead, name, file, err)
	}
	return string(content), nil
}

// ReadResource reads a binary resource such as the icon. The path is not
// required to live under any asset root.
func ReadResource(path string) ([]byte, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- resource path comes from build config
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrAssetRead, path, err)
	}
	return data, nil
}

// verifyPathContainment ensures the resolved path is within basePath.
// Resolves symlinks to prevent escape via a link pointing outside basePath.
func (l *PageLoader) verifyPathContainment(p string) error {
	absPath, err := filepath.Abs(p)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}

	// EvalSymlinks fails for missing paths; the subsequent read reports those
	if realPath, err := filepath.EvalSymlinks(absPath); err == nil {
		absPath = realPath + string(filepath.Separator)
	}

	if !strings.HasPrefix(absPath, l.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}

	return nil
}
