package workerbundle

import (
	"context"
	"fmt"
	"strings"

	"github.com/alnah/go-workerbundle/internal/assets"
)

// Placeholders recognized in a page's index.html.
const (
	PlaceholderVersion = "__VERSION__"
	PlaceholderStyle   = "__STYLE__"
	PlaceholderScript  = "__SCRIPT__"
)

// PageSource defines the contract for discovering and reading pages.
// Implementations may read from disk, an embedded FS, or memory.
type PageSource interface {
	// Discover returns page names in the order they are processed.
	Discover() ([]string, error)

	// LoadPage reads one page's fragments.
	// Returns ErrPageNotFound or ErrIncompletePage for missing files.
	LoadPage(name string) (*PageBundle, error)
}

// NewPageSource creates a PageSource reading page directories under dir.
// Pages named in assetOnly are read from index.html alone.
// Returns ErrInvalidAssetPath if dir is not a readable directory.
func NewPageSource(dir string, assetOnly []string) (PageSource, error) {
	loader, err := assets.NewPageLoader(dir, assetOnly)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &pageLoaderAdapter{loader: loader}, nil
}

// pageLoaderAdapter wraps the internal PageLoader to return public types.
type pageLoaderAdapter struct {
	loader *assets.PageLoader
}

func (a *pageLoaderAdapter) Discover() ([]string, error) {
	names, err := a.loader.Discover()
	if err != nil {
		return nil, convertAssetError(err)
	}
	return names, nil
}

func (a *pageLoaderAdapter) LoadPage(name string) (*PageBundle, error) {
	page, err := a.loader.LoadPage(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &PageBundle{
		Name:      page.Name,
		RawHTML:   page.HTML,
		RawStyle:  page.Style,
		RawScript: page.Script,
		AssetOnly: page.AssetOnly,
	}, nil
}

// TemplateResolver fills a page's placeholders.
type TemplateResolver struct {
	scripts ScriptMinifier
}

// NewTemplateResolver creates a TemplateResolver using scripts to minify
// page scripts before substitution.
func NewTemplateResolver(scripts ScriptMinifier) *TemplateResolver {
	return &TemplateResolver{scripts: scripts}
}

// Resolve returns the page markup with every placeholder occurrence replaced.
// __VERSION__ is always replaced. Unless the page is asset-only, __STYLE__
// becomes a <style> element holding the raw style text and __SCRIPT__ the
// minified script. Substitution is a single pass: inserted text is never
// scanned for placeholders.
func (r *TemplateResolver) Resolve(ctx context.Context, page *PageBundle, version string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	pairs := []string{PlaceholderVersion, version}

	if !page.AssetOnly {
		script, err := r.scripts.MinifyScript(ctx, page.RawScript)
		if err != nil {
			return "", fmt.Errorf("%w: %s/%s: %v", ErrMinify, page.Name, assets.ScriptFile, err)
		}
		pairs = append(pairs,
			PlaceholderStyle, "<style>"+page.RawStyle+"</style>",
			PlaceholderScript, script,
		)
	}

	return strings.NewReplacer(pairs...).Replace(page.RawHTML), nil
}
