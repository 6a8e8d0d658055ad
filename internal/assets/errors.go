package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrPageNotFound indicates the page directory has no index.html.
	ErrPageNotFound = errors.New("page not found")

	// ErrIncompletePage indicates a page that needs style.css and script.js
	// is missing one of them.
	ErrIncompletePage = errors.New("page missing required file")

	// ErrInvalidPageName indicates the page name is empty, absolute, or
	// contains traversal segments.
	ErrInvalidPageName = errors.New("invalid page name")

	// ErrInvalidBasePath indicates the configured asset root is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error occurred while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")
)
