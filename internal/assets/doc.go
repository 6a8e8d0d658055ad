// Package assets discovers and reads the page directories of a worker asset tree.
//
// # Directory Structure
//
// Each page lives in its own directory under the asset root:
//
//	{basePath}/
//	├── favicon.ico              # icon resource, read once
//	├── panel/
//	│   ├── index.html           # markup with __VERSION__, __STYLE__, __SCRIPT__
//	│   ├── style.css
//	│   └── script.js
//	└── error/
//	    └── index.html           # asset-only page: markup only
//
// A directory qualifies as a page when it contains index.html. Pages whose name
// is in the asset-only list never read style.css or script.js; every other page
// requires both.
//
// # Security
//
// Page names are validated before use and resolved paths must stay inside
// basePath, including after symlink resolution.
package assets
