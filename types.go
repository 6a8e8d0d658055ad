package workerbundle

import (
	"fmt"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
)

// Default output names used when BuildInput leaves them empty.
const (
	DefaultScriptName  = "worker.js"
	DefaultArchiveName = "worker.zip"
	DefaultEntryName   = "_worker.js" // Cloudflare Pages advanced-mode entry
	DefaultTarget      = "esnext"
)

// PageBundle holds one page directory's raw fragments.
// AssetOnly pages carry no style or script and skip their substitution.
type PageBundle struct {
	Name      string // Directory path relative to the asset root, slash-separated
	RawHTML   string
	RawStyle  string
	RawScript string
	AssetOnly bool
}

// CompressedAsset is the embeddable form of one resolved page.
// DecodeAsset(Payload) reproduces Minified byte for byte.
type CompressedAsset struct {
	Name     string // Originating page name
	Minified string // Minified markup before compression
	Payload  string // base64(gzip(Minified))
}

// PageSet holds the compressed pages of one build in discovery order.
type PageSet struct {
	Order  []string
	Assets map[string]*CompressedAsset
}

// Get returns the named page's asset, or nil if it was not discovered.
func (p *PageSet) Get(name string) *CompressedAsset {
	if p == nil {
		return nil
	}
	return p.Assets[name]
}

// BuildInput contains build parameters.
type BuildInput struct {
	AssetDir   string   // Root holding one directory per page (required)
	AssetOnly  []string // Page names built from markup alone
	IconPath   string   // Icon embedded as __ICON__ (required)
	EntryPoint string   // Worker entry script (required)
	Version    string   // Build version (required)

	External  []string // Specifiers left unresolved by the bundler
	Target    string   // esbuild target, default "esnext"
	SourceMap bool     // Also write {ScriptName}.map

	OutputDir   string // Output directory (required)
	ScriptName  string // default "worker.js"
	ArchiveName string // default "worker.zip"
	EntryName   string // default "_worker.js"

	Now func() time.Time // Clock for the build header, default time.Now
}

// Validate checks that required fields are set.
func (in *BuildInput) Validate() error {
	required := []struct{ field, value string }{
		{"AssetDir", in.AssetDir},
		{"IconPath", in.IconPath},
		{"EntryPoint", in.EntryPoint},
		{"Version", in.Version},
		{"OutputDir", in.OutputDir},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidInput, r.field)
		}
	}
	for _, name := range []string{in.ScriptName, in.ArchiveName, in.EntryName} {
		if strings.ContainsAny(name, "/\\") {
			return fmt.Errorf("%w: output name %q must not contain a path separator", ErrInvalidInput, name)
		}
	}
	return nil
}

// withDefaults returns a copy with empty optional fields filled in.
func (in BuildInput) withDefaults() BuildInput {
	if in.ScriptName == "" {
		in.ScriptName = DefaultScriptName
	}
	if in.ArchiveName == "" {
		in.ArchiveName = DefaultArchiveName
	}
	if in.EntryName == "" {
		in.EntryName = DefaultEntryName
	}
	if in.Target == "" {
		in.Target = DefaultTarget
	}
	if in.Now == nil {
		in.Now = time.Now
	}
	return in
}

// Result holds everything a build produced.
type Result struct {
	Pages     *PageSet
	Constants BuildConstants
	Artifact  *Artifact
	Outputs   *Outputs

	// Unreferenced lists discovered pages that no constant embeds.
	Unreferenced []string
	// Warnings carries bundler warnings.
	Warnings []string
}

// Option configures a Builder.
type Option func(*Builder)

// builderConfig holds internal configuration for Builder.
type builderConfig struct {
	compressionLevel int
}

// WithCompressionLevel sets the gzip and zip deflate level.
// Panics if level is outside gzip.HuffmanOnly..gzip.BestCompression
// (programmer error, similar to time.NewTicker).
func WithCompressionLevel(level int) Option {
	if level < gzip.HuffmanOnly || level > gzip.BestCompression {
		panic("workerbundle: WithCompressionLevel level out of range")
	}
	return func(b *Builder) {
		b.cfg.compressionLevel = level
	}
}

// WithScriptMinifier replaces the page script minifier.
func WithScriptMinifier(m ScriptMinifier) Option {
	return func(b *Builder) { b.scripts = m }
}

// WithMarkupMinifier replaces the page markup minifier.
func WithMarkupMinifier(m MarkupMinifier) Option {
	return func(b *Builder) { b.markup = m }
}

// WithBundler replaces the worker bundler.
func WithBundler(bn Bundler) Option {
	return func(b *Builder) { b.bundler = bn }
}

// WithArchiver replaces the archive writer.
func WithArchiver(a Archiver) Option {
	return func(b *Builder) { b.archiver = a }
}
