package workerbundle

import (
	"context"
	"fmt"

	"github.com/klauspost/compress/gzip"

	"github.com/alnah/go-workerbundle/internal/assets"
)

// Builder orchestrates the worker build pipeline.
type Builder struct {
	cfg      builderConfig
	scripts  ScriptMinifier
	markup   MarkupMinifier
	bundler  Bundler
	archiver Archiver
	injector *ConstantInjector
}

// New creates a Builder with default configuration.
// Use options to swap components (e.g., WithBundler in tests).
func New(opts ...Option) *Builder {
	b := &Builder{
		cfg:      builderConfig{compressionLevel: gzip.DefaultCompression},
		scripts:  NewScriptMinifier(),
		markup:   NewMarkupMinifier(),
		bundler:  NewBundler(),
		injector: NewConstantInjector(),
	}

	for _, opt := range opts {
		opt(b)
	}

	// The archiver follows the configured level unless injected.
	if b.archiver == nil {
		b.archiver = NewZipArchiver(b.cfg.compressionLevel)
	}

	return b
}

// ProcessPages resolves and compresses every page src discovers, one at a
// time in discovery order. The first failure aborts the run.
func (b *Builder) ProcessPages(ctx context.Context, src PageSource, version string) (*PageSet, error) {
	names, err := src.Discover()
	if err != nil {
		return nil, err
	}

	resolver := NewTemplateResolver(b.scripts)
	compressor := NewAssetCompressor(b.markup, b.cfg.compressionLevel)

	set := &PageSet{
		Order:  make([]string, 0, len(names)),
		Assets: make(map[string]*CompressedAsset, len(names)),
	}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := src.LoadPage(name)
		if err != nil {
			return nil, err
		}

		resolved, err := resolver.Resolve(ctx, page, version)
		if err != nil {
			return nil, err
		}

		asset, err := compressor.Compress(ctx, name, resolved)
		if err != nil {
			return nil, err
		}

		set.Order = append(set.Order, name)
		set.Assets[name] = asset
	}

	return set, nil
}

// Constants returns the symbol table injected into the worker script.
func (b *Builder) Constants(pages *PageSet, icon []byte, version string) BuildConstants {
	return b.injector.Inject(pages, icon, version)
}

// BundleWorker bundles the entry script with consts and stamps the result.
// Bundler warnings are returned alongside the artifact.
func (b *Builder) BundleWorker(ctx context.Context, input BuildInput, consts BuildConstants) (*Artifact, []string, error) {
	input = input.withDefaults()

	res, err := b.bundler.Bundle(ctx, BundleRequest{
		EntryPoint: input.EntryPoint,
		Defines:    consts,
		External:   input.External,
		Target:     input.Target,
		OutFile:    input.ScriptName,
		SourceMap:  input.SourceMap,
	})
	if err != nil {
		return nil, nil, err
	}

	artifact := NewArtifact(res.Code, input.Now(), input.EntryName)
	if input.SourceMap {
		artifact.SourceMap = res.SourceMap
	}
	return artifact, res.Warnings, nil
}

// Package writes the artifact to input.OutputDir.
func (b *Builder) Package(artifact *Artifact, input BuildInput) (*Outputs, error) {
	input = input.withDefaults()
	p := NewArtifactPackager(b.archiver, input.OutputDir, input.ScriptName, input.ArchiveName)
	return p.Write(artifact)
}

// Build runs the full pipeline: pages, icon, constants, bundle, package.
// Nothing is written unless every earlier stage succeeds.
func (b *Builder) Build(ctx context.Context, input BuildInput) (*Result, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	input = input.withDefaults()

	src, err := NewPageSource(input.AssetDir, input.AssetOnly)
	if err != nil {
		return nil, err
	}

	pages, err := b.ProcessPages(ctx, src, input.Version)
	if err != nil {
		return nil, err
	}

	icon, err := assets.ReadResource(input.IconPath)
	if err != nil {
		return nil, fmt.Errorf("reading icon: %w", convertAssetError(err))
	}

	consts := b.Constants(pages, icon, input.Version)

	artifact, warnings, err := b.BundleWorker(ctx, input, consts)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outputs, err := b.Package(artifact, input)
	if err != nil {
		return nil, err
	}

	return &Result{
		Pages:        pages,
		Constants:    consts,
		Artifact:     artifact,
		Outputs:      outputs,
		Unreferenced: b.injector.Unreferenced(pages),
		Warnings:     warnings,
	}, nil
}
