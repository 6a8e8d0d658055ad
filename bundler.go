package workerbundle

import (
	"context"
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// BundleRequest describes one bundling run.
type BundleRequest struct {
	EntryPoint string
	Defines    BuildConstants // Symbol -> literal, substituted at compile time
	External   []string       // Specifiers provided by the platform at runtime
	Target     string         // "esnext", "es2022", ...
	OutFile    string         // Output name; used to link the source map
	SourceMap  bool
}

// BundleResult holds bundler output. Nothing is written to disk.
type BundleResult struct {
	Code      string
	SourceMap string // Empty unless requested
	Warnings  []string
}

// Bundler defines the contract for the external bundling step.
type Bundler interface {
	Bundle(ctx context.Context, req BundleRequest) (*BundleResult, error)
}

// esbuildBundler bundles for the browser as a single ES module.
type esbuildBundler struct{}

// NewBundler returns the default esbuild-backed bundler.
func NewBundler() Bundler {
	return esbuildBundler{}
}

var esbuildTargets = map[string]api.Target{
	"esnext": api.ESNext,
	"es2020": api.ES2020,
	"es2021": api.ES2021,
	"es2022": api.ES2022,
	"es2023": api.ES2023,
}

func (esbuildBundler) Bundle(ctx context.Context, req BundleRequest) (*BundleResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target, ok := esbuildTargets[strings.ToLower(req.Target)]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported target %q", ErrBundle, req.Target)
	}

	outFile := req.OutFile
	if outFile == "" {
		outFile = DefaultScriptName
	}

	opts := api.BuildOptions{
		EntryPoints: []string{req.EntryPoint},
		Bundle:      true,
		Write:       false,
		Format:      api.FormatESModule,
		Platform:    api.PlatformBrowser,
		Target:      target,
		External:    req.External,
		Define:      map[string]string(req.Defines),
		Loader:      map[string]api.Loader{".ts": api.LoaderTS},
		Outfile:     outFile,
		LogLevel:    api.LogLevelSilent,
	}
	if req.SourceMap {
		opts.Sourcemap = api.SourceMapLinked
	}

	result := api.Build(opts)
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrBundle, formatMessages(result.Errors))
	}

	out := &BundleResult{}
	for _, f := range result.OutputFiles {
		if strings.HasSuffix(f.Path, ".map") {
			out.SourceMap = string(f.Contents)
			continue
		}
		if out.Code == "" {
			out.Code = string(f.Contents)
		}
	}
	if out.Code == "" {
		return nil, fmt.Errorf("%w: no output for %s", ErrBundle, req.EntryPoint)
	}

	if len(result.Warnings) > 0 {
		out.Warnings = strings.Split(formatMessages(result.Warnings), "\n")
	}

	return out, nil
}

// Compile-time interface check.
var _ Bundler = esbuildBundler{}
