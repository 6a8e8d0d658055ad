package main

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	workerbundle "github.com/alnah/go-workerbundle"
	"github.com/alnah/go-workerbundle/internal/config"
	"github.com/alnah/go-workerbundle/internal/fileutil"
	"github.com/alnah/go-workerbundle/internal/hints"
)

// runBuild loads configuration, runs the pipeline, and reports progress.
// Failures are printed with a hint and returned for exit code mapping.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env)
	if err != nil {
		return usageError(err)
	}
	if len(positional) > 0 {
		err := fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[0])
		fmt.Fprintln(env.Stderr, err)
		return err
	}

	cfg, configName, err := loadBuildConfig(flags, env)
	if err != nil {
		printFailure(env, err, cfg, configName)
		return err
	}

	version, err := cfg.ResolveVersion()
	if err != nil {
		err = fmt.Errorf("resolving version: %w", err)
		printFailure(env, err, cfg, configName)
		return err
	}

	input := buildInput(cfg, version, env.Now)

	start := env.Now()
	res, err := env.NewBuilder().Build(ctx, input)
	if err != nil {
		printFailure(env, err, cfg, configName)
		return err
	}

	printResult(env, flags.common, res, env.Now().Sub(start))
	return nil
}

// loadBuildConfig merges defaults, the config file, environment overrides,
// and flags, in increasing precedence, then validates the result.
// Also returns the config name or path that was loaded, if any.
func loadBuildConfig(flags *buildFlags, env *Environment) (*config.Config, string, error) {
	vars := config.EnvironMap(env.Environ())
	overrides, err := config.LoadEnvFrom(vars)
	if err != nil {
		return nil, "", err
	}
	if !flags.common.quiet {
		warnUnknownEnvVars(env, vars)
	}

	cfg := config.DefaultConfig()
	name := resolveConfigName(flags.common.config, overrides.ConfigPath)
	if name != "" {
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, name, fmt.Errorf("loading config: %w", err)
		}
	}

	overrides.Apply(cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, name, err
	}
	return cfg, name, nil
}

// resolveConfigName picks the config to load: the flag, then the
// environment, then workerbundle.yaml in the working directory if present.
func resolveConfigName(flagValue, envValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue != "" {
		return envValue
	}
	return config.FindDefault(".")
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *buildFlags, cfg *config.Config) {
	if flags.version != "" {
		cfg.Version = flags.version
	}
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}

	// Inputs
	if flags.input.entry != "" {
		cfg.Entry = flags.input.entry
	}
	if flags.input.assetDir != "" {
		cfg.Assets.Dir = flags.input.assetDir
	}
	if flags.input.icon != "" {
		cfg.Assets.Icon = flags.input.icon
	}
	if len(flags.input.assetOnly) > 0 {
		cfg.Assets.AssetOnly = flags.input.assetOnly
	}

	// Bundler
	if flags.bundle.externalSet {
		cfg.Bundle.External = flags.bundle.external
	}
	if flags.bundle.target != "" {
		cfg.Bundle.Target = flags.bundle.target
	}
	if flags.bundle.sourceMapSet {
		cfg.Bundle.SourceMap = flags.bundle.sourceMap
	}
}

// buildInput converts the merged config to library input.
func buildInput(cfg *config.Config, version string, now func() time.Time) workerbundle.BuildInput {
	return workerbundle.BuildInput{
		AssetDir:    cfg.Assets.Dir,
		AssetOnly:   cfg.Assets.AssetOnly,
		IconPath:    cfg.Assets.Icon,
		EntryPoint:  cfg.Entry,
		Version:     version,
		External:    cfg.Bundle.External,
		Target:      cfg.Bundle.Target,
		SourceMap:   cfg.Bundle.SourceMap,
		OutputDir:   cfg.Output.Dir,
		ScriptName:  cfg.Output.Script,
		ArchiveName: cfg.Output.Archive,
		EntryName:   cfg.Output.EntryName,
		Now:         now,
	}
}

// warnUnknownEnvVars prints a warning for each unrecognized WORKERBUNDLE_*
// variable. Helps catch typos like WORKERBUNDLE_OUTPUTDIR.
func warnUnknownEnvVars(env *Environment, vars map[string]string) {
	unknown := config.UnknownEnvVars(vars)
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(env.Stderr, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// printResult reports a successful build.
func printResult(env *Environment, flags commonFlags, res *workerbundle.Result, elapsed time.Duration) {
	if !flags.quiet {
		for _, name := range res.Unreferenced {
			fmt.Fprintf(env.Stderr, "warning: page %q is not embedded by any constant\n", name)
		}
		for _, w := range res.Warnings {
			fmt.Fprintf(env.Stderr, "warning: %s\n", w)
		}
	}

	if flags.quiet {
		return
	}

	fmt.Fprintln(env.Stdout, "✔ Assets bundled successfully")
	if flags.verbose {
		for _, name := range res.Pages.Order {
			a := res.Pages.Get(name)
			fmt.Fprintf(env.Stdout, "  %-12s %7d B minified, %7d B payload\n", name, len(a.Minified), len(a.Payload))
		}
	}

	fmt.Fprintln(env.Stdout, "✔ Worker bundled successfully")
	if flags.verbose {
		out := res.Outputs
		fmt.Fprintf(env.Stdout, "  %s (%d B)\n", out.ScriptPath, out.ScriptSize)
		fmt.Fprintf(env.Stdout, "  %s (%d B)\n", out.ArchivePath, out.ArchiveSize)
		if out.SourceMapPath != "" {
			fmt.Fprintf(env.Stdout, "  %s\n", out.SourceMapPath)
		}
		fmt.Fprintf(env.Stdout, "  built in %v\n", elapsed.Round(time.Millisecond))
	}

	fmt.Fprintln(env.Stdout, "✔ Done!")
}

// printFailure reports a failed build with an actionable hint when one applies.
func printFailure(env *Environment, err error, cfg *config.Config, configName string) {
	fmt.Fprintf(env.Stderr, "✗ Build failed: %v%s\n", err, hintFor(err, cfg, configName))
}

// hintFor returns the hint matching err, or "".
func hintFor(err error, cfg *config.Config, configName string) string {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		var searched []string
		if configName != "" && !fileutil.IsFilePath(configName) {
			searched = config.SearchPaths(configName)
		}
		return hints.ForConfigNotFound(searched)
	case errors.Is(err, config.ErrPackageRead),
		errors.Is(err, config.ErrPackageParse),
		errors.Is(err, config.ErrVersionNotFound):
		return hints.ForVersion()
	case errors.Is(err, workerbundle.ErrInvalidAssetPath):
		return hints.ForAssetDir()
	case errors.Is(err, workerbundle.ErrIncompletePage):
		return hints.ForIncompletePage(cfg.Assets.AssetOnly)
	case errors.Is(err, workerbundle.ErrBundle):
		return hints.ForBundle(cfg.Bundle.External)
	case errors.Is(err, workerbundle.ErrWriteOutput):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}
