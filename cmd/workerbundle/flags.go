package main

import (
	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// inputFlags holds source locations.
type inputFlags struct {
	entry     string
	assetDir  string
	icon      string
	assetOnly []string
}

// bundleFlags holds bundler settings. The *Set fields record whether the
// flag was given, since an empty list and false are meaningful values.
type bundleFlags struct {
	external     []string
	externalSet  bool
	target       string
	sourceMap    bool
	sourceMapSet bool
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common  commonFlags
	version string
	output  string
	input   inputFlags
	bundle  bundleFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show per-page sizes and timing")
}

// addInputFlags adds source location flags to a FlagSet.
func addInputFlags(fs *flag.FlagSet, f *inputFlags) {
	fs.StringVarP(&f.entry, "entry", "e", "", "worker entry script")
	fs.StringVar(&f.assetDir, "asset-dir", "", "directory holding one directory per page")
	fs.StringVar(&f.icon, "icon", "", "icon file embedded as __ICON__")
	fs.StringSliceVar(&f.assetOnly, "asset-only", nil, "pages built from index.html alone")
}

// addBundleFlags adds bundler flags to a FlagSet.
func addBundleFlags(fs *flag.FlagSet, f *bundleFlags) {
	fs.StringSliceVar(&f.external, "external", nil, "module specifiers left unresolved")
	fs.StringVar(&f.target, "target", "", "language target: esnext, es2020..es2023")
	fs.BoolVar(&f.sourceMap, "sourcemap", false, "also write a source map")
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, env *Environment) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	f := &buildFlags{}

	fs.StringVar(&f.version, "version-string", "", "build version (default: package.json version)")
	fs.StringVarP(&f.output, "output", "o", "", "output directory")

	addCommonFlags(fs, &f.common)
	addInputFlags(fs, &f.input)
	addBundleFlags(fs, &f.bundle)

	fs.Usage = func() { printBuildUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	f.bundle.externalSet = fs.Changed("external")
	f.bundle.sourceMapSet = fs.Changed("sourcemap")

	return f, fs.Args(), nil
}

// initFlags holds flags for the init command.
type initFlags struct {
	force bool
}

// parseInitFlags parses init command flags and returns positional args.
func parseInitFlags(args []string, env *Environment) (*initFlags, []string, error) {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	f := &initFlags{}

	fs.BoolVarP(&f.force, "force", "f", false, "overwrite an existing config file")
	fs.Usage = func() { printInitUsage(env.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
