package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: workerbundle [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Bundle pages and the worker script (default)")
	fmt.Fprintln(w, "  init       Write a default workerbundle.yaml")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'workerbundle help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: workerbundle build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Resolve, minify, and compress every page under the asset directory,")
	fmt.Fprintln(w, "embed them in the worker entry script, and write the bundled script")
	fmt.Fprintln(w, "and a single-entry zip archive.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input:")
	fmt.Fprintln(w, "  -c, --config <name>        Config file name or path")
	fmt.Fprintln(w, "  -e, --entry <path>         Worker entry script (default: src/worker.ts)")
	fmt.Fprintln(w, "      --asset-dir <path>     Page directory root (default: src/assets)")
	fmt.Fprintln(w, "      --icon <path>          Icon embedded as __ICON__")
	fmt.Fprintln(w, "      --asset-only <names>   Pages built from index.html alone (default: error)")
	fmt.Fprintln(w, "      --version-string <s>   Build version (default: package.json version)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Bundling:")
	fmt.Fprintln(w, "      --external <specs>     Modules left unresolved (default: cloudflare:sockets)")
	fmt.Fprintln(w, "      --target <target>      esnext, es2020, es2021, es2022, es2023")
	fmt.Fprintln(w, "      --sourcemap            Also write <script>.map")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <dir>         Output directory (default: dist)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                Only show errors")
	fmt.Fprintln(w, "  -v, --verbose              Show per-page sizes and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  WORKERBUNDLE_CONFIG, WORKERBUNDLE_VERSION, WORKERBUNDLE_ENTRY,")
	fmt.Fprintln(w, "  WORKERBUNDLE_ASSET_DIR, WORKERBUNDLE_ICON, WORKERBUNDLE_OUTPUT_DIR,")
	fmt.Fprintln(w, "  WORKERBUNDLE_EXTERNAL, WORKERBUNDLE_TARGET, WORKERBUNDLE_SOURCEMAP")
	fmt.Fprintln(w, "  Flags override environment variables, which override the config file.")
}

// printInitUsage prints usage for the init command.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: workerbundle init [path] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write the default configuration to path (default: workerbundle.yaml).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -f, --force    Overwrite an existing file")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "init":
		printInitUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: workerbundle version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: workerbundle help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
