package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// ErrUsage is returned for malformed command lines.
var ErrUsage = errors.New("invalid usage")

// run dispatches args to a command and returns the process exit code.
// args[0] is the program name.
func run(ctx context.Context, args []string, env *Environment) int {
	cmd, rest := splitCommand(args[1:])

	var err error
	switch cmd {
	case "build":
		err = runBuild(ctx, rest, env)
	case "init":
		err = runInit(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "workerbundle %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		runHelp(rest, env)
		return ExitSuccess
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	return exitCodeFor(err)
}

// splitCommand returns the command name and its arguments.
// Without a command, or when the first argument is a flag, build is assumed.
func splitCommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "build", nil
	}
	if args[0] == "-h" || args[0] == "--help" {
		return "help", args[1:]
	}
	if strings.HasPrefix(args[0], "-") && args[0] != "--version" {
		return "build", args
	}
	return args[0], args[1:]
}

// usageError wraps a flag parsing error so it maps to ExitUsage.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}
