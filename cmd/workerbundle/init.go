package main

import (
	"errors"
	"fmt"

	"github.com/alnah/go-workerbundle/internal/config"
	"github.com/alnah/go-workerbundle/internal/fileutil"
	"github.com/alnah/go-workerbundle/internal/yamlutil"
)

// ErrConfigExists is returned when init would overwrite a config file.
var ErrConfigExists = errors.New("config file already exists")

const defaultConfigFile = config.DefaultConfigName + ".yaml"

// runInit writes the default configuration to a YAML file.
func runInit(args []string, env *Environment) error {
	flags, positional, err := parseInitFlags(args, env)
	if err != nil {
		return usageError(err)
	}

	path := defaultConfigFile
	switch len(positional) {
	case 0:
	case 1:
		path = positional[0]
	default:
		err := fmt.Errorf("%w: init takes at most one path", ErrUsage)
		fmt.Fprintln(env.Stderr, err)
		return err
	}

	if !flags.force && fileutil.FileExists(path) {
		err := fmt.Errorf("%w: %s (use --force to overwrite)", ErrConfigExists, path)
		fmt.Fprintf(env.Stderr, "✗ %v\n", err)
		return err
	}

	data, err := yamlutil.Marshal(config.DefaultConfig())
	if err != nil {
		return fmt.Errorf("encoding default config: %w", err)
	}
	if err := fileutil.WriteFile(path, data); err != nil {
		err = fmt.Errorf("writing %s: %w", path, err)
		fmt.Fprintf(env.Stderr, "✗ %v\n", err)
		return err
	}

	fmt.Fprintf(env.Stdout, "✔ Wrote %s\n", path)
	return nil
}
