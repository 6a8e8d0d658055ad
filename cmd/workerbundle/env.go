package main

import (
	"context"
	"io"
	"os"
	"time"

	workerbundle "github.com/alnah/go-workerbundle"
)

// Builder is the interface for the build service.
type Builder interface {
	Build(ctx context.Context, input workerbundle.BuildInput) (*workerbundle.Result, error)
}

// Compile-time interface implementation check.
var _ Builder = (*workerbundle.Builder)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now        func() time.Time
	Stdout     io.Writer
	Stderr     io.Writer
	Environ    func() []string // Source of WORKERBUNDLE_* overrides
	NewBuilder func() Builder
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Environ: os.Environ,
		NewBuilder: func() Builder {
			return workerbundle.New()
		},
	}
}
