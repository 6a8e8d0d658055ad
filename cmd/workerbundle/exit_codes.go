package main

import (
	"errors"
	"os"

	workerbundle "github.com/alnah/go-workerbundle"
	"github.com/alnah/go-workerbundle/internal/config"
)

// Exit codes for the workerbundle CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Build completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBundle  = 4 // Minify, compress, bundle, or archive failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Toolchain errors (exit 4)
	if errors.Is(err, workerbundle.ErrBundle) ||
		errors.Is(err, workerbundle.ErrMinify) ||
		errors.Is(err, workerbundle.ErrCompress) ||
		errors.Is(err, workerbundle.ErrArchive) {
		return ExitBundle
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, workerbundle.ErrPageNotFound) ||
		errors.Is(err, workerbundle.ErrIncompletePage) ||
		errors.Is(err, workerbundle.ErrAssetRead) ||
		errors.Is(err, workerbundle.ErrWriteOutput) ||
		errors.Is(err, config.ErrPackageRead) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrConfigExists) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrFieldRequired) ||
		errors.Is(err, config.ErrInvalidField) ||
		errors.Is(err, config.ErrPackageParse) ||
		errors.Is(err, config.ErrVersionNotFound) ||
		errors.Is(err, workerbundle.ErrInvalidInput) ||
		errors.Is(err, workerbundle.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
