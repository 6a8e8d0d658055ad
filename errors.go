package workerbundle

import (
	"errors"
	"os"

	"github.com/alnah/go-workerbundle/internal/assets"
)

// Sentinel errors for build operations.
var (
	ErrInvalidInput = errors.New("invalid build input")
	ErrMinify       = errors.New("minification failed")
	ErrCompress     = errors.New("compression failed")
	ErrDecode       = errors.New("payload decoding failed")
	ErrBundle       = errors.New("bundling failed")
	ErrArchive      = errors.New("archive generation failed")
	ErrWriteOutput  = errors.New("failed to write output")

	// Asset loading errors.
	ErrPageNotFound     = errors.New("page markup not found")
	ErrIncompletePage   = errors.New("page missing style or script")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrAssetRead        = errors.New("failed to read asset")
)

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrPageNotFound):
		return wrapError(ErrPageNotFound, err)
	case errors.Is(err, assets.ErrIncompletePage):
		return wrapError(ErrIncompletePage, err)
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrPathTraversal),
		errors.Is(err, assets.ErrInvalidPageName):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrAssetRead):
		return wrapError(ErrAssetRead, err)
	default:
		return err
	}
}

// wrapError creates an error that reads like the original but matches the
// public sentinel with errors.Is.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching, plus the
// os-level cause for missing or unreadable files. Internal sentinels are not
// exposed since they live in internal/ packages.
func (e *wrappedAssetError) Unwrap() []error {
	errs := []error{e.sentinel}
	for _, cause := range []error{os.ErrNotExist, os.ErrPermission} {
		if errors.Is(e.original, cause) {
			errs = append(errs, cause)
		}
	}
	return errs
}
