package workerbundle

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/alnah/go-workerbundle/internal/fileutil"
)

// buildStampLayout is ISO 8601 with millisecond precision.
const buildStampLayout = "2006-01-02T15:04:05.000Z07:00"

// Artifact is the final worker script, ready to be written.
type Artifact struct {
	Code      string    // Build header followed by the bundled script
	Timestamp time.Time // UTC build time stamped into the header
	EntryName string    // Archive entry name
	SourceMap string    // Empty unless requested
}

// NewArtifact prepends the build header to bundled.
func NewArtifact(bundled string, now time.Time, entryName string) *Artifact {
	ts := now.UTC()
	return &Artifact{
		Code:      BuildHeader(ts) + bundled,
		Timestamp: ts,
		EntryName: entryName,
	}
}

// BuildHeader returns the two comment lines stamped at the top of the script.
func BuildHeader(ts time.Time) string {
	return "// Build: " + ts.UTC().Format(buildStampLayout) + "\n// @ts-nocheck\n"
}

// Outputs records the files a build wrote.
type Outputs struct {
	ScriptPath    string
	ArchivePath   string
	SourceMapPath string // Empty when no source map was written

	ScriptSize  int
	ArchiveSize int
}

// ArtifactPackager writes an Artifact to an output directory.
type ArtifactPackager struct {
	archiver    Archiver
	dir         string
	scriptName  string
	archiveName string
}

// NewArtifactPackager creates an ArtifactPackager writing scriptName and
// archiveName under dir.
func NewArtifactPackager(archiver Archiver, dir, scriptName, archiveName string) *ArtifactPackager {
	return &ArtifactPackager{
		archiver:    archiver,
		dir:         dir,
		scriptName:  scriptName,
		archiveName: archiveName,
	}
}

// Write writes the script, the archive, and the source map if present.
// The archive is built in memory first so a packing failure leaves no files.
// Existing files are overwritten.
func (p *ArtifactPackager) Write(a *Artifact) (*Outputs, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil artifact", ErrInvalidInput)
	}

	code := []byte(a.Code)
	archive, err := p.archiver.Archive(a.EntryName, code, a.Timestamp)
	if err != nil {
		if errors.Is(err, ErrArchive) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrArchive, err)
	}

	out := &Outputs{
		ScriptPath:  filepath.Join(p.dir, p.scriptName),
		ArchivePath: filepath.Join(p.dir, p.archiveName),
		ScriptSize:  len(code),
		ArchiveSize: len(archive),
	}

	if err := writeOutput(out.ScriptPath, code); err != nil {
		return nil, err
	}
	if err := writeOutput(out.ArchivePath, archive); err != nil {
		return nil, err
	}

	if a.SourceMap != "" {
		out.SourceMapPath = out.ScriptPath + ".map"
		if err := writeOutput(out.SourceMapPath, []byte(a.SourceMap)); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func writeOutput(path string, data []byte) error {
	if err := fileutil.WriteFile(path, data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteOutput, path, err)
	}
	return nil
}
