package workerbundle

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/flate"
)

// Archiver defines the contract for packing the bundled script.
type Archiver interface {
	// Archive returns an archive holding data as a single entry named name.
	Archive(name string, data []byte, modified time.Time) ([]byte, error)
}

// zipArchiver writes single-entry zip archives compressed with DEFLATE.
type zipArchiver struct {
	level int
}

// NewZipArchiver returns an Archiver writing zip files at the given
// deflate level.
func NewZipArchiver(level int) Archiver {
	return &zipArchiver{level: level}
}

func (z *zipArchiver) Archive(name string, data []byte, modified time.Time) ([]byte, error) {
	var buf bytes.Buffer

	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, z.level)
	})

	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified.UTC(),
	}
	header.SetMode(0o644)

	w, err := zw.CreateHeader(header)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchive, err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchive, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchive, err)
	}

	return buf.Bytes(), nil
}

// Compile-time interface check.
var _ Archiver = (*zipArchiver)(nil)
