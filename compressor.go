package workerbundle

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// AssetCompressor turns resolved markup into an embeddable payload.
type AssetCompressor struct {
	markup MarkupMinifier
	level  int
}

// NewAssetCompressor creates an AssetCompressor using markup for minification
// and level as the gzip level.
func NewAssetCompressor(markup MarkupMinifier, level int) *AssetCompressor {
	return &AssetCompressor{markup: markup, level: level}
}

// Compress minifies html, gzips it, and base64 encodes the result.
func (c *AssetCompressor) Compress(ctx context.Context, name, html string) (*CompressedAsset, error) {
	minified, err := c.markup.MinifyHTML(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMinify, name, err)
	}

	payload, err := encodePayload([]byte(minified), c.level)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCompress, name, err)
	}

	return &CompressedAsset{Name: name, Minified: minified, Payload: payload}, nil
}

// encodePayload gzips data and returns standard base64 text. The gzip
// header carries no name or mtime, so equal input yields equal output.
func encodePayload(data []byte, level int) (string, error) {
	var buf bytes.Buffer

	zw, err := gzip.NewWriterLevel(&buf, level)
	if err != nil {
		return "", err
	}
	if _, err := zw.Write(data); err != nil {
		_ = zw.Close()
		return "", err
	}
	if err := zw.Close(); err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeAsset reverses a CompressedAsset payload back to minified markup.
func DecodeAsset(payload string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("%w: base64: %v", ErrDecode, err)
	}

	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: gzip: %v", ErrDecode, err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return "", fmt.Errorf("%w: gzip: %v", ErrDecode, err)
	}
	return string(out), nil
}
