// Package compression implements GZIP Content-Encoding for part bodies
package compression

import (
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sirosfoundation/go-mimeparts/pkg/contentheader"
)

const (
	// CompressionTypeGzip is the standard GZIP media type
	CompressionTypeGzip = "application/gzip"
	// EncodingGzip is the Content-Encoding token for GZIP
	EncodingGzip = "gzip"
	// EncodingXGzip is the legacy Content-Encoding token for GZIP
	EncodingXGzip = "x-gzip"
)

// ErrTooLarge is returned when decompressed data exceeds the configured limit
var ErrTooLarge = errors.New("decompressed data exceeds limit")

// Compressor handles body compression
type Compressor struct {
	compressionLevel int
	maxSize          int64
}

// NewCompressor creates a new compressor with default compression level
func NewCompressor() *Compressor {
	return &Compressor{
		compressionLevel: gzip.DefaultCompression,
	}
}

// NewCompressorWithLevel creates a new compressor with specified compression level
func NewCompressorWithLevel(level int) *Compressor {
	return &Compressor{
		compressionLevel: level,
	}
}

// WithMaxSize bounds the size of decompressed output. Zero means unbounded.
func (c *Compressor) WithMaxSize(n int64) *Compressor {
	c.maxSize = n
	return c
}

// Compress compresses data using GZIP
func (c *Compressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer

	writer, err := gzip.NewWriterLevel(&buf, c.compressionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip writer: %w", err)
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to write data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close gzip writer: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress decompresses GZIP data
func (c *Compressor) Decompress(data []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer reader.Close()

	var src io.Reader = reader
	if c.maxSize > 0 {
		src = io.LimitReader(reader, c.maxSize+1)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, src); err != nil {
		return nil, fmt.Errorf("failed to read compressed data: %w", err)
	}

	if c.maxSize > 0 && int64(buf.Len()) > c.maxSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, c.maxSize)
	}

	return buf.Bytes(), nil
}

// IsEncoded reports whether a Content-Encoding value names GZIP
func IsEncoded(contentEncoding string) bool {
	switch strings.ToLower(strings.TrimSpace(contentEncoding)) {
	case EncodingGzip, EncodingXGzip:
		return true
	default:
		return false
	}
}

// ShouldCompress determines if a body should be compressed based on content type
func ShouldCompress(contentType string) bool {
	// Don't compress already compressed formats
	compressedTypes := map[string]bool{
		"application/gzip":   true,
		"application/zip":    true,
		"application/x-gzip": true,
		"image/jpeg":         true,
		"image/png":          true,
		"video/mp4":          true,
		"audio/mp3":          true,
	}

	mediaType := strings.ToLower(contentheader.ParseMediaType(contentType).Type)
	return !compressedTypes[mediaType]
}
