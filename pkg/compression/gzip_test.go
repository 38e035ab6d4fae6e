package compression

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressor_CompressDecompress(t *testing.T) {
	compressor := NewCompressor()

	repeated := "--B\r\nContent-Type: text/plain\r\n\r\nrepeated part body\r\n"
	testData := []byte(repeated + repeated + repeated + repeated + repeated)

	compressed, err := compressor.Compress(testData)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(testData))

	decompressed, err := compressor.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, testData, decompressed)
}

func TestCompressor_EmptyData(t *testing.T) {
	compressor := NewCompressor()

	compressed, err := compressor.Compress([]byte{})
	require.NoError(t, err)
	assert.NotEmpty(t, compressed) // GZIP header is present even for empty data

	decompressed, err := compressor.Decompress(compressed)
	require.NoError(t, err)
	assert.Empty(t, decompressed)
}

func TestCompressor_MaxSize(t *testing.T) {
	data := bytes.Repeat([]byte("x"), 4096)

	compressed, err := NewCompressorWithLevel(9).Compress(data)
	require.NoError(t, err)

	_, err = NewCompressor().WithMaxSize(1024).Decompress(compressed)
	assert.ErrorIs(t, err, ErrTooLarge)

	out, err := NewCompressor().WithMaxSize(4096).Decompress(compressed)
	require.NoError(t, err)
	assert.Len(t, out, 4096)
}

func TestCompressor_InvalidCompressedData(t *testing.T) {
	_, err := (&Compressor{}).Decompress([]byte("this is not gzip compressed data"))
	assert.Error(t, err)
}

func TestCompressor_TruncatedData(t *testing.T) {
	compressor := NewCompressor()

	compressed, err := compressor.Compress(bytes.Repeat([]byte("abc"), 100))
	require.NoError(t, err)

	_, err = compressor.Decompress(compressed[:len(compressed)/2])
	assert.Error(t, err)
}

func TestIsEncoded(t *testing.T) {
	tests := []struct {
		encoding string
		expected bool
	}{
		{"gzip", true},
		{"GZIP", true},
		{" x-gzip ", true},
		{"deflate", false},
		{"identity", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.encoding, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsEncoded(tt.encoding))
		})
	}
}

func TestShouldCompress(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		expected    bool
	}{
		{"text plain", "text/plain", true},
		{"application json", "application/json", true},
		{"multipart", "multipart/related; boundary=abc", true},
		{"jpeg already compressed", "image/jpeg", false},
		{"gzip already compressed", "application/gzip", false},
		{"gzip with params", "application/gzip; name=\"a.gz\"", false},
		{"zip mixed case", "Application/ZIP", false},
		{"with charset", "text/plain; charset=utf-8", true},
		{"empty", "", true}, // Default to compressible
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ShouldCompress(tt.contentType))
		})
	}
}
