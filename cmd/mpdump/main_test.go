package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirosfoundation/go-mimeparts/internal/config"
)

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "body.bin")
	require.NoError(t, os.WriteFile(path, []byte("0123456789"), 0o600))

	data, err := readInput(path, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("0123456789"), data)

	data, err = readInput(path, 4)
	require.NoError(t, err)
	assert.Len(t, data, 5, "one byte past the limit lets the size check fire")

	_, err = readInput(filepath.Join(t.TempDir(), "missing"), 0)
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]int{"parts": 2}))
	assert.Equal(t, "{\n  \"parts\": 2\n}\n", buf.String())
}

func TestNewLogger(t *testing.T) {
	assert.NotNil(t, newLogger(config.LogConfig{Level: "debug", Format: "json"}))
	assert.NotNil(t, newLogger(config.LogConfig{Level: "info", Format: "text"}))
}
