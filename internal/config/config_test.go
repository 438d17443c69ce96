package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".opqlcheck.yaml")

	want := Default()
	want.SeverityOverrides["Unknown setting"] = "error"
	want.Color = false

	require.NoError(t, Write(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want.Color, got.Color)
	assert.Equal(t, want.SeverityOverrides, got.SeverityOverrides)
}

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDefaultHasColorEnabled(t *testing.T) {
	assert.True(t, Default().Color)
}
