package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.Server)
}

func TestLoadFindsFileInParentDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte("server: http://courtly.example.com\n"), 0o644))

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Chdir(nested)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://courtly.example.com", cfg.Server)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("server: http://from-file\n"), 0o644))
	t.Chdir(dir)
	t.Setenv(EnvServerURL, "http://from-env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://from-env", cfg.Server)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Chdir(t.TempDir())

	require.NoError(t, Save(&Config{Server: "http://saved.example.com"}))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://saved.example.com", cfg.Server)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("server: [not\n"), 0o644))
	t.Chdir(dir)

	_, err := Load()
	assert.Error(t, err)
}
