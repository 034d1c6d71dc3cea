package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, DefaultArchiveURL, cfg.ArchiveURL)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "work"), cfg.WorkDir)
	assert.Zero(t, cfg.ImportBatchSize)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
archive_url = "https://mirror.example/guides.tar.gz"
import_batch_size = 50
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://mirror.example/guides.tar.gz", cfg.ArchiveURL)
	assert.Equal(t, 50, cfg.ImportBatchSize)
	assert.Equal(t, filepath.Join(dir, "data"), cfg.DataDir, "unset keys still default")
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not [valid toml"), 0o600))

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)

	cfg.ImportBatchSize = 25
	require.NoError(t, cfg.Save(dir))

	reloaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 25, reloaded.ImportBatchSize)
}
