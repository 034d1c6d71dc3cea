package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfarchive/guidevault/internal/core/ports/driven"
)

// zipBytes builds an in-memory zip archive.
func zipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// containerFile writes a gzipped tar container holding the given entries.
func containerFile(t *testing.T, entries map[string][]byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archive.tar.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for name, content := range entries {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name: name,
			Mode: 0o644,
			Size: int64(len(content)),
		}))
		_, err := tw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	return path
}

func TestExtract_NestedArchives(t *testing.T) {
	nes := zipBytes(t, map[string]string{
		"1-super-mario-bros/faqs/walkthrough.txt": "run right",
		"1-super-mario-bros/faqs/secrets.txt":     "warp zones",
	})
	snes := zipBytes(t, map[string]string{
		"2-chrono-trigger/faqs/endings.txt": "all endings",
	})
	container := containerFile(t, map[string][]byte{
		"nes.zip":    nes,
		"snes.zip":   snes,
		"readme.txt": []byte("archive notes"),
	})

	outDir := filepath.Join(t.TempDir(), "extracted")
	var updates []driven.ExtractProgress
	result, err := New().Extract(context.Background(), container, outDir, func(p driven.ExtractProgress) {
		updates = append(updates, p)
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.InnerArchives)
	assert.Empty(t, result.Failures)

	got, err := os.ReadFile(filepath.Join(outDir, "nes", "1-super-mario-bros", "faqs", "walkthrough.txt"))
	require.NoError(t, err)
	assert.Equal(t, "run right", string(got))
	assert.FileExists(t, filepath.Join(outDir, "snes", "2-chrono-trigger", "faqs", "endings.txt"))
	assert.NoFileExists(t, filepath.Join(outDir, "readme.txt"), "non-archive container entries are skipped")

	// Inner archives are deleted after expansion.
	assert.NoFileExists(t, filepath.Join(outDir, "nes.zip"))
	assert.NoFileExists(t, filepath.Join(outDir, "snes.zip"))

	var archiveUpdates []driven.ExtractProgress
	for _, u := range updates {
		if u.Stage == driven.ExtractStageArchive {
			archiveUpdates = append(archiveUpdates, u)
		}
	}
	require.NotEmpty(t, archiveUpdates)
	last := archiveUpdates[len(archiveUpdates)-1]
	assert.Equal(t, 2, last.Count)
	assert.Equal(t, 2, last.Index)
	assert.Equal(t, 100.0, last.Percent)
}

func TestExtract_NonArchiveContainerEntriesSkipped(t *testing.T) {
	inner := zipBytes(t, map[string]string{"faqs/a.txt": "text"})
	container := containerFile(t, map[string][]byte{
		"pc.zip":           inner,
		"stray-readme.txt": []byte("notes about the collection"),
	})

	outDir := filepath.Join(t.TempDir(), "extracted")
	result, err := New().Extract(context.Background(), container, outDir, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.InnerArchives)
	assert.FileExists(t, filepath.Join(outDir, "pc", "faqs", "a.txt"))
	assert.NoFileExists(t, filepath.Join(outDir, "stray-readme.txt"),
		"only inner archives are staged to disk")
}

func TestExtract_PlainTarContainer(t *testing.T) {
	inner := zipBytes(t, map[string]string{"faqs/a.txt": "text"})
	path := filepath.Join(t.TempDir(), "archive.tar")
	f, err := os.Create(path)
	require.NoError(t, err)
	tw := tar.NewWriter(f)
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "pc.zip", Mode: 0o644, Size: int64(len(inner))}))
	_, err = tw.Write(inner)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, f.Close())

	outDir := t.TempDir()
	result, err := New().Extract(context.Background(), path, outDir, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.InnerArchives)
	assert.FileExists(t, filepath.Join(outDir, "pc", "faqs", "a.txt"))
}

func TestExtract_BrokenInnerArchiveIsSkipped(t *testing.T) {
	good := zipBytes(t, map[string]string{"faqs/ok.txt": "fine"})
	container := containerFile(t, map[string][]byte{
		"good.zip":   good,
		"broken.zip": []byte("this is not a zip file"),
	})

	outDir := t.TempDir()
	result, err := New().Extract(context.Background(), container, outDir, nil)
	require.NoError(t, err, "a broken inner archive is not fatal")

	assert.Equal(t, 2, result.InnerArchives)
	require.Len(t, result.Failures, 1)
	assert.Contains(t, result.Failures[0].Archive, "broken.zip")

	assert.FileExists(t, filepath.Join(outDir, "good", "faqs", "ok.txt"))
	assert.NoFileExists(t, filepath.Join(outDir, "broken.zip"), "broken archives are still deleted")
}

func TestExtract_MissingContainerIsFatal(t *testing.T) {
	_, err := New().Extract(context.Background(), filepath.Join(t.TempDir(), "nope.tar.gz"), t.TempDir(), nil)
	assert.Error(t, err)
}

func TestExtract_ZipSlipRejected(t *testing.T) {
	evil := zipBytes(t, map[string]string{"../outside.txt": "escape"})
	container := containerFile(t, map[string][]byte{"evil.zip": evil})

	parent := t.TempDir()
	outDir := filepath.Join(parent, "extracted")
	result, err := New().Extract(context.Background(), container, outDir, nil)
	require.NoError(t, err)

	require.Len(t, result.Failures, 1, "traversal entries fail the inner archive")
	assert.NoFileExists(t, filepath.Join(parent, "outside.txt"))
}

func TestExtract_ContextCancelled(t *testing.T) {
	container := containerFile(t, map[string][]byte{"x.zip": zipBytes(t, map[string]string{"a.txt": "x"})})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Extract(ctx, container, t.TempDir(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}
