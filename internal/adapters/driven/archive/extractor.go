// Package archive unpacks the downloaded guide archive: a tar container
// (optionally gzipped) holding one compressed archive per collection.
// Extraction runs in two stages so peak disk usage stays bounded: the
// container walk stages inner archives to disk, then each inner archive
// is expanded and deleted before the next one is touched.
package archive

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"

	"github.com/gfarchive/guidevault/internal/core/ports/driven"
	"github.com/gfarchive/guidevault/internal/logger"
)

// Ensure Extractor implements the driven port.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor unpacks nested guide archives.
type Extractor struct{}

// New creates an extractor.
func New() *Extractor {
	return &Extractor{}
}

// innerArchive reports whether a container entry is a compressed archive
// that needs a second expansion stage.
func innerArchive(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zip", ".7z":
		return true
	}
	return false
}

// Extract walks the container at archivePath and expands everything into
// outDir. A broken inner archive is recorded and skipped; a broken
// container is fatal. Every inner archive is deleted once attempted.
func (e *Extractor) Extract(ctx context.Context, archivePath, outDir string, onProgress driven.ExtractProgressFunc) (*driven.ExtractResult, error) {
	inner, err := e.unpackContainer(ctx, archivePath, outDir, onProgress)
	if err != nil {
		return nil, fmt.Errorf("unpacking container: %w", err)
	}
	logger.Info("extract: container held %d inner archives", len(inner))

	result := &driven.ExtractResult{InnerArchives: len(inner)}
	for idx, path := range inner {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		err := e.expandInner(ctx, path, func(percent float64) {
			if onProgress != nil {
				onProgress(driven.ExtractProgress{
					Stage:   driven.ExtractStageArchive,
					Archive: path,
					Index:   idx + 1,
					Count:   len(inner),
					Percent: percent,
				})
			}
		})
		if err != nil {
			logger.Warn("extract: %s: %v", path, err)
			result.Failures = append(result.Failures, driven.ArchiveFailure{Archive: path, Err: err})
		}

		// Expanded or broken, the inner archive has served its purpose.
		if err := os.Remove(path); err != nil {
			logger.Warn("extract: removing %s: %v", path, err)
		}
	}
	return result, nil
}

// unpackContainer streams the tar container's inner archives to disk and
// returns their staged paths in container order. Entries that are not
// inner archives are skipped.
func (e *Extractor) unpackContainer(ctx context.Context, archivePath, outDir string, onProgress driven.ExtractProgressFunc) ([]string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var inner []string
	tr := tar.NewReader(decompressed(f))
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return inner, nil
		}
		if err != nil {
			return nil, err
		}
		if hdr.Typeflag != tar.TypeReg || !innerArchive(hdr.Name) {
			continue
		}

		dest, err := securePath(outDir, hdr.Name)
		if err != nil {
			return nil, err
		}
		if err := writeFile(dest, tr); err != nil {
			return nil, err
		}
		inner = append(inner, dest)
		if onProgress != nil {
			onProgress(driven.ExtractProgress{
				Stage:   driven.ExtractStageContainer,
				Archive: dest,
			})
		}
	}
}

// decompressed wraps the container stream in a gzip reader when the gzip
// magic bytes are present, and passes plain tar through untouched.
func decompressed(f *os.File) io.Reader {
	br := bufio.NewReader(f)
	magic, err := br.Peek(2)
	if err != nil || magic[0] != 0x1f || magic[1] != 0x8b {
		return br
	}
	gz, err := gzip.NewReader(br)
	if err != nil {
		return br
	}
	return gz
}

// expandInner expands one inner archive into a directory named after it.
func (e *Extractor) expandInner(ctx context.Context, path string, onPercent func(float64)) error {
	dest := strings.TrimSuffix(path, filepath.Ext(path))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return expandZip(ctx, path, dest, onPercent)
	case ".7z":
		return expand7z(ctx, path, dest, onPercent)
	}
	return fmt.Errorf("unsupported inner archive %s", path)
}

func expandZip(ctx context.Context, path, dest string, onPercent func(float64)) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}
	defer r.Close()

	for i, f := range r.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			continue
		}
		target, err := securePath(dest, f.Name)
		if err != nil {
			return err
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("opening %s in zip: %w", f.Name, err)
		}
		err = writeFile(target, rc)
		rc.Close()
		if err != nil {
			return err
		}
		onPercent(float64(i+1) / float64(len(r.File)) * 100)
	}
	return nil
}

func expand7z(ctx context.Context, path, dest string, onPercent func(float64)) error {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("opening 7z: %w", err)
	}
	defer r.Close()

	for i, f := range r.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			continue
		}
		target, err := securePath(dest, f.Name)
		if err != nil {
			return err
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("opening %s in 7z: %w", f.Name, err)
		}
		err = writeFile(target, rc)
		rc.Close()
		if err != nil {
			return err
		}
		onPercent(float64(i+1) / float64(len(r.File)) * 100)
	}
	return nil
}

// securePath joins an archive entry name onto root, rejecting entries
// that would escape it.
func securePath(root, name string) (string, error) {
	name = filepath.FromSlash(name)
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("absolute path in archive: %s", name)
	}
	dest := filepath.Join(root, name)
	if dest != root && !strings.HasPrefix(dest, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("path escapes archive root: %s", name)
	}
	return dest, nil
}

func writeFile(dest string, r io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	return out.Close()
}
