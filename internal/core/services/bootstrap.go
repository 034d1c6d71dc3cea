package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gfarchive/guidevault/internal/core/domain"
	"github.com/gfarchive/guidevault/internal/core/ports/driven"
	"github.com/gfarchive/guidevault/internal/core/ports/driving"
	"github.com/gfarchive/guidevault/internal/logger"
)

// Overall progress is split across the three pipeline stages: download
// fills 0-30, extraction 30-60, import 60-100.
const (
	downloadSpan = 30.0
	extractSpan  = 30.0
	importSpan   = 40.0
)

// DirectoryImporter loads guide files from an extracted tree. Satisfied
// by *Importer.
type DirectoryImporter interface {
	ImportDir(ctx context.Context, root string, onProgress ImportProgressFunc) (*ImportStats, error)
}

// Ensure Bootstrap implements the driving port.
var _ driving.Bootstrapper = (*Bootstrap)(nil)

// Bootstrap runs the one-time pipeline that turns an empty store into a
// populated library: download the archive, unpack it, import the guides.
// A store that already holds guides short-circuits to complete.
type Bootstrap struct {
	board      *StatusBoard
	downloader driven.Downloader
	extractor  driven.Extractor
	importer   DirectoryImporter
	guides     driven.GuideStore

	archiveURL string
	workDir    string

	mu      sync.Mutex
	running bool
}

// NewBootstrap creates the bootstrap service. workDir holds the
// downloaded archive and the extracted tree while the pipeline runs.
func NewBootstrap(downloader driven.Downloader, extractor driven.Extractor, importer DirectoryImporter, guides driven.GuideStore, archiveURL, workDir string) *Bootstrap {
	return &Bootstrap{
		board:      NewStatusBoard(),
		downloader: downloader,
		extractor:  extractor,
		importer:   importer,
		guides:     guides,
		archiveURL: archiveURL,
		workDir:    workDir,
	}
}

// Status returns the current pipeline snapshot.
func (b *Bootstrap) Status() domain.ImportStatus {
	return b.board.Status()
}

// IsComplete reports whether the pipeline reached the complete stage.
func (b *Bootstrap) IsComplete() bool {
	return b.board.Status().Stage == domain.StageComplete
}

// HasError reports whether the pipeline terminated in error.
func (b *Bootstrap) HasError() bool {
	return b.board.Status().Stage == domain.StageError
}

// Subscribe registers a status observer.
func (b *Bootstrap) Subscribe(fn func(domain.ImportStatus)) (unsubscribe func()) {
	return b.board.Subscribe(fn)
}

// Initialize runs the pipeline. It is safe to call repeatedly: a
// populated store completes immediately, and only one run can be in
// flight at a time.
func (b *Bootstrap) Initialize(ctx context.Context) error {
	b.mu.Lock()
	if b.running {
		b.mu.Unlock()
		return fmt.Errorf("initialization already in progress")
	}
	b.running = true
	b.mu.Unlock()
	defer func() {
		b.mu.Lock()
		b.running = false
		b.mu.Unlock()
	}()

	count, err := b.guides.CountGuides(ctx)
	if err != nil {
		b.board.Fail(err)
		return fmt.Errorf("checking existing library: %w", err)
	}
	if count > 0 {
		logger.Info("bootstrap: library already holds %d guides, nothing to do", count)
		b.board.Complete(fmt.Sprintf("library already populated (%d guides)", count))
		return nil
	}

	b.board.Start()
	if err := b.run(ctx); err != nil {
		b.board.Fail(err)
		// A failed run leaves nothing behind; the next attempt starts
		// from scratch anyway.
		if rmErr := os.RemoveAll(b.workDir); rmErr != nil {
			logger.Warn("bootstrap: removing work directory after failure: %v", rmErr)
		}
		return err
	}
	return nil
}

func (b *Bootstrap) run(ctx context.Context) error {
	if err := os.MkdirAll(b.workDir, 0o755); err != nil {
		return fmt.Errorf("creating work directory: %w", err)
	}

	archivePath := filepath.Join(b.workDir, "archive.tar.gz")
	extractDir := filepath.Join(b.workDir, "extracted")

	logger.Section("download")
	b.board.SetStage(domain.StageDownloading, "downloading guide archive")
	err := b.downloader.Download(ctx, b.archiveURL, archivePath, func(p driven.DownloadProgress) {
		msg := "downloading guide archive"
		if p.Total > 0 {
			msg = fmt.Sprintf("downloading guide archive (%.0f%%)", p.Percent)
		}
		b.board.SetProgress(p.Percent/100*downloadSpan, msg)
	})
	if err != nil {
		return fmt.Errorf("downloading archive: %w", err)
	}
	b.board.SetProgress(downloadSpan, "download complete")

	logger.Section("extract")
	b.board.SetStage(domain.StageExtracting, "unpacking archive")
	result, err := b.extractor.Extract(ctx, archivePath, extractDir, func(p driven.ExtractProgress) {
		if p.Count == 0 {
			return
		}
		done := float64(p.Index-1) + p.Percent/100
		frac := done / float64(p.Count)
		b.board.SetProgress(downloadSpan+frac*extractSpan,
			fmt.Sprintf("unpacking %s (%d/%d)", filepath.Base(p.Archive), p.Index, p.Count))
	})
	if err != nil {
		return fmt.Errorf("extracting archive: %w", err)
	}
	for _, f := range result.Failures {
		logger.Warn("bootstrap: inner archive %s failed: %v", f.Archive, f.Err)
	}
	if err := os.Remove(archivePath); err != nil {
		logger.Warn("bootstrap: removing downloaded archive: %v", err)
	}
	b.board.SetProgress(downloadSpan+extractSpan, "extraction complete")

	logger.Section("import")
	b.board.SetStage(domain.StageImporting, "importing guides")
	stats, err := b.importer.ImportDir(ctx, extractDir, func(p ImportProgress) {
		b.board.SetCounts(p.Guides, p.Games)
		if p.Total == 0 {
			return
		}
		frac := float64(p.Current) / float64(p.Total)
		b.board.SetProgress(downloadSpan+extractSpan+frac*importSpan,
			fmt.Sprintf("importing guides (%d/%d)", p.Current, p.Total))
	})
	if err != nil {
		return fmt.Errorf("importing guides: %w", err)
	}

	b.board.SetCounts(stats.Imported, stats.Games)
	if stats.Failed == 0 {
		// Every source file was committed and deleted; the tree is empty
		// scaffolding now.
		if err := os.RemoveAll(extractDir); err != nil {
			logger.Warn("bootstrap: removing extracted tree: %v", err)
		}
	} else {
		logger.Warn("bootstrap: %d files failed to import and remain under %s", stats.Failed, extractDir)
	}

	b.board.Complete(fmt.Sprintf("imported %d guides across %d games", stats.Imported, stats.Games))
	return nil
}
