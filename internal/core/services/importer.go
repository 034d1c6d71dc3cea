package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gfarchive/guidevault/internal/core/domain"
	"github.com/gfarchive/guidevault/internal/core/ports/driven"
	"github.com/gfarchive/guidevault/internal/logger"
	"github.com/gfarchive/guidevault/internal/parsers/heuristics"
)

// DefaultBatchSize is how many guides are committed per transaction.
const DefaultBatchSize = 100

// ImportStats summarises one import run.
type ImportStats struct {
	// Imported is the number of guides committed.
	Imported int

	// Games is the number of game records created during the run.
	Games int

	// Skipped is the number of unsupported files left untouched.
	Skipped int

	// Failed is the number of supported files that could not be
	// imported. Their source files remain on disk.
	Failed int
}

// ImportProgress reports per-file import progress.
type ImportProgress struct {
	// Stage identifies the pipeline stage emitting the update.
	Stage domain.ImportStage

	// Total is the number of supported files discovered.
	Total int

	// Current is the number of files processed so far.
	Current int

	// File is the file most recently processed.
	File string

	// Guides and Games are running commit counters.
	Guides int
	Games  int
}

// ImportProgressFunc receives import progress updates.
type ImportProgressFunc func(p ImportProgress)

// gameDirPattern matches the archive's game directory convention:
// a numeric identifier, a dash, and a URL slug ("562-final-fantasy-vii").
var gameDirPattern = regexp.MustCompile(`^(\d+)-(.+)$`)

// guideSubdir is the directory under each game that holds its guide
// files. A numeric-id directory without it is not a game.
const guideSubdir = "faqs"

// Importer walks an extracted archive tree and loads every supported
// guide file into the store. Guides are committed in batches inside a
// single transaction each; when a batch fails, its files are retried
// one by one so a single bad file cannot sink its neighbours.
type Importer struct {
	batch     driven.BatchStore
	games     driven.GameStore
	parser    driven.GuideParser
	batchSize int
}

// NewImporter creates an importer. A batchSize of zero selects
// DefaultBatchSize.
func NewImporter(batch driven.BatchStore, games driven.GameStore, parser driven.GuideParser, batchSize int) *Importer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Importer{
		batch:     batch,
		games:     games,
		parser:    parser,
		batchSize: batchSize,
	}
}

// ImportDir imports every supported file under root. Committed source
// files are deleted; failed files stay on disk for a later retry. The
// walk itself failing is the only fatal error.
func (i *Importer) ImportDir(ctx context.Context, root string, onProgress ImportProgressFunc) (*ImportStats, error) {
	files, skipped, err := i.discover(root)
	if err != nil {
		return nil, fmt.Errorf("scanning import directory: %w", err)
	}
	logger.Info("import: %d supported files under %s (%d skipped)", len(files), root, skipped)

	stats := &ImportStats{Skipped: skipped}
	memo := make(map[string]string)
	processed := 0

	for start := 0; start < len(files); start += i.batchSize {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		end := min(start+i.batchSize, len(files))
		chunk := files[start:end]

		guides, unparsed := i.parseChunk(ctx, root, chunk, memo, stats)
		stats.Failed += len(unparsed)

		committed := i.commitChunk(ctx, chunk, guides, stats)

		for _, path := range committed {
			if err := os.Remove(path); err != nil {
				logger.Warn("import: removing committed source %s: %v", path, err)
			}
		}

		processed += len(chunk)
		if onProgress != nil {
			last := ""
			if len(chunk) > 0 {
				last = chunk[len(chunk)-1]
			}
			onProgress(ImportProgress{
				Stage:   domain.StageImporting,
				Total:   len(files),
				Current: processed,
				File:    last,
				Guides:  stats.Imported,
				Games:   stats.Games,
			})
		}

		// Let other goroutines run between batches; long imports should
		// not starve status observers.
		runtime.Gosched()
	}

	logger.Info("import: done, %d imported, %d failed, %d games created", stats.Imported, stats.Failed, stats.Games)
	return stats, nil
}

// discover walks root and partitions files into supported paths and a
// count of everything else.
func (i *Importer) discover(root string) ([]string, int, error) {
	var files []string
	skipped := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !i.parser.Supported(path) {
			skipped++
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return files, skipped, nil
}

// parseChunk parses one batch of files into guide records, resolving each
// file's game as it goes. Files that fail to parse are returned separately
// and their source files are left alone.
func (i *Importer) parseChunk(ctx context.Context, root string, chunk []string, memo map[string]string, stats *ImportStats) (map[string]*domain.Guide, []string) {
	guides := make(map[string]*domain.Guide, len(chunk))
	var unparsed []string

	for _, path := range chunk {
		parsed, err := i.parser.ParseFile(path)
		if err != nil {
			logger.Warn("import: parsing %s: %v", path, err)
			unparsed = append(unparsed, path)
			continue
		}

		gameID, err := i.resolveGame(ctx, root, path, memo, stats)
		if err != nil {
			logger.Warn("import: resolving game for %s: %v", path, err)
			// The guide is still worth keeping, just unlinked.
			gameID = nil
		}

		now := time.Now().UTC()
		guides[path] = &domain.Guide{
			ID:         uuid.New().String(),
			GameID:     gameID,
			Title:      parsed.Title,
			Content:    parsed.Content,
			Format:     parsed.Format,
			SourcePath: path,
			Metadata:   parsed.Metadata,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
	}
	return guides, unparsed
}

// commitChunk writes one batch of parsed guides. The whole batch goes
// into a single transaction first; if that fails, each guide is retried
// in its own transaction. Returns the paths whose guides committed.
func (i *Importer) commitChunk(ctx context.Context, chunk []string, guides map[string]*domain.Guide, stats *ImportStats) []string {
	ordered := make([]string, 0, len(guides))
	for _, path := range chunk {
		if _, ok := guides[path]; ok {
			ordered = append(ordered, path)
		}
	}
	if len(ordered) == 0 {
		return nil
	}

	err := i.batch.WithBatch(ctx, func(w driven.GuideWriter) error {
		for _, path := range ordered {
			if err := w.SaveGuide(ctx, guides[path]); err != nil {
				return fmt.Errorf("saving guide from %s: %w", path, err)
			}
		}
		return nil
	})
	if err == nil {
		stats.Imported += len(ordered)
		return ordered
	}
	logger.Warn("import: batch of %d failed, retrying per file: %v", len(ordered), err)

	var committed []string
	for _, path := range ordered {
		err := i.batch.WithBatch(ctx, func(w driven.GuideWriter) error {
			return w.SaveGuide(ctx, guides[path])
		})
		if err != nil {
			logger.Warn("import: %s failed: %v", path, err)
			stats.Failed++
			continue
		}
		stats.Imported++
		committed = append(committed, path)
	}
	return committed
}

// resolveGame maps a guide file to its game using the archive layout
// "<platform>/<id-slug>/faqs/<file>". Games are created on first sight
// and memoised for the rest of the run. Files outside the convention get
// no game link.
func (i *Importer) resolveGame(ctx context.Context, root, path string, memo map[string]string, stats *ImportStats) (*string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return nil, err
	}

	parts := strings.Split(filepath.ToSlash(rel), "/")
	externalID, title, platform := "", "", ""
	for idx, part := range parts[:len(parts)-1] {
		m := gameDirPattern.FindStringSubmatch(part)
		if m == nil {
			continue
		}
		if idx+1 >= len(parts)-1 || parts[idx+1] != guideSubdir {
			continue
		}
		externalID = m[1]
		title = heuristics.FromFilename(m[2])
		if idx > 0 {
			platform = parts[idx-1]
		}
		break
	}
	if externalID == "" {
		return nil, nil
	}

	if id, ok := memo[externalID]; ok {
		return &id, nil
	}

	game, err := i.games.GetGameByExternalID(ctx, externalID)
	switch {
	case err == nil:
		memo[externalID] = game.ID
		return &game.ID, nil
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	now := time.Now().UTC()
	game = &domain.Game{
		ID:         uuid.New().String(),
		Title:      title,
		ExternalID: &externalID,
		Platform:   platform,
		Completion: 0,
		Status:     domain.StatusNotStarted,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := i.games.SaveGame(ctx, game); err != nil {
		return nil, err
	}
	memo[externalID] = game.ID
	stats.Games++
	logger.Debug("import: created game %q (%s)", game.Title, externalID)
	return &game.ID, nil
}
