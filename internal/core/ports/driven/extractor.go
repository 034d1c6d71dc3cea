package driven

import "context"

// ExtractStage identifies which phase of extraction a progress update
// belongs to.
type ExtractStage string

const (
	// ExtractStageContainer is the outer-container walk that discovers
	// and stages inner archives.
	ExtractStageContainer ExtractStage = "container"

	// ExtractStageArchive is the expansion of one inner archive.
	ExtractStageArchive ExtractStage = "archive"
)

// ExtractProgress reports extraction progress.
type ExtractProgress struct {
	// Stage is the current extraction phase.
	Stage ExtractStage

	// Archive is the inner archive being processed.
	Archive string

	// Index is the 1-based position of Archive within the run.
	Index int

	// Count is the total number of inner archives. Zero during the
	// container walk, where the total is not yet known.
	Count int

	// Percent is progress within the current inner archive, 0-100.
	Percent float64
}

// ExtractProgressFunc receives extraction progress updates.
type ExtractProgressFunc func(p ExtractProgress)

// ArchiveFailure records a non-fatal failure expanding one inner archive.
type ArchiveFailure struct {
	// Archive is the inner archive that failed.
	Archive string

	// Err is the failure cause.
	Err error
}

// ExtractResult summarises an extraction run.
type ExtractResult struct {
	// InnerArchives is the number of inner archives discovered.
	InnerArchives int

	// Failures lists inner archives that could not be expanded. The run
	// as a whole still succeeds; only outer-container failures are fatal.
	Failures []ArchiveFailure
}

// Extractor unpacks the downloaded nested archive: an outer container
// holding many inner compressed archives.
type Extractor interface {
	// Extract walks the outer container at archivePath, expands every
	// inner archive into outDir, and deletes each inner archive after it
	// has been attempted so peak disk usage stays bounded.
	Extract(ctx context.Context, archivePath, outDir string, onProgress ExtractProgressFunc) (*ExtractResult, error)
}
