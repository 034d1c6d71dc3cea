package driven

import (
	"context"

	"github.com/gfarchive/guidevault/internal/core/domain"
)

// GuideWriter is the write surface available inside an import batch
// transaction.
type GuideWriter interface {
	// SaveGuide stores or updates a guide.
	SaveGuide(ctx context.Context, guide *domain.Guide) error
}

// GuideListOptions filters and paginates guide listings.
type GuideListOptions struct {
	// GameID restricts results to one game when non-empty.
	GameID string

	// Limit caps the number of results. Zero means a store default.
	Limit int

	// Offset skips results for pagination.
	Offset int
}

// GuideStore persists guide records. Backed by SQLite.
type GuideStore interface {
	GuideWriter

	// GetGuide retrieves a guide by ID.
	GetGuide(ctx context.Context, id string) (*domain.Guide, error)

	// ListGuides returns guides matching the options, newest first.
	ListGuides(ctx context.Context, opts GuideListOptions) ([]domain.Guide, error)

	// CountGuides returns the total number of stored guides.
	CountGuides(ctx context.Context) (int, error)

	// DeleteGuide removes a guide and its bookmarks and notes.
	DeleteGuide(ctx context.Context, id string) error

	// UpdateGuideMetadata replaces the metadata blob of a guide without
	// touching its content. Drives a metadata-index-only reindex.
	UpdateGuideMetadata(ctx context.Context, id string, metadata map[string]any) error

	// UpdateLastRead sets the client read cursor for a guide.
	UpdateLastRead(ctx context.Context, id string, position int) error
}

// BatchStore runs a function against a single transaction. Used by the
// importer to commit one batch of guides atomically.
type BatchStore interface {
	// WithBatch begins a transaction, passes its write surface to fn, and
	// commits when fn returns nil. Any error rolls the batch back.
	WithBatch(ctx context.Context, fn func(w GuideWriter) error) error
}
