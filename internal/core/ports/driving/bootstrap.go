package driving

import (
	"context"

	"github.com/gfarchive/guidevault/internal/core/domain"
)

// Bootstrapper runs the one-time data-acquisition pipeline and exposes its
// progress. Initialize is idempotent at process scope: a populated store
// short-circuits straight to the complete stage.
type Bootstrapper interface {
	// Initialize runs download, extraction, and import exactly once for
	// an empty store, or marks the pipeline complete immediately when
	// data already exists.
	Initialize(ctx context.Context) error

	// Status returns the current pipeline status snapshot.
	Status() domain.ImportStatus

	// IsComplete reports whether the pipeline reached the complete stage.
	IsComplete() bool

	// HasError reports whether the pipeline terminated in error.
	HasError() bool

	// Subscribe registers an observer for status snapshots. The returned
	// function unregisters it and is safe to call concurrently with
	// publishing.
	Subscribe(fn func(domain.ImportStatus)) (unsubscribe func())
}
