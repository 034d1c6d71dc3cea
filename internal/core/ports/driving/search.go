package driving

import (
	"context"

	"github.com/gfarchive/guidevault/internal/core/domain"
)

// SearchService runs full-text queries against the split indexes.
type SearchService interface {
	// Search returns metadata matches and content-only matches for the
	// query, each truncated to limit.
	Search(ctx context.Context, query string, limit int) (*domain.SearchResults, error)
}
