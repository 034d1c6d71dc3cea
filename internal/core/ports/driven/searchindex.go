package driven

import (
	"context"

	"github.com/gfarchive/guidevault/internal/core/domain"
)

// SearchIndex queries the two full-text indexes maintained as a side
// effect of guide writes: a small title+tags index and a large body-text
// index. Both are derived state; there is no explicit indexing call.
type SearchIndex interface {
	// Search runs the query against both indexes, each ranked by its own
	// relevance ordering and truncated to limit. Guides already present
	// in the metadata matches are excluded from the content matches.
	Search(ctx context.Context, query string, limit int) (*domain.SearchResults, error)
}
