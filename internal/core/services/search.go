package services

import (
	"context"
	"strings"

	"github.com/gfarchive/guidevault/internal/core/domain"
	"github.com/gfarchive/guidevault/internal/core/ports/driven"
	"github.com/gfarchive/guidevault/internal/core/ports/driving"
	"github.com/gfarchive/guidevault/internal/logger"
)

// DefaultSearchLimit caps each result list when the caller does not.
const DefaultSearchLimit = 20

// Ensure Search implements the driving port.
var _ driving.SearchService = (*Search)(nil)

// Search runs full-text queries against the split metadata and content
// indexes.
type Search struct {
	index driven.SearchIndex
}

// NewSearch creates the search service.
func NewSearch(index driven.SearchIndex) *Search {
	return &Search{index: index}
}

// Search queries both indexes. A blank query returns empty results
// without touching the index; a non-positive limit selects the default.
func (s *Search) Search(ctx context.Context, query string, limit int) (*domain.SearchResults, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return &domain.SearchResults{}, nil
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	logger.Debug("search: %q (limit %d)", query, limit)
	return s.index.Search(ctx, query, limit)
}
