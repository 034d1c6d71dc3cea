package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/gfarchive/guidevault/internal/core/domain"
	"github.com/gfarchive/guidevault/internal/core/ports/driven"
	"github.com/gfarchive/guidevault/internal/logger"
)

// searchIndex implements driven.SearchIndex over the two FTS5 tables
// maintained by the guide triggers. The metadata index covers title and
// tags; the content index covers body text. A guide matching on metadata
// is excluded from the content results.
type searchIndex struct {
	store *Store
}

var _ driven.SearchIndex = (*searchIndex)(nil)

func (s *searchIndex) Search(ctx context.Context, query string, limit int) (*domain.SearchResults, error) {
	match := ftsQuery(query)
	if match == "" {
		return &domain.SearchResults{}, nil
	}
	logger.Debug("search index: match expression %q", match)

	meta, metaIDs, err := s.searchMeta(ctx, match, limit)
	if err != nil {
		return nil, err
	}
	content, err := s.searchContent(ctx, match, limit, metaIDs)
	if err != nil {
		return nil, err
	}

	return &domain.SearchResults{MetaMatches: meta, ContentMatches: content}, nil
}

// searchMeta queries the title+tags index, best match first.
func (s *searchIndex) searchMeta(ctx context.Context, match string, limit int) ([]domain.SearchHit, map[string]bool, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT g.id, g.title, bm25(guide_meta_fts),
		       snippet(guide_meta_fts, 0, '[', ']', '...', 12)
		FROM guide_meta_fts
		JOIN guides g ON g.rowid = guide_meta_fts.rowid
		WHERE guide_meta_fts MATCH ?
		ORDER BY bm25(guide_meta_fts)
		LIMIT ?
	`, match, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("querying metadata index: %w", err)
	}
	defer rows.Close()

	var hits []domain.SearchHit
	seen := make(map[string]bool)
	for rows.Next() {
		hit, err := scanHit(rows)
		if err != nil {
			return nil, nil, err
		}
		hits = append(hits, hit)
		seen[hit.GuideID] = true
	}
	return hits, seen, rows.Err()
}

// searchContent queries the body-text index, dropping guides that
// already matched on metadata. The query over-fetches by the number of
// metadata hits so exclusion cannot starve the result list.
func (s *searchIndex) searchContent(ctx context.Context, match string, limit int, exclude map[string]bool) ([]domain.SearchHit, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT g.id, g.title, bm25(guide_content_fts),
		       snippet(guide_content_fts, 0, '[', ']', '...', 12)
		FROM guide_content_fts
		JOIN guides g ON g.rowid = guide_content_fts.rowid
		WHERE guide_content_fts MATCH ?
		ORDER BY bm25(guide_content_fts)
		LIMIT ?
	`, match, limit+len(exclude))
	if err != nil {
		return nil, fmt.Errorf("querying content index: %w", err)
	}
	defer rows.Close()

	var hits []domain.SearchHit
	for rows.Next() {
		hit, err := scanHit(rows)
		if err != nil {
			return nil, err
		}
		if exclude[hit.GuideID] {
			continue
		}
		hits = append(hits, hit)
		if len(hits) == limit {
			break
		}
	}
	return hits, rows.Err()
}

func scanHit(row scanner) (domain.SearchHit, error) {
	var hit domain.SearchHit
	var rank float64
	if err := row.Scan(&hit.GuideID, &hit.Title, &rank, &hit.Snippet); err != nil {
		return domain.SearchHit{}, fmt.Errorf("scanning search hit: %w", err)
	}
	// bm25 ranks better matches closer to negative infinity; flip it so
	// higher scores are better.
	hit.Score = -rank
	return hit, nil
}

// ftsQuery turns free text into a safe FTS5 match expression: each term
// is quoted so user input cannot inject match syntax.
func ftsQuery(query string) string {
	terms := strings.Fields(query)
	quoted := make([]string, 0, len(terms))
	for _, term := range terms {
		quoted = append(quoted, `"`+strings.ReplaceAll(term, `"`, `""`)+`"`)
	}
	return strings.Join(quoted, " ")
}
