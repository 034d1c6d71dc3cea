package services

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/gfarchive/guidevault/internal/core/domain"
	"github.com/gfarchive/guidevault/internal/core/ports/driven"
)

// memGuideStore is an in-memory GuideStore and BatchStore. SaveGuide
// fails for any guide whose source path contains failOn, and WithBatch
// only applies writes when the whole batch succeeds.
type memGuideStore struct {
	mu     sync.Mutex
	guides map[string]*domain.Guide
	failOn string
}

func newMemGuideStore() *memGuideStore {
	return &memGuideStore{guides: make(map[string]*domain.Guide)}
}

func (s *memGuideStore) SaveGuide(_ context.Context, g *domain.Guide) error {
	if s.failOn != "" && strings.Contains(g.SourcePath, s.failOn) {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *g
	s.guides[g.ID] = &cp
	return nil
}

func (s *memGuideStore) GetGuide(_ context.Context, id string) (*domain.Guide, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.guides[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (s *memGuideStore) ListGuides(_ context.Context, opts driven.GuideListOptions) ([]domain.Guide, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Guide
	for _, g := range s.guides {
		if opts.GameID != "" && (g.GameID == nil || *g.GameID != opts.GameID) {
			continue
		}
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memGuideStore) CountGuides(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.guides), nil
}

func (s *memGuideStore) DeleteGuide(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.guides[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.guides, id)
	return nil
}

func (s *memGuideStore) UpdateGuideMetadata(_ context.Context, id string, metadata map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.guides[id]
	if !ok {
		return domain.ErrNotFound
	}
	g.Metadata = metadata
	return nil
}

func (s *memGuideStore) UpdateLastRead(_ context.Context, id string, position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.guides[id]
	if !ok {
		return domain.ErrNotFound
	}
	g.LastReadPosition = position
	return nil
}

func (s *memGuideStore) WithBatch(_ context.Context, fn func(w driven.GuideWriter) error) error {
	staged := &memBatch{store: s}
	if err := fn(staged); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range staged.pending {
		cp := *g
		s.guides[g.ID] = &cp
	}
	return nil
}

type memBatch struct {
	store   *memGuideStore
	pending []*domain.Guide
}

func (b *memBatch) SaveGuide(_ context.Context, g *domain.Guide) error {
	if b.store.failOn != "" && strings.Contains(g.SourcePath, b.store.failOn) {
		return domain.ErrInvalidInput
	}
	b.pending = append(b.pending, g)
	return nil
}

// memGameStore is an in-memory GameStore.
type memGameStore struct {
	mu    sync.Mutex
	games map[string]*domain.Game
}

func newMemGameStore() *memGameStore {
	return &memGameStore{games: make(map[string]*domain.Game)}
}

func (s *memGameStore) SaveGame(_ context.Context, g *domain.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *g
	s.games[g.ID] = &cp
	return nil
}

func (s *memGameStore) GetGame(_ context.Context, id string) (*domain.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (s *memGameStore) GetGameByExternalID(_ context.Context, externalID string) (*domain.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.games {
		if g.ExternalID != nil && *g.ExternalID == externalID {
			cp := *g
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memGameStore) ListGames(_ context.Context, limit, offset int) ([]domain.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Game
	for _, g := range s.games {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (s *memGameStore) CountGames(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games), nil
}

func (s *memGameStore) SetCompletion(_ context.Context, id string, pct int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.games[id]
	if !ok {
		return domain.ErrNotFound
	}
	g.Completion = domain.ClampCompletion(pct)
	g.Status = domain.StatusForCompletion(pct)
	return nil
}

func (s *memGameStore) DeleteGame(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.games[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.games, id)
	return nil
}

// memBookmarkStore and memNoteStore are in-memory annotation stores.
type memBookmarkStore struct {
	mu        sync.Mutex
	bookmarks map[string]*domain.Bookmark
}

func newMemBookmarkStore() *memBookmarkStore {
	return &memBookmarkStore{bookmarks: make(map[string]*domain.Bookmark)}
}

func (s *memBookmarkStore) SaveBookmark(_ context.Context, b *domain.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *b
	s.bookmarks[b.ID] = &cp
	return nil
}

func (s *memBookmarkStore) ListBookmarks(_ context.Context, guideID string) ([]domain.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Bookmark
	for _, b := range s.bookmarks {
		if b.GuideID == guideID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (s *memBookmarkStore) DeleteBookmark(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bookmarks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.bookmarks, id)
	return nil
}

type memNoteStore struct {
	mu    sync.Mutex
	notes map[string]*domain.Note
}

func newMemNoteStore() *memNoteStore {
	return &memNoteStore{notes: make(map[string]*domain.Note)}
}

func (s *memNoteStore) SaveNote(_ context.Context, n *domain.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *n
	s.notes[n.ID] = &cp
	return nil
}

func (s *memNoteStore) ListNotes(_ context.Context, guideID string) ([]domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Note
	for _, n := range s.notes {
		if n.GuideID == guideID {
			out = append(out, *n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (s *memNoteStore) DeleteNote(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.notes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.notes, id)
	return nil
}
