package cli

import (
	"context"

	"github.com/gfarchive/guidevault/internal/core/domain"
	"github.com/gfarchive/guidevault/internal/core/ports/driven"
)

// mockSearchService returns canned results.
type mockSearchService struct {
	results *domain.SearchResults
	err     error
}

func (m *mockSearchService) Search(context.Context, string, int) (*domain.SearchResults, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.results, nil
}

// mockLibrary serves a fixed set of guides and games.
type mockLibrary struct {
	guides []domain.Guide
	games  []domain.Game
}

func (m *mockLibrary) find(id string) *domain.Guide {
	for i := range m.guides {
		if m.guides[i].ID == id {
			return &m.guides[i]
		}
	}
	return nil
}

func (m *mockLibrary) GetGuide(_ context.Context, id string) (*domain.Guide, error) {
	if g := m.find(id); g != nil {
		return g, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockLibrary) ListGuides(context.Context, driven.GuideListOptions) ([]domain.Guide, error) {
	return m.guides, nil
}

func (m *mockLibrary) DeleteGuide(_ context.Context, id string) error {
	if m.find(id) == nil {
		return domain.ErrNotFound
	}
	return nil
}

func (m *mockLibrary) UpdateGuideMetadata(context.Context, string, map[string]any) error {
	return nil
}

func (m *mockLibrary) UpdateLastRead(_ context.Context, id string, _ int) error {
	if m.find(id) == nil {
		return domain.ErrNotFound
	}
	return nil
}

func (m *mockLibrary) GetGame(_ context.Context, id string) (*domain.Game, error) {
	for i := range m.games {
		if m.games[i].ID == id {
			return &m.games[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockLibrary) ListGames(context.Context, int, int) ([]domain.Game, error) {
	return m.games, nil
}

func (m *mockLibrary) SetGameCompletion(_ context.Context, id string, pct int) error {
	for i := range m.games {
		if m.games[i].ID == id {
			m.games[i].Completion = domain.ClampCompletion(pct)
			m.games[i].Status = domain.StatusForCompletion(pct)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockLibrary) DeleteGame(context.Context, string) error { return nil }

func (m *mockLibrary) AddBookmark(_ context.Context, guideID string, position int, label string) (*domain.Bookmark, error) {
	return &domain.Bookmark{ID: "bm-1", GuideID: guideID, Position: position, Label: label}, nil
}

func (m *mockLibrary) ListBookmarks(context.Context, string) ([]domain.Bookmark, error) {
	return nil, nil
}

func (m *mockLibrary) RemoveBookmark(context.Context, string) error { return nil }

func (m *mockLibrary) AddNote(_ context.Context, guideID string, position int, content string) (*domain.Note, error) {
	return &domain.Note{ID: "note-1", GuideID: guideID, Position: position, Content: content}, nil
}

func (m *mockLibrary) ListNotes(context.Context, string) ([]domain.Note, error) { return nil, nil }

func (m *mockLibrary) RemoveNote(context.Context, string) error { return nil }

// mockBootstrapper reports a fixed status.
type mockBootstrapper struct {
	status  domain.ImportStatus
	initErr error
}

func (m *mockBootstrapper) Initialize(context.Context) error { return m.initErr }

func (m *mockBootstrapper) Status() domain.ImportStatus { return m.status }

func (m *mockBootstrapper) IsComplete() bool { return m.status.Stage == domain.StageComplete }

func (m *mockBootstrapper) HasError() bool { return m.status.Stage == domain.StageError }

func (m *mockBootstrapper) Subscribe(func(domain.ImportStatus)) (unsubscribe func()) {
	return func() {}
}
