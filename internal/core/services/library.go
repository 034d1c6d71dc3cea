package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gfarchive/guidevault/internal/core/domain"
	"github.com/gfarchive/guidevault/internal/core/ports/driven"
	"github.com/gfarchive/guidevault/internal/core/ports/driving"
)

// Ensure Library implements the driving port.
var _ driving.LibraryService = (*Library)(nil)

// Library is the accessor service over the populated store: guide and
// game reads and updates plus bookmark and note management.
type Library struct {
	guides    driven.GuideStore
	games     driven.GameStore
	bookmarks driven.BookmarkStore
	notes     driven.NoteStore
}

// NewLibrary creates the library service.
func NewLibrary(guides driven.GuideStore, games driven.GameStore, bookmarks driven.BookmarkStore, notes driven.NoteStore) *Library {
	return &Library{
		guides:    guides,
		games:     games,
		bookmarks: bookmarks,
		notes:     notes,
	}
}

// GetGuide retrieves a guide by ID.
func (l *Library) GetGuide(ctx context.Context, id string) (*domain.Guide, error) {
	return l.guides.GetGuide(ctx, id)
}

// ListGuides returns guides matching the options.
func (l *Library) ListGuides(ctx context.Context, opts driven.GuideListOptions) ([]domain.Guide, error) {
	return l.guides.ListGuides(ctx, opts)
}

// DeleteGuide removes a guide with its bookmarks and notes.
func (l *Library) DeleteGuide(ctx context.Context, id string) error {
	return l.guides.DeleteGuide(ctx, id)
}

// UpdateGuideMetadata replaces a guide's metadata blob.
func (l *Library) UpdateGuideMetadata(ctx context.Context, id string, metadata map[string]any) error {
	if metadata == nil {
		return fmt.Errorf("%w: metadata must not be nil", domain.ErrInvalidInput)
	}
	return l.guides.UpdateGuideMetadata(ctx, id, metadata)
}

// UpdateLastRead sets a guide's read cursor.
func (l *Library) UpdateLastRead(ctx context.Context, id string, position int) error {
	if position < 0 {
		return fmt.Errorf("%w: position must not be negative", domain.ErrInvalidInput)
	}
	return l.guides.UpdateLastRead(ctx, id, position)
}

// GetGame retrieves a game by ID.
func (l *Library) GetGame(ctx context.Context, id string) (*domain.Game, error) {
	return l.games.GetGame(ctx, id)
}

// ListGames returns games ordered by title.
func (l *Library) ListGames(ctx context.Context, limit, offset int) ([]domain.Game, error) {
	return l.games.ListGames(ctx, limit, offset)
}

// SetGameCompletion updates a game's completion percentage. Out-of-range
// values are clamped, never rejected.
func (l *Library) SetGameCompletion(ctx context.Context, id string, pct int) error {
	return l.games.SetCompletion(ctx, id, domain.ClampCompletion(pct))
}

// DeleteGame removes a game. Its guides survive with the link nulled.
func (l *Library) DeleteGame(ctx context.Context, id string) error {
	return l.games.DeleteGame(ctx, id)
}

// AddBookmark creates a bookmark on a guide.
func (l *Library) AddBookmark(ctx context.Context, guideID string, position int, label string) (*domain.Bookmark, error) {
	if position < 0 {
		return nil, fmt.Errorf("%w: position must not be negative", domain.ErrInvalidInput)
	}
	if _, err := l.guides.GetGuide(ctx, guideID); err != nil {
		return nil, err
	}

	b := &domain.Bookmark{
		ID:        uuid.New().String(),
		GuideID:   guideID,
		Position:  position,
		Label:     strings.TrimSpace(label),
		CreatedAt: time.Now().UTC(),
	}
	if err := l.bookmarks.SaveBookmark(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ListBookmarks returns a guide's bookmarks ordered by position.
func (l *Library) ListBookmarks(ctx context.Context, guideID string) ([]domain.Bookmark, error) {
	return l.bookmarks.ListBookmarks(ctx, guideID)
}

// RemoveBookmark deletes a bookmark.
func (l *Library) RemoveBookmark(ctx context.Context, id string) error {
	return l.bookmarks.DeleteBookmark(ctx, id)
}

// AddNote creates a note on a guide.
func (l *Library) AddNote(ctx context.Context, guideID string, position int, content string) (*domain.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%w: note content must not be empty", domain.ErrInvalidInput)
	}
	if position < 0 {
		return nil, fmt.Errorf("%w: position must not be negative", domain.ErrInvalidInput)
	}
	if _, err := l.guides.GetGuide(ctx, guideID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	n := &domain.Note{
		ID:        uuid.New().String(),
		GuideID:   guideID,
		Position:  position,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := l.notes.SaveNote(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// ListNotes returns a guide's notes ordered by position.
func (l *Library) ListNotes(ctx context.Context, guideID string) ([]domain.Note, error) {
	return l.notes.ListNotes(ctx, guideID)
}

// RemoveNote deletes a note.
func (l *Library) RemoveNote(ctx context.Context, id string) error {
	return l.notes.DeleteNote(ctx, id)
}
