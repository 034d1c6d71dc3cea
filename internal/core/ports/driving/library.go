package driving

import (
	"context"

	"github.com/gfarchive/guidevault/internal/core/domain"
	"github.com/gfarchive/guidevault/internal/core/ports/driven"
)

// LibraryService exposes the accessor operations clients use against the
// populated store: guide and game reads and updates plus bookmark and note
// management.
type LibraryService interface {
	// GetGuide retrieves a guide by ID.
	GetGuide(ctx context.Context, id string) (*domain.Guide, error)

	// ListGuides returns guides matching the options.
	ListGuides(ctx context.Context, opts driven.GuideListOptions) ([]domain.Guide, error)

	// DeleteGuide removes a guide with its bookmarks and notes.
	DeleteGuide(ctx context.Context, id string) error

	// UpdateGuideMetadata replaces a guide's metadata blob. This is the
	// write path enrichment consumers use.
	UpdateGuideMetadata(ctx context.Context, id string, metadata map[string]any) error

	// UpdateLastRead sets a guide's read cursor.
	UpdateLastRead(ctx context.Context, id string, position int) error

	// GetGame retrieves a game by ID.
	GetGame(ctx context.Context, id string) (*domain.Game, error)

	// ListGames returns games ordered by title.
	ListGames(ctx context.Context, limit, offset int) ([]domain.Game, error)

	// SetGameCompletion updates completion, clamping and deriving status.
	SetGameCompletion(ctx context.Context, id string, pct int) error

	// DeleteGame removes a game, nulling references on its guides.
	DeleteGame(ctx context.Context, id string) error

	// AddBookmark creates a bookmark on a guide.
	AddBookmark(ctx context.Context, guideID string, position int, label string) (*domain.Bookmark, error)

	// ListBookmarks returns a guide's bookmarks ordered by position.
	ListBookmarks(ctx context.Context, guideID string) ([]domain.Bookmark, error)

	// RemoveBookmark deletes a bookmark.
	RemoveBookmark(ctx context.Context, id string) error

	// AddNote creates a note on a guide.
	AddNote(ctx context.Context, guideID string, position int, content string) (*domain.Note, error)

	// ListNotes returns a guide's notes ordered by position.
	ListNotes(ctx context.Context, guideID string) ([]domain.Note, error)

	// RemoveNote deletes a note.
	RemoveNote(ctx context.Context, id string) error
}
