package driven

import (
	"context"

	"github.com/gfarchive/guidevault/internal/core/domain"
)

// BookmarkStore persists guide bookmarks.
type BookmarkStore interface {
	// SaveBookmark stores a bookmark.
	SaveBookmark(ctx context.Context, b *domain.Bookmark) error

	// ListBookmarks returns all bookmarks for a guide ordered by position.
	ListBookmarks(ctx context.Context, guideID string) ([]domain.Bookmark, error)

	// DeleteBookmark removes a bookmark by ID.
	DeleteBookmark(ctx context.Context, id string) error
}

// NoteStore persists guide notes.
type NoteStore interface {
	// SaveNote stores or updates a note.
	SaveNote(ctx context.Context, n *domain.Note) error

	// ListNotes returns all notes for a guide ordered by position.
	ListNotes(ctx context.Context, guideID string) ([]domain.Note, error)

	// DeleteNote removes a note by ID.
	DeleteNote(ctx context.Context, id string) error
}
