package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gfarchive/guidevault/internal/core/domain"
	"github.com/gfarchive/guidevault/internal/core/ports/driven"
)

// bookmarkStore implements driven.BookmarkStore.
type bookmarkStore struct {
	store *Store
}

var _ driven.BookmarkStore = (*bookmarkStore)(nil)

// SaveBookmark stores a bookmark.
func (s *bookmarkStore) SaveBookmark(ctx context.Context, b *domain.Bookmark) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO bookmarks (id, guide_id, position, label, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, b.ID, b.GuideID, b.Position, b.Label, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving bookmark: %w", err)
	}
	return nil
}

// ListBookmarks returns a guide's bookmarks ordered by position.
func (s *bookmarkStore) ListBookmarks(ctx context.Context, guideID string) ([]domain.Bookmark, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, guide_id, position, label, created_at
		FROM bookmarks WHERE guide_id = ? ORDER BY position, created_at
	`, guideID)
	if err != nil {
		return nil, fmt.Errorf("listing bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []domain.Bookmark
	for rows.Next() {
		var b domain.Bookmark
		var createdAt sql.NullTime
		if err := rows.Scan(&b.ID, &b.GuideID, &b.Position, &b.Label, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning bookmark: %w", err)
		}
		if createdAt.Valid {
			b.CreatedAt = createdAt.Time
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, rows.Err()
}

// DeleteBookmark removes a bookmark by ID.
func (s *bookmarkStore) DeleteBookmark(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting bookmark: %w", err)
	}
	return requireAffected(result)
}

// noteStore implements driven.NoteStore.
type noteStore struct {
	store *Store
}

var _ driven.NoteStore = (*noteStore)(nil)

// SaveNote stores or updates a note.
func (s *noteStore) SaveNote(ctx context.Context, n *domain.Note) error {
	now := time.Now().UTC()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	n.UpdatedAt = now

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO notes (id, guide_id, position, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			position = excluded.position,
			content = excluded.content,
			updated_at = excluded.updated_at
	`, n.ID, n.GuideID, n.Position, n.Content, n.CreatedAt, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving note: %w", err)
	}
	return nil
}

// ListNotes returns a guide's notes ordered by position.
func (s *noteStore) ListNotes(ctx context.Context, guideID string) ([]domain.Note, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, guide_id, position, content, created_at, updated_at
		FROM notes WHERE guide_id = ? ORDER BY position, created_at
	`, guideID)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var n domain.Note
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&n.ID, &n.GuideID, &n.Position, &n.Content, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		if createdAt.Valid {
			n.CreatedAt = createdAt.Time
		}
		if updatedAt.Valid {
			n.UpdatedAt = updatedAt.Time
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// DeleteNote removes a note by ID.
func (s *noteStore) DeleteNote(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}
	return requireAffected(result)
}
