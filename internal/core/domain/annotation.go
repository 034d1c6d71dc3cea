package domain

import "time"

// Bookmark marks a position within a guide. Bookmarks are deleted with
// their parent guide.
type Bookmark struct {
	// ID is the unique identifier for the bookmark.
	ID string

	// GuideID links to the parent Guide.
	GuideID string

	// Position is the character offset into the guide content.
	Position int

	// Label is an optional short description.
	Label string

	// CreatedAt is when the bookmark was created.
	CreatedAt time.Time
}

// Note is free-form text attached to a position within a guide. Notes are
// deleted with their parent guide.
type Note struct {
	// ID is the unique identifier for the note.
	ID string

	// GuideID links to the parent Guide.
	GuideID string

	// Position is the character offset into the guide content.
	Position int

	// Content is the note text.
	Content string

	// CreatedAt is when the note was created.
	CreatedAt time.Time

	// UpdatedAt is when the note was last updated.
	UpdatedAt time.Time
}
