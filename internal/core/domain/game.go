package domain

import "time"

// GameStatus is the play status of a game, derived from its completion
// percentage.
type GameStatus string

const (
	// StatusNotStarted means completion is 0.
	StatusNotStarted GameStatus = "not_started"

	// StatusInProgress means completion is strictly between 0 and 100.
	StatusInProgress GameStatus = "in_progress"

	// StatusCompleted means completion is 100.
	StatusCompleted GameStatus = "completed"
)

// ClampCompletion restricts a completion percentage to [0, 100].
func ClampCompletion(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// StatusForCompletion derives the play status from a completion
// percentage. The value is clamped first.
func StatusForCompletion(pct int) GameStatus {
	switch ClampCompletion(pct) {
	case 0:
		return StatusNotStarted
	case 100:
		return StatusCompleted
	default:
		return StatusInProgress
	}
}

// Game is a logical title that may span multiple guides.
type Game struct {
	// ID is the unique identifier for the game.
	ID string

	// Title is the display title.
	Title string

	// ExternalID is the stable identifier from the source archive's
	// directory naming convention. Unique across games; used to
	// deduplicate during import.
	ExternalID *string

	// Platform is the system the game was released on, if known.
	Platform string

	// Completion is the play completion percentage, 0-100 inclusive.
	Completion int

	// Status is derived from Completion.
	Status GameStatus

	// ArtworkURL points at box art or similar, if set.
	ArtworkURL string

	// Metadata contains arbitrary key-value pairs.
	Metadata map[string]any

	// CreatedAt is when the game record was created.
	CreatedAt time.Time

	// UpdatedAt is when the game record was last updated.
	UpdatedAt time.Time
}
