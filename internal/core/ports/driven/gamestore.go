package driven

import (
	"context"

	"github.com/gfarchive/guidevault/internal/core/domain"
)

// GameStore persists game records.
type GameStore interface {
	// SaveGame stores or updates a game. Completion is clamped and the
	// status derived before storage.
	SaveGame(ctx context.Context, game *domain.Game) error

	// GetGame retrieves a game by ID.
	GetGame(ctx context.Context, id string) (*domain.Game, error)

	// GetGameByExternalID retrieves a game by its archive-derived
	// external identifier.
	GetGameByExternalID(ctx context.Context, externalID string) (*domain.Game, error)

	// ListGames returns games ordered by title.
	ListGames(ctx context.Context, limit, offset int) ([]domain.Game, error)

	// CountGames returns the total number of stored games.
	CountGames(ctx context.Context) (int, error)

	// SetCompletion updates the completion percentage, clamping to
	// [0, 100] and deriving the status.
	SetCompletion(ctx context.Context, id string, pct int) error

	// DeleteGame removes a game. Dependent guides keep their rows with
	// the game reference nulled.
	DeleteGame(ctx context.Context, id string) error
}
