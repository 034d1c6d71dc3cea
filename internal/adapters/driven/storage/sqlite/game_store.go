package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gfarchive/guidevault/internal/core/domain"
	"github.com/gfarchive/guidevault/internal/core/ports/driven"
)

// gameStore implements driven.GameStore.
type gameStore struct {
	store *Store
}

var _ driven.GameStore = (*gameStore)(nil)

// SaveGame stores or updates a game. Completion is clamped and the
// status derived before the row is written.
func (s *gameStore) SaveGame(ctx context.Context, game *domain.Game) error {
	metadataJSON, err := json.Marshal(metadataOrEmpty(game.Metadata))
	if err != nil {
		return fmt.Errorf("marshalling metadata: %w", err)
	}

	game.Completion = domain.ClampCompletion(game.Completion)
	game.Status = domain.StatusForCompletion(game.Completion)

	now := time.Now().UTC()
	if game.CreatedAt.IsZero() {
		game.CreatedAt = now
	}
	game.UpdatedAt = now

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO games (id, title, external_id, platform, completion, status, artwork_url, metadata, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			external_id = excluded.external_id,
			platform = excluded.platform,
			completion = excluded.completion,
			status = excluded.status,
			artwork_url = excluded.artwork_url,
			metadata = excluded.metadata,
			updated_at = excluded.updated_at
	`, game.ID, game.Title, nullableString(game.ExternalID), game.Platform,
		game.Completion, string(game.Status), game.ArtworkURL, string(metadataJSON),
		game.CreatedAt, game.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving game: %w", err)
	}
	return nil
}

const gameColumns = `id, title, external_id, platform, completion, status, artwork_url, metadata, created_at, updated_at`

// GetGame retrieves a game by ID.
func (s *gameStore) GetGame(ctx context.Context, id string) (*domain.Game, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE id = ?`, id)
	return scanGame(row)
}

// GetGameByExternalID retrieves a game by its archive identifier.
func (s *gameStore) GetGameByExternalID(ctx context.Context, externalID string) (*domain.Game, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+gameColumns+` FROM games WHERE external_id = ?`, externalID)
	return scanGame(row)
}

// ListGames returns games ordered by title.
func (s *gameStore) ListGames(ctx context.Context, limit, offset int) ([]domain.Game, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := s.store.db.QueryContext(ctx,
		`SELECT `+gameColumns+` FROM games ORDER BY title, id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	defer rows.Close()

	var games []domain.Game
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *game)
	}
	return games, rows.Err()
}

// CountGames returns the total number of stored games.
func (s *gameStore) CountGames(ctx context.Context) (int, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM games`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting games: %w", err)
	}
	return count, nil
}

// SetCompletion updates completion, clamping and deriving the status.
func (s *gameStore) SetCompletion(ctx context.Context, id string, pct int) error {
	pct = domain.ClampCompletion(pct)
	result, err := s.store.db.ExecContext(ctx, `
		UPDATE games SET completion = ?, status = ?, updated_at = ? WHERE id = ?
	`, pct, string(domain.StatusForCompletion(pct)), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating completion: %w", err)
	}
	return requireAffected(result)
}

// DeleteGame removes a game. Guides referencing it keep their rows with
// game_id nulled by the foreign key.
func (s *gameStore) DeleteGame(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting game: %w", err)
	}
	return requireAffected(result)
}

func scanGame(row scanner) (*domain.Game, error) {
	var game domain.Game
	var externalID sql.NullString
	var metadataJSON string
	var createdAt, updatedAt sql.NullTime
	err := row.Scan(&game.ID, &game.Title, &externalID, &game.Platform, &game.Completion,
		&game.Status, &game.ArtworkURL, &metadataJSON, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning game: %w", err)
	}

	if err := json.Unmarshal([]byte(metadataJSON), &game.Metadata); err != nil {
		return nil, fmt.Errorf("unmarshaling metadata: %w", err)
	}
	if externalID.Valid {
		game.ExternalID = &externalID.String
	}
	if createdAt.Valid {
		game.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		game.UpdatedAt = updatedAt.Time
	}
	return &game, nil
}
