package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gfarchive/guidevault/internal/core/domain"
	"github.com/gfarchive/guidevault/internal/core/ports/driven"
)

// defaultListLimit caps guide listings when the caller does not.
const defaultListLimit = 100

// guideStore implements driven.GuideStore and driven.BatchStore.
type guideStore struct {
	store *Store
}

var (
	_ driven.GuideStore = (*guideStore)(nil)
	_ driven.BatchStore = (*guideStore)(nil)
)

// SaveGuide stores or updates a guide.
func (s *guideStore) SaveGuide(ctx context.Context, guide *domain.Guide) error {
	return saveGuide(ctx, s.store.db, guide)
}

// WithBatch runs fn against a single transaction, committing on nil and
// rolling back otherwise.
func (s *guideStore) WithBatch(ctx context.Context, fn func(w driven.GuideWriter) error) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning batch: %w", err)
	}

	if err := fn(&txGuideWriter{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rolling back batch after %w: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}
	return nil
}

// txGuideWriter is the write surface handed to batch functions.
type txGuideWriter struct {
	tx *sql.Tx
}

var _ driven.GuideWriter = (*txGuideWriter)(nil)

func (w *txGuideWriter) SaveGuide(ctx context.Context, guide *domain.Guide) error {
	return saveGuide(ctx, w.tx, guide)
}

// saveGuide upserts one guide row. The tags column is derived from the
// metadata blob so the trigger-maintained metadata index stays current.
func saveGuide(ctx context.Context, db execer, guide *domain.Guide) error {
	metadataJSON, err := json.Marshal(metadataOrEmpty(guide.Metadata))
	if err != nil {
		return fmt.Errorf("marshalling metadata: %w", err)
	}

	now := time.Now().UTC()
	if guide.CreatedAt.IsZero() {
		guide.CreatedAt = now
	}
	guide.UpdatedAt = now

	_, err = db.ExecContext(ctx, `
		INSERT INTO guides (id, game_id, title, content, format, source_path, last_read_position, tags, metadata, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			game_id = excluded.game_id,
			title = excluded.title,
			content = excluded.content,
			format = excluded.format,
			source_path = excluded.source_path,
			tags = excluded.tags,
			metadata = excluded.metadata,
			updated_at = excluded.updated_at
	`, guide.ID, nullableString(guide.GameID), guide.Title, guide.Content, string(guide.Format),
		guide.SourcePath, guide.LastReadPosition, tagsColumn(guide.Tags()), string(metadataJSON),
		guide.CreatedAt, guide.UpdatedAt)

	if err != nil {
		return fmt.Errorf("saving guide: %w", err)
	}
	return nil
}

const guideColumns = `id, game_id, title, content, format, source_path, last_read_position, metadata, created_at, updated_at`

// GetGuide retrieves a guide by ID.
func (s *guideStore) GetGuide(ctx context.Context, id string) (*domain.Guide, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+guideColumns+` FROM guides WHERE id = ?`, id)
	return scanGuide(row)
}

// ListGuides returns guides matching the options, newest first.
func (s *guideStore) ListGuides(ctx context.Context, opts driven.GuideListOptions) ([]domain.Guide, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `SELECT ` + guideColumns + ` FROM guides`
	args := []any{}
	if opts.GameID != "" {
		query += ` WHERE game_id = ?`
		args = append(args, opts.GameID)
	}
	query += ` ORDER BY created_at DESC, id LIMIT ? OFFSET ?`
	args = append(args, limit, opts.Offset)

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing guides: %w", err)
	}
	defer rows.Close()

	var guides []domain.Guide
	for rows.Next() {
		guide, err := scanGuide(rows)
		if err != nil {
			return nil, err
		}
		guides = append(guides, *guide)
	}
	return guides, rows.Err()
}

// CountGuides returns the total number of stored guides.
func (s *guideStore) CountGuides(ctx context.Context) (int, error) {
	var count int
	err := s.store.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM guides`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting guides: %w", err)
	}
	return count, nil
}

// DeleteGuide removes a guide. Bookmarks and notes cascade.
func (s *guideStore) DeleteGuide(ctx context.Context, id string) error {
	result, err := s.store.db.ExecContext(ctx, `DELETE FROM guides WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting guide: %w", err)
	}
	return requireAffected(result)
}

// UpdateGuideMetadata replaces the metadata blob without touching the
// guide's content, so only the metadata index gets reindexed.
func (s *guideStore) UpdateGuideMetadata(ctx context.Context, id string, metadata map[string]any) error {
	metadataJSON, err := json.Marshal(metadataOrEmpty(metadata))
	if err != nil {
		return fmt.Errorf("marshalling metadata: %w", err)
	}

	probe := domain.Guide{Metadata: metadata}
	result, err := s.store.db.ExecContext(ctx, `
		UPDATE guides SET metadata = ?, tags = ?, updated_at = ? WHERE id = ?
	`, string(metadataJSON), tagsColumn(probe.Tags()), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("updating guide metadata: %w", err)
	}
	return requireAffected(result)
}

// UpdateLastRead sets the read cursor. A cursor move is not a content
// edit, so updated_at is left alone.
func (s *guideStore) UpdateLastRead(ctx context.Context, id string, position int) error {
	result, err := s.store.db.ExecContext(ctx, `
		UPDATE guides SET last_read_position = ? WHERE id = ?
	`, position, id)
	if err != nil {
		return fmt.Errorf("updating read position: %w", err)
	}
	return requireAffected(result)
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanGuide(row scanner) (*domain.Guide, error) {
	var guide domain.Guide
	var gameID sql.NullString
	var metadataJSON string
	var createdAt, updatedAt sql.NullTime
	err := row.Scan(&guide.ID, &gameID, &guide.Title, &guide.Content, &guide.Format,
		&guide.SourcePath, &guide.LastReadPosition, &metadataJSON, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning guide: %w", err)
	}

	if err := json.Unmarshal([]byte(metadataJSON), &guide.Metadata); err != nil {
		return nil, fmt.Errorf("unmarshaling metadata: %w", err)
	}
	if gameID.Valid {
		guide.GameID = &gameID.String
	}
	if createdAt.Valid {
		guide.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		guide.UpdatedAt = updatedAt.Time
	}
	return &guide, nil
}

// tagsColumn flattens a tag list into the denormalised tags column.
func tagsColumn(tags []string) string {
	return strings.Join(tags, " ")
}

func metadataOrEmpty(metadata map[string]any) map[string]any {
	if metadata == nil {
		return map[string]any{}
	}
	return metadata
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// requireAffected converts a zero-row write into ErrNotFound.
func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
