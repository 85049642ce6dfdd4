// Package tag implements the Tag repository using PostgreSQL.
// Tag names are stored normalized (lowercase) and unique per owner.
package tag

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/sergeifrante-boop/voice-diarty/internal/adapter/postgres"
	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
)

// Repo provides tag persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new tag repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const upsertTagSQL = `
INSERT INTO tags (id, user_id, name, created_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (user_id, name) DO NOTHING`

const selectTagsByNamesSQL = `
SELECT id, user_id, name, created_at
FROM tags
WHERE user_id = $1 AND name = ANY($2)`

// GetOrCreate resolves normalized tag names to tag rows, creating missing
// ones. Input names must already be normalized (see domain.NormalizeTagNames).
// The result order follows the input order.
func (r *Repo) GetOrCreate(ctx context.Context, userID uuid.UUID, names []string) ([]domain.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	// ON CONFLICT DO NOTHING makes concurrent creation of the same name safe.
	for _, name := range names {
		if _, err := q.Exec(ctx, upsertTagSQL, uuid.New(), userID, name); err != nil {
			return nil, postgres.MapError(err, "tag", userID)
		}
	}

	rows, err := q.Query(ctx, selectTagsByNamesSQL, userID, names)
	if err != nil {
		return nil, fmt.Errorf("select tags: %w", err)
	}
	defer rows.Close()

	byName := make(map[string]domain.Tag, len(names))
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		byName[t.Name] = t
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]domain.Tag, 0, len(names))
	for _, name := range names {
		if t, ok := byName[name]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

const deleteEntryTagsSQL = `DELETE FROM entry_tags WHERE entry_id = $1`
const insertEntryTagSQL = `
INSERT INTO entry_tags (entry_id, tag_id)
VALUES ($1, $2)
ON CONFLICT (entry_id, tag_id) DO NOTHING`

// ReplaceEntryTags rebinds an entry to exactly the given tags.
func (r *Repo) ReplaceEntryTags(ctx context.Context, entryID uuid.UUID, tagIDs []uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, deleteEntryTagsSQL, entryID); err != nil {
		return postgres.MapError(err, "entry_tags", entryID)
	}
	for _, tagID := range tagIDs {
		if _, err := q.Exec(ctx, insertEntryTagSQL, entryID, tagID); err != nil {
			return postgres.MapError(err, "entry_tags", entryID)
		}
	}
	return nil
}

const cloudByUserSQL = `
SELECT t.name, COUNT(et.entry_id) AS weight
FROM tags t
JOIN entry_tags et ON et.tag_id = t.id
JOIN entries e ON e.id = et.entry_id
WHERE e.user_id = $1
GROUP BY t.name
ORDER BY weight DESC, t.name ASC`

// CloudByUser returns the user's tag cloud: tags with usage counts, most
// frequent first, name as tiebreaker.
func (r *Repo) CloudByUser(ctx context.Context, userID uuid.UUID) ([]domain.WeightedTag, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, cloudByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("tag cloud: %w", err)
	}
	defer rows.Close()

	var out []domain.WeightedTag
	for rows.Next() {
		var wt domain.WeightedTag
		if err := rows.Scan(&wt.Tag, &wt.Weight); err != nil {
			return nil, fmt.Errorf("scan tag cloud row: %w", err)
		}
		out = append(out, wt)
	}
	return out, rows.Err()
}
