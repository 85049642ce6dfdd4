// Package entry implements the Entry repository using PostgreSQL.
// Entries are read-mostly: analysis results are written once after creation,
// everything else is immutable.
package entry

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/sergeifrante-boop/voice-diarty/internal/adapter/postgres"
	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
)

// Repo provides entry persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new entry repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const entryColumns = "id, user_id, transcript, title, mood_label, insights, word_count, created_at"

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const createEntrySQL = `
INSERT INTO entries (id, user_id, transcript, title, mood_label, insights, word_count, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + entryColumns

// Create inserts a new entry and returns the persisted row (without tags).
func (r *Repo) Create(ctx context.Context, e *domain.Entry) (*domain.Entry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	insights, err := marshalInsights(e.Insights)
	if err != nil {
		return nil, fmt.Errorf("marshal insights: %w", err)
	}

	row := q.QueryRow(ctx, createEntrySQL,
		e.ID, e.UserID, e.Transcript, e.Title, e.MoodLabel, insights, e.WordCount, e.CreatedAt)

	out, err := scanEntry(row)
	if err != nil {
		return nil, postgres.MapError(err, "entry", e.ID)
	}
	return out, nil
}

const updateAnalysisSQL = `
UPDATE entries
SET title = $3, mood_label = $4, insights = $5
WHERE id = $1 AND user_id = $2`

// UpdateAnalysis writes the whole-transcript analysis results onto an entry.
// Returns domain.ErrNotFound if the entry does not exist or belongs to
// another user.
func (r *Repo) UpdateAnalysis(ctx context.Context, userID, entryID uuid.UUID, title, moodLabel string, insights []string) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	blob, err := marshalInsights(insights)
	if err != nil {
		return fmt.Errorf("marshal insights: %w", err)
	}

	tag, err := q.Exec(ctx, updateAnalysisSQL, entryID, userID, title, moodLabel, blob)
	if err != nil {
		return postgres.MapError(err, "entry", entryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry %s: %w", entryID, domain.ErrNotFound)
	}
	return nil
}

const deleteEntrySQL = `DELETE FROM entries WHERE id = $1 AND user_id = $2`

// Delete removes an entry (and, via cascade, its tag bindings and
// entry-scope insights). Returns domain.ErrNotFound if the entry does not
// exist or belongs to another user.
func (r *Repo) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteEntrySQL, entryID, userID)
	if err != nil {
		return postgres.MapError(err, "entry", entryID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("entry %s: %w", entryID, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

const getEntryByIDSQL = `
SELECT ` + entryColumns + `
FROM entries
WHERE id = $1 AND user_id = $2`

// GetByID returns an entry with its tags loaded.
// Returns domain.ErrNotFound if the entry does not exist or belongs to
// another user.
func (r *Repo) GetByID(ctx context.Context, userID, entryID uuid.UUID) (*domain.Entry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	e, err := scanEntry(q.QueryRow(ctx, getEntryByIDSQL, entryID, userID))
	if err != nil {
		return nil, postgres.MapError(err, "entry", entryID)
	}

	if err := r.loadTags(ctx, []*domain.Entry{e}); err != nil {
		return nil, err
	}
	return e, nil
}

// List returns entries matching the filter ordered by created_at DESC,
// plus the total count for pagination. Tags are loaded for every returned
// entry.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, f domain.EntryFilter) ([]*domain.Entry, int, error) {
	f.Normalize()
	q := postgres.QuerierFromCtx(ctx, r.pool)

	base := psql.Select().From("entries e").Where(sq.Eq{"e.user_id": userID})
	if f.DateFrom != nil {
		base = base.Where(sq.GtOrEq{"e.created_at": *f.DateFrom})
	}
	if f.DateTo != nil {
		base = base.Where(sq.LtOrEq{"e.created_at": *f.DateTo})
	}
	if f.Tag != nil {
		base = base.
			Join("entry_tags et ON et.entry_id = e.id").
			Join("tags t ON t.id = et.tag_id").
			Where(sq.Eq{"t.name": domain.NormalizeTagName(*f.Tag)})
	}

	countSQL, countArgs, err := base.Column("COUNT(DISTINCT e.id)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count entries: %w", err)
	}

	listSQL, listArgs, err := base.
		Columns("DISTINCT e.id", "e.user_id", "e.transcript", "e.title", "e.mood_label", "e.insights", "e.word_count", "e.created_at").
		OrderBy("e.created_at DESC").
		Limit(uint64(f.Limit)).
		Offset(uint64(f.Offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list query: %w", err)
	}

	rows, err := q.Query(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, 0, err
	}

	if err := r.loadTags(ctx, entries); err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

const listByPeriodSQL = `
SELECT ` + entryColumns + `
FROM entries
WHERE user_id = $1 AND created_at >= $2 AND created_at <= $3
ORDER BY created_at ASC`

// ListByPeriod returns all entries inside [from, to] inclusive, ordered by
// creation time ascending, with tags loaded. The ordering is load-bearing
// for aggregation sampling and calendar grouping.
func (r *Repo) ListByPeriod(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.Entry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listByPeriodSQL, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list entries by period: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}

	if err := r.loadTags(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ---------------------------------------------------------------------------
// Tag loading
// ---------------------------------------------------------------------------

const loadTagsSQL = `
SELECT et.entry_id, t.id, t.user_id, t.name, t.created_at
FROM entry_tags et
JOIN tags t ON t.id = et.tag_id
WHERE et.entry_id = ANY($1)
ORDER BY t.name ASC`

// loadTags fills Tags on every entry in one query.
func (r *Repo) loadTags(ctx context.Context, entries []*domain.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	ids := make([]uuid.UUID, len(entries))
	byID := make(map[uuid.UUID]*domain.Entry, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
		byID[e.ID] = e
	}

	rows, err := q.Query(ctx, loadTagsSQL, ids)
	if err != nil {
		return fmt.Errorf("load entry tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entryID uuid.UUID
		var t domain.Tag
		if err := rows.Scan(&entryID, &t.ID, &t.UserID, &t.Name, &t.CreatedAt); err != nil {
			return fmt.Errorf("scan entry tag: %w", err)
		}
		if e, ok := byID[entryID]; ok {
			e.Tags = append(e.Tags, t)
		}
	}
	return rows.Err()
}

// ---------------------------------------------------------------------------
// Scanning helpers
// ---------------------------------------------------------------------------

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var e domain.Entry
	var insights []byte
	err := row.Scan(&e.ID, &e.UserID, &e.Transcript, &e.Title, &e.MoodLabel, &insights, &e.WordCount, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	if len(insights) > 0 {
		if err := json.Unmarshal(insights, &e.Insights); err != nil {
			return nil, fmt.Errorf("unmarshal insights: %w", err)
		}
	}
	return &e, nil
}

func scanEntries(rows pgx.Rows) ([]*domain.Entry, error) {
	var out []*domain.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// marshalInsights encodes the legacy snippet list as jsonb, never NULL.
func marshalInsights(insights []string) ([]byte, error) {
	if insights == nil {
		insights = []string{}
	}
	return json.Marshal(insights)
}
