// Package insight implements the Insight repository using PostgreSQL.
// Insight rows are immutable: regeneration deletes and re-creates.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/sergeifrante-boop/voice-diarty/internal/adapter/postgres"
	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
)

// Repo provides insight persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new insight repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const insightColumns = "id, user_id, scope, source_entry_id, period_from, period_to, timeframe, language, summary, details, meta, created_at"

const createInsightSQL = `
INSERT INTO insights (id, user_id, scope, source_entry_id, period_from, period_to, timeframe, language, summary, details, meta, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING ` + insightColumns

// Create inserts a new insight row and returns the persisted value.
func (r *Repo) Create(ctx context.Context, in *domain.Insight) (*domain.Insight, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	meta, err := marshalMeta(in)
	if err != nil {
		return nil, err
	}

	row := q.QueryRow(ctx, createInsightSQL,
		in.ID, in.UserID, in.Scope, in.SourceEntryID,
		in.PeriodFrom, in.PeriodTo, in.Timeframe,
		in.Language, in.Summary, in.Details, meta, in.CreatedAt)

	out, err := scanInsight(row)
	if err != nil {
		return nil, postgres.MapError(err, "insight", in.ID)
	}
	return out, nil
}

const findByEntrySQL = `
SELECT ` + insightColumns + `
FROM insights
WHERE user_id = $1 AND scope = 'entry' AND source_entry_id = $2
ORDER BY created_at DESC
LIMIT 1`

// FindByEntry returns the newest entry-scope insight for the given source
// entry, or domain.ErrNotFound.
func (r *Repo) FindByEntry(ctx context.Context, userID, entryID uuid.UUID) (*domain.Insight, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	out, err := scanInsight(q.QueryRow(ctx, findByEntrySQL, userID, entryID))
	if err != nil {
		return nil, postgres.MapError(err, "insight", entryID)
	}
	return out, nil
}

const findByPeriodSQL = `
SELECT ` + insightColumns + `
FROM insights
WHERE user_id = $1 AND scope = 'period'
  AND timeframe = $2 AND period_from = $3 AND period_to = $4
ORDER BY created_at DESC
LIMIT 1`

// FindByPeriod returns the newest period-scope insight whose normalized
// bounds match exactly, or domain.ErrNotFound. Exact bound equality is the
// cache key: callers must pass bounds straight from the period normalizer.
func (r *Repo) FindByPeriod(ctx context.Context, userID uuid.UUID, tf domain.Timeframe, from, to time.Time) (*domain.Insight, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	out, err := scanInsight(q.QueryRow(ctx, findByPeriodSQL, userID, tf, from, to))
	if err != nil {
		return nil, postgres.MapError(err, "insight", userID)
	}
	return out, nil
}

const deleteInsightSQL = `DELETE FROM insights WHERE id = $1 AND user_id = $2`

// Delete removes an insight. Returns domain.ErrNotFound if absent or owned
// by another user.
func (r *Repo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteInsightSQL, id, userID)
	if err != nil {
		return postgres.MapError(err, "insight", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("insight %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

const listByUserSQL = `
SELECT ` + insightColumns + `
FROM insights
WHERE user_id = $1 AND ($2::text IS NULL OR scope = $2)
ORDER BY created_at DESC
LIMIT $3 OFFSET $4`

const countByUserSQL = `
SELECT COUNT(*)
FROM insights
WHERE user_id = $1 AND ($2::text IS NULL OR scope = $2)`

// ListByUser returns the user's insight history, newest first, optionally
// filtered by scope, plus the total count for pagination.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, scope *domain.InsightScope, limit, offset int) ([]*domain.Insight, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var total int
	if err := q.QueryRow(ctx, countByUserSQL, userID, scope).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count insights: %w", err)
	}

	rows, err := q.Query(ctx, listByUserSQL, userID, scope, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list insights: %w", err)
	}
	defer rows.Close()

	var out []*domain.Insight
	for rows.Next() {
		in, err := scanInsight(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan insight: %w", err)
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// marshalMeta encodes the scope-specific metadata as jsonb.
func marshalMeta(in *domain.Insight) ([]byte, error) {
	switch in.Scope {
	case domain.ScopeEntry:
		if in.EntryMeta == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(in.EntryMeta)
	case domain.ScopePeriod:
		if in.PeriodMeta == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(in.PeriodMeta)
	}
	return nil, fmt.Errorf("insight %s: unknown scope %q: %w", in.ID, in.Scope, domain.ErrValidation)
}

func scanInsight(row pgx.Row) (*domain.Insight, error) {
	var in domain.Insight
	var meta []byte
	err := row.Scan(&in.ID, &in.UserID, &in.Scope, &in.SourceEntryID,
		&in.PeriodFrom, &in.PeriodTo, &in.Timeframe,
		&in.Language, &in.Summary, &in.Details, &meta, &in.CreatedAt)
	if err != nil {
		return nil, err
	}

	if len(meta) > 0 {
		switch in.Scope {
		case domain.ScopeEntry:
			in.EntryMeta = &domain.EntryInsightMeta{}
			if err := json.Unmarshal(meta, in.EntryMeta); err != nil {
				return nil, fmt.Errorf("unmarshal entry meta: %w", err)
			}
		case domain.ScopePeriod:
			in.PeriodMeta = &domain.PeriodInsightMeta{}
			if err := json.Unmarshal(meta, in.PeriodMeta); err != nil {
				return nil, fmt.Errorf("unmarshal period meta: %w", err)
			}
		}
	}
	return &in, nil
}
