// Package token implements the refresh-token repository using PostgreSQL.
package token

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/sergeifrante-boop/voice-diarty/internal/adapter/postgres"
	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
)

// Repo provides refresh-token persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new refresh-token repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createTokenSQL = `
INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at)
VALUES ($1, $2, $3, $4, $5)`

// Create stores a hashed refresh token.
func (r *Repo) Create(ctx context.Context, t *domain.RefreshToken) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, createTokenSQL, t.ID, t.UserID, t.TokenHash, t.ExpiresAt, t.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "refresh_token", t.ID)
	}
	return nil
}

const getTokenByHashSQL = `
SELECT id, user_id, token_hash, expires_at, created_at, revoked_at
FROM refresh_tokens
WHERE token_hash = $1`

// GetByHash returns a refresh token by its hash. Returns domain.ErrNotFound
// if no such token exists.
func (r *Repo) GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var t domain.RefreshToken
	err := q.QueryRow(ctx, getTokenByHashSQL, hash).
		Scan(&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt, &t.RevokedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("refresh token: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get refresh token: %w", err)
	}
	return &t, nil
}

const revokeTokenSQL = `
UPDATE refresh_tokens SET revoked_at = $2
WHERE id = $1 AND revoked_at IS NULL`

// Revoke marks a token revoked. Idempotent: revoking twice is not an error.
func (r *Repo) Revoke(ctx context.Context, id uuid.UUID, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, revokeTokenSQL, id, at); err != nil {
		return postgres.MapError(err, "refresh_token", id)
	}
	return nil
}

const revokeAllForUserSQL = `
UPDATE refresh_tokens SET revoked_at = $2
WHERE user_id = $1 AND revoked_at IS NULL`

// RevokeAllForUser revokes every active token of a user (logout).
func (r *Repo) RevokeAllForUser(ctx context.Context, userID uuid.UUID, at time.Time) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, revokeAllForUserSQL, userID, at); err != nil {
		return postgres.MapError(err, "refresh_token", userID)
	}
	return nil
}

const deleteExpiredSQL = `DELETE FROM refresh_tokens WHERE expires_at < $1`

// DeleteExpired removes tokens past their expiry. Returns the number deleted.
func (r *Repo) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, deleteExpiredSQL, before)
	if err != nil {
		return 0, fmt.Errorf("delete expired refresh tokens: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
