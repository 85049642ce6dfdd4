package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
)

// Hand-written mocks with overridable func fields.

type userRepoMock struct {
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	CreateFunc     func(ctx context.Context, user *domain.User) (*domain.User, error)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *userRepoMock) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return m.CreateFunc(ctx, user)
}

type tokenRepoMock struct {
	CreateFunc           func(ctx context.Context, token *domain.RefreshToken) error
	GetByHashFunc        func(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)
	RevokeFunc           func(ctx context.Context, id uuid.UUID, at time.Time) error
	RevokeAllForUserFunc func(ctx context.Context, userID uuid.UUID, at time.Time) error
	DeleteExpiredFunc    func(ctx context.Context, before time.Time) (int, error)
}

func (m *tokenRepoMock) Create(ctx context.Context, token *domain.RefreshToken) error {
	return m.CreateFunc(ctx, token)
}

func (m *tokenRepoMock) GetByHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error) {
	return m.GetByHashFunc(ctx, tokenHash)
}

func (m *tokenRepoMock) Revoke(ctx context.Context, id uuid.UUID, at time.Time) error {
	return m.RevokeFunc(ctx, id, at)
}

func (m *tokenRepoMock) RevokeAllForUser(ctx context.Context, userID uuid.UUID, at time.Time) error {
	return m.RevokeAllForUserFunc(ctx, userID, at)
}

func (m *tokenRepoMock) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	return m.DeleteExpiredFunc(ctx, before)
}

// txManagerMock runs the callback directly without a real transaction.
type txManagerMock struct{}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type jwtManagerMock struct {
	GenerateAccessTokenFunc  func(userID uuid.UUID) (string, error)
	ValidateAccessTokenFunc  func(token string) (uuid.UUID, error)
	GenerateRefreshTokenFunc func() (string, string, error)
}

func (m *jwtManagerMock) GenerateAccessToken(userID uuid.UUID) (string, error) {
	return m.GenerateAccessTokenFunc(userID)
}

func (m *jwtManagerMock) ValidateAccessToken(token string) (uuid.UUID, error) {
	return m.ValidateAccessTokenFunc(token)
}

func (m *jwtManagerMock) GenerateRefreshToken() (string, string, error) {
	return m.GenerateRefreshTokenFunc()
}
