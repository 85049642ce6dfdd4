package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	authpkg "github.com/sergeifrante-boop/voice-diarty/internal/auth"
	"github.com/sergeifrante-boop/voice-diarty/internal/config"
	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
	"github.com/sergeifrante-boop/voice-diarty/pkg/ctxutil"
)

// defaultCfg returns a config suitable for most tests.
func defaultCfg() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:        "0123456789abcdef0123456789abcdef",
		JWTIssuer:        "voice-diary-test",
		AccessTokenTTL:   time.Hour,
		RefreshTokenTTL:  30 * 24 * time.Hour,
		PasswordHashCost: bcrypt.MinCost, // minimum cost for fast tests
	}
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashPassword: %v", err)
	}
	return string(hash)
}

func staticJWT() *jwtManagerMock {
	return &jwtManagerMock{
		GenerateAccessTokenFunc: func(uuid.UUID) (string, error) {
			return "access-token", nil
		},
		GenerateRefreshTokenFunc: func() (string, string, error) {
			return "raw-refresh", "hash-refresh", nil
		},
	}
}

func newTestService(users *userRepoMock, tokens *tokenRepoMock, jwt *jwtManagerMock) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, users, tokens, &txManagerMock{}, jwt, defaultCfg())
}

func TestService_Register(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	var storedToken *domain.RefreshToken
	users := &userRepoMock{
		CreateFunc: func(_ context.Context, u *domain.User) (*domain.User, error) {
			if u.Email != "user@example.com" {
				t.Errorf("email not normalized: %q", u.Email)
			}
			if u.PasswordHash == "" {
				t.Error("password hash is empty")
			}
			return u, nil
		},
	}
	tokens := &tokenRepoMock{
		CreateFunc: func(_ context.Context, tok *domain.RefreshToken) error {
			storedToken = tok
			return nil
		},
	}

	svc := newTestService(users, tokens, staticJWT())

	res, err := svc.Register(ctx, RegisterInput{
		Email:    "  User@Example.COM ",
		Username: "journaler",
		Password: "secret-password",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if res.AccessToken != "access-token" || res.RefreshToken != "raw-refresh" {
		t.Errorf("unexpected tokens: %+v", res)
	}
	if storedToken == nil || storedToken.TokenHash != "hash-refresh" {
		t.Errorf("refresh token not stored with hash: %+v", storedToken)
	}
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	users := &userRepoMock{
		CreateFunc: func(context.Context, *domain.User) (*domain.User, error) {
			return nil, domain.ErrAlreadyExists
		},
	}
	svc := newTestService(users, &tokenRepoMock{}, staticJWT())

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "user@example.com",
		Username: "journaler",
		Password: "secret-password",
	})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("want ErrAlreadyExists, got %v", err)
	}
}

func TestService_Register_InvalidInput(t *testing.T) {
	t.Parallel()

	svc := newTestService(&userRepoMock{}, &tokenRepoMock{}, staticJWT())

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "not-an-email",
		Username: "journaler",
		Password: "short",
	})

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if len(vErr.Errors) != 2 {
		t.Errorf("want 2 field errors, got %+v", vErr.Errors)
	}
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	hash := hashPassword(t, "correct-password")

	users := &userRepoMock{
		GetByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			if email != "user@example.com" {
				t.Errorf("email not normalized: %q", email)
			}
			return &domain.User{ID: userID, Email: email, PasswordHash: hash}, nil
		},
	}
	tokens := &tokenRepoMock{
		CreateFunc: func(context.Context, *domain.RefreshToken) error { return nil },
	}
	svc := newTestService(users, tokens, staticJWT())

	res, err := svc.Login(context.Background(), LoginInput{
		Email:    " User@example.com ",
		Password: "correct-password",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.User.ID != userID {
		t.Errorf("wrong user: %v", res.User.ID)
	}
}

func TestService_Login_WrongPassword(t *testing.T) {
	t.Parallel()

	users := &userRepoMock{
		GetByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), Email: email, PasswordHash: hashPassword(t, "other")}, nil
		},
	}
	svc := newTestService(users, &tokenRepoMock{}, staticJWT())

	_, err := svc.Login(context.Background(), LoginInput{Email: "user@example.com", Password: "wrong"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
}

func TestService_Login_UnknownEmail(t *testing.T) {
	t.Parallel()

	users := &userRepoMock{
		GetByEmailFunc: func(context.Context, string) (*domain.User, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := newTestService(users, &tokenRepoMock{}, staticJWT())

	_, err := svc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "whatever"})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got %v", err)
	}
}

func TestService_Refresh_Rotation(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	tokenID := uuid.New()
	raw := "stored-refresh-token"

	var revoked bool
	users := &userRepoMock{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: id}, nil
		},
	}
	tokens := &tokenRepoMock{
		GetByHashFunc: func(_ context.Context, hash string) (*domain.RefreshToken, error) {
			if hash != authpkg.HashToken(raw) {
				t.Errorf("lookup by raw token, not hash")
			}
			return &domain.RefreshToken{
				ID:        tokenID,
				UserID:    userID,
				TokenHash: hash,
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil
		},
		RevokeFunc: func(_ context.Context, id uuid.UUID, _ time.Time) error {
			if id != tokenID {
				t.Errorf("revoked wrong token: %v", id)
			}
			revoked = true
			return nil
		},
		CreateFunc: func(context.Context, *domain.RefreshToken) error { return nil },
	}
	svc := newTestService(users, tokens, staticJWT())

	res, err := svc.Refresh(context.Background(), RefreshInput{RefreshToken: raw})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if !revoked {
		t.Error("old token was not revoked")
	}
	if res.RefreshToken != "raw-refresh" {
		t.Errorf("new refresh token not issued: %q", res.RefreshToken)
	}
}

func TestService_Refresh_Rejected(t *testing.T) {
	t.Parallel()

	now := time.Now()
	revokedAt := now.Add(-time.Minute)

	cases := []struct {
		name  string
		token *domain.RefreshToken
		err   error
	}{
		{name: "unknown token", token: nil, err: domain.ErrNotFound},
		{
			name: "expired",
			token: &domain.RefreshToken{
				ID: uuid.New(), UserID: uuid.New(),
				ExpiresAt: now.Add(-time.Hour),
			},
		},
		{
			name: "revoked",
			token: &domain.RefreshToken{
				ID: uuid.New(), UserID: uuid.New(),
				ExpiresAt: now.Add(time.Hour),
				RevokedAt: &revokedAt,
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tokens := &tokenRepoMock{
				GetByHashFunc: func(context.Context, string) (*domain.RefreshToken, error) {
					if tc.token == nil {
						return nil, tc.err
					}
					return tc.token, nil
				},
			}
			svc := newTestService(&userRepoMock{}, tokens, staticJWT())

			_, err := svc.Refresh(context.Background(), RefreshInput{RefreshToken: "some-token"})
			if !errors.Is(err, domain.ErrUnauthorized) {
				t.Fatalf("want ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestService_Logout(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	var revokedFor uuid.UUID

	tokens := &tokenRepoMock{
		RevokeAllForUserFunc: func(_ context.Context, id uuid.UUID, _ time.Time) error {
			revokedFor = id
			return nil
		},
	}
	svc := newTestService(&userRepoMock{}, tokens, staticJWT())

	ctx := ctxutil.WithUserID(context.Background(), userID)
	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if revokedFor != userID {
		t.Errorf("revoked tokens for wrong user: %v", revokedFor)
	}

	if err := svc.Logout(context.Background()); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("logout without user: want ErrUnauthorized, got %v", err)
	}
}
