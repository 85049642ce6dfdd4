package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
	"github.com/sergeifrante-boop/voice-diarty/internal/service/auth"
)

type authServiceMock struct {
	RegisterFunc func(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)
	LoginFunc    func(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
	RefreshFunc  func(ctx context.Context, input auth.RefreshInput) (*auth.AuthResult, error)
	LogoutFunc   func(ctx context.Context) error
}

func (m *authServiceMock) Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error) {
	return m.RegisterFunc(ctx, input)
}

func (m *authServiceMock) Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error) {
	return m.LoginFunc(ctx, input)
}

func (m *authServiceMock) Refresh(ctx context.Context, input auth.RefreshInput) (*auth.AuthResult, error) {
	return m.RefreshFunc(ctx, input)
}

func (m *authServiceMock) Logout(ctx context.Context) error {
	return m.LogoutFunc(ctx)
}

func TestAuthHandler_Register(t *testing.T) {
	userID := uuid.New()
	svc := &authServiceMock{
		RegisterFunc: func(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error) {
			if input.Email != "anna@example.com" {
				t.Errorf("email = %q", input.Email)
			}
			return &auth.AuthResult{
				AccessToken:  "access",
				RefreshToken: "refresh",
				User:         &domain.User{ID: userID, Email: input.Email, Username: input.Username},
			}, nil
		},
	}
	h := NewAuthHandler(testLogger(), svc)

	body := `{"email":"anna@example.com","username":"anna","password":"secret-pass"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body: %s", rec.Code, rec.Body.String())
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.AccessToken != "access" || resp.RefreshToken != "refresh" {
		t.Errorf("tokens = %q / %q", resp.AccessToken, resp.RefreshToken)
	}
	if resp.User.ID != userID {
		t.Errorf("user ID = %s, want %s", resp.User.ID, userID)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	svc := &authServiceMock{
		RegisterFunc: func(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error) {
			return nil, domain.ErrAlreadyExists
		},
	}
	h := NewAuthHandler(testLogger(), svc)

	body := `{"email":"anna@example.com","username":"anna","password":"secret-pass"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Register(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
}

func TestAuthHandler_Login_BadJSON(t *testing.T) {
	h := NewAuthHandler(testLogger(), &authServiceMock{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	svc := &authServiceMock{
		LoginFunc: func(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error) {
			return nil, domain.ErrUnauthorized
		},
	}
	h := NewAuthHandler(testLogger(), svc)

	body := `{"email":"anna@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	svc := &authServiceMock{
		RefreshFunc: func(ctx context.Context, input auth.RefreshInput) (*auth.AuthResult, error) {
			if input.RefreshToken != "old-refresh" {
				t.Errorf("refresh token = %q", input.RefreshToken)
			}
			return &auth.AuthResult{
				AccessToken:  "new-access",
				RefreshToken: "new-refresh",
				User:         &domain.User{ID: uuid.New()},
			}, nil
		},
	}
	h := NewAuthHandler(testLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", strings.NewReader(`{"refresh_token":"old-refresh"}`))
	rec := httptest.NewRecorder()
	h.Refresh(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	called := false
	svc := &authServiceMock{
		LogoutFunc: func(ctx context.Context) error {
			called = true
			return nil
		},
	}
	h := NewAuthHandler(testLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
	if !called {
		t.Error("Logout was not forwarded to the service")
	}
}
