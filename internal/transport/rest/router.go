package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/sergeifrante-boop/voice-diarty/internal/config"
	"github.com/sergeifrante-boop/voice-diarty/internal/transport/middleware"
)

// TokenValidator checks a Bearer access token and resolves its user.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

// RouterDeps carries everything the router needs to assemble the API.
type RouterDeps struct {
	Logger *slog.Logger
	CORS   config.CORSConfig

	Auth       *AuthHandler
	Entries    *EntryHandler
	Tags       *TagHandler
	Transcribe *TranscribeHandler
	Insights   *InsightHandler
	Health     *HealthHandler

	TokenValidator TokenValidator
	RateLimiter    *middleware.RateLimiter

	// AuthRateLimit and TranscribeRateLimit are requests per minute per IP.
	AuthRateLimit       int
	TranscribeRateLimit int
}

// NewRouter wires all API routes with the shared middleware stack.
//
// Every route under /api/v1 except the auth endpoints requires a Bearer
// access token. The unauthenticated auth endpoints and the transcription
// upload are additionally rate limited per IP.
func NewRouter(deps RouterDeps) http.Handler {
	r := mux.NewRouter()

	base := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(deps.Logger),
		middleware.Logger(deps.Logger),
		middleware.CORS(deps.CORS),
	)

	authRequired := middleware.Auth(deps.TokenValidator)
	authLimit := deps.RateLimiter.Limit(deps.AuthRateLimit)
	uploadLimit := deps.RateLimiter.Limit(deps.TranscribeRateLimit)

	r.HandleFunc("/health", deps.Health.Health).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public auth endpoints, rate limited.
	api.Handle("/auth/register", authLimit(http.HandlerFunc(deps.Auth.Register))).Methods(http.MethodPost)
	api.Handle("/auth/login", authLimit(http.HandlerFunc(deps.Auth.Login))).Methods(http.MethodPost)
	api.Handle("/auth/refresh", authLimit(http.HandlerFunc(deps.Auth.Refresh))).Methods(http.MethodPost)
	api.Handle("/auth/logout", authRequired(http.HandlerFunc(deps.Auth.Logout))).Methods(http.MethodPost)

	// Everything below requires authentication.
	protected := api.NewRoute().Subrouter()
	protected.Use(mux.MiddlewareFunc(authRequired))

	protected.HandleFunc("/entries", deps.Entries.Create).Methods(http.MethodPost)
	protected.HandleFunc("/entries", deps.Entries.List).Methods(http.MethodGet)
	protected.HandleFunc("/entries/{id}", deps.Entries.Get).Methods(http.MethodGet)
	protected.HandleFunc("/entries/{id}", deps.Entries.Delete).Methods(http.MethodDelete)

	protected.HandleFunc("/tags/cloud", deps.Tags.Cloud).Methods(http.MethodGet)
	protected.HandleFunc("/calendar", deps.Tags.Calendar).Methods(http.MethodGet)

	protected.Handle("/transcribe", uploadLimit(http.HandlerFunc(deps.Transcribe.Transcribe))).Methods(http.MethodPost)

	protected.HandleFunc("/insights", deps.Insights.List).Methods(http.MethodGet)
	protected.HandleFunc("/insights/entry/{id}", deps.Insights.Entry).Methods(http.MethodGet)
	protected.HandleFunc("/insights/period", deps.Insights.Period).Methods(http.MethodGet)
	protected.HandleFunc("/insights/period/regenerate", deps.Insights.RegeneratePeriod).Methods(http.MethodPost)

	// Preflight requests short-circuit in the CORS middleware; the route
	// must still exist for mux to dispatch them.
	r.PathPrefix("/api/v1").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	return base(r)
}
