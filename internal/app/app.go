package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sergeifrante-boop/voice-diarty/internal/adapter/postgres"
	entryrepo "github.com/sergeifrante-boop/voice-diarty/internal/adapter/postgres/entry"
	insightrepo "github.com/sergeifrante-boop/voice-diarty/internal/adapter/postgres/insight"
	tagrepo "github.com/sergeifrante-boop/voice-diarty/internal/adapter/postgres/tag"
	tokenrepo "github.com/sergeifrante-boop/voice-diarty/internal/adapter/postgres/token"
	userrepo "github.com/sergeifrante-boop/voice-diarty/internal/adapter/postgres/user"
	"github.com/sergeifrante-boop/voice-diarty/internal/adapter/provider/registry"
	"github.com/sergeifrante-boop/voice-diarty/internal/auth"
	"github.com/sergeifrante-boop/voice-diarty/internal/config"
	authsvc "github.com/sergeifrante-boop/voice-diarty/internal/service/auth"
	entrysvc "github.com/sergeifrante-boop/voice-diarty/internal/service/entry"
	insightsvc "github.com/sergeifrante-boop/voice-diarty/internal/service/insight"
	tagsvc "github.com/sergeifrante-boop/voice-diarty/internal/service/tag"
	transcribesvc "github.com/sergeifrante-boop/voice-diarty/internal/service/transcribe"
	"github.com/sergeifrante-boop/voice-diarty/internal/transport/middleware"
	"github.com/sergeifrante-boop/voice-diarty/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, wires the
// repositories, providers, services and HTTP transport, starts the server
// and blocks until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("stt_provider", cfg.AI.STTProvider),
		slog.String("llm_provider", cfg.AI.LLMProvider),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	transcriber, err := registry.Transcriber(cfg.AI)
	if err != nil {
		return fmt.Errorf("resolve STT provider: %w", err)
	}
	analyzer, err := registry.Analyzer(cfg.AI)
	if err != nil {
		return fmt.Errorf("resolve LLM provider: %w", err)
	}

	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)
	entries := entryrepo.New(pool)
	tags := tagrepo.New(pool)
	insights := insightrepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	authService := authsvc.NewService(logger, users, tokens, txManager, jwtManager, cfg.Auth)
	entryService := entrysvc.NewService(logger, entries, tags, txManager, analyzer)
	tagService := tagsvc.NewService(logger, tags, entries)
	transcribeService := transcribesvc.NewService(logger, transcriber, analyzer, cfg.AI)
	insightService := insightsvc.NewService(logger, entries, insights, analyzer)

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	router := rest.NewRouter(rest.RouterDeps{
		Logger: logger,
		CORS:   cfg.CORS,

		Auth:       rest.NewAuthHandler(logger, authService),
		Entries:    rest.NewEntryHandler(logger, entryService),
		Tags:       rest.NewTagHandler(logger, tagService),
		Transcribe: rest.NewTranscribeHandler(logger, transcribeService),
		Insights:   rest.NewInsightHandler(logger, insightService),
		Health:     rest.NewHealthHandler(pool, BuildVersion()),

		TokenValidator:      authService,
		RateLimiter:         rateLimiter,
		AuthRateLimit:       cfg.RateLimit.Auth,
		TranscribeRateLimit: cfg.RateLimit.Transcribe,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}
