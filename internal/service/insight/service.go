// Package insight implements the insight engine: deterministic period
// normalization, aggregation statistics, prompt-driven generation through the
// analysis provider, and idempotent caching of results.
package insight

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
	"github.com/sergeifrante-boop/voice-diarty/internal/provider"
)

// entryRepo defines the entry repository interface needed by this service.
type entryRepo interface {
	GetByID(ctx context.Context, userID, entryID uuid.UUID) (*domain.Entry, error)
	ListByPeriod(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.Entry, error)
}

// insightRepo defines the insight repository interface needed by this service.
type insightRepo interface {
	FindByEntry(ctx context.Context, userID, entryID uuid.UUID) (*domain.Insight, error)
	FindByPeriod(ctx context.Context, userID uuid.UUID, tf domain.Timeframe, from, to time.Time) (*domain.Insight, error)
	Create(ctx context.Context, in *domain.Insight) (*domain.Insight, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, scope *domain.InsightScope, limit, offset int) ([]*domain.Insight, int, error)
}

// Service provides insight operations.
type Service struct {
	log      *slog.Logger
	entries  entryRepo
	insights insightRepo
	analyzer provider.Analyzer
}

// NewService creates a new insight service.
func NewService(
	logger *slog.Logger,
	entries entryRepo,
	insights insightRepo,
	analyzer provider.Analyzer,
) *Service {
	return &Service{
		log:      logger.With("service", "insight"),
		entries:  entries,
		insights: insights,
		analyzer: analyzer,
	}
}
