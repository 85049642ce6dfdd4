// Package tag implements tag cloud and calendar views over diary entries.
package tag

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
)

// tagRepo defines the tag repository interface needed by this service.
type tagRepo interface {
	CloudByUser(ctx context.Context, userID uuid.UUID) ([]domain.WeightedTag, error)
}

// entryRepo defines the entry repository interface needed by this service.
type entryRepo interface {
	ListByPeriod(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*domain.Entry, error)
}

// Service provides tag cloud and calendar operations.
type Service struct {
	log     *slog.Logger
	tags    tagRepo
	entries entryRepo
}

// NewService creates a new tag service.
func NewService(logger *slog.Logger, tags tagRepo, entries entryRepo) *Service {
	return &Service{
		log:     logger.With("service", "tag"),
		tags:    tags,
		entries: entries,
	}
}
