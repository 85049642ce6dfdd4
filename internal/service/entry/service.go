// Package entry implements diary entry management: creation from transcript
// (with best-effort AI analysis), listing, retrieval and deletion.
package entry

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
	"github.com/sergeifrante-boop/voice-diarty/internal/provider"
)

// entryRepo defines the entry repository interface needed by this service.
type entryRepo interface {
	Create(ctx context.Context, e *domain.Entry) (*domain.Entry, error)
	UpdateAnalysis(ctx context.Context, userID, entryID uuid.UUID, title, moodLabel string, insights []string) error
	Delete(ctx context.Context, userID, entryID uuid.UUID) error
	GetByID(ctx context.Context, userID, entryID uuid.UUID) (*domain.Entry, error)
	List(ctx context.Context, userID uuid.UUID, f domain.EntryFilter) ([]*domain.Entry, int, error)
}

// tagRepo defines the tag repository interface needed by this service.
type tagRepo interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID, names []string) ([]domain.Tag, error)
	ReplaceEntryTags(ctx context.Context, entryID uuid.UUID, tagIDs []uuid.UUID) error
}

// txManager defines the transaction manager interface needed by this service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides entry operations.
type Service struct {
	log      *slog.Logger
	entries  entryRepo
	tags     tagRepo
	tx       txManager
	analyzer provider.Analyzer
}

// NewService creates a new entry service.
func NewService(
	logger *slog.Logger,
	entries entryRepo,
	tags tagRepo,
	tx txManager,
	analyzer provider.Analyzer,
) *Service {
	return &Service{
		log:      logger.With("service", "entry"),
		entries:  entries,
		tags:     tags,
		tx:       tx,
		analyzer: analyzer,
	}
}
