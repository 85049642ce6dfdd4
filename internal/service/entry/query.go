package entry

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
)

// List returns the user's entries matching the filter, newest first, plus
// the total match count for pagination.
func (s *Service) List(ctx context.Context, userID uuid.UUID, f domain.EntryFilter) ([]*domain.Entry, int, error) {
	entries, total, err := s.entries.List(ctx, userID, f)
	if err != nil {
		return nil, 0, fmt.Errorf("entry.List: %w", err)
	}
	return entries, total, nil
}

// Get returns a single entry with its tags.
func (s *Service) Get(ctx context.Context, userID, entryID uuid.UUID) (*domain.Entry, error) {
	e, err := s.entries.GetByID(ctx, userID, entryID)
	if err != nil {
		return nil, fmt.Errorf("entry.Get: %w", err)
	}
	return e, nil
}

// Delete removes an entry along with its tag bindings and entry-scope
// insights (enforced by DB cascades).
func (s *Service) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	if err := s.entries.Delete(ctx, userID, entryID); err != nil {
		return fmt.Errorf("entry.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "entry deleted", slog.String("entry_id", entryID.String()))
	return nil
}
