package insight

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// List returns the user's insight history, newest first, optionally filtered
// by scope, plus the total count for pagination. Limit is clamped to 1..100.
func (s *Service) List(ctx context.Context, userID uuid.UUID, scope *domain.InsightScope, limit, offset int) ([]*domain.Insight, int, error) {
	if scope != nil && !scope.Valid() {
		return nil, 0, &domain.ValidationError{Errors: []domain.FieldError{
			{Field: "scope", Message: "must be entry or period"},
		}}
	}

	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	insights, total, err := s.insights.ListByUser(ctx, userID, scope, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("insight.List: %w", err)
	}
	return insights, total, nil
}
