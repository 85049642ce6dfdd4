package tag

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
)

// Cloud returns the user's tag cloud: every tag with its usage count,
// heaviest first.
func (s *Service) Cloud(ctx context.Context, userID uuid.UUID) ([]domain.WeightedTag, error) {
	cloud, err := s.tags.CloudByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("tag.Cloud: %w", err)
	}
	if cloud == nil {
		cloud = []domain.WeightedTag{}
	}
	return cloud, nil
}

// AggregateTagCloud counts tag usage across the given entries. Results are
// ordered by descending weight, name ascending as tiebreaker.
func AggregateTagCloud(entries []*domain.Entry) []domain.WeightedTag {
	counts := make(map[string]int)
	for _, e := range entries {
		for _, t := range e.Tags {
			counts[t.Name]++
		}
	}

	out := make([]domain.WeightedTag, 0, len(counts))
	for name, n := range counts {
		out = append(out, domain.WeightedTag{Tag: name, Weight: float64(n)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}
