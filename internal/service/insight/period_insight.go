package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
)

// PeriodInput holds the raw period parameters of an insight request.
type PeriodInput struct {
	Timeframe domain.Timeframe
	Anchor    *time.Time
	From      *time.Time
	To        *time.Time
}

// PeriodInsight returns the cached insight for the normalized period,
// generating and persisting one if none exists yet.
func (s *Service) PeriodInsight(ctx context.Context, userID uuid.UUID, input PeriodInput) (*domain.Insight, error) {
	from, to, err := NormalizePeriod(input.Timeframe, input.Anchor, input.From, input.To)
	if err != nil {
		return nil, err
	}

	existing, err := s.insights.FindByPeriod(ctx, userID, input.Timeframe, from, to)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("insight.PeriodInsight lookup: %w", err)
	}

	return s.generatePeriodInsight(ctx, userID, from, to, input.Timeframe)
}

// RegeneratePeriodInsight deletes any cached insight for the normalized
// period and always generates a fresh one.
func (s *Service) RegeneratePeriodInsight(ctx context.Context, userID uuid.UUID, input PeriodInput) (*domain.Insight, error) {
	from, to, err := NormalizePeriod(input.Timeframe, input.Anchor, input.From, input.To)
	if err != nil {
		return nil, err
	}

	existing, err := s.insights.FindByPeriod(ctx, userID, input.Timeframe, from, to)
	switch {
	case err == nil:
		if err := s.insights.Delete(ctx, userID, existing.ID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("insight.RegeneratePeriodInsight delete: %w", err)
		}
		s.log.InfoContext(ctx, "stale period insight dropped",
			slog.String("insight_id", existing.ID.String()))
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("insight.RegeneratePeriodInsight lookup: %w", err)
	}

	return s.generatePeriodInsight(ctx, userID, from, to, input.Timeframe)
}

// generatePeriodInsight aggregates the period's entries, invokes the
// provider and persists the validated result. Nothing is written on failure.
func (s *Service) generatePeriodInsight(ctx context.Context, userID uuid.UUID, from, to time.Time, timeframe domain.Timeframe) (*domain.Insight, error) {
	entries, err := s.entries.ListByPeriod(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("insight.generatePeriodInsight list entries: %w", err)
	}

	stats, sample, err := aggregateEntries(entries, from, to)
	if err != nil {
		return nil, err
	}

	prompt, err := renderPeriodPrompt(periodPromptData{
		Stats:  renderStats(stats),
		Sample: sample,
	})
	if err != nil {
		return nil, err
	}

	data, err := s.analyzer.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("insight.generatePeriodInsight: %w", err)
	}

	keyInsights := optStringList(data, "key_insights")
	recommendations := optStringList(data, "focus_recommendations")

	lines := make([]string, 0, len(keyInsights))
	for _, k := range keyInsights {
		lines = append(lines, "- "+k)
	}
	details := "**Key Insights:**\n" + strings.Join(lines, "\n")
	if len(recommendations) > 0 {
		recLines := make([]string, 0, len(recommendations))
		for _, r := range recommendations {
			recLines = append(recLines, "- "+r)
		}
		details += "\n\n**Focus Recommendations:**\n" + strings.Join(recLines, "\n")
	}

	topTags := make([]domain.WeightedTag, 0)
	for _, wt := range optWeightedTags(data, "top_tags") {
		topTags = append(topTags, domain.WeightedTag{Tag: wt.Tag, Weight: wt.Weight})
	}

	tf := timeframe
	created, err := s.insights.Create(ctx, &domain.Insight{
		ID:         uuid.New(),
		UserID:     userID,
		Scope:      domain.ScopePeriod,
		PeriodFrom: &from,
		PeriodTo:   &to,
		Timeframe:  &tf,
		Language:   optStringOr(data, "language", domain.DefaultInsightLanguage),
		Summary:    optString(data, "summary"),
		Details:    details,
		PeriodMeta: &domain.PeriodInsightMeta{
			EmotionalTrend:       optString(data, "emotional_trend"),
			TopTags:              topTags,
			KeyInsights:          keyInsights,
			FocusRecommendations: recommendations,
		},
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("insight.generatePeriodInsight persist: %w", err)
	}

	s.log.InfoContext(ctx, "period insight generated",
		slog.String("timeframe", string(timeframe)),
		slog.Int("entries", stats.TotalEntries),
		slog.String("insight_id", created.ID.String()))

	return created, nil
}
