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

// EntryInsight returns the cached insight for an entry, generating and
// persisting one if none exists yet.
//
// There is no uniqueness constraint behind this check-then-generate flow: two
// concurrent first requests for the same entry can both generate. The newest
// row wins on later reads; see FindByEntry.
func (s *Service) EntryInsight(ctx context.Context, userID, entryID uuid.UUID) (*domain.Insight, error) {
	entry, err := s.entries.GetByID(ctx, userID, entryID)
	if err != nil {
		return nil, fmt.Errorf("insight.EntryInsight: %w", err)
	}

	existing, err := s.insights.FindByEntry(ctx, userID, entryID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("insight.EntryInsight lookup: %w", err)
	}

	return s.generateEntryInsight(ctx, entry)
}

// generateEntryInsight builds the prompt, invokes the provider and persists
// the validated result. Nothing is written on provider failure.
func (s *Service) generateEntryInsight(ctx context.Context, entry *domain.Entry) (*domain.Insight, error) {
	prompt, err := renderEntryPrompt(entryPromptData{
		Transcript: entry.Transcript,
		Date:       entry.CreatedAt.Format("2006-01-02"),
		MoodLabel:  entry.MoodLabel,
		Tags:       strings.Join(entry.TagNames(), ", "),
		WordCount:  entry.EffectiveWordCount(),
	})
	if err != nil {
		return nil, err
	}

	data, err := s.analyzer.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("insight.generateEntryInsight: %w", err)
	}

	bullets := optStringList(data, "bullets")
	suggestion := optString(data, "suggestion")

	// bullets is optional upstream: no bullets renders an empty list, the
	// reflection line still applies.
	lines := make([]string, 0, len(bullets))
	for _, b := range bullets {
		lines = append(lines, "- "+b)
	}
	details := strings.Join(lines, "\n")
	if suggestion != "" {
		details += "\n\n**Reflection:** " + suggestion
	}

	created, err := s.insights.Create(ctx, &domain.Insight{
		ID:            uuid.New(),
		UserID:        entry.UserID,
		Scope:         domain.ScopeEntry,
		SourceEntryID: &entry.ID,
		Language:      optStringOr(data, "language", domain.DefaultInsightLanguage),
		Summary:       optString(data, "summary"),
		Details:       details,
		EntryMeta: &domain.EntryInsightMeta{
			MoodTrend:  optString(data, "mood_trend"),
			Confidence: optFloat(data, "confidence"),
			TopTopics:  optStringList(data, "top_topics"),
		},
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("insight.generateEntryInsight persist: %w", err)
	}

	s.log.InfoContext(ctx, "entry insight generated",
		slog.String("entry_id", entry.ID.String()),
		slog.String("insight_id", created.ID.String()))

	return created, nil
}
