package entry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
)

// CreateInput holds parameters for entry creation.
type CreateInput struct {
	Transcript string
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Transcript) == "" {
		errs = append(errs, domain.FieldError{Field: "transcript", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Create persists a new entry from an already-transcribed text and then runs
// whole-transcript analysis to fill title, mood, tags and observations.
//
// Analysis is best-effort: if the provider fails, the entry survives with its
// defaults (empty title, neutral mood, no tags) and the failure is logged.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, input CreateInput) (*domain.Entry, error) {
	input.Transcript = strings.TrimSpace(input.Transcript)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	wordCount := domain.CountWords(input.Transcript)
	created, err := s.entries.Create(ctx, &domain.Entry{
		ID:         uuid.New(),
		UserID:     userID,
		Transcript: input.Transcript,
		Title:      "",
		MoodLabel:  domain.DefaultMoodLabel,
		Insights:   []string{},
		WordCount:  &wordCount,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("entry.Create: %w", err)
	}

	s.log.InfoContext(ctx, "entry created",
		slog.String("entry_id", created.ID.String()),
		slog.Int("word_count", wordCount))

	analyzed, err := s.analyze(ctx, created)
	if err != nil {
		s.log.WarnContext(ctx, "entry analysis failed, keeping defaults",
			slog.String("entry_id", created.ID.String()),
			slog.String("error", err.Error()))
		return created, nil
	}
	return analyzed, nil
}

// analyze runs the provider over the transcript and writes the results back.
func (s *Service) analyze(ctx context.Context, e *domain.Entry) (*domain.Entry, error) {
	res, err := s.analyzer.AnalyzeTranscript(ctx, e.Transcript)
	if err != nil {
		return nil, err
	}

	tagNames := domain.NormalizeTagNames(res.Tags)

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		tags, err := s.tags.GetOrCreate(txCtx, e.UserID, tagNames)
		if err != nil {
			return fmt.Errorf("resolve tags: %w", err)
		}

		tagIDs := make([]uuid.UUID, len(tags))
		for i, t := range tags {
			tagIDs[i] = t.ID
		}
		if err := s.tags.ReplaceEntryTags(txCtx, e.ID, tagIDs); err != nil {
			return fmt.Errorf("bind tags: %w", err)
		}

		if err := s.entries.UpdateAnalysis(txCtx, e.UserID, e.ID, res.Title, res.MoodLabel, res.Insights); err != nil {
			return fmt.Errorf("store analysis: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Re-read so the caller sees the stored state, tags included.
	return s.entries.GetByID(ctx, e.UserID, e.ID)
}
