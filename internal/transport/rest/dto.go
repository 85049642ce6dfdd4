package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
)

// transcriptPreviewChars bounds the transcript excerpt shown in list views.
const transcriptPreviewChars = 120

type userResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
}

type authResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         userResponse `json:"user"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Username: u.Username}
}

type entryResponse struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Transcript string    `json:"transcript"`
	MoodLabel  string    `json:"mood_label"`
	Insights   []string  `json:"insights"`
	Tags       []string  `json:"tags"`
	WordCount  int       `json:"word_count"`
	CreatedAt  time.Time `json:"created_at"`
}

func newEntryResponse(e *domain.Entry) entryResponse {
	insights := e.Insights
	if insights == nil {
		insights = []string{}
	}
	return entryResponse{
		ID:         e.ID,
		Title:      e.Title,
		Transcript: e.Transcript,
		MoodLabel:  e.MoodLabel,
		Insights:   insights,
		Tags:       tagNamesOrEmpty(e),
		WordCount:  e.EffectiveWordCount(),
		CreatedAt:  e.CreatedAt,
	}
}

// entrySummary is the list-view shape: a bounded transcript preview instead
// of the full text, and no insight snippets.
type entrySummary struct {
	ID                uuid.UUID `json:"id"`
	Title             string    `json:"title"`
	TranscriptPreview string    `json:"transcript_preview"`
	MoodLabel         string    `json:"mood_label"`
	Tags              []string  `json:"tags"`
	WordCount         int       `json:"word_count"`
	CreatedAt         time.Time `json:"created_at"`
}

func newEntrySummary(e *domain.Entry) entrySummary {
	return entrySummary{
		ID:                e.ID,
		Title:             e.Title,
		TranscriptPreview: previewTranscript(e.Transcript),
		MoodLabel:         e.MoodLabel,
		Tags:              tagNamesOrEmpty(e),
		WordCount:         e.EffectiveWordCount(),
		CreatedAt:         e.CreatedAt,
	}
}

func previewTranscript(transcript string) string {
	runes := []rune(transcript)
	if len(runes) <= transcriptPreviewChars {
		return transcript
	}
	return string(runes[:transcriptPreviewChars]) + "..."
}

func tagNamesOrEmpty(e *domain.Entry) []string {
	names := e.TagNames()
	if names == nil {
		names = []string{}
	}
	return names
}

type entryListResponse struct {
	Entries []entrySummary `json:"entries"`
	Total   int            `json:"total"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
}

type insightResponse struct {
	ID            uuid.UUID                 `json:"id"`
	Scope         domain.InsightScope       `json:"scope"`
	SourceEntryID *uuid.UUID                `json:"source_entry_id,omitempty"`
	PeriodFrom    *time.Time                `json:"period_from,omitempty"`
	PeriodTo      *time.Time                `json:"period_to,omitempty"`
	Timeframe     *domain.Timeframe         `json:"timeframe,omitempty"`
	Language      string                    `json:"language"`
	Summary       string                    `json:"summary"`
	Details       string                    `json:"details"`
	EntryMeta     *domain.EntryInsightMeta  `json:"entry_meta,omitempty"`
	PeriodMeta    *domain.PeriodInsightMeta `json:"period_meta,omitempty"`
	CreatedAt     time.Time                 `json:"created_at"`
}

func newInsightResponse(i *domain.Insight) insightResponse {
	return insightResponse{
		ID:            i.ID,
		Scope:         i.Scope,
		SourceEntryID: i.SourceEntryID,
		PeriodFrom:    i.PeriodFrom,
		PeriodTo:      i.PeriodTo,
		Timeframe:     i.Timeframe,
		Language:      i.Language,
		Summary:       i.Summary,
		Details:       i.Details,
		EntryMeta:     i.EntryMeta,
		PeriodMeta:    i.PeriodMeta,
		CreatedAt:     i.CreatedAt,
	}
}

type insightListResponse struct {
	Insights []insightResponse `json:"insights"`
	Total    int               `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}
