// Package mock provides deterministic speech-to-text and analysis providers
// for local development and tests.
package mock

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
	"github.com/sergeifrante-boop/voice-diarty/internal/provider"
)

// FixedTranscript is what the mock transcriber returns for any existing file.
const FixedTranscript = "Это тестовая запись пользователя про работу и усталость"

// Transcriber returns a fixed transcript regardless of audio content.
type Transcriber struct{}

// NewTranscriber creates a mock transcriber.
func NewTranscriber() *Transcriber { return &Transcriber{} }

// Transcribe returns the fixed transcript. The file must still exist so that
// upload plumbing bugs surface in development too.
func (t *Transcriber) Transcribe(_ context.Context, path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("audio file %s: %w", path, domain.ErrNotFound)
	}
	return FixedTranscript, nil
}

// Analyzer is a rule-based analyzer: work-related keywords flip the result
// from a calm baseline to an anxious one.
type Analyzer struct{}

// NewAnalyzer creates a mock analyzer.
func NewAnalyzer() *Analyzer { return &Analyzer{} }

// AnalyzeTranscript classifies the transcript by keyword.
func (a *Analyzer) AnalyzeTranscript(_ context.Context, transcript string) (*provider.AnalysisResult, error) {
	hasWork := strings.Contains(strings.ToLower(transcript), "работ")

	if hasWork {
		return &provider.AnalysisResult{
			Title:     "Мысли о работе",
			MoodLabel: "anxious",
			Tags:      []string{"работа", "усталость", "сомнения"},
			Insights: []string{
				"Ты очень строго относишься к себе из-за работы.",
				"Кажется, сейчас тебе бы помог небольшой отдых и поддержка.",
			},
		}, nil
	}
	return &provider.AnalysisResult{
		Title:     "Спокойный день",
		MoodLabel: "calm",
		Tags:      []string{"повседневное", "спокойствие"},
		Insights: []string{
			"Ты очень строго относишься к себе из-за работы.",
			"Продолжай замечать маленькие радости дня.",
		},
	}, nil
}

// Complete returns a canned JSON object. Period-style prompts (those carrying
// a statistics block) get the period shape, everything else the entry shape.
func (a *Analyzer) Complete(_ context.Context, _ string, user string) (map[string]any, error) {
	if strings.Contains(user, "Period statistics") {
		return map[string]any{
			"summary":         "Спокойный период с редкими тревожными эпизодами.",
			"key_insights":    []any{"Записи становятся регулярнее.", "Тема работы повторяется."},
			"emotional_trend": "stable",
			"focus_recommendations": []any{
				"Попробуй фиксировать один приятный момент в день.",
			},
			"top_tags": []any{
				map[string]any{"tag": "работа", "weight": 0.7},
				map[string]any{"tag": "усталость", "weight": 0.5},
			},
			"language": "ru",
		}, nil
	}
	return map[string]any{
		"summary":    "Запись о рабочем дне и усталости.",
		"bullets":    []any{"Ты много думаешь о работе.", "Усталость накапливается."},
		"suggestion": "Что помогло бы тебе отдохнуть сегодня?",
		"mood_trend": "neutral",
		"confidence": 0.9,
		"top_topics": []any{"работа", "усталость"},
		"language":   "ru",
	}, nil
}

// FormatTranscript trims, capitalizes the first rune and ensures terminal
// punctuation.
func (a *Analyzer) FormatTranscript(_ context.Context, raw string) (string, error) {
	out := strings.TrimSpace(raw)
	if out == "" {
		return out, nil
	}
	if !strings.HasSuffix(out, ".") && !strings.HasSuffix(out, "!") &&
		!strings.HasSuffix(out, "?") && !strings.HasSuffix(out, "…") {
		out += "."
	}
	r, size := utf8.DecodeRuneInString(out)
	return string(unicode.ToUpper(r)) + out[size:], nil
}
