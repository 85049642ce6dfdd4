package insight

import (
	"fmt"
	"strings"
	"text/template"
)

// systemPrompt is shared by both generators; the JSON instruction pairs with
// the provider's JSON response mode.
const systemPrompt = "You are a reflective diary assistant. Always respond with valid JSON."

var entryPromptTmpl = template.Must(template.New("entry").Parse(`You are a reflective diary assistant that helps users understand their thoughts and feelings.

Analyze the following diary entry and provide insights in JSON format.

Rules:
- Respond in the same language as the entry text (detect it if needed)
- Be gentle, supportive, and non-therapeutic
- Do not provide medical advice or diagnoses
- Focus on patterns, emotions, and gentle reflections

Return a JSON object with these exact fields:
{
  "summary": "1-2 sentence summary of what this entry is about",
  "bullets": ["insight 1", "insight 2", "insight 3"],
  "suggestion": "one gentle suggestion or reflection question",
  "mood_trend": "neutral | positive | negative",
  "confidence": 0.0-1.0,
  "top_topics": ["topic1", "topic2"],
  "language": "detected language code (e.g., ru, en, uk)"
}

Entry text:
{{.Transcript}}

Entry metadata:
- Date: {{.Date}}
- Mood label: {{.MoodLabel}}
- Tags: {{.Tags}}
- Word count: {{.WordCount}}
`))

// entryPromptData carries the named parameters of the entry prompt.
type entryPromptData struct {
	Transcript string
	Date       string
	MoodLabel  string
	Tags       string
	WordCount  int
}

func renderEntryPrompt(data entryPromptData) (string, error) {
	if data.Tags == "" {
		data.Tags = "none"
	}

	var b strings.Builder
	if err := entryPromptTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render entry prompt: %w", err)
	}
	return b.String(), nil
}

var periodPromptTmpl = template.Must(template.New("period").Parse(`You are a reflective diary assistant that helps users understand patterns across multiple diary entries.

Analyze the following period of entries and provide high-level insights in JSON format.

Rules:
- Respond in the same language as most entries (detect it if needed)
- Be gentle, supportive, and non-therapeutic
- Do not provide medical advice or diagnoses
- Focus on trends, patterns, and gentle reflections

Return a JSON object with these exact fields:
{
  "summary": "High-level overview of this period (2-3 sentences)",
  "key_insights": ["insight 1", "insight 2", "insight 3"],
  "emotional_trend": "improving | declining | mixed | stable",
  "focus_recommendations": ["recommendation 1", "recommendation 2"],
  "top_tags": [{"tag": "tag1", "weight": 0.7}, {"tag": "tag2", "weight": 0.5}],
  "language": "detected language code (e.g., ru, en, uk)"
}

Period statistics:
{{.Stats}}

Sample entries (truncated):
{{.Sample}}
`))

// periodPromptData carries the named parameters of the period prompt.
type periodPromptData struct {
	Stats  string
	Sample string
}

func renderPeriodPrompt(data periodPromptData) (string, error) {
	var b strings.Builder
	if err := periodPromptTmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render period prompt: %w", err)
	}
	return b.String(), nil
}
