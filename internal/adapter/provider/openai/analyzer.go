package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
	"github.com/sergeifrante-boop/voice-diarty/internal/provider"
)

// Analyzer runs JSON-mode chat completions against the OpenAI API.
type Analyzer struct {
	client sdk.Client
	model  string
}

// NewAnalyzer creates an OpenAI-backed analyzer.
func NewAnalyzer(apiKey, model string, opts ...option.RequestOption) *Analyzer {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Analyzer{
		client: sdk.NewClient(opts...),
		model:  model,
	}
}

// completeJSON issues a JSON-mode completion and decodes the object.
func (a *Analyzer) completeJSON(ctx context.Context, system, user string, temperature float64) (map[string]any, error) {
	resp, err := a.client.Chat.Completions.New(ctx, sdk.ChatCompletionNewParams{
		Model:       sdk.ChatModel(a.model),
		Temperature: sdk.Float(temperature),
		ResponseFormat: sdk.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
		Messages: []sdk.ChatCompletionMessageParamUnion{
			sdk.SystemMessage(system),
			sdk.UserMessage(user),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: completion request failed: %v", domain.ErrProvider, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%w: empty completion content", domain.ErrInvalidProviderResponse)
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &out); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", domain.ErrInvalidProviderResponse, err)
	}
	return out, nil
}

// AnalyzeTranscript extracts the required analysis fields, hard-failing on
// any contract violation.
func (a *Analyzer) AnalyzeTranscript(ctx context.Context, transcript string) (*provider.AnalysisResult, error) {
	data, err := a.completeJSON(ctx, analyzePrompt, transcript, 0.2)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, key := range []string{"title", "mood_label", "tags", "insights"} {
		if _, ok := data[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: missing fields: %s",
			domain.ErrInvalidProviderResponse, strings.Join(missing, ", "))
	}

	tags, err := stringList(data["tags"], "tags")
	if err != nil {
		return nil, err
	}
	insights, err := stringList(data["insights"], "insights")
	if err != nil {
		return nil, err
	}

	title, _ := data["title"].(string)
	mood, _ := data["mood_label"].(string)
	return &provider.AnalysisResult{
		Title:     title,
		MoodLabel: mood,
		Tags:      tags,
		Insights:  insights,
	}, nil
}

// Complete exposes raw JSON-mode completion for insight generation, where
// callers tolerate optional fields themselves.
func (a *Analyzer) Complete(ctx context.Context, system, user string) (map[string]any, error) {
	return a.completeJSON(ctx, system, user, 0.3)
}

// FormatTranscript cleans a raw transcript with a very low temperature to
// keep the output as close to the input as possible.
func (a *Analyzer) FormatTranscript(ctx context.Context, raw string) (string, error) {
	resp, err := a.client.Chat.Completions.New(ctx, sdk.ChatCompletionNewParams{
		Model:       sdk.ChatModel(a.model),
		Temperature: sdk.Float(0.1),
		Messages: []sdk.ChatCompletionMessageParamUnion{
			sdk.SystemMessage(formatPrompt),
			sdk.UserMessage(raw),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: formatting request failed: %v", domain.ErrProvider, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty formatting response", domain.ErrInvalidProviderResponse)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// stringList coerces a decoded JSON value into []string.
func stringList(v any, field string) ([]string, error) {
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: field %q must be a list", domain.ErrInvalidProviderResponse, field)
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: field %q must be a list of strings", domain.ErrInvalidProviderResponse, field)
		}
		out = append(out, s)
	}
	return out, nil
}
