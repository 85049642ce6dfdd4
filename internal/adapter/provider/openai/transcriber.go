// Package openai implements the live providers on top of the OpenAI API.
package openai

import (
	"context"
	"fmt"
	"os"

	sdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/sergeifrante-boop/voice-diarty/internal/domain"
)

// Transcriber calls the Whisper transcription endpoint.
type Transcriber struct {
	client sdk.Client
	model  string
}

// NewTranscriber creates a Whisper-backed transcriber. Extra options (base
// URL overrides for tests, retries) are appended after the API key.
func NewTranscriber(apiKey, model string, opts ...option.RequestOption) *Transcriber {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Transcriber{
		client: sdk.NewClient(opts...),
		model:  model,
	}
}

// Transcribe uploads the audio file and returns the recognized text.
// Upstream failures are wrapped in domain.ErrProvider with the upstream
// message preserved.
func (t *Transcriber) Transcribe(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("audio file %s: %w", path, domain.ErrNotFound)
		}
		return "", fmt.Errorf("open audio file: %w", err)
	}
	defer f.Close()

	resp, err := t.client.Audio.Transcriptions.New(ctx, sdk.AudioTranscriptionNewParams{
		Model: sdk.AudioModel(t.model),
		File:  f,
	})
	if err != nil {
		return "", fmt.Errorf("%w: transcription request failed: %v", domain.ErrProvider, err)
	}
	return resp.Text, nil
}
