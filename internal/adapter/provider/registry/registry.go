// Package registry resolves the configured speech-to-text and analysis
// providers once per process. Resolution is lazy and cached; Reset exists so
// tests can swap configurations without restarting the process.
package registry

import (
	"fmt"
	"sync"

	"github.com/sergeifrante-boop/voice-diarty/internal/adapter/provider/mock"
	"github.com/sergeifrante-boop/voice-diarty/internal/adapter/provider/openai"
	"github.com/sergeifrante-boop/voice-diarty/internal/config"
	"github.com/sergeifrante-boop/voice-diarty/internal/provider"
)

var (
	mu          sync.Mutex
	transcriber provider.Transcriber
	analyzer    provider.Analyzer
)

// Transcriber returns the process-wide transcriber, constructing it on first
// use from the given configuration.
func Transcriber(cfg config.AIConfig) (provider.Transcriber, error) {
	mu.Lock()
	defer mu.Unlock()

	if transcriber != nil {
		return transcriber, nil
	}

	switch cfg.STTProvider {
	case config.ProviderMock:
		transcriber = mock.NewTranscriber()
	case config.ProviderOpenAI:
		key := cfg.STTKey()
		if key == "" {
			return nil, fmt.Errorf("no API key available for STT provider")
		}
		transcriber = openai.NewTranscriber(key, cfg.STTModel)
	default:
		return nil, fmt.Errorf("unsupported STT provider: %s", cfg.STTProvider)
	}
	return transcriber, nil
}

// Analyzer returns the process-wide analyzer, constructing it on first use
// from the given configuration.
func Analyzer(cfg config.AIConfig) (provider.Analyzer, error) {
	mu.Lock()
	defer mu.Unlock()

	if analyzer != nil {
		return analyzer, nil
	}

	switch cfg.LLMProvider {
	case config.ProviderMock:
		analyzer = mock.NewAnalyzer()
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for LLM provider")
		}
		analyzer = openai.NewAnalyzer(cfg.OpenAIAPIKey, cfg.LLMModel)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}
	return analyzer, nil
}

// Reset drops the cached providers. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	transcriber = nil
	analyzer = nil
}
