package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.AI.validate(); err != nil {
		return fmt.Errorf("ai: %w", err)
	}

	if c.RateLimit.Auth <= 0 {
		return fmt.Errorf("rate_limit.auth must be positive (got %d)", c.RateLimit.Auth)
	}
	if c.RateLimit.Transcribe <= 0 {
		return fmt.Errorf("rate_limit.transcribe must be positive (got %d)", c.RateLimit.Transcribe)
	}

	return nil
}

func (c *AIConfig) validate() error {
	switch c.STTProvider {
	case ProviderMock, ProviderOpenAI:
	default:
		return fmt.Errorf("unsupported stt_provider %q", c.STTProvider)
	}

	switch c.LLMProvider {
	case ProviderMock, ProviderOpenAI:
	default:
		return fmt.Errorf("unsupported llm_provider %q", c.LLMProvider)
	}

	if c.STTProvider == ProviderOpenAI && c.STTKey() == "" {
		return fmt.Errorf("stt_api_key or openai_api_key is required when stt_provider is %q", ProviderOpenAI)
	}
	if c.LLMProvider == ProviderOpenAI && c.OpenAIAPIKey == "" {
		return fmt.Errorf("openai_api_key is required when llm_provider is %q", ProviderOpenAI)
	}

	return nil
}
