package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	AI        AIConfig        `yaml:"ai"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds JWT settings.
type AuthConfig struct {
	JWTSecret        string        `yaml:"jwt_secret"        env:"AUTH_JWT_SECRET"        env-required:"true"`
	JWTIssuer        string        `yaml:"jwt_issuer"        env:"AUTH_JWT_ISSUER"        env-default:"voice-diary"`
	AccessTokenTTL   time.Duration `yaml:"access_token_ttl"  env:"AUTH_ACCESS_TOKEN_TTL"  env-default:"60m"`
	RefreshTokenTTL  time.Duration `yaml:"refresh_token_ttl" env:"AUTH_REFRESH_TOKEN_TTL" env-default:"720h"`
	PasswordHashCost int           `yaml:"password_hash_cost" env:"AUTH_PASSWORD_HASH_COST" env-default:"10"`
}

// Provider variant names accepted in AIConfig.
const (
	ProviderMock   = "mock"
	ProviderOpenAI = "openai"
)

// AIConfig selects the speech-to-text and text-analysis provider variants
// and carries their credentials. The selection is resolved once per process
// (see the provider registry); exactly one variant per capability is active.
type AIConfig struct {
	STTProvider string `yaml:"stt_provider" env:"STT_PROVIDER" env-default:"mock"`
	LLMProvider string `yaml:"llm_provider" env:"LLM_PROVIDER" env-default:"mock"`

	OpenAIAPIKey string `yaml:"openai_api_key" env:"OPENAI_API_KEY"`
	// STTAPIKey overrides OpenAIAPIKey for the transcription endpoint when
	// the two capabilities use different accounts.
	STTAPIKey string `yaml:"stt_api_key" env:"STT_API_KEY"`

	LLMModel string `yaml:"llm_model" env:"OPENAI_LLM_MODEL" env-default:"gpt-4o-mini"`
	STTModel string `yaml:"stt_model" env:"OPENAI_STT_MODEL" env-default:"whisper-1"`

	// TranscriptFormatting toggles LLM post-formatting of raw STT output.
	// When disabled, formatting is a whitespace-trimming pass-through.
	TranscriptFormatting bool `yaml:"transcript_formatting" env:"TRANSCRIPT_FORMATTING_ENABLED" env-default:"true"`
}

// STTKey returns the credential for the STT provider, preferring the
// dedicated key.
func (c AIConfig) STTKey() string {
	if c.STTAPIKey != "" {
		return c.STTAPIKey
	}
	return c.OpenAIAPIKey
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-IP request budgets in requests per minute.
// Auth covers the unauthenticated register/login/refresh endpoints;
// Transcribe covers the audio upload, which costs an upstream STT call.
type RateLimitConfig struct {
	Auth       int `yaml:"auth"       env:"RATE_LIMIT_AUTH"       env-default:"10"`
	Transcribe int `yaml:"transcribe" env:"RATE_LIMIT_TRANSCRIBE" env-default:"6"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}
