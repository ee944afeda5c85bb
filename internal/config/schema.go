package config

// Config holds coursecal configuration.
// Loaded from ./config.yaml or ~/.coursecal/config.yaml, with COURSECAL_
// environment variable overrides.
type Config struct {
	LLM    LLMCfg    `mapstructure:"llm" yaml:"llm"`
	Server ServerCfg `mapstructure:"server" yaml:"server"`
}

// LLMCfg configures the completion-service extraction path.
type LLMCfg struct {
	// Enabled switches the completion-based extractor on or off entirely.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// APIKey is the completion-service credential (supports ${ENV_VAR} syntax).
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
	// Model is the completion model name.
	Model string `mapstructure:"model" yaml:"model"`
	// MaxTokens caps completion output.
	MaxTokens int `mapstructure:"max_tokens" yaml:"max_tokens"`
	// Temperature is the sampling temperature.
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`
}

// ServerCfg configures the HTTP API server.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port string `mapstructure:"port" yaml:"port"`
	// MaxBodyBytes caps request body size for parse/upload endpoints.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMCfg{
			Enabled:     true,
			APIKey:      "${OPENAI_API_KEY}",
			Model:       "gpt-4o-mini",
			MaxTokens:   2000,
			Temperature: 0.1,
		},
		Server: ServerCfg{
			Host:         "127.0.0.1",
			Port:         "8080",
			MaxBodyBytes: 1 << 20, // 1 MiB of text is far beyond any syllabus
		},
	}
}
