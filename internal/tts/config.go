package tts

import (
	"fmt"
	"time"
)

// Config holds TTS provider and generation settings.
type Config struct {
	// Provider selects the TTS backend.
	// Values: "gemini", "openai", "mock"
	Provider string `mapstructure:"provider"`

	Gemini GeminiConfig `mapstructure:"gemini"`
	OpenAI OpenAIConfig `mapstructure:"openai"`
	Retry  RetryConfig  `mapstructure:"retry"`

	// OutputDir receives rule_NNNN.wav files.
	OutputDir string `mapstructure:"output_dir"`

	// TextField picks what is voiced: "answer", "prompt" or "both".
	TextField string `mapstructure:"text_field"`

	// Pause between cards. Default: 400ms.
	Pause time.Duration `mapstructure:"pause"`

	// Timeout bounds a single synthesis call including retries.
	Timeout time.Duration `mapstructure:"timeout"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"` // Default: "gemini-2.5-flash-preview-tts"
	Voice  string `mapstructure:"voice"` // Default: "Kore"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"` // Default: "tts-1"
	Voice   string `mapstructure:"voice"` // Default: "alloy"
	BaseURL string `mapstructure:"base_url"`
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: "gemini",
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash-preview-tts",
			Voice: "Kore",
		},
		OpenAI: OpenAIConfig{
			Model: "tts-1",
			Voice: "alloy",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     8 * time.Second,
			Multiplier:  2.0,
		},
		OutputDir: "audio",
		TextField: string(FieldAnswer),
		Pause:     400 * time.Millisecond,
		Timeout:   2 * time.Minute,
	}
}

// Voice returns the voice configured for the selected provider.
func (c Config) Voice() string {
	if c.Provider == "openai" {
		return c.OpenAI.Voice
	}
	return c.Gemini.Voice
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("VODILA_TTS_GEMINI_API_KEY (or GEMINI_API_KEY) is required for the gemini provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("VODILA_TTS_OPENAI_API_KEY (or OPENAI_API_KEY) is required for the openai provider")
		}
	case "mock":
		// No API key needed.
	default:
		return fmt.Errorf("unknown TTS provider: %q", c.Provider)
	}
	if _, err := ParseField(c.TextField); err != nil {
		return err
	}
	return nil
}
