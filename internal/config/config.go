// Package config loads vodila settings from defaults, an optional config
// file and VODILA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/vodila/vodila/internal/tts"
)

// Config holds all configuration for vodila.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Identity IdentityConfig `mapstructure:"identity"`
	Store    StoreConfig    `mapstructure:"store"`
	Log      LogConfig      `mapstructure:"log"`
	Study    StudyConfig    `mapstructure:"study"`
	Audio    AudioConfig    `mapstructure:"audio"`
	TTS      tts.Config     `mapstructure:"tts"`
}

// APIConfig holds backend settings.
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// IdentityConfig holds the platform identity context.
type IdentityConfig struct {
	// InitData is the platform's query-string encoded user assertion.
	InitData string `mapstructure:"init_data"`
	Header   string `mapstructure:"header"`
}

// StoreConfig holds the local journal location. Empty means the default
// data directory.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File receives the log while the terminal UI is running. Empty means
	// the default data directory.
	File string `mapstructure:"file"`
}

// StudyConfig holds session tuning.
type StudyConfig struct {
	SwipeDelay     time.Duration `mapstructure:"swipe_delay"`
	SwipeThreshold int           `mapstructure:"swipe_threshold"`
	// UnitsPerCell converts terminal cells of mouse drag into gesture units.
	UnitsPerCell int `mapstructure:"units_per_cell"`
}

// AudioConfig holds playback settings.
type AudioConfig struct {
	Command  string `mapstructure:"command"`
	CacheDir string `mapstructure:"cache_dir"`
}

// Options selects where Load looks and what it overrides.
type Options struct {
	// File is an explicit config file. When set it must exist.
	File string
	// Overrides are applied last, keyed by dotted config key.
	Overrides map[string]any
}

// Load reads configuration from file and environment variables.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("VODILA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Provider keys also honour the vendor's conventional variables.
	_ = v.BindEnv("tts.gemini.api_key", "VODILA_TTS_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("tts.openai.api_key", "VODILA_TTS_OPENAI_API_KEY", "OPENAI_API_KEY")

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("vodila")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "vodila"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	for key, value := range opts.Overrides {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "http://localhost:8000/api")
	v.SetDefault("api.user_agent", "vodila")
	v.SetDefault("api.timeout", 30*time.Second)

	v.SetDefault("identity.init_data", "")
	v.SetDefault("identity.header", "X-Telegram-User")

	v.SetDefault("store.path", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")

	v.SetDefault("study.swipe_delay", 300*time.Millisecond)
	v.SetDefault("study.swipe_threshold", 100)
	v.SetDefault("study.units_per_cell", 10)

	v.SetDefault("audio.command", "ffplay -nodisp -autoexit -loglevel quiet {file}")
	v.SetDefault("audio.cache_dir", "")

	d := tts.DefaultConfig()
	v.SetDefault("tts.provider", d.Provider)
	v.SetDefault("tts.gemini.api_key", "")
	v.SetDefault("tts.gemini.model", d.Gemini.Model)
	v.SetDefault("tts.gemini.voice", d.Gemini.Voice)
	v.SetDefault("tts.openai.api_key", "")
	v.SetDefault("tts.openai.model", d.OpenAI.Model)
	v.SetDefault("tts.openai.voice", d.OpenAI.Voice)
	v.SetDefault("tts.openai.base_url", "")
	v.SetDefault("tts.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("tts.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("tts.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("tts.retry.multiplier", d.Retry.Multiplier)
	v.SetDefault("tts.output_dir", d.OutputDir)
	v.SetDefault("tts.text_field", d.TextField)
	v.SetDefault("tts.pause", d.Pause)
	v.SetDefault("tts.timeout", d.Timeout)
}
