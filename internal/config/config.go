// Package config loads runtime settings from defaults, an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Emotion backends.
const (
	BackendHTTP    = "http"
	BackendLLM     = "llm"
	BackendKeyword = "keyword"
)

// Voice transports.
const (
	TransportHTTP      = "http"
	TransportWebsocket = "ws"
)

// Config holds runtime settings.
type Config struct {
	DatabaseURL      string `mapstructure:"database_url"`
	GoogleAPIKey     string `mapstructure:"google_api_key"`
	XAIAPIKey        string `mapstructure:"xai_api_key"`
	OpenAIAPIKey     string `mapstructure:"openai_api_key"`
	OpenRouterAPIKey string `mapstructure:"openrouter_api_key"`
	LLMProvider      string `mapstructure:"llm_provider"`
	LLMModel         string `mapstructure:"llm_model"`

	EmotionBackend    string        `mapstructure:"emotion_backend"`
	EmotionServiceURL string        `mapstructure:"emotion_service_url"`
	EmotionTimeout    time.Duration `mapstructure:"emotion_timeout"`

	ElevenLabsAPIKey string        `mapstructure:"eleven_labs_api_key"`
	VoiceTransport   string        `mapstructure:"voice_transport"`
	VoiceID          string        `mapstructure:"voice_id"`
	VoiceModelID     string        `mapstructure:"voice_model_id"`
	VoiceTimeout     time.Duration `mapstructure:"voice_timeout"`
	AudioDir         string        `mapstructure:"audio_dir"`
	PollInterval     time.Duration `mapstructure:"poll_interval"`

	LogLevel string `mapstructure:"log_level"`
}

var defaults = map[string]any{
	"llm_provider":    "gemini",
	"llm_model":       "gemini-2.5-flash",
	"emotion_backend": BackendHTTP,
	"emotion_timeout": 10 * time.Second,
	"voice_transport": TransportHTTP,
	"voice_id":        "Xb7hH8MSUJpSbSDYk0k2",
	"voice_model_id":  "eleven_monolingual_v1",
	"voice_timeout":   60 * time.Second,
	"audio_dir":       os.TempDir(),
	"poll_interval":   100 * time.Millisecond,
	"log_level":       "info",
}

// envNames maps keys to the environment variables that set them.
var envNames = map[string]string{
	"database_url":        "DATABASE_URL",
	"google_api_key":      "GOOGLE_API_KEY",
	"xai_api_key":         "XAI_API_KEY",
	"openai_api_key":      "OPENAI_API_KEY",
	"openrouter_api_key":  "OPENROUTER_API_KEY",
	"llm_provider":        "LLM_PROVIDER",
	"llm_model":           "LLM_MODEL",
	"emotion_backend":     "EMOTION_BACKEND",
	"emotion_service_url": "EMOTION_SERVICE_URL",
	"emotion_timeout":     "EMOTION_TIMEOUT",
	"eleven_labs_api_key": "ELEVEN_LABS_API_KEY",
	"voice_transport":     "VOICE_TRANSPORT",
	"voice_id":            "VOICE_ID",
	"voice_model_id":      "VOICE_MODEL_ID",
	"voice_timeout":       "VOICE_TIMEOUT",
	"audio_dir":           "AUDIO_DIR",
	"poll_interval":       "POLL_INTERVAL",
	"log_level":           "LOG_LEVEL",
}

// Load reads settings. path names a YAML file; when empty, aura.yaml is looked
// up in the working directory and skipped if absent.
func Load(path string) (Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	for key, env := range envNames {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("aura")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated values. Missing credentials are not errors;
// they disable the components that need them.
func (c Config) Validate() error {
	switch c.EmotionBackend {
	case BackendHTTP, BackendLLM, BackendKeyword:
	default:
		return fmt.Errorf("unknown emotion backend %q", c.EmotionBackend)
	}
	switch c.VoiceTransport {
	case TransportHTTP, TransportWebsocket:
	default:
		return fmt.Errorf("unknown voice transport %q", c.VoiceTransport)
	}
	switch c.LLMProvider {
	case "gemini", "grok", "openai", "openrouter":
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLMProvider)
	}
	if c.EmotionTimeout <= 0 || c.PollInterval <= 0 {
		return errors.New("emotion_timeout and poll_interval must be positive")
	}
	return nil
}

// LLMAPIKey returns the credential for the configured provider.
func (c Config) LLMAPIKey() string {
	switch c.LLMProvider {
	case "grok":
		return c.XAIAPIKey
	case "openai":
		return c.OpenAIAPIKey
	case "openrouter":
		return c.OpenRouterAPIKey
	default:
		return c.GoogleAPIKey
	}
}

// VoiceEnabled reports whether a voice credential is configured.
func (c Config) VoiceEnabled() bool {
	return c.ElevenLabsAPIKey != ""
}
