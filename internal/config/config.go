// Package config loads service configuration from config.yaml and the
// environment. Environment variables use the SERENIA_ prefix with "__" as the
// nesting separator, e.g. SERENIA_SERVER__PORT=9000.
package config

import (
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Storage   StorageConfig   `koanf:"storage"`
	Anthropic AnthropicConfig `koanf:"anthropic"`
	Speech    SpeechConfig    `koanf:"speech"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

type StorageConfig struct {
	// Driver selects the database dialect: sqlite or postgres.
	Driver string `koanf:"driver"`
	// DSN is the data source name / connection string.
	DSN string `koanf:"dsn"`
}

type AnthropicConfig struct {
	APIKey  string `koanf:"api_key"`
	BaseURL string `koanf:"base_url"`
	// Models is the candidate cascade, most to least capable. Attempts run
	// in this order and stop at the first success.
	Models []string `koanf:"models"`
	// MaxTokens is the completion token budget per attempt.
	MaxTokens int `koanf:"max_tokens"`
	// RequestTimeoutSeconds bounds each cascade attempt.
	RequestTimeoutSeconds int `koanf:"request_timeout_seconds"`
}

type SpeechConfig struct {
	ElevenLabs ElevenLabsConfig `koanf:"elevenlabs"`
	// LocalVoice is the espeak-ng voice used by the local fallback engine.
	LocalVoice string `koanf:"local_voice"`
}

type ElevenLabsConfig struct {
	APIKey  string `koanf:"api_key"`
	BaseURL string `koanf:"base_url"`
	VoiceID string `koanf:"voice_id"`
	ModelID string `koanf:"model_id"`
}

// DefaultModels is the fixed model cascade: Sonnet 4.5 -> Haiku 4.5 -> Haiku 3.5.
var DefaultModels = []string{
	"claude-sonnet-4-5-20250929",
	"claude-haiku-4-5-20251001",
	"claude-3-5-haiku-20241022",
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try to load from config.yaml file first
	if err := k.Load(file.Provider("config.yaml"), yaml.Parser()); err != nil {
		// File not found is OK, we'll use env vars
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	// Load environment variables (can override file config)
	if err := k.Load(env.Provider("SERENIA_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "SERENIA_")), "__", ".", -1)
	}), nil); err != nil {
		return nil, err
	}

	// Default values
	if !k.Exists("server.port") {
		k.Set("server.port", 8080)
	}
	if !k.Exists("storage.driver") {
		k.Set("storage.driver", "sqlite")
	}
	if !k.Exists("storage.dsn") {
		k.Set("storage.dsn", "./data/serenia.db")
	}
	if !k.Exists("anthropic.models") {
		k.Set("anthropic.models", DefaultModels)
	}
	if !k.Exists("anthropic.max_tokens") {
		k.Set("anthropic.max_tokens", 1200)
	}
	if !k.Exists("anthropic.request_timeout_seconds") {
		k.Set("anthropic.request_timeout_seconds", 60)
	}
	if !k.Exists("speech.elevenlabs.voice_id") {
		k.Set("speech.elevenlabs.voice_id", "CwhRBWXzGAHq8TQ4Fs17")
	}
	if !k.Exists("speech.elevenlabs.model_id") {
		k.Set("speech.elevenlabs.model_id", "eleven_multilingual_v2")
	}
	if !k.Exists("speech.local_voice") {
		k.Set("speech.local_voice", "es")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	// Substitute environment variables in credentials
	cfg.Anthropic.APIKey = substituteEnvVars(cfg.Anthropic.APIKey)
	cfg.Speech.ElevenLabs.APIKey = substituteEnvVars(cfg.Speech.ElevenLabs.APIKey)

	// The ANTHROPIC_API_KEY / ELEVENLABS_API_KEY env vars win when set, so a
	// bare .env deployment works without a config file.
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.Anthropic.APIKey = v
	}
	if v := os.Getenv("ELEVENLABS_API_KEY"); v != "" {
		cfg.Speech.ElevenLabs.APIKey = v
	}

	return &cfg, nil
}

func substituteEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// Extract variable name from ${VAR_NAME}
		varName := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}
