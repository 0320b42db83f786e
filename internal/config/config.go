// Package config loads and validates application configuration from
// environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Server settings.
	Port              int
	ReadHeaderTimeout time.Duration

	// Storage settings.
	DBPath string

	// Spotify settings.
	SpotifyClientID string
	SpotifyAuthURL  string
	SpotifyTokenURL string
	SpotifyAPIURL   string
	RedirectURL     string
	Scopes          []string

	// Mood inference settings.
	InferenceProvider string // "remote" or "local"
	InferenceBaseURL  string
	InferenceModelID  string
	InferenceAPIKey   string

	// Operational settings.
	LogLevel       string
	TrackLimit     int
	CoverWorkers   int
	CoverQueueSize int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:              envInt("EMOTIONPLAY_PORT", 8080),
		ReadHeaderTimeout: envDuration("EMOTIONPLAY_READ_HEADER_TIMEOUT", 15*time.Second),
		DBPath:            envStr("EMOTIONPLAY_DB_PATH", "emotionplay.db"),
		SpotifyClientID:   envStr("SPOTIFY_CLIENT_ID", ""),
		SpotifyAuthURL:    envStr("SPOTIFY_AUTH_URL", "https://accounts.spotify.com/authorize"),
		SpotifyTokenURL:   envStr("SPOTIFY_TOKEN_URL", "https://accounts.spotify.com/api/token"),
		SpotifyAPIURL:     envStr("SPOTIFY_API_URL", "https://api.spotify.com/v1"),
		RedirectURL:       envStr("SPOTIFY_REDIRECT_URL", "http://127.0.0.1:9090/callback"),
		Scopes:            strings.Fields(envStr("SPOTIFY_SCOPES", "playlist-modify-private playlist-modify-public")),
		InferenceProvider: envStr("EMOTIONPLAY_INFERENCE_PROVIDER", "auto"),
		InferenceBaseURL:  envStr("HF_INFERENCE_URL", "https://api-inference.huggingface.co"),
		InferenceModelID:  envStr("HF_MODEL_ID", "microsoft/resnet-50"),
		InferenceAPIKey:   envStr("HF_API_KEY", ""),
		LogLevel:          envStr("EMOTIONPLAY_LOG_LEVEL", "info"),
		TrackLimit:        envInt("EMOTIONPLAY_TRACK_LIMIT", 20),
		CoverWorkers:      envInt("EMOTIONPLAY_COVER_WORKERS", 2),
		CoverQueueSize:    envInt("EMOTIONPLAY_COVER_QUEUE_SIZE", 100),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that required configuration is present.
func (c Config) Validate() error {
	if c.SpotifyClientID == "" {
		return fmt.Errorf("config: SPOTIFY_CLIENT_ID is required")
	}
	if c.TrackLimit < 1 || c.TrackLimit > 100 {
		return fmt.Errorf("config: EMOTIONPLAY_TRACK_LIMIT must be in [1,100]")
	}
	switch c.InferenceProvider {
	case "auto", "remote", "local":
	default:
		return fmt.Errorf("config: unknown inference provider %q", c.InferenceProvider)
	}
	if c.InferenceProvider == "remote" && c.InferenceAPIKey == "" {
		return fmt.Errorf("config: HF_API_KEY is required for remote inference")
	}
	return nil
}

// UseRemoteInference reports whether the remote mood model should be used.
// "auto" picks remote whenever an API key is configured.
func (c Config) UseRemoteInference() bool {
	if c.InferenceProvider == "remote" {
		return true
	}
	return c.InferenceProvider == "auto" && c.InferenceAPIKey != ""
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return fallback
}
