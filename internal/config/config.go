// Package config loads the Lumina user configuration from
// ~/.lumina/config.json with environment overrides. The file is optional;
// zero values fall back to defaults at the point of use.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Model defaults mirror the models the storefront was built against.
const (
	DefaultChatModel   = "gemini-3-pro-preview"
	DefaultFastModel   = "gemini-2.5-flash"
	DefaultTTSModel    = "gemini-2.5-flash-preview-tts"
	DefaultVisionModel = "gemini-3-pro-preview"
	DefaultVideoModel  = "veo-3.1-fast-generate-preview"
)

// Video polling defaults. The reference behavior polled every 10 seconds
// forever; we keep the interval and bound the attempts.
const (
	DefaultVideoPollInterval = 10 * time.Second
	DefaultVideoMaxPolls     = 30
)

// Config is the full user configuration.
type Config struct {
	// APIKey authenticates against the Gemini API.
	APIKey string `json:"api_key,omitempty"`

	// Theme for the TUI ("light" or "dark", auto-detected when empty).
	Theme string `json:"theme,omitempty"`

	// Optional model overrides.
	ChatModel   string `json:"chat_model,omitempty"`
	FastModel   string `json:"fast_model,omitempty"`
	TTSModel    string `json:"tts_model,omitempty"`
	VisionModel string `json:"vision_model,omitempty"`
	VideoModel  string `json:"video_model,omitempty"`

	// TTSVoice selects the prebuilt synthesis voice.
	TTSVoice string `json:"tts_voice,omitempty"`

	// Video generation poll bounds.
	VideoPollSeconds int `json:"video_poll_seconds,omitempty"`
	VideoMaxPolls    int `json:"video_max_polls,omitempty"`

	// DebugLog enables file logging for the TUI.
	DebugLog bool `json:"debug_log,omitempty"`
}

// DefaultPath returns the config file location (~/.lumina/config.json).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".lumina", "config.json")
	}
	return filepath.Join(home, ".lumina", "config.json")
}

// Dir returns the per-user state directory (~/.lumina).
func Dir() string {
	return filepath.Dir(DefaultPath())
}

// Load reads the config file if present and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fresh install
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides lets environment variables win over the file.
// GEMINI_API_KEY takes precedence over GOOGLE_API_KEY.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("LUMINA_THEME"); v != "" {
		c.Theme = v
	}
}

// Save writes the config, creating the directory as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// PollInterval returns the configured video poll interval.
func (c *Config) PollInterval() time.Duration {
	if c.VideoPollSeconds > 0 {
		return time.Duration(c.VideoPollSeconds) * time.Second
	}
	return DefaultVideoPollInterval
}

// MaxPolls returns the configured video poll attempt cap.
func (c *Config) MaxPolls() int {
	if c.VideoMaxPolls > 0 {
		return c.VideoMaxPolls
	}
	return DefaultVideoMaxPolls
}

// Model name accessors apply overrides with fallbacks.
func (c *Config) ChatModelName() string   { return orDefault(c.ChatModel, DefaultChatModel) }
func (c *Config) FastModelName() string   { return orDefault(c.FastModel, DefaultFastModel) }
func (c *Config) TTSModelName() string    { return orDefault(c.TTSModel, DefaultTTSModel) }
func (c *Config) VisionModelName() string { return orDefault(c.VisionModel, DefaultVisionModel) }
func (c *Config) VideoModelName() string  { return orDefault(c.VideoModel, DefaultVideoModel) }

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
