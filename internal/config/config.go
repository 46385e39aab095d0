package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/satindergrewal/salient/internal/waveform"
)

// ErrUnknownProfile is returned for a waveform profile name with no preset.
var ErrUnknownProfile = errors.New("unknown waveform profile")

// Config holds all runtime configuration. Defaults are overlaid by an
// optional YAML file, then by environment variables.
type Config struct {
	// Server
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	LogLevel        string        `yaml:"log_level"`

	// Voice demo
	DemoAudio       string            `yaml:"demo_audio"`
	WaveformProfile string            `yaml:"waveform_profile"`
	CustomProfile   *waveform.Profile `yaml:"custom_profile"` // overrides WaveformProfile
	WaveformSeed    uint64            `yaml:"waveform_seed"`  // 0 seeds from the runtime
	FrameInterval   time.Duration     `yaml:"frame_interval"`
	SessionTTL      time.Duration     `yaml:"session_ttl"`
	MaxSessions     int               `yaml:"max_sessions"`

	// Pilot form
	FormRatePerMinute float64 `yaml:"form_rate_per_minute"`
	FormBurst         int     `yaml:"form_burst"`

	// Demo session creation
	DemoRatePerMinute float64 `yaml:"demo_rate_per_minute"`
	DemoBurst         int     `yaml:"demo_burst"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:              8080,
		ShutdownTimeout:   10 * time.Second,
		LogLevel:          "info",
		DemoAudio:         "audio/taylor_demo.mp3",
		WaveformProfile:   waveform.ProfileSpeech.Name,
		FrameInterval:     16 * time.Millisecond,
		SessionTTL:        10 * time.Minute,
		MaxSessions:       64,
		FormRatePerMinute: 5,
		FormBurst:         3,
		DemoRatePerMinute: 12,
		DemoBurst:         4,
	}
}

// Load reads configuration. path may be empty, in which case SALIENT_CONFIG
// is consulted; a missing file leaves the defaults in place.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path == "" {
		path = os.Getenv("SALIENT_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if _, err := cfg.Profile(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Port = envInt("SALIENT_PORT", c.Port)
	c.ShutdownTimeout = envDuration("SALIENT_SHUTDOWN_TIMEOUT", c.ShutdownTimeout)
	c.LogLevel = envStr("SALIENT_LOG_LEVEL", c.LogLevel)

	c.DemoAudio = envStr("SALIENT_DEMO_AUDIO", c.DemoAudio)
	if v := os.Getenv("SALIENT_WAVEFORM_PROFILE"); v != "" {
		c.WaveformProfile = v
		c.CustomProfile = nil
	}
	c.WaveformSeed = envUint64("SALIENT_WAVEFORM_SEED", c.WaveformSeed)
	c.FrameInterval = envDuration("SALIENT_FRAME_INTERVAL", c.FrameInterval)
	c.SessionTTL = envDuration("SALIENT_SESSION_TTL", c.SessionTTL)
	c.MaxSessions = envInt("SALIENT_MAX_SESSIONS", c.MaxSessions)

	c.FormRatePerMinute = envFloat("SALIENT_FORM_RATE", c.FormRatePerMinute)
	c.FormBurst = envInt("SALIENT_FORM_BURST", c.FormBurst)
	c.DemoRatePerMinute = envFloat("SALIENT_DEMO_RATE", c.DemoRatePerMinute)
	c.DemoBurst = envInt("SALIENT_DEMO_BURST", c.DemoBurst)
}

// Profile resolves the waveform profile to use.
func (c Config) Profile() (waveform.Profile, error) {
	if c.CustomProfile != nil {
		p := *c.CustomProfile
		if p.Name == "" {
			p.Name = "custom"
		}
		if err := p.Validate(); err != nil {
			return waveform.Profile{}, fmt.Errorf("custom_profile: %w", err)
		}
		return p, nil
	}
	p, ok := waveform.ProfileByName(c.WaveformProfile)
	if !ok {
		return waveform.Profile{}, fmt.Errorf("%w: %q (have %v)", ErrUnknownProfile, c.WaveformProfile, waveform.ProfileNames())
	}
	return p, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envUint64(key string, fallback uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
