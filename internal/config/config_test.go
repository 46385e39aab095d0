package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satindergrewal/salient/internal/waveform"
)

var envVars = []string{
	"SALIENT_CONFIG", "SALIENT_PORT", "SALIENT_SHUTDOWN_TIMEOUT", "SALIENT_LOG_LEVEL",
	"SALIENT_DEMO_AUDIO", "SALIENT_WAVEFORM_PROFILE", "SALIENT_WAVEFORM_SEED",
	"SALIENT_FRAME_INTERVAL", "SALIENT_SESSION_TTL", "SALIENT_MAX_SESSIONS",
	"SALIENT_FORM_RATE", "SALIENT_FORM_BURST", "SALIENT_DEMO_RATE", "SALIENT_DEMO_BURST",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		// t.Setenv restores the previous value when the test ends.
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "salient.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.WaveformProfile != "speech" {
		t.Errorf("WaveformProfile = %q, want speech", cfg.WaveformProfile)
	}
	if cfg.SessionTTL != 10*time.Minute {
		t.Errorf("SessionTTL = %v, want 10m", cfg.SessionTTL)
	}
	if cfg.MaxSessions != 64 {
		t.Errorf("MaxSessions = %d, want 64", cfg.MaxSessions)
	}
	if cfg.FrameInterval != 16*time.Millisecond {
		t.Errorf("FrameInterval = %v, want 16ms", cfg.FrameInterval)
	}
	if cfg.WaveformSeed != 0 {
		t.Errorf("WaveformSeed = %d, want 0", cfg.WaveformSeed)
	}
	assert.Equal(t, ":8080", cfg.Addr())

	p, err := cfg.Profile()
	require.NoError(t, err)
	assert.Equal(t, waveform.ProfileSpeech.Bars, p.Bars)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SALIENT_PORT", "3000")
	t.Setenv("SALIENT_LOG_LEVEL", "debug")
	t.Setenv("SALIENT_DEMO_AUDIO", "/srv/demo.wav")
	t.Setenv("SALIENT_WAVEFORM_PROFILE", "compact")
	t.Setenv("SALIENT_WAVEFORM_SEED", "42")
	t.Setenv("SALIENT_FRAME_INTERVAL", "33ms")
	t.Setenv("SALIENT_SESSION_TTL", "2m")
	t.Setenv("SALIENT_MAX_SESSIONS", "8")
	t.Setenv("SALIENT_FORM_RATE", "2.5")
	t.Setenv("SALIENT_FORM_BURST", "1")
	t.Setenv("SALIENT_DEMO_RATE", "30")
	t.Setenv("SALIENT_DEMO_BURST", "6")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/srv/demo.wav", cfg.DemoAudio)
	assert.Equal(t, "compact", cfg.WaveformProfile)
	assert.Equal(t, uint64(42), cfg.WaveformSeed)
	assert.Equal(t, 33*time.Millisecond, cfg.FrameInterval)
	assert.Equal(t, 2*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 8, cfg.MaxSessions)
	assert.Equal(t, 2.5, cfg.FormRatePerMinute)
	assert.Equal(t, 1, cfg.FormBurst)
	assert.Equal(t, 30.0, cfg.DemoRatePerMinute)
	assert.Equal(t, 6, cfg.DemoBurst)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, `
port: 9090
demo_audio: clips/taylor.wav
session_ttl: 5m
max_sessions: 4
`)
	t.Setenv("SALIENT_MAX_SESSIONS", "16")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "clips/taylor.wav", cfg.DemoAudio)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 16, cfg.MaxSessions, "env overrides the file")
	assert.Equal(t, "speech", cfg.WaveformProfile, "untouched keys keep defaults")
	assert.Equal(t, 16*time.Millisecond, cfg.FrameInterval)
}

func TestLoadConfigFromEnvPath(t *testing.T) {
	clearEnv(t)
	t.Setenv("SALIENT_CONFIG", writeYAML(t, "port: 7070\n"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
}

func TestLoadCustomProfile(t *testing.T) {
	clearEnv(t)
	path := writeYAML(t, `
custom_profile:
  bars: 24
  base_min: 0.3
  base_max: 0.6
  floor: 0.1
  throttle: 40ms
  waves:
    - {amplitude: 0.2, frequency: 4, phase: 0.3}
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	p, err := cfg.Profile()
	require.NoError(t, err)
	assert.Equal(t, "custom", p.Name)
	assert.Equal(t, 24, p.Bars)
	assert.Equal(t, 40*time.Millisecond, p.Throttle)
	require.Len(t, p.Waves, 1)
	assert.Equal(t, 4.0, p.Waves[0].Frequency)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeYAML(t, "port: [1, 2"))
	assert.Error(t, err)

	t.Setenv("SALIENT_WAVEFORM_PROFILE", "bogus")
	_, err = Load("")
	assert.ErrorIs(t, err, ErrUnknownProfile)

	os.Unsetenv("SALIENT_WAVEFORM_PROFILE")
	_, err = Load(writeYAML(t, "custom_profile: {bars: 0, floor: 0.1}\n"))
	assert.ErrorIs(t, err, waveform.ErrInvalidBarCount)
}

func TestMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
}

func TestEnvInvalidFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("SALIENT_PORT", "not-a-number")
	t.Setenv("SALIENT_SESSION_TTL", "soon")
	t.Setenv("SALIENT_WAVEFORM_SEED", "-1")

	cfg, err := Load("")
	require.NoError(t, err)
	if cfg.Port != 8080 {
		t.Errorf("Invalid int env should fallback to default: got %d, want 8080", cfg.Port)
	}
	if cfg.SessionTTL != 10*time.Minute {
		t.Errorf("Invalid duration env should fallback: got %v", cfg.SessionTTL)
	}
	if cfg.WaveformSeed != 0 {
		t.Errorf("Invalid seed env should fallback: got %d", cfg.WaveformSeed)
	}
}
