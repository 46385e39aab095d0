package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satindergrewal/salient/internal/waveform"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	t.Setenv("SALIENT_CONFIG", "")
	t.Setenv("SALIENT_WAVEFORM_PROFILE", "")
	wfProfile, wfSeed, wfAt, wfJSON = "", 0, 0, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestWaveformCommandJSON(t *testing.T) {
	var a, b []float64
	require.NoError(t, json.Unmarshal([]byte(runCLI(t, "waveform", "--profile", "compact", "--seed", "9", "--json")), &a))
	require.NoError(t, json.Unmarshal([]byte(runCLI(t, "waveform", "--profile", "compact", "--seed", "9", "--json")), &b))

	assert.Len(t, a, waveform.ProfileCompact.Bars)
	assert.Equal(t, a, b, "same seed gives the same bars")
	for _, h := range a {
		assert.GreaterOrEqual(t, h, waveform.ProfileCompact.Floor)
		assert.LessOrEqual(t, h, 1.0)
	}
}

func TestWaveformCommandText(t *testing.T) {
	out := runCLI(t, "waveform", "--seed", "3", "--at", "1.5s")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, waveform.ProfileSpeech.Bars)
	assert.True(t, strings.HasPrefix(lines[0], "  0 0."))
}

func TestWaveformCommandUnknownProfile(t *testing.T) {
	t.Setenv("SALIENT_CONFIG", "")
	wfProfile = ""
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"waveform", "--profile", "nope"})
	assert.Error(t, rootCmd.Execute())
}
