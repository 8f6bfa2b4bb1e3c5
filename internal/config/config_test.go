package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	sensor := cfg.SensorConfig()
	assert.Equal(t, 8.0, sensor.Threshold)
	assert.Equal(t, 5, sensor.HistorySize)
	assert.Equal(t, 4, sensor.SkipSeconds)
	assert.Equal(t, 30, sensor.FramesPerSecond)
	assert.Equal(t, 0.3, cfg.ScaleFactor)
	assert.Equal(t, "mp4v", cfg.Codec)
}

func TestLoadYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autotrim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
input_dir: flights
motion_threshold: 6.5
history_size: 7
log:
  level: debug
`), 0o644))

	t.Setenv("AUTOTRIM_HISTORY_SIZE", "9")
	t.Setenv("AUTOTRIM_OUTPUT_DIR", "trimmed")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "flights", cfg.InputDir)
	assert.Equal(t, "trimmed", cfg.OutputDir)
	assert.Equal(t, 6.5, cfg.MotionThreshold)
	assert.Equal(t, 9, cfg.HistorySize)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 4, cfg.SkipSeconds)
}

func TestLoadRejectsBadEnv(t *testing.T) {
	t.Setenv("AUTOTRIM_SKIP_SECONDS", "four")

	_, err := Load("")
	assert.ErrorContains(t, err, "AUTOTRIM_SKIP_SECONDS")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "zero scale", mutate: func(c *Config) { c.ScaleFactor = 0 }, wantErr: "scale_factor"},
		{name: "negative skip", mutate: func(c *Config) { c.SkipSeconds = -1 }, wantErr: "skip_seconds"},
		{name: "empty history", mutate: func(c *Config) { c.HistorySize = 0 }, wantErr: "history_size"},
		{name: "bad codec", mutate: func(c *Config) { c.Codec = "h264x" }, wantErr: "codec"},
		{name: "no workers", mutate: func(c *Config) { c.Workers = 0 }, wantErr: "workers"},
		{name: "no input", mutate: func(c *Config) { c.InputDir = "" }, wantErr: "input_dir"},
		{name: "zero skip is fine", mutate: func(c *Config) { c.SkipSeconds = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
