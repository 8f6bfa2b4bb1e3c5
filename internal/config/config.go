package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/kmmndr/autotrim/internal/motion"
	"github.com/kmmndr/autotrim/internal/video"
)

const EnvPrefix = "AUTOTRIM_"

type Config struct {
	InputDir        string    `yaml:"input_dir"`
	OutputDir       string    `yaml:"output_dir"`
	ScaleFactor     float64   `yaml:"scale_factor"`
	SkipSeconds     int       `yaml:"skip_seconds"`
	FramesPerSecond int       `yaml:"frames_per_second"` // processing speed assumption, also the progress cadence
	Iterations      int       `yaml:"iterations"`        // Farneback iterations per pyramid level
	MotionThreshold float64   `yaml:"motion_threshold"`
	HistorySize     int       `yaml:"history_size"`
	Codec           string    `yaml:"codec"` // FourCC of trimmed outputs
	Workers         int       `yaml:"workers"`
	Progress        string    `yaml:"progress"` // bar, log, none
	Log             LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

func Default() *Config {
	return &Config{
		InputDir:        "input",
		OutputDir:       "output",
		ScaleFactor:     motion.DefaultScaleFactor,
		SkipSeconds:     motion.DefaultSkipSeconds,
		FramesPerSecond: motion.DefaultFramesPerSecond,
		Iterations:      motion.DefaultIterations,
		MotionThreshold: motion.DefaultThreshold,
		HistorySize:     motion.DefaultHistorySize,
		Codec:           video.DefaultCodec,
		Workers:         1,
		Progress:        "bar",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load applies defaults, then the YAML file at path (if any), then
// AUTOTRIM_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	return cfg, nil
}

func (c *Config) SensorConfig() motion.SensorConfig {
	return motion.SensorConfig{
		Threshold:       c.MotionThreshold,
		HistorySize:     c.HistorySize,
		SkipSeconds:     c.SkipSeconds,
		FramesPerSecond: c.FramesPerSecond,
	}
}

func (c *Config) Validate() error {
	var errs []error

	if c.InputDir == "" {
		errs = append(errs, errors.New("input_dir is required"))
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output_dir is required"))
	}
	if c.ScaleFactor <= 0 || c.ScaleFactor > 1 {
		errs = append(errs, fmt.Errorf("scale_factor must be in (0, 1], got %v", c.ScaleFactor))
	}
	if c.SkipSeconds < 0 {
		errs = append(errs, fmt.Errorf("skip_seconds must be >= 0, got %d", c.SkipSeconds))
	}
	if c.FramesPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("frames_per_second must be > 0, got %d", c.FramesPerSecond))
	}
	if c.Iterations <= 0 {
		errs = append(errs, fmt.Errorf("iterations must be > 0, got %d", c.Iterations))
	}
	if c.HistorySize <= 0 {
		errs = append(errs, fmt.Errorf("history_size must be > 0, got %d", c.HistorySize))
	}
	if len(c.Codec) != 4 {
		errs = append(errs, fmt.Errorf("codec must be a 4 character FourCC, got %q", c.Codec))
	}
	if c.Workers <= 0 {
		errs = append(errs, fmt.Errorf("workers must be > 0, got %d", c.Workers))
	}

	return errors.Join(errs...)
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	strs := map[string]*string{
		"INPUT_DIR":  &c.InputDir,
		"OUTPUT_DIR": &c.OutputDir,
		"CODEC":      &c.Codec,
		"PROGRESS":   &c.Progress,
		"LOG_LEVEL":  &c.Log.Level,
		"LOG_FORMAT": &c.Log.Format,
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"SKIP_SECONDS":      &c.SkipSeconds,
		"FRAMES_PER_SECOND": &c.FramesPerSecond,
		"ITERATIONS":        &c.Iterations,
		"HISTORY_SIZE":      &c.HistorySize,
		"WORKERS":           &c.Workers,
	}
	for key, dst := range ints {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = n
	}

	floats := map[string]*float64{
		"SCALE_FACTOR":     &c.ScaleFactor,
		"MOTION_THRESHOLD": &c.MotionThreshold,
	}
	for key, dst := range floats {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = f
	}

	return nil
}
