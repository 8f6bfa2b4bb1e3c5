package motion

import (
	"log/slog"
	"time"

	"github.com/kmmndr/autotrim/internal/video"
)

const (
	DefaultSkipSeconds     = 4
	DefaultFramesPerSecond = 30
)

type SensorConfig struct {
	Threshold   float64
	HistorySize int
	SkipSeconds int
	// FramesPerSecond is the assumed processing speed, used for the
	// initial time estimate and as the progress cadence.
	FramesPerSecond int
}

func DefaultSensorConfig() SensorConfig {
	return SensorConfig{
		Threshold:       DefaultThreshold,
		HistorySize:     DefaultHistorySize,
		SkipSeconds:     DefaultSkipSeconds,
		FramesPerSecond: DefaultFramesPerSecond,
	}
}

// Sensor drives a takeoff scan over one video source.
type Sensor struct {
	config    SensorConfig
	estimator Estimator
	logger    *slog.Logger
}

func NewSensor(config SensorConfig, estimator Estimator, logger *slog.Logger) *Sensor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sensor{
		config:    config,
		estimator: estimator,
		logger:    logger.With("component", "sensor"),
	}
}

// Scan reads src sequentially and returns the first takeoff event. Stream
// exhaustion and decode failures end the scan with the result known so
// far; they are not errors.
func (s *Sensor) Scan(src video.Source, name string, reporter ProgressReporter) *Result {
	if reporter == nil {
		reporter = nopReporter{}
	}
	defer reporter.Done()

	startTime := time.Now()
	meta := src.Metadata()
	result := NewResult(meta)
	defer func() {
		result.Elapsed = time.Since(startTime)
	}()

	logger := s.logger.With("file", name)
	skipFrames := max(0, meta.FrameRate*s.config.SkipSeconds)
	logger.Info("processing video",
		"fps", meta.FrameRate,
		"frames", meta.FrameCount,
		"skip_seconds", s.config.SkipSeconds,
		"skip_frames", skipFrames,
		"estimated", s.estimate(meta))

	if !skip(src, skipFrames) {
		logger.Info("stream ended while skipping initial frames")
		return result
	}

	first, ok := src.Next()
	if !ok {
		logger.Info("stream ended before the first reference frame")
		return result
	}
	ref, err := s.estimator.Reference(first)
	first.Close()
	if err != nil {
		logger.Warn("unable to build reference frame", "err", err)
		return result
	}
	defer func() {
		ref.Close()
	}()

	detector := NewDetector(s.config.Threshold, s.config.HistorySize)

	for frameNum := 1; frameNum < meta.FrameCount; frameNum++ {
		if s.config.FramesPerSecond > 0 && frameNum%s.config.FramesPerSecond == 0 {
			reporter.Report(Progress{Frame: frameNum, Total: meta.FrameCount, Elapsed: time.Since(startTime)})
		}

		current, ok := src.Next()
		if !ok {
			logger.Debug("stream ended early", "frame", frameNum)
			break
		}

		magnitude, gray, err := s.estimator.Estimate(ref, current)
		current.Close()
		if err != nil {
			logger.Warn("motion estimation failed", "frame", frameNum, "err", err)
			break
		}

		wasDetected := detector.Event().Detected()
		event := detector.Observe(frameNum, magnitude)
		if !wasDetected && event.Detected() {
			logger.Debug("motion threshold crossed",
				"frame", frameNum,
				"average", detector.Average(),
				"takeoff", event.String())
		}

		ref.Close()
		ref = gray
		result.FramesAnalyzed++
	}

	result.Takeoff = detector.Event()
	logger.Info("analysis complete",
		"takeoff", result.Takeoff.String(),
		"analyzed", result.FramesAnalyzed,
		"elapsed", time.Since(startTime).Round(100*time.Millisecond))

	return result
}

func (s *Sensor) estimate(meta video.Metadata) time.Duration {
	if s.config.FramesPerSecond <= 0 || meta.FrameCount <= 0 {
		return 0
	}
	seconds := float64(meta.FrameCount) / float64(s.config.FramesPerSecond)
	return time.Duration(seconds * float64(time.Second))
}

// skip consumes n raw frames and reports whether the stream lasted.
func skip(src video.Source, n int) bool {
	for i := 0; i < n; i++ {
		f, ok := src.Next()
		if !ok {
			return false
		}
		f.Close()
	}
	return true
}
