package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kmmndr/autotrim/internal/batch"
	"github.com/kmmndr/autotrim/internal/config"
	"github.com/kmmndr/autotrim/internal/logging"
	"github.com/kmmndr/autotrim/internal/motion"
	"github.com/kmmndr/autotrim/internal/progress"
	"github.com/kmmndr/autotrim/internal/trim"
)

func main() {
	var configPath string
	var videoPath string

	flag.StringVar(&configPath, "config", "", "YAML config file")
	flag.StringVar(&videoPath, "video", "", "Process a single video file instead of the input directory")

	cfg, err := config.Load(flagConfigPath(os.Args[1:]))
	if err != nil {
		log.Fatalf("Error: %v\n", err)
	}

	flag.StringVar(&cfg.InputDir, "input", cfg.InputDir, "Input directory")
	flag.StringVar(&cfg.OutputDir, "output", cfg.OutputDir, "Output directory")
	flag.Float64Var(&cfg.MotionThreshold, "threshold", cfg.MotionThreshold, "Motion threshold (mean flow in pixels)")
	flag.IntVar(&cfg.SkipSeconds, "skip", cfg.SkipSeconds, "Seconds skipped at the start of each video")
	flag.Float64Var(&cfg.ScaleFactor, "scale", cfg.ScaleFactor, "Downscale factor applied before optical flow")
	flag.IntVar(&cfg.HistorySize, "history", cfg.HistorySize, "Motion history size")
	flag.IntVar(&cfg.Iterations, "iterations", cfg.Iterations, "Optical flow iterations")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "Videos processed in parallel")
	flag.StringVar(&cfg.Codec, "codec", cfg.Codec, "FourCC codec of trimmed videos")
	flag.StringVar(&cfg.Progress, "progress", cfg.Progress, "Progress output: bar, log, none")
	flag.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level")
	flag.StringVar(&cfg.Log.Format, "log-format", cfg.Log.Format, "Log format: text, json")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	progressMode := cfg.Progress
	if cfg.Workers > 1 && progressMode == progress.ModeBar {
		progressMode = progress.ModeLog
	}
	reporters, err := progress.NewFactory(progressMode, os.Stderr, logger)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sensor := motion.NewSensor(cfg.SensorConfig(), motion.NewFlowEstimator(cfg.ScaleFactor, cfg.Iterations), logger)
	processor := batch.NewProcessor(batch.Options{
		InputDir:  cfg.InputDir,
		OutputDir: cfg.OutputDir,
		Workers:   cfg.Workers,
		Sensor:    sensor,
		Trim: func(inputPath, outputPath string, start int, end *int) (int, error) {
			return trim.TrimFile(inputPath, outputPath, start, end, cfg.Codec)
		},
		Progress: reporters,
		Logger:   logger,
	})

	if videoPath != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			log.Fatalf("Error: unable to create output directory: %v\n", err)
		}
		report := processor.ProcessFile(videoPath)
		printReport(report)
		if report.Outcome == motion.OutcomeFailed || report.Outcome == motion.OutcomeUnreadable {
			os.Exit(1)
		}
		return
	}

	reports, err := processor.Run(ctx)
	for _, report := range reports {
		printReport(report)
	}
	if err != nil {
		logger.Error("batch failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func printReport(report *motion.MotionReport) {
	switch report.Outcome {
	case motion.OutcomeTrimmed:
		fmt.Printf("Processed: %s -> Trimmed from frame %d to end.\n", report.File, *report.TakeoffFrame)
	case motion.OutcomeNotDetected:
		fmt.Printf("Takeoff not detected in %s.\n", report.File)
	default:
		fmt.Printf("Failed: %s (%s): %s\n", report.File, report.Outcome, report.Error)
	}
}

// flagConfigPath finds -config before flag parsing so that the file can
// seed the flag defaults.
func flagConfigPath(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "-config" || arg == "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(arg, "-config="):
			return strings.TrimPrefix(arg, "-config=")
		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	return ""
}
