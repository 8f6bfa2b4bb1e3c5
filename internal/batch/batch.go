package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kmmndr/autotrim/internal/motion"
	"github.com/kmmndr/autotrim/internal/progress"
	"github.com/kmmndr/autotrim/internal/trim"
	"github.com/kmmndr/autotrim/internal/video"
)

const ReportFile = "report.json"

// VideoExtensions are matched case sensitively.
var VideoExtensions = []string{".mp4", ".MP4", ".avi", ".mov"}

type Opener func(path string) (video.Source, error)

type Trimmer func(inputPath, outputPath string, start int, end *int) (int, error)

type Processor struct {
	inputDir  string
	outputDir string
	workers   int
	sensor    *motion.Sensor
	open      Opener
	trim      Trimmer
	reporters progress.Factory
	logger    *slog.Logger
}

type Options struct {
	InputDir  string
	OutputDir string
	Workers   int
	Sensor    *motion.Sensor
	Open      Opener
	Trim      Trimmer
	Progress  progress.Factory
	Logger    *slog.Logger
}

func NewProcessor(opts Options) *Processor {
	p := &Processor{
		inputDir:  opts.InputDir,
		outputDir: opts.OutputDir,
		workers:   max(opts.Workers, 1),
		sensor:    opts.Sensor,
		open:      opts.Open,
		trim:      opts.Trim,
		reporters: opts.Progress,
		logger:    opts.Logger,
	}
	if p.open == nil {
		p.open = func(path string) (video.Source, error) {
			return video.NewFileStream(path)
		}
	}
	if p.trim == nil {
		p.trim = func(inputPath, outputPath string, start int, end *int) (int, error) {
			return trim.TrimFile(inputPath, outputPath, start, end, video.DefaultCodec)
		}
	}
	if p.reporters == nil {
		p.reporters = func(string, int) motion.ProgressReporter { return progress.Nop{} }
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	p.logger = p.logger.With("component", "batch")
	return p
}

// ListVideos returns the video files of dir, sorted by name.
func ListVideos(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory '%s': %w", dir, err)
	}

	var videos []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if hasVideoExtension(entry.Name()) {
			videos = append(videos, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(videos)
	return videos, nil
}

func hasVideoExtension(name string) bool {
	for _, ext := range VideoExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// OutputPath is where the trimmed copy of videoPath is written.
func (p *Processor) OutputPath(videoPath string) string {
	return filepath.Join(p.outputDir, "trimmed_"+filepath.Base(videoPath))
}

// Run processes every video of the input directory and writes the report.
// Per-file failures are recorded in the report and do not stop the batch.
func (p *Processor) Run(ctx context.Context) ([]*motion.MotionReport, error) {
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory '%s': %w", p.outputDir, err)
	}

	videos, err := ListVideos(p.inputDir)
	if err != nil {
		return nil, err
	}
	p.logger.Info("found videos", "count", len(videos), "dir", p.inputDir)

	reports := make([]*motion.MotionReport, len(videos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, videoPath := range videos {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = p.ProcessFile(videoPath)
			return nil
		})
	}

	waitErr := g.Wait()

	done := reports[:0]
	for _, r := range reports {
		if r != nil {
			done = append(done, r)
		}
	}

	if err := p.writeReport(done); err != nil {
		return done, err
	}
	if err := ctx.Err(); err != nil {
		p.logger.Warn("batch interrupted", "processed", len(done), "total", len(videos))
		return done, err
	}
	return done, waitErr
}

// ProcessFile scans one video and trims it when a takeoff is found.
func (p *Processor) ProcessFile(videoPath string) *motion.MotionReport {
	name := filepath.Base(videoPath)
	logger := p.logger.With("file", name)

	src, err := p.open(videoPath)
	if err != nil {
		logger.Warn("unable to open video", "err", err)
		report := motion.NewMotionReport(videoPath, nil)
		report.Outcome = motion.OutcomeUnreadable
		report.Error = err.Error()
		return report
	}
	meta := src.Metadata()
	result := p.sensor.Scan(src, name, p.reporters(name, meta.FrameCount))
	if err := src.Close(); err != nil {
		logger.Debug("close source", "err", err)
	}

	report := motion.NewMotionReport(videoPath, result)

	takeoff, ok := result.Takeoff.Frame()
	if !ok {
		logger.Info("takeoff not detected")
		return report
	}

	var landing *int
	if frameIndex, ok := result.Landing.Frame(); ok {
		landing = &frameIndex
	}

	output := p.OutputPath(videoPath)
	written, err := p.trim(videoPath, output, takeoff, landing)
	if err != nil {
		logger.Error("trim failed", "output", output, "err", err)
		report.Outcome = motion.OutcomeFailed
		report.Error = err.Error()
		return report
	}

	report.Outcome = motion.OutcomeTrimmed
	report.Output = output
	report.FramesWritten = written
	logger.Info("processed",
		"takeoff", takeoff,
		"takeoff_time", report.TakeoffTime,
		"end", endLabel(landing),
		"output", output,
		"frames", written)

	return report
}

func endLabel(end *int) string {
	if end == nil {
		return "end"
	}
	return fmt.Sprint(*end)
}

func (p *Processor) writeReport(reports []*motion.MotionReport) error {
	path := filepath.Join(p.outputDir, ReportFile)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(reports); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
