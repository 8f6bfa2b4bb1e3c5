package progress

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/kmmndr/autotrim/internal/motion"
)

const (
	ModeBar  = "bar"
	ModeLog  = "log"
	ModeNone = "none"
)

// Bar renders scan progress as a terminal progress bar.
type Bar struct {
	bar *progressbar.ProgressBar
}

func NewBar(w io.Writer, name string, total int) *Bar {
	bar := progressbar.NewOptions(max(total, 1),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Analyzing "+name),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "▐",
			BarEnd:        "▌",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
	return &Bar{bar: bar}
}

func (b *Bar) Report(p motion.Progress) {
	b.bar.Describe(fmt.Sprintf("Elapsed: %.1fs, Remaining: %.1fs", p.Elapsed.Seconds(), p.Remaining().Seconds()))
	_ = b.bar.Set(p.Frame)
}

func (b *Bar) Done() {
	_ = b.bar.Finish()
}

// Log writes one structured line per progress update.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger, name string) *Log {
	return &Log{logger: logger.With("component", "progress", "file", name)}
}

func (l *Log) Report(p motion.Progress) {
	l.logger.Info("analyzing",
		"frame", p.Frame,
		"total", p.Total,
		"percent", fmt.Sprintf("%.1f", p.Percent()),
		"elapsed", p.Elapsed.Round(100*time.Millisecond),
		"remaining", p.Remaining().Round(100*time.Millisecond))
}

func (l *Log) Done() {}

type Nop struct{}

func (Nop) Report(motion.Progress) {}
func (Nop) Done()                  {}

// Factory builds a reporter per scanned file.
type Factory func(name string, total int) motion.ProgressReporter

func NewFactory(mode string, w io.Writer, logger *slog.Logger) (Factory, error) {
	switch mode {
	case ModeBar, "":
		return func(name string, total int) motion.ProgressReporter {
			return NewBar(w, name, total)
		}, nil
	case ModeLog:
		return func(name string, _ int) motion.ProgressReporter {
			return NewLog(logger, name)
		}, nil
	case ModeNone:
		return func(string, int) motion.ProgressReporter {
			return Nop{}
		}, nil
	default:
		return nil, fmt.Errorf("unknown progress mode: %s", mode)
	}
}
