package motion

import (
	"fmt"
	"path/filepath"
	"time"
)

type Outcome string

const (
	OutcomeTrimmed     Outcome = "trimmed"
	OutcomeNotDetected Outcome = "not_detected"
	OutcomeUnreadable  Outcome = "unreadable"
	OutcomeFailed      Outcome = "failed"
)

type MotionReport struct {
	UUID           string  `json:"uuid"`
	File           string  `json:"file"`
	Outcome        Outcome `json:"outcome"`
	TakeoffFrame   *int    `json:"takeoff_frame"`
	TakeoffTime    string  `json:"takeoff_time,omitempty"`
	LandingFrame   *int    `json:"landing_frame"`
	Output         string  `json:"output,omitempty"`
	FramesAnalyzed int     `json:"frames_analyzed"`
	FramesWritten  int     `json:"frames_written,omitempty"`
	Duration       string  `json:"duration"`
	Date           string  `json:"date"`
	Error          string  `json:"error,omitempty"`
}

func NewMotionReport(videoPath string, result *Result) *MotionReport {
	report := &MotionReport{
		File:    filepath.Base(videoPath),
		Outcome: OutcomeNotDetected,
		Date:    time.Now().Format(time.RFC3339),
	}
	if result == nil {
		return report
	}

	report.UUID = result.UUID()
	report.FramesAnalyzed = result.FramesAnalyzed
	report.Duration = fmt.Sprintf("%.2f", result.Elapsed.Seconds())

	if frameIndex, ok := result.Takeoff.Frame(); ok {
		report.TakeoffFrame = &frameIndex
		report.TakeoffTime = fmt.Sprintf("%.2f", result.TakeoffSeconds())
	}
	if frameIndex, ok := result.Landing.Frame(); ok {
		report.LandingFrame = &frameIndex
	}

	return report
}
