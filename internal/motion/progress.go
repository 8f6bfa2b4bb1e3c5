package motion

import "time"

// Progress is a snapshot of a running scan.
type Progress struct {
	Frame   int
	Total   int
	Elapsed time.Duration
}

func (p Progress) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	return float64(p.Frame) / float64(p.Total) * 100
}

// Remaining extrapolates the elapsed time per frame over the frames left.
func (p Progress) Remaining() time.Duration {
	if p.Frame <= 0 || p.Total <= p.Frame {
		return 0
	}
	perFrame := float64(p.Elapsed) / float64(p.Frame)
	return time.Duration(perFrame * float64(p.Total-p.Frame))
}

type ProgressReporter interface {
	Report(p Progress)
	Done()
}

type nopReporter struct{}

func (nopReporter) Report(Progress) {}
func (nopReporter) Done()           {}
