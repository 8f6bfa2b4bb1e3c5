package video

import (
	"errors"

	"github.com/kmmndr/autotrim/internal/frame"
)

var ErrUnreadable = errors.New("unable to open video")

// Metadata is read once when a source is opened. FrameRate and FrameCount
// are truncated to integers; either may be 0 for unreadable inputs.
type Metadata struct {
	FrameRate  int
	FrameCount int
	Width      int
	Height     int
}

// Seconds converts a frame index to a stream offset in seconds.
func (m Metadata) Seconds(frameIndex int) float64 {
	if m.FrameRate <= 0 {
		return 0
	}
	return float64(frameIndex) / float64(m.FrameRate)
}

// Source is a sequential, seekable supplier of decoded frames.
type Source interface {
	Metadata() Metadata
	// Next returns false at the end of the stream or on a decode failure.
	Next() (*frame.Frame, bool)
	Seek(frameIndex int) error
	Close() error
}
