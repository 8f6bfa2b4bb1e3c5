package motion

import (
	"log"
	"time"

	uuid "github.com/gofrs/uuid/v5"

	"github.com/kmmndr/autotrim/internal/video"
)

// Result is the outcome of one scan.
type Result struct {
	Takeoff Event
	// Landing is never detected; it stays unset.
	Landing        Event
	Metadata       video.Metadata
	FramesAnalyzed int
	Elapsed        time.Duration
	uuid           uuid.UUID
}

func NewResult(meta video.Metadata) *Result {
	ref, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("failed to generate UUID: %v", err)
	}

	return &Result{
		Metadata: meta,
		uuid:     ref,
	}
}

func (r *Result) UUID() string {
	return r.uuid.String()
}

// TakeoffSeconds is the stream offset of the takeoff frame, 0 when unset.
func (r *Result) TakeoffSeconds() float64 {
	frameIndex, ok := r.Takeoff.Frame()
	if !ok {
		return 0
	}
	return r.Metadata.Seconds(frameIndex)
}
