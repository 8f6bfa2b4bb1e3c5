package video

import (
	"fmt"

	"github.com/kmmndr/autotrim/internal/frame"

	"gocv.io/x/gocv"
)

type Stream struct {
	Video    *gocv.VideoCapture
	metadata Metadata
	position int
	ended    bool
}

func NewFileStream(videoPath string) (*Stream, error) {
	video, err := gocv.VideoCaptureFile(videoPath)
	if err != nil {
		if video != nil {
			video.Close()
		}
		return nil, fmt.Errorf("%w %s: %v", ErrUnreadable, videoPath, err)
	}
	if !video.IsOpened() {
		video.Close()
		return nil, fmt.Errorf("%w %s", ErrUnreadable, videoPath)
	}

	return &Stream{
		Video: video,
		metadata: Metadata{
			FrameRate:  int(video.Get(gocv.VideoCaptureFPS)),
			FrameCount: int(video.Get(gocv.VideoCaptureFrameCount)),
			Width:      int(video.Get(gocv.VideoCaptureFrameWidth)),
			Height:     int(video.Get(gocv.VideoCaptureFrameHeight)),
		},
	}, nil
}

func (s *Stream) Metadata() Metadata {
	return s.metadata
}

func (s *Stream) Next() (*frame.Frame, bool) {
	if s.ended {
		return nil, false
	}

	mat := gocv.NewMat()
	if ok := s.Video.Read(&mat); !ok || mat.Empty() {
		mat.Close()
		s.ended = true
		return nil, false
	}

	f, err := frame.NewFrame(s.position, &mat)
	if err != nil {
		mat.Close()
		s.ended = true
		return nil, false
	}
	s.position++

	return f, true
}

func (s *Stream) Seek(frameIndex int) error {
	if frameIndex < 0 {
		return fmt.Errorf("seek to negative frame %d", frameIndex)
	}
	s.Video.Set(gocv.VideoCapturePosFrames, float64(frameIndex))
	s.position = frameIndex
	s.ended = false
	return nil
}

func (s *Stream) Close() error {
	return s.Video.Close()
}

func (s *Stream) TimeAtFrame(f *frame.Frame) float64 {
	return s.metadata.Seconds(f.FrameIndex())
}
