package video

import (
	"fmt"

	"github.com/kmmndr/autotrim/internal/frame"

	"gocv.io/x/gocv"
)

const DefaultCodec = "mp4v"

// Writer encodes frames into a new container, keeping the frame rate and
// dimensions it was opened with.
type Writer struct {
	Video *gocv.VideoWriter
	path  string
}

func NewFileWriter(outputPath, codec string, meta Metadata) (*Writer, error) {
	if codec == "" {
		codec = DefaultCodec
	}
	if meta.Width <= 0 || meta.Height <= 0 {
		return nil, fmt.Errorf("invalid output dimensions %dx%d", meta.Width, meta.Height)
	}

	writer, err := gocv.VideoWriterFile(outputPath, codec, float64(meta.FrameRate), meta.Width, meta.Height, true)
	if err != nil {
		return nil, fmt.Errorf("unable to open video writer %s: %w", outputPath, err)
	}
	if !writer.IsOpened() {
		writer.Close()
		return nil, fmt.Errorf("unable to open video writer %s with codec %s", outputPath, codec)
	}

	return &Writer{Video: writer, path: outputPath}, nil
}

func (w *Writer) Write(f *frame.Frame) error {
	if err := w.Video.Write(*f.Mat()); err != nil {
		return fmt.Errorf("write frame %d to %s: %w", f.FrameIndex(), w.path, err)
	}
	return nil
}

func (w *Writer) Close() error {
	return w.Video.Close()
}
