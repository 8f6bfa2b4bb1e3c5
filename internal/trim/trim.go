package trim

import (
	"fmt"

	"github.com/kmmndr/autotrim/internal/frame"
	"github.com/kmmndr/autotrim/internal/video"
)

type FrameWriter interface {
	Write(f *frame.Frame) error
}

// Trim copies src frames [start, end) into w. A nil end copies up to the
// declared frame count; a short stream stops the copy early. It returns
// the number of frames written.
func Trim(src video.Source, w FrameWriter, start int, end *int) (int, error) {
	if start < 0 {
		return 0, fmt.Errorf("invalid start frame %d", start)
	}

	stop := src.Metadata().FrameCount
	if end != nil {
		stop = *end
	}
	if stop <= start {
		return 0, nil
	}

	if err := src.Seek(start); err != nil {
		return 0, fmt.Errorf("seek to frame %d: %w", start, err)
	}

	written := 0
	for i := start; i < stop; i++ {
		f, ok := src.Next()
		if !ok {
			break
		}
		err := w.Write(f)
		f.Close()
		if err != nil {
			return written, err
		}
		written++
	}

	return written, nil
}

// TrimFile writes the trimmed copy of inputPath to outputPath, keeping the
// source frame rate and dimensions.
func TrimFile(inputPath, outputPath string, start int, end *int, codec string) (int, error) {
	src, err := video.NewFileStream(inputPath)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	out, err := video.NewFileWriter(outputPath, codec, src.Metadata())
	if err != nil {
		return 0, err
	}

	written, err := Trim(src, out, start, end)
	if closeErr := out.Close(); closeErr != nil && err == nil {
		err = fmt.Errorf("close %s: %w", outputPath, closeErr)
	}
	return written, err
}
