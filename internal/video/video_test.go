package video

import (
	"path/filepath"
	"testing"

	"github.com/kmmndr/autotrim/internal/frame"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func writeClip(t *testing.T, path string, meta Metadata, frames int) {
	t.Helper()

	w, err := NewFileWriter(path, "MJPG", meta)
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < frames; i++ {
		mat := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(float64(i%255), 128, 64, 0), meta.Height, meta.Width, gocv.MatTypeCV8UC3)
		f, err := frame.NewFrame(i, &mat)
		require.NoError(t, err)
		require.NoError(t, w.Write(f))
		f.Close()
	}
}

func TestStreamRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.avi")
	meta := Metadata{FrameRate: 25, Width: 64, Height: 48}
	writeClip(t, path, meta, 10)

	s, err := NewFileStream(path)
	require.NoError(t, err)
	defer s.Close()

	got := s.Metadata()
	assert.Equal(t, 25, got.FrameRate)
	assert.Equal(t, 64, got.Width)
	assert.Equal(t, 48, got.Height)

	count := 0
	for {
		f, ok := s.Next()
		if !ok {
			break
		}
		assert.Equal(t, count, f.FrameIndex())
		f.Close()
		count++
	}
	assert.Equal(t, 10, count)

	_, ok := s.Next()
	assert.False(t, ok, "reads past the end keep reporting end of stream")

	require.NoError(t, s.Seek(4))
	f, ok := s.Next()
	require.True(t, ok)
	assert.Equal(t, 4, f.FrameIndex())
	f.Close()
}

func TestNewFileStreamUnreadable(t *testing.T) {
	_, err := NewFileStream(filepath.Join(t.TempDir(), "missing.mp4"))
	assert.ErrorIs(t, err, ErrUnreadable)
}

func TestMetadataSeconds(t *testing.T) {
	assert.InDelta(t, 2.0, Metadata{FrameRate: 30}.Seconds(60), 1e-9)
	assert.Zero(t, Metadata{}.Seconds(60))
}
