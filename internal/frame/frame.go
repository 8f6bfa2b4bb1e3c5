package frame

import (
	"errors"
	"image"

	"gocv.io/x/gocv"
)

var ErrEmptyFrame = errors.New("frame is empty")

type Frame struct {
	frameIndex int
	mat        *gocv.Mat
}

func NewFrame(frameIndex int, mat *gocv.Mat) (*Frame, error) {
	if mat == nil || mat.Empty() {
		return nil, ErrEmptyFrame
	}

	return &Frame{frameIndex: frameIndex, mat: mat}, nil
}

func (f *Frame) Mat() *gocv.Mat {
	return f.mat
}

func (f *Frame) FrameIndex() int {
	return f.frameIndex
}

// Gray returns a single channel copy. BGR input is converted, single
// channel input is cloned.
func (f *Frame) Gray() (*Frame, error) {
	if f.Channels() == 1 {
		return f.Clone()
	}

	gray := gocv.NewMat()
	gocv.CvtColor(*f.mat, &gray, gocv.ColorBGRToGray)

	return newOwnedFrame(f.frameIndex, &gray)
}

// Scale resizes the frame by a linear factor on both axes.
func (f *Frame) Scale(factor float64) (*Frame, error) {
	scaled := gocv.NewMat()
	gocv.Resize(*f.mat, &scaled, image.Point{}, factor, factor, gocv.InterpolationLinear)

	return newOwnedFrame(f.frameIndex, &scaled)
}

// ResizeTo resizes the frame to exactly width x height.
func (f *Frame) ResizeTo(width, height int) (*Frame, error) {
	if f.Width() == width && f.Height() == height {
		return f.Clone()
	}

	resized := gocv.NewMat()
	gocv.Resize(*f.mat, &resized, image.Pt(width, height), 0, 0, gocv.InterpolationLinear)

	return newOwnedFrame(f.frameIndex, &resized)
}

func (f *Frame) Clone() (*Frame, error) {
	clone := f.mat.Clone()

	return newOwnedFrame(f.frameIndex, &clone)
}

func (f *Frame) Height() int {
	return f.mat.Rows()
}

func (f *Frame) Width() int {
	return f.mat.Cols()
}

func (f *Frame) Channels() int {
	return f.mat.Channels()
}

func (f *Frame) Pixels() int {
	return f.Height() * f.Width()
}

func (f *Frame) Close() {
	if f == nil || f.mat == nil {
		return
	}
	f.mat.Close()
}

// newOwnedFrame wraps a mat created by this package and releases it when
// it cannot be wrapped.
func newOwnedFrame(frameIndex int, mat *gocv.Mat) (*Frame, error) {
	fr, err := NewFrame(frameIndex, mat)
	if err != nil {
		mat.Close()
		return nil, err
	}
	return fr, nil
}
