package motion

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/kmmndr/autotrim/internal/frame"

	"gocv.io/x/gocv"
)

const (
	DefaultScaleFactor = 0.3
	DefaultIterations  = 3
)

// Farneback parameters.
const (
	pyramidScale  = 0.5
	pyramidLevels = 3
	windowSize    = 15
	polyN         = 5
	polySigma     = 1.1
)

// Estimator turns consecutive frames into a scalar motion magnitude.
type Estimator interface {
	// Reference builds the first grayscale reference of a scan.
	Reference(f *frame.Frame) (*frame.Frame, error)
	// Estimate returns the magnitude of the transition ref -> cur and the
	// grayscale version of cur, which becomes the next reference.
	Estimate(ref, cur *frame.Frame) (float64, *frame.Frame, error)
}

// FlowEstimator measures motion with dense Farneback optical flow on
// downscaled grayscale frames.
type FlowEstimator struct {
	scaleFactor float64
	iterations  int
}

func NewFlowEstimator(scaleFactor float64, iterations int) *FlowEstimator {
	if scaleFactor <= 0 {
		scaleFactor = DefaultScaleFactor
	}
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &FlowEstimator{scaleFactor: scaleFactor, iterations: iterations}
}

func (e *FlowEstimator) Reference(f *frame.Frame) (*frame.Frame, error) {
	small, err := f.Scale(e.scaleFactor)
	if err != nil {
		return nil, fmt.Errorf("scale reference: %w", err)
	}
	defer small.Close()

	return small.Gray()
}

// Estimate resizes cur to the reference's dimensions, so every frame is
// locked to the size of the first downscaled frame.
func (e *FlowEstimator) Estimate(ref, cur *frame.Frame) (float64, *frame.Frame, error) {
	w, h := ref.Width(), ref.Height()

	small, err := cur.ResizeTo(w, h)
	if err != nil {
		return 0, nil, fmt.Errorf("resize frame %d: %w", cur.FrameIndex(), err)
	}
	defer small.Close()

	gray, err := small.Gray()
	if err != nil {
		return 0, nil, fmt.Errorf("gray frame %d: %w", cur.FrameIndex(), err)
	}

	flow := gocv.NewMat()
	defer flow.Close()

	gocv.CalcOpticalFlowFarneback(*ref.Mat(), *gray.Mat(), &flow,
		pyramidScale, pyramidLevels, windowSize, e.iterations, polyN, polySigma, 0)

	magnitude, err := centerMeanAbs(flow)
	if err != nil {
		gray.Close()
		return 0, nil, fmt.Errorf("flow magnitude of frame %d: %w", cur.FrameIndex(), err)
	}

	return magnitude, gray, nil
}

// centerMeanAbs averages |dx| and |dy| over the central quadrant of a
// two channel flow field (rows h/4..3h/4, cols w/4..3w/4).
func centerMeanAbs(flow gocv.Mat) (float64, error) {
	if flow.Empty() {
		return 0, errors.New("empty flow field")
	}

	h, w := flow.Rows(), flow.Cols()
	center := image.Rect(w/4, h/4, 3*w/4, 3*h/4)
	if center.Empty() {
		return 0, nil
	}

	region := flow.Region(center)
	defer region.Close()

	crop := region.Clone()
	defer crop.Close()

	values, err := crop.DataPtrFloat32()
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, nil
	}

	sum := 0.0
	for _, v := range values {
		sum += math.Abs(float64(v))
	}
	return sum / float64(len(values)), nil
}
