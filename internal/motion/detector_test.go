package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestHistoryNeverExceedsCapacity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		size := rapid.IntRange(1, 20).Draw(rt, "size")
		values := rapid.SliceOf(rapid.Float64Range(0, 100)).Draw(rt, "values")

		h := NewHistory(size)
		for i, v := range values {
			h.Push(v)
			if h.Len() > size {
				rt.Fatalf("length %d exceeds capacity %d", h.Len(), size)
			}
			if i+1 >= size && h.Len() != size {
				rt.Fatalf("length %d after %d pushes, want %d", h.Len(), i+1, size)
			}
		}

		start := max(0, len(values)-size)
		assert.Equal(rt, append([]float64{}, values[start:]...), h.Values())
	})
}

func TestHistoryMeanDuringWarmUp(t *testing.T) {
	h := NewHistory(5)
	assert.Zero(t, h.Mean())

	h.Push(2)
	assert.InDelta(t, 2.0, h.Mean(), 1e-9)

	h.Push(4)
	assert.InDelta(t, 3.0, h.Mean(), 1e-9, "mean is not padded with zeros")

	for _, v := range []float64{6, 8, 10, 12} {
		h.Push(v)
	}
	assert.Equal(t, []float64{4, 6, 8, 10, 12}, h.Values())
	assert.InDelta(t, 8.0, h.Mean(), 1e-9)
}

func TestDetectorBelowThresholdNeverFires(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		threshold := rapid.Float64Range(0.5, 50).Draw(rt, "threshold")
		magnitudes := rapid.SliceOf(rapid.Float64Range(0, threshold)).Draw(rt, "magnitudes")

		d := NewDetector(threshold, DefaultHistorySize)
		for i, m := range magnitudes {
			if d.Observe(i+1, m).Detected() {
				rt.Fatalf("event set at frame %d with average %.3f <= %.3f", i+1, d.Average(), threshold)
			}
		}
	})
}

func TestDetectorStepResponse(t *testing.T) {
	tests := []struct {
		name      string
		step      int
		magnitude float64
		want      int
	}{
		{name: "first sample crosses", step: 150, magnitude: 50, want: 145},
		{name: "third sample crosses", step: 150, magnitude: 20, want: 147},
		{name: "floored at stream start", step: 2, magnitude: 100, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDetector(DefaultThreshold, DefaultHistorySize)
			for frameNum := 1; frameNum < 300; frameNum++ {
				m := 0.0
				if frameNum >= tt.step {
					m = tt.magnitude
				}
				d.Observe(frameNum, m)
			}

			got, ok := d.Event().Frame()
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectorFirstCrossingWins(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		magnitudes := rapid.SliceOfN(rapid.Float64Range(0, 40), 1, 200).Draw(rt, "magnitudes")

		d := NewDetector(DefaultThreshold, DefaultHistorySize)
		var first Event
		for i, m := range magnitudes {
			event := d.Observe(i+1, m)
			if first.Detected() && event != first {
				rt.Fatalf("event changed from %s to %s", first, event)
			}
			if !first.Detected() && event.Detected() {
				first = event
			}
		}
	})
}

func TestEventZeroIsDistinctFromUnset(t *testing.T) {
	var unset Event
	_, ok := unset.Frame()
	assert.False(t, ok)
	assert.Equal(t, "none", unset.String())

	zero := EventAt(0)
	frameIndex, ok := zero.Frame()
	assert.True(t, ok)
	assert.Equal(t, 0, frameIndex)
	assert.Equal(t, "0", zero.String())
	assert.NotEqual(t, unset, zero)
}
