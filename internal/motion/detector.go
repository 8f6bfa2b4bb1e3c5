package motion

const DefaultThreshold = 8.0

// Detector smooths motion magnitudes over a bounded history and records
// the first frame where the rolling average exceeds the threshold.
type Detector struct {
	threshold float64
	history   *History
	event     Event
	average   float64
}

func NewDetector(threshold float64, historySize int) *Detector {
	return &Detector{
		threshold: threshold,
		history:   NewHistory(historySize),
	}
}

// Observe feeds the magnitude of the transition into frameIndex. The
// event is backdated by the history size to compensate for the smoothing
// lag and is never changed once set.
func (d *Detector) Observe(frameIndex int, magnitude float64) Event {
	d.history.Push(magnitude)
	d.average = d.history.Mean()

	if !d.event.Detected() && d.average > d.threshold {
		d.event = EventAt(max(0, frameIndex-d.history.Cap()))
	}

	return d.event
}

func (d *Detector) Event() Event {
	return d.event
}

func (d *Detector) Average() float64 {
	return d.average
}

func (d *Detector) History() *History {
	return d.history
}

func (d *Detector) Threshold() float64 {
	return d.threshold
}
